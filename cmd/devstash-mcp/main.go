// devstash-mcp serves the vault over MCP on stdio so agents can search,
// inspect and run entries.
package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/viper"

	"github.com/devstash/devstash/pkg/config"
	"github.com/devstash/devstash/pkg/governance"
	"github.com/devstash/devstash/pkg/mcp"
	"github.com/devstash/devstash/pkg/providers"
	"github.com/devstash/devstash/pkg/vault"
)

var version = "dev"

func main() {
	cfgFile := ""
	vaultPath := ""
	dryRun := false

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "--config" && i+1 < len(args):
			i++
			cfgFile = args[i]
		case args[i] == "--vault" && i+1 < len(args):
			i++
			vaultPath = args[i]
		case args[i] == "--dry-run":
			dryRun = true
		default:
			fmt.Fprintln(os.Stderr, "Usage: devstash-mcp [--config file] [--vault file] [--dry-run]")
			os.Exit(1)
		}
	}

	if err := run(cfgFile, vaultPath, dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "devstash-mcp: %v\n", err)
		os.Exit(1)
	}
}

func run(cfgFile, vaultPath string, dryRun bool) error {
	vp := viper.New()
	if err := config.Init(vp, cfgFile); err != nil {
		return err
	}
	cfg, err := config.Load(vp)
	if err != nil {
		return err
	}

	store := vault.Open(config.ResolveVault(vaultPath, cfg))
	if !store.Exists() {
		return vault.ErrNoVault
	}

	gov, err := governance.Compile(&cfg.Governance)
	if err != nil {
		return err
	}

	var executor providers.CommandExecutor = &providers.ShellExecutor{}
	if dryRun {
		executor = &providers.DryRunExecutor{}
	}

	handlers := &mcp.Handlers{
		Vault:    store,
		Executor: executor,
		Client:   http.DefaultClient,
		Gov:      gov,
		Timeout:  cfg.Timeout,
	}

	return server.ServeStdio(mcp.NewServer(version, handlers))
}
