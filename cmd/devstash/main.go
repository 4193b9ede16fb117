package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/devstash/devstash/pkg/config"
	"github.com/devstash/devstash/pkg/vault"
)

// Version is set at build time via ldflags.
var (
	version = "dev"
	commit  = "unknown"
)

var (
	cfgFile   string
	vaultPath string

	vp  = viper.New()
	cfg *config.Config
)

func main() {
	loadDotEnv()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadDotEnv reads a .env file from the working directory and sets
// any variables that aren't already set in the environment.
// Lines are KEY=VALUE (or KEY="VALUE"). Comments (#) and blanks are skipped.
func loadDotEnv() {
	f, err := os.Open(".env")
	if err != nil {
		return
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		val := strings.Trim(strings.TrimSpace(parts[1]), `"'`)
		if os.Getenv(key) == "" {
			os.Setenv(key, val)
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "devstash",
	Short: "Local knowledge store for commands, snippets and playbooks",
	Long:  "devstash — stash commands, API calls, snippets, files, playbooks and notes locally, then search and run them with placeholder substitution.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Init(vp, cfgFile); err != nil {
			return err
		}
		var err error
		cfg, err = config.Load(vp)
		return err
	},
	SilenceUsage: true,
}

// openVault resolves the vault path from flag, config and default, and
// verifies the file exists.
func openVault() (*vault.Store, error) {
	store := vault.Open(config.ResolveVault(vaultPath, cfg))
	if !store.Exists() {
		return nil, vault.ErrNoVault
	}
	return store, nil
}

// --- init ---

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an empty vault in the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := config.ResolveVault(vaultPath, cfg)
		if _, err := vault.Init(path); err != nil {
			return err
		}
		fmt.Printf("Initialized empty vault at %s\n", path)
		return nil
	},
}

// --- tags ---

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List every tag used in the vault",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openVault()
		if err != nil {
			return err
		}
		tags, err := store.Tags()
		if err != nil {
			return err
		}
		for _, tag := range tags {
			fmt.Println(tag)
		}
		return nil
	},
}

// --- version ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("devstash %s (%s)\n", version, commit)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default .devstash.yaml in $HOME or cwd)")
	rootCmd.PersistentFlags().StringVar(&vaultPath, "vault", "", "Vault file path (overrides config)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(tagsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(browseCmd)
	rootCmd.AddCommand(versionCmd)
}
