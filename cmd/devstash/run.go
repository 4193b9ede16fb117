package main

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/devstash/devstash/pkg/governance"
	"github.com/devstash/devstash/pkg/providers"
	"github.com/devstash/devstash/pkg/runtime"
	"github.com/devstash/devstash/pkg/schema"
)

var (
	runYes     bool
	runDryRun  bool
	runSets    []string
	runTimeout time.Duration
	runEnv     []string
)

var runCmd = &cobra.Command{
	Use:   "run <name>",
	Short: "Execute a command, api or playbook entry",
	Long: `Execute an entry. Placeholders ({{NAME}}) are filled from --set
bindings first; anything left unbound is prompted for. Execution asks for
confirmation before any side effect unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	store, err := openVault()
	if err != nil {
		return err
	}
	entry, err := store.Get(args[0])
	if err != nil {
		return err
	}

	bindings, err := parseBindings(runSets)
	if err != nil {
		return err
	}

	gov, err := governance.Compile(&cfg.Governance)
	if err != nil {
		return err
	}

	interact, err := providers.NewTerminalInteraction()
	if err != nil {
		return err
	}
	defer interact.Close()

	var executor providers.CommandExecutor = &providers.ShellExecutor{}
	if runDryRun {
		executor = &providers.DryRunExecutor{}
	}

	eng := runtime.New(store, interact, executor, http.DefaultClient)
	eng.Gov = gov
	eng.Out = os.Stdout

	timeout := runTimeout
	if timeout == 0 {
		timeout = cfg.Timeout
	}
	skipConfirm := runYes && !cfg.AlwaysConfirm

	res, err := eng.Execute(cmd.Context(), entry, runtime.Options{
		Bindings:    bindings,
		SkipConfirm: skipConfirm,
		Timeout:     timeout,
		Env:         runEnv,
	})
	report(res)
	return err
}

// report prints the outcome of one execution, recursing into playbook steps.
func report(res *runtime.Result) {
	switch res.Kind {
	case schema.KindCommand:
		if res.Stdout != "" {
			fmt.Print(res.Stdout)
		}
		if res.Stderr != "" {
			fmt.Fprint(os.Stderr, res.Stderr)
		}
		if res.Status == runtime.StatusFailed && res.ExitCode != 0 {
			fmt.Fprintf(os.Stderr, "exit code %d\n", res.ExitCode)
		}
	case schema.KindAPI:
		if res.StatusCode != 0 {
			fmt.Printf("HTTP %d\n", res.StatusCode)
		}
		if res.Body != "" {
			fmt.Println(res.Body)
		}
	case schema.KindPlaybook:
		for _, step := range res.Steps {
			report(step)
		}
		ok := 0
		for _, step := range res.Steps {
			if step.Status == runtime.StatusSucceeded {
				ok++
			}
		}
		fmt.Printf("\n%d/%d steps succeeded\n", ok, len(res.Steps))
	}

	switch res.Status {
	case runtime.StatusAborted:
		fmt.Fprintln(os.Stderr, "aborted")
	case runtime.StatusFailed:
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "failed: %v\n", res.Err)
		}
	}
}

// parseBindings turns repeated KEY=VALUE flags into a map.
func parseBindings(sets []string) (map[string]string, error) {
	if len(sets) == 0 {
		return nil, nil
	}
	bindings := make(map[string]string, len(sets))
	for _, s := range sets {
		parts := strings.SplitN(s, "=", 2)
		if len(parts) != 2 || parts[0] == "" {
			return nil, fmt.Errorf("malformed --set %q (want KEY=VALUE)", s)
		}
		bindings[parts[0]] = parts[1]
	}
	return bindings, nil
}

func init() {
	runCmd.Flags().BoolVarP(&runYes, "yes", "y", false, "Skip the confirmation prompt")
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Resolve and render but do not execute")
	runCmd.Flags().StringArrayVar(&runSets, "set", nil, "Bind a placeholder (KEY=VALUE, repeatable)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Per-step execution timeout (e.g. 30s)")
	runCmd.Flags().StringArrayVar(&runEnv, "env", nil, "Extra environment variable for commands (KEY=VALUE, repeatable)")
}
