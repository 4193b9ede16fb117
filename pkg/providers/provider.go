// Package providers defines the CommandExecutor, HTTPDoer and Interaction
// interfaces the execution engine depends on, and their concrete
// implementations (real shell, real terminal, dry-run, scripted).
package providers

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// ErrCancelled is returned by Interaction implementations when the user
// interrupts a prompt (Ctrl-C / EOF) instead of answering it.
var ErrCancelled = errors.New("input cancelled")

// CommandResult holds the output of a single shell command execution.
type CommandResult struct {
	Stdout   []byte        `json:"stdout"`
	Stderr   []byte        `json:"stderr"`
	ExitCode int           `json:"exit_code"`
	Duration time.Duration `json:"duration"`
}

// CommandExecutor abstracts real vs dry-run command execution.
// The command string is rendered shell text, run through the system shell.
// Implementations: ShellExecutor, DryRunExecutor.
type CommandExecutor interface {
	Execute(ctx context.Context, command string, env []string) (*CommandResult, error)
}

// HTTPDoer is the transport for api entries. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Interaction abstracts the prompts the engine needs from the invoking
// context: one value per placeholder, and a yes/no gate before side effects.
// Implementations must return ErrCancelled when the user bails out, so the
// engine can unwind without executing anything.
// Implementations: TerminalInteraction, ScriptedInteraction, NonInteractive.
type Interaction interface {
	PromptVar(name string) (string, error)
	Confirm(summary string) (bool, error)
}
