package providers

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// TerminalInteraction prompts on the controlling terminal via readline.
// Ctrl-C and Ctrl-D both surface as ErrCancelled.
type TerminalInteraction struct {
	rl *readline.Instance
}

// NewTerminalInteraction opens a readline instance for prompting.
// Callers should Close it when execution finishes.
func NewTerminalInteraction() (*TerminalInteraction, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		InterruptPrompt: "^C",
	})
	if err != nil {
		return nil, fmt.Errorf("init readline: %w", err)
	}
	return &TerminalInteraction{rl: rl}, nil
}

// Close releases the terminal.
func (t *TerminalInteraction) Close() error {
	return t.rl.Close()
}

func (t *TerminalInteraction) readLine(prompt string) (string, error) {
	t.rl.SetPrompt(prompt)
	line, err := t.rl.Readline()
	if err != nil {
		if errors.Is(err, readline.ErrInterrupt) || errors.Is(err, io.EOF) {
			return "", ErrCancelled
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return line, nil
}

// PromptVar asks for a placeholder value. An empty answer is a valid value.
func (t *TerminalInteraction) PromptVar(name string) (string, error) {
	return t.readLine(fmt.Sprintf("Value for {{%s}}: ", name))
}

// Confirm asks for explicit affirmation before a side effect. Anything other
// than y/yes declines.
func (t *TerminalInteraction) Confirm(summary string) (bool, error) {
	line, err := t.readLine(fmt.Sprintf("%s — execute? [y/N]: ", summary))
	if err != nil {
		return false, err
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

// ScriptedInteraction serves prompts from pre-recorded values. Used by tests
// and anywhere terminal input is unavailable.
type ScriptedInteraction struct {
	// Values maps placeholder names to the answer returned for them.
	Values map[string]string
	// CancelVar, when set, cancels the prompt for that placeholder name.
	CancelVar string
	// ConfirmAnswer is returned by Confirm unless CancelConfirm is set.
	ConfirmAnswer bool
	// CancelConfirm makes Confirm report user cancellation.
	CancelConfirm bool

	// Prompted and Confirmed record the calls for assertions.
	Prompted  []string
	Confirmed []string
}

func (s *ScriptedInteraction) PromptVar(name string) (string, error) {
	s.Prompted = append(s.Prompted, name)
	if name == s.CancelVar {
		return "", ErrCancelled
	}
	return s.Values[name], nil
}

func (s *ScriptedInteraction) Confirm(summary string) (bool, error) {
	s.Confirmed = append(s.Confirmed, summary)
	if s.CancelConfirm {
		return false, ErrCancelled
	}
	return s.ConfirmAnswer, nil
}

// NonInteractive refuses to prompt: any unresolved placeholder cancels
// resolution, and confirmation is implicitly granted. This backs contexts
// like the MCP server where the caller supplies bindings up front and has
// already decided to run the entry.
type NonInteractive struct{}

func (NonInteractive) PromptVar(name string) (string, error) {
	return "", fmt.Errorf("placeholder {{%s}} has no binding: %w", name, ErrCancelled)
}

func (NonInteractive) Confirm(summary string) (bool, error) {
	return true, nil
}
