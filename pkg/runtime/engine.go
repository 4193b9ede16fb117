// Package runtime implements the entry execution engine: placeholder
// resolution, rendering, the confirmation gate, the per-kind executors and
// playbook sequencing.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/expr-lang/expr"

	"github.com/devstash/devstash/pkg/governance"
	"github.com/devstash/devstash/pkg/providers"
	"github.com/devstash/devstash/pkg/schema"
)

// Store is the read-only vault view the engine needs. *vault.Store
// satisfies it; tests inject an in-memory map.
type Store interface {
	Lookup(name string) (*schema.Entry, error)
}

// Options configure a single execution call.
type Options struct {
	// Bindings pre-supply placeholder values, bypassing the prompt.
	Bindings map[string]string
	// SkipConfirm passes through the confirmation gate.
	SkipConfirm bool
	// Timeout bounds each executor call. Zero = no timeout.
	Timeout time.Duration
	// Env appends extra KEY=VALUE pairs to command entry environments.
	Env []string
}

// Engine coordinates resolve → render → confirm → execute → report for one
// entry, recursing per step for playbooks. All collaborators are injected;
// the engine holds no state across Execute calls.
type Engine struct {
	Store    Store
	Interact providers.Interaction
	Executor providers.CommandExecutor
	Client   providers.HTTPDoer
	// Gov is optional; nil means no policy checks and no redaction.
	Gov *governance.Engine
	// Out receives step progress lines. Defaults to io.Discard.
	Out io.Writer
}

// New creates an engine with the given collaborators.
func New(store Store, interact providers.Interaction, executor providers.CommandExecutor, client providers.HTTPDoer) *Engine {
	return &Engine{
		Store:    store,
		Interact: interact,
		Executor: executor,
		Client:   client,
		Out:      io.Discard,
	}
}

// Execute runs a single entry to a terminal status. The returned Result is
// always non-nil; the error mirrors Result.Err for failures and is nil for
// Succeeded and Aborted outcomes.
func (e *Engine) Execute(ctx context.Context, entry *schema.Entry, opts Options) (*Result, error) {
	return e.execute(ctx, entry, opts, nil)
}

// execute is the recursive entry point. path holds the names of ancestor
// playbooks for cycle detection.
func (e *Engine) execute(ctx context.Context, entry *schema.Entry, opts Options, path []string) (res *Result, err error) {
	res = newResult(entry)
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	if !entry.Kind.Executable() {
		return res.fail(&NotExecutableError{Entry: entry.Name, Kind: entry.Kind})
	}

	if entry.Kind == schema.KindPlaybook {
		return e.executePlaybook(ctx, entry, opts, path, res)
	}

	// Resolving: collect every placeholder this entry references, then fill
	// the substitution table from bindings and prompts.
	res.Status = StatusResolving
	table, err := e.resolve(entry, opts)
	if err != nil {
		if errors.Is(err, ErrResolutionAborted) {
			return res.abort(ErrResolutionAborted)
		}
		return res.fail(err)
	}

	res.Status = StatusRendering
	res.Rendered = Render(entry.Content, table)

	switch entry.Kind {
	case schema.KindCommand:
		return e.executeCommand(ctx, entry, opts, res)
	case schema.KindAPI:
		return e.executeAPI(ctx, entry, opts, table, res)
	}
	return res.fail(fmt.Errorf("no executor for kind %q", entry.Kind))
}

// resolve scans the entry's content pieces and produces a complete
// substitution table.
func (e *Engine) resolve(entry *schema.Entry, opts Options) (map[string]string, error) {
	pieces := []string{entry.Content}
	if entry.Kind == schema.KindAPI && entry.API != nil {
		pieces = append(pieces, entry.API.Method, entry.API.URL)
		keys := make([]string, 0, len(entry.API.Headers))
		for k := range entry.API.Headers {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			pieces = append(pieces, entry.API.Headers[k])
		}
	}
	return Resolve(Scan(pieces...), opts.Bindings, e.Interact)
}

// confirm runs the confirmation gate. It reports whether execution may
// proceed; on decline or cancel it marks the result Aborted.
func (e *Engine) confirm(opts Options, res *Result, summary string) bool {
	if opts.SkipConfirm {
		return true
	}
	res.Status = StatusConfirmPending
	ok, err := e.Interact.Confirm(summary)
	if err != nil {
		res.abort(ErrResolutionAborted)
		return false
	}
	if !ok {
		res.abort(nil)
		return false
	}
	return true
}

// execTimeout derives the context for one executor call.
func execTimeout(ctx context.Context, opts Options) (context.Context, context.CancelFunc) {
	if opts.Timeout > 0 {
		return context.WithTimeout(ctx, opts.Timeout)
	}
	return ctx, func() {}
}

func (e *Engine) executeCommand(ctx context.Context, entry *schema.Entry, opts Options, res *Result) (*Result, error) {
	if !e.confirm(opts, res, fmt.Sprintf("$ %s", res.Rendered)) {
		return res, nil
	}

	res.Status = StatusExecuting
	if e.Gov != nil {
		if err := e.Gov.CheckCommand(res.Rendered); err != nil {
			return res.fail(err)
		}
	}

	runCtx, cancel := execTimeout(ctx, opts)
	defer cancel()

	cmdRes, err := e.Executor.Execute(runCtx, res.Rendered, opts.Env)
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded {
			return res.fail(&ExecutionError{Cause: CauseTimeout, Err: err})
		}
		return res.fail(&ExecutionError{Cause: CauseProcess, Err: err})
	}

	stdout, stderr := string(cmdRes.Stdout), string(cmdRes.Stderr)
	if e.Gov != nil {
		stdout = e.Gov.Redact(stdout)
		stderr = e.Gov.Redact(stderr)
	}
	res.ExitCode = cmdRes.ExitCode
	res.Stdout = stdout
	res.Stderr = stderr

	if runCtx.Err() == context.DeadlineExceeded {
		return res.fail(&ExecutionError{
			Cause: CauseTimeout,
			Err:   fmt.Errorf("command timed out after %s", opts.Timeout),
		})
	}
	if cmdRes.ExitCode != 0 {
		return res.fail(&ExecutionError{
			Cause: CauseProcess,
			Err:   fmt.Errorf("command exited with code %d", cmdRes.ExitCode),
		})
	}

	res.Status = StatusSucceeded
	return res, nil
}

func (e *Engine) executeAPI(ctx context.Context, entry *schema.Entry, opts Options, table map[string]string, res *Result) (*Result, error) {
	if entry.API == nil {
		return res.fail(fmt.Errorf("api entry %q has no request descriptor", entry.Name))
	}

	method := strings.ToUpper(strings.TrimSpace(Render(entry.API.Method, table)))
	if method == "" {
		method = http.MethodGet
	}
	url := Render(entry.API.URL, table)

	if !e.confirm(opts, res, fmt.Sprintf("%s %s", method, url)) {
		return res, nil
	}

	res.Status = StatusExecuting
	runCtx, cancel := execTimeout(ctx, opts)
	defer cancel()

	var body io.Reader
	if res.Rendered != "" {
		body = strings.NewReader(res.Rendered)
	}
	req, err := http.NewRequestWithContext(runCtx, method, url, body)
	if err != nil {
		return res.fail(&ExecutionError{Cause: CauseNetwork, Err: err})
	}
	for k, v := range entry.API.Headers {
		req.Header.Set(k, Render(v, table))
	}
	if res.Rendered != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := e.Client.Do(req)
	if err != nil {
		if runCtx.Err() == context.DeadlineExceeded || isTimeout(err) {
			return res.fail(&ExecutionError{Cause: CauseTimeout, Err: err})
		}
		return res.fail(&ExecutionError{Cause: CauseNetwork, Err: err})
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return res.fail(&ExecutionError{Cause: CauseNetwork, Err: fmt.Errorf("read response: %w", err)})
	}

	res.StatusCode = resp.StatusCode
	res.Body = string(data)
	if e.Gov != nil {
		res.Body = e.Gov.Redact(res.Body)
	}

	// No automatic retry: the request happened at most once, whatever the
	// status says. Non-2xx is a failed execution with the response kept.
	if resp.StatusCode >= 400 {
		return res.fail(&ExecutionError{
			Cause: CauseProcess,
			Err:   fmt.Errorf("request returned status %d", resp.StatusCode),
		})
	}

	res.Status = StatusSucceeded
	return res, nil
}

func (e *Engine) executePlaybook(ctx context.Context, entry *schema.Entry, opts Options, path []string, res *Result) (*Result, error) {
	steps, err := schema.ParsePlaybook(entry.Content)
	if err != nil {
		return res.fail(err)
	}

	path = append(path, entry.Name)
	res.Status = StatusExecuting

	for i, step := range steps {
		e.printf("\n▶ Step %d/%d: %s\n", i+1, len(steps), step.Entry)

		if slices.Contains(path, step.Entry) {
			return e.failStep(res, entry.Name, i, step.Entry,
				&CycleError{Entry: step.Entry, Chain: append(slices.Clone(path), step.Entry)})
		}

		stepEntry, err := e.Store.Lookup(step.Entry)
		if err != nil {
			return e.failStep(res, entry.Name, i, step.Entry, err)
		}

		if step.When != "" {
			ok, err := evalGuard(step.When, opts.Bindings)
			if err != nil {
				return e.failStep(res, entry.Name, i, step.Entry, err)
			}
			if !ok {
				e.printf("  ⊘ skipped (when: %s → false)\n", step.When)
				res.Steps = append(res.Steps, &Result{
					Entry:      step.Entry,
					Kind:       stepEntry.Kind,
					Status:     StatusSkipped,
					FailedStep: -1,
				})
				continue
			}
		}

		stepRes, _ := e.execute(ctx, stepEntry, opts, path)
		res.Steps = append(res.Steps, stepRes)

		switch stepRes.Status {
		case StatusAborted:
			e.printf("  ■ aborted\n")
			return res.abort(stepRes.Err)
		case StatusFailed:
			e.printf("  ✗ failed: %v\n", stepRes.Err)
			return e.failStep(res, entry.Name, i, step.Entry, stepRes.Err)
		}
		e.printf("  ✓ done\n")
	}

	res.Status = StatusSucceeded
	return res, nil
}

// failStep marks a playbook failed at step index, keeping the results
// collected so far.
func (e *Engine) failStep(res *Result, playbook string, index int, entry string, cause error) (*Result, error) {
	res.FailedStep = index
	return res.fail(&StepError{Playbook: playbook, Index: index, Entry: entry, Err: cause})
}

// evalGuard evaluates a step's when: expression against the bindings map.
func evalGuard(guard string, bindings map[string]string) (bool, error) {
	env := make(map[string]interface{}, len(bindings))
	for k, v := range bindings {
		env[k] = v
	}
	program, err := expr.Compile(guard, expr.Env(env), expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return false, fmt.Errorf("compile guard %q: %w", guard, err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("eval guard %q: %w", guard, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("guard %q did not return bool (got %T)", guard, out)
	}
	return b, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (e *Engine) printf(format string, args ...interface{}) {
	if e.Out != nil {
		fmt.Fprintf(e.Out, format, args...)
	}
}
