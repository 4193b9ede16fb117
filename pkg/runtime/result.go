package runtime

import (
	"time"

	"github.com/devstash/devstash/pkg/schema"
)

// Status tracks an execution through the coordinator's state machine.
// Succeeded, Failed, Aborted and Skipped are terminal.
type Status string

const (
	StatusPending        Status = "pending"
	StatusResolving      Status = "resolving"
	StatusRendering      Status = "rendering"
	StatusConfirmPending Status = "confirm-pending"
	StatusExecuting      Status = "executing"
	StatusSucceeded      Status = "succeeded"
	StatusFailed         Status = "failed"
	StatusAborted        Status = "aborted"
	// StatusSkipped marks a playbook step whose when: guard was false.
	StatusSkipped Status = "skipped"
)

// Terminal reports whether the status is an end state.
func (s Status) Terminal() bool {
	switch s {
	case StatusSucceeded, StatusFailed, StatusAborted, StatusSkipped:
		return true
	}
	return false
}

// Result is the outcome of one entry execution. Which fields are populated
// depends on the entry kind; a Result lives for one execution and is
// discarded after reporting.
type Result struct {
	Entry    string        `json:"entry"`
	Kind     schema.Kind   `json:"kind"`
	Status   Status        `json:"status"`
	Rendered string        `json:"rendered,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`

	// Command results.
	ExitCode int    `json:"exit_code,omitempty"`
	Stdout   string `json:"stdout,omitempty"`
	Stderr   string `json:"stderr,omitempty"`

	// API results.
	StatusCode int    `json:"status_code,omitempty"`
	Body       string `json:"body,omitempty"`

	// Playbook results: one Result per step attempted, in order.
	// FailedStep is the index of the failing step, -1 otherwise.
	Steps      []*Result `json:"steps,omitempty"`
	FailedStep int       `json:"failed_step"`

	// Err carries the failure (or the cancellation that aborted execution).
	Err error `json:"-"`
}

func newResult(entry *schema.Entry) *Result {
	return &Result{
		Entry:      entry.Name,
		Kind:       entry.Kind,
		Status:     StatusPending,
		FailedStep: -1,
	}
}

// fail marks the result Failed with err and returns it together with err.
func (r *Result) fail(err error) (*Result, error) {
	r.Status = StatusFailed
	r.Err = err
	return r, err
}

// abort marks the result Aborted. Cancellation and an explicit decline are
// the same in kind: execution terminates with no side effect and no error.
func (r *Result) abort(reason error) (*Result, error) {
	r.Status = StatusAborted
	r.Err = reason
	return r, nil
}
