package runtime

import (
	"errors"
	"fmt"
	"strings"

	"github.com/devstash/devstash/pkg/schema"
)

// ErrResolutionAborted is recorded when the user cancels variable prompting.
// The execution terminates as Aborted before any side effect.
var ErrResolutionAborted = errors.New("variable resolution aborted")

// Cause classifies executor-level failures.
type Cause string

const (
	CauseProcess Cause = "process"
	CauseNetwork Cause = "network"
	CauseTimeout Cause = "timeout"
)

// ExecutionError is an executor-level failure: a process that could not run
// or exited nonzero, a transport error, or a timeout.
type ExecutionError struct {
	Cause Cause
	Err   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("%s failure: %v", e.Cause, e.Err)
}

func (e *ExecutionError) Unwrap() error { return e.Err }

// NotExecutableError reports an attempt to run a reference-only entry kind.
type NotExecutableError struct {
	Entry string
	Kind  schema.Kind
}

func (e *NotExecutableError) Error() string {
	return fmt.Sprintf("entry %q is a %s and cannot be executed", e.Entry, e.Kind)
}

// CycleError reports a playbook step that re-enters an ancestor playbook.
type CycleError struct {
	Entry string
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic playbook: %q re-entered via %s", e.Entry, strings.Join(e.Chain, " -> "))
}

// StepError wraps a failure inside a playbook with the step's position.
type StepError struct {
	Playbook string
	Index    int
	Entry    string
	Err      error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("playbook %q step %d (%s): %v", e.Playbook, e.Index+1, e.Entry, e.Err)
}

func (e *StepError) Unwrap() error { return e.Err }
