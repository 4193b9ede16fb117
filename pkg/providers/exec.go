package providers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"time"
)

// ShellExecutor runs command entries through the system shell via os/exec.
// The executor inherits the invoking environment; extra variables may be
// appended per call.
type ShellExecutor struct {
	// Dir is the working directory for spawned commands. Empty = inherit.
	Dir string
}

// Execute runs rendered shell text and captures its output and exit status.
// The whole process group is killed when ctx is cancelled or its deadline
// passes, so commands the shell forked die with it; the caller inspects
// ctx.Err() to classify that as a timeout.
func (s *ShellExecutor) Execute(ctx context.Context, command string, env []string) (*CommandResult, error) {
	start := time.Now()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd.exe", "/C", command)
	} else {
		cmd = exec.CommandContext(ctx, "/bin/sh", "-c", command)
	}
	cmd.Dir = s.Dir
	if len(env) > 0 {
		cmd.Env = append(cmd.Environ(), env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	// Without a WaitDelay, Wait blocks on the stdout/stderr pipes even after
	// the shell is dead, for as long as any surviving descendant holds them.
	setProcessGroup(cmd)
	cmd.WaitDelay = time.Second

	err := cmd.Run()
	duration := time.Since(start)

	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else if errors.Is(err, exec.ErrWaitDelay) {
			// The shell itself exited; only the pipes were abandoned.
			if cmd.ProcessState != nil {
				exitCode = cmd.ProcessState.ExitCode()
			}
		} else {
			return nil, fmt.Errorf("execute command: %w", err)
		}
	}

	return &CommandResult{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: exitCode,
		Duration: duration,
	}, nil
}

// DryRunExecutor records commands without spawning processes and reports
// success with placeholder output.
type DryRunExecutor struct {
	Commands []string
}

func (d *DryRunExecutor) Execute(ctx context.Context, command string, env []string) (*CommandResult, error) {
	d.Commands = append(d.Commands, command)
	return &CommandResult{
		Stdout:   []byte("<dry-run>"),
		ExitCode: 0,
	}, nil
}
