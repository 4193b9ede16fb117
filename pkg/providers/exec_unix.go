//go:build !windows

package providers

import (
	"os/exec"
	"syscall"
)

// setProcessGroup starts the shell in its own process group and replaces the
// default cancel behavior with a kill of the whole group, so processes the
// shell forked are terminated along with it.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error {
		if cmd.Process == nil {
			return nil
		}
		return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
	}
}
