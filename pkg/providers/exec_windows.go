//go:build windows

package providers

import "os/exec"

// setProcessGroup is a no-op on Windows; cancellation relies on the default
// process kill plus WaitDelay to abandon pipes held by child processes.
func setProcessGroup(cmd *exec.Cmd) {}
