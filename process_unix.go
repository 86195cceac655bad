//go:build !windows

package linkbook

import (
	"os/exec"
	"syscall"
)

// setProcessGroup places the child in its own process group so cancellation
// can reach the whole tree, not just the direct child.
func setProcessGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
}

// killProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func killProcessGroup(pid int) {
	// Best-effort cleanup; error ignored as CommandContext kills the direct
	// child regardless.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
