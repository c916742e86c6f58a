//go:build !windows

package execshell

import (
	"errors"
	"os"
	"os/exec"
	"syscall"
)

// configureProcessGroup starts the command as the leader of a new process group
// and makes context cancellation kill the entire group.
func configureProcessGroup(executable *exec.Cmd) {
	if executable.SysProcAttr == nil {
		executable.SysProcAttr = &syscall.SysProcAttr{}
	}
	executable.SysProcAttr.Setpgid = true
	executable.Cancel = func() error {
		killError := syscall.Kill(-executable.Process.Pid, syscall.SIGKILL)
		if errors.Is(killError, syscall.ESRCH) {
			return os.ErrProcessDone
		}
		return killError
	}
}
