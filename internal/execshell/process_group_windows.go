//go:build windows

package execshell

import (
	"os/exec"
	"syscall"
)

// configureProcessGroup isolates the command in a new process group. Windows
// has no group kill, so cancellation kills the process and WaitDelay releases
// pipes held by its descendants.
func configureProcessGroup(executable *exec.Cmd) {
	if executable.SysProcAttr == nil {
		executable.SysProcAttr = &syscall.SysProcAttr{}
	}
	executable.SysProcAttr.CreationFlags |= syscall.CREATE_NEW_PROCESS_GROUP
}
