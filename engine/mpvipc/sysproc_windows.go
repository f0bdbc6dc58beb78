//go:build windows

package mpvipc

import (
	"os/exec"
	"syscall"
)

// sysProcAttr starts mpv in its own process group so console Ctrl+C only reaches us.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		CreationFlags: syscall.CREATE_NEW_PROCESS_GROUP,
	}
}

func killProcess(cmd *exec.Cmd) error {
	if cmd == nil || cmd.Process == nil {
		return nil
	}
	return cmd.Process.Kill()
}
