//go:build windows

package procutil

import "os/exec"

func setProcessGroup(cmd *exec.Cmd) {}

// terminateGroup force-kills the direct child. Windows has no POSIX process
// groups; children of the child may survive, which is the accepted
// degradation on this platform.
func terminateGroup(cmd *exec.Cmd) {
	if cmd.Process == nil {
		return
	}
	_ = cmd.Process.Kill()
}
