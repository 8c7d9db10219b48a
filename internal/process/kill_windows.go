//go:build windows

// Package process cleans up browser process trees left behind by a batch.
package process

import (
	"os/exec"
	"strconv"
)

// KillProcessGroup terminates pid and its children with taskkill /T.
// Non-positive pids are ignored.
func KillProcessGroup(pid int) {
	if pid <= 0 {
		return
	}
	// Best effort; the launcher's own Kill follows.
	_ = exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run() // #nosec G204 -- pid is an integer
}
