package process

import "testing"

func TestKillProcessGroup_IgnoresInvalidPIDs(t *testing.T) {
	t.Parallel()

	// None of these may signal a real process; 0 and negatives are
	// rejected before any syscall.
	for _, pid := range []int{0, -1, 999999999} {
		KillProcessGroup(pid)
	}
}
