//go:build !windows

package main

import (
	"os"
	"syscall"
)

// shutdownSignals stop the process: Ctrl-C, orchestrator termination and
// a closed controlling terminal.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}
