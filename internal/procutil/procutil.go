// Package procutil runs caller-specified command vectors under a wall-clock
// timeout, capturing stdout, stderr and the return code separately.
//
// Timeout handling is the one hard requirement here: a command that exceeds
// its budget is terminated together with any children it spawned, with a
// graceful-signal-then-force-kill escalation, and the caller is never left
// waiting indefinitely.
package procutil

import (
	"bytes"
	"errors"
	"os/exec"
	"time"
)

// killGrace is how long a process group gets between the graceful signal
// and the force kill.
const killGrace = 2 * time.Second

// Result is the outcome of one bounded execution. Exactly one process is
// spawned per call; callers run all of their per-command checks against a
// single Result.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
	TimedOut bool
	Duration time.Duration
}

// ErrNotFound reports that the command binary does not exist on PATH.
var ErrNotFound = errors.New("command not found")

// Run executes argv in dir with the given timeout. A zero or negative
// timeout means no limit. The returned error is ErrNotFound when the binary
// is absent, or a start failure; a non-zero exit code is not an error.
func Run(dir string, argv []string, timeout time.Duration) (Result, error) {
	if len(argv) == 0 {
		return Result{}, errors.New("empty command vector")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	setProcessGroup(cmd)

	start := time.Now()
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return Result{}, ErrNotFound
		}
		return Result{}, err
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	var timedOut bool
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case <-done:
		case <-timer.C:
			timedOut = true
			terminateGroup(cmd)
			// Wait must still complete so the process is reaped.
			<-done
		}
	} else {
		<-done
	}

	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: cmd.ProcessState.ExitCode(),
		TimedOut: timedOut,
		Duration: time.Since(start),
	}
	return res, nil
}
