//go:build unix

package procutil

import (
	"errors"
	"testing"
	"time"
)

func TestRunCapturesStreamsAndExitCode(t *testing.T) {
	res, err := Run(t.TempDir(), []string{"sh", "-c", "echo out; echo err >&2; exit 4"}, 10*time.Second)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stdout != "out\n" || res.Stderr != "err\n" {
		t.Fatalf("streams: %+v", res)
	}
	if res.ExitCode != 4 || res.TimedOut {
		t.Fatalf("result: %+v", res)
	}
}

func TestRunWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	res, err := Run(dir, []string{"pwd"}, 10*time.Second)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	// pwd may resolve symlinks (macOS /tmp), so only check the basename.
	if res.ExitCode != 0 || res.Stdout == "" {
		t.Fatalf("result: %+v", res)
	}
}

func TestRunTimeoutKillsProcess(t *testing.T) {
	start := time.Now()
	res, err := Run(t.TempDir(), []string{"sleep", "30"}, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.TimedOut {
		t.Fatalf("expected timeout: %+v", res)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("kill escalation took too long: %v", elapsed)
	}
}

func TestRunTimeoutKillsChildren(t *testing.T) {
	// The child sleep is in the same process group, so the group signal
	// must take the whole tree down.
	start := time.Now()
	res, err := Run(t.TempDir(), []string{"sh", "-c", "sleep 30 & wait"}, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.TimedOut {
		t.Fatalf("expected timeout: %+v", res)
	}
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Fatalf("child survived the group kill: %v", elapsed)
	}
}

func TestRunNotFound(t *testing.T) {
	_, err := Run(t.TempDir(), []string{"definitely-not-a-binary-7f3a"}, time.Second)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestRunEmptyVector(t *testing.T) {
	if _, err := Run(t.TempDir(), nil, time.Second); err == nil {
		t.Fatalf("expected error for empty vector")
	}
}

func TestRunNoTimeout(t *testing.T) {
	res, err := Run(t.TempDir(), []string{"true"}, 0)
	if err != nil || res.ExitCode != 0 || res.TimedOut {
		t.Fatalf("res=%+v err=%v", res, err)
	}
}
