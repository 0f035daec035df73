package verify

import (
	"strings"
	"testing"

	"codegym/internal/expect"
)

func TestCommandReturnCode(t *testing.T) {
	results := Command(t.TempDir(), expect.Command{Command: []string{"sh", "-c", "exit 0"}})
	if len(results) != 1 || !results[0].Passed {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Message != "OK: `sh -c exit 0` returned 0" {
		t.Fatalf("message = %q", results[0].Message)
	}

	results = Command(t.TempDir(), expect.Command{Command: []string{"sh", "-c", "exit 3"}})
	if results[0].Passed {
		t.Fatalf("rc 3 vs expected 0 should fail: %+v", results)
	}
	if !strings.Contains(results[0].Message, "returned 3 (expected 0)") {
		t.Fatalf("message = %q", results[0].Message)
	}

	results = Command(t.TempDir(), expect.Command{Command: []string{"sh", "-c", "exit 3"}, ReturnCode: 3})
	if !results[0].Passed {
		t.Fatalf("expected rc matches: %+v", results)
	}
}

func TestCommandStreamChecks(t *testing.T) {
	exp := expect.Command{
		Command:           []string{"sh", "-c", "echo hello; echo oops >&2"},
		StdoutContains:    []string{"hello"},
		StdoutNotContains: []string{"oops"},
		StderrContains:    []string{"oops"},
	}
	results := Command(t.TempDir(), exp)
	if len(results) != 4 {
		t.Fatalf("got %d results, want 4: %+v", len(results), results)
	}
	for _, r := range results {
		if !r.Passed {
			t.Fatalf("unexpected failure: %+v", r)
		}
	}
}

func TestCommandStreamFailureCarriesOutput(t *testing.T) {
	exp := expect.Command{
		Command:        []string{"sh", "-c", "echo actual"},
		StdoutContains: []string{"expected"},
	}
	results := Command(t.TempDir(), exp)
	var found bool
	for _, r := range results {
		if strings.HasPrefix(r.Message, "Missing:") {
			found = true
			if !strings.Contains(r.Details, "actual") {
				t.Fatalf("details should carry the captured stream: %+v", r)
			}
		}
	}
	if !found {
		t.Fatalf("no missing-substring failure: %+v", results)
	}
}

func TestCommandTimeout(t *testing.T) {
	exp := expect.Command{Command: []string{"sleep", "10"}, TimeoutSeconds: 1}
	results := Command(t.TempDir(), exp)
	if len(results) != 1 || results[0].Passed {
		t.Fatalf("results = %+v", results)
	}
	if !strings.Contains(results[0].Message, "timed out") {
		t.Fatalf("message = %q", results[0].Message)
	}
}

func TestCommandNotFound(t *testing.T) {
	exp := expect.Command{Command: []string{"definitely-not-a-binary-7f3a"}}
	results := Command(t.TempDir(), exp)
	if len(results) != 1 || results[0].Passed {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Message != "Command not found: `definitely-not-a-binary-7f3a`" {
		t.Fatalf("message = %q", results[0].Message)
	}
}

func TestCommandsBatchContinuesPastFailures(t *testing.T) {
	exps := []expect.Command{
		{Command: []string{"definitely-not-a-binary-7f3a"}},
		{Command: []string{"sh", "-c", "exit 0"}},
	}
	results := Commands(t.TempDir(), exps)
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Passed || !results[1].Passed {
		t.Fatalf("one bad command must not stop the batch: %+v", results)
	}
}
