package verify

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"testing"

	"codegym/internal/expect"
	"codegym/internal/snapshot"
)

func intPtr(n int) *int    { return &n }
func boolPtr(b bool) *bool { return &b }

// snapOf builds a snapshot from literal text contents. A nil value marks a
// binary file.
func snapOf(files map[string]*string) *snapshot.Snapshot {
	s := &snapshot.Snapshot{Root: "/test", Files: make(map[string]snapshot.FileRecord)}
	for path, text := range files {
		rec := snapshot.FileRecord{Path: path}
		if text != nil {
			sum := sha256.Sum256([]byte(*text))
			rec.SHA256 = hex.EncodeToString(sum[:])
			rec.IsText = true
			rec.Text = *text
		}
		s.Files[path] = rec
	}
	return s
}

func str(s string) *string { return &s }

func onlyFailures(results []CheckResult) []CheckResult {
	var out []CheckResult
	for _, r := range results {
		if !r.Passed {
			out = append(out, r)
		}
	}
	return out
}

func TestFileExistence(t *testing.T) {
	snap := snapOf(map[string]*string{"app.py": str("def hello():\n    return 'hi'\n")})

	results := File(snap, expect.File{Path: "app.py"})
	if len(results) != 1 || !results[0].Passed {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Message != "File app.py exists" {
		t.Fatalf("message = %q", results[0].Message)
	}

	results = File(snap, expect.File{Path: "missing.py"})
	if len(results) != 1 || results[0].Passed {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Message != "File missing.py should exist but was not found" {
		t.Fatalf("message = %q", results[0].Message)
	}
}

func TestFileShouldNotExist(t *testing.T) {
	snap := snapOf(map[string]*string{"app.py": str("x\n")})

	results := File(snap, expect.File{Path: "app.py", ShouldExist: boolPtr(false)})
	if results[0].Passed || results[0].Message != "File app.py should not exist but was found" {
		t.Fatalf("results = %+v", results)
	}

	results = File(snap, expect.File{Path: "gone.py", ShouldExist: boolPtr(false)})
	if !results[0].Passed || results[0].Message != "File gone.py correctly does not exist" {
		t.Fatalf("results = %+v", results)
	}
}

func TestFileContentChecks(t *testing.T) {
	content := "def hello():\n    return 'hi'\n"
	snap := snapOf(map[string]*string{"app.py": str(content)})

	exp := expect.File{
		Path:               "app.py",
		ContentContains:    []string{"def hello", "return"},
		ContentNotContains: []string{"import os"},
		ContentMatches:     []string{`def \w+\(\):`},
		MinLines:           intPtr(2),
		MaxLines:           intPtr(10),
	}
	results := File(snap, exp)
	if len(results) != 6 {
		t.Fatalf("got %d results, want 6: %+v", len(results), results)
	}
	if fails := onlyFailures(results); len(fails) != 0 {
		t.Fatalf("unexpected failures: %+v", fails)
	}
	if results[0].Message != `Found: "def hello" in app.py` {
		t.Fatalf("message = %q", results[0].Message)
	}
}

func TestFileContentFailureMessages(t *testing.T) {
	snap := snapOf(map[string]*string{"app.py": str("pass\n")})

	exp := expect.File{
		Path:               "app.py",
		ContentContains:    []string{"def hello"},
		ContentNotContains: []string{"pass"},
		MinLines:           intPtr(5),
	}
	results := File(snap, exp)
	fails := onlyFailures(results)
	if len(fails) != 3 {
		t.Fatalf("fails = %+v", fails)
	}
	if fails[0].Message != `Missing: "def hello" in app.py` {
		t.Fatalf("message = %q", fails[0].Message)
	}
	if fails[1].Message != `Found (unexpected): "pass" in app.py` {
		t.Fatalf("message = %q", fails[1].Message)
	}
	if fails[2].Message != "app.py: 1 lines (min 5)" {
		t.Fatalf("message = %q", fails[2].Message)
	}
}

func TestFileInvalidRegexFailsCheck(t *testing.T) {
	snap := snapOf(map[string]*string{"app.py": str("x\n")})
	results := File(snap, expect.File{Path: "app.py", ContentMatches: []string{"[bad"}})
	if len(results) != 1 || results[0].Passed {
		t.Fatalf("results = %+v", results)
	}
	if !strings.Contains(results[0].Message, "Invalid regex") || results[0].Details == "" {
		t.Fatalf("result = %+v", results[0])
	}
}

func TestFileBinaryContentChecksFail(t *testing.T) {
	snap := snapOf(map[string]*string{"blob.bin": nil})
	results := File(snap, expect.File{Path: "blob.bin", ContentContains: []string{"x"}, MinLines: intPtr(1)})
	if len(results) != 2 {
		t.Fatalf("results = %+v", results)
	}
	for _, r := range results {
		if r.Passed || r.Message != "File blob.bin is binary; cannot check content" {
			t.Fatalf("result = %+v", r)
		}
	}

	// Bare existence still passes for a binary file.
	results = File(snap, expect.File{Path: "blob.bin"})
	if len(results) != 1 || !results[0].Passed {
		t.Fatalf("results = %+v", results)
	}
}

func TestFilePatternMatchCount(t *testing.T) {
	snap := snapOf(map[string]*string{
		"a_test.go":     str("x"),
		"sub/b_test.go": str("x"),
		"main.go":       str("x"),
	})

	results := File(snap, expect.File{PathPattern: "**/*_test.go", MinMatchingFiles: 2})
	if len(results) != 1 || !results[0].Passed {
		t.Fatalf("results = %+v", results)
	}
	if results[0].Message != `2 file(s) match pattern "**/*_test.go" (min 2)` {
		t.Fatalf("message = %q", results[0].Message)
	}

	results = File(snap, expect.File{PathPattern: "*.py"})
	if results[0].Passed {
		t.Fatalf("no .py file should fail the default minimum of 1: %+v", results)
	}
}

func TestFilesBatch(t *testing.T) {
	snap := snapOf(map[string]*string{"a.txt": str("hi\n")})
	results := Files(snap, []expect.File{
		{Path: "a.txt"},
		{Path: "b.txt"},
	})
	if len(results) != 2 || !results[0].Passed || results[1].Passed {
		t.Fatalf("results = %+v", results)
	}
}
