package expect

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `
file_expectations:
  - path: main.go
    content_contains: ["func main"]
    min_lines: 3
  - path_pattern: "**/*_test.go"
    min_matching_files: 2
syntax_expectations:
  - path: main.go
    language: go
command_expectations:
  - command: ["go", "vet", "./..."]
    returncode: 0
    timeout: 60
diff_expectations:
  - allowed_path_patterns: ["src/**"]
    max_files_changed: 10
    must_include_paths: ["src/main.go"]
`

const sampleJSON = `{
  "file_expectations": [
    {"path": "main.go", "content_contains": ["func main"], "min_lines": 3}
  ],
  "command_expectations": [
    {"command": ["go", "vet", "./..."], "returncode": 0, "timeout": 60}
  ]
}`

func TestParseYAML(t *testing.T) {
	s, err := ParseYAML([]byte(sampleYAML))
	if err != nil {
		t.Fatalf("ParseYAML: %v", err)
	}
	if len(s.Files) != 2 || len(s.Syntax) != 1 || len(s.Commands) != 1 || len(s.Diffs) != 1 {
		t.Fatalf("suite = %+v", s)
	}
	if s.Files[0].Path != "main.go" || *s.Files[0].MinLines != 3 {
		t.Fatalf("file[0] = %+v", s.Files[0])
	}
	if s.Files[1].PathPattern != "**/*_test.go" || s.Files[1].MinMatchingFiles != 2 {
		t.Fatalf("file[1] = %+v", s.Files[1])
	}
	if s.Commands[0].TimeoutSeconds != 60 {
		t.Fatalf("command timeout = %d", s.Commands[0].TimeoutSeconds)
	}
	if msgs := s.Validate(); len(msgs) != 0 {
		t.Fatalf("sample should validate cleanly: %v", msgs)
	}
}

func TestParseJSONValid(t *testing.T) {
	s, err := ParseJSON([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	if len(s.Files) != 1 || len(s.Commands) != 1 {
		t.Fatalf("suite = %+v", s)
	}
}

func TestParseJSONRejectsUnknownField(t *testing.T) {
	_, err := ParseJSON([]byte(`{"file_expectations": [{"path": "a", "surprise": true}]}`))
	if err == nil || !strings.Contains(err.Error(), "schema") {
		t.Fatalf("err = %v", err)
	}
}

func TestParseJSONRejectsWrongType(t *testing.T) {
	_, err := ParseJSON([]byte(`{"command_expectations": [{"command": "not a list"}]}`))
	if err == nil {
		t.Fatalf("string command vector should fail schema validation")
	}
}

func TestParseJSONMalformed(t *testing.T) {
	if _, err := ParseJSON([]byte(`{`)); err == nil {
		t.Fatalf("truncated JSON should fail")
	}
}

func TestLoadDispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	yml := filepath.Join(dir, "suite.yaml")
	if err := os.WriteFile(yml, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if s, err := Load(yml); err != nil || len(s.Files) != 2 {
		t.Fatalf("Load yaml: %v", err)
	}

	jsn := filepath.Join(dir, "suite.json")
	if err := os.WriteFile(jsn, []byte(sampleJSON), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if s, err := Load(jsn); err != nil || len(s.Files) != 1 {
		t.Fatalf("Load json: %v", err)
	}

	txt := filepath.Join(dir, "suite.txt")
	if err := os.WriteFile(txt, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(txt); err == nil || !strings.Contains(err.Error(), "unsupported expectation file extension") {
		t.Fatalf("Load txt: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
