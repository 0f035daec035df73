// Package expect defines the declarative expectation types evaluated by the
// verifier, plus per-type Validate routines that catch authoring mistakes
// before any verification runs.
//
// Expectations are authored externally (typically derived from freeform
// feedback by an LLM step) and arrive as JSON or YAML; the invariants that
// cannot be encoded in the wire format — path XOR path_pattern, parseable
// regexes, sane bounds — are enforced here. Validation failures are
// warnings surfaced to the operator, not fatal: verification still proceeds
// with whatever was provided.
package expect

import (
	"fmt"
	"regexp"
	"time"

	"codegym/internal/change"
)

// DefaultCommandTimeout applies when a command expectation leaves the
// timeout unset.
const DefaultCommandTimeout = 30 * time.Second

// File asserts on one file's existence and content, or on how many files
// match a glob pattern. Exactly one of Path / PathPattern must be set; the
// exclusivity is checked by Validate, not the type system, so that derived
// JSON can be ingested before being judged.
type File struct {
	Path               string   `json:"path,omitempty" yaml:"path,omitempty"`
	PathPattern        string   `json:"path_pattern,omitempty" yaml:"path_pattern,omitempty"`
	ShouldExist        *bool    `json:"should_exist,omitempty" yaml:"should_exist,omitempty"`
	ContentContains    []string `json:"content_contains,omitempty" yaml:"content_contains,omitempty"`
	ContentNotContains []string `json:"content_not_contains,omitempty" yaml:"content_not_contains,omitempty"`
	ContentMatches     []string `json:"content_matches,omitempty" yaml:"content_matches,omitempty"`
	MinLines           *int     `json:"min_lines,omitempty" yaml:"min_lines,omitempty"`
	MaxLines           *int     `json:"max_lines,omitempty" yaml:"max_lines,omitempty"`
	MinMatchingFiles   int      `json:"min_matching_files,omitempty" yaml:"min_matching_files,omitempty"`
}

// Exists resolves the ShouldExist default (true when unset).
func (f File) Exists() bool {
	return f.ShouldExist == nil || *f.ShouldExist
}

// MinMatches resolves the MinMatchingFiles default (1 when unset).
func (f File) MinMatches() int {
	if f.MinMatchingFiles <= 0 {
		return 1
	}
	return f.MinMatchingFiles
}

// Validate returns one message per authoring mistake found.
func (f File) Validate() []string {
	var errs errlist
	switch {
	case f.Path != "" && f.PathPattern != "":
		errs.add("path and path_pattern are mutually exclusive")
	case f.Path == "" && f.PathPattern == "":
		errs.add("must set either path or path_pattern")
	}
	for _, pat := range f.ContentMatches {
		if _, err := regexp.Compile(pat); err != nil {
			errs.add("invalid regex %q: %v", pat, err)
		}
	}
	if f.MinLines != nil && *f.MinLines < 0 {
		errs.add("min_lines must not be negative (got %d)", *f.MinLines)
	}
	if f.MaxLines != nil && *f.MaxLines < 0 {
		errs.add("max_lines must not be negative (got %d)", *f.MaxLines)
	}
	if f.MinLines != nil && f.MaxLines != nil && *f.MinLines > *f.MaxLines {
		errs.add("min_lines (%d) exceeds max_lines (%d)", *f.MinLines, *f.MaxLines)
	}
	if f.MinMatchingFiles < 0 {
		errs.add("min_matching_files must not be negative (got %d)", f.MinMatchingFiles)
	}
	return errs.msgs
}

// Syntax asserts that a file parses in the named language.
type Syntax struct {
	Path     string `json:"path" yaml:"path"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
}

// Validate returns one message per authoring mistake found.
func (s Syntax) Validate() []string {
	var errs errlist
	if s.Path == "" {
		errs.add("path must be non-empty")
	}
	return errs.msgs
}

// Command asserts on the outcome of one subprocess execution in the
// evaluated root. All sub-checks run against a single execution.
type Command struct {
	Command           []string `json:"command" yaml:"command"`
	ReturnCode        int      `json:"returncode,omitempty" yaml:"returncode,omitempty"`
	StdoutContains    []string `json:"stdout_contains,omitempty" yaml:"stdout_contains,omitempty"`
	StdoutNotContains []string `json:"stdout_not_contains,omitempty" yaml:"stdout_not_contains,omitempty"`
	StderrContains    []string `json:"stderr_contains,omitempty" yaml:"stderr_contains,omitempty"`
	StderrNotContains []string `json:"stderr_not_contains,omitempty" yaml:"stderr_not_contains,omitempty"`
	TimeoutSeconds    int      `json:"timeout,omitempty" yaml:"timeout,omitempty"`
}

// Timeout resolves the wall-clock budget (DefaultCommandTimeout when unset).
func (c Command) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultCommandTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// String renders the argument vector for report labels.
func (c Command) String() string {
	out := ""
	for i, a := range c.Command {
		if i > 0 {
			out += " "
		}
		out += a
	}
	return out
}

// Validate returns one message per authoring mistake found.
func (c Command) Validate() []string {
	var errs errlist
	if len(c.Command) == 0 {
		errs.add("command must not be empty")
	}
	if c.TimeoutSeconds < 0 {
		errs.add("timeout must be positive (got %d)", c.TimeoutSeconds)
	}
	return errs.msgs
}

// Diff constrains the shape of a whole change set, not any single file.
type Diff struct {
	AllowedStatuses        []string `json:"allowed_statuses,omitempty" yaml:"allowed_statuses,omitempty"`
	AllowedPathPatterns    []string `json:"allowed_path_patterns,omitempty" yaml:"allowed_path_patterns,omitempty"`
	DisallowedPathPatterns []string `json:"disallowed_path_patterns,omitempty" yaml:"disallowed_path_patterns,omitempty"`
	MinFilesChanged        *int     `json:"min_files_changed,omitempty" yaml:"min_files_changed,omitempty"`
	MaxFilesChanged        *int     `json:"max_files_changed,omitempty" yaml:"max_files_changed,omitempty"`
	MustIncludePaths       []string `json:"must_include_paths,omitempty" yaml:"must_include_paths,omitempty"`
}

// Validate returns one message per authoring mistake found.
func (d Diff) Validate() []string {
	var errs errlist
	for _, s := range d.AllowedStatuses {
		if !change.Known(change.Status(s)) {
			errs.add("unknown status %q in allowed_statuses", s)
		}
	}
	if d.MinFilesChanged != nil && *d.MinFilesChanged < 0 {
		errs.add("min_files_changed must not be negative (got %d)", *d.MinFilesChanged)
	}
	if d.MaxFilesChanged != nil && *d.MaxFilesChanged < 0 {
		errs.add("max_files_changed must not be negative (got %d)", *d.MaxFilesChanged)
	}
	if d.MinFilesChanged != nil && d.MaxFilesChanged != nil && *d.MinFilesChanged > *d.MaxFilesChanged {
		errs.add("min_files_changed (%d) exceeds max_files_changed (%d)", *d.MinFilesChanged, *d.MaxFilesChanged)
	}
	return errs.msgs
}

// Suite groups the expectations for one evaluation round.
type Suite struct {
	Files    []File    `json:"file_expectations,omitempty" yaml:"file_expectations,omitempty"`
	Syntax   []Syntax  `json:"syntax_expectations,omitempty" yaml:"syntax_expectations,omitempty"`
	Commands []Command `json:"command_expectations,omitempty" yaml:"command_expectations,omitempty"`
	Diffs    []Diff    `json:"diff_expectations,omitempty" yaml:"diff_expectations,omitempty"`
}

// Empty reports whether the suite holds no expectations at all.
func (s Suite) Empty() bool {
	return len(s.Files) == 0 && len(s.Syntax) == 0 && len(s.Commands) == 0 && len(s.Diffs) == 0
}

// Validate aggregates every expectation's issues, each prefixed with its
// position in the suite.
func (s Suite) Validate() []string {
	var all []string
	collect := func(prefix string, i int, msgs []string) {
		for _, m := range msgs {
			all = append(all, fmt.Sprintf("%s[%d]: %s", prefix, i, m))
		}
	}
	for i, f := range s.Files {
		collect("file_expectations", i, f.Validate())
	}
	for i, sx := range s.Syntax {
		collect("syntax_expectations", i, sx.Validate())
	}
	for i, c := range s.Commands {
		collect("command_expectations", i, c.Validate())
	}
	for i, d := range s.Diffs {
		collect("diff_expectations", i, d.Validate())
	}
	return all
}

// errlist aggregates validation messages, one per issue.
type errlist struct {
	msgs []string
}

func (e *errlist) add(format string, args ...any) {
	e.msgs = append(e.msgs, fmt.Sprintf(format, args...))
}
