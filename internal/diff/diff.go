// Package diff produces unified-diff text for file changes. It wraps
// github.com/pmezard/go-difflib/difflib to emit classic unified patches
// (---/+++ headers, @@ hunks, lines prefixed with ' ', '-', '+').
package diff

import (
	"fmt"
	"strings"

	difflib "github.com/pmezard/go-difflib/difflib"
)

// Options controls patch generation.
type Options struct {
	// MaxBytes is a guardrail on input size (old+new). When exceeded, a
	// minimal placeholder patch is returned and oversize=true. 0 = no limit.
	MaxBytes int

	// Context is the number of context lines in unified hunks. 0 defaults to 3.
	Context int
}

// Unified produces a unified patch for aText -> bText, labeled a/<path> and
// b/<path>. Returns the patch body and a flag set when the input exceeded
// the size guardrail.
func Unified(path, aText, bText string, opt Options) (body string, oversize bool) {
	aName, bName := "a/"+path, "b/"+path
	if opt.MaxBytes > 0 && len(aText)+len(bText) > opt.MaxBytes {
		return omitted(aName, bName), true
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(aText),
		B:        splitLinesKeepNL(bText),
		FromFile: aName,
		ToFile:   bName,
		Context:  contextLines(opt),
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil || s == "" {
		return omitted(aName, bName), false
	}
	return s, false
}

// Added produces a patch that introduces the entire content at path.
func Added(path, text string, opt Options) (string, bool) {
	if opt.MaxBytes > 0 && len(text) > opt.MaxBytes {
		return omitted("/dev/null", path), true
	}
	u := difflib.UnifiedDiff{
		A:        []string{},
		B:        splitLinesKeepNL(text),
		FromFile: "/dev/null",
		ToFile:   path,
		Context:  contextLines(opt),
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil || s == "" {
		return omitted("/dev/null", path), false
	}
	return s, false
}

// Deleted produces a patch that removes the entire content at path.
func Deleted(path, text string, opt Options) (string, bool) {
	if opt.MaxBytes > 0 && len(text) > opt.MaxBytes {
		return omitted(path, "/dev/null"), true
	}
	u := difflib.UnifiedDiff{
		A:        splitLinesKeepNL(text),
		B:        []string{},
		FromFile: path,
		ToFile:   "/dev/null",
		Context:  contextLines(opt),
	}
	s, err := difflib.GetUnifiedDiffString(u)
	if err != nil || s == "" {
		return omitted(path, "/dev/null"), false
	}
	return s, false
}

func contextLines(opt Options) int {
	if opt.Context <= 0 {
		return 3
	}
	return opt.Context
}

// splitLinesKeepNL splits into lines keeping the trailing newline on each
// element, which produces better unified hunks. A file that does not end in
// a newline keeps its final chunk without one.
func splitLinesKeepNL(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.SplitAfter(s, "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return parts
}

// omitted returns a compact placeholder when size limits are exceeded or the
// diff library returns nothing for a non-empty change.
func omitted(aName, bName string) string {
	return fmt.Sprintf("--- %s\n+++ %s\n@@\n# diff omitted\n", aName, bName)
}
