package verify

import (
	"fmt"
	"regexp"
	"strings"

	"codegym/internal/expect"
	"codegym/internal/glob"
	"codegym/internal/snapshot"
)

// Files verifies every file expectation against the current snapshot.
func Files(snap *snapshot.Snapshot, exps []expect.File) []CheckResult {
	var results []CheckResult
	for _, exp := range exps {
		results = append(results, File(snap, exp)...)
	}
	return results
}

// File verifies one file expectation. A literal path fans out into one
// CheckResult per configured content/line check; a path pattern collapses
// into a single aggregate match-count check.
func File(snap *snapshot.Snapshot, exp expect.File) []CheckResult {
	if exp.PathPattern != "" && exp.Path == "" {
		return []CheckResult{matchCount(snap, exp)}
	}
	return literalFile(snap, exp)
}

// matchCount expands the pattern over the snapshot's path set and passes
// iff the number of matching paths reaches the expectation's minimum.
func matchCount(snap *snapshot.Snapshot, exp expect.File) CheckResult {
	re := glob.Compile(exp.PathPattern)
	count := 0
	for _, p := range snap.Paths() {
		if re.MatchString(p) {
			count++
		}
	}
	min := exp.MinMatches()
	target := fmt.Sprintf("pattern %s", exp.PathPattern)
	msg := fmt.Sprintf("%d file(s) match pattern %q (min %d)", count, exp.PathPattern, min)
	if count >= min {
		return pass(KindFile, target, msg)
	}
	return fail(KindFile, target, msg)
}

func literalFile(snap *snapshot.Snapshot, exp expect.File) []CheckResult {
	rec, exists := snap.Get(exp.Path)

	// Existence first; content checks only run when the file exists and
	// should.
	switch {
	case exp.Exists() && !exists:
		return []CheckResult{fail(KindFile, exp.Path,
			fmt.Sprintf("File %s should exist but was not found", exp.Path))}
	case !exp.Exists() && exists:
		return []CheckResult{fail(KindFile, exp.Path,
			fmt.Sprintf("File %s should not exist but was found", exp.Path))}
	case !exp.Exists() && !exists:
		return []CheckResult{pass(KindFile, exp.Path,
			fmt.Sprintf("File %s correctly does not exist", exp.Path))}
	}

	if !rec.IsText && hasContentChecks(exp) {
		return binaryFailures(exp)
	}

	var results []CheckResult
	results = append(results, containsChecks(exp.Path, rec.Text, exp.ContentContains)...)
	results = append(results, regexChecks(exp.Path, rec.Text, exp.ContentMatches)...)
	results = append(results, notContainsChecks(exp.Path, rec.Text, exp.ContentNotContains)...)
	results = append(results, lineCountChecks(exp.Path, rec.Text, exp)...)

	if len(results) == 0 {
		results = append(results, pass(KindFile, exp.Path,
			fmt.Sprintf("File %s exists", exp.Path)))
	}
	return results
}

func hasContentChecks(exp expect.File) bool {
	return len(exp.ContentContains) > 0 || len(exp.ContentNotContains) > 0 ||
		len(exp.ContentMatches) > 0 || exp.MinLines != nil || exp.MaxLines != nil
}

// binaryFailures fails every configured content check with a distinct
// binary-file message: binary content cannot be searched or line-counted.
func binaryFailures(exp expect.File) []CheckResult {
	var results []CheckResult
	binary := func(target string) CheckResult {
		return fail(KindFile, target,
			fmt.Sprintf("File %s is binary; cannot check content", exp.Path))
	}
	for _, s := range exp.ContentContains {
		results = append(results, binary(fmt.Sprintf("%s contains %q", exp.Path, s)))
	}
	for _, p := range exp.ContentMatches {
		results = append(results, binary(fmt.Sprintf("%s matches /%s/", exp.Path, p)))
	}
	for _, s := range exp.ContentNotContains {
		results = append(results, binary(fmt.Sprintf("%s excludes %q", exp.Path, s)))
	}
	if exp.MinLines != nil {
		results = append(results, binary(fmt.Sprintf("%s min_lines=%d", exp.Path, *exp.MinLines)))
	}
	if exp.MaxLines != nil {
		results = append(results, binary(fmt.Sprintf("%s max_lines=%d", exp.Path, *exp.MaxLines)))
	}
	return results
}

func containsChecks(path, content string, subs []string) []CheckResult {
	var results []CheckResult
	for _, sub := range subs {
		target := fmt.Sprintf("%s contains %q", path, sub)
		if strings.Contains(content, sub) {
			results = append(results, pass(KindFile, target,
				fmt.Sprintf("Found: %q in %s", sub, path)))
		} else {
			results = append(results, fail(KindFile, target,
				fmt.Sprintf("Missing: %q in %s", sub, path)))
		}
	}
	return results
}

// regexChecks runs each pattern as a search (unanchored), not a full match.
func regexChecks(path, content string, patterns []string) []CheckResult {
	var results []CheckResult
	for _, pat := range patterns {
		target := fmt.Sprintf("%s matches /%s/", path, pat)
		re, err := regexp.Compile(pat)
		if err != nil {
			results = append(results, failDetails(KindFile, target,
				fmt.Sprintf("Invalid regex /%s/ for %s", pat, path), err.Error()))
			continue
		}
		if re.MatchString(content) {
			results = append(results, pass(KindFile, target,
				fmt.Sprintf("Matched: /%s/ in %s", pat, path)))
		} else {
			results = append(results, fail(KindFile, target,
				fmt.Sprintf("No match: /%s/ in %s", pat, path)))
		}
	}
	return results
}

func notContainsChecks(path, content string, subs []string) []CheckResult {
	var results []CheckResult
	for _, sub := range subs {
		target := fmt.Sprintf("%s excludes %q", path, sub)
		if !strings.Contains(content, sub) {
			results = append(results, pass(KindFile, target,
				fmt.Sprintf("Excluded: %q in %s", sub, path)))
		} else {
			results = append(results, fail(KindFile, target,
				fmt.Sprintf("Found (unexpected): %q in %s", sub, path)))
		}
	}
	return results
}

// lineCountChecks bounds the number of line breaks in the text.
func lineCountChecks(path, content string, exp expect.File) []CheckResult {
	var results []CheckResult
	count := strings.Count(content, "\n")
	if exp.MinLines != nil {
		target := fmt.Sprintf("%s min_lines=%d", path, *exp.MinLines)
		msg := fmt.Sprintf("%s: %d lines (min %d)", path, count, *exp.MinLines)
		if count >= *exp.MinLines {
			results = append(results, pass(KindFile, target, msg))
		} else {
			results = append(results, fail(KindFile, target, msg))
		}
	}
	if exp.MaxLines != nil {
		target := fmt.Sprintf("%s max_lines=%d", path, *exp.MaxLines)
		msg := fmt.Sprintf("%s: %d lines (max %d)", path, count, *exp.MaxLines)
		if count <= *exp.MaxLines {
			results = append(results, pass(KindFile, target, msg))
		} else {
			results = append(results, fail(KindFile, target, msg))
		}
	}
	return results
}
