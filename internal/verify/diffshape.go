package verify

import (
	"fmt"
	"strings"

	"codegym/internal/change"
	"codegym/internal/expect"
	"codegym/internal/glob"
)

// Diffs verifies every diff-shape expectation against one change set.
func Diffs(changes []change.FileChange, exps []expect.Diff) []CheckResult {
	var results []CheckResult
	for _, exp := range exps {
		results = append(results, DiffShape(changes, exp)...)
	}
	return results
}

// DiffShape constrains the shape of the whole change set: statuses, path
// allow/deny patterns, change-count bounds, and required paths. Each
// configured constraint yields its own CheckResult; must-include paths get
// one result per path, independent of the others.
func DiffShape(changes []change.FileChange, exp expect.Diff) []CheckResult {
	var results []CheckResult

	if len(exp.AllowedStatuses) > 0 {
		results = append(results, allowedStatuses(changes, exp.AllowedStatuses))
	}
	if len(exp.AllowedPathPatterns) > 0 {
		results = append(results, allowedPaths(changes, exp.AllowedPathPatterns))
	}
	if len(exp.DisallowedPathPatterns) > 0 {
		results = append(results, disallowedPaths(changes, exp.DisallowedPathPatterns))
	}
	if exp.MinFilesChanged != nil {
		target := fmt.Sprintf("min_files_changed=%d", *exp.MinFilesChanged)
		msg := fmt.Sprintf("%d file(s) changed (min %d)", len(changes), *exp.MinFilesChanged)
		if len(changes) >= *exp.MinFilesChanged {
			results = append(results, pass(KindDiff, target, msg))
		} else {
			results = append(results, fail(KindDiff, target, msg))
		}
	}
	if exp.MaxFilesChanged != nil {
		target := fmt.Sprintf("max_files_changed=%d", *exp.MaxFilesChanged)
		msg := fmt.Sprintf("%d file(s) changed (max %d)", len(changes), *exp.MaxFilesChanged)
		if len(changes) <= *exp.MaxFilesChanged {
			results = append(results, pass(KindDiff, target, msg))
		} else {
			results = append(results, fail(KindDiff, target, msg))
		}
	}
	for _, must := range exp.MustIncludePaths {
		results = append(results, mustInclude(changes, must))
	}

	if len(results) == 0 {
		results = append(results, pass(KindDiff, "diff shape", "No diff constraints configured"))
	}
	return results
}

func allowedStatuses(changes []change.FileChange, allowed []string) CheckResult {
	allowedSet := make(map[change.Status]struct{}, len(allowed))
	for _, s := range allowed {
		allowedSet[change.Status(s)] = struct{}{}
	}
	var violations []string
	for _, c := range changes {
		if _, ok := allowedSet[c.Status]; !ok {
			violations = append(violations, fmt.Sprintf("%s (%s)", c.Path, c.Status))
		}
	}
	target := fmt.Sprintf("allowed_statuses=%s", strings.Join(allowed, ","))
	if len(violations) == 0 {
		return pass(KindDiff, target,
			fmt.Sprintf("All %d change(s) have allowed statuses", len(changes)))
	}
	return failDetails(KindDiff, target,
		fmt.Sprintf("%d change(s) with disallowed status", len(violations)),
		strings.Join(violations, "\n"))
}

func allowedPaths(changes []change.FileChange, patterns []string) CheckResult {
	var violations []string
	for _, c := range changes {
		if !glob.MatchAny(c.Path, patterns) {
			violations = append(violations, c.Path)
		}
	}
	target := fmt.Sprintf("allowed_path_patterns=%s", strings.Join(patterns, ","))
	if len(violations) == 0 {
		return pass(KindDiff, target,
			fmt.Sprintf("All %d changed path(s) match an allowed pattern", len(changes)))
	}
	return failDetails(KindDiff, target,
		fmt.Sprintf("%d changed path(s) match no allowed pattern", len(violations)),
		strings.Join(violations, "\n"))
}

func disallowedPaths(changes []change.FileChange, patterns []string) CheckResult {
	var violations []string
	for _, c := range changes {
		if glob.MatchAny(c.Path, patterns) {
			violations = append(violations, c.Path)
		}
	}
	target := fmt.Sprintf("disallowed_path_patterns=%s", strings.Join(patterns, ","))
	if len(violations) == 0 {
		return pass(KindDiff, target, "No changed path matches a disallowed pattern")
	}
	return failDetails(KindDiff, target,
		fmt.Sprintf("%d changed path(s) match a disallowed pattern", len(violations)),
		strings.Join(violations, "\n"))
}

func mustInclude(changes []change.FileChange, path string) CheckResult {
	target := fmt.Sprintf("must_include %s", path)
	for _, c := range changes {
		if c.Path == path {
			return pass(KindDiff, target,
				fmt.Sprintf("Changed as expected: %s (%s)", path, c.Status))
		}
	}
	return fail(KindDiff, target,
		fmt.Sprintf("Expected change missing: %s", path))
}
