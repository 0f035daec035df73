package verify

import (
	"errors"
	"fmt"
	"strings"

	"codegym/internal/expect"
	"codegym/internal/procutil"
)

// detailLimit bounds captured output embedded in failing results.
const detailLimit = 300

// Commands verifies every command expectation, each against its own single
// subprocess execution.
func Commands(root string, exps []expect.Command) []CheckResult {
	var results []CheckResult
	for _, exp := range exps {
		results = append(results, Command(root, exp)...)
	}
	return results
}

// Command executes the expectation's argument vector once in root under its
// wall-clock timeout and runs every configured sub-check against that one
// execution. Timeouts and a missing binary each produce their own distinct
// failing result.
func Command(root string, exp expect.Command) []CheckResult {
	cmdStr := exp.String()
	if len(exp.Command) == 0 {
		return []CheckResult{fail(KindCommand, "(empty)", "Command vector is empty")}
	}

	res, err := procutil.Run(root, exp.Command, exp.Timeout())
	if err != nil {
		if errors.Is(err, procutil.ErrNotFound) {
			return []CheckResult{fail(KindCommand, cmdStr,
				fmt.Sprintf("Command not found: `%s`", cmdStr))}
		}
		return []CheckResult{failDetails(KindCommand, cmdStr,
			fmt.Sprintf("Could not run `%s`", cmdStr), err.Error())}
	}
	if res.TimedOut {
		return []CheckResult{fail(KindCommand, cmdStr,
			fmt.Sprintf("Command timed out after %s: `%s`", exp.Timeout(), cmdStr))}
	}

	var results []CheckResult

	rcTarget := fmt.Sprintf("%s (rc=%d)", cmdStr, exp.ReturnCode)
	if res.ExitCode == exp.ReturnCode {
		results = append(results, pass(KindCommand, rcTarget,
			fmt.Sprintf("OK: `%s` returned %d", cmdStr, res.ExitCode)))
	} else {
		results = append(results, failDetails(KindCommand, rcTarget,
			fmt.Sprintf("FAIL: `%s` returned %d (expected %d)", cmdStr, res.ExitCode, exp.ReturnCode),
			truncate(res.Stderr, detailLimit)))
	}

	results = append(results, streamChecks(cmdStr, "stdout", res.Stdout, exp.StdoutContains, exp.StdoutNotContains)...)
	results = append(results, streamChecks(cmdStr, "stderr", res.Stderr, exp.StderrContains, exp.StderrNotContains)...)
	return results
}

func streamChecks(cmdStr, stream, output string, contains, notContains []string) []CheckResult {
	var results []CheckResult
	for _, sub := range contains {
		target := fmt.Sprintf("%s %s contains %q", cmdStr, stream, sub)
		if strings.Contains(output, sub) {
			results = append(results, pass(KindCommand, target,
				fmt.Sprintf("Found: %q in %s of `%s`", sub, stream, cmdStr)))
		} else {
			results = append(results, failDetails(KindCommand, target,
				fmt.Sprintf("Missing: %q in %s of `%s`", sub, stream, cmdStr),
				fmt.Sprintf("%s: %s", stream, truncate(output, detailLimit))))
		}
	}
	for _, sub := range notContains {
		target := fmt.Sprintf("%s %s excludes %q", cmdStr, stream, sub)
		if !strings.Contains(output, sub) {
			results = append(results, pass(KindCommand, target,
				fmt.Sprintf("Excluded: %q in %s of `%s`", sub, stream, cmdStr)))
		} else {
			results = append(results, failDetails(KindCommand, target,
				fmt.Sprintf("Found (unexpected): %q in %s of `%s`", sub, stream, cmdStr),
				fmt.Sprintf("%s: %s", stream, truncate(output, detailLimit))))
		}
	}
	return results
}
