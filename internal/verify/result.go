// Package verify evaluates declarative expectations against live filesystem
// state, diff results, and subprocess output, producing typed check results.
//
// Every verification function is pure given its inputs: no retries, no
// hidden state, one subprocess at most. Environment problems (missing file,
// absent binary, timeout) become failing CheckResults with descriptive
// messages — never a returned error — so one bad expectation can never stop
// the rest of the batch.
package verify

// Kind tags which expectation family produced a CheckResult.
type Kind string

const (
	KindFile    Kind = "file"
	KindSyntax  Kind = "syntax"
	KindCommand Kind = "command"
	KindDiff    Kind = "diff"
)

// CheckResult is one atomic pass/fail outcome. A single expectation can fan
// out into many of these.
type CheckResult struct {
	Kind    Kind   `json:"kind"`
	Target  string `json:"target"`
	Passed  bool   `json:"passed"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func pass(kind Kind, target, message string) CheckResult {
	return CheckResult{Kind: kind, Target: target, Passed: true, Message: message}
}

func fail(kind Kind, target, message string) CheckResult {
	return CheckResult{Kind: kind, Target: target, Passed: false, Message: message}
}

func failDetails(kind Kind, target, message, details string) CheckResult {
	return CheckResult{Kind: kind, Target: target, Passed: false, Message: message, Details: details}
}

// truncate limits detail payloads embedded in results.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
