package verify

import (
	"errors"
	"fmt"

	"codegym/internal/expect"
	"codegym/internal/snapshot"
	"codegym/internal/syntax"
)

// SyntaxAll verifies every syntax expectation against the current snapshot.
func SyntaxAll(snap *snapshot.Snapshot, exps []expect.Syntax) []CheckResult {
	var results []CheckResult
	for _, exp := range exps {
		results = append(results, Syntax(snap, exp))
	}
	return results
}

// Syntax parses one file with the per-language validator. A parse failure
// is recorded as a failing CheckResult carrying the parser's message; it is
// never fatal to the run.
func Syntax(snap *snapshot.Snapshot, exp expect.Syntax) CheckResult {
	rec, ok := snap.Get(exp.Path)
	if !ok {
		return fail(KindSyntax, exp.Path,
			fmt.Sprintf("Cannot check syntax: %s not found", exp.Path))
	}
	if !rec.IsText {
		return fail(KindSyntax, exp.Path,
			fmt.Sprintf("Cannot check syntax: %s is binary", exp.Path))
	}

	err := syntax.Check(exp.Path, exp.Language, rec.Text)
	switch {
	case err == nil:
		return pass(KindSyntax, exp.Path,
			fmt.Sprintf("Syntax valid: %s", exp.Path))
	case errors.Is(err, syntax.ErrUnsupported):
		return fail(KindSyntax, exp.Path,
			fmt.Sprintf("Unsupported syntax check language: %s", exp.Language))
	default:
		return failDetails(KindSyntax, exp.Path,
			fmt.Sprintf("Syntax error in %s", exp.Path), err.Error())
	}
}
