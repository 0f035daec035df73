// Package report collects check results into one evaluation report and
// renders/persists it. Reports are terminal output of a round: assembled,
// printed or saved, and not consulted again.
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"codegym/internal/change"
	"codegym/internal/verify"
)

// Report is the outcome of one evaluation round.
type Report struct {
	ID       string               `json:"id"`
	Created  time.Time            `json:"created"`
	Root     string               `json:"root"`
	Baseline string               `json:"baseline,omitempty"`
	Branch   string               `json:"branch,omitempty"`
	Warnings []string             `json:"warnings,omitempty"`
	Changes  []change.FileChange  `json:"changes,omitempty"`
	Checks   []verify.CheckResult `json:"checks"`
	Passed   bool                 `json:"passed"`
}

// New assembles a report. Passed is true iff every check passed and at
// least one check ran.
func New(root string, checks []verify.CheckResult) *Report {
	r := &Report{
		ID:      uuid.NewString(),
		Created: time.Now().UTC(),
		Root:    root,
		Checks:  checks,
		Passed:  len(checks) > 0,
	}
	for _, c := range checks {
		if !c.Passed {
			r.Passed = false
			break
		}
	}
	return r
}

// PassCount returns how many checks passed.
func (r *Report) PassCount() int {
	n := 0
	for _, c := range r.Checks {
		if c.Passed {
			n++
		}
	}
	return n
}

// PassRate is the fraction of passing checks, 0 for an empty report.
func (r *Report) PassRate() float64 {
	if len(r.Checks) == 0 {
		return 0
	}
	return float64(r.PassCount()) / float64(len(r.Checks))
}

// Summary renders the one-line verdict.
func (r *Report) Summary() string {
	status := "FAIL"
	if r.Passed {
		status = "PASS"
	}
	return fmt.Sprintf("[%s] %d/%d checks passed", status, r.PassCount(), len(r.Checks))
}

// Render writes the human-readable report: file changes, validation
// warnings, then one line per check with failure details indented beneath.
func (r *Report) Render(w io.Writer) {
	rule := strings.Repeat("=", 60)
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "EVALUATION REPORT")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Run:  %s\n", r.ID)
	fmt.Fprintf(w, "Root: %s\n", r.Root)
	if r.Branch != "" {
		fmt.Fprintf(w, "Branch: %s\n", r.Branch)
	}
	if r.Baseline != "" {
		fmt.Fprintf(w, "Baseline: %s\n", r.Baseline)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "\nExpectation warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  ! %s\n", warn)
		}
	}

	if len(r.Changes) > 0 {
		fmt.Fprintln(w, "\nFiles changed:")
		for _, c := range r.Changes {
			fmt.Fprintf(w, "  %s %s", statusSymbol(c.Status), c.Path)
			if c.OldPath != "" {
				fmt.Fprintf(w, " (from %s)", c.OldPath)
			}
			fmt.Fprintf(w, " (%s)\n", c.Status)
		}
	}

	fmt.Fprintln(w, "\nChecks:")
	for _, check := range r.Checks {
		icon := "-"
		if check.Passed {
			icon = "+"
		}
		fmt.Fprintf(w, "  [%s] %s\n", icon, check.Message)
		if check.Details != "" && !check.Passed {
			for i, line := range strings.Split(check.Details, "\n") {
				if i == 5 {
					break
				}
				fmt.Fprintf(w, "      %s\n", line)
			}
		}
	}

	fmt.Fprintf(w, "\n%s\n", rule)
	fmt.Fprintf(w, "Results: %s\n", r.Summary())
	fmt.Fprintln(w, rule)
}

func statusSymbol(s change.Status) string {
	switch s {
	case change.StatusAdded:
		return "+"
	case change.StatusModified:
		return "~"
	case change.StatusDeleted:
		return "-"
	case change.StatusRenamed:
		return ">"
	case change.StatusCopied:
		return "="
	case change.StatusTypeChange:
		return "#"
	default:
		return "?"
	}
}
