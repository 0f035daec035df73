// Package main provides the codegym CLI: it evaluates a working directory
// against a declarative expectation suite, optionally diffing the tree
// against a git baseline revision or an earlier copy of the directory, and
// prints a pass/fail report.
//
// Modes (diff source):
//   - git      : codegym --expect exp.yaml --baseline HEAD~1 <root>
//   - content  : codegym --expect exp.yaml --before /path/to/copy <root>
//   - verify   : codegym --expect exp.yaml <root>   (no diff expectations)
//
// Exit codes: 0 all checks passed, 1 at least one check failed,
// 2 usage or environment error.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"codegym/internal/change"
	"codegym/internal/diff"
	"codegym/internal/expect"
	"codegym/internal/gitdiff"
	"codegym/internal/logging"
	"codegym/internal/report"
	"codegym/internal/snapshot"
	"codegym/internal/verify"
)

// Config holds the parsed CLI flags plus the positional root.
type Config struct {
	root        string
	expectPath  string
	baseline    string
	beforeDir   string
	outPath     string
	diffContext int
	maxDiff     int
	strict      bool
	verbose     bool
	logJSON     bool
}

type mode string

const (
	modeGit     mode = "git"
	modeContent mode = "content"
	modeVerify  mode = "verify"
)

func parseFlags(args []string) (Config, error) {
	fs := pflag.NewFlagSet("codegym", pflag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: codegym --expect <suite.yaml|.json> [flags] <root>\n\n")
		fs.PrintDefaults()
	}

	var cfg Config
	fs.StringVarP(&cfg.expectPath, "expect", "e", "", "expectation suite file (.yaml, .yml, or .json)")
	fs.StringVarP(&cfg.baseline, "baseline", "b", "", "git revision to diff the working tree against")
	fs.StringVar(&cfg.beforeDir, "before", "", "earlier copy of the tree to diff against (content engine)")
	fs.StringVarP(&cfg.outPath, "out", "o", "", "write the report as JSON to this path")
	fs.IntVar(&cfg.diffContext, "diff-context", 3, "context lines in unified diffs")
	fs.IntVar(&cfg.maxDiff, "max-diff-bytes", 2_000_000, "max bytes per generated diff (0 = no limit)")
	fs.BoolVar(&cfg.strict, "strict", false, "treat expectation validation warnings as fatal")
	fs.BoolVarP(&cfg.verbose, "verbose", "v", false, "verbose diagnostics")
	fs.BoolVar(&cfg.logJSON, "log-json", false, "emit diagnostics as JSON lines")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.expectPath == "" {
		return Config{}, errors.New("--expect is required")
	}
	if fs.NArg() != 1 {
		return Config{}, errors.New("exactly one <root> directory is required")
	}
	cfg.root = fs.Arg(0)
	return cfg, nil
}

// selectMode picks the diff source. --baseline and --before are mutually
// exclusive; with neither, diff expectations have nothing to run against,
// which is an error when the suite contains any.
func selectMode(cfg Config, suite *expect.Suite) (mode, error) {
	switch {
	case cfg.baseline != "" && cfg.beforeDir != "":
		return "", errors.New("--baseline and --before are mutually exclusive")
	case cfg.baseline != "":
		return modeGit, nil
	case cfg.beforeDir != "":
		return modeContent, nil
	case len(suite.Diffs) > 0:
		return "", errors.New("suite has diff expectations; pass --baseline <rev> or --before <dir>")
	default:
		return modeVerify, nil
	}
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintln(stderr, "ERROR:", err)
		return 2
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	log := logging.NewText(stderr, level)
	if cfg.logJSON {
		log = logging.NewJSON(stderr, level)
	}

	suite, err := expect.Load(cfg.expectPath)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 2
	}
	if suite.Empty() {
		fmt.Fprintln(stderr, "ERROR: expectation suite is empty")
		return 2
	}

	// Authoring mistakes are warnings by default; verification still runs
	// with whatever was provided unless --strict is set.
	warnings := suite.Validate()
	for _, w := range warnings {
		log.Warn("invalid expectation", "issue", w)
	}
	if cfg.strict && len(warnings) > 0 {
		fmt.Fprintf(stderr, "ERROR: %d validation issue(s) with --strict\n", len(warnings))
		return 2
	}

	m, err := selectMode(cfg, suite)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 2
	}

	rep, err := evaluate(cfg, m, suite, warnings, log)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return 2
	}

	rep.Render(stdout)
	if cfg.outPath != "" {
		if err := report.Save(cfg.outPath, rep); err != nil {
			fmt.Fprintln(stderr, "ERROR: saving report:", err)
			return 2
		}
		log.Debug("report saved", "path", cfg.outPath)
	}

	if rep.Passed {
		return 0
	}
	return 1
}

// evaluate runs one full round: snapshot, diff, verify, assemble.
func evaluate(cfg Config, m mode, suite *expect.Suite, warnings []string, log logging.Logger) (*report.Report, error) {
	opts := diff.Options{Context: cfg.diffContext, MaxBytes: cfg.maxDiff}

	snap, err := snapshot.Capture(cfg.root, snapshot.Options{})
	if err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", cfg.root, err)
	}
	log.Debug("snapshot captured", "root", cfg.root, "files", snap.Len())

	var changes []change.FileChange
	var branch string
	switch m {
	case modeGit:
		engine := gitdiff.New(cfg.root, log)
		engine.DiffOptions = opts
		changes, err = engine.Changes(cfg.baseline)
		if err != nil {
			return nil, err
		}
		if b, herr := engine.Head(); herr == nil {
			branch = b
		}
	case modeContent:
		before, err := snapshot.Capture(cfg.beforeDir, snapshot.Options{})
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", cfg.beforeDir, err)
		}
		changes = change.Compute(before, snap, opts)
	}

	var checks []verify.CheckResult
	checks = append(checks, verify.Files(snap, suite.Files)...)
	checks = append(checks, verify.SyntaxAll(snap, suite.Syntax)...)
	checks = append(checks, verify.Commands(cfg.root, suite.Commands)...)
	if m != modeVerify {
		checks = append(checks, verify.Diffs(changes, suite.Diffs)...)
	}

	rep := report.New(cfg.root, checks)
	rep.Baseline = cfg.baseline
	rep.Branch = branch
	rep.Warnings = warnings
	rep.Changes = changes
	return rep, nil
}
