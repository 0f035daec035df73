// Package gitdiff is the repository diff engine: it shells out to the git
// binary to compute working-tree changes against a baseline revision and
// normalizes the output into the shared change model.
//
// This engine is the source of truth whenever the evaluated root sits inside
// a git repository, because only it can report renames, copies, and type
// changes; the snapshot-based content engine structurally cannot.
//
// A plain `git diff <rev>` does not include untracked files, so those are
// unioned in explicitly as "added" changes.
package gitdiff

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"codegym/internal/change"
	"codegym/internal/diff"
	"codegym/internal/logging"
	"codegym/internal/procutil"
)

// commandTimeout bounds every git invocation.
const commandTimeout = 30 * time.Second

// ErrGitUnavailable reports that the git binary is not on PATH.
var ErrGitUnavailable = errors.New("git binary not found on PATH")

// ErrNotRepository reports that the root is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Engine runs git against one repository root.
type Engine struct {
	Root string
	Log  logging.Logger
	// DiffOptions shape the synthesized diffs for untracked files.
	DiffOptions diff.Options
}

// New returns an engine for root. A nil-safe no-op logger is substituted
// when log is nil.
func New(root string, log logging.Logger) *Engine {
	if log == nil {
		log = logging.Nop()
	}
	return &Engine{Root: root, Log: log}
}

// run invokes git with args in the engine root under the command timeout.
func (e *Engine) run(args ...string) (string, error) {
	argv := append([]string{"git"}, args...)
	res, err := procutil.Run(e.Root, argv, commandTimeout)
	if err != nil {
		if errors.Is(err, procutil.ErrNotFound) {
			return "", ErrGitUnavailable
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	if res.TimedOut {
		return "", fmt.Errorf("git %s: timed out after %s", args[0], commandTimeout)
	}
	if res.ExitCode != 0 {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = strings.TrimSpace(res.Stdout)
		}
		return "", fmt.Errorf("git %s: exit %d: %s", args[0], res.ExitCode, msg)
	}
	return res.Stdout, nil
}

// IsRepository reports whether the engine root is inside a git work tree.
// Degrades to false (with no error) when git itself is unavailable.
func (e *Engine) IsRepository() bool {
	out, err := e.run("rev-parse", "--is-inside-work-tree")
	return err == nil && strings.TrimSpace(out) == "true"
}

// Head returns the current branch name, or "HEAD" when detached.
func (e *Engine) Head() (string, error) {
	out, err := e.run("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	branch := strings.TrimSpace(out)
	if branch == "" {
		return "", errors.New("could not resolve HEAD")
	}
	return branch, nil
}

// WorkingTreeClean reports whether the work tree has no uncommitted changes,
// along with the number of dirty entries.
func (e *Engine) WorkingTreeClean() (bool, int, error) {
	out, err := e.run("status", "--porcelain")
	if err != nil {
		return false, 0, err
	}
	trimmed := strings.TrimSpace(out)
	if trimmed == "" {
		return true, 0, nil
	}
	return false, len(strings.Split(trimmed, "\n")), nil
}

// Changes computes the full change set of the working tree (plus untracked
// files) relative to baseline. Output is ordered by status group, then path.
func (e *Engine) Changes(baseline string) ([]change.FileChange, error) {
	if !e.IsRepository() {
		return nil, fmt.Errorf("%w: %s", ErrNotRepository, e.Root)
	}
	raw, err := e.run("diff", "--find-renames", baseline, "--")
	if err != nil {
		return nil, err
	}
	changes := parseRawDiff(raw, e.Log)

	untracked, err := e.untrackedChanges()
	if err != nil {
		return nil, err
	}
	changes = append(changes, untracked...)

	change.Sort(changes)
	return changes, nil
}

// untrackedChanges lists files git does not know about yet and synthesizes
// an "added" change for each, since a revision diff cannot include them.
func (e *Engine) untrackedChanges() ([]change.FileChange, error) {
	out, err := e.run("ls-files", "--others", "--exclude-standard")
	if err != nil {
		return nil, err
	}
	var changes []change.FileChange
	for _, line := range strings.Split(out, "\n") {
		path := strings.TrimSpace(line)
		if path == "" {
			continue
		}
		path = unquotePath(path)
		text, sum, ok := e.readWorkingFile(path)
		if !ok {
			continue
		}
		body, _ := diff.Added(path, text, e.DiffOptions)
		changes = append(changes, change.FileChange{
			Path:        path,
			Status:      change.StatusAdded,
			UnifiedDiff: body,
			AfterHash:   sum,
		})
	}
	sort.Slice(changes, func(i, j int) bool { return changes[i].Path < changes[j].Path })
	return changes, nil
}

// readWorkingFile reads one file under the root. A file that vanished
// between listing and reading is skipped, mirroring the snapshotter.
func (e *Engine) readWorkingFile(rel string) (text, sha string, ok bool) {
	raw, err := os.ReadFile(filepath.Join(e.Root, filepath.FromSlash(rel)))
	if err != nil {
		return "", "", false
	}
	sum := sha256.Sum256(raw)
	if !utf8.Valid(raw) {
		return change.BinaryPlaceholder, hex.EncodeToString(sum[:]), true
	}
	return string(raw), hex.EncodeToString(sum[:]), true
}
