// Package change defines the file-change model shared by both diff engines
// and implements the snapshot-based content diff engine.
//
// A FileChange classifies one file's delta between two points in time:
// either between two snapshots (Compute) or between a working tree and a
// version-control baseline (internal/gitdiff, which produces the same type).
package change

import "sort"

// Status classifies one file change.
type Status string

const (
	StatusAdded      Status = "added"
	StatusModified   Status = "modified"
	StatusDeleted    Status = "deleted"
	StatusRenamed    Status = "renamed"
	StatusCopied     Status = "copied"
	StatusTypeChange Status = "typechange"
)

// KnownStatuses enumerates every valid Status value.
var KnownStatuses = []Status{
	StatusAdded, StatusModified, StatusDeleted,
	StatusRenamed, StatusCopied, StatusTypeChange,
}

// Known reports whether s is a member of the status enumeration.
func Known(s Status) bool {
	for _, k := range KnownStatuses {
		if s == k {
			return true
		}
	}
	return false
}

// statusRank fixes the group order for deterministic output:
// added, deleted, modified first (the content engine's groups, in the order
// it emits them), then the statuses only the repository engine can produce.
var statusRank = map[Status]int{
	StatusAdded:      0,
	StatusDeleted:    1,
	StatusModified:   2,
	StatusRenamed:    3,
	StatusCopied:     4,
	StatusTypeChange: 5,
}

// FileChange is one file's classified delta. Immutable once produced.
// OldPath is set only for renames and copies.
type FileChange struct {
	Path        string `json:"path"`
	OldPath     string `json:"oldPath,omitempty"`
	Status      Status `json:"status"`
	UnifiedDiff string `json:"unifiedDiff,omitempty"`
	BeforeHash  string `json:"beforeHash,omitempty"`
	AfterHash   string `json:"afterHash,omitempty"`
}

// Sort orders changes by status group, then lexicographically by path.
func Sort(changes []FileChange) {
	sort.Slice(changes, func(i, j int) bool {
		ri, rj := statusRank[changes[i].Status], statusRank[changes[j].Status]
		if ri != rj {
			return ri < rj
		}
		if changes[i].Path != changes[j].Path {
			return changes[i].Path < changes[j].Path
		}
		return changes[i].OldPath < changes[j].OldPath
	})
}

// Paths returns the current path of every change, preserving order.
func Paths(changes []FileChange) []string {
	out := make([]string, len(changes))
	for i, c := range changes {
		out[i] = c.Path
	}
	return out
}
