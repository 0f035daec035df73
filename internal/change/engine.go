// Content diff engine: classifies paths between two snapshots into
// added / deleted / modified by pure content identity. It cannot see
// renames; that is the repository engine's job.
package change

import (
	"sort"

	"codegym/internal/diff"
	"codegym/internal/snapshot"
)

// BinaryPlaceholder substitutes for content that could not be decoded as
// UTF-8 when synthesizing diff text.
const BinaryPlaceholder = "<binary>\n"

// Compute classifies every path across before and after into three disjoint
// groups and synthesizes a unified diff body per change. Paths present in
// both snapshots with equal hashes emit no FileChange. Each group is walked
// in sorted path order so output is deterministic.
func Compute(before, after *snapshot.Snapshot, opt diff.Options) []FileChange {
	changes := make([]FileChange, 0)

	for _, path := range addedPaths(before, after) {
		rec := after.Files[path]
		body, _ := diff.Added(path, textOrPlaceholder(rec), opt)
		changes = append(changes, FileChange{
			Path:        path,
			Status:      StatusAdded,
			UnifiedDiff: body,
			AfterHash:   rec.SHA256,
		})
	}

	for _, path := range addedPaths(after, before) { // before \ after
		rec := before.Files[path]
		body, _ := diff.Deleted(path, textOrPlaceholder(rec), opt)
		changes = append(changes, FileChange{
			Path:        path,
			Status:      StatusDeleted,
			UnifiedDiff: body,
			BeforeHash:  rec.SHA256,
		})
	}

	for _, path := range commonPaths(before, after) {
		b, a := before.Files[path], after.Files[path]
		if b.SHA256 == a.SHA256 {
			continue
		}
		body, _ := diff.Unified(path, textOrPlaceholder(b), textOrPlaceholder(a), opt)
		changes = append(changes, FileChange{
			Path:        path,
			Status:      StatusModified,
			UnifiedDiff: body,
			BeforeHash:  b.SHA256,
			AfterHash:   a.SHA256,
		})
	}

	return changes
}

func textOrPlaceholder(rec snapshot.FileRecord) string {
	if !rec.IsText {
		return BinaryPlaceholder
	}
	return rec.Text
}

// addedPaths returns the sorted set b \ a.
func addedPaths(a, b *snapshot.Snapshot) []string {
	out := make([]string, 0)
	for p := range b.Files {
		if _, ok := a.Files[p]; !ok {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// commonPaths returns the sorted set a ∩ b.
func commonPaths(a, b *snapshot.Snapshot) []string {
	out := make([]string, 0)
	for p := range a.Files {
		if _, ok := b.Files[p]; ok {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
