// Package snapshot captures the observable state of a directory tree as a
// content-addressed map of file records. Snapshots are ephemeral: they are
// built with one full walk, compared against another snapshot, and discarded.
//
// Conventions:
//   - Paths are root-relative with forward slashes.
//   - A fixed denylist of tooling directories plus every dotfile/dotdir is
//     skipped during the walk.
//   - Per-file I/O errors (permission denied, file vanished mid-walk) omit
//     that file from the snapshot; they never abort the walk.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultSkipDirs lists directory base names excluded from every walk.
// Dotdirs (.git, editor caches) are excluded by the dotfile rule already;
// the denylist covers the common non-dot tooling directories.
var DefaultSkipDirs = []string{
	".git", "node_modules", "__pycache__", "dist", "build", "out", "target",
}

// FileRecord is one file's observed state at capture time. Immutable once
// captured. Binary files (content not decodable as UTF-8) carry no Text.
type FileRecord struct {
	Path    string    `json:"path"`
	SHA256  string    `json:"sha256"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
	IsText  bool      `json:"isText"`
	Text    string    `json:"-"`
}

// Snapshot maps relative path to FileRecord for one directory tree.
type Snapshot struct {
	Root  string
	Files map[string]FileRecord
}

// Options controls the walk.
type Options struct {
	// SkipDirs replaces DefaultSkipDirs when non-nil.
	SkipDirs []string
}

// Capture walks root and records every regular, non-hidden file.
// The returned error is non-nil only when root itself cannot be walked.
func Capture(root string, opts Options) (*Snapshot, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	skip := opts.SkipDirs
	if skip == nil {
		skip = DefaultSkipDirs
	}
	skipSet := make(map[string]struct{}, len(skip))
	for _, d := range skip {
		skipSet[d] = struct{}{}
	}

	snap := &Snapshot{Root: rootAbs, Files: make(map[string]FileRecord)}
	err = filepath.WalkDir(rootAbs, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Entry vanished or is unreadable; skip it, keep walking,
			// unless the root itself is broken.
			if path == rootAbs {
				return err
			}
			return nil
		}
		base := d.Name()
		if d.IsDir() {
			if path == rootAbs {
				return nil
			}
			if _, bad := skipSet[base]; bad || strings.HasPrefix(base, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(base, ".") {
			return nil
		}
		rel, rerr := filepath.Rel(rootAbs, path)
		if rerr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rec, ok := readRecord(path, rel, d); ok {
			snap.Files[rel] = rec
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// readRecord reads one file and builds its record. Any failure reports !ok
// so the caller omits the file.
func readRecord(abs, rel string, d fs.DirEntry) (FileRecord, bool) {
	info, err := d.Info()
	if err != nil || !info.Mode().IsRegular() {
		return FileRecord{}, false
	}
	raw, err := os.ReadFile(abs)
	if err != nil {
		return FileRecord{}, false
	}
	sum := sha256.Sum256(raw)
	rec := FileRecord{
		Path:    rel,
		SHA256:  hex.EncodeToString(sum[:]),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}
	if utf8.Valid(raw) {
		rec.IsText = true
		rec.Text = string(raw)
	}
	return rec, true
}

// Get returns the record for a relative path.
func (s *Snapshot) Get(path string) (FileRecord, bool) {
	rec, ok := s.Files[path]
	return rec, ok
}

// Paths returns all recorded paths in lexicographic order.
func (s *Snapshot) Paths() []string {
	out := make([]string, 0, len(s.Files))
	for p := range s.Files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Len reports the number of files in the snapshot.
func (s *Snapshot) Len() int { return len(s.Files) }
