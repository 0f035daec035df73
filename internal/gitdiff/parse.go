// Raw diff stream parsing. git's patch output is split into one chunk per
// "diff --git " file header; everything about a file (status, paths, blob
// hashes, hunks) is read from its own chunk. Paths are never recovered by
// naive whitespace splitting: the extended header lines (rename from/to,
// copy from/to, ---/+++) carry them verbatim even with embedded spaces.
package gitdiff

import (
	"errors"
	"strconv"
	"strings"

	"codegym/internal/change"
	"codegym/internal/logging"
)

const chunkMarker = "diff --git "

// parseRawDiff splits the stream into file chunks and classifies each one.
// A chunk that cannot be parsed is skipped, not fatal — but the skip hides
// data, so it is always logged.
func parseRawDiff(raw string, log logging.Logger) []change.FileChange {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var chunks [][]string
	for _, line := range strings.Split(raw, "\n") {
		if strings.HasPrefix(line, chunkMarker) {
			chunks = append(chunks, []string{line})
			continue
		}
		if len(chunks) == 0 {
			continue
		}
		chunks[len(chunks)-1] = append(chunks[len(chunks)-1], line)
	}

	changes := make([]change.FileChange, 0, len(chunks))
	for _, chunk := range chunks {
		fc, err := parseChunk(chunk)
		if err != nil {
			log.Warn("skipping unparseable diff chunk", "header", chunk[0], "err", err)
			continue
		}
		changes = append(changes, fc)
	}
	return changes
}

// chunkHeaders holds the extended header fields found in one chunk.
type chunkHeaders struct {
	newFile    bool
	deleted    bool
	renameFrom string
	renameTo   string
	copyFrom   string
	copyTo     string
	oldMode    string
	newMode    string
	beforeHash string
	afterHash  string
	minusPath  string
	plusPath   string
}

func parseChunk(lines []string) (change.FileChange, error) {
	h := scanHeaders(lines)

	fc := change.FileChange{
		UnifiedDiff: strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n",
		BeforeHash:  h.beforeHash,
		AfterHash:   h.afterHash,
	}

	switch {
	case h.renameTo != "":
		fc.Status = change.StatusRenamed
		fc.Path = h.renameTo
		fc.OldPath = h.renameFrom
	case h.copyTo != "":
		fc.Status = change.StatusCopied
		fc.Path = h.copyTo
		fc.OldPath = h.copyFrom
	case h.newFile:
		fc.Status = change.StatusAdded
		fc.Path = firstPath(h.plusPath, h.minusPath)
	case h.deleted:
		fc.Status = change.StatusDeleted
		fc.Path = firstPath(h.minusPath, h.plusPath)
	case isTypeChange(h.oldMode, h.newMode):
		fc.Status = change.StatusTypeChange
		fc.Path = firstPath(h.plusPath, h.minusPath)
	default:
		fc.Status = change.StatusModified
		fc.Path = firstPath(h.plusPath, h.minusPath)
	}

	if fc.Path == "" {
		// Binary or mode-only chunks carry no ---/+++ lines; recover the
		// path from the header line, which for same-path chunks has the
		// exact shape "diff --git a/P b/P".
		p, ok := samePathFromHeader(lines[0])
		if !ok {
			return change.FileChange{}, errors.New("no path in chunk headers")
		}
		fc.Path = p
	}
	return fc, nil
}

func scanHeaders(lines []string) chunkHeaders {
	var h chunkHeaders
	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "@@"):
			return h // hunks follow, headers are done
		case strings.HasPrefix(line, "new file mode "):
			h.newFile = true
		case strings.HasPrefix(line, "deleted file mode "):
			h.deleted = true
		case strings.HasPrefix(line, "rename from "):
			h.renameFrom = unquotePath(line[len("rename from "):])
		case strings.HasPrefix(line, "rename to "):
			h.renameTo = unquotePath(line[len("rename to "):])
		case strings.HasPrefix(line, "copy from "):
			h.copyFrom = unquotePath(line[len("copy from "):])
		case strings.HasPrefix(line, "copy to "):
			h.copyTo = unquotePath(line[len("copy to "):])
		case strings.HasPrefix(line, "old mode "):
			h.oldMode = strings.TrimSpace(line[len("old mode "):])
		case strings.HasPrefix(line, "new mode "):
			h.newMode = strings.TrimSpace(line[len("new mode "):])
		case strings.HasPrefix(line, "index "):
			h.beforeHash, h.afterHash = parseIndexLine(line)
		case strings.HasPrefix(line, "--- "):
			h.minusPath = stripDiffPath(line[len("--- "):], "a/")
		case strings.HasPrefix(line, "+++ "):
			h.plusPath = stripDiffPath(line[len("+++ "):], "b/")
		}
	}
	return h
}

// parseIndexLine extracts blob hashes from "index <before>..<after> [mode]".
func parseIndexLine(line string) (before, after string) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", ""
	}
	pair := strings.SplitN(fields[1], "..", 2)
	if len(pair) != 2 {
		return "", ""
	}
	before, after = pair[0], pair[1]
	if allZero(before) {
		before = ""
	}
	if allZero(after) {
		after = ""
	}
	return before, after
}

func allZero(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != '0' {
			return false
		}
	}
	return s != ""
}

// stripDiffPath turns a ---/+++ payload into a repository-relative path.
// "/dev/null" yields "".
func stripDiffPath(s, prefix string) string {
	s = unquotePath(strings.TrimSpace(s))
	if s == "/dev/null" {
		return ""
	}
	return strings.TrimPrefix(s, prefix)
}

// unquotePath undoes C-style quoting git applies to paths with unusual
// characters. Plain paths (including ones with spaces) pass through as-is.
func unquotePath(s string) string {
	if strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		if decoded, err := strconv.Unquote(s); err == nil {
			return decoded
		}
	}
	return s
}

// isTypeChange reports whether the old/new mode pair crosses file types
// (regular file vs symlink vs gitlink). Permission-only flips stay modified.
func isTypeChange(oldMode, newMode string) bool {
	if len(oldMode) < 3 || len(newMode) < 3 {
		return false
	}
	return oldMode[:3] != newMode[:3]
}

// samePathFromHeader recovers P from a header of the exact form
// "diff --git a/P b/P". The shape constrains the split even when P contains
// spaces: the remainder must be P + " b/" + P.
func samePathFromHeader(header string) (string, bool) {
	rest := strings.TrimPrefix(header, chunkMarker)
	rest = strings.TrimPrefix(rest, "a/")
	if n := len(rest) - len(" b/"); n > 0 && n%2 == 0 {
		p := rest[:n/2]
		if rest == p+" b/"+p {
			return unquotePath(p), true
		}
	}
	return "", false
}

func firstPath(paths ...string) string {
	for _, p := range paths {
		if p != "" {
			return p
		}
	}
	return ""
}
