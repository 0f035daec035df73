// Package glob implements path-segment-aware pattern matching over
// slash-delimited strings. It deliberately does not delegate to filesystem
// globbing: patterns here are matched against path strings that may not
// exist on disk (changed-path lists, snapshot keys), and ** semantics must
// not depend on any filesystem API.
//
// Semantics:
//   - '?' matches exactly one character, never '/'.
//   - '*' matches zero or more characters within a single segment.
//   - '**' matches zero or more entire path segments, including zero
//     ("**/*.py" matches "foo.py" at the root).
//   - A trailing '**' matches everything remaining, any depth.
//   - Matching is total: implicit anchors at both ends, no substring match.
package glob

import (
	"regexp"
	"strings"
)

// Match reports whether path matches pattern. Both are slash-delimited.
func Match(path, pattern string) bool {
	return Compile(pattern).MatchString(path)
}

// MatchAny reports whether path matches at least one of the patterns.
func MatchAny(path string, patterns []string) bool {
	for _, p := range patterns {
		if Match(path, p) {
			return true
		}
	}
	return false
}

// Compile translates a glob pattern into an anchored regular expression.
// The translation is segment-safe: '*' and '?' never cross '/', and '**'
// consumes whole segments only. The produced expression is always valid.
func Compile(pattern string) *regexp.Regexp {
	return regexp.MustCompile(translate(pattern))
}

func translate(pattern string) string {
	var b strings.Builder
	b.WriteString("^")
	segs := strings.Split(pattern, "/")
	for i, seg := range segs {
		last := i == len(segs)-1
		if seg == "**" {
			if last {
				switch {
				case i == 0:
					b.WriteString(`.*`)
				case segs[i-1] == "**":
					// Previous segment already emitted an optional
					// segment run ending in '/'.
					b.WriteString(`.*`)
				default:
					// "src/**" matches src itself and anything below it.
					b.WriteString(`(?:/.*)?`)
				}
				break
			}
			if i > 0 && segs[i-1] != "**" {
				b.WriteString("/")
			}
			b.WriteString(`(?:[^/]+/)*`)
			continue
		}
		if i > 0 && segs[i-1] != "**" {
			b.WriteString("/")
		}
		writeSegment(&b, seg)
	}
	b.WriteString("$")
	return b.String()
}

func writeSegment(b *strings.Builder, seg string) {
	for _, r := range seg {
		switch r {
		case '*':
			b.WriteString(`[^/]*`)
		case '?':
			b.WriteString(`[^/]`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
}
