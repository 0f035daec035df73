// Package syntax validates source text with a per-language parser. Go is
// the natively supported language (stdlib go/parser); every other language
// reports ErrUnsupported so callers can fail the check without crashing.
package syntax

import (
	"errors"
	"fmt"
	"go/parser"
	"go/token"
	"strings"
)

// ErrUnsupported reports that no validator exists for the language.
var ErrUnsupported = errors.New("unsupported language")

// DefaultLanguage is assumed when an expectation names no language.
const DefaultLanguage = "go"

// Supported reports whether language has a native validator.
func Supported(language string) bool {
	return normalize(language) == "go"
}

// Check parses src as the given language. It returns nil when the source is
// syntactically valid, ErrUnsupported for unknown languages, and the
// parser's error otherwise. filename is used only for error positions.
func Check(filename, language, src string) error {
	switch normalize(language) {
	case "go":
		fset := token.NewFileSet()
		_, err := parser.ParseFile(fset, filename, src, parser.AllErrors)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnsupported, language)
	}
}

func normalize(language string) string {
	l := strings.ToLower(strings.TrimSpace(language))
	switch l {
	case "", "go", "golang":
		return "go"
	}
	return l
}
