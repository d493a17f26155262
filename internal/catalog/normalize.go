package catalog

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// NormalizeKeyword trims surrounding whitespace, composes the text to NFC and
// lower-cases it, so "  PRÁCTICA " and "práctica" compare equal whether the
// accent arrived precomposed or as a combining mark.
func NormalizeKeyword(s string) string {
	// A Caser carries state and must not be shared across goroutines.
	return cases.Lower(language.Und).String(norm.NFC.String(strings.TrimSpace(s)))
}
