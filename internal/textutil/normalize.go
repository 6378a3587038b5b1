package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// NormalizeToken folds a raw OCR fragment into a canonical form: NFKC
// normalization (fullwidth and compatibility glyphs become their plain
// equivalents), unicode spaces become ASCII spaces, interior whitespace runs
// collapse to a single space, and the result is trimmed.
func NormalizeToken(value string) string {
	value = norm.NFKC.String(value)
	var b strings.Builder
	b.Grow(len(value))
	lastSpace := false
	for _, r := range value {
		if unicode.IsSpace(r) {
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
			continue
		}
		lastSpace = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Truncate shortens a string to at most max runes, appending an ellipsis when
// content was removed. Used for log and table rendering only.
func Truncate(value string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(value)
	if len(runes) <= max {
		return value
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
