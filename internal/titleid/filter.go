package titleid

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// uiChromeVocabulary lists streaming UI labels that OCR reliably picks up
// around the artwork. Compared case-insensitively.
var uiChromeVocabulary = map[string]struct{}{
	"play":           {},
	"more":           {},
	"recently added": {},
	"more like this": {},
	"limited series": {},
	"season":         {},
	"episodes":       {},
	"cast:":          {},
	"genres:":        {},
}

// ratingsVocabulary lists content rating badges. Compared case-sensitively:
// "R" and "PG" are ratings, "r" and "pg" inside a title are not.
var ratingsVocabulary = map[string]struct{}{
	"PG-13": {},
	"R":     {},
	"TV-MA": {},
	"TV-14": {},
	"G":     {},
	"PG":    {},
	"HD":    {},
}

// urlMarkers flag fragments of addresses; OCR often captures partial URLs
// from browser chrome or watermarks. Compared case-insensitively.
var urlMarkers = []string{"http", "www.", ".com", "netflix.com", "tps:", "://"}

// durationPattern matches runtime and episode markers such as "2hr", "45 min",
// "Season 1", or "Ep 3" at the start of a fragment.
var durationPattern = regexp.MustCompile(`(?i)^\d*\s*(hr|min|season|episode|ep|m|h|s)\b`)

// FilterCandidates returns the token texts that could plausibly be a title,
// preserving their original relative order. Tokens at or below the policy's
// confidence gate are dropped before the structural rules run. The function
// is pure and never fails; empty input yields empty output.
func FilterCandidates(tokens []Token, policy Policy) []string {
	policy = policy.normalized()

	var survivors []string
	for _, token := range tokens {
		if token.Confidence <= policy.MinTokenConfidence {
			continue
		}
		if rejectCandidate(token.Text, policy) {
			continue
		}
		survivors = append(survivors, token.Text)
	}
	return survivors
}

func rejectCandidate(text string, policy Policy) bool {
	if utf8.RuneCountInString(text) < policy.MinTokenLength {
		return true
	}
	if isNumeric(text) {
		return true
	}
	if durationPattern.MatchString(text) {
		return true
	}
	lowered := strings.ToLower(text)
	for _, marker := range urlMarkers {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	if _, ok := uiChromeVocabulary[lowered]; ok {
		return true
	}
	if _, ok := ratingsVocabulary[text]; ok {
		return true
	}
	if len(strings.Fields(text)) > policy.MaxTitleWords {
		return true
	}
	return false
}

func isNumeric(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
