package titleid

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// connectorWords may join title fragments during reconstruction ("LORD OF
// THE RINGS" detected as four separate regions). Compared case-insensitively
// and normalized to uppercase on inclusion.
var connectorWords = map[string]struct{}{
	"OF":  {},
	"A":   {},
	"THE": {},
	"AND": {},
	"IN":  {},
	"ON":  {},
	"AT":  {},
	"TO":  {},
	"FOR": {},
}

// reconstructionStops terminate the reconstruction walk when the scan runs
// into the next UI section. Compared exactly: these labels render in title
// case, while title text renders uppercase.
var reconstructionStops = map[string]struct{}{
	"Recently Added": {},
	"More Like This": {},
	"Play":           {},
	"Season":         {},
	"Episodes":       {},
	"Limited Series": {},
}

// SelectTitle picks the best title guess from filtered candidates, falling
// back to a positional reconstruction over rawTokens (the unfiltered OCR
// order) and finally to the longest surviving candidate. The second return
// is false only when every tier comes up empty. Pure function: identical
// input always yields identical output.
func SelectTitle(candidates []string, rawTokens []string, policy Policy) (string, bool) {
	policy = policy.normalized()

	upper := uppercaseCandidates(candidates)
	if len(upper) >= 2 {
		ranked := rankByShape(upper, policy)
		take := policy.JoinTopCandidates
		if take > len(ranked) {
			take = len(ranked)
		}
		return strings.Join(ranked[:take], " "), true
	}
	if len(upper) == 1 {
		return upper[0], true
	}

	if title := reconstructTitle(rawTokens, policy); title != "" {
		return title, true
	}

	if longest := longestCandidate(candidates); longest != "" {
		return longest, true
	}

	return "", false
}

// uppercaseCandidates selects the fully uppercase candidates longer than one
// rune, preserving order.
func uppercaseCandidates(candidates []string) []string {
	var upper []string
	for _, candidate := range candidates {
		if isUppercaseTitle(candidate) {
			upper = append(upper, candidate)
		}
	}
	return upper
}

// rankByShape orders candidates by title-likelihood, best first. The sort is
// stable so equal scores keep their on-screen order.
func rankByShape(candidates []string, policy Policy) []string {
	ranked := make([]string, len(candidates))
	copy(ranked, candidates)
	scores := make(map[string]int, len(ranked))
	for _, candidate := range ranked {
		if _, ok := scores[candidate]; !ok {
			scores[candidate] = shapeScore(candidate, policy)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i]] > scores[ranked[j]]
	})
	return ranked
}

// shapeScore rates how much a string looks like a rendered title. Higher is
// better. The score is a pure function of the string's shape and never
// consults external lookups.
func shapeScore(candidate string, policy Policy) int {
	score := 0

	runeCount := utf8.RuneCountInString(candidate)
	spaces := strings.Count(candidate, " ")
	nonSpace := runeCount - spaces
	if runeCount > policy.LetterSpacingMinLength && nonSpace > 0 &&
		float64(spaces)/float64(nonSpace) > policy.LetterSpacingRatio {
		// Letter-spaced OCR artifact, e.g. "L E O N A R D O".
		score -= 100
	}

	if strings.ContainsAny(candidate, "|'") || strings.ContainsFunc(candidate, unicode.IsDigit) {
		score -= 50
	}

	score -= len(strings.Fields(candidate))

	stripped := strings.NewReplacer(" ", "", "-", "").Replace(candidate)
	if stripped != "" && isAlphabetic(stripped) {
		score += 10
	}

	return score
}

// reconstructTitle re-scans the original token order for an uppercase run.
// It must walk rawTokens rather than the filtered candidates: filtering can
// remove the very tokens that act as connectors or stop markers here.
func reconstructTitle(rawTokens []string, policy Policy) string {
	start := -1
	for i, token := range rawTokens {
		if isUppercaseTitle(token) {
			start = i
			break
		}
	}
	if start < 0 {
		return ""
	}

	var parts []string
	for _, token := range rawTokens[start:] {
		if len(parts) >= policy.ReconstructionCap {
			break
		}
		if _, stop := reconstructionStops[token]; stop {
			break
		}
		switch {
		case isUppercaseTitle(token):
			parts = append(parts, token)
		case isConnector(token):
			parts = append(parts, strings.ToUpper(token))
		default:
			if len(parts) > 0 {
				return strings.Join(parts, " ")
			}
		}
	}
	return strings.Join(parts, " ")
}

func longestCandidate(candidates []string) string {
	longest := ""
	longestLen := 0
	for _, candidate := range candidates {
		if n := utf8.RuneCountInString(candidate); n > longestLen {
			longest = candidate
			longestLen = n
		}
	}
	return longest
}

// isUppercaseTitle reports whether a token is fully uppercase with more than
// one rune: at least one cased letter and no lowercase letters.
func isUppercaseTitle(token string) bool {
	if utf8.RuneCountInString(token) <= 1 {
		return false
	}
	hasCased := false
	for _, r := range token {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			hasCased = true
		}
	}
	return hasCased
}

func isConnector(token string) bool {
	_, ok := connectorWords[strings.ToUpper(token)]
	return ok
}

func isAlphabetic(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
