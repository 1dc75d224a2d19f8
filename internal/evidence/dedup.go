package evidence

import (
	"regexp"
	"strings"
)

// MinNormalizedLength is the shortest normalized passage worth returning;
// anything shorter is boilerplate or noise.
const MinNormalizedLength = 30

var (
	nonWordPattern    = regexp.MustCompile(`[^\w\s]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Normalize reduces a passage to its comparable form: lower-cased, non-word
// characters stripped, whitespace collapsed to single spaces.
func Normalize(text string) string {
	normalized := strings.ToLower(text)
	normalized = nonWordPattern.ReplaceAllString(normalized, "")
	normalized = whitespacePattern.ReplaceAllString(normalized, " ")
	return strings.TrimSpace(normalized)
}

// Dedupe removes matches that are too short or whose normalized content has
// already been seen, preserving order. It operates on the retrieved candidate
// set only and is idempotent.
func Dedupe(matches []Match) []Match {
	seen := make(map[string]struct{}, len(matches))
	result := make([]Match, 0, len(matches))

	for _, match := range matches {
		normalized := Normalize(match.Document.Content)
		if len(normalized) < MinNormalizedLength {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, match)
	}

	return result
}
