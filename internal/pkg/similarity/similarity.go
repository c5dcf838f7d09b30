package similarity

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// Computes a normalized similarity score in [0,1] between two strings.
// Case-insensitive: identical strings score 1.0, fully disjoint character
// sequences score 0, and near-duplicates with minor edits score high.
func Ratio(a, b string) float64 {
	a = strings.ToLower(a)
	b = strings.ToLower(b)

	if a == b {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	distance := levenshtein.ComputeDistance(a, b)

	maxLen := len([]rune(a))
	if l := len([]rune(b)); l > maxLen {
		maxLen = l
	}

	return 1.0 - float64(distance)/float64(maxLen)
}
