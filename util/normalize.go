package util

import (
	"strings"
	"unicode"
)

// NormalizeQuery lowercases s, strips punctuation and collapses whitespace so
// equivalent queries produce identical cache keys and match input.
func NormalizeQuery(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	lastSpace := true
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r) || r == '.' || r == ',' || r == '-' || r == '&' || r == '\'':
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Tokenize splits a normalized string into words.
func Tokenize(s string) []string {
	return strings.Fields(s)
}

// NormalizeCIK strips non-digits and zero-pads to the canonical 10 digits.
// Returns false when the input holds no digits or more than 10.
func NormalizeCIK(cik string) (string, bool) {
	var digits strings.Builder
	for _, r := range cik {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	d := strings.TrimLeft(digits.String(), "0")
	if digits.Len() == 0 || len(d) > 10 {
		return "", false
	}
	return strings.Repeat("0", 10-len(d)) + d, true
}
