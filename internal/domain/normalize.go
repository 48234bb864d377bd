package domain

import (
	"strings"
	"unicode"
)

// NormalizeQuery prepares a user-supplied animal name for the API:
//   - trims leading/trailing whitespace
//   - compresses runs of whitespace into a single space
//
// Case is preserved so the name can be echoed back unchanged.
func NormalizeQuery(text string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if prevSpace {
				continue
			}
			prevSpace = true
			b.WriteRune(' ')
			continue
		}
		prevSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// QueryOrDefault returns the normalized query, or def when the query is blank.
func QueryOrDefault(query, def string) string {
	if q := NormalizeQuery(query); q != "" {
		return q
	}
	return def
}
