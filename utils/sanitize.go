package utils

import "strings"

const maxSanitizedLen = 80

// Sanitize strips filesystem-unsafe characters from an ad title, caps the
// length and trims surrounding whitespace. The result names the per-ad
// image folder and, lower-cased, serves as the weak dedup key between runs.
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			continue
		}
		if r < 0x20 {
			continue
		}
		b.WriteRune(r)
	}
	s := b.String()
	// Cap on rune boundaries so multi-byte titles stay valid UTF-8.
	if runes := []rune(s); len(runes) > maxSanitizedLen {
		s = string(runes[:maxSanitizedLen])
	}
	return strings.TrimSpace(s)
}

// DedupKey is the case-folded sanitized title used for resume/skip lookups.
func DedupKey(title string) string {
	return strings.ToLower(Sanitize(title))
}
