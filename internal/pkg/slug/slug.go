// Package slug turns post titles into URL-safe identifiers.
package slug

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// RE2 \s is ASCII only; \p{Z} and U+FEFF add the Unicode spaces.
var (
	disallowed = regexp.MustCompile(`[^\w\s\p{Z}\x{FEFF}-]`)
	separators = regexp.MustCompile(`[\s\p{Z}\x{FEFF}_-]+`)
	edgeDashes = regexp.MustCompile(`^-+|-+$`)
)

// Make lowercases and trims text, drops everything except ASCII word
// characters, whitespace (Unicode spaces included) and hyphens, then joins
// the remaining words with single hyphens.
func Make(text string) string {
	if text == "" {
		return ""
	}

	s := strings.TrimSpace(strings.ToLower(text))
	s = disallowed.ReplaceAllString(s, "")
	s = separators.ReplaceAllString(s, "-")
	return edgeDashes.ReplaceAllString(s, "")
}

// WithSuffix disambiguates a taken slug with the millisecond timestamp of at.
func WithSuffix(base string, at time.Time) string {
	return fmt.Sprintf("%s-%d", base, at.UnixMilli())
}

// Truncate cuts text to max runes and appends "...".
func Truncate(text string, max int) string {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + "..."
}
