// Package validate holds shape checks for primitive request input.
// An empty string stands for a missing or null value.
package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

const minPasswordLength = 8

// local@domain.tld, single level only. Not an RFC 5322 parser.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func Email(v string) bool {
	if v == "" {
		return false
	}
	return emailPattern.MatchString(v)
}

// Password requires at least 8 characters with an upper case letter,
// a lower case letter and a digit.
func Password(v string) bool {
	if utf8.RuneCountInString(v) < minPasswordLength {
		return false
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range v {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	return hasUpper && hasLower && hasDigit
}

func IsEmpty(v string) bool {
	return strings.TrimFunc(v, unicode.IsSpace) == ""
}

// Length reports whether the trimmed rune count of v is within [min, max].
func Length(v string, min, max int) bool {
	if v == "" {
		return false
	}
	n := utf8.RuneCountInString(strings.TrimSpace(v))
	return n >= min && n <= max
}

func Username(v string) bool {
	return Length(v, 3, 20)
}
