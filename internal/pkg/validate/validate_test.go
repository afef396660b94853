package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmail(t *testing.T) {
	cases := map[string]bool{
		"a@b.com":                 true,
		"john.doe@example.co.uk":  true,
		"":                        false,
		"plainaddress":            false,
		"no-at.example.com":       false,
		"missing@tld":             false,
		"two@@example.com":        false,
		"space in@example.com":    false,
		"'; DROP TABLE users; --": false,
		"trailing@example.com ":   false,
	}
	for in, want := range cases {
		assert.Equal(t, want, Email(in), "Email(%q)", in)
	}
}

func TestPassword(t *testing.T) {
	assert.True(t, Password("Test1234"))
	assert.True(t, Password("aB3aaaaa"))

	assert.False(t, Password(""))
	assert.False(t, Password("Ab1"))
	assert.False(t, Password("Ab1cdef"))
	assert.False(t, Password("abcdefg1"))
	assert.False(t, Password("ABCDEFG1"))
	assert.False(t, Password("Abcdefgh"))
}

// Builds passwords of growing length and breaks exactly one rule at a time.
func TestPassword_EachRuleIndependently(t *testing.T) {
	for n := minPasswordLength; n <= 32; n++ {
		filler := strings.Repeat("x", n-3)

		assert.True(t, Password("Q"+filler+"z7"), "valid len %d", n)

		assert.False(t, Password(("Qz7" + filler)[:minPasswordLength-1]), "too short")
		assert.False(t, Password("q"+filler+"z7"), "no upper, len %d", n)
		assert.False(t, Password("Q"+strings.ToUpper(filler)+"Z7"), "no lower, len %d", n)
		assert.False(t, Password("Q"+filler+"zz"), "no digit, len %d", n)
	}
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, IsEmpty(""))
	assert.True(t, IsEmpty("   "))
	assert.True(t, IsEmpty("\t\n"))
	assert.False(t, IsEmpty(" a "))
}

func TestLength(t *testing.T) {
	assert.False(t, Length("", 0, 10))
	assert.True(t, Length("abc", 3, 3))
	assert.True(t, Length("  abc  ", 1, 3))
	assert.False(t, Length("ab", 3, 10))
	assert.False(t, Length("abcdefghijk", 3, 10))
	assert.True(t, Length("çağ", 3, 3))
}

func TestUsername(t *testing.T) {
	assert.True(t, Username("bob"))
	assert.True(t, Username(strings.Repeat("x", 20)))
	assert.False(t, Username("bo"))
	assert.False(t, Username(strings.Repeat("x", 21)))
	assert.False(t, Username(""))
}
