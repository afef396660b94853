package slug

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Hello   World  ", "hello-world"},
		{"Hello, World!", "hello-world"},
		{"snake_case_title", "snake-case-title"},
		{"--Leading and trailing--", "leading-and-trailing"},
		{"Multiple --- dashes", "multiple-dashes"},
		{"Go 1.24 Released", "go-124-released"},
		{"Çok Güzel Başlık", "ok-gzel-balk"},
		{"a\u00a0b", "a-b"},
		{"wide\u3000space\u2028line", "wide-space-line"},
		{"\ufeffbom title", "bom-title"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Make(tc.in), "Make(%q)", tc.in)
	}
}

func TestMake_Properties(t *testing.T) {
	inputs := []string{
		"Duplicate Title",
		"  A_B-C  d ",
		"Ünïcödé & Symbols #42",
		"---",
		"MiXeD CaSe\tTabs\nNewlines",
		"already-a-slug",
	}
	for _, in := range inputs {
		out := Make(in)
		assert.Equal(t, out, Make(out), "idempotent for %q", in)
		assert.Equal(t, strings.ToLower(out), out, "lowercase for %q", in)
		assert.False(t, strings.HasPrefix(out, "-"), "leading dash for %q", in)
		assert.False(t, strings.HasSuffix(out, "-"), "trailing dash for %q", in)
	}
}

func TestWithSuffix(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	got := WithSuffix("duplicate-title", at)
	assert.Equal(t, "duplicate-title-1700000000123", got)
	assert.True(t, strings.HasPrefix(got, "duplicate-title-"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "exactly10!", Truncate("exactly10!", 10))
	assert.Equal(t, "hello...", Truncate("hello world", 5))
	assert.Equal(t, "çağ...", Truncate("çağdaş", 3))
	assert.Equal(t, "", Truncate("", 5))
}
