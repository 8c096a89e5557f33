package text

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlain(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"  spaced   out\ttext ", "spaced out text"},
		{"Tom &amp; Jerry", "Tom & Jerry"},
		{"<b>Docker</b> for <i>Developers</i>", "Docker for Developers"},
		{"line one<br>line two", "line one line two"},
		{"<a href=\"https://x.dev\">Course</a>", "Course"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Plain(tt.in), tt.in)
	}
}

func TestPlainAll_KeepsLength(t *testing.T) {
	assert.Equal(t, []string{"a", "", "", "b"}, PlainAll([]string{"a", "<br>", "  ", "b"}))
	assert.Nil(t, PlainAll(nil))
}
