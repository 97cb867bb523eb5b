package exact

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSnippet(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", 31) + "é" + "tail"
	tests := []struct {
		name string
		text string
		want string
	}{
		{"short", "  fn (", "fn ("},
		{"first line", "struct {\n  x", "struct {"},
		{"ascii cut", strings.Repeat("x", 40), strings.Repeat("x", 32) + "..."},
		{"multibyte cut", long, strings.Repeat("a", 31) + "..."},
		{"exact length", strings.Repeat("ü", 16), strings.Repeat("ü", 16)},
		{"empty", " \n ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := snippet(tt.text)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
