package exact

import (
	"strings"
	"unicode/utf8"
)

const maxSnippet = 32

// snippet returns the first line of text, cut to at most maxSnippet bytes at
// a character boundary. A cut snippet ends in "...".
func snippet(text string) string {
	s := strings.TrimSpace(text)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) <= maxSnippet {
		return s
	}
	cut := maxSnippet
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
