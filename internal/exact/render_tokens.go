package exact

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// spacedOperators always get a space on both sides.
var spacedOperators = map[string]bool{
	"+":  true,
	"=":  true,
	"->": true,
}

// JoinTokens renders a sequence of leaf tokens with canonical spacing, so
// structurally equal types render identically whatever whitespace or comments
// the source used.
func JoinTokens(toks []string) string {
	var b strings.Builder
	for i, t := range toks {
		if i > 0 && needsSpace(toks[i-1], t) {
			b.WriteByte(' ')
		}
		b.WriteString(t)
	}
	return b.String()
}

func needsSpace(prev, next string) bool {
	switch {
	case spacedOperators[prev] || spacedOperators[next]:
		return true
	case prev == ",":
		return next != ")" && next != "]" && next != ">"
	case prev == ";":
		return true
	case isWordToken(prev) && isWordToken(next):
		return true
	case prev == ">" && isWordToken(next):
		return true
	}
	return false
}

// isWordToken reports whether t is an identifier, keyword, number or string
// literal.
func isWordToken(t string) bool {
	r, _ := utf8.DecodeRuneInString(t)
	return r == '_' || r == '"' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
