package heuristic

import (
	"bytes"
	"unicode/utf8"
)

// maxCharLiteral bounds the lookahead used to tell 'x' and '\u{1F600}' char
// literals apart from lifetimes.
const maxCharLiteral = 12

// mask returns two byte-aligned views of src. In code, comments and the
// contents of string and char literals are blanked; delimiters and newlines
// survive. In top, everything nested inside braces, parentheses or brackets
// is blanked as well, so only top-level text remains visible. The outermost
// delimiters stay, which keeps pub(crate) and #[attr] recognizable.
func mask(src []byte) (code, top []byte) {
	code = make([]byte, len(src))
	copy(code, src)

	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == '/' && at(src, i+1) == '/':
			end := bytes.IndexByte(src[i:], '\n')
			if end < 0 {
				end = len(src)
			} else {
				end += i
			}
			blank(code, i, end)
			i = end
		case c == '/' && at(src, i+1) == '*':
			end := blockCommentEnd(src, i)
			blank(code, i, end)
			i = end
		case c == '"':
			end := stringEnd(src, i+1)
			blank(code, i+1, end-1)
			i = end
		case (c == 'r' || c == 'b') && !isIdentByte(at(src, i-1)):
			if open, hashes, ok := rawStringStart(src, i); ok {
				end := rawStringEnd(src, open+1, hashes)
				blank(code, open+1, end-1-hashes)
				i = end
				continue
			}
			i++
		case c == '\'':
			if end, ok := charLiteralEnd(src, i); ok {
				blank(code, i+1, end-1)
				i = end
				continue
			}
			i++
		default:
			i++
		}
	}

	top = make([]byte, len(code))
	copy(top, code)
	depth := 0
	for j, b := range code {
		switch b {
		case '{', '(', '[':
			if depth > 0 {
				top[j] = ' '
			}
			depth++
		case '}', ')', ']':
			if depth > 0 {
				depth--
			}
			if depth > 0 {
				top[j] = ' '
			}
		case '\n':
		default:
			if depth > 0 {
				top[j] = ' '
			}
		}
	}
	return code, top
}

// at returns src[i], or 0 outside the slice.
func at(src []byte, i int) byte {
	if i < 0 || i >= len(src) {
		return 0
	}
	return src[i]
}

// blank overwrites b[from:to] with spaces, keeping newlines.
func blank(b []byte, from, to int) {
	if to > len(b) {
		to = len(b)
	}
	for i := from; i < to; i++ {
		if b[i] != '\n' {
			b[i] = ' '
		}
	}
}

func isIdentByte(c byte) bool {
	return c == '_' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

// blockCommentEnd returns the offset just past the block comment starting at
// i. Block comments nest. An unterminated comment runs to the end of input.
func blockCommentEnd(src []byte, i int) int {
	depth := 0
	for i < len(src) {
		switch {
		case src[i] == '/' && at(src, i+1) == '*':
			depth++
			i += 2
		case src[i] == '*' && at(src, i+1) == '/':
			depth--
			i += 2
			if depth == 0 {
				return i
			}
		default:
			i++
		}
	}
	return len(src)
}

// stringEnd returns the offset just past the closing quote of a string whose
// contents start at i.
func stringEnd(src []byte, i int) int {
	for i < len(src) {
		switch src[i] {
		case '\\':
			i += 2
		case '"':
			return i + 1
		default:
			i++
		}
	}
	return len(src)
}

// rawStringStart recognizes r"..", r#".."#, br".." at i and returns the
// offset of the opening quote and the number of hashes.
func rawStringStart(src []byte, i int) (open, hashes int, ok bool) {
	j := i
	if src[j] == 'b' {
		j++
	}
	if at(src, j) != 'r' {
		return 0, 0, false
	}
	j++
	for at(src, j) == '#' {
		hashes++
		j++
	}
	if at(src, j) != '"' {
		return 0, 0, false
	}
	return j, hashes, true
}

// rawStringEnd returns the offset just past the closing quote and hashes of a
// raw string whose contents start at i.
func rawStringEnd(src []byte, i, hashes int) int {
	for i < len(src) {
		if src[i] == '"' {
			k := 0
			for k < hashes && at(src, i+1+k) == '#' {
				k++
			}
			if k == hashes {
				return i + 1 + hashes
			}
		}
		i++
	}
	return len(src)
}

// charLiteralEnd decides whether the quote at i opens a char literal rather
// than a lifetime, and if so returns the offset past its closing quote.
func charLiteralEnd(src []byte, i int) (int, bool) {
	if at(src, i+1) == '\\' {
		limit := i + maxCharLiteral
		for j := i + 3; j < len(src) && j <= limit; j++ {
			if src[j] == '\'' {
				return j + 1, true
			}
			if src[j] == '\n' {
				break
			}
		}
		return 0, false
	}
	if i+1 >= len(src) {
		return 0, false
	}
	_, size := utf8.DecodeRune(src[i+1:])
	if at(src, i+1+size) == '\'' && src[i+1] != '\'' {
		return i + 2 + size, true
	}
	return 0, false
}
