package heuristic

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// maxUseDepth bounds group nesting. Deeper groups render as {}.
	maxUseDepth = 16
	// maxUseText bounds how far past `use` the scanner looks for the
	// terminating semicolon.
	maxUseText = 4096
)

// useText returns the use tree text starting at offset at, up to the next
// semicolon.
func useText(code []byte, at int) string {
	end := len(code)
	if end-at > maxUseText {
		end = at + maxUseText
	}
	rest := code[at:end]
	if i := strings.IndexByte(string(rest), ';'); i >= 0 {
		rest = rest[:i]
	}
	return string(rest)
}

// RenderUse parses a use tree and renders it the way the exact tier does:
// segments joined by ::, renames as `path as alias`, globs as *, groups as
// {a, b}. An unterminated or too deeply nested group renders as {}. complete
// is false when that happened.
func RenderUse(text string) (rendered string, complete bool) {
	p := &useParser{s: text}
	rendered = p.tree(0)
	return rendered, !p.unterminated && !p.truncated
}

type useParser struct {
	s            string
	pos          int
	unterminated bool
	truncated    bool
}

func (p *useParser) tree(depth int) string {
	p.skipSpace()
	var segs []string
	lead := ""
	if strings.HasPrefix(p.s[p.pos:], "::") {
		p.pos += 2
		lead = "::"
	}
	for {
		p.skipSpace()
		if p.peek('{') {
			segs = append(segs, p.group(depth))
			break
		}
		if p.peek('*') {
			p.pos++
			segs = append(segs, "*")
			break
		}
		id := p.ident()
		if id == "" {
			break
		}
		segs = append(segs, id)
		p.skipSpace()
		if strings.HasPrefix(p.s[p.pos:], "::") {
			p.pos += 2
			continue
		}
		if p.keyword("as") {
			p.skipSpace()
			if alias := p.ident(); alias != "" {
				return lead + strings.Join(segs, "::") + " as " + alias
			}
		}
		break
	}
	if len(segs) == 0 {
		return ""
	}
	return lead + strings.Join(segs, "::")
}

// group parses {a, b, ...} starting at the opening brace.
func (p *useParser) group(depth int) string {
	p.pos++
	if depth >= maxUseDepth {
		p.skipGroup()
		p.truncated = true
		return "{}"
	}
	var items []string
	for {
		p.skipSpace()
		if p.eof() {
			p.unterminated = true
			return "{}"
		}
		if p.peek('}') {
			p.pos++
			return "{" + strings.Join(items, ", ") + "}"
		}
		if p.peek(',') {
			p.pos++
			continue
		}
		start := p.pos
		item := p.tree(depth + 1)
		if p.unterminated {
			return "{}"
		}
		if p.pos == start {
			// Not a use tree token; step over it.
			p.pos++
			continue
		}
		if item != "" {
			items = append(items, item)
		}
	}
}

// skipGroup consumes input up to the brace matching one already consumed.
func (p *useParser) skipGroup() {
	depth := 1
	for !p.eof() && depth > 0 {
		switch p.s[p.pos] {
		case '{':
			depth++
		case '}':
			depth--
		}
		p.pos++
	}
}

func (p *useParser) eof() bool { return p.pos >= len(p.s) }

func (p *useParser) peek(c byte) bool {
	return !p.eof() && p.s[p.pos] == c
}

func (p *useParser) skipSpace() {
	for !p.eof() {
		r, size := utf8.DecodeRuneInString(p.s[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

// ident consumes an identifier, including the r# raw prefix.
func (p *useParser) ident() string {
	start := p.pos
	i := p.pos
	if strings.HasPrefix(p.s[i:], "r#") {
		i += 2
	}
	first := true
	for i < len(p.s) {
		r, size := utf8.DecodeRuneInString(p.s[i:])
		if !isIdentRune(r, first) {
			break
		}
		first = false
		i += size
	}
	if first {
		return ""
	}
	p.pos = i
	return p.s[start:i]
}

// keyword consumes kw when it stands alone as a word.
func (p *useParser) keyword(kw string) bool {
	if !strings.HasPrefix(p.s[p.pos:], kw) {
		return false
	}
	next, _ := utf8.DecodeRuneInString(p.s[p.pos+len(kw):])
	if p.pos+len(kw) < len(p.s) && isIdentRune(next, false) {
		return false
	}
	p.pos += len(kw)
	return true
}

// isIdentRune matches the identifier class of the declaration recognizers.
func isIdentRune(r rune, first bool) bool {
	if r == '_' || unicode.In(r, unicode.L, unicode.Nl) {
		return true
	}
	return !first && unicode.In(r, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc)
}
