package heuristic

import (
	"bytes"
	"regexp"
	"strings"
)

type kind int

const (
	kindStruct kind = iota
	kindEnum
	kindTrait
	kindFunction
	kindModule
	kindUse
	kindConstant
	kindTypeAlias
)

// Pattern fragments. Every fragment stays on one line so the same body can
// run anchored per line or in multi-line mode over the whole text.
const (
	attrs      = `[ \t]*(?:#\[[^\]\n]*\][ \t]*)*`
	visibility = `pub(?:[ \t]*\([^)\n]*\))?`
	optVis     = `(?:(` + visibility + `)[ \t]+)?`
	// An identifier starts with a letter or underscore and continues with
	// XID_Continue characters, combining marks included. It ends at
	// whitespace, '(', '<', '{', ';', ':' and so on.
	ident     = `((?:r#)?[\p{L}\p{Nl}_][\p{L}\p{Nl}\p{Mn}\p{Mc}\p{Nd}\p{Pc}]*)`
	qualifier = `(?:` + visibility + `|async|const|unsafe|default|extern(?:[ \t]*"[^"\n]*")?)`
)

// recognizer matches one declaration kind. Group 1 holds the visibility or
// qualifier prefix and group 2 the name; for uses group 2 is empty and marks
// where the use tree starts.
type recognizer struct {
	kind  kind
	line  *regexp.Regexp
	whole *regexp.Regexp
}

func newRecognizer(k kind, body string) recognizer {
	return recognizer{
		kind:  k,
		line:  regexp.MustCompile(`^` + attrs + body),
		whole: regexp.MustCompile(`(?m)^` + attrs + body),
	}
}

// recognizers are disjoint: a line can match at most one of them.
var recognizers = []recognizer{
	newRecognizer(kindFunction, `((?:`+qualifier+`[ \t]+)*)fn[ \t]+`+ident),
	newRecognizer(kindStruct, optVis+`struct[ \t]+`+ident),
	newRecognizer(kindEnum, optVis+`enum[ \t]+`+ident),
	newRecognizer(kindTrait, optVis+`(?:(?:unsafe|auto)[ \t]+)*trait[ \t]+`+ident),
	newRecognizer(kindModule, optVis+`mod[ \t]+`+ident),
	newRecognizer(kindConstant, optVis+`const[ \t]+`+ident+`[ \t]*:`),
	newRecognizer(kindTypeAlias, optVis+`type[ \t]+`+ident),
	newRecognizer(kindUse, optVis+`use[ \t]+()`),
}

var visibilityRe = regexp.MustCompile(visibility)

// decl is one recognized declaration. at is the offset of group 2 in the
// scanned text.
type decl struct {
	kind       kind
	qualifiers string
	name       string
	at         int
}

func newDecl(k kind, text []byte, loc []int, base int) decl {
	d := decl{kind: k, at: base + loc[4]}
	if loc[2] >= 0 {
		d.qualifiers = string(text[loc[2]:loc[3]])
	}
	d.name = string(text[loc[4]:loc[5]])
	return d
}

// scanPattern runs each recognizer over the whole text. Collections only
// depend on order within a kind, which FindAll preserves.
func scanPattern(top []byte) []decl {
	var decls []decl
	for _, r := range recognizers {
		for _, loc := range r.whole.FindAllSubmatchIndex(top, -1) {
			decls = append(decls, newDecl(r.kind, top, loc, 0))
		}
	}
	return decls
}

// scanLines classifies each line of the text independently.
func scanLines(top []byte) []decl {
	var decls []decl
	off := 0
	for _, line := range bytes.Split(top, []byte{'\n'}) {
		for _, r := range recognizers {
			if loc := r.line.FindSubmatchIndex(line); loc != nil {
				decls = append(decls, newDecl(r.kind, line, loc, off))
				break
			}
		}
		off += len(line) + 1
	}
	return decls
}

// hasPub reports whether a qualifier prefix contains a bare pub. Restricted
// forms such as pub(crate) do not count.
func hasPub(qualifiers string) bool {
	for _, v := range visibilityRe.FindAllString(qualifiers, -1) {
		if v == "pub" {
			return true
		}
	}
	return false
}

// fnFlags detects async, const and unsafe anywhere in a function prefix,
// whatever their order.
func fnFlags(qualifiers string) (isAsync, isConst, isUnsafe bool) {
	for _, tok := range strings.Fields(qualifiers) {
		switch tok {
		case "async":
			isAsync = true
		case "const":
			isConst = true
		case "unsafe":
			isUnsafe = true
		}
	}
	return isAsync, isConst, isUnsafe
}
