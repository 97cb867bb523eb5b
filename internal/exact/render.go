//go:build cgo && !rsmeta_noexact

package exact

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// atomicTokens are named nodes whose children are lexical detail and whose
// full text is rendered as one token.
var atomicTokens = map[string]bool{
	"string_literal":     true,
	"raw_string_literal": true,
	"char_literal":       true,
}

// renderType re-renders a type node from its leaf tokens.
func (w *walker) renderType(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	var toks []string
	w.collectTokens(n, &toks)
	return JoinTokens(toks)
}

func (w *walker) collectTokens(n *sitter.Node, toks *[]string) {
	kind := n.Type()
	switch {
	case kind == "line_comment" || kind == "block_comment":
		return
	case atomicTokens[kind] || n.ChildCount() == 0:
		if s := w.text(n); s != "" {
			*toks = append(*toks, s)
		}
		return
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		w.collectTokens(n.Child(i), toks)
	}
}

// usePath renders the argument of a use declaration. Groups recurse into
// their members.
func (w *walker) usePath(n *sitter.Node) string {
	switch n.Type() {
	case "scoped_identifier":
		name := w.text(n.ChildByFieldName("name"))
		if path := n.ChildByFieldName("path"); path != nil {
			return w.usePath(path) + "::" + name
		}
		return "::" + name
	case "use_as_clause":
		return w.usePath(n.ChildByFieldName("path")) + " as " + w.text(n.ChildByFieldName("alias"))
	case "use_wildcard":
		if path := firstNamed(n); path != nil {
			return w.usePath(path) + "::*"
		}
		return "*"
	case "scoped_use_list":
		list := w.usePath(n.ChildByFieldName("list"))
		if path := n.ChildByFieldName("path"); path != nil {
			return w.usePath(path) + "::" + list
		}
		return "::" + list
	case "use_list":
		var items []string
		count := int(n.NamedChildCount())
		for i := 0; i < count; i++ {
			c := n.NamedChild(i)
			if trivia[c.Type()] {
				continue
			}
			items = append(items, w.usePath(c))
		}
		return "{" + strings.Join(items, ", ") + "}"
	}
	return w.text(n)
}

// firstNamed returns the first named child of n that is not a comment.
func firstNamed(n *sitter.Node) *sitter.Node {
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		if !trivia[c.Type()] {
			return c
		}
	}
	return nil
}

// derives collects the names listed by #[derive(...)] attributes directly
// preceding item. Attributes are siblings of the item in the tree, possibly
// interleaved with comments and other attributes.
func (w *walker) derives(item *sitter.Node) []string {
	var attrs []*sitter.Node
	for p := item.PrevSibling(); p != nil; p = p.PrevSibling() {
		kind := p.Type()
		if kind == "attribute_item" {
			attrs = append(attrs, p)
			continue
		}
		if kind == "line_comment" || kind == "block_comment" {
			continue
		}
		break
	}

	names := []string{}
	for i := len(attrs) - 1; i >= 0; i-- {
		names = append(names, w.deriveNames(attrs[i])...)
	}
	return names
}

func (w *walker) deriveNames(attrItem *sitter.Node) []string {
	attr := childOfType(attrItem, "attribute")
	if attr == nil {
		attr = childOfType(attrItem, "meta_item")
	}
	if attr == nil {
		return nil
	}
	head := attr.NamedChild(0)
	if head == nil || head.Type() != "identifier" || w.text(head) != "derive" {
		return nil
	}
	args := attr.ChildByFieldName("arguments")
	if args == nil {
		return nil
	}
	if args.Type() == "meta_arguments" {
		return w.metaArgumentNames(args)
	}
	return w.tokenTreeNames(args)
}

// tokenTreeNames splits a derive token tree on commas and keeps each group
// made only of identifiers and path separators.
func (w *walker) tokenTreeNames(tt *sitter.Node) []string {
	var (
		names []string
		cur   strings.Builder
		plain = true
	)
	flush := func() {
		if plain && cur.Len() > 0 {
			names = append(names, cur.String())
		}
		cur.Reset()
		plain = true
	}

	count := int(tt.ChildCount())
	for i := 0; i < count; i++ {
		c := tt.Child(i)
		switch c.Type() {
		case "(", ")", "line_comment", "block_comment":
		case ",":
			flush()
		case "identifier", "::":
			cur.WriteString(w.text(c))
		default:
			plain = false
		}
	}
	flush()
	return names
}

// metaArgumentNames handles grammars that model attribute arguments as
// nested meta items rather than a raw token tree.
func (w *walker) metaArgumentNames(args *sitter.Node) []string {
	var names []string
	count := int(args.NamedChildCount())
	for i := 0; i < count; i++ {
		item := args.NamedChild(i)
		if item.Type() != "meta_item" || item.NamedChildCount() != 1 {
			continue
		}
		path := item.NamedChild(0)
		switch path.Type() {
		case "identifier", "scoped_identifier":
			names = append(names, w.text(path))
		}
	}
	return names
}
