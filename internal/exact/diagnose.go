//go:build cgo && !rsmeta_noexact

package exact

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/rsmeta/internal/meta"
)

// diagnose turns the first ERROR or MISSING node under root into a
// ParseError.
func diagnose(root *sitter.Node, src []byte) *meta.ParseError {
	bad := firstError(root)
	if bad == nil {
		return &meta.ParseError{Line: 1, Column: 1, Message: "syntax error"}
	}

	p := bad.StartPoint()
	perr := &meta.ParseError{Line: int(p.Row) + 1, Column: int(p.Column) + 1}
	if bad.IsMissing() {
		perr.Message = "missing `" + bad.Type() + "`"
		return perr
	}

	if s := snippet(bad.Content(src)); s == "" {
		perr.Message = "unexpected input"
	} else {
		perr.Message = "unexpected `" + s + "`"
	}
	return perr
}

// firstError finds the first ERROR or MISSING node in document order,
// descending only into subtrees that report an error.
func firstError(n *sitter.Node) *sitter.Node {
	if n.IsMissing() || n.Type() == "ERROR" {
		return n
	}
	if !n.HasError() {
		return nil
	}
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}
