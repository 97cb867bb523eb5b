//go:build cgo && !rsmeta_noexact

package exact

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/rsmeta/internal/meta"
)

// ParserName identifies this tier in the output document.
const ParserName = "tree-sitter"

// Extractor produces a Schema from a full tree-sitter parse of the source.
type Extractor struct {
	logger zerolog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLogger sets the logger used for debug output about skipped items.
func WithLogger(l zerolog.Logger) Option {
	return func(x *Extractor) {
		x.logger = l
	}
}

// New creates an Extractor.
func New(opts ...Option) *Extractor {
	x := &Extractor{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// Name returns ParserName.
func (x *Extractor) Name() string { return ParserName }

// Extract parses src and returns every top-level declaration in source order.
// Source the grammar rejects yields a *meta.ParseError and no Schema.
func (x *Extractor) Extract(ctx context.Context, src []byte) (*meta.Schema, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(Language())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return nil, fmt.Errorf("exact: tree-sitter parse: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, diagnose(root, src)
	}

	w := &walker{src: src, schema: meta.New(), logger: x.logger}
	count := int(root.NamedChildCount())
	for i := 0; i < count; i++ {
		w.item(root.NamedChild(i))
	}
	return w.schema, nil
}

// trivia are top-level node kinds that are never declarations.
var trivia = map[string]bool{
	"line_comment":         true,
	"block_comment":        true,
	"attribute_item":       true,
	"inner_attribute_item": true,
}

// walker holds the state of a single extraction pass.
type walker struct {
	src    []byte
	schema *meta.Schema
	logger zerolog.Logger
}

func (w *walker) item(n *sitter.Node) {
	switch n.Type() {
	case "struct_item":
		if s, ok := w.structDecl(n); ok {
			w.schema.Structs = append(w.schema.Structs, s)
		}
	case "enum_item":
		if e, ok := w.enumDecl(n); ok {
			w.schema.Enums = append(w.schema.Enums, e)
		}
	case "trait_item":
		if t, ok := w.traitDecl(n); ok {
			w.schema.Traits = append(w.schema.Traits, t)
		}
	case "function_item":
		if f, ok := w.functionDecl(n); ok {
			w.schema.Functions = append(w.schema.Functions, f)
		}
	case "impl_item":
		if im, ok := w.implBlock(n); ok {
			w.schema.Impls = append(w.schema.Impls, im)
		}
	case "mod_item":
		if name := w.name(n); name != "" {
			w.schema.Modules = append(w.schema.Modules, meta.Module{Name: name, IsPublic: w.isPublic(n)})
		}
	case "use_declaration":
		if arg := n.ChildByFieldName("argument"); arg != nil {
			w.schema.Uses = append(w.schema.Uses, w.usePath(arg))
		}
	case "const_item":
		if c, ok := w.constDecl(n); ok {
			w.schema.Constants = append(w.schema.Constants, c)
		}
	case "type_item":
		if name := w.name(n); name != "" {
			w.schema.Types = append(w.schema.Types, meta.TypeAlias{Name: name, IsPublic: w.isPublic(n)})
		}
	default:
		if !trivia[n.Type()] {
			w.logger.Debug().
				Str("kind", n.Type()).
				Uint32("line", n.StartPoint().Row+1).
				Msg("skipping unrecognized item")
		}
	}
}

// text returns the source text of n, or "" for a nil node.
func (w *walker) text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return n.Content(w.src)
}

func (w *walker) name(n *sitter.Node) string {
	return w.text(n.ChildByFieldName("name"))
}

// isPublic reports whether n carries a bare `pub` qualifier. Restricted
// visibility such as pub(crate) does not count.
func (w *walker) isPublic(n *sitter.Node) bool {
	count := int(n.NamedChildCount())
	for i := 0; i < count; i++ {
		c := n.NamedChild(i)
		if c.Type() == "visibility_modifier" {
			return w.text(c) == "pub"
		}
	}
	return false
}

// childOfType returns the first direct child of n with the given kind.
func childOfType(n *sitter.Node, kind string) *sitter.Node {
	count := int(n.ChildCount())
	for i := 0; i < count; i++ {
		c := n.Child(i)
		if c.Type() == kind {
			return c
		}
	}
	return nil
}
