//go:build cgo && !rsmeta_noexact

package exact

import (
	"strconv"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jward/rsmeta/internal/meta"
)

func (w *walker) structDecl(n *sitter.Node) (meta.Struct, bool) {
	name := w.name(n)
	if name == "" {
		return meta.Struct{}, false
	}
	s := meta.Struct{
		Name:     name,
		IsPublic: w.isPublic(n),
		Generics: w.generics(n.ChildByFieldName("type_parameters")),
		Fields:   []meta.Field{},
		Derives:  w.derives(n),
	}

	body := n.ChildByFieldName("body")
	if body == nil {
		return s, true
	}
	switch body.Type() {
	case "field_declaration_list":
		count := int(body.NamedChildCount())
		for i := 0; i < count; i++ {
			fd := body.NamedChild(i)
			if fd.Type() != "field_declaration" {
				continue
			}
			s.Fields = append(s.Fields, meta.Field{
				Name:     w.name(fd),
				Type:     w.renderType(fd.ChildByFieldName("type")),
				IsPublic: w.isPublic(fd),
			})
		}
	case "ordered_field_declaration_list":
		s.Fields = w.tupleFields(body)
	}
	return s, true
}

// tupleFields walks a positional field list. Visibility and attributes are
// siblings of the type they qualify, so the pending visibility is carried
// forward until the next type node.
func (w *walker) tupleFields(body *sitter.Node) []meta.Field {
	fields := []meta.Field{}
	pub := false
	count := int(body.NamedChildCount())
	for i := 0; i < count; i++ {
		c := body.NamedChild(i)
		switch c.Type() {
		case "visibility_modifier":
			pub = w.text(c) == "pub"
		case "attribute_item", "line_comment", "block_comment":
		default:
			fields = append(fields, meta.Field{
				Name:     strconv.Itoa(len(fields)),
				Type:     w.renderType(c),
				IsPublic: pub,
			})
			pub = false
		}
	}
	return fields
}

func (w *walker) enumDecl(n *sitter.Node) (meta.Enum, bool) {
	name := w.name(n)
	if name == "" {
		return meta.Enum{}, false
	}
	e := meta.Enum{
		Name:     name,
		IsPublic: w.isPublic(n),
		Generics: w.generics(n.ChildByFieldName("type_parameters")),
		Variants: []string{},
		Derives:  w.derives(n),
	}
	if body := n.ChildByFieldName("body"); body != nil {
		count := int(body.NamedChildCount())
		for i := 0; i < count; i++ {
			v := body.NamedChild(i)
			if v.Type() == "enum_variant" {
				if vn := w.name(v); vn != "" {
					e.Variants = append(e.Variants, vn)
				}
			}
		}
	}
	return e, true
}

func (w *walker) traitDecl(n *sitter.Node) (meta.Trait, bool) {
	name := w.name(n)
	if name == "" {
		return meta.Trait{}, false
	}
	return meta.Trait{
		Name:     name,
		IsPublic: w.isPublic(n),
		Generics: w.generics(n.ChildByFieldName("type_parameters")),
		Methods:  w.methodNames(n.ChildByFieldName("body")),
	}, true
}

// methodNames lists the functions a trait or impl body directly owns. Trait
// bodies hold both bare signatures and default methods.
func (w *walker) methodNames(body *sitter.Node) []string {
	names := []string{}
	if body == nil {
		return names
	}
	count := int(body.NamedChildCount())
	for i := 0; i < count; i++ {
		c := body.NamedChild(i)
		switch c.Type() {
		case "function_item", "function_signature_item":
			if name := w.name(c); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

func (w *walker) functionDecl(n *sitter.Node) (meta.Function, bool) {
	name := w.name(n)
	if name == "" {
		return meta.Function{}, false
	}
	fn := meta.Function{
		Name:       name,
		IsPublic:   w.isPublic(n),
		Generics:   w.generics(n.ChildByFieldName("type_parameters")),
		Parameters: w.params(n.ChildByFieldName("parameters")),
	}
	if mods := childOfType(n, "function_modifiers"); mods != nil {
		count := int(mods.ChildCount())
		for i := 0; i < count; i++ {
			switch mods.Child(i).Type() {
			case "async":
				fn.IsAsync = true
			case "const":
				fn.IsConst = true
			case "unsafe":
				fn.IsUnsafe = true
			}
		}
	}
	if rt := n.ChildByFieldName("return_type"); rt != nil {
		fn.ReturnType = meta.Ptr(w.renderType(rt))
	}
	return fn, true
}

// params returns the parameters bound to a plain identifier. Receivers,
// wildcards and destructuring patterns carry no single name and are skipped.
func (w *walker) params(list *sitter.Node) []meta.Param {
	params := []meta.Param{}
	if list == nil {
		return params
	}
	count := int(list.NamedChildCount())
	for i := 0; i < count; i++ {
		p := list.NamedChild(i)
		if p.Type() != "parameter" {
			continue
		}
		pat := p.ChildByFieldName("pattern")
		if pat == nil {
			continue
		}
		isMut := childOfType(p, "mutable_specifier") != nil
		if pat.Type() == "mut_pattern" && pat.NamedChildCount() > 0 {
			isMut = true
			pat = pat.NamedChild(int(pat.NamedChildCount()) - 1)
		}
		if pat.Type() != "identifier" {
			continue
		}
		params = append(params, meta.Param{
			Name:  w.text(pat),
			Type:  w.renderType(p.ChildByFieldName("type")),
			IsMut: isMut,
		})
	}
	return params
}

func (w *walker) implBlock(n *sitter.Node) (meta.Impl, bool) {
	target := n.ChildByFieldName("type")
	if target == nil {
		return meta.Impl{}, false
	}
	im := meta.Impl{
		TargetType: w.renderType(target),
		Methods:    w.methodNames(n.ChildByFieldName("body")),
	}
	if tr := n.ChildByFieldName("trait"); tr != nil {
		im.TraitName = meta.Ptr(w.lastSegment(tr))
	}
	return im, true
}

// lastSegment returns the final identifier of a trait path, without generic
// arguments: fmt::Display gives Display, From<u8> gives From.
func (w *walker) lastSegment(n *sitter.Node) string {
	switch n.Type() {
	case "scoped_type_identifier", "scoped_identifier":
		if name := n.ChildByFieldName("name"); name != nil {
			return w.lastSegment(name)
		}
	case "generic_type":
		if t := n.ChildByFieldName("type"); t != nil {
			return w.lastSegment(t)
		}
	}
	return w.text(n)
}

func (w *walker) constDecl(n *sitter.Node) (meta.Constant, bool) {
	name := w.name(n)
	if name == "" {
		return meta.Constant{}, false
	}
	c := meta.Constant{Name: name, IsPublic: w.isPublic(n)}
	if t := n.ChildByFieldName("type"); t != nil {
		c.Type = meta.Ptr(w.renderType(t))
	}
	return c, true
}

// generics returns the names of the type parameters in a type_parameters
// node. Lifetimes and const parameters are not type parameters.
func (w *walker) generics(tp *sitter.Node) []string {
	names := []string{}
	if tp == nil {
		return names
	}
	count := int(tp.NamedChildCount())
	for i := 0; i < count; i++ {
		if name := w.typeParamName(tp.NamedChild(i)); name != "" {
			names = append(names, name)
		}
	}
	return names
}

func (w *walker) typeParamName(n *sitter.Node) string {
	switch n.Type() {
	case "type_identifier":
		return w.text(n)
	case "constrained_type_parameter":
		if left := n.ChildByFieldName("left"); left != nil && left.Type() == "type_identifier" {
			return w.text(left)
		}
	case "optional_type_parameter":
		if name := n.ChildByFieldName("name"); name != nil {
			return w.typeParamName(name)
		}
	case "type_parameter":
		if name := n.ChildByFieldName("name"); name != nil {
			return w.text(name)
		}
	}
	return ""
}
