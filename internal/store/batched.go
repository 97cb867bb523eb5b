package store

import "github.com/jward/rsmeta/internal/meta"

// Batch buffers the rows of one extracted file until they are committed.
// Members hang off their symbol instead of carrying IDs, which do not exist
// until the commit assigns them.
type Batch struct {
	Symbols []BatchSymbol
	Uses    []string
}

// BatchSymbol is a symbol row with its member rows.
type BatchSymbol struct {
	Symbol  Symbol
	Members []Member
}

// NewBatch flattens s into rows. Ordinals follow source order within each
// symbol kind and each member kind.
func NewBatch(s *meta.Schema) *Batch {
	b := &Batch{Uses: append([]string(nil), s.Uses...)}

	for i, st := range s.Structs {
		bs := b.add(KindStruct, st.Name, st.IsPublic, i)
		for j, f := range st.Fields {
			bs.Members = append(bs.Members, Member{
				Kind: MemberField, Name: f.Name, TypeExpr: meta.Ptr(f.Type), IsPublic: f.IsPublic, Ordinal: j,
			})
		}
		bs.names(MemberGeneric, st.Generics)
		bs.names(MemberDerive, st.Derives)
	}
	for i, en := range s.Enums {
		bs := b.add(KindEnum, en.Name, en.IsPublic, i)
		bs.names(MemberVariant, en.Variants)
		bs.names(MemberGeneric, en.Generics)
		bs.names(MemberDerive, en.Derives)
	}
	for i, tr := range s.Traits {
		bs := b.add(KindTrait, tr.Name, tr.IsPublic, i)
		bs.names(MemberMethod, tr.Methods)
		bs.names(MemberGeneric, tr.Generics)
	}
	for i, fn := range s.Functions {
		bs := b.add(KindFunction, fn.Name, fn.IsPublic, i)
		bs.Symbol.Modifiers = fnModifiers(fn)
		bs.Symbol.TypeExpr = fn.ReturnType
		for j, p := range fn.Parameters {
			bs.Members = append(bs.Members, Member{
				Kind: MemberParam, Name: p.Name, TypeExpr: meta.Ptr(p.Type), IsMut: p.IsMut, Ordinal: j,
			})
		}
		bs.names(MemberGeneric, fn.Generics)
	}
	for i, im := range s.Impls {
		bs := b.add(KindImpl, im.TargetType, false, i)
		bs.Symbol.TraitName = im.TraitName
		bs.names(MemberMethod, im.Methods)
	}
	for i, m := range s.Modules {
		b.add(KindModule, m.Name, m.IsPublic, i)
	}
	for i, c := range s.Constants {
		bs := b.add(KindConstant, c.Name, c.IsPublic, i)
		bs.Symbol.TypeExpr = c.Type
	}
	for i, t := range s.Types {
		b.add(KindTypeAlias, t.Name, t.IsPublic, i)
	}
	return b
}

func (b *Batch) add(kind, name string, pub bool, ordinal int) *BatchSymbol {
	b.Symbols = append(b.Symbols, BatchSymbol{Symbol: Symbol{
		Kind: kind, Name: name, IsPublic: pub, Ordinal: ordinal,
	}})
	return &b.Symbols[len(b.Symbols)-1]
}

func (bs *BatchSymbol) names(kind string, names []string) {
	for i, n := range names {
		bs.Members = append(bs.Members, Member{Kind: kind, Name: n, Ordinal: i})
	}
}

func fnModifiers(fn meta.Function) []string {
	var mods []string
	if fn.IsAsync {
		mods = append(mods, "async")
	}
	if fn.IsConst {
		mods = append(mods, "const")
	}
	if fn.IsUnsafe {
		mods = append(mods, "unsafe")
	}
	return mods
}
