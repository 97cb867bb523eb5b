package store

import "time"

// Symbol kinds.
const (
	KindStruct    = "struct"
	KindEnum      = "enum"
	KindTrait     = "trait"
	KindFunction  = "function"
	KindImpl      = "impl"
	KindModule    = "module"
	KindConstant  = "constant"
	KindTypeAlias = "type"
)

// Member kinds.
const (
	MemberField   = "field"
	MemberVariant = "variant"
	MemberMethod  = "method"
	MemberParam   = "param"
	MemberGeneric = "generic"
	MemberDerive  = "derive"
)

type File struct {
	ID          int64
	Path        string
	Hash        string
	Parser      string
	Version     string
	ExtractedAt time.Time
}

// Symbol is one top-level declaration. For impls Name is the target type.
// TypeExpr holds a function's return type or a constant's type.
type Symbol struct {
	ID        int64
	FileID    int64
	Kind      string
	Name      string
	IsPublic  bool
	Ordinal   int
	Modifiers []string
	TypeExpr  *string
	TraitName *string
}

// Member is a child of a symbol: a field, variant, method name, parameter,
// generic or derive. Ordinal counts within the symbol and kind.
type Member struct {
	ID       int64
	SymbolID int64
	Kind     string
	Name     string
	TypeExpr *string
	IsPublic bool
	IsMut    bool
	Ordinal  int
}

type Use struct {
	ID      int64
	FileID  int64
	Path    string
	Ordinal int
}
