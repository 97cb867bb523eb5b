// Package meta defines the declaration schema shared by both extraction tiers.
package meta

// Schema is the aggregate of every top-level declaration found in one source
// unit. Each collection preserves source declaration order.
type Schema struct {
	Structs   []Struct    `json:"structs" yaml:"structs"`
	Enums     []Enum      `json:"enums" yaml:"enums"`
	Traits    []Trait     `json:"traits" yaml:"traits"`
	Functions []Function  `json:"functions" yaml:"functions"`
	Impls     []Impl      `json:"impls" yaml:"impls"`
	Modules   []Module    `json:"modules" yaml:"modules"`
	Uses      []string    `json:"uses" yaml:"uses"`
	Constants []Constant  `json:"constants" yaml:"constants"`
	Types     []TypeAlias `json:"types" yaml:"types"`
}

// New returns a Schema with every collection empty but non-nil.
func New() *Schema {
	return &Schema{
		Structs:   []Struct{},
		Enums:     []Enum{},
		Traits:    []Trait{},
		Functions: []Function{},
		Impls:     []Impl{},
		Modules:   []Module{},
		Uses:      []string{},
		Constants: []Constant{},
		Types:     []TypeAlias{},
	}
}

type Struct struct {
	Name     string   `json:"name" yaml:"name"`
	IsPublic bool     `json:"isPublic" yaml:"isPublic"`
	Generics []string `json:"generics" yaml:"generics"`
	Fields   []Field  `json:"fields" yaml:"fields"`
	Derives  []string `json:"derives" yaml:"derives"`
}

// Field is a struct field. Tuple struct fields are named by their zero-based
// position.
type Field struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	IsPublic bool   `json:"isPublic" yaml:"isPublic"`
}

type Enum struct {
	Name     string   `json:"name" yaml:"name"`
	IsPublic bool     `json:"isPublic" yaml:"isPublic"`
	Generics []string `json:"generics" yaml:"generics"`
	Variants []string `json:"variants" yaml:"variants"`
	Derives  []string `json:"derives" yaml:"derives"`
}

type Trait struct {
	Name     string   `json:"name" yaml:"name"`
	IsPublic bool     `json:"isPublic" yaml:"isPublic"`
	Generics []string `json:"generics" yaml:"generics"`
	Methods  []string `json:"methods" yaml:"methods"`
}

type Function struct {
	Name       string   `json:"name" yaml:"name"`
	IsPublic   bool     `json:"isPublic" yaml:"isPublic"`
	IsAsync    bool     `json:"isAsync" yaml:"isAsync"`
	IsConst    bool     `json:"isConst" yaml:"isConst"`
	IsUnsafe   bool     `json:"isUnsafe" yaml:"isUnsafe"`
	Generics   []string `json:"generics" yaml:"generics"`
	Parameters []Param  `json:"parameters" yaml:"parameters"`
	ReturnType *string  `json:"returnType,omitempty" yaml:"returnType,omitempty"`
}

type Param struct {
	Name  string `json:"name" yaml:"name"`
	Type  string `json:"type" yaml:"type"`
	IsMut bool   `json:"isMut" yaml:"isMut"`
}

// Impl is an impl block. TraitName is nil for inherent impls.
type Impl struct {
	TraitName  *string  `json:"traitName,omitempty" yaml:"traitName,omitempty"`
	TargetType string   `json:"targetType" yaml:"targetType"`
	Methods    []string `json:"methods" yaml:"methods"`
}

type Module struct {
	Name     string `json:"name" yaml:"name"`
	IsPublic bool   `json:"isPublic" yaml:"isPublic"`
}

type Constant struct {
	Name     string  `json:"name" yaml:"name"`
	IsPublic bool    `json:"isPublic" yaml:"isPublic"`
	Type     *string `json:"type,omitempty" yaml:"type,omitempty"`
}

type TypeAlias struct {
	Name     string `json:"name" yaml:"name"`
	IsPublic bool   `json:"isPublic" yaml:"isPublic"`
}

// Ptr returns a pointer to s, for the optional text fields.
func Ptr(s string) *string { return &s }
