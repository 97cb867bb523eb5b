package rsmeta

import "github.com/jward/rsmeta/internal/meta"

// Public type aliases for the schema types. These are Go type aliases (=),
// identical to the internal types at compile time.

type Schema = meta.Schema
type Struct = meta.Struct
type Field = meta.Field
type Enum = meta.Enum
type Trait = meta.Trait
type Function = meta.Function
type Param = meta.Param
type Impl = meta.Impl
type Module = meta.Module
type Constant = meta.Constant
type TypeAlias = meta.TypeAlias

type IOError = meta.IOError
type ParseError = meta.ParseError

// ErrInvalidInvocation marks a request that names no usable input.
var ErrInvalidInvocation = meta.ErrInvalidInvocation

// NewSchema returns a Schema with every collection empty but non-nil.
func NewSchema() *Schema { return meta.New() }
