//go:build cgo && !rsmeta_noexact

package exact

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/rsmeta/internal/meta"
)

func extract(t *testing.T, src string) *meta.Schema {
	t.Helper()
	s, err := New().Extract(context.Background(), []byte(src))
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func TestExtract_PublicStruct(t *testing.T) {
	t.Parallel()

	s := extract(t, "pub struct Point { x: i32, y: i32 }")
	require.Len(t, s.Structs, 1)
	assert.Equal(t, meta.Struct{
		Name:     "Point",
		IsPublic: true,
		Generics: []string{},
		Fields: []meta.Field{
			{Name: "x", Type: "i32"},
			{Name: "y", Type: "i32"},
		},
		Derives: []string{},
	}, s.Structs[0])
}

func TestExtract_AsyncFunction(t *testing.T) {
	t.Parallel()

	s := extract(t, "async fn fetch(url: String) -> Response { todo!() }")
	require.Len(t, s.Functions, 1)
	fn := s.Functions[0]
	assert.Equal(t, "fetch", fn.Name)
	assert.False(t, fn.IsPublic)
	assert.True(t, fn.IsAsync)
	assert.False(t, fn.IsConst)
	assert.False(t, fn.IsUnsafe)
	assert.Equal(t, []meta.Param{{Name: "url", Type: "String"}}, fn.Parameters)
	require.NotNil(t, fn.ReturnType)
	assert.Equal(t, "Response", *fn.ReturnType)
}

func TestExtract_FunctionQualifiers(t *testing.T) {
	t.Parallel()

	s := extract(t, `pub const fn a() {}
unsafe fn b() {}
pub(crate) fn c() -> u8 { 0 }
fn d() {}
`)
	require.Len(t, s.Functions, 4)
	assert.True(t, s.Functions[0].IsConst)
	assert.True(t, s.Functions[0].IsPublic)
	assert.True(t, s.Functions[1].IsUnsafe)
	assert.False(t, s.Functions[2].IsPublic)
	assert.Nil(t, s.Functions[3].ReturnType)
}

func TestExtract_Parameters(t *testing.T) {
	t.Parallel()

	s := extract(t, "fn g(mut count: usize, (a, b): (u8, u8), _: bool, name: &str) {}")
	require.Len(t, s.Functions, 1)
	assert.Equal(t, []meta.Param{
		{Name: "count", Type: "usize", IsMut: true},
		{Name: "name", Type: "&str"},
	}, s.Functions[0].Parameters)
}

func TestExtract_TupleStruct(t *testing.T) {
	t.Parallel()

	s := extract(t, "pub struct Meters(pub f64, u32);")
	require.Len(t, s.Structs, 1)
	assert.Equal(t, []meta.Field{
		{Name: "0", Type: "f64", IsPublic: true},
		{Name: "1", Type: "u32"},
	}, s.Structs[0].Fields)
}

func TestExtract_Derives(t *testing.T) {
	t.Parallel()

	s := extract(t, `struct Before;

/// Documented.
#[derive(Debug, Clone)]
#[serde(rename_all = "camelCase")]
#[derive(serde::Serialize)]
pub struct S;

#[derive(PartialEq)]
enum E { A, B(u8), C { x: i32 } }
`)
	require.Len(t, s.Structs, 2)
	assert.Empty(t, s.Structs[0].Derives)
	assert.Equal(t, []string{"Debug", "Clone", "serde::Serialize"}, s.Structs[1].Derives)
	assert.Empty(t, s.Structs[1].Fields)

	require.Len(t, s.Enums, 1)
	assert.Equal(t, []string{"PartialEq"}, s.Enums[0].Derives)
	assert.Equal(t, []string{"A", "B", "C"}, s.Enums[0].Variants)
}

func TestExtract_Generics(t *testing.T) {
	t.Parallel()

	s := extract(t, `pub struct Wrapper<'a, T: Clone, U = u8, const N: usize> { inner: &'a T }
fn f<T: Display, 'a>(x: T) {}
`)
	require.Len(t, s.Structs, 1)
	assert.Equal(t, []string{"T", "U"}, s.Structs[0].Generics)
	assert.Equal(t, "&'a T", s.Structs[0].Fields[0].Type)

	require.Len(t, s.Functions, 1)
	assert.Equal(t, []string{"T"}, s.Functions[0].Generics)
}

func TestExtract_Traits(t *testing.T) {
	t.Parallel()

	s := extract(t, `pub trait Shape<T> {
    fn area(&self) -> f64;
    fn name(&self) -> String { String::new() }
    const SIDES: u8;
}`)
	require.Len(t, s.Traits, 1)
	assert.Equal(t, meta.Trait{
		Name:     "Shape",
		IsPublic: true,
		Generics: []string{"T"},
		Methods:  []string{"area", "name"},
	}, s.Traits[0])
	assert.Empty(t, s.Functions)
	assert.Empty(t, s.Constants)
}

func TestExtract_Impls(t *testing.T) {
	t.Parallel()

	s := extract(t, `impl Point {
    pub fn new() -> Self { Point }
    fn helper(&self) {}
}
impl fmt::Display for Point {
    fn fmt(&self, f: &mut fmt::Formatter) -> fmt::Result { Ok(()) }
}
impl<T> From<T> for Wrapper<T> {
    fn from(t: T) -> Self { todo!() }
}
`)
	require.Len(t, s.Impls, 3)
	assert.Nil(t, s.Impls[0].TraitName)
	assert.Equal(t, "Point", s.Impls[0].TargetType)
	assert.Equal(t, []string{"new", "helper"}, s.Impls[0].Methods)

	require.NotNil(t, s.Impls[1].TraitName)
	assert.Equal(t, "Display", *s.Impls[1].TraitName)
	assert.Equal(t, []string{"fmt"}, s.Impls[1].Methods)

	require.NotNil(t, s.Impls[2].TraitName)
	assert.Equal(t, "From", *s.Impls[2].TraitName)
	assert.Equal(t, "Wrapper<T>", s.Impls[2].TargetType)

	assert.Empty(t, s.Functions)
}

func TestExtract_Uses(t *testing.T) {
	t.Parallel()

	s := extract(t, `use std::collections::HashMap;
use std::io::{self, Read as R};
pub use crate::model::*;
use serde;
`)
	assert.Equal(t, []string{
		"std::collections::HashMap",
		"std::io::{self, Read as R}",
		"crate::model::*",
		"serde",
	}, s.Uses)
}

func TestExtract_ModulesConstantsTypes(t *testing.T) {
	t.Parallel()

	s := extract(t, `pub mod net;
mod inline {
    pub struct Nested;
    pub fn nested() {}
}
pub const MAX: usize = 10;
static COUNT: u32 = 0;
pub type Bytes = Vec<u8>;
macro_rules! nothing { () => {} }
`)
	assert.Equal(t, []meta.Module{{Name: "net", IsPublic: true}, {Name: "inline"}}, s.Modules)
	assert.Empty(t, s.Structs)
	assert.Empty(t, s.Functions)
	require.Len(t, s.Constants, 1)
	assert.Equal(t, "MAX", s.Constants[0].Name)
	require.NotNil(t, s.Constants[0].Type)
	assert.Equal(t, "usize", *s.Constants[0].Type)
	assert.Equal(t, []meta.TypeAlias{{Name: "Bytes", IsPublic: true}}, s.Types)
}

func TestExtract_TypeSpacing(t *testing.T) {
	t.Parallel()

	s := extract(t, "fn f(v: Vec < String >, m: HashMap<String,/* c */ Vec<u8>>, t: (u8,)) {}")
	require.Len(t, s.Functions, 1)
	params := s.Functions[0].Parameters
	require.Len(t, params, 3)
	assert.Equal(t, "Vec<String>", params[0].Type)
	assert.Equal(t, "HashMap<String, Vec<u8>>", params[1].Type)
	assert.Equal(t, "(u8,)", params[2].Type)
}

func TestExtract_Order(t *testing.T) {
	t.Parallel()

	s := extract(t, "struct A;\nstruct B;\nstruct C;")
	var names []string
	for _, st := range s.Structs {
		names = append(names, st.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestExtract_Empty(t *testing.T) {
	t.Parallel()

	s := extract(t, "")
	assert.Equal(t, meta.New(), s)
}

func TestExtract_ParseError(t *testing.T) {
	t.Parallel()

	_, err := New().Extract(context.Background(), []byte("pub struct Point {\n    x: i32,\n"))
	require.Error(t, err)

	var perr *meta.ParseError
	require.True(t, errors.As(err, &perr))
	assert.GreaterOrEqual(t, perr.Line, 1)
	assert.GreaterOrEqual(t, perr.Column, 1)
	assert.NotEmpty(t, perr.Message)
}

func TestName(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "tree-sitter", New().Name())
}
