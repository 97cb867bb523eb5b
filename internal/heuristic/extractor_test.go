package heuristic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jward/rsmeta/internal/meta"
)

const sampleSource = `//! crate docs
use std::collections::HashMap;
pub use crate::model::{Point, Line as Segment};
use serde::*;

/// A point.
#[derive(Debug, Clone)]
pub struct Point { x: i32, y: i32 }

pub(crate) struct Hidden;

enum Shape { Circle, Square }

pub trait Draw {
    fn draw(&self);
}

impl Draw for Point {
    fn draw(&self) {}
}

async pub fn fetch(url: String) -> Response { todo!() }
pub const fn square(x: i32) -> i32 { x * x }
unsafe extern "C" fn raw() {}

pub mod net;
mod inline {
    pub struct Nested;
}

pub const MAX: usize = 10;
static COUNT: u32 = 0;
type Alias = Vec<u8>;
`

func extract(t *testing.T, mode Mode, src string) *meta.Schema {
	t.Helper()
	s, err := New(WithMode(mode)).Extract(context.Background(), []byte(src))
	require.NoError(t, err)
	require.NotNil(t, s)
	return s
}

func TestExtract_Sample(t *testing.T) {
	t.Parallel()

	for _, mode := range []Mode{ModePattern, ModeLines} {
		t.Run(string(mode), func(t *testing.T) {
			t.Parallel()
			s := extract(t, mode, sampleSource)

			require.Len(t, s.Structs, 2)
			assert.Equal(t, "Point", s.Structs[0].Name)
			assert.True(t, s.Structs[0].IsPublic)
			assert.Empty(t, s.Structs[0].Fields)
			assert.NotNil(t, s.Structs[0].Fields)
			assert.Empty(t, s.Structs[0].Derives)
			assert.Equal(t, "Hidden", s.Structs[1].Name)
			assert.False(t, s.Structs[1].IsPublic)

			require.Len(t, s.Enums, 1)
			assert.Equal(t, "Shape", s.Enums[0].Name)
			assert.Empty(t, s.Enums[0].Variants)

			require.Len(t, s.Traits, 1)
			assert.Equal(t, "Draw", s.Traits[0].Name)
			assert.True(t, s.Traits[0].IsPublic)

			require.Len(t, s.Functions, 3)
			assert.Equal(t, meta.Function{
				Name: "fetch", IsPublic: true, IsAsync: true,
				Generics: []string{}, Parameters: []meta.Param{},
			}, s.Functions[0])
			assert.Equal(t, "square", s.Functions[1].Name)
			assert.True(t, s.Functions[1].IsConst)
			assert.True(t, s.Functions[1].IsPublic)
			assert.Equal(t, "raw", s.Functions[2].Name)
			assert.True(t, s.Functions[2].IsUnsafe)
			assert.False(t, s.Functions[2].IsPublic)
			assert.Nil(t, s.Functions[2].ReturnType)

			assert.Empty(t, s.Impls)
			assert.Equal(t, []meta.Module{{Name: "net", IsPublic: true}, {Name: "inline"}}, s.Modules)
			assert.Equal(t, []string{
				"std::collections::HashMap",
				"crate::model::{Point, Line as Segment}",
				"serde::*",
			}, s.Uses)
			assert.Equal(t, []meta.Constant{{Name: "MAX", IsPublic: true}}, s.Constants)
			assert.Equal(t, []meta.TypeAlias{{Name: "Alias"}}, s.Types)
		})
	}
}

func TestExtract_ModesAgree(t *testing.T) {
	t.Parallel()

	sources := []string{
		sampleSource,
		"",
		"pub struct A;\nstruct B;\npub struct C;",
		"fn a() {}\n#[inline] pub fn b() {}\n  pub(super) fn c() {}",
		"use a::{\n    b,\n    c::d,\n};\n",
	}
	for _, src := range sources {
		assert.Equal(t, extract(t, ModePattern, src), extract(t, ModeLines, src), "source %q", src)
	}
}

func TestExtract_Order(t *testing.T) {
	t.Parallel()

	s := extract(t, ModePattern, "struct A;\nstruct B;\nstruct C;")
	var names []string
	for _, st := range s.Structs {
		names = append(names, st.Name)
	}
	assert.Equal(t, []string{"A", "B", "C"}, names)
}

func TestExtract_QualifierOrder(t *testing.T) {
	t.Parallel()

	a := extract(t, ModePattern, "pub async fn f() {}")
	b := extract(t, ModePattern, "async pub fn f() {}")
	assert.Equal(t, a.Functions, b.Functions)
	assert.True(t, a.Functions[0].IsAsync)
	assert.True(t, a.Functions[0].IsPublic)
}

func TestExtract_RestrictedVisibility(t *testing.T) {
	t.Parallel()

	src := `pub(crate) fn a() {}
pub(super) struct B;
pub(in crate::x) enum C {}
pub(crate) mod d;
pub(crate) const E: u8 = 0;
pub(crate) type F = u8;
pub(crate) trait G {}
`
	for _, mode := range []Mode{ModePattern, ModeLines} {
		s := extract(t, mode, src)
		require.Len(t, s.Functions, 1)
		assert.False(t, s.Functions[0].IsPublic)
		require.Len(t, s.Structs, 1)
		assert.False(t, s.Structs[0].IsPublic)
		require.Len(t, s.Enums, 1)
		assert.False(t, s.Enums[0].IsPublic)
		require.Len(t, s.Modules, 1)
		assert.False(t, s.Modules[0].IsPublic)
		require.Len(t, s.Constants, 1)
		assert.False(t, s.Constants[0].IsPublic)
		require.Len(t, s.Types, 1)
		assert.False(t, s.Types[0].IsPublic)
		require.Len(t, s.Traits, 1)
		assert.False(t, s.Traits[0].IsPublic)
	}
}

func TestExtract_IgnoresMaskedText(t *testing.T) {
	t.Parallel()

	src := `// struct Commented;
/* fn hidden() {} */
const DOC: &str = "
struct InString;
";
fn body() {
    struct Local;
    fn local() {}
}
`
	s := extract(t, ModeLines, src)
	assert.Empty(t, s.Structs)
	require.Len(t, s.Functions, 1)
	assert.Equal(t, "body", s.Functions[0].Name)
	require.Len(t, s.Constants, 1)
	assert.Equal(t, "DOC", s.Constants[0].Name)
}

func TestExtract_RawIdentifier(t *testing.T) {
	t.Parallel()

	s := extract(t, ModePattern, "pub fn r#match(x: u8) {}\nstruct Über;")
	require.Len(t, s.Functions, 1)
	assert.Equal(t, "r#match", s.Functions[0].Name)
	require.Len(t, s.Structs, 1)
	assert.Equal(t, "Über", s.Structs[0].Name)
}

func TestExtract_CombiningMarks(t *testing.T) {
	t.Parallel()

	src := "pub struct Cafe\u0301;\nfn nai\u0308ve_count() {}\nconst N\u0303: u8 = 1;\n"
	for _, mode := range []Mode{ModePattern, ModeLines} {
		s := extract(t, mode, src)
		require.Len(t, s.Structs, 1)
		assert.Equal(t, "Cafe\u0301", s.Structs[0].Name)
		require.Len(t, s.Functions, 1)
		assert.Equal(t, "nai\u0308ve_count", s.Functions[0].Name)
		require.Len(t, s.Constants, 1)
		assert.Equal(t, "N\u0303", s.Constants[0].Name)
	}
}

func TestExtract_IgnoresMacroBodies(t *testing.T) {
	t.Parallel()

	src := `some_macro!(
fn inner() {}
);
other_macro![
pub struct Inside;
];
pub(crate) struct Outside;
#[cfg(test)]
fn after() {}
`
	for _, mode := range []Mode{ModePattern, ModeLines} {
		s := extract(t, mode, src)
		require.Len(t, s.Structs, 1)
		assert.Equal(t, "Outside", s.Structs[0].Name)
		assert.False(t, s.Structs[0].IsPublic)
		require.Len(t, s.Functions, 1)
		assert.Equal(t, "after", s.Functions[0].Name)
	}
}

func TestExtract_MalformedNeverFails(t *testing.T) {
	t.Parallel()

	sources := []string{
		"pub struct {",
		"fn (",
		"use a::{b, c",
		"}}}} struct After;",
		"\"unterminated",
		"/* unterminated struct X;",
	}
	for _, src := range sources {
		for _, mode := range []Mode{ModePattern, ModeLines} {
			s, err := New(WithMode(mode)).Extract(context.Background(), []byte(src))
			require.NoError(t, err, src)
			require.NotNil(t, s, src)
		}
	}

	s := extract(t, ModePattern, "use a::{b, c")
	assert.Equal(t, []string{"a::{}"}, s.Uses)

	s = extract(t, ModePattern, "}}}} struct After;")
	assert.Empty(t, s.Structs)
}

func TestExtract_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New().Extract(ctx, []byte("struct A;"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	m, err := ParseMode("lines")
	require.NoError(t, err)
	assert.Equal(t, ModeLines, m)

	m, err = ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModePattern, m)

	_, err = ParseMode("fuzzy")
	assert.Error(t, err)
}
