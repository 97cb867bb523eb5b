// Package rsmeta extracts structural metadata from a single Rust source file:
// the top-level structs, enums, traits, functions, impl blocks, modules,
// imports, constants and type aliases it declares, with their visibility,
// signatures and derives.
//
// # Tiers
//
// Extraction runs in one of two tiers that share one output schema:
//
//  1. Exact: walks a tree-sitter syntax tree. Available when the package is
//     built with cgo and without the rsmeta_noexact build tag.
//
//  2. Heuristic: recognizes declarations lexically. It reports names,
//     visibility and function qualifiers only, and never reports anything
//     the exact tier would not.
//
// The tier is chosen once, when the [Engine] is created, and never depends on
// the input.
//
// # Usage
//
//	e, err := rsmeta.New()
//	if err != nil { ... }
//
//	s, err := e.ExtractFile(ctx, "src/lib.rs")
//	if err != nil { ... }
//
//	err = rsmeta.Encode(os.Stdout, s, e.Parser())
//
// # Output
//
// [Encode] writes a single JSON object whose keys are, in order: structs,
// enums, traits, functions, impls, modules, uses, constants, types, parser,
// version and success. Optional fields (a function's returnType, an impl's
// traitName, a constant's type) are omitted when absent. [EncodeYAML] renders
// the same document as YAML.
package rsmeta
