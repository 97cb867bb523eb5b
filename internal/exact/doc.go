// Package exact extracts declarations from Rust source by walking a
// tree-sitter syntax tree. The tree-sitter grammar needs cgo; without it (or
// with the rsmeta_noexact build tag) the package only carries the pure-Go
// token rendering helpers.
package exact
