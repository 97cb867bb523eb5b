//go:build !cgo || rsmeta_noexact

package rsmeta

import "github.com/rs/zerolog"

// ExactAvailable reports whether the tree-sitter grammar is compiled in.
func ExactAvailable() bool { return false }

func newExactExtractor(zerolog.Logger) Extractor { return nil }
