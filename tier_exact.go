//go:build cgo && !rsmeta_noexact

package rsmeta

import (
	"github.com/rs/zerolog"

	"github.com/jward/rsmeta/internal/exact"
)

// ExactAvailable reports whether the tree-sitter grammar is compiled in.
func ExactAvailable() bool { return true }

func newExactExtractor(logger zerolog.Logger) Extractor {
	return exact.New(exact.WithLogger(logger))
}
