//go:build cgo && !rsmeta_noexact

package exact

import (
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
)

// The grammar is initialized lazily on first use.
var (
	grammar     *sitter.Language
	grammarOnce sync.Once
)

// Language returns the tree-sitter Rust grammar.
func Language() *sitter.Language {
	grammarOnce.Do(func() {
		grammar = rust.GetLanguage()
	})
	return grammar
}
