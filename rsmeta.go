package rsmeta

import (
	"path/filepath"
	"strings"
)

// SchemaVersion is the version stamped on every output document.
const SchemaVersion = "1.0.0"

// IsRustFile reports whether path names a Rust source file.
func IsRustFile(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".rs")
}
