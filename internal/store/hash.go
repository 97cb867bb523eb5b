package store

import (
	"crypto/sha256"
	"fmt"
)

// ContentHash returns the hex SHA-256 of a source file's bytes.
func ContentHash(src []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(src))
}
