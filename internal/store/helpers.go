package store

import (
	"database/sql"
	"encoding/json"
)

// marshalModifiers converts []string to JSON text for storage.
func marshalModifiers(mods []string) string {
	if len(mods) == 0 {
		return "[]"
	}
	b, _ := json.Marshal(mods)
	return string(b)
}

// unmarshalModifiers converts JSON text back to []string.
func unmarshalModifiers(s string) []string {
	if s == "" || s == "null" {
		return nil
	}
	var mods []string
	_ = json.Unmarshal([]byte(s), &mods)
	return mods
}

// nullString maps an optional text field to a nullable column value.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// stringPtr maps a nullable column back to an optional text field.
func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
