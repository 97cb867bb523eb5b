package store

import (
	"database/sql"
	"fmt"
)

// --- File queries ---

// FileByPath returns the file exported under path, or nil if there is none.
func (s *Store) FileByPath(path string) (*File, error) {
	f := &File{}
	err := s.db.QueryRow(
		"SELECT id, path, hash, parser, version, extracted_at FROM files WHERE path = ?", path,
	).Scan(&f.ID, &f.Path, &f.Hash, &f.Parser, &f.Version, &f.ExtractedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: file by path: %w", err)
	}
	return f, nil
}

// Files returns every exported file ordered by path.
func (s *Store) Files() ([]*File, error) {
	rows, err := s.db.Query("SELECT id, path, hash, parser, version, extracted_at FROM files ORDER BY path")
	if err != nil {
		return nil, fmt.Errorf("store: files: %w", err)
	}
	defer rows.Close()
	var files []*File
	for rows.Next() {
		f := &File{}
		if err := rows.Scan(&f.ID, &f.Path, &f.Hash, &f.Parser, &f.Version, &f.ExtractedAt); err != nil {
			return nil, fmt.Errorf("store: scan file: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// --- Symbol queries ---

const symbolColumns = "id, file_id, kind, name, is_public, ordinal, modifiers, type_expr, trait_name"

// SymbolsByFile returns a file's symbols grouped by kind in document key
// order, then by ordinal.
func (s *Store) SymbolsByFile(fileID int64) ([]*Symbol, error) {
	return s.querySymbols(
		`SELECT `+symbolColumns+` FROM symbols WHERE file_id = ?
		 ORDER BY CASE kind
		   WHEN 'struct' THEN 0 WHEN 'enum' THEN 1 WHEN 'trait' THEN 2
		   WHEN 'function' THEN 3 WHEN 'impl' THEN 4 WHEN 'module' THEN 5
		   WHEN 'constant' THEN 6 ELSE 7 END, ordinal`,
		fileID,
	)
}

// SymbolsByName returns every symbol with the given name across all files.
func (s *Store) SymbolsByName(name string) ([]*Symbol, error) {
	return s.querySymbols(`SELECT `+symbolColumns+` FROM symbols WHERE name = ? ORDER BY file_id, id`, name)
}

// SymbolsByKind returns a file's symbols of one kind in source order.
func (s *Store) SymbolsByKind(fileID int64, kind string) ([]*Symbol, error) {
	return s.querySymbols(
		`SELECT `+symbolColumns+` FROM symbols WHERE file_id = ? AND kind = ? ORDER BY ordinal`,
		fileID, kind,
	)
}

func (s *Store) querySymbols(query string, args ...any) ([]*Symbol, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query symbols: %w", err)
	}
	defer rows.Close()
	var syms []*Symbol
	for rows.Next() {
		sym := &Symbol{}
		var mods string
		var typeExpr, traitName sql.NullString
		if err := rows.Scan(&sym.ID, &sym.FileID, &sym.Kind, &sym.Name, &sym.IsPublic,
			&sym.Ordinal, &mods, &typeExpr, &traitName); err != nil {
			return nil, fmt.Errorf("store: scan symbol: %w", err)
		}
		sym.Modifiers = unmarshalModifiers(mods)
		sym.TypeExpr = stringPtr(typeExpr)
		sym.TraitName = stringPtr(traitName)
		syms = append(syms, sym)
	}
	return syms, rows.Err()
}

// --- Member queries ---

// MembersBySymbol returns a symbol's members of the given kind in source
// order. An empty kind returns all members.
func (s *Store) MembersBySymbol(symbolID int64, kind string) ([]*Member, error) {
	query := "SELECT id, symbol_id, kind, name, type_expr, is_public, is_mut, ordinal FROM members WHERE symbol_id = ?"
	args := []any{symbolID}
	if kind != "" {
		query += " AND kind = ?"
		args = append(args, kind)
	}
	query += " ORDER BY kind, ordinal"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: members by symbol: %w", err)
	}
	defer rows.Close()
	var members []*Member
	for rows.Next() {
		m := &Member{}
		var typeExpr sql.NullString
		if err := rows.Scan(&m.ID, &m.SymbolID, &m.Kind, &m.Name, &typeExpr,
			&m.IsPublic, &m.IsMut, &m.Ordinal); err != nil {
			return nil, fmt.Errorf("store: scan member: %w", err)
		}
		m.TypeExpr = stringPtr(typeExpr)
		members = append(members, m)
	}
	return members, rows.Err()
}

// --- Use queries ---

// UsesByFile returns a file's import paths in source order.
func (s *Store) UsesByFile(fileID int64) ([]string, error) {
	rows, err := s.db.Query("SELECT path FROM uses WHERE file_id = ? ORDER BY ordinal", fileID)
	if err != nil {
		return nil, fmt.Errorf("store: uses by file: %w", err)
	}
	defer rows.Close()
	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("store: scan use: %w", err)
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
