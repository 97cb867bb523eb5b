package store

import (
	"database/sql"
	"fmt"
	"time"
)

// ReplaceFile writes f and the rows of b within a single transaction. Rows
// left by an earlier export of the same path are deleted first, so the
// database always holds exactly one extraction per path. f.ID and the IDs of
// the batch rows are set on success.
//
// Insert order respects FK dependencies:
//  1. File
//  2. Symbols (depend on file_id)
//  3. Members (depend on symbol_id)
//  4. Uses (depend on file_id)
func (s *Store) ReplaceFile(f *File, b *Batch) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: replace file: begin: %w", err)
	}
	defer tx.Rollback()

	if err := deleteFileTx(tx, f.Path); err != nil {
		return fmt.Errorf("store: replace file %s: %w", f.Path, err)
	}

	if f.ExtractedAt.IsZero() {
		f.ExtractedAt = time.Now().UTC()
	}
	fileID, err := insertFileTx(tx, f)
	if err != nil {
		return fmt.Errorf("store: replace file %s: %w", f.Path, err)
	}

	for i := range b.Symbols {
		bs := &b.Symbols[i]
		bs.Symbol.FileID = fileID
		symID, err := insertSymbolTx(tx, &bs.Symbol)
		if err != nil {
			return fmt.Errorf("store: symbol %q: %w", bs.Symbol.Name, err)
		}
		for j := range bs.Members {
			bs.Members[j].SymbolID = symID
			if _, err := insertMemberTx(tx, &bs.Members[j]); err != nil {
				return fmt.Errorf("store: member %q of %q: %w", bs.Members[j].Name, bs.Symbol.Name, err)
			}
		}
	}

	for i, path := range b.Uses {
		if _, err := tx.Exec(
			"INSERT INTO uses (file_id, path, ordinal) VALUES (?, ?, ?)",
			fileID, path, i,
		); err != nil {
			return fmt.Errorf("store: use %q: %w", path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: replace file: commit: %w", err)
	}
	return nil
}

// DeleteFile removes a file and all of its rows. Deleting an unknown path is
// a no-op.
func (s *Store) DeleteFile(path string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("store: delete file: begin: %w", err)
	}
	defer tx.Rollback()

	if err := deleteFileTx(tx, path); err != nil {
		return fmt.Errorf("store: delete file %s: %w", path, err)
	}
	return tx.Commit()
}

// deleteFileTx deletes in reverse-dependency order to respect FK constraints.
func deleteFileTx(tx *sql.Tx, path string) error {
	for _, q := range []string{
		"DELETE FROM members WHERE symbol_id IN (SELECT s.id FROM symbols s JOIN files f ON s.file_id = f.id WHERE f.path = ?)",
		"DELETE FROM symbols WHERE file_id IN (SELECT id FROM files WHERE path = ?)",
		"DELETE FROM uses WHERE file_id IN (SELECT id FROM files WHERE path = ?)",
		"DELETE FROM files WHERE path = ?",
	} {
		if _, err := tx.Exec(q, path); err != nil {
			return fmt.Errorf("delete: %w", err)
		}
	}
	return nil
}

func insertFileTx(tx *sql.Tx, f *File) (int64, error) {
	res, err := tx.Exec(
		"INSERT INTO files (path, hash, parser, version, extracted_at) VALUES (?, ?, ?, ?, ?)",
		f.Path, f.Hash, f.Parser, f.Version, f.ExtractedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert file: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	f.ID = id
	return id, nil
}

func insertSymbolTx(tx *sql.Tx, sym *Symbol) (int64, error) {
	res, err := tx.Exec(
		`INSERT INTO symbols (file_id, kind, name, is_public, ordinal, modifiers, type_expr, trait_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		sym.FileID, sym.Kind, sym.Name, sym.IsPublic, sym.Ordinal,
		marshalModifiers(sym.Modifiers), nullString(sym.TypeExpr), nullString(sym.TraitName),
	)
	if err != nil {
		return 0, fmt.Errorf("insert symbol: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	sym.ID = id
	return id, nil
}

func insertMemberTx(tx *sql.Tx, m *Member) (int64, error) {
	res, err := tx.Exec(
		`INSERT INTO members (symbol_id, kind, name, type_expr, is_public, is_mut, ordinal)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.SymbolID, m.Kind, m.Name, nullString(m.TypeExpr), m.IsPublic, m.IsMut, m.Ordinal,
	)
	if err != nil {
		return 0, fmt.Errorf("insert member: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	m.ID = id
	return id, nil
}
