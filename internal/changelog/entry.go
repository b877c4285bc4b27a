package changelog

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const entryColumns = "id, version, title, body, published_at, created_at, updated_at"

// mapSQLiteError converts SQLite errors to package errors.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(errStr, "CHECK constraint failed") ||
		strings.Contains(errStr, "NOT NULL constraint failed") {
		return ErrInvalid
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*Entry, error) {
	e := &Entry{}
	if err := row.Scan(&e.ID, &e.Version, &e.Title, &e.Body, &e.PublishedAt, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return nil, err
	}
	return e, nil
}

func addEntry(q querier, e *Entry) error {
	if err := e.validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	if e.PublishedAt.IsZero() {
		e.PublishedAt = now
	}
	e.PublishedAt = e.PublishedAt.UTC()

	result, err := q.Exec(`
		INSERT INTO changelog_entries (version, title, body, published_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.Version, e.Title, e.Body, e.PublishedAt, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert entry %q: %w", e.Version, mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	e.ID = id
	e.CreatedAt = now
	e.UpdatedAt = now
	return nil
}

// Add inserts a new entry. Sets ID, CreatedAt and UpdatedAt on the struct,
// and PublishedAt when it is zero.
// Returns ErrDuplicate if the version already exists.
func (s *Store) Add(e *Entry) error { return addEntry(s.db, e) }

// Add inserts a new entry within a transaction.
func (t *Tx) Add(e *Entry) error { return addEntry(t.tx, e) }

func getEntry(q querier, id int64) (*Entry, error) {
	e, err := scanEntry(q.QueryRow("SELECT "+entryColumns+" FROM changelog_entries WHERE id = ?", id))
	if err != nil {
		return nil, fmt.Errorf("get entry %d: %w", id, mapSQLiteError(err))
	}
	return e, nil
}

// Get retrieves an entry by ID.
// Returns ErrNotFound if the entry does not exist.
func (s *Store) Get(id int64) (*Entry, error) { return getEntry(s.db, id) }

func listEntries(q querier, f Filter) ([]*Entry, int, error) {
	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM changelog_entries").Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count entries: %w", err)
	}

	query := "SELECT " + entryColumns + " FROM changelog_entries ORDER BY published_at DESC, id DESC"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query)
	if err != nil {
		return nil, 0, fmt.Errorf("list entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	results := []*Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan entry: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate entries: %w", err)
	}

	return results, total, nil
}

// List returns entries newest first with pagination.
// Returns (results, totalCount, error).
func (s *Store) List(f Filter) ([]*Entry, int, error) { return listEntries(s.db, f) }

// List returns entries newest first within a transaction.
func (t *Tx) List(f Filter) ([]*Entry, int, error) { return listEntries(t.tx, f) }

func updateEntry(q querier, e *Entry) error {
	if err := e.validate(); err != nil {
		return err
	}
	now := time.Now().UTC()
	if e.PublishedAt.IsZero() {
		e.PublishedAt = now
	}
	e.PublishedAt = e.PublishedAt.UTC()

	result, err := q.Exec(`
		UPDATE changelog_entries SET version = ?, title = ?, body = ?, published_at = ?, updated_at = ?
		WHERE id = ?`,
		e.Version, e.Title, e.Body, e.PublishedAt, now, e.ID,
	)
	if err != nil {
		return fmt.Errorf("update entry %d: %w", e.ID, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("update entry %d: %w", e.ID, ErrNotFound)
	}
	e.UpdatedAt = now
	return nil
}

// Update replaces the fields of an existing entry. Sets UpdatedAt on the struct.
// Returns ErrNotFound if the entry does not exist.
func (s *Store) Update(e *Entry) error { return updateEntry(s.db, e) }

// Update replaces the fields of an existing entry within a transaction.
func (t *Tx) Update(e *Entry) error { return updateEntry(t.tx, e) }

func deleteEntry(q querier, id int64) error {
	result, err := q.Exec("DELETE FROM changelog_entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, mapSQLiteError(err))
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("delete entry %d: %w", id, ErrNotFound)
	}
	return nil
}

// Delete removes an entry.
// Returns ErrNotFound if the entry does not exist.
func (s *Store) Delete(id int64) error { return deleteEntry(s.db, id) }

// Delete removes an entry within a transaction.
func (t *Tx) Delete(id int64) error { return deleteEntry(t.tx, id) }

// ReplaceAll makes the changelog match entries in one transaction, keyed
// by version. Existing versions keep their ID and CreatedAt, and versions
// missing from entries are deleted. A zero PublishedAt keeps the stored
// date of an existing version. Nothing changes if any entry is rejected.
// The caller's entries are not modified.
func (s *Store) ReplaceAll(entries []*Entry) (err error) {
	tx, err := s.Begin()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	current, _, err := tx.List(Filter{})
	if err != nil {
		return err
	}
	byVersion := make(map[string]*Entry, len(current))
	for _, e := range current {
		byVersion[e.Version] = e
	}

	incoming := make([]Entry, len(entries))
	seen := make(map[string]bool, len(entries))
	for i, in := range entries {
		e := &incoming[i]
		*e = *in
		if err = e.validate(); err != nil {
			return err
		}
		if seen[e.Version] {
			return fmt.Errorf("import entry %q: %w", e.Version, ErrDuplicate)
		}
		seen[e.Version] = true
	}
	for _, e := range current {
		if !seen[e.Version] {
			if err = tx.Delete(e.ID); err != nil {
				return err
			}
		}
	}

	for i := range incoming {
		e := &incoming[i]
		existing, ok := byVersion[e.Version]
		if !ok {
			e.ID = 0
			if err = tx.Add(e); err != nil {
				return err
			}
			continue
		}
		if e.PublishedAt.IsZero() {
			e.PublishedAt = existing.PublishedAt
		}
		if e.Title == existing.Title && e.Body == existing.Body && e.PublishedAt.Equal(existing.PublishedAt) {
			continue
		}
		e.ID = existing.ID
		if err = tx.Update(e); err != nil {
			return err
		}
	}
	return tx.Commit()
}
