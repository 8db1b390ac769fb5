// Package store persists tracked people and the notification ledger in a
// local SQLite database under the user's home directory.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/lomazzo/birthkeep/internal/config"
	"github.com/lomazzo/birthkeep/internal/engine"
)

// Sentinel errors surfaced to the UI layer.
var (
	ErrDuplicateName  = errors.New(config.ErrDuplicateName)
	ErrPersonNotFound = errors.New(config.ErrPersonMissing)
)

// schema is applied on every open; statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS people (
	id          TEXT PRIMARY KEY,
	name        TEXT NOT NULL UNIQUE COLLATE NOCASE,
	birth_date  TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	photo       BLOB,
	created_at  DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS notification_ledger (
	person_id TEXT NOT NULL,
	day_key   TEXT NOT NULL,
	marked_at DATETIME NOT NULL,
	PRIMARY KEY (person_id, day_key)
);
`

// Store wraps the SQLite database holding people and the de-duplication
// ledger.
type Store struct {
	db   *sql.DB
	path string
	log  *slog.Logger
}

// Open creates or opens the database at dataDir. An empty dataDir defaults
// to ~/.birthkeep.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.ErrHomeDir, err)
		}
		dataDir = filepath.Join(home, config.DataDirName)
	}

	if err := os.MkdirAll(dataDir, config.DirPermUserRWX); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	dbPath := filepath.Join(dataDir, config.DBFileName)
	db, err := sql.Open(config.DBDriver, dbPath+config.DBOpenArgs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrOpenDB, err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrSchema, err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
		log:  slog.With(config.LogKeyComponent, config.CompStore),
	}
	s.log.Info(config.MsgStoreOpened, config.LogKeyPath, dbPath)
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// AddPerson stores a new person. Names are unique case-insensitively;
// a collision returns ErrDuplicateName.
func (s *Store) AddPerson(ctx context.Context, p engine.Person) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO people (id, name, birth_date, description, photo, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.BirthDate, p.Description, p.Photo, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("adding person: %w", err)
	}

	s.log.Info(config.MsgPersonAdded,
		config.LogKeyPersonID, p.ID,
		config.LogKeyName, p.Name)
	return nil
}

// UpdatePerson rewrites a stored person's mutable fields.
func (s *Store) UpdatePerson(ctx context.Context, p engine.Person) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE people SET name = ?, birth_date = ?, description = ?, photo = ?
		WHERE id = ?
	`, p.Name, p.BirthDate, p.Description, p.Photo, p.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateName
		}
		return fmt.Errorf("updating person: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating person: %w", err)
	}
	if n == 0 {
		return ErrPersonNotFound
	}
	return nil
}

// DeletePerson removes a person and their ledger entries.
func (s *Store) DeletePerson(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	res, err := tx.ExecContext(ctx, "DELETE FROM people WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting person: %w", err)
	}
	if n == 0 {
		return ErrPersonNotFound
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM notification_ledger WHERE person_id = ?", id); err != nil {
		return fmt.Errorf("deleting ledger entries: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.log.Info(config.MsgPersonDeleted, config.LogKeyPersonID, id)
	return nil
}

// GetPerson retrieves a person by ID.
func (s *Store) GetPerson(ctx context.Context, id string) (*engine.Person, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, birth_date, description, photo, created_at
		FROM people WHERE id = ?
	`, id)

	var p engine.Person
	if err := row.Scan(&p.ID, &p.Name, &p.BirthDate, &p.Description, &p.Photo, &p.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPersonNotFound
		}
		return nil, fmt.Errorf("scanning person: %w", err)
	}
	return &p, nil
}

// ListPeople returns all tracked people ordered by name.
func (s *Store) ListPeople(ctx context.Context) ([]engine.Person, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, birth_date, description, photo, created_at
		FROM people ORDER BY name COLLATE NOCASE
	`)
	if err != nil {
		return nil, fmt.Errorf("querying people: %w", err)
	}
	defer rows.Close()

	return scanPeople(rows)
}

// WasNotified reports whether the ledger already records a reminder for the
// person on the given calendar day.
func (s *Store) WasNotified(ctx context.Context, personID, dayKey string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notification_ledger WHERE person_id = ? AND day_key = ?
	`, personID, dayKey).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking ledger: %w", err)
	}
	return count > 0, nil
}

// MarkNotified records ledger entries in a single transaction. Replaying an
// already recorded entry is a no-op, so the call is safe to retry.
func (s *Store) MarkNotified(ctx context.Context, entries []engine.LedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO notification_ledger (person_id, day_key, marked_at)
		VALUES (?, ?, ?)
		ON CONFLICT(person_id, day_key) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for _, e := range entries {
		if _, err := stmt.ExecContext(ctx, e.PersonID, e.DayKey, now); err != nil {
			return fmt.Errorf("recording ledger entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.log.Debug(config.MsgLedgerMarked, config.LogKeyCount, len(entries))
	return nil
}

// ListLedger returns every recorded ledger entry.
func (s *Store) ListLedger(ctx context.Context) ([]engine.LedgerEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT person_id, day_key FROM notification_ledger ORDER BY day_key, person_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()

	var entries []engine.LedgerEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var e engine.LedgerEntry
		if err := rows.Scan(&e.PersonID, &e.DayKey); err != nil {
			return nil, fmt.Errorf("scanning ledger entry: %w", err)
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ledger: %w", err)
	}
	return entries, nil
}

// Restore replaces all local state with the given snapshot contents in one
// transaction. The database is left untouched if any step fails.
func (s *Store) Restore(ctx context.Context, people []engine.Person, ledger []engine.LedgerEntry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM notification_ledger"); err != nil {
		return fmt.Errorf("clearing ledger: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM people"); err != nil {
		return fmt.Errorf("clearing people: %w", err)
	}

	now := time.Now().UTC()
	for _, p := range people {
		createdAt := p.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO people (id, name, birth_date, description, photo, created_at)
			VALUES (?, ?, ?, ?, ?, ?)
		`, p.ID, p.Name, p.BirthDate, p.Description, p.Photo, createdAt); err != nil {
			return fmt.Errorf("restoring person: %w", err)
		}
	}
	for _, e := range ledger {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO notification_ledger (person_id, day_key, marked_at)
			VALUES (?, ?, ?)
			ON CONFLICT(person_id, day_key) DO NOTHING
		`, e.PersonID, e.DayKey, now); err != nil {
			return fmt.Errorf("restoring ledger entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	s.log.Info(config.MsgStateRestored,
		config.LogKeyTotal, len(people),
		config.LogKeyCount, len(ledger))
	return nil
}

// scanPeople scans multiple people rows.
func scanPeople(rows *sql.Rows) ([]engine.Person, error) {
	var people []engine.Person //nolint:prealloc // size unknown from query
	for rows.Next() {
		var p engine.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.BirthDate, &p.Description, &p.Photo, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning person: %w", err)
		}
		people = append(people, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating people: %w", err)
	}
	return people, nil
}

// isUniqueViolation detects the driver's UNIQUE constraint error.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
