package storage

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	apperrors "github.com/mholecek/worktrack/internal/errors"
	"github.com/mholecek/worktrack/internal/migration"
	"github.com/mholecek/worktrack/migrations"
)

// Store is the handle to the embedded database. Each Store owns one SQLite
// file; tests create one handle per isolated temp database. All repository
// operations hang off this handle, there is no package-level instance.
type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// Init creates the database file if needed, applies pending migrations and
// seeds first-run defaults.
func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("%w: failed to create data directory: %v", apperrors.ErrStorageUnavailable, err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("%w: failed to open database: %v", apperrors.ErrStorageUnavailable, err)
	}
	s.db = db

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("%w: failed to run migrations: %v", apperrors.ErrStorageUnavailable, err)
	}

	return s.EnsureInitialized()
}

// Load opens an existing database without creating or seeding anything.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'worktrack init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("%w: failed to open database: %v", apperrors.ErrStorageUnavailable, err)
	}
	s.db = db

	// A file that is not a readable SQLite database must fail loudly here,
	// never degrade to an empty state.
	var count int
	if err := db.QueryRow("SELECT count(*) FROM sqlite_master").Scan(&count); err != nil {
		return fmt.Errorf("%w: database appears to be corrupted: %v", apperrors.ErrStorageUnavailable, err)
	}

	if err := s.validateSchemaVersion(); err != nil {
		return err
	}

	return nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) runMigrations() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	_, err = runner.ApplyMigrations(nil)
	return err
}

func (s *Store) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	return runner.ValidateVersion()
}

// withTx runs fn inside a single transaction: every read observes a
// consistent snapshot and the writes either fully commit or fully abort.
// Repository mutations use this to commit the record write and its budget
// adjustment together.
func (s *Store) withTx(fn func(tx *sql.Tx) error) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// Timestamps are stored as RFC3339Nano UTC strings so millisecond durations
// survive the round trip.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
