/*
store implements the relational store of location and daily weather
records, backed by SQLite. Schema changes are applied as ordered
migrations tracked with the database user_version.
*/
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Packages
	meteo "github.com/abeyrathna-np/meteo"

	// SQLite driver (required for database/sql registration)
	sqlite3 "github.com/mattn/go-sqlite3"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Store provides access to weather and location records
type Store struct {
	db *sql.DB
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

// migrations are applied in order; the database user_version records
// how many have been applied
var migrations = []string{
	`CREATE TABLE location (
		id   INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		geom TEXT NOT NULL
	);
	CREATE TABLE weather (
		id            INTEGER PRIMARY KEY AUTOINCREMENT,
		date          TEXT NOT NULL UNIQUE,
		temp_max      REAL NOT NULL,
		temp_min      REAL NOT NULL,
		precipitation REAL NOT NULL,
		location_id   INTEGER REFERENCES location(id)
	);
	CREATE INDEX weather_location_idx ON weather(location_id);`,
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// New opens the database at the given path, creating it if necessary.
// Foreign key enforcement is always enabled.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, meteo.ErrBadParameter.With("missing database path")
	}
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	return s.db.Close()
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Version returns the number of applied migrations
func (s *Store) Version(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

// Migrate applies any pending migrations, in order. Each migration runs
// in its own transaction and bumps the user_version on success.
func (s *Store) Migrate(ctx context.Context) (int, error) {
	version, err := s.Version(ctx)
	if err != nil {
		return 0, err
	}
	if version > len(migrations) {
		return 0, meteo.ErrInternalServerError.Withf("database version %d is newer than this binary", version)
	}

	applied := 0
	for i := version; i < len(migrations); i++ {
		if err := s.apply(ctx, i); err != nil {
			return applied, fmt.Errorf("migration %d: %w", i+1, err)
		}
		applied++
	}
	return applied, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// apply runs one migration and records the new version
func (s *Store) apply(ctx context.Context, index int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migrations[index]); err != nil {
		return err
	}
	// PRAGMA does not accept bound parameters
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`PRAGMA user_version = %d`, index+1)); err != nil {
		return err
	}
	return tx.Commit()
}

// isConstraintErr returns true when the error is a uniqueness constraint
// violation
func isConstraintErr(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code == sqlite3.ErrConstraint && sqliteErr.ExtendedCode != sqlite3.ErrConstraintForeignKey
	}
	return false
}

// isForeignKeyErr returns true when the error is a foreign key violation
func isForeignKeyErr(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintForeignKey
	}
	return false
}
