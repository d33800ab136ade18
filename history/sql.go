package history

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// OpenDB opens the history SQLite database and applies schema
// migrations.
func OpenDB(dburi string) (*sqlx.DB, error) {
	// Add sqlite3-specific parameters if none are already
	// specified in the connection URI.
	if !strings.Contains(dburi, "?") {
		dburi += "?cache=shared&_busy_timeout=10000&_journal=WAL"
	}

	db, err := sqlx.Open("sqlite3", dburi)
	if err != nil {
		return nil, err
	}

	// Limit the pool to a single connection.
	// https://github.com/mattn/go-sqlite3/issues/209
	db.SetMaxOpenConns(1)

	if err = migrate(db); err != nil {
		db.Close() // nolint
		return nil, err
	}

	return db, nil
}

var migrations = []func(*sqlx.Tx) error{
	statement(`
CREATE TABLE conversions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    stamp DATETIME NOT NULL,
    input TEXT NOT NULL,
    format TEXT NOT NULL,
    ones INTEGER NOT NULL,
    zeros INTEGER NOT NULL,
    cidr TEXT NOT NULL,
    octet TEXT NOT NULL,
    bin TEXT NOT NULL
)`,
		`CREATE INDEX idx_conversions_stamp ON conversions (stamp)`,
	),
}

func statement(idl ...string) func(*sqlx.Tx) error {
	return func(tx *sqlx.Tx) error {
		for _, stmt := range idl {
			if _, err := tx.Exec(stmt); err != nil {
				return err
			}
		}
		return nil
	}
}

func migrate(db *sqlx.DB) error {
	return withTx(db, func(tx *sqlx.Tx) error {
		var idx int
		if err := tx.QueryRow("PRAGMA user_version").Scan(&idx); err != nil {
			return fmt.Errorf("getting latest applied migration: %w", err)
		}

		if idx == len(migrations) {
			return nil
		} else if idx > len(migrations) {
			return fmt.Errorf("database is at version %d, which is more recent than this binary understands", idx)
		}

		for i, f := range migrations[idx:] {
			if err := f(tx); err != nil {
				return fmt.Errorf("migration to version %d failed: %w", i+1, err)
			}
		}

		// For some reason, ? substitution doesn't work in PRAGMA
		// statements, sqlite reports a parse error.
		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version=%d", len(migrations))); err != nil {
			return fmt.Errorf("recording new DB version: %w", err)
		}

		return nil
	})
}

func withTx(db *sqlx.DB, f func(*sqlx.Tx) error) error {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	if err := f(tx); err != nil {
		tx.Rollback() // nolint: errcheck
		return err
	}
	return tx.Commit()
}
