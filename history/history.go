// Package history stores a log of successful mask conversions in a
// SQLite database, so a long-running conversion service can answer
// "what was recently converted" queries.
package history

import (
	"context"
	"time"

	"git.autistici.org/ai3/tools/masktr/mask"
	"github.com/jmoiron/sqlx"
)

// A Conversion is one successfully parsed mask expression together
// with its three renderings.
type Conversion struct {
	ID     int64     `db:"id" json:"id"`
	Stamp  time.Time `db:"stamp" json:"stamp"`
	Input  string    `db:"input" json:"input"`
	Format string    `db:"format" json:"format"`
	Ones   int       `db:"ones" json:"ones"`
	Zeros  int       `db:"zeros" json:"zeros"`
	CIDR   string    `db:"cidr" json:"cidr"`
	Octet  string    `db:"octet" json:"octet"`
	Binary string    `db:"bin" json:"binary"`
}

// Record builds a Conversion from a parsed mask.
func Record(input string, m *mask.Mask) *Conversion {
	return &Conversion{
		Stamp:  time.Now(),
		Input:  input,
		Format: m.Format().String(),
		Ones:   m.Ones(),
		Zeros:  m.Zeros(),
		CIDR:   m.CIDR(),
		Octet:  m.Octet(),
		Binary: m.Binary(),
	}
}

// Store is the conversion history database.
type Store struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db}
}

// Add appends a conversion to the history.
func (s *Store) Add(ctx context.Context, c *Conversion) error {
	return withTx(s.db, func(tx *sqlx.Tx) error {
		res, err := tx.NamedExecContext(ctx, `
INSERT INTO conversions (stamp, input, format, ones, zeros, cidr, octet, bin)
VALUES (:stamp, :input, :format, :ones, :zeros, :cidr, :octet, :bin)`, c)
		if err != nil {
			return err
		}
		c.ID, _ = res.LastInsertId()
		return nil
	})
}

// Recent returns the most recent conversions, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*Conversion, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM conversions ORDER BY id DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Conversion
	for rows.Next() {
		var c Conversion
		if err := rows.StructScan(&c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

// FindByFormat returns the most recent conversions whose input was in
// the given notation, newest first.
func (s *Store) FindByFormat(ctx context.Context, format string, limit int) ([]*Conversion, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT * FROM conversions WHERE format = ? ORDER BY id DESC LIMIT ?", format, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Conversion
	for rows.Next() {
		var c Conversion
		if err := rows.StructScan(&c); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
