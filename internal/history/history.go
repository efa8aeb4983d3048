// Package history keeps a log of the lookups that were made. It is never
// consulted to answer a lookup.
package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/JadedPigeon/typechecker/internal/effectiveness"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const DefaultLimit = 20

type Lookup struct {
	ID          string    `json:"id" yaml:"id"`
	Species     string    `json:"pokemon" yaml:"pokemon"`
	Types       []string  `json:"types" yaml:"types"`
	StrongCount int       `json:"strong_count" yaml:"strong_count"`
	WeakCount   int       `json:"weak_count" yaml:"weak_count"`
	CreatedAt   time.Time `json:"created_at" yaml:"created_at"`
}

type lookupRow struct {
	ID          string `db:"id"`
	Species     string `db:"species"`
	Types       string `db:"types"`
	StrongCount int    `db:"strong_count"`
	WeakCount   int    `db:"weak_count"`
	CreatedAt   int64  `db:"created_at"`
}

func (r lookupRow) lookup() Lookup {
	var types []string
	if r.Types != "" {
		types = strings.Split(r.Types, ",")
	}
	return Lookup{
		ID:          r.ID,
		Species:     r.Species,
		Types:       types,
		StrongCount: r.StrongCount,
		WeakCount:   r.WeakCount,
		CreatedAt:   time.UnixMilli(r.CreatedAt).UTC(),
	}
}

// Store records lookups in a SQL database. A nil *Store is valid and
// records nothing.
type Store struct {
	db  *sqlx.DB
	now func() time.Time
}

// Open connects to the database. The driver must already be registered
// (lib/pq registers "postgres").
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("unable to reach database: %w", err)
	}
	return New(db), nil
}

func New(db *sqlx.DB) *Store {
	return &Store{db: db, now: time.Now}
}

func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) Migrate(ctx context.Context) error {
	if s == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		/* sql */ `
		CREATE TABLE IF NOT EXISTS lookups (
			id           TEXT PRIMARY KEY,
			species      TEXT NOT NULL,
			types        TEXT NOT NULL,
			strong_count INTEGER NOT NULL,
			weak_count   INTEGER NOT NULL,
			created_at   BIGINT NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create lookups table: %w", err)
	}
	return nil
}

func (s *Store) Record(ctx context.Context, r *effectiveness.Report) (Lookup, error) {
	if s == nil {
		return Lookup{}, nil
	}
	row := lookupRow{
		ID:          uuid.NewString(),
		Species:     r.Species,
		Types:       strings.Join(r.Types, ","),
		StrongCount: len(r.StrongAgainst),
		WeakCount:   len(r.WeakAgainst),
		CreatedAt:   s.now().UnixMilli(),
	}
	_, err := s.db.NamedExecContext(ctx,
		/* sql */ `
		INSERT INTO lookups (id, species, types, strong_count, weak_count, created_at)
		VALUES (:id, :species, :types, :strong_count, :weak_count, :created_at)
	`, row)
	if err != nil {
		return Lookup{}, fmt.Errorf("error recording lookup for %q: %w", r.Species, err)
	}
	return row.lookup(), nil
}

// Recent returns up to limit lookups, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Lookup, error) {
	if s == nil {
		return []Lookup{}, nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var rows []lookupRow
	err := s.db.SelectContext(ctx, &rows, s.db.Rebind(
		/* sql */ `
		SELECT id, species, types, strong_count, weak_count, created_at
		FROM lookups
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`), limit)
	if err != nil {
		return nil, fmt.Errorf("error listing lookups: %w", err)
	}

	out := make([]Lookup, len(rows))
	for i, r := range rows {
		out[i] = r.lookup()
	}
	return out, nil
}
