package postgres

import (
	"context"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Schema applies the idempotent DDL the catalog writers depend on.
// Ensure runs the statements once per process; later calls observe the
// first outcome.
type Schema struct {
	db   *sqlx.DB
	once sync.Once
	err  error
}

func NewSchema(db *sqlx.DB) *Schema {
	return &Schema{db: db}
}

var schemaStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS pg_trgm`,
	`CREATE TABLE IF NOT EXISTS players (
	id TEXT PRIMARY KEY,
	full_name TEXT NOT NULL,
	first_name TEXT NOT NULL DEFAULT '',
	last_name TEXT NOT NULL DEFAULT '',
	position TEXT NOT NULL DEFAULT 'unknown',
	team TEXT NOT NULL DEFAULT 'unknown',
	conference TEXT NOT NULL DEFAULT 'unknown',
	class_year TEXT NOT NULL DEFAULT 'unknown',
	height TEXT NOT NULL DEFAULT 'unknown',
	weight TEXT NOT NULL DEFAULT 'unknown',
	raw JSONB NOT NULL DEFAULT '{}'::jsonb,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_players_full_name_trgm ON players USING gin (full_name gin_trgm_ops)`,
	`CREATE INDEX IF NOT EXISTS idx_players_position ON players (position)`,
	`CREATE INDEX IF NOT EXISTS idx_players_conference ON players (conference)`,
	`CREATE TABLE IF NOT EXISTS teams (
	school TEXT PRIMARY KEY,
	mascot TEXT NOT NULL DEFAULT 'unknown',
	abbreviation TEXT NOT NULL DEFAULT 'unknown',
	conference TEXT NOT NULL DEFAULT 'unknown',
	division TEXT NOT NULL DEFAULT 'unknown',
	location TEXT NOT NULL DEFAULT 'unknown',
	raw JSONB NOT NULL DEFAULT '{}'::jsonb,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`,
	`CREATE INDEX IF NOT EXISTS idx_teams_school_trgm ON teams USING gin (school gin_trgm_ops)`,
}

// Ensure is called by the writers before the first cold write so a
// one-shot ingest works against an empty database without running the
// migration binary first.
func (s *Schema) Ensure(ctx context.Context) error {
	s.once.Do(func() {
		for _, stmt := range schemaStatements {
			if _, err := s.db.ExecContext(ctx, stmt); err != nil {
				s.err = fmt.Errorf("ensure schema: %w", err)
				return
			}
		}
	})

	return s.err
}
