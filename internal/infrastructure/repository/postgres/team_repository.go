package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"cfb-catalog/internal/domain/team"
	qb "cfb-catalog/internal/platform/querybuilder"
)

type TeamRepository struct {
	db     *sqlx.DB
	schema *Schema
}

func NewTeamRepository(db *sqlx.DB, schema *Schema) *TeamRepository {
	return &TeamRepository{db: db, schema: schema}
}

const teamUpsertSuffix = `ON CONFLICT (school) DO UPDATE SET
    mascot = EXCLUDED.mascot,
    abbreviation = EXCLUDED.abbreviation,
    conference = EXCLUDED.conference,
    division = EXCLUDED.division,
    location = EXCLUDED.location,
    raw = EXCLUDED.raw,
    updated_at = NOW()
RETURNING (xmax = 0) AS inserted`

func (r *TeamRepository) UpsertMany(ctx context.Context, items []team.Team) (int, int, error) {
	if len(items) == 0 {
		return 0, 0, nil
	}
	if err := r.schema.Ensure(ctx); err != nil {
		return 0, 0, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin tx upsert teams: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	inserted, updated := 0, 0
	for _, item := range items {
		raw := item.Raw
		if strings.TrimSpace(raw) == "" {
			raw = "{}"
		}
		insertModel := teamInsertModel{
			School:       item.School,
			Mascot:       orUnknown(item.Mascot),
			Abbreviation: orUnknown(item.Abbreviation),
			Conference:   orUnknown(item.Conference),
			Division:     orUnknown(item.Division),
			Location:     orUnknown(item.Location),
			Raw:          raw,
		}

		query, args, err := qb.InsertModel("teams", insertModel, teamUpsertSuffix)
		if err != nil {
			return 0, 0, fmt.Errorf("build upsert team query: %w", err)
		}

		var wasInsert bool
		if err := tx.QueryRowxContext(ctx, query, args...).Scan(&wasInsert); err != nil {
			return 0, 0, fmt.Errorf("upsert team school=%s: %w", item.School, err)
		}
		if wasInsert {
			inserted++
		} else {
			updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit upsert teams tx: %w", err)
	}

	return inserted, updated, nil
}
