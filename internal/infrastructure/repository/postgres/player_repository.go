package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"cfb-catalog/internal/domain/player"
	qb "cfb-catalog/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db     *sqlx.DB
	schema *Schema
}

func NewPlayerRepository(db *sqlx.DB, schema *Schema) *PlayerRepository {
	return &PlayerRepository{db: db, schema: schema}
}

// xmax = 0 distinguishes a fresh insert from a conflict update.
const playerUpsertSuffix = `ON CONFLICT (id) DO UPDATE SET
    full_name = EXCLUDED.full_name,
    first_name = EXCLUDED.first_name,
    last_name = EXCLUDED.last_name,
    position = EXCLUDED.position,
    team = EXCLUDED.team,
    conference = EXCLUDED.conference,
    class_year = EXCLUDED.class_year,
    height = EXCLUDED.height,
    weight = EXCLUDED.weight,
    raw = EXCLUDED.raw,
    updated_at = NOW()
RETURNING (xmax = 0) AS inserted`

// UpsertMany writes the whole batch in one transaction; a failed row
// rolls everything back. An empty batch opens no transaction at all.
func (r *PlayerRepository) UpsertMany(ctx context.Context, items []player.Player) (int, int, error) {
	if len(items) == 0 {
		return 0, 0, nil
	}
	if err := r.schema.Ensure(ctx); err != nil {
		return 0, 0, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin tx upsert players: %w", err)
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
		insertModel := playerInsertModel{
			ID:         item.ID,
			FullName:   item.FullName,
			FirstName:  item.FirstName,
			LastName:   item.LastName,
			Position:   orUnknown(item.Position),
			Team:       orUnknown(item.Team),
			Conference: orUnknown(item.Conference),
			ClassYear:  orUnknown(item.ClassYear),
			Height:     orUnknown(item.Height),
			Weight:     orUnknown(item.Weight),
			Raw:        raw,
		}

		query, args, err := qb.InsertModel("players", insertModel, playerUpsertSuffix)
		if err != nil {
			return 0, 0, fmt.Errorf("build upsert player query: %w", err)
		}

		var wasInsert bool
		if err := tx.QueryRowxContext(ctx, query, args...).Scan(&wasInsert); err != nil {
			return 0, 0, fmt.Errorf("upsert player id=%s: %w", item.ID, err)
		}
		if wasInsert {
			inserted++
		} else {
			updated++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit upsert players tx: %w", err)
	}

	return inserted, updated, nil
}

var playerSearchColumns = []string{
	"p.id",
	"p.full_name",
	"p.team",
	"p.position",
	"COALESCE(t.conference, '') AS conference",
	"p.class_year",
	"COALESCE(t.abbreviation, '') AS abbreviation",
	"COALESCE(t.school, '') AS school",
}

func (r *PlayerRepository) Search(ctx context.Context, filter player.SearchFilter) ([]player.Card, error) {
	query, args, err := buildPlayerSearchQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("build player search query: %w", err)
	}

	var rows []playerSearchRowModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select player search: %w", err)
	}

	out := make([]player.Card, 0, len(rows))
	for _, row := range rows {
		out = append(out, player.Card{
			ID:         row.ID,
			FullName:   row.FullName,
			Team:       teamLabel(row),
			Position:   row.Position,
			Conference: row.Conference,
			ClassYear:  row.ClassYear,
		})
	}

	return out, nil
}

// Every token must match at least one of the text columns; tokens are
// ANDed together. Position and conference filters match exactly,
// ignoring case.
func buildPlayerSearchQuery(filter player.SearchFilter) (string, []any, error) {
	conditions := make([]qb.Condition, 0, len(filter.Tokens)+2)
	for _, token := range filter.Tokens {
		pattern := "%" + token + "%"
		conditions = append(conditions, qb.Or(
			qb.ILike("p.full_name", pattern),
			qb.ILike("t.school", pattern),
			qb.ILike("t.abbreviation", pattern),
			qb.ILike("p.position", pattern),
			qb.ILike("t.conference", pattern),
		))
	}
	if filter.Position != "" {
		conditions = append(conditions, qb.ILike("p.position", filter.Position))
	}
	if filter.Conference != "" {
		conditions = append(conditions, qb.ILike("t.conference", filter.Conference))
	}

	return qb.Select(playerSearchColumns...).
		From("players p").
		LeftJoin("teams t ON t.school = p.team").
		Where(conditions...).
		OrderBy("p.full_name ASC").
		Limit(filter.Limit).
		ToSQL()
}

func teamLabel(row playerSearchRowModel) string {
	if row.Abbreviation != "" && row.Abbreviation != unknownValue {
		return row.Abbreviation
	}
	if row.School != "" {
		return row.School
	}
	return row.Team
}
