package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"cfb-catalog/internal/domain/league"
	qb "cfb-catalog/internal/platform/querybuilder"
)

type LeagueRepository struct {
	db *sqlx.DB
}

func NewLeagueRepository(db *sqlx.DB) *LeagueRepository {
	return &LeagueRepository{db: db}
}

func (r *LeagueRepository) Create(ctx context.Context, item league.League) error {
	insertModel := leagueTableModel{
		ID:        item.ID,
		OwnerID:   item.OwnerID,
		Name:      item.Name,
		TeamCount: item.TeamCount,
		Scoring:   item.Scoring,
		Draft:     item.Draft,
		CreatedAt: item.CreatedAt,
	}

	query, args, err := qb.InsertModel("leagues", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert league query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert league: %w", err)
	}

	return nil
}

func (r *LeagueRepository) ListByOwner(ctx context.Context, ownerID string) ([]league.League, error) {
	query, args, err := qb.Select("*").From("leagues").
		Where(qb.Eq("owner_id", ownerID)).
		OrderBy("created_at ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select leagues by owner query: %w", err)
	}

	var rows []leagueTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select leagues by owner: %w", err)
	}

	out := make([]league.League, 0, len(rows))
	for _, row := range rows {
		out = append(out, league.League{
			ID:        row.ID,
			OwnerID:   row.OwnerID,
			Name:      row.Name,
			TeamCount: row.TeamCount,
			Scoring:   row.Scoring,
			Draft:     row.Draft,
			CreatedAt: row.CreatedAt,
		})
	}

	return out, nil
}
