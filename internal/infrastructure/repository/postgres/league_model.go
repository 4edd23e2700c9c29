package postgres

import "time"

type leagueTableModel struct {
	ID        string    `db:"id"`
	OwnerID   string    `db:"owner_id"`
	Name      string    `db:"name"`
	TeamCount int       `db:"team_count"`
	Scoring   string    `db:"scoring"`
	Draft     string    `db:"draft"`
	CreatedAt time.Time `db:"created_at"`
}
