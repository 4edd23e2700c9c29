package league

import (
	"fmt"
	"time"
)

const (
	ScoringPPR      = "ppr"
	ScoringStandard = "standard"

	DraftSnake   = "snake"
	DraftAuction = "auction"
)

// League is a user-created fantasy league.
type League struct {
	ID        string
	OwnerID   string
	Name      string
	TeamCount int
	Scoring   string
	Draft     string
	CreatedAt time.Time
}

func (l League) Validate() error {
	if l.ID == "" {
		return fmt.Errorf("league id is required")
	}
	if l.OwnerID == "" {
		return fmt.Errorf("league owner id is required")
	}
	if l.Name == "" {
		return fmt.Errorf("league name is required")
	}
	if l.TeamCount < 2 || l.TeamCount > 32 {
		return fmt.Errorf("league team count must be between 2 and 32")
	}
	if l.Scoring != ScoringPPR && l.Scoring != ScoringStandard {
		return fmt.Errorf("invalid league scoring: %s", l.Scoring)
	}
	if l.Draft != DraftSnake && l.Draft != DraftAuction {
		return fmt.Errorf("invalid league draft: %s", l.Draft)
	}

	return nil
}
