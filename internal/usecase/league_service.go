package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"

	"cfb-catalog/internal/domain/league"
	idgen "cfb-catalog/internal/platform/id"
)

const (
	defaultLeagueName      = "New League"
	defaultLeagueTeamCount = 10
)

type CreateLeagueInput struct {
	Name      string
	TeamCount int
	Scoring   string
	Draft     string
}

type LeagueService struct {
	leagues league.Repository
	ids     idgen.Generator
	logger  *slog.Logger
}

func NewLeagueService(leagues league.Repository, ids idgen.Generator, logger *slog.Logger) *LeagueService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LeagueService{leagues: leagues, ids: ids, logger: logger}
}

// CreateLeague fills unspecified settings with the defaults before
// validating and persisting.
func (s *LeagueService) CreateLeague(ctx context.Context, ownerID string, input CreateLeagueInput) (league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.CreateLeague")
	defer span.End()

	if strings.TrimSpace(ownerID) == "" {
		return league.League{}, fmt.Errorf("%w: owner id is required", ErrUnauthorized)
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = defaultLeagueName
	}
	teamCount := input.TeamCount
	if teamCount == 0 {
		teamCount = defaultLeagueTeamCount
	}
	scoring := strings.ToLower(strings.TrimSpace(input.Scoring))
	if scoring == "" {
		scoring = league.ScoringPPR
	}
	draft := strings.ToLower(strings.TrimSpace(input.Draft))
	if draft == "" {
		draft = league.DraftSnake
	}

	id, err := s.ids.NewID()
	if err != nil {
		return league.League{}, crerr.Wrap(err, "generate league id")
	}

	item := league.League{
		ID:        id,
		OwnerID:   ownerID,
		Name:      name,
		TeamCount: teamCount,
		Scoring:   scoring,
		Draft:     draft,
		CreatedAt: time.Now().UTC(),
	}
	if err := item.Validate(); err != nil {
		return league.League{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.leagues.Create(ctx, item); err != nil {
		return league.League{}, fmt.Errorf("create league: %w", err)
	}

	s.logger.InfoContext(ctx, "league created", "league_id", item.ID, "owner_id", ownerID)
	return item, nil
}

func (s *LeagueService) ListMyLeagues(ctx context.Context, ownerID string) ([]league.League, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeagueService.ListMyLeagues")
	defer span.End()

	if strings.TrimSpace(ownerID) == "" {
		return nil, fmt.Errorf("%w: owner id is required", ErrUnauthorized)
	}

	items, err := s.leagues.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return items, nil
}
