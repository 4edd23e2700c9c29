package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"cfb-catalog/internal/domain/player"
	"cfb-catalog/internal/domain/team"
	"cfb-catalog/internal/platform/logging"
)

// IngestOutcome summarizes one ingest run. Failures surface in Errors
// rather than as a returned Go error; callers always get the counters
// for whatever part of the run completed.
type IngestOutcome struct {
	Inserted      int
	Updated       int
	TeamsInserted int
	TeamsUpdated  int
	APICalls      int
	Errors        []string
}

type IngestService struct {
	provider CatalogProvider
	players  player.Repository
	teams    team.Repository
	apiKey   string
	dbURL    string
	logger   *logging.Logger
}

func NewIngestService(
	provider CatalogProvider,
	players player.Repository,
	teams team.Repository,
	apiKey string,
	dbURL string,
	logger *logging.Logger,
) *IngestService {
	if logger == nil {
		logger = logging.Default()
	}

	return &IngestService{
		provider: provider,
		players:  players,
		teams:    teams,
		apiKey:   strings.TrimSpace(apiKey),
		dbURL:    strings.TrimSpace(dbURL),
		logger:   logger,
	}
}

// Run performs one full ingest pass for a season: teams first, then
// players. Configuration is checked before any network or database
// call; a missing key or database URL yields a single config error
// and an otherwise zero outcome.
func (s *IngestService) Run(ctx context.Context, season int) IngestOutcome {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.Run")
	defer span.End()

	var out IngestOutcome
	if missing := s.missingConfig(); len(missing) > 0 {
		out.Errors = append(out.Errors, "config: "+strings.Join(missing, " and ")+" must be set")
		return out
	}

	teamResult := s.provider.FetchTeams(ctx, season)
	out.APICalls += teamResult.APICalls
	out.Errors = append(out.Errors, teamResult.Problems...)
	if len(teamResult.Records) > 0 {
		inserted, updated, err := s.teams.UpsertMany(ctx, mapExternalTeams(teamResult.Records))
		if err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("db: upsert teams: %v", err))
		} else {
			out.TeamsInserted = inserted
			out.TeamsUpdated = updated
		}
	}

	playerResult := s.provider.FetchPlayers(ctx, season)
	out.APICalls += playerResult.APICalls
	out.Errors = append(out.Errors, playerResult.Problems...)
	if len(playerResult.Records) > 0 {
		inserted, updated, err := s.players.UpsertMany(ctx, mapExternalPlayers(playerResult.Records))
		if err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("db: upsert players: %v", err))
		} else {
			out.Inserted = inserted
			out.Updated = updated
		}
	}

	s.logger.InfoContext(ctx, "ingest run finished",
		"season", season,
		"players_inserted", out.Inserted,
		"players_updated", out.Updated,
		"teams_inserted", out.TeamsInserted,
		"teams_updated", out.TeamsUpdated,
		"api_calls", out.APICalls,
		"problem_count", len(out.Errors),
	)

	return out
}

func (s *IngestService) missingConfig() []string {
	var missing []string
	if s.apiKey == "" {
		missing = append(missing, "CFBD_API_KEY")
	}
	if s.dbURL == "" {
		missing = append(missing, "DB_URL")
	}
	return missing
}

func mapExternalPlayers(records []ExternalPlayerRecord) []player.Player {
	out := make([]player.Player, 0, len(records))
	for _, rec := range records {
		weight := ""
		if rec.Weight != nil {
			weight = strconv.Itoa(*rec.Weight)
		}
		out = append(out, player.Player{
			ID:         rec.ID,
			FullName:   rec.FullName,
			FirstName:  rec.FirstName,
			LastName:   rec.LastName,
			Position:   rec.Position,
			Team:       rec.Team,
			Conference: rec.Conference,
			ClassYear:  rec.ClassYear,
			Height:     rec.Height,
			Weight:     weight,
			Raw:        rec.Raw,
		})
	}
	return out
}

func mapExternalTeams(records []ExternalTeamRecord) []team.Team {
	out := make([]team.Team, 0, len(records))
	for _, rec := range records {
		out = append(out, team.Team{
			School:       rec.School,
			Mascot:       rec.Mascot,
			Abbreviation: rec.Abbreviation,
			Conference:   rec.Conference,
			Division:     rec.Division,
			Location:     rec.Location,
			Raw:          rec.Raw,
		})
	}
	return out
}
