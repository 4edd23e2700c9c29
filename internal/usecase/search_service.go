package usecase

import (
	"context"
	"fmt"
	"strings"

	"cfb-catalog/internal/domain/player"
)

const (
	defaultSearchLimit = 25
	maxSearchLimit     = 100
)

// SearchQuery is the caller-facing search input before tokenization
// and limit clamping.
type SearchQuery struct {
	Text       string
	Position   string
	Conference string
	Limit      int
}

type SearchService struct {
	players player.Repository
}

func NewSearchService(players player.Repository) *SearchService {
	return &SearchService{players: players}
}

// SearchPlayers ANDs whitespace-separated tokens, each matched against
// every indexed text column. A blank query returns no rows and never
// touches storage.
func (s *SearchService) SearchPlayers(ctx context.Context, q SearchQuery) ([]player.Card, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SearchService.SearchPlayers")
	defer span.End()

	tokens := tokenizeQuery(q.Text)
	if len(tokens) == 0 {
		return []player.Card{}, nil
	}

	cards, err := s.players.Search(ctx, player.SearchFilter{
		Tokens:     tokens,
		Position:   strings.TrimSpace(q.Position),
		Conference: strings.TrimSpace(q.Conference),
		Limit:      clampSearchLimit(q.Limit),
	})
	if err != nil {
		return nil, fmt.Errorf("search players: %w", err)
	}

	return cards, nil
}

func tokenizeQuery(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, field := range fields {
		out = append(out, strings.ToLower(field))
	}
	return out
}

func clampSearchLimit(limit int) int {
	if limit <= 0 {
		return defaultSearchLimit
	}
	if limit > maxSearchLimit {
		return maxSearchLimit
	}
	return limit
}
