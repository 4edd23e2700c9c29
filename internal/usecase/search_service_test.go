package usecase

import (
	"context"
	"reflect"
	"testing"

	"cfb-catalog/internal/domain/player"
)

func TestSearchService_SearchPlayers_BlankQuerySkipsStorage(t *testing.T) {
	t.Parallel()

	repo := &stubSearchPlayerRepo{}
	svc := NewSearchService(repo)

	cards, err := svc.SearchPlayers(context.Background(), SearchQuery{Text: "   \t  "})
	if err != nil {
		t.Fatalf("SearchPlayers error: %v", err)
	}
	if cards == nil || len(cards) != 0 {
		t.Fatalf("expected empty non-nil slice, got=%v", cards)
	}
	if repo.calls != 0 {
		t.Fatalf("expected no storage calls, got=%d", repo.calls)
	}
}

func TestSearchService_SearchPlayers_TokenizesAndClamps(t *testing.T) {
	t.Parallel()

	repo := &stubSearchPlayerRepo{}
	svc := NewSearchService(repo)

	if _, err := svc.SearchPlayers(context.Background(), SearchQuery{
		Text:       "  John   SMITH ",
		Position:   " QB ",
		Conference: "SEC",
		Limit:      500,
	}); err != nil {
		t.Fatalf("SearchPlayers error: %v", err)
	}

	want := player.SearchFilter{
		Tokens:     []string{"john", "smith"},
		Position:   "QB",
		Conference: "SEC",
		Limit:      100,
	}
	if !reflect.DeepEqual(repo.lastFilter, want) {
		t.Fatalf("unexpected filter: %+v", repo.lastFilter)
	}
}

func TestClampSearchLimit(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   int
		want int
	}{
		{0, 25},
		{-5, 25},
		{1, 1},
		{100, 100},
		{101, 100},
	}
	for _, tc := range cases {
		if got := clampSearchLimit(tc.in); got != tc.want {
			t.Fatalf("clampSearchLimit(%d)=%d, want=%d", tc.in, got, tc.want)
		}
	}
}

func TestTokenizeQuery(t *testing.T) {
	t.Parallel()

	got := tokenizeQuery(" Ohio  State\tQB ")
	want := []string{"ohio", "state", "qb"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tokenizeQuery=%v, want=%v", got, want)
	}
}

type stubSearchPlayerRepo struct {
	calls      int
	lastFilter player.SearchFilter
	cards      []player.Card
	err        error
}

func (s *stubSearchPlayerRepo) UpsertMany(_ context.Context, _ []player.Player) (int, int, error) {
	return 0, 0, nil
}

func (s *stubSearchPlayerRepo) Search(_ context.Context, filter player.SearchFilter) ([]player.Card, error) {
	s.calls++
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return s.cards, nil
}
