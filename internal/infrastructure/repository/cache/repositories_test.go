package cache

import (
	"context"
	"testing"
	"time"

	"cfb-catalog/internal/domain/player"
	basecache "cfb-catalog/internal/platform/cache"
)

type stubPlayerRepo struct {
	searchCalls int
	upsertCalls int
	cards       []player.Card
}

func (s *stubPlayerRepo) UpsertMany(_ context.Context, items []player.Player) (int, int, error) {
	s.upsertCalls++
	return len(items), 0, nil
}

func (s *stubPlayerRepo) Search(_ context.Context, _ player.SearchFilter) ([]player.Card, error) {
	s.searchCalls++
	return s.cards, nil
}

func TestPlayerRepository_SearchCachesByFilter(t *testing.T) {
	t.Parallel()

	next := &stubPlayerRepo{cards: []player.Card{{ID: "1", FullName: "John Smith"}}}
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	filter := player.SearchFilter{Tokens: []string{"smith"}, Limit: 25}
	for i := 0; i < 3; i++ {
		cards, err := repo.Search(context.Background(), filter)
		if err != nil {
			t.Fatalf("search: %v", err)
		}
		if len(cards) != 1 || cards[0].FullName != "John Smith" {
			t.Fatalf("unexpected cards: %+v", cards)
		}
	}

	if next.searchCalls != 1 {
		t.Fatalf("storage searched %d times, want 1", next.searchCalls)
	}

	other := player.SearchFilter{Tokens: []string{"smith"}, Position: "QB", Limit: 25}
	if _, err := repo.Search(context.Background(), other); err != nil {
		t.Fatalf("search: %v", err)
	}
	if next.searchCalls != 2 {
		t.Fatalf("distinct filter should miss the cache, got %d calls", next.searchCalls)
	}
}

func TestPlayerRepository_UpsertFlushesSearchCache(t *testing.T) {
	t.Parallel()

	next := &stubPlayerRepo{cards: []player.Card{{ID: "1", FullName: "John Smith"}}}
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	filter := player.SearchFilter{Tokens: []string{"smith"}, Limit: 25}
	if _, err := repo.Search(context.Background(), filter); err != nil {
		t.Fatalf("search: %v", err)
	}

	if _, _, err := repo.UpsertMany(context.Background(), []player.Player{{ID: "2", FullName: "Jane Smith"}}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if next.upsertCalls != 1 {
		t.Fatalf("upsert should reach storage, got %d calls", next.upsertCalls)
	}

	if _, err := repo.Search(context.Background(), filter); err != nil {
		t.Fatalf("search: %v", err)
	}
	if next.searchCalls != 2 {
		t.Fatalf("upsert should flush cached searches, got %d calls", next.searchCalls)
	}
}
