package cache

import (
	"context"
	"strconv"
	"strings"

	"cfb-catalog/internal/domain/player"
	basecache "cfb-catalog/internal/platform/cache"
)

const searchKeyPrefix = "player:search:"

// PlayerRepository caches search results in front of the persistent
// repository. Any upsert flushes the search keys so readers never see
// rows older than the last ingest.
type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) UpsertMany(ctx context.Context, items []player.Player) (int, int, error) {
	inserted, updated, err := r.next.UpsertMany(ctx, items)
	if err != nil {
		return inserted, updated, err
	}

	r.cache.DeletePrefix(ctx, searchKeyPrefix)
	return inserted, updated, nil
}

func (r *PlayerRepository) Search(ctx context.Context, filter player.SearchFilter) ([]player.Card, error) {
	v, err := r.cache.GetOrLoad(ctx, searchKey(filter), func(ctx context.Context) (any, error) {
		cards, err := r.next.Search(ctx, filter)
		if err != nil {
			return nil, err
		}
		return append([]player.Card(nil), cards...), nil
	})
	if err != nil {
		return nil, err
	}

	cards, _ := v.([]player.Card)
	return append([]player.Card(nil), cards...), nil
}

func searchKey(filter player.SearchFilter) string {
	var b strings.Builder
	b.WriteString(searchKeyPrefix)
	b.WriteString(strings.Join(filter.Tokens, ","))
	b.WriteString("|")
	b.WriteString(filter.Position)
	b.WriteString("|")
	b.WriteString(filter.Conference)
	b.WriteString("|")
	b.WriteString(strconv.Itoa(filter.Limit))
	return b.String()
}
