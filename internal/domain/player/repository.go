package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	UpsertMany(ctx context.Context, items []Player) (inserted int, updated int, err error)
	Search(ctx context.Context, filter SearchFilter) ([]Card, error)
}
