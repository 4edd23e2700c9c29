package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	UpsertMany(ctx context.Context, items []Team) (inserted int, updated int, err error)
}
