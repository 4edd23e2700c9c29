package league

import "context"

// Repository describes league persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item League) error
	ListByOwner(ctx context.Context, ownerID string) ([]League, error)
}
