package user

import "context"

// Repository describes account persistence needs from use cases.
type Repository interface {
	Create(ctx context.Context, item User) error
	GetByEmail(ctx context.Context, email string) (User, bool, error)
}
