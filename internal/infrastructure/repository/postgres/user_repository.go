package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"cfb-catalog/internal/domain/user"
	qb "cfb-catalog/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userTableModel struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
}

func (r *UserRepository) Create(ctx context.Context, item user.User) error {
	insertModel := userTableModel{
		ID:           item.ID,
		Email:        item.Email,
		PasswordHash: item.PasswordHash,
	}

	query, args, err := qb.InsertModel("users", insertModel, "")
	if err != nil {
		return fmt.Errorf("build insert user query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	query, args, err := qb.Select("id", "email", "password_hash").From("users").
		Where(qb.Eq("email", email)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build get user by email query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("get user by email: %w", err)
	}

	return user.User{
		ID:           row.ID,
		Email:        row.Email,
		PasswordHash: row.PasswordHash,
	}, true, nil
}
