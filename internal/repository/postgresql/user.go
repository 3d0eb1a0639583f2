package postgresql

import (
	"context"
	"errors"

	"github.com/globaltechsoftware/hrms-offboarding-go/internal/domain/user"
	"github.com/globaltechsoftware/hrms-offboarding-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

func (r *userRepositoryImpl) GetByIdentity(ctx context.Context, identity string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, identity, password_hash, role, created_at, updated_at
		FROM users
		WHERE identity = $1
	`

	var u user.User
	err := q.QueryRow(ctx, query, identity).Scan(
		&u.ID,
		&u.Identity,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, err
	}

	return u, nil
}
