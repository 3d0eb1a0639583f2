package user

import "context"

// UserRepository - interface for users table
type UserRepository interface {
	GetByIdentity(ctx context.Context, identity string) (User, error)
}
