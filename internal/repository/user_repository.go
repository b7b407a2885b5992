package repository

import (
	"context"

	"restaurant/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// ErrNotFound when missing
	FindByID(ctx context.Context, userID int64) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	// token_version + 1; every issued token becomes stale
	IncrementTokenVersion(ctx context.Context, userID int64) error
}
