package auth

import (
	"context"
	"errors"

	"restaurant/internal/repository"
)

type SessionUsecase struct {
	userRepo repository.UserRepository
}

func NewSessionUsecase(userRepo repository.UserRepository) *SessionUsecase {
	return &SessionUsecase{userRepo: userRepo}
}

// Me returns the user behind an authenticated request.
func (u *SessionUsecase) Me(ctx context.Context, userID int64) (UserOutput, error) {
	if userID <= 0 {
		return UserOutput{}, ErrUnauthenticated
	}
	user, err := u.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return UserOutput{}, ErrUnauthenticated
	}
	if err != nil {
		return UserOutput{}, err
	}
	return ToUserOutput(user), nil
}

// Logout bumps token_version so every token issued so far stops working.
func (u *SessionUsecase) Logout(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return ErrUnauthenticated
	}
	err := u.userRepo.IncrementTokenVersion(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrUnauthenticated
	}
	return err
}
