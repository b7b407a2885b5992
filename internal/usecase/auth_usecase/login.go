package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"restaurant/internal/domain/model"
	"restaurant/internal/repository"
)

var (
	// wrong username or password
	ErrInvalidCredentials = errors.New("invalid credentials")
	// empty username/password
	ErrInvalidInput = errors.New("invalid input")
	// session missing, stale or for a deleted user
	ErrUnauthenticated = errors.New("not authenticated")
)

type Clock interface {
	Now() time.Time
}

// Issues the session JWT
type AccessTokenIssuer interface {
	Issue(userID int64, role model.Role, tokenVersion int, now time.Time) (token string, expiresAt time.Time, err error)
}

// Public user shape. Never carries the password hash.
type UserOutput struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Name     string `json:"name"`
}

func ToUserOutput(u model.User) UserOutput {
	return UserOutput{
		ID:       u.ID,
		Username: u.Username,
		Role:     string(u.Role),
		Name:     u.Name,
	}
}

type LoginInput struct {
	Username string
	Password string
}

type LoginOutput struct {
	User      UserOutput `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

type LoginUsecase struct {
	userRepo repository.UserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewLoginUsecase(
	userRepo repository.UserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *LoginUsecase {
	return &LoginUsecase{
		userRepo: userRepo,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

func (u *LoginUsecase) Execute(ctx context.Context, in LoginInput) (LoginOutput, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return LoginOutput{}, ErrInvalidInput
	}

	user, err := u.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return LoginOutput{}, ErrInvalidCredentials
		}
		return LoginOutput{}, err
	}

	//パスワード照合
	if !u.verifier.Verify(in.Password, user.PasswordHash) {
		return LoginOutput{}, ErrInvalidCredentials
	}

	token, expiresAt, err := u.issuer.Issue(user.ID, user.Role, user.TokenVersion, u.clock.Now())
	if err != nil {
		return LoginOutput{}, err
	}

	return LoginOutput{
		User:      ToUserOutput(user),
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}
