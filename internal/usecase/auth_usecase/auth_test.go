package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant/internal/domain/model"
	"restaurant/internal/repository"
	auth "restaurant/internal/usecase/auth_usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) IncrementTokenVersion(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// =====================
// Mock: AccessTokenIssuer
// =====================

type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) Issue(userID int64, role model.Role, tokenVersion int, now time.Time) (string, time.Time, error) {
	args := m.Called(userID, role, tokenVersion, now)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func hashed(t *testing.T, plain string) string {
	t.Helper()
	h, err := auth.NewBcryptPasswordHasher(4).Hash(plain)
	require.NoError(t, err)
	return h
}

func TestLoginSuccess(t *testing.T) {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	user := model.User{ID: 5, Username: "waiter@test.com", PasswordHash: hashed(t, "demo123"), Role: model.RoleWaiter, Name: "Waiter Will", TokenVersion: 2}

	users := new(MockUserRepository)
	users.On("FindByUsername", mock.Anything, "waiter@test.com").Return(user, nil)
	issuer := new(MockIssuer)
	issuer.On("Issue", int64(5), model.RoleWaiter, 2, now).Return("tok", now.Add(time.Hour), nil)

	uc := auth.NewLoginUsecase(users, auth.NewBcryptPasswordVerifier(), issuer, fixedClock{now})
	out, err := uc.Execute(context.Background(), auth.LoginInput{Username: " waiter@test.com ", Password: "demo123"})
	require.NoError(t, err)

	assert.Equal(t, "tok", out.Token)
	assert.Equal(t, now.Add(time.Hour), out.ExpiresAt)
	assert.Equal(t, auth.UserOutput{ID: 5, Username: "waiter@test.com", Role: "waiter", Name: "Waiter Will"}, out.User)
	users.AssertExpectations(t)
	issuer.AssertExpectations(t)
}

func TestLoginFailures(t *testing.T) {
	user := model.User{ID: 5, Username: "admin", PasswordHash: hashed(t, "password"), Role: model.RoleAdmin}

	cases := []struct {
		name  string
		in    auth.LoginInput
		setup func(m *MockUserRepository)
		want  error
	}{
		{
			name:  "empty",
			in:    auth.LoginInput{Username: " ", Password: "x"},
			setup: func(m *MockUserRepository) {},
			want:  auth.ErrInvalidInput,
		},
		{
			name: "unknown user",
			in:   auth.LoginInput{Username: "ghost", Password: "x"},
			setup: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "ghost").Return(model.User{}, repository.ErrNotFound)
			},
			want: auth.ErrInvalidCredentials,
		},
		{
			name: "wrong password",
			in:   auth.LoginInput{Username: "admin", Password: "nope"},
			setup: func(m *MockUserRepository) {
				m.On("FindByUsername", mock.Anything, "admin").Return(user, nil)
			},
			want: auth.ErrInvalidCredentials,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			users := new(MockUserRepository)
			tc.setup(users)
			issuer := new(MockIssuer)

			uc := auth.NewLoginUsecase(users, auth.NewBcryptPasswordVerifier(), issuer, fixedClock{time.Now()})
			_, err := uc.Execute(context.Background(), tc.in)
			assert.ErrorIs(t, err, tc.want)
			issuer.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestLoginRepositoryError(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByUsername", mock.Anything, "admin").Return(model.User{}, errors.New("db down"))

	uc := auth.NewLoginUsecase(users, auth.NewBcryptPasswordVerifier(), new(MockIssuer), fixedClock{time.Now()})
	_, err := uc.Execute(context.Background(), auth.LoginInput{Username: "admin", Password: "password"})
	assert.EqualError(t, err, "db down")
}

func TestSessionMeAndLogout(t *testing.T) {
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, int64(3)).Return(model.User{ID: 3, Username: "kitchen@test.com", Role: model.RoleKitchen, Name: "Chef Chris"}, nil)
	users.On("FindByID", mock.Anything, int64(4)).Return(model.User{}, repository.ErrNotFound)
	users.On("IncrementTokenVersion", mock.Anything, int64(3)).Return(nil)
	users.On("IncrementTokenVersion", mock.Anything, int64(4)).Return(repository.ErrNotFound)

	uc := auth.NewSessionUsecase(users)
	ctx := context.Background()

	me, err := uc.Me(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, "kitchen", me.Role)

	_, err = uc.Me(ctx, 4)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	_, err = uc.Me(ctx, 0)
	assert.ErrorIs(t, err, auth.ErrUnauthenticated)

	assert.NoError(t, uc.Logout(ctx, 3))
	assert.ErrorIs(t, uc.Logout(ctx, 4), auth.ErrUnauthenticated)
	users.AssertExpectations(t)
}

func TestBcryptRoundTrip(t *testing.T) {
	h := auth.NewBcryptPasswordHasher(0)
	hash, err := h.Hash("demo123")
	require.NoError(t, err)
	assert.NotEqual(t, "demo123", hash)

	v := auth.NewBcryptPasswordVerifier()
	assert.True(t, v.Verify("demo123", hash))
	assert.False(t, v.Verify("demo124", hash))
}
