package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restaurant/internal/domain/model"
	"restaurant/internal/infra/token"
	"restaurant/internal/middleware"
	"restaurant/internal/repository"

	"github.com/labstack/echo/v4"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// UserRepository モック
// =====================

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) FindByID(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepo) FindByUsername(ctx context.Context, username string) (model.User, error) {
	args := m.Called(ctx, username)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepo) IncrementTokenVersion(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

const secret = "test-secret"

func issue(t *testing.T, userID int64, role model.Role, tv int) string {
	t.Helper()
	raw, _, err := token.NewJWT(secret, time.Hour).Issue(userID, role, tv, time.Now())
	require.NoError(t, err)
	return raw
}

// route guarded the way the server guards staff routes
func newGuardedEcho(users repository.UserRepository, roles ...model.Role) *echo.Echo {
	e := echo.New()
	e.GET("/guarded", func(c echo.Context) error {
		return c.String(http.StatusOK, string(middleware.UserRole(c)))
	},
		middleware.AuthJWT(token.NewJWT(secret, time.Hour)),
		middleware.TokenVersionGuard(users),
		middleware.RequireRoles(roles...),
	)
	return e
}

func do(e *echo.Echo, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestAuthChain(t *testing.T) {
	users := new(MockUserRepo)
	users.On("FindByID", mock.Anything, int64(1)).Return(model.User{ID: 1, Role: model.RoleManager, TokenVersion: 0}, nil)
	users.On("FindByID", mock.Anything, int64(2)).Return(model.User{ID: 2, Role: model.RoleKitchen, TokenVersion: 0}, nil)
	users.On("FindByID", mock.Anything, int64(3)).Return(model.User{ID: 3, Role: model.RoleManager, TokenVersion: 1}, nil)
	users.On("FindByID", mock.Anything, int64(4)).Return(model.User{}, repository.ErrNotFound)

	e := newGuardedEcho(users, model.RoleAdmin, model.RoleManager)

	cases := []struct {
		name   string
		setup  func(r *http.Request)
		status int
	}{
		{"no token", func(r *http.Request) {}, http.StatusUnauthorized},
		{"garbage bearer", func(r *http.Request) { r.Header.Set("Authorization", "Bearer nope") }, http.StatusUnauthorized},
		{"basic auth", func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") }, http.StatusUnauthorized},
		{"manager bearer", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+issue(t, 1, model.RoleManager, 0))
		}, http.StatusOK},
		{"manager cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: issue(t, 1, model.RoleManager, 0)})
		}, http.StatusOK},
		{"kitchen forbidden", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+issue(t, 2, model.RoleKitchen, 0))
		}, http.StatusForbidden},
		{"revoked token", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+issue(t, 3, model.RoleManager, 0))
		}, http.StatusUnauthorized},
		{"deleted user", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+issue(t, 4, model.RoleAdmin, 0))
		}, http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			tc.setup(req)
			rec := do(e, req)
			assert.Equal(t, tc.status, rec.Code)
			if tc.status != http.StatusOK {
				assert.Contains(t, rec.Body.String(), `"message"`)
			}
		})
	}
}

func TestRoleFromDatabaseWins(t *testing.T) {
	// token says admin, database says waiter
	users := new(MockUserRepo)
	users.On("FindByID", mock.Anything, int64(9)).Return(model.User{ID: 9, Role: model.RoleWaiter}, nil)

	e := newGuardedEcho(users, model.RoleAdmin)
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+issue(t, 9, model.RoleAdmin, 0))

	assert.Equal(t, http.StatusForbidden, do(e, req).Code)
}

func TestRequireJSON(t *testing.T) {
	e := echo.New()
	e.Use(middleware.RequireJSON())
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e.POST("/x", ok)
	e.GET("/x", ok)

	cases := []struct {
		name        string
		method      string
		contentType string
		body        string
		status      int
	}{
		{"json", http.MethodPost, "application/json", `{}`, http.StatusNoContent},
		{"json charset", http.MethodPost, "application/json; charset=utf-8", `{}`, http.StatusNoContent},
		{"form", http.MethodPost, "application/x-www-form-urlencoded", `a=b`, http.StatusUnsupportedMediaType},
		{"text", http.MethodPost, "text/plain", `{}`, http.StatusUnsupportedMediaType},
		{"empty post", http.MethodPost, "", ``, http.StatusNoContent},
		{"get", http.MethodGet, "text/plain", ``, http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "/x", strings.NewReader(tc.body))
			if tc.contentType != "" {
				req.Header.Set(echo.HeaderContentType, tc.contentType)
			}
			assert.Equal(t, tc.status, do(e, req).Code)
		})
	}
}

func TestRequestLogger(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	e := echo.New()
	e.Use(middleware.RequestLogger(log))
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusTeapot, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(echo.HeaderXRequestID, "req-1")
	rec := do(e, req)

	assert.Equal(t, "req-1", rec.Header().Get(echo.HeaderXRequestID))
	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "req-1", entry.Data["request_id"])
	assert.Equal(t, http.StatusTeapot, entry.Data["status"])
	assert.Equal(t, "/ping", entry.Data["path"])

	// fresh id when the client sends none
	rec = do(e, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, rec.Header().Get(echo.HeaderXRequestID), 36)
}
