package middleware

import (
	"net/http"
	"strings"

	"restaurant/internal/domain/model"
	"restaurant/internal/infra/token"

	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey       = "user_id"       // int64
	CtxUserRoleKey     = "user_role"     // model.Role
	CtxTokenVersionKey = "token_version" // int

	SessionCookieName = "session"
)

type TokenParser interface {
	Parse(raw string) (token.Claims, error)
}

type errorResponse struct {
	Message string `json:"message"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Message: msg}
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
}

// session cookieかBearerヘッダのJWTを検証するミドルウェア。
func AuthJWT(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rawToken, ok := extractToken(c)
			if !ok {
				return unauthorized(c)
			}

			claims, err := parser.Parse(rawToken)
			if err != nil {
				return unauthorized(c)
			}

			//contextへ保存
			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxUserRoleKey, claims.Role)
			c.Set(CtxTokenVersionKey, claims.TokenVersion)

			return next(c)
		}
	}
}

// Authorization: Bearer wins over the cookie
func extractToken(c echo.Context) (string, bool) {
	if authz := c.Request().Header.Get("Authorization"); authz != "" {
		parts := strings.SplitN(authz, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return "", false
		}
		raw := strings.TrimSpace(parts[1])
		return raw, raw != ""
	}

	ck, err := c.Cookie(SessionCookieName)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

// UserID returns the authenticated user id, 0 when absent.
func UserID(c echo.Context) int64 {
	id, _ := c.Get(CtxUserIDKey).(int64)
	return id
}

func UserRole(c echo.Context) model.Role {
	r, _ := c.Get(CtxUserRoleKey).(model.Role)
	return r
}
