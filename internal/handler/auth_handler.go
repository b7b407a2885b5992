package handler

import (
	"errors"
	"net/http"
	"time"

	"restaurant/internal/middleware"
	auth "restaurant/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	loginUC      *auth.LoginUsecase   // ログインusecase
	sessionUC    *auth.SessionUsecase // me / logout
	cookieSecure bool
}

// DIコンストラクタ
func NewAuthHandler(loginUC *auth.LoginUsecase, sessionUC *auth.SessionUsecase, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		loginUC:      loginUC,
		sessionUC:    sessionUC,
		cookieSecure: cookieSecure,
	}
}

// /api/login のリクエストボディ。
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo, g Guard) {
	e.POST("/api/login", h.login, g.Public()...)
	e.POST("/api/logout", h.logout, g.Authenticated()...)
	e.GET("/api/user", h.me, g.Authenticated()...)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidInput):
			return badRequest(c, "username and password are required")
		case errors.Is(err, auth.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "invalid username or password"})
		default:
			return writeError(c, err)
		}
	}

	h.setSessionCookie(c, out.Token, out.ExpiresAt)
	return c.JSON(http.StatusOK, out)
}

func (h *AuthHandler) logout(c echo.Context) error {
	err := h.sessionUC.Logout(c.Request().Context(), middleware.UserID(c))
	if errors.Is(err, auth.ErrUnauthenticated) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}
	if err != nil {
		return writeError(c, err)
	}

	h.clearSessionCookie(c)
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) me(c echo.Context) error {
	out, err := h.sessionUC.Me(c.Request().Context(), middleware.UserID(c))
	if errors.Is(err, auth.ErrUnauthenticated) {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "unauthorized"})
	}
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// session cookie をセット。
func (h *AuthHandler) setSessionCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *AuthHandler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
