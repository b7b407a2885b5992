package handler

import (
	"restaurant/internal/domain/model"
	"restaurant/internal/middleware"
	"restaurant/internal/repository"

	"github.com/labstack/echo/v4"
)

var staffRoles = model.Roles

// Guard builds the per-route chain: JWT, token version, role, then the JSON body check.
// Auth runs first so an anonymous caller always gets 401.
type Guard struct {
	Tokens middleware.TokenParser
	Users  repository.UserRepository
}

// Public is for guest routes that take a body.
func (g Guard) Public() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{middleware.RequireJSON()}
}

// Authenticated accepts any logged-in staff user.
func (g Guard) Authenticated() []echo.MiddlewareFunc {
	return append(g.session(), middleware.RequireJSON())
}

func (g Guard) Roles(roles ...model.Role) []echo.MiddlewareFunc {
	return append(g.session(), middleware.RequireRoles(roles...), middleware.RequireJSON())
}

func (g Guard) session() []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		middleware.AuthJWT(g.Tokens),
		middleware.TokenVersionGuard(g.Users),
	}
}
