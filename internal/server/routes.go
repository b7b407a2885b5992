package server

import (
	"restaurant/internal/handler"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Guard  handler.Guard
	Auth   *handler.AuthHandler
	Menu   *handler.MenuHandler
	Tables *handler.TableHandler
	Orders *handler.OrderHandler
	Stats  *handler.StatsHandler
	// nil when SEED_ENABLED=false
	Seed *handler.SeedHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers) {
	handler.RegisterHealth(e)

	h.Auth.RegisterRoutes(e, h.Guard)
	h.Menu.RegisterRoutes(e, h.Guard)
	h.Tables.RegisterRoutes(e, h.Guard)
	h.Orders.RegisterRoutes(e, h.Guard)
	h.Stats.RegisterRoutes(e, h.Guard)

	if h.Seed != nil {
		h.Seed.RegisterRoutes(e, h.Guard)
	}
}
