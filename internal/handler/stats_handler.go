package handler

import (
	"net/http"

	"restaurant/internal/domain/model"
	"restaurant/internal/usecase"

	"github.com/labstack/echo/v4"
)

type StatsHandler struct {
	uc *usecase.StatsUsecase
}

func NewStatsHandler(uc *usecase.StatsUsecase) *StatsHandler {
	return &StatsHandler{uc: uc}
}

func (h *StatsHandler) RegisterRoutes(e *echo.Echo, g Guard) {
	e.GET("/api/stats", h.get, g.Roles(model.RoleAdmin, model.RoleManager)...)
}

func (h *StatsHandler) get(c echo.Context) error {
	out, err := h.uc.Get(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
