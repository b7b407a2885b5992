package handler

import (
	"net/http"

	"restaurant/internal/usecase"

	"github.com/labstack/echo/v4"
)

// Dev only. Not registered when seeding is disabled.
type SeedHandler struct {
	uc *usecase.SeedUsecase
}

func NewSeedHandler(uc *usecase.SeedUsecase) *SeedHandler {
	return &SeedHandler{uc: uc}
}

func (h *SeedHandler) RegisterRoutes(e *echo.Echo, g Guard) {
	e.POST("/api/seed", h.seed, g.Public()...)
}

func (h *SeedHandler) seed(c echo.Context) error {
	out, err := h.uc.Seed(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
