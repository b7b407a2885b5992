package handler

import (
	"net/http"

	"restaurant/internal/domain/model"
	"restaurant/internal/usecase"

	"github.com/labstack/echo/v4"
)

type TableHandler struct {
	uc *usecase.TableUsecase
}

func NewTableHandler(uc *usecase.TableUsecase) *TableHandler {
	return &TableHandler{uc: uc}
}

type tableRequest struct {
	Number   *int               `json:"number"`
	Capacity *int               `json:"capacity"`
	Status   *model.TableStatus `json:"status"`
}

func (r tableRequest) input() usecase.TableInput {
	return usecase.TableInput{Number: r.Number, Capacity: r.Capacity, Status: r.Status}
}

func (h *TableHandler) RegisterRoutes(e *echo.Echo, g Guard) {
	e.GET("/api/tables", h.list)
	e.POST("/api/tables", h.create, g.Roles(model.RoleAdmin)...)
	// kitchenはテーブルを触らない
	e.PUT("/api/tables/:id", h.update, g.Roles(model.RoleAdmin, model.RoleManager, model.RoleWaiter)...)
}

func (h *TableHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *TableHandler) create(c echo.Context) error {
	var req tableRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	out, err := h.uc.Create(c.Request().Context(), req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *TableHandler) update(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req tableRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	out, err := h.uc.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
