package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"restaurant/internal/middleware"
	"restaurant/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /api/orders
type OrderHandler struct {
	uc *usecase.OrderUsecase
}

// DI
func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type orderLineRequest struct {
	MenuItemID int64           `json:"menuItemId"`
	Quantity   int             `json:"quantity"`
	Notes      string          `json:"notes"`
	Options    json.RawMessage `json:"options"`
}

type placeOrderRequest struct {
	TableID   *int64             `json:"tableId"`
	GuestName string             `json:"guestName"`
	Items     []orderLineRequest `json:"items"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, g Guard) {
	// guests order and track without logging in
	e.POST("/api/orders", h.place, g.Public()...)
	e.GET("/api/orders", h.list)
	e.GET("/api/orders/:id", h.get)

	staff := g.Roles(staffRoles...)
	e.PATCH("/api/orders/:id/status", h.updateStatus, staff...)
	e.GET("/api/orders/:id/history", h.history, staff...)
}

func (h *OrderHandler) place(c echo.Context) error {
	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	lines := make([]usecase.PlaceOrderLine, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, usecase.PlaceOrderLine{
			MenuItemID: it.MenuItemID,
			Quantity:   it.Quantity,
			Notes:      it.Notes,
			Options:    it.Options,
		})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		TableID:   req.TableID,
		GuestName: req.GuestName,
		Items:     lines,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	in := usecase.ListOrdersInput{Status: c.QueryParam("status")}

	if v := c.QueryParam("tableId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Message: "invalid tableId", Field: "tableId"})
		}
		in.TableID = &id
	}

	out, err := h.uc.List(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) get(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	out, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) updateStatus(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid body")
	}

	out, err := h.uc.UpdateStatus(c.Request().Context(), middleware.UserID(c), id, req.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) history(c echo.Context) error {
	id, ok := parseID(c)
	if !ok {
		return badRequest(c, "invalid id")
	}
	out, err := h.uc.History(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

