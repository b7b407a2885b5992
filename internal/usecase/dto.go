package usecase

import (
	"encoding/json"
	"time"

	"restaurant/internal/domain/model"

	"github.com/shopspring/decimal"
)

// Money is rendered with two decimals, as a string ("8.50").
type Money decimal.Decimal

func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(decimal.Decimal(m).StringFixed(2))
}

type MenuItemOutput struct {
	ID          int64           `json:"id"`
	CategoryID  *int64          `json:"categoryId"`
	Category    *model.Category `json:"category"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       Money           `json:"price"`
	ImageURL    *string         `json:"imageUrl"`
	IsAvailable bool            `json:"isAvailable"`
	Ingredients []string        `json:"ingredients"`
}

type OrderItemOutput struct {
	ID           int64           `json:"id"`
	OrderID      int64           `json:"orderId"`
	MenuItemID   int64           `json:"menuItemId"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder Money           `json:"priceAtOrder"`
	Notes        *string         `json:"notes"`
	Options      json.RawMessage `json:"options"`
	// nil once the menu item is deleted
	MenuItem *MenuItemOutput `json:"menuItem"`
}

type OrderOutput struct {
	ID          int64             `json:"id"`
	TableID     *int64            `json:"tableId"`
	Table       *model.Table      `json:"table"`
	Status      model.OrderStatus `json:"status"`
	TotalAmount Money             `json:"totalAmount"`
	GuestName   *string           `json:"guestName"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
	Items       []OrderItemOutput `json:"items"`
}

type PopularItemOutput struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type StatsOutput struct {
	DailyRevenue float64             `json:"dailyRevenue"`
	DailyOrders  int64               `json:"dailyOrders"`
	PopularItems []PopularItemOutput `json:"popularItems"`
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toMenuItemOutput(m model.MenuItem) MenuItemOutput {
	ingredients := m.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	return MenuItemOutput{
		ID:          m.ID,
		CategoryID:  m.CategoryID,
		Category:    m.Category,
		Name:        m.Name,
		Description: m.Description,
		Price:       Money(m.Price),
		ImageURL:    optString(m.ImageURL),
		IsAvailable: m.IsAvailable,
		Ingredients: ingredients,
	}
}

func toMenuItemOutputs(items []model.MenuItem) []MenuItemOutput {
	out := make([]MenuItemOutput, 0, len(items))
	for _, m := range items {
		out = append(out, toMenuItemOutput(m))
	}
	return out
}

func toOrderOutput(o model.Order) OrderOutput {
	items := make([]OrderItemOutput, 0, len(o.Items))
	for _, it := range o.Items {
		var mi *MenuItemOutput
		if it.MenuItem != nil {
			v := toMenuItemOutput(*it.MenuItem)
			mi = &v
		}
		items = append(items, OrderItemOutput{
			ID:           it.ID,
			OrderID:      it.OrderID,
			MenuItemID:   it.MenuItemID,
			Quantity:     it.Quantity,
			PriceAtOrder: Money(it.PriceAtOrder),
			Notes:        optString(it.Notes),
			Options:      it.Options,
			MenuItem:     mi,
		})
	}
	return OrderOutput{
		ID:          o.ID,
		TableID:     o.TableID,
		Table:       o.Table,
		Status:      o.Status,
		TotalAmount: Money(o.TotalAmount),
		GuestName:   optString(o.GuestName),
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
		Items:       items,
	}
}

func toOrderOutputs(orders []model.Order) []OrderOutput {
	out := make([]OrderOutput, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderOutput(o))
	}
	return out
}
