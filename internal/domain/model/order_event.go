package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	OrderEventCreated       = "order.created"
	OrderEventStatusChanged = "order.status_changed"
)

// Published after an order write commits.
type OrderEvent struct {
	Type        string          `json:"type"`
	OrderID     int64           `json:"orderId"`
	TableID     *int64          `json:"tableId"`
	Status      OrderStatus     `json:"status"`
	FromStatus  OrderStatus     `json:"fromStatus,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	At          time.Time       `json:"at"`
}
