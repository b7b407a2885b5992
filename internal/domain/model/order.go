package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusServed    OrderStatus = "served"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady,
		OrderStatusServed, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// Open statuses keep a table occupied.
var OpenOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusServed,
}

// Closing reports whether reaching s ends the table session.
func (s OrderStatus) Closing() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

// TotalAmount is a snapshot taken at creation and never recomputed.
type Order struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	TableID     *int64          `gorm:"index"`
	Table       *Table          `gorm:"foreignKey:TableID"`
	Status      OrderStatus     `gorm:"type:varchar(20);not null;default:'pending';index"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	GuestName   string          `gorm:"type:varchar(255)"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID"`
	CreatedAt   time.Time       `gorm:"not null;index"`
	UpdatedAt   time.Time       `gorm:"not null"`
}
