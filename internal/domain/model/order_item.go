package model

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// PriceAtOrder is copied from the menu item when the order is placed.
type OrderItem struct {
	ID           int64           `gorm:"primaryKey;autoIncrement"`
	OrderID      int64           `gorm:"not null;index"`
	MenuItemID   int64           `gorm:"not null;index"`
	MenuItem     *MenuItem       `gorm:"foreignKey:MenuItemID"`
	Quantity     int             `gorm:"not null"`
	PriceAtOrder decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Notes        string          `gorm:"type:text"`
	Options      json.RawMessage `gorm:"type:text;serializer:json"`
}
