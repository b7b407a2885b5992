package model

import "time"

// One row per status write, including the initial pending.
type OrderStatusChange struct {
	ID         int64       `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    int64       `gorm:"not null;index" json:"orderId"`
	FromStatus OrderStatus `gorm:"type:varchar(20);not null" json:"fromStatus"`
	ToStatus   OrderStatus `gorm:"type:varchar(20);not null" json:"toStatus"`
	// nil for guest-placed orders
	ChangedBy *int64    `gorm:"index" json:"changedBy"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}
