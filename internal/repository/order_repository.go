package repository

import (
	"context"
	"time"

	"restaurant/internal/domain/model"
)

type OrderListFilter struct {
	Status  *model.OrderStatus
	TableID *int64
}

type OrderRepository interface {
	// with Items.MenuItem and Table preloaded
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// created_at desc, no paging
	List(ctx context.Context, f OrderListFilter) ([]model.Order, error)
	// returns the new id
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus, updatedAt time.Time) error
	// open orders on the table, excluding one order id
	CountOpenByTable(ctx context.Context, tableID int64, excludeOrderID int64) (int64, error)
}

type OrderItemRepository interface {
	CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}

type OrderStatusChangeRepository interface {
	Create(ctx context.Context, change model.OrderStatusChange) error
	// oldest first
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderStatusChange, error)
}
