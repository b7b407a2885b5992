package repository

import (
	"context"

	"restaurant/internal/domain/model"

	"gorm.io/gorm"
)

type OrderStatusChangeGormRepository struct {
	db *gorm.DB
}

func NewOrderStatusChangeGormRepository(db *gorm.DB) *OrderStatusChangeGormRepository {
	return &OrderStatusChangeGormRepository{db: db}
}

func (r *OrderStatusChangeGormRepository) Create(ctx context.Context, change model.OrderStatusChange) error {
	return translate(r.db.WithContext(ctx).Create(&change).Error)
}

func (r *OrderStatusChangeGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderStatusChange, error) {
	var changes []model.OrderStatusChange
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&changes).Error
	if err != nil {
		return []model.OrderStatusChange{}, err
	}
	return changes, nil
}
