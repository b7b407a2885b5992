package repository

import (
	"context"
	"time"

	"restaurant/internal/domain/model"
	repo "restaurant/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StatsGormRepository struct {
	db *gorm.DB
}

func NewStatsGormRepository(db *gorm.DB) *StatsGormRepository {
	return &StatsGormRepository{db: db}
}

type dailyStatsRow struct {
	Revenue decimal.Decimal
	Count   int64
}

func (r *StatsGormRepository) DailyStats(ctx context.Context, since time.Time) (repo.DailyStats, error) {
	var row dailyStatsRow
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COUNT(*) AS count").
		Where("created_at >= ?", since).
		Scan(&row).Error
	if err != nil {
		return repo.DailyStats{}, err
	}
	return repo.DailyStats{Revenue: row.Revenue, Count: row.Count}, nil
}

func (r *StatsGormRepository) PopularItems(ctx context.Context, limit int) ([]repo.PopularItem, error) {
	if limit <= 0 {
		limit = 5
	}

	var rows []repo.PopularItem
	err := r.db.WithContext(ctx).
		Table("order_items").
		Select("menu_items.name AS name, SUM(order_items.quantity) AS count").
		Joins("INNER JOIN menu_items ON menu_items.id = order_items.menu_item_id").
		Group("menu_items.name").
		Order("SUM(order_items.quantity) desc").
		Order("menu_items.name asc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return []repo.PopularItem{}, err
	}
	if rows == nil {
		rows = []repo.PopularItem{}
	}
	return rows, nil
}
