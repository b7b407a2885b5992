package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type DailyStats struct {
	Revenue decimal.Decimal
	Count   int64
}

type PopularItem struct {
	Name  string
	Count int64
}

type StatsRepository interface {
	// orders with created_at >= since
	DailyStats(ctx context.Context, since time.Time) (DailyStats, error)
	// top N by summed quantity, grouped by the live menu item name
	PopularItems(ctx context.Context, limit int) ([]PopularItem, error)
}
