package usecase

import (
	"context"

	"restaurant/internal/repository"
)

const popularItemsLimit = 5

type StatsUsecase struct {
	stats repository.StatsRepository
	clock Clock
}

func NewStatsUsecase(stats repository.StatsRepository, clock Clock) *StatsUsecase {
	return &StatsUsecase{stats: stats, clock: clock}
}

// Get returns today's revenue and order count (since local midnight) and the top items.
func (u *StatsUsecase) Get(ctx context.Context) (StatsOutput, error) {
	daily, err := u.stats.DailyStats(ctx, startOfDay(u.clock.Now()))
	if err != nil {
		return StatsOutput{}, err
	}

	popular, err := u.stats.PopularItems(ctx, popularItemsLimit)
	if err != nil {
		return StatsOutput{}, err
	}

	items := make([]PopularItemOutput, 0, len(popular))
	for _, p := range popular {
		items = append(items, PopularItemOutput{Name: p.Name, Count: p.Count})
	}

	return StatsOutput{
		DailyRevenue: daily.Revenue.Round(2).InexactFloat64(),
		DailyOrders:  daily.Count,
		PopularItems: items,
	}, nil
}
