package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"restaurant/internal/repository"
	"restaurant/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) DailyStats(ctx context.Context, since time.Time) (repository.DailyStats, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(repository.DailyStats), args.Error(1)
}

func (m *MockStatsRepository) PopularItems(ctx context.Context, limit int) ([]repository.PopularItem, error) {
	args := m.Called(ctx, limit)
	items, _ := args.Get(0).([]repository.PopularItem)
	return items, args.Error(1)
}

func TestStatsUsesLocalMidnight(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	now := time.Date(2026, 3, 2, 1, 15, 0, 0, loc)
	midnight := time.Date(2026, 3, 2, 0, 0, 0, 0, loc)

	repo := new(MockStatsRepository)
	repo.On("DailyStats", mock.Anything, midnight).
		Return(repository.DailyStats{Revenue: decimal.RequireFromString("35.50"), Count: 2}, nil)
	repo.On("PopularItems", mock.Anything, 5).
		Return([]repository.PopularItem{{Name: "Bruschetta", Count: 4}}, nil)

	out, err := usecase.NewStatsUsecase(repo, usecase.FixedClock{T: now}).Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 35.5, out.DailyRevenue)
	assert.Equal(t, int64(2), out.DailyOrders)
	assert.Equal(t, []usecase.PopularItemOutput{{Name: "Bruschetta", Count: 4}}, out.PopularItems)
	repo.AssertExpectations(t)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dailyRevenue":35.5,"dailyOrders":2,"popularItems":[{"name":"Bruschetta","count":4}]}`, string(b))
}

func TestStatsEmpty(t *testing.T) {
	repo := new(MockStatsRepository)
	repo.On("DailyStats", mock.Anything, mock.Anything).Return(repository.DailyStats{Revenue: decimal.Zero}, nil)
	repo.On("PopularItems", mock.Anything, 5).Return([]repository.PopularItem{}, nil)

	out, err := usecase.NewStatsUsecase(repo, usecase.SystemClock{}).Get(context.Background())
	require.NoError(t, err)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{"dailyRevenue":0,"dailyOrders":0,"popularItems":[]}`, string(b))
}

func TestStatsPropagatesRepositoryError(t *testing.T) {
	repo := new(MockStatsRepository)
	repo.On("DailyStats", mock.Anything, mock.Anything).Return(repository.DailyStats{}, errors.New("db down"))

	_, err := usecase.NewStatsUsecase(repo, usecase.SystemClock{}).Get(context.Background())
	assert.EqualError(t, err, "db down")
	repo.AssertNotCalled(t, "PopularItems", mock.Anything, mock.Anything)
}
