package usecase

import (
	"context"

	"restaurant/internal/domain/model"
)

type OrderEventPublisher interface {
	Publish(ctx context.Context, ev model.OrderEvent) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, model.OrderEvent) error { return nil }
