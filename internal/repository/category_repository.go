package repository

import (
	"context"

	"restaurant/internal/domain/model"
)

type CategoryRepository interface {
	// sort_order asc
	List(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id int64) (model.Category, error)
	FindBySlug(ctx context.Context, slug string) (model.Category, error)
	Create(ctx context.Context, c model.Category) (model.Category, error)
}
