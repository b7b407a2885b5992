package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"restaurant/internal/domain/model"
)

// Partial update. nil fields are left untouched.
type MenuItemPatch struct {
	CategoryID    *int64
	ClearCategory bool
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	ImageURL      *string
	IsAvailable   *bool
	Ingredients   *[]string
}

func (p MenuItemPatch) Empty() bool {
	return p.CategoryID == nil && !p.ClearCategory && p.Name == nil && p.Description == nil &&
		p.Price == nil && p.ImageURL == nil && p.IsAvailable == nil && p.Ingredients == nil
}

type MenuItemRepository interface {
	// with Category preloaded
	List(ctx context.Context) ([]model.MenuItem, error)
	FindByID(ctx context.Context, id int64) (model.MenuItem, error)
	Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error)
	Update(ctx context.Context, id int64, patch MenuItemPatch) (model.MenuItem, error)
	Delete(ctx context.Context, id int64) error
}
