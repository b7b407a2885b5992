package usecase

import (
	"context"
	"encoding/json"

	"restaurant/internal/domain/model"

	"github.com/shopspring/decimal"
)

// Menu item create/update body. nil means "not sent".
type MenuItemInput struct {
	CategoryID *int64
	// categoryId sent as null
	ClearCategory bool
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	ImageURL      *string
	IsAvailable   *bool
	Ingredients   *[]string
}

type CategoryInput struct {
	Name      string
	Slug      string
	SortOrder int
}

type TableInput struct {
	Number   *int
	Capacity *int
	Status   *model.TableStatus
}

type PlaceOrderLine struct {
	MenuItemID int64
	Quantity   int
	Notes      string
	Options    json.RawMessage
}

type PlaceOrderInput struct {
	TableID   *int64
	GuestName string
	Items     []PlaceOrderLine
}

type ListOrdersInput struct {
	Status  string
	TableID *int64
}

// usecaseがValidatorInterfaceに依存する約束
type CatalogValidator interface {
	ValidateMenuItem(ctx context.Context, in MenuItemInput, partial bool) error
	ValidateCategory(ctx context.Context, in CategoryInput) error
	ValidateTable(ctx context.Context, in TableInput, partial bool) error
}
