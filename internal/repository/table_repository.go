package repository

import (
	"context"

	"restaurant/internal/domain/model"
)

type TablePatch struct {
	Number   *int
	Capacity *int
	Status   *model.TableStatus
}

func (p TablePatch) Empty() bool {
	return p.Number == nil && p.Capacity == nil && p.Status == nil
}

type TableRepository interface {
	// number asc
	List(ctx context.Context) ([]model.Table, error)
	FindByID(ctx context.Context, id int64) (model.Table, error)
	FindByNumber(ctx context.Context, number int) (model.Table, error)
	Create(ctx context.Context, t model.Table) (model.Table, error)
	Update(ctx context.Context, id int64, patch TablePatch) (model.Table, error)
	SetStatus(ctx context.Context, id int64, status model.TableStatus) error
}
