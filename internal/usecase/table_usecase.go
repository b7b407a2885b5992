package usecase

import (
	"context"
	"net/http"

	"restaurant/internal/domain/model"
	"restaurant/internal/repository"
)

type TableUsecase struct {
	tables    repository.TableRepository
	validator CatalogValidator
}

func NewTableUsecase(tables repository.TableRepository, validator CatalogValidator) *TableUsecase {
	return &TableUsecase{tables: tables, validator: validator}
}

func (u *TableUsecase) List(ctx context.Context) ([]model.Table, error) {
	tables, err := u.tables.List(ctx)
	if err != nil {
		return nil, err
	}
	if tables == nil {
		tables = []model.Table{}
	}
	return tables, nil
}

func (u *TableUsecase) Create(ctx context.Context, in TableInput) (model.Table, error) {
	if err := u.validator.ValidateTable(ctx, in, false); err != nil {
		return model.Table{}, err
	}

	t := model.Table{
		Number:   *in.Number,
		Capacity: 4,
		Status:   model.TableStatusAvailable,
	}
	if in.Capacity != nil {
		t.Capacity = *in.Capacity
	}
	if in.Status != nil {
		t.Status = *in.Status
	}

	created, err := u.tables.Create(ctx, t)
	if err != nil {
		return model.Table{}, repoError(err, "table not found")
	}
	return created, nil
}

// Update is used by waiters to mark tables, and by admins to renumber them.
func (u *TableUsecase) Update(ctx context.Context, id int64, in TableInput) (model.Table, error) {
	if id <= 0 {
		return model.Table{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.validator.ValidateTable(ctx, in, true); err != nil {
		return model.Table{}, err
	}

	t, err := u.tables.Update(ctx, id, repository.TablePatch{
		Number:   in.Number,
		Capacity: in.Capacity,
		Status:   in.Status,
	})
	if err != nil {
		return model.Table{}, repoError(err, "table not found")
	}
	return t, nil
}
