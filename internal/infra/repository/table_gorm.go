package repository

import (
	"context"

	"restaurant/internal/domain/model"
	repo "restaurant/internal/repository"

	"gorm.io/gorm"
)

type TableGormRepository struct {
	db *gorm.DB
}

func NewTableGormRepository(db *gorm.DB) *TableGormRepository {
	return &TableGormRepository{db: db}
}

func (r *TableGormRepository) List(ctx context.Context) ([]model.Table, error) {
	var ts []model.Table
	if err := r.db.WithContext(ctx).Order("number asc").Find(&ts).Error; err != nil {
		return []model.Table{}, err
	}
	return ts, nil
}

func (r *TableGormRepository) FindByID(ctx context.Context, id int64) (model.Table, error) {
	var t model.Table
	if err := r.db.WithContext(ctx).First(&t, id).Error; err != nil {
		return model.Table{}, translate(err)
	}
	return t, nil
}

func (r *TableGormRepository) FindByNumber(ctx context.Context, number int) (model.Table, error) {
	var t model.Table
	if err := r.db.WithContext(ctx).Where("number = ?", number).First(&t).Error; err != nil {
		return model.Table{}, translate(err)
	}
	return t, nil
}

func (r *TableGormRepository) Create(ctx context.Context, t model.Table) (model.Table, error) {
	if err := r.db.WithContext(ctx).Create(&t).Error; err != nil {
		return model.Table{}, translate(err)
	}
	return t, nil
}

func (r *TableGormRepository) Update(ctx context.Context, id int64, p repo.TablePatch) (model.Table, error) {
	if _, err := r.FindByID(ctx, id); err != nil {
		return model.Table{}, err
	}

	updates := map[string]interface{}{}
	if p.Number != nil {
		updates["number"] = *p.Number
	}
	if p.Capacity != nil {
		updates["capacity"] = *p.Capacity
	}
	if p.Status != nil {
		updates["status"] = *p.Status
	}
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&model.Table{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return model.Table{}, translate(err)
		}
	}
	return r.FindByID(ctx, id)
}

func (r *TableGormRepository) SetStatus(ctx context.Context, id int64, status model.TableStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Table{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
