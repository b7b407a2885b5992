package repository

import (
	"context"

	"restaurant/internal/domain/model"
	repo "restaurant/internal/repository"

	"gorm.io/gorm"
)

type MenuItemGormRepository struct {
	db *gorm.DB
}

func NewMenuItemGormRepository(db *gorm.DB) *MenuItemGormRepository {
	return &MenuItemGormRepository{db: db}
}

func (r *MenuItemGormRepository) List(ctx context.Context) ([]model.MenuItem, error) {
	var items []model.MenuItem
	err := r.db.WithContext(ctx).
		Preload("Category").
		Order("id asc").
		Find(&items).Error
	if err != nil {
		return []model.MenuItem{}, err
	}
	return items, nil
}

func (r *MenuItemGormRepository) FindByID(ctx context.Context, id int64) (model.MenuItem, error) {
	var m model.MenuItem
	if err := r.db.WithContext(ctx).Preload("Category").First(&m, id).Error; err != nil {
		return model.MenuItem{}, translate(err)
	}
	return m, nil
}

func (r *MenuItemGormRepository) Create(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	// Omit the association so a preloaded Category is never upserted
	available := item.IsAvailable
	if err := r.db.WithContext(ctx).Omit("Category").Create(&item).Error; err != nil {
		return model.MenuItem{}, translate(err)
	}
	// false is the zero value, so the column default (true) won on insert
	if !available {
		err := r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("id = ?", item.ID).
			UpdateColumn("is_available", false).Error
		if err != nil {
			return model.MenuItem{}, translate(err)
		}
	}
	return r.FindByID(ctx, item.ID)
}

func (r *MenuItemGormRepository) Update(ctx context.Context, id int64, p repo.MenuItemPatch) (model.MenuItem, error) {
	if p.Empty() {
		return r.FindByID(ctx, id)
	}

	updates := map[string]interface{}{}
	if p.ClearCategory {
		updates["category_id"] = nil
	} else if p.CategoryID != nil {
		updates["category_id"] = *p.CategoryID
	}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.ImageURL != nil {
		updates["image_url"] = *p.ImageURL
	}
	if p.IsAvailable != nil {
		updates["is_available"] = *p.IsAvailable
	}

	return r.updateColumns(ctx, id, updates, p.Ingredients)
}

func (r *MenuItemGormRepository) updateColumns(ctx context.Context, id int64, updates map[string]interface{}, ingredients *[]string) (model.MenuItem, error) {
	// existence first: RowsAffected is 0 for a no-op update on some drivers
	if _, err := r.FindByID(ctx, id); err != nil {
		return model.MenuItem{}, err
	}

	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).Model(&model.MenuItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return model.MenuItem{}, translate(err)
		}
	}

	// serializer fields go through the model so the json serializer runs
	if ingredients != nil {
		err := r.db.WithContext(ctx).Model(&model.MenuItem{ID: id}).
			Select("Ingredients").
			Updates(&model.MenuItem{Ingredients: *ingredients}).Error
		if err != nil {
			return model.MenuItem{}, translate(err)
		}
	}

	return r.FindByID(ctx, id)
}

func (r *MenuItemGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.MenuItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
