package usecase

import (
	"context"
	"net/http"
	"strings"

	"restaurant/internal/domain/model"
	"restaurant/internal/repository"
)

type MenuUsecase struct {
	items      repository.MenuItemRepository
	categories repository.CategoryRepository
	validator  CatalogValidator
}

func NewMenuUsecase(
	items repository.MenuItemRepository,
	categories repository.CategoryRepository,
	validator CatalogValidator,
) *MenuUsecase {
	return &MenuUsecase{items: items, categories: categories, validator: validator}
}

func (u *MenuUsecase) ListItems(ctx context.Context) ([]MenuItemOutput, error) {
	items, err := u.items.List(ctx)
	if err != nil {
		return nil, err
	}
	return toMenuItemOutputs(items), nil
}

func (u *MenuUsecase) GetItem(ctx context.Context, id int64) (MenuItemOutput, error) {
	if id <= 0 {
		return MenuItemOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	m, err := u.items.FindByID(ctx, id)
	if err != nil {
		return MenuItemOutput{}, repoError(err, "menu item not found")
	}
	return toMenuItemOutput(m), nil
}

func (u *MenuUsecase) CreateItem(ctx context.Context, in MenuItemInput) (MenuItemOutput, error) {
	if err := u.validator.ValidateMenuItem(ctx, in, false); err != nil {
		return MenuItemOutput{}, err
	}

	m := model.MenuItem{
		Name:        strings.TrimSpace(*in.Name),
		Price:       in.Price.Round(2),
		IsAvailable: true,
		Ingredients: []string{},
	}
	if !in.ClearCategory {
		m.CategoryID = in.CategoryID
	}
	if in.Description != nil {
		m.Description = *in.Description
	}
	if in.ImageURL != nil {
		m.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.IsAvailable != nil {
		m.IsAvailable = *in.IsAvailable
	}
	if in.Ingredients != nil {
		m.Ingredients = *in.Ingredients
	}

	created, err := u.items.Create(ctx, m)
	if err != nil {
		return MenuItemOutput{}, repoError(err, "menu item not found")
	}
	return toMenuItemOutput(created), nil
}

// UpdateItem applies only the fields that were sent.
func (u *MenuUsecase) UpdateItem(ctx context.Context, id int64, in MenuItemInput) (MenuItemOutput, error) {
	if id <= 0 {
		return MenuItemOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := u.validator.ValidateMenuItem(ctx, in, true); err != nil {
		return MenuItemOutput{}, err
	}

	patch := repository.MenuItemPatch{
		CategoryID:    in.CategoryID,
		ClearCategory: in.ClearCategory,
		Description:   in.Description,
		IsAvailable:   in.IsAvailable,
		Ingredients:   in.Ingredients,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		patch.Name = &name
	}
	if in.Price != nil {
		p := in.Price.Round(2)
		patch.Price = &p
	}
	if in.ImageURL != nil {
		url := strings.TrimSpace(*in.ImageURL)
		patch.ImageURL = &url
	}

	updated, err := u.items.Update(ctx, id, patch)
	if err != nil {
		return MenuItemOutput{}, repoError(err, "menu item not found")
	}
	return toMenuItemOutput(updated), nil
}

// Hard delete. Order items keep their menu_item_id and price snapshot.
func (u *MenuUsecase) DeleteItem(ctx context.Context, id int64) error {
	if id <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return repoError(u.items.Delete(ctx, id), "menu item not found")
}

func (u *MenuUsecase) ListCategories(ctx context.Context) ([]model.Category, error) {
	cats, err := u.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []model.Category{}
	}
	return cats, nil
}

func (u *MenuUsecase) CreateCategory(ctx context.Context, in CategoryInput) (model.Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Slug = strings.ToLower(strings.TrimSpace(in.Slug))
	if err := u.validator.ValidateCategory(ctx, in); err != nil {
		return model.Category{}, err
	}

	c, err := u.categories.Create(ctx, model.Category{
		Name:      in.Name,
		Slug:      in.Slug,
		SortOrder: in.SortOrder,
	})
	if err != nil {
		return model.Category{}, repoError(err, "category not found")
	}
	return c, nil
}
