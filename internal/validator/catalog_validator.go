package validator

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"

	"restaurant/internal/repository"
	"restaurant/internal/usecase"

	"github.com/shopspring/decimal"
)

const (
	maxNameLen       = 255
	maxIngredients   = 50
	maxIngredientLen = 100
	maxTableNumber   = 10000
	maxCapacity      = 100
)

var (
	slugRe = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	// numeric(10,2)
	maxPrice = decimal.New(1, 8)
)

type catalogValidator struct {
	categories repository.CategoryRepository
}

// Usecaseは interface を依存注入
func NewCatalogValidator(categories repository.CategoryRepository) usecase.CatalogValidator {
	return &catalogValidator{categories: categories}
}

// メニュー入力を検証。partial=trueはPUT（送られた項目だけ）
func (v *catalogValidator) ValidateMenuItem(ctx context.Context, in usecase.MenuItemInput, partial bool) error {
	if !partial {
		if in.Name == nil {
			return usecase.NewFieldError("name", "name is required")
		}
		if in.Price == nil {
			return usecase.NewFieldError("price", "price is required")
		}
	}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" || len(name) > maxNameLen {
			return usecase.NewFieldError("name", "invalid name")
		}
	}

	if in.Price != nil {
		p := *in.Price
		if p.IsNegative() || p.GreaterThanOrEqual(maxPrice) {
			return usecase.NewFieldError("price", "price out of range")
		}
		// at most two decimal places
		if !p.Equal(p.Round(2)) {
			return usecase.NewFieldError("price", "price must have at most 2 decimals")
		}
	}

	if in.ImageURL != nil {
		if s := strings.TrimSpace(*in.ImageURL); s != "" && !isHTTPURL(s) {
			return usecase.NewFieldError("imageUrl", "invalid imageUrl")
		}
	}

	if in.Ingredients != nil {
		if len(*in.Ingredients) > maxIngredients {
			return usecase.NewFieldError("ingredients", "too many ingredients")
		}
		for _, ing := range *in.Ingredients {
			if s := strings.TrimSpace(ing); s == "" || len(s) > maxIngredientLen {
				return usecase.NewFieldError("ingredients", "invalid ingredient")
			}
		}
	}

	// カテゴリの存在確認（DBが必要）
	if in.CategoryID != nil && !in.ClearCategory {
		if *in.CategoryID <= 0 {
			return usecase.NewFieldError("categoryId", "invalid categoryId")
		}
		if _, err := v.categories.FindByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return usecase.NewFieldError("categoryId", "category not found")
			}
			return err
		}
	}

	return nil
}

func (v *catalogValidator) ValidateCategory(ctx context.Context, in usecase.CategoryInput) error {
	if in.Name == "" || len(in.Name) > maxNameLen {
		return usecase.NewFieldError("name", "invalid name")
	}
	if !slugRe.MatchString(in.Slug) || len(in.Slug) > maxNameLen {
		return usecase.NewFieldError("slug", "invalid slug")
	}
	if in.SortOrder < 0 {
		return usecase.NewFieldError("sortOrder", "invalid sortOrder")
	}
	return nil
}

func (v *catalogValidator) ValidateTable(ctx context.Context, in usecase.TableInput, partial bool) error {
	if !partial && in.Number == nil {
		return usecase.NewFieldError("number", "number is required")
	}
	if in.Number != nil && (*in.Number <= 0 || *in.Number > maxTableNumber) {
		return usecase.NewFieldError("number", "invalid number")
	}
	if in.Capacity != nil && (*in.Capacity <= 0 || *in.Capacity > maxCapacity) {
		return usecase.NewFieldError("capacity", "invalid capacity")
	}
	if in.Status != nil && !in.Status.Valid() {
		return usecase.NewFieldError("status", "invalid status")
	}
	return nil
}

func isHTTPURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
