package usecase

import (
	"context"
	"errors"
	"fmt"

	"restaurant/internal/domain/model"
	repo "restaurant/internal/repository"
	auth "restaurant/internal/usecase/auth_usecase"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type seedUser struct {
	username, password, name string
	role                     model.Role
}

var seedUsers = []seedUser{
	{"manager@test.com", "demo123", "Manager Mike", model.RoleManager},
	{"waiter@test.com", "demo123", "Waiter Will", model.RoleWaiter},
	{"kitchen@test.com", "demo123", "Chef Chris", model.RoleKitchen},
	{"admin", "password", "Admin User", model.RoleAdmin},
}

var seedCategories = []model.Category{
	{Name: "Starters", Slug: "starters", SortOrder: 1},
	{Name: "Mains", Slug: "mains", SortOrder: 2},
	{Name: "Drinks", Slug: "drinks", SortOrder: 3},
}

type seedMenuItem struct {
	slug string
	item model.MenuItem
}

var seedMenu = []seedMenuItem{
	{"starters", model.MenuItem{
		Name:        "Bruschetta",
		Description: "Toasted bread with tomatoes, basil, and olive oil",
		Price:       decimal.RequireFromString("8.50"),
		ImageURL:    "https://images.unsplash.com/photo-1572449043416-55f4685c9bb7?w=500&q=80",
		Ingredients: []string{"Bread", "Tomato", "Basil", "Olive Oil"},
	}},
	{"mains", model.MenuItem{
		Name:        "Margherita Pizza",
		Description: "Classic tomato and mozzarella pizza",
		Price:       decimal.RequireFromString("14.00"),
		ImageURL:    "https://images.unsplash.com/photo-1513104890138-7c749659a591?w=500&q=80",
		Ingredients: []string{"Dough", "Tomato Sauce", "Mozzarella"},
	}},
	{"mains", model.MenuItem{
		Name:        "Cheeseburger",
		Description: "Beef patty with cheddar, lettuce, and tomato",
		Price:       decimal.RequireFromString("16.50"),
		ImageURL:    "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?w=500&q=80",
		Ingredients: []string{"Cheddar", "Bun", "Lettuce", "Tomato"},
	}},
	{"drinks", model.MenuItem{
		Name:        "Fresh Lemonade",
		Description: "Homemade sparkling lemonade",
		Price:       decimal.RequireFromString("4.50"),
		ImageURL:    "https://images.unsplash.com/photo-1513558161293-cdaf765ed2fd?w=500&q=80",
		Ingredients: []string{"Lemon", "Sugar", "Water", "Mint"},
	}},
}

const seedTableCount = 10

// Rows created by one seed run. All zero when the data was already there.
type SeedOutput struct {
	Message    string `json:"message"`
	Users      int    `json:"users"`
	Tables     int    `json:"tables"`
	Categories int    `json:"categories"`
	MenuItems  int    `json:"menuItems"`
}

// Loads the demo dataset. Safe to run more than once.
type SeedUsecase struct {
	tx     repo.TransactionManager
	hasher auth.PasswordHasher
	log    logrus.FieldLogger
}

func NewSeedUsecase(tx repo.TransactionManager, hasher auth.PasswordHasher, log logrus.FieldLogger) *SeedUsecase {
	return &SeedUsecase{tx: tx, hasher: hasher, log: log}
}

func (u *SeedUsecase) Seed(ctx context.Context) (SeedOutput, error) {
	out := SeedOutput{Message: "Database seeded"}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		for _, su := range seedUsers {
			_, err := r.Users().FindByUsername(ctx, su.username)
			if err == nil {
				continue
			}
			if !errors.Is(err, repo.ErrNotFound) {
				return err
			}
			hash, err := u.hasher.Hash(su.password)
			if err != nil {
				return fmt.Errorf("hash password: %w", err)
			}
			if err := r.Users().Create(ctx, &model.User{
				Username:     su.username,
				PasswordHash: hash,
				Role:         su.role,
				Name:         su.name,
			}); err != nil {
				return fmt.Errorf("seed user %s: %w", su.username, err)
			}
			out.Users++
		}

		for n := 1; n <= seedTableCount; n++ {
			_, err := r.Tables().FindByNumber(ctx, n)
			if err == nil {
				continue
			}
			if !errors.Is(err, repo.ErrNotFound) {
				return err
			}
			capacity := 2
			if n%2 == 0 {
				capacity = 4
			}
			if _, err := r.Tables().Create(ctx, model.Table{
				Number:   n,
				Capacity: capacity,
				Status:   model.TableStatusAvailable,
			}); err != nil {
				return fmt.Errorf("seed table %d: %w", n, err)
			}
			out.Tables++
		}

		catIDs := make(map[string]int64, len(seedCategories))
		for _, sc := range seedCategories {
			c, err := r.Categories().FindBySlug(ctx, sc.Slug)
			if errors.Is(err, repo.ErrNotFound) {
				c, err = r.Categories().Create(ctx, sc)
				if err == nil {
					out.Categories++
				}
			}
			if err != nil {
				return fmt.Errorf("seed category %s: %w", sc.Slug, err)
			}
			catIDs[sc.Slug] = c.ID
		}

		existing, err := r.MenuItems().List(ctx)
		if err != nil {
			return err
		}
		names := make(map[string]bool, len(existing))
		for _, m := range existing {
			names[m.Name] = true
		}
		for _, sm := range seedMenu {
			if names[sm.item.Name] {
				continue
			}
			item := sm.item
			catID := catIDs[sm.slug]
			item.CategoryID = &catID
			item.IsAvailable = true
			if _, err := r.MenuItems().Create(ctx, item); err != nil {
				return fmt.Errorf("seed menu item %s: %w", item.Name, err)
			}
			out.MenuItems++
		}
		return nil
	})
	if err != nil {
		return SeedOutput{}, err
	}

	u.log.WithFields(logrus.Fields{
		"users":      out.Users,
		"tables":     out.Tables,
		"categories": out.Categories,
		"menu_items": out.MenuItems,
	}).Info("seed finished")
	return out, nil
}
