package repository

import (
	"context"

	repo "restaurant/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	orders        repo.OrderRepository
	orderItems    repo.OrderItemRepository
	statusChanges repo.OrderStatusChangeRepository
	menuItems     repo.MenuItemRepository
	tables        repo.TableRepository
	users         repo.UserRepository
	categories    repo.CategoryRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository                     { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository             { return r.orderItems }
func (r *txReposGorm) StatusChanges() repo.OrderStatusChangeRepository { return r.statusChanges }
func (r *txReposGorm) MenuItems() repo.MenuItemRepository               { return r.menuItems }
func (r *txReposGorm) Tables() repo.TableRepository                     { return r.tables }
func (r *txReposGorm) Users() repo.UserRepository                       { return r.users }
func (r *txReposGorm) Categories() repo.CategoryRepository              { return r.categories }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// every repo shares the tx handle
		r := &txReposGorm{
			orders:        NewOrderGormRepository(tx),
			orderItems:    NewOrderItemGormRepository(tx),
			statusChanges: NewOrderStatusChangeGormRepository(tx),
			menuItems:     NewMenuItemGormRepository(tx),
			tables:        NewTableGormRepository(tx),
			users:         NewUserGormRepository(tx),
			categories:    NewCategoryGormRepository(tx),
		}
		return fn(r)
	})
}
