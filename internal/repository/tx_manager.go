package repository

import "context"

// Repositories bound to one transaction.
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	StatusChanges() OrderStatusChangeRepository
	MenuItems() MenuItemRepository
	Tables() TableRepository
	Users() UserRepository
	Categories() CategoryRepository
}

// Hides begin/commit/rollback from the usecases. fn returning an error rolls back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
