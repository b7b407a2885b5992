package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"restaurant/internal/domain/model"
	repo "restaurant/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	maxGuestNameLen = 255
	maxQuantity     = 1000
)

// numeric(10,2)
var maxOrderTotal = decimal.New(1, 8)

type OrderUsecase struct {
	tx     repo.TransactionManager
	orders repo.OrderRepository
	events OrderEventPublisher
	clock  Clock
	log    logrus.FieldLogger
}

func NewOrderUsecase(
	tx repo.TransactionManager,
	orders repo.OrderRepository,
	events OrderEventPublisher,
	clock Clock,
	log logrus.FieldLogger,
) *OrderUsecase {
	if events == nil {
		events = NopPublisher{}
	}
	return &OrderUsecase{tx: tx, orders: orders, events: events, clock: clock, log: log}
}

func validateLines(lines []PlaceOrderLine) error {
	if len(lines) == 0 {
		return NewFieldError("items", "order must contain at least one item")
	}
	for i, l := range lines {
		if l.MenuItemID <= 0 {
			return NewFieldError(fmt.Sprintf("items[%d].menuItemId", i), "invalid menuItemId")
		}
		if l.Quantity <= 0 {
			return NewFieldError(fmt.Sprintf("items[%d].quantity", i), "quantity must be positive")
		}
		if l.Quantity > maxQuantity {
			return NewFieldError(fmt.Sprintf("items[%d].quantity", i),
				fmt.Sprintf("quantity must be at most %d", maxQuantity))
		}
	}
	return nil
}

// PlaceOrder writes the order, its items, the table status and the first
// history row in one transaction.
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderOutput, error) {
	if err := validateLines(in.Items); err != nil {
		return OrderOutput{}, err
	}
	guest := strings.TrimSpace(in.GuestName)
	if len(guest) > maxGuestNameLen {
		return OrderOutput{}, NewFieldError("guestName", "guestName too long")
	}
	if in.TableID != nil && *in.TableID <= 0 {
		return OrderOutput{}, NewFieldError("tableId", "invalid tableId")
	}

	var created model.Order

	//注文処理はトランザクション
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if in.TableID != nil {
			if _, err := r.Tables().FindByID(ctx, *in.TableID); err != nil {
				return repoError(err, "table not found")
			}
		}

		// one read per menu item: it feeds both the snapshot and the total
		menu := make(map[int64]model.MenuItem, len(in.Items))
		items := make([]model.OrderItem, 0, len(in.Items))
		total := decimal.Zero

		for i, line := range in.Items {
			m, ok := menu[line.MenuItemID]
			if !ok {
				var err error
				m, err = r.MenuItems().FindByID(ctx, line.MenuItemID)
				if err != nil {
					if errors.Is(err, repo.ErrNotFound) {
						return NewFieldError(fmt.Sprintf("items[%d].menuItemId", i),
							fmt.Sprintf("menu item %d not found", line.MenuItemID))
					}
					return err
				}
				menu[line.MenuItemID] = m
			}
			if !m.IsAvailable {
				return NewFieldError(fmt.Sprintf("items[%d].menuItemId", i),
					fmt.Sprintf("menu item %q is not available", m.Name))
			}

			//スナップショット
			options := line.Options
			if len(options) == 0 {
				options = nil
			}
			items = append(items, model.OrderItem{
				MenuItemID:   m.ID,
				Quantity:     line.Quantity,
				PriceAtOrder: m.Price,
				Notes:        strings.TrimSpace(line.Notes),
				Options:      options,
			})
			total = total.Add(m.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			if total.GreaterThanOrEqual(maxOrderTotal) {
				return NewFieldError("items", "order total too large")
			}
		}

		now := u.clock.Now()
		orderID, err := r.Orders().Create(ctx, model.Order{
			TableID:     in.TableID,
			Status:      model.OrderStatusPending,
			TotalAmount: total,
			GuestName:   guest,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return fmt.Errorf("create order items: %w", err)
		}

		if in.TableID != nil {
			if err := r.Tables().SetStatus(ctx, *in.TableID, model.TableStatusOccupied); err != nil {
				return fmt.Errorf("occupy table: %w", err)
			}
		}

		if err := r.StatusChanges().Create(ctx, model.OrderStatusChange{
			OrderID:   orderID,
			ToStatus:  model.OrderStatusPending,
			CreatedAt: now,
		}); err != nil {
			return fmt.Errorf("record status: %w", err)
		}

		created, err = r.Orders().FindByID(ctx, orderID)
		return err
	})
	if err != nil {
		return OrderOutput{}, err
	}

	u.log.WithFields(logrus.Fields{
		"order_id": created.ID,
		"table_id": created.TableID,
		"total":    created.TotalAmount.StringFixed(2),
		"items":    len(created.Items),
	}).Info("order created")

	u.publish(ctx, model.OrderEvent{
		Type:        model.OrderEventCreated,
		OrderID:     created.ID,
		TableID:     created.TableID,
		Status:      created.Status,
		TotalAmount: created.TotalAmount,
		At:          created.CreatedAt,
	})

	return toOrderOutput(created), nil
}

// UpdateStatus accepts any status from any status. changedBy is the staff user id.
func (u *OrderUsecase) UpdateStatus(ctx context.Context, changedBy int64, orderID int64, status string) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	next := model.OrderStatus(strings.TrimSpace(status))
	if !next.Valid() {
		return OrderOutput{}, NewFieldError("status", "invalid status")
	}

	var (
		updated  model.Order
		prev     model.OrderStatus
		freed    bool
		occupied bool
	)

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err != nil {
			return repoError(err, "order not found")
		}
		prev = o.Status

		now := u.clock.Now()
		if err := r.Orders().UpdateStatus(ctx, orderID, next, now); err != nil {
			return repoError(err, "order not found")
		}

		var actor *int64
		if changedBy > 0 {
			actor = &changedBy
		}
		if err := r.StatusChanges().Create(ctx, model.OrderStatusChange{
			OrderID:    orderID,
			FromStatus: prev,
			ToStatus:   next,
			ChangedBy:  actor,
			CreatedAt:  now,
		}); err != nil {
			return fmt.Errorf("record status: %w", err)
		}

		// closing the last open order on an occupied table frees it
		if next.Closing() && o.Table != nil && o.Table.Status == model.TableStatusOccupied {
			open, err := r.Orders().CountOpenByTable(ctx, o.Table.ID, orderID)
			if err != nil {
				return err
			}
			if open == 0 {
				if err := r.Tables().SetStatus(ctx, o.Table.ID, model.TableStatusAvailable); err != nil {
					return fmt.Errorf("free table: %w", err)
				}
				freed = true
			}
		}

		// reopening a closed order takes its free table again
		if prev.Closing() && !next.Closing() && o.Table != nil && o.Table.Status == model.TableStatusAvailable {
			if err := r.Tables().SetStatus(ctx, o.Table.ID, model.TableStatusOccupied); err != nil {
				return fmt.Errorf("occupy table: %w", err)
			}
			occupied = true
		}

		updated, err = r.Orders().FindByID(ctx, orderID)
		return err
	})
	if err != nil {
		return OrderOutput{}, err
	}

	u.log.WithFields(logrus.Fields{
		"order_id":       orderID,
		"from":           prev,
		"to":             next,
		"changed_by":     changedBy,
		"table_freed":    freed,
		"table_occupied": occupied,
	}).Info("order status changed")

	u.publish(ctx, model.OrderEvent{
		Type:        model.OrderEventStatusChanged,
		OrderID:     updated.ID,
		TableID:     updated.TableID,
		Status:      updated.Status,
		FromStatus:  prev,
		TotalAmount: updated.TotalAmount,
		At:          updated.UpdatedAt,
	})

	return toOrderOutput(updated), nil
}

func (u *OrderUsecase) List(ctx context.Context, in ListOrdersInput) ([]OrderOutput, error) {
	var f repo.OrderListFilter
	if s := strings.TrimSpace(in.Status); s != "" {
		st := model.OrderStatus(s)
		if !st.Valid() {
			return nil, NewFieldError("status", "invalid status")
		}
		f.Status = &st
	}
	if in.TableID != nil {
		if *in.TableID <= 0 {
			return nil, NewFieldError("tableId", "invalid tableId")
		}
		f.TableID = in.TableID
	}

	orders, err := u.orders.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return toOrderOutputs(orders), nil
}

func (u *OrderUsecase) Get(ctx context.Context, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	o, err := u.orders.FindByID(ctx, orderID)
	if err != nil {
		return OrderOutput{}, repoError(err, "order not found")
	}
	return toOrderOutput(o), nil
}

// History lists status changes oldest first.
func (u *OrderUsecase) History(ctx context.Context, orderID int64) ([]model.OrderStatusChange, error) {
	if orderID <= 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out []model.OrderStatusChange
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			return repoError(err, "order not found")
		}
		changes, err := r.StatusChanges().ListByOrderID(ctx, orderID)
		if err != nil {
			return err
		}
		out = changes
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []model.OrderStatusChange{}
	}
	return out, nil
}

// events go out after commit; a failed publish never fails the request
func (u *OrderUsecase) publish(ctx context.Context, ev model.OrderEvent) {
	if err := u.events.Publish(ctx, ev); err != nil {
		u.log.WithError(err).WithFields(logrus.Fields{
			"event":    ev.Type,
			"order_id": ev.OrderID,
		}).Warn("publish order event failed")
	}
}
