package usecase_test

import (
	"context"
	"errors"
	"math"
	"net/http"
	"testing"
	"time"

	"restaurant/internal/domain/model"
	"restaurant/internal/infra/db/dbtest"
	infraRepo "restaurant/internal/infra/repository"
	"restaurant/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	events []model.OrderEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev model.OrderEvent) error {
	p.events = append(p.events, ev)
	return p.err
}

type orderFixture struct {
	db     *gorm.DB
	uc     *usecase.OrderUsecase
	events *recordingPublisher
	hook   *logtest.Hook
	now    time.Time

	bruschetta model.MenuItem
	pizza      model.MenuItem
	table3     model.Table
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()
	ctx := context.Background()
	gdb := dbtest.New(t)

	menu := infraRepo.NewMenuItemGormRepository(gdb)
	bruschetta, err := menu.Create(ctx, model.MenuItem{Name: "Bruschetta", Price: decimal.RequireFromString("8.50"), IsAvailable: true})
	require.NoError(t, err)
	pizza, err := menu.Create(ctx, model.MenuItem{Name: "Margherita Pizza", Price: decimal.RequireFromString("14.00"), IsAvailable: true})
	require.NoError(t, err)

	table3, err := infraRepo.NewTableGormRepository(gdb).Create(ctx, model.Table{Number: 3, Capacity: 2, Status: model.TableStatusAvailable})
	require.NoError(t, err)

	log, hook := logtest.NewNullLogger()
	events := &recordingPublisher{}
	now := time.Date(2026, 3, 2, 19, 30, 0, 0, time.UTC)

	uc := usecase.NewOrderUsecase(
		infraRepo.NewTxManagerGorm(gdb),
		infraRepo.NewOrderGormRepository(gdb),
		events,
		usecase.FixedClock{T: now},
		log,
	)

	return &orderFixture{
		db: gdb, uc: uc, events: events, hook: hook, now: now,
		bruschetta: bruschetta, pizza: pizza, table3: table3,
	}
}

func (f *orderFixture) tableStatus(t *testing.T) model.TableStatus {
	t.Helper()
	tb, err := infraRepo.NewTableGormRepository(f.db).FindByID(context.Background(), f.table3.ID)
	require.NoError(t, err)
	return tb.Status
}

func (f *orderFixture) countOrders(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(&model.Order{}).Count(&n).Error)
	return n
}

func requireHTTPError(t *testing.T, err error, status int) *usecase.HTTPError {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok, "expected HTTPError, got %v", err)
	assert.Equal(t, status, he.Status)
	return he
}

func TestPlaceOrderTotalsAndSnapshots(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	out, err := f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		TableID:   &f.table3.ID,
		GuestName: "  Ada ",
		Items: []usecase.PlaceOrderLine{
			{MenuItemID: f.bruschetta.ID, Quantity: 2, Notes: "no basil"},
			{MenuItemID: f.pizza.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, model.OrderStatusPending, out.Status)
	assert.True(t, decimal.Decimal(out.TotalAmount).Equal(decimal.RequireFromString("31.00")))
	assert.True(t, f.now.Equal(out.CreatedAt))
	require.NotNil(t, out.GuestName)
	assert.Equal(t, "Ada", *out.GuestName)
	require.NotNil(t, out.Table)
	assert.Equal(t, model.TableStatusOccupied, out.Table.Status)

	require.Len(t, out.Items, 2)
	assert.True(t, decimal.Decimal(out.Items[0].PriceAtOrder).Equal(f.bruschetta.Price))
	assert.Equal(t, 2, out.Items[0].Quantity)
	require.NotNil(t, out.Items[0].Notes)
	assert.Equal(t, "no basil", *out.Items[0].Notes)
	assert.True(t, decimal.Decimal(out.Items[1].PriceAtOrder).Equal(f.pizza.Price))
	require.NotNil(t, out.Items[1].MenuItem)
	assert.Equal(t, "Margherita Pizza", out.Items[1].MenuItem.Name)

	assert.Equal(t, model.TableStatusOccupied, f.tableStatus(t))

	// price change later leaves the snapshot and total alone
	newPrice := decimal.RequireFromString("9.99")
	require.NoError(t, f.db.Model(&model.MenuItem{}).Where("id = ?", f.bruschetta.ID).Update("price", newPrice).Error)

	again, err := f.uc.Get(ctx, out.ID)
	require.NoError(t, err)
	assert.True(t, decimal.Decimal(again.TotalAmount).Equal(decimal.RequireFromString("31")))
	assert.True(t, decimal.Decimal(again.Items[0].PriceAtOrder).Equal(decimal.RequireFromString("8.50")))

	require.Len(t, f.events.events, 1)
	assert.Equal(t, model.OrderEventCreated, f.events.events[0].Type)
	assert.Equal(t, out.ID, f.events.events[0].OrderID)

	history, err := f.uc.History(ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, model.OrderStatus(""), history[0].FromStatus)
	assert.Equal(t, model.OrderStatusPending, history[0].ToStatus)
}

func TestPlaceOrderWithoutTable(t *testing.T) {
	f := newOrderFixture(t)

	out, err := f.uc.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		Items: []usecase.PlaceOrderLine{{MenuItemID: f.pizza.ID, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.Nil(t, out.TableID)
	assert.Nil(t, out.Table)
	assert.Nil(t, out.GuestName)
	assert.True(t, decimal.Decimal(out.TotalAmount).Equal(decimal.RequireFromString("42")))
	assert.Equal(t, model.TableStatusAvailable, f.tableStatus(t))
}

func TestPlaceOrderRejects(t *testing.T) {
	missingTable := int64(999)

	cases := []struct {
		name   string
		in     func(f *orderFixture) usecase.PlaceOrderInput
		status int
		field  string
	}{
		{
			name:   "no items",
			in:     func(f *orderFixture) usecase.PlaceOrderInput { return usecase.PlaceOrderInput{} },
			status: http.StatusBadRequest,
			field:  "items",
		},
		{
			name: "zero quantity",
			in: func(f *orderFixture) usecase.PlaceOrderInput {
				return usecase.PlaceOrderInput{Items: []usecase.PlaceOrderLine{{MenuItemID: f.pizza.ID, Quantity: 0}}}
			},
			status: http.StatusBadRequest,
			field:  "items[0].quantity",
		},
		{
			name: "quantity too large",
			in: func(f *orderFixture) usecase.PlaceOrderInput {
				return usecase.PlaceOrderInput{Items: []usecase.PlaceOrderLine{{MenuItemID: f.pizza.ID, Quantity: math.MaxInt}}}
			},
			status: http.StatusBadRequest,
			field:  "items[0].quantity",
		},
		{
			name: "total too large",
			in: func(f *orderFixture) usecase.PlaceOrderInput {
				caviar, err := infraRepo.NewMenuItemGormRepository(f.db).Create(context.Background(), model.MenuItem{
					Name: "Caviar", Price: decimal.RequireFromString("99999999.99"), IsAvailable: true,
				})
				if err != nil {
					panic(err)
				}
				return usecase.PlaceOrderInput{
					TableID: &f.table3.ID,
					Items:   []usecase.PlaceOrderLine{{MenuItemID: caviar.ID, Quantity: 2}},
				}
			},
			status: http.StatusBadRequest,
			field:  "items",
		},
		{
			name: "unknown menu item",
			in: func(f *orderFixture) usecase.PlaceOrderInput {
				return usecase.PlaceOrderInput{
					TableID: &f.table3.ID,
					Items: []usecase.PlaceOrderLine{
						{MenuItemID: f.pizza.ID, Quantity: 1},
						{MenuItemID: 999, Quantity: 1},
					},
				}
			},
			status: http.StatusBadRequest,
			field:  "items[1].menuItemId",
		},
		{
			name: "unknown table",
			in: func(f *orderFixture) usecase.PlaceOrderInput {
				return usecase.PlaceOrderInput{
					TableID: &missingTable,
					Items:   []usecase.PlaceOrderLine{{MenuItemID: f.pizza.ID, Quantity: 1}},
				}
			},
			status: http.StatusNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newOrderFixture(t)

			_, err := f.uc.PlaceOrder(context.Background(), tc.in(f))
			he := requireHTTPError(t, err, tc.status)
			assert.Equal(t, tc.field, he.Field)

			// nothing written, nothing published
			assert.Equal(t, int64(0), f.countOrders(t))
			assert.Equal(t, model.TableStatusAvailable, f.tableStatus(t))
			assert.Empty(t, f.events.events)
		})
	}
}

func TestPlaceOrderRejectsUnavailableItem(t *testing.T) {
	f := newOrderFixture(t)
	require.NoError(t, f.db.Model(&model.MenuItem{}).Where("id = ?", f.pizza.ID).Update("is_available", false).Error)

	_, err := f.uc.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		Items: []usecase.PlaceOrderLine{{MenuItemID: f.pizza.ID, Quantity: 1}},
	})
	he := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Contains(t, he.Message, "not available")
	assert.Equal(t, int64(0), f.countOrders(t))
}

func TestUpdateStatusAnyToAny(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	out, err := f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		Items: []usecase.PlaceOrderLine{{MenuItemID: f.pizza.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// includes going back out of terminal states
	sequence := []model.OrderStatus{
		model.OrderStatusPaid,
		model.OrderStatusPending,
		model.OrderStatusCancelled,
		model.OrderStatusReady,
		model.OrderStatusServed,
		model.OrderStatusPreparing,
	}
	for _, s := range sequence {
		got, err := f.uc.UpdateStatus(ctx, 7, out.ID, string(s))
		require.NoError(t, err, s)
		assert.Equal(t, s, got.Status)
	}

	history, err := f.uc.History(ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, history, len(sequence)+1)
	assert.Equal(t, model.OrderStatusPending, history[1].FromStatus)
	assert.Equal(t, model.OrderStatusPaid, history[1].ToStatus)
	require.NotNil(t, history[1].ChangedBy)
	assert.Equal(t, int64(7), *history[1].ChangedBy)

	assert.Len(t, f.events.events, len(sequence)+1)
	assert.Equal(t, model.OrderEventStatusChanged, f.events.events[1].Type)
	assert.Equal(t, model.OrderStatusPending, f.events.events[1].FromStatus)
}

func TestUpdateStatusRejects(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.uc.UpdateStatus(ctx, 1, 1, "eaten")
	he := requireHTTPError(t, err, http.StatusBadRequest)
	assert.Equal(t, "status", he.Field)

	_, err = f.uc.UpdateStatus(ctx, 1, 999, "paid")
	requireHTTPError(t, err, http.StatusNotFound)
}

func TestUpdateStatusFreesTableWhenLastOrderCloses(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()
	in := usecase.PlaceOrderInput{
		TableID: &f.table3.ID,
		Items:   []usecase.PlaceOrderLine{{MenuItemID: f.pizza.ID, Quantity: 1}},
	}

	first, err := f.uc.PlaceOrder(ctx, in)
	require.NoError(t, err)
	second, err := f.uc.PlaceOrder(ctx, in)
	require.NoError(t, err)

	// another order is still open
	_, err = f.uc.UpdateStatus(ctx, 1, first.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, model.TableStatusOccupied, f.tableStatus(t))

	got, err := f.uc.UpdateStatus(ctx, 1, second.ID, "cancelled")
	require.NoError(t, err)
	assert.Equal(t, model.TableStatusAvailable, f.tableStatus(t))
	require.NotNil(t, got.Table)
	assert.Equal(t, model.TableStatusAvailable, got.Table.Status)
}

func TestUpdateStatusReopenOccupiesTable(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	out, err := f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		TableID: &f.table3.ID,
		Items:   []usecase.PlaceOrderLine{{MenuItemID: f.pizza.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.uc.UpdateStatus(ctx, 1, out.ID, "paid")
	require.NoError(t, err)
	assert.Equal(t, model.TableStatusAvailable, f.tableStatus(t))

	got, err := f.uc.UpdateStatus(ctx, 1, out.ID, "served")
	require.NoError(t, err)
	assert.Equal(t, model.TableStatusOccupied, f.tableStatus(t))
	require.NotNil(t, got.Table)
	assert.Equal(t, model.TableStatusOccupied, got.Table.Status)

	// a reserved table is left alone
	require.NoError(t, f.db.Model(&model.Table{}).Where("id = ?", f.table3.ID).Update("status", model.TableStatusReserved).Error)
	_, err = f.uc.UpdateStatus(ctx, 1, out.ID, "cancelled")
	require.NoError(t, err)
	_, err = f.uc.UpdateStatus(ctx, 1, out.ID, "pending")
	require.NoError(t, err)
	assert.Equal(t, model.TableStatusReserved, f.tableStatus(t))
}

func TestPublishFailureDoesNotFailOrder(t *testing.T) {
	f := newOrderFixture(t)
	f.events.err = errors.New("broker down")

	out, err := f.uc.PlaceOrder(context.Background(), usecase.PlaceOrderInput{
		Items: []usecase.PlaceOrderLine{{MenuItemID: f.pizza.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.NotZero(t, out.ID)

	var warned bool
	for _, e := range f.hook.AllEntries() {
		if e.Level == logrus.WarnLevel && e.Message == "publish order event failed" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestListOrders(t *testing.T) {
	f := newOrderFixture(t)
	ctx := context.Background()

	_, err := f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		TableID: &f.table3.ID,
		Items:   []usecase.PlaceOrderLine{{MenuItemID: f.pizza.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	_, err = f.uc.PlaceOrder(ctx, usecase.PlaceOrderInput{
		Items: []usecase.PlaceOrderLine{{MenuItemID: f.pizza.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	all, err := f.uc.List(ctx, usecase.ListOrdersInput{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	byTable, err := f.uc.List(ctx, usecase.ListOrdersInput{TableID: &f.table3.ID})
	require.NoError(t, err)
	assert.Len(t, byTable, 1)

	pending, err := f.uc.List(ctx, usecase.ListOrdersInput{Status: "pending"})
	require.NoError(t, err)
	assert.Len(t, pending, 2)

	paid, err := f.uc.List(ctx, usecase.ListOrdersInput{Status: "paid"})
	require.NoError(t, err)
	assert.Empty(t, paid)

	_, err = f.uc.List(ctx, usecase.ListOrdersInput{Status: "bogus"})
	requireHTTPError(t, err, http.StatusBadRequest)
}
