//go:build unit || e2e

// Package uowtest is an in-memory unit of work for use case tests. Writes made inside a failing
// Within call are discarded, like a rolled back transaction.
package uowtest

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"sync"

	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/usecase/shared"

	"github.com/google/uuid"
)

type FakeUoW struct {
	mu          sync.Mutex
	Products    map[uuid.UUID]int
	OptionItems map[uuid.UUID]int
	Orders      []shared.OrderRecord
	UsedCodes   map[uuid.UUID]bool
	// FailOrders makes every order insert fail with a database error.
	FailOrders bool
	Commits    int
	logger     *slog.Logger
}

func New() *FakeUoW {
	return &FakeUoW{
		Products:    map[uuid.UUID]int{},
		OptionItems: map[uuid.UUID]int{},
		UsedCodes:   map[uuid.UUID]bool{},
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func (u *FakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	tx := &fakeTx{
		uow:         u,
		products:    maps.Clone(u.Products),
		optionItems: maps.Clone(u.OptionItems),
		used:        maps.Clone(u.UsedCodes),
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	u.Products = tx.products
	u.OptionItems = tx.optionItems
	u.UsedCodes = tx.used
	u.Orders = append(u.Orders, tx.orders...)
	u.Commits++
	return nil
}

func (u *FakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db shared.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *FakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, db shared.DBTX) error) error {
	return fn(ctx, nil)
}

type fakeTx struct {
	uow         *FakeUoW
	products    map[uuid.UUID]int
	optionItems map[uuid.UUID]int
	used        map[uuid.UUID]bool
	orders      []shared.OrderRecord
}

func (t *fakeTx) Stock() shared.StockRepository             { return t }
func (t *fakeTx) Orders() shared.OrderRepository            { return t }
func (t *fakeTx) Discounts() shared.DiscountUsageRepository { return t }
func (t *fakeTx) DB() shared.DBTX                           { return nil }

func (t *fakeTx) DecrementProduct(_ context.Context, id uuid.UUID, qty int) error {
	return t.decrement(t.products, id, qty)
}

func (t *fakeTx) DecrementOptionItem(_ context.Context, id uuid.UUID, qty int) error {
	return t.decrement(t.optionItems, id, qty)
}

func (t *fakeTx) decrement(stock map[uuid.UUID]int, id uuid.UUID, qty int) error {
	have, ok := stock[id]
	if !ok {
		return infra.WrapRepoErr(t.uow.logger, infra.KindNotFound, "stock row not found", nil)
	}
	if have < qty {
		return infra.WrapRepoErr(t.uow.logger, infra.KindConditionFailed, "not enough stock", nil)
	}
	stock[id] = have - qty
	return nil
}

func (t *fakeTx) Create(_ context.Context, order *shared.OrderRecord) (uuid.UUID, error) {
	if t.uow.FailOrders {
		return uuid.Nil, infra.WrapRepoErr(t.uow.logger, infra.KindDBFailure, "failed to insert order", nil)
	}
	rec := *order
	rec.ID = uuid.New()
	t.orders = append(t.orders, rec)
	return rec.ID, nil
}

func (t *fakeTx) MarkUsed(_ context.Context, id uuid.UUID) error {
	t.used[id] = true
	return nil
}
