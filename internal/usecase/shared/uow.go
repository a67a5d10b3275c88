package shared

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both the pool and an open transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db DBTX) error) error
}

type Tx interface {
	Stock() StockRepository
	Orders() OrderRepository
	Discounts() DiscountUsageRepository
	DB() DBTX
}

// StockRepository decrements stock only while enough remains; otherwise it fails with
// infra.KindConditionFailed and changes nothing.
type StockRepository interface {
	DecrementProduct(ctx context.Context, productID uuid.UUID, qty int) error
	DecrementOptionItem(ctx context.Context, optionItemID uuid.UUID, qty int) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *OrderRecord) (uuid.UUID, error)
}

type DiscountUsageRepository interface {
	MarkUsed(ctx context.Context, discountID uuid.UUID) error
}
