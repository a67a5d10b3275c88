package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"storefront-checkout/internal/usecase/shared"
)

const createOrderSQL = `
	INSERT INTO orders (email, charge_id, total, billing_address, shipping_address, user_id, cart, test, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	RETURNING id`

type OrderRepository struct {
	db     shared.DBTX
	logger *slog.Logger
}

func NewOrderRepository(db shared.DBTX, logger *slog.Logger) *OrderRepository {
	return &OrderRepository{
		db:     db,
		logger: logger,
	}
}

func (r *OrderRepository) Create(ctx context.Context, order *shared.OrderRecord) (uuid.UUID, error) {
	var billing any
	if len(order.Billing) > 0 {
		billing = string(order.Billing)
	}

	var id uuid.UUID
	err := r.db.QueryRow(ctx, createOrderSQL,
		order.Email,
		order.TransactionID,
		order.Total,
		billing,
		string(order.Shipping),
		order.UserID,
		string(order.Cart),
		order.Test,
		order.CreatedAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, wrapPgErr(r.logger, "failed to create order", err)
	}
	order.ID = id
	return id, nil
}
