package readstore

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"

	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/pgconv"
	"storefront-checkout/internal/usecase/queries"
	"storefront-checkout/internal/usecase/shared"
)

const findOrderByIDSQL = `
	SELECT id, email, charge_id, total, billing_address, shipping_address, user_id, cart, test, created_at
	FROM orders
	WHERE id = $1`

type OrderReadStore struct {
	db     shared.DBTX
	logger *slog.Logger
}

func NewOrderReadStore(db shared.DBTX, logger *slog.Logger) *OrderReadStore {
	return &OrderReadStore{
		db:     db,
		logger: logger,
	}
}

func (r *OrderReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.OrderView, error) {
	var (
		o                        queries.OrderView
		total                    pgtype.Numeric
		userID                   pgtype.UUID
		createdAt                pgtype.Timestamptz
		billing, shipping, stash []byte
	)
	err := r.db.QueryRow(ctx, findOrderByIDSQL, id).Scan(
		&o.ID, &o.Email, &o.TransactionID, &total, &billing, &shipping, &userID, &stash, &o.Test, &createdAt,
	)
	if err != nil {
		return nil, wrapReadErr(r.logger, "failed to find order by ID", err)
	}
	if o.Total, err = pgconv.DecimalFromNumeric(total); err != nil {
		return nil, infra.WrapRepoErr(r.logger, infra.KindDBFailure, "invalid order total", err)
	}
	o.UserID = pgconv.UUIDPtrFromPgtype(userID)
	o.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	o.Billing = billing
	o.Shipping = shipping
	o.Cart = stash
	return &o, nil
}
