package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/usecase/shared"
)

// The qty guard makes each decrement all-or-nothing under concurrent checkouts.
const (
	decrementProductSQL = `
		UPDATE products SET qty = qty - $2, updated_at = now()
		WHERE id = $1 AND qty >= $2`

	decrementOptionItemSQL = `
		UPDATE product_option_items SET qty = qty - $2
		WHERE id = $1 AND qty IS NOT NULL AND qty >= $2`
)

type StockRepository struct {
	db     shared.DBTX
	logger *slog.Logger
}

func NewStockRepository(db shared.DBTX, logger *slog.Logger) *StockRepository {
	return &StockRepository{
		db:     db,
		logger: logger,
	}
}

func (r *StockRepository) DecrementProduct(ctx context.Context, productID uuid.UUID, qty int) error {
	return r.decrement(ctx, decrementProductSQL, "product", productID, qty)
}

func (r *StockRepository) DecrementOptionItem(ctx context.Context, optionItemID uuid.UUID, qty int) error {
	return r.decrement(ctx, decrementOptionItemSQL, "option item", optionItemID, qty)
}

func (r *StockRepository) decrement(ctx context.Context, sql, what string, id uuid.UUID, qty int) error {
	if qty <= 0 {
		return nil
	}
	tag, err := r.db.Exec(ctx, sql, id, qty)
	if err != nil {
		return wrapPgErr(r.logger, "failed to decrement "+what+" stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(r.logger, infra.KindConditionFailed, "not enough "+what+" stock for "+id.String(), nil)
	}
	return nil
}
