package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/shared"
)

const (
	findDiscountByCodeSQL = `
		SELECT id, name, code, kind, rate, user_id, onetime, used
		FROM discounts
		WHERE lower(code) = lower($1)`

	// Only one-time codes are ever consumed.
	markDiscountUsedSQL = `UPDATE discounts SET used = TRUE WHERE id = $1 AND onetime`
)

type DiscountRepository struct {
	db     shared.DBTX
	logger *slog.Logger
}

func NewDiscountRepository(db shared.DBTX, logger *slog.Logger) *DiscountRepository {
	return &DiscountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *DiscountRepository) FindByCode(ctx context.Context, code string) (*commands.DiscountSnapshot, error) {
	var (
		d    commands.DiscountSnapshot
		kind string
	)
	err := r.db.QueryRow(ctx, findDiscountByCodeSQL, code).Scan(
		&d.ID, &d.Name, &d.Code, &kind, &d.Rate, &d.UserID, &d.OneTime, &d.Used,
	)
	if err != nil {
		return nil, wrapPgErr(r.logger, "failed to find discount by code", err)
	}
	d.Kind = cart.DiscountKind(kind)
	return &d, nil
}

func (r *DiscountRepository) MarkUsed(ctx context.Context, discountID uuid.UUID) error {
	if _, err := r.db.Exec(ctx, markDiscountUsedSQL, discountID); err != nil {
		return wrapPgErr(r.logger, "failed to mark discount used", err)
	}
	return nil
}
