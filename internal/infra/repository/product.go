package repository

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/shared"
)

const (
	findProductStockSQL = `SELECT id, name, qty, inventory FROM products WHERE id = $1`

	findOptionItemStockSQL = `
		SELECT i.id, o.product_id, i.name, i.qty
		FROM product_option_items i
		JOIN product_options o ON o.id = i.option_id
		WHERE i.id = $1`
)

// ProductRepository reads live stock. Concurrent lookups of the same row share one query.
type ProductRepository struct {
	db     shared.DBTX
	logger *slog.Logger
	group  singleflight.Group
}

func NewProductRepository(db shared.DBTX, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.ProductSnapshot, error) {
	v, err, _ := r.group.Do("product:"+id.String(), func() (any, error) {
		var p commands.ProductSnapshot
		err := r.db.QueryRow(ctx, findProductStockSQL, id).Scan(&p.ID, &p.Name, &p.Qty, &p.Inventory)
		if err != nil {
			return nil, wrapPgErr(r.logger, "failed to find product by ID", err)
		}
		return &p, nil
	})
	if err != nil {
		return nil, err
	}
	p := *v.(*commands.ProductSnapshot)
	return &p, nil
}

type OptionItemRepository struct {
	db     shared.DBTX
	logger *slog.Logger
	group  singleflight.Group
}

func NewOptionItemRepository(db shared.DBTX, logger *slog.Logger) *OptionItemRepository {
	return &OptionItemRepository{
		db:     db,
		logger: logger,
	}
}

func (r *OptionItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*commands.OptionItemSnapshot, error) {
	v, err, _ := r.group.Do("option_item:"+id.String(), func() (any, error) {
		var item commands.OptionItemSnapshot
		err := r.db.QueryRow(ctx, findOptionItemStockSQL, id).Scan(&item.ID, &item.ProductID, &item.Name, &item.Qty)
		if err != nil {
			return nil, wrapPgErr(r.logger, "failed to find option item by ID", err)
		}
		return &item, nil
	})
	if err != nil {
		return nil, err
	}
	item := *v.(*commands.OptionItemSnapshot)
	return &item, nil
}
