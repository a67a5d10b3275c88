package readstore

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/pgconv"
	"storefront-checkout/internal/usecase/shared"
)

const (
	findCatalogProductSQL = `
		SELECT id, name, slug, price, fake_price, shipping, qty, inventory
		FROM products
		WHERE id = $1`

	findSelectedOptionItemsSQL = `
		SELECT i.id, o.name, i.name, i.price, i.qty, o.sort_order
		FROM product_option_items i
		JOIN product_options o ON o.id = i.option_id
		WHERE o.product_id = $1 AND i.id = ANY($2)
		ORDER BY o.sort_order, i.sort_order`
)

// ProductCatalogReadStore builds cart products from the catalog tables.
type ProductCatalogReadStore struct {
	db     shared.DBTX
	logger *slog.Logger
}

func NewProductCatalogReadStore(db shared.DBTX, logger *slog.Logger) *ProductCatalogReadStore {
	return &ProductCatalogReadStore{
		db:     db,
		logger: logger,
	}
}

func (r *ProductCatalogReadStore) Product(ctx context.Context, productID uuid.UUID, optionItemIDs []uuid.UUID) (*cart.Product, error) {
	p := &cart.Product{SelectedOptions: map[string]cart.SelectedOption{}}
	err := r.db.QueryRow(ctx, findCatalogProductSQL, productID).Scan(
		&p.ID, &p.Name, &p.Slug, &p.Price, &p.FakePrice, &p.Shipping, &p.Qty, &p.Inventory,
	)
	if err != nil {
		return nil, wrapReadErr(r.logger, "failed to find product", err)
	}
	if len(optionItemIDs) == 0 {
		return p, nil
	}

	rows, err := r.db.Query(ctx, findSelectedOptionItemsSQL, productID, optionItemIDs)
	if err != nil {
		return nil, wrapReadErr(r.logger, "failed to load option items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			group, name string
			price       decimal.Decimal
			qty         pgtype.Int4
			order       int
		)
		if err := rows.Scan(&id, &group, &name, &price, &qty, &order); err != nil {
			return nil, wrapReadErr(r.logger, "failed to scan option item", err)
		}
		itemID := id
		p.SelectedOptions[group+": "+name] = cart.SelectedOption{
			ID:    &itemID,
			Name:  name,
			Price: price,
			Qty:   pgconv.IntPtrFromPgtype(qty),
			Order: order,
		}
	}
	if err := rows.Err(); err != nil {
		return nil, wrapReadErr(r.logger, "failed to read option items", err)
	}

	if len(p.SelectedOptions) != len(uniqueIDs(optionItemIDs)) {
		return nil, infra.WrapRepoErr(r.logger, infra.KindNotFound, "option item does not belong to product", nil)
	}
	return p, nil
}

func uniqueIDs(ids []uuid.UUID) map[uuid.UUID]struct{} {
	out := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}
