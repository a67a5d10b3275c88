package commands

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/shared"
)

// Both are additionally marked with errs.ErrStock where they are returned.
var (
	ErrInventoryInsufficient = errs.New("inventory changed since the items were added")
	ErrStockConflict         = errs.New("stock was taken by another order")
)

// InventoryReconciler checks a cart against live stock and deducts it once an order is paid.
type InventoryReconciler struct {
	products    ProductRepository
	optionItems OptionItemRepository
	uow         shared.UnitOfWork
	logger      *slog.Logger
}

func NewInventoryReconciler(
	products ProductRepository,
	optionItems OptionItemRepository,
	uow shared.UnitOfWork,
	logger *slog.Logger,
) *InventoryReconciler {
	return &InventoryReconciler{
		products:    products,
		optionItems: optionItems,
		uow:         uow,
		logger:      logger,
	}
}

// EnoughInventory reports whether every tracked line can still be filled. Lines whose product
// or option vanished are removed; lines asking for more than is left are clamped to the live
// stock. It returns false when it changed anything.
func (r *InventoryReconciler) EnoughInventory(ctx context.Context, c *cart.Cart) (bool, error) {
	items, err := c.Decoded()
	if err != nil {
		return false, err
	}

	enough := true
	for _, item := range items {
		if !item.Tracked() {
			continue
		}

		product, err := r.products.FindByID(ctx, item.Decoded.ID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				r.logger.Info("product no longer exists, removing line",
					slog.String("key", item.Key), slog.String("product_id", item.Decoded.ID.String()))
				enough = false
				c.Remove(item.Key)
				continue
			}
			return false, errs.Wrapf(err, "load product %s", item.Decoded.ID)
		}

		stock := product.Qty
		if opt, ok := item.Decoded.StockOption(); ok {
			optionItem, err := r.optionItems.FindByID(ctx, *opt.ID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					r.logger.Info("option item no longer exists, removing line",
						slog.String("key", item.Key), slog.String("option_item_id", opt.ID.String()))
					enough = false
					c.Remove(item.Key)
					continue
				}
				return false, errs.Wrapf(err, "load option item %s", *opt.ID)
			}
			if optionItem.Qty != nil {
				stock = *optionItem.Qty
			}
		}

		if stock < item.Qty {
			r.logger.Info("not enough stock, clamping line",
				slog.String("key", item.Key), slog.Int("requested", item.Qty), slog.Int("available", stock))
			enough = false
			c.SetQuantity(item.Key, stock)
			c.SetMaxQuantity(item.Key, stock)
		}
	}
	return enough, nil
}

// SubtractInventory deducts every tracked line in a single transaction. When any row no longer
// has enough stock the whole deduction is rolled back and ErrStockConflict is returned.
func (r *InventoryReconciler) SubtractInventory(ctx context.Context, c *cart.Cart) error {
	items, err := c.Decoded()
	if err != nil {
		return err
	}

	type deduction struct {
		id       uuid.UUID
		qty      int
		isOption bool
	}
	deductions := make([]deduction, 0, len(items))
	for _, item := range items {
		if !item.Tracked() {
			continue
		}
		if opt, ok := stockOption(item.Decoded); ok {
			deductions = append(deductions, deduction{id: *opt.ID, qty: item.Qty, isOption: true})
			continue
		}
		deductions = append(deductions, deduction{id: item.Decoded.ID, qty: item.Qty})
	}
	if len(deductions) == 0 {
		return nil
	}

	err = r.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		for _, d := range deductions {
			var err error
			if d.isOption {
				err = tx.Stock().DecrementOptionItem(ctx, d.id, d.qty)
			} else {
				err = tx.Stock().DecrementProduct(ctx, d.id, d.qty)
			}
			if err != nil {
				if infra.IsKind(err, infra.KindConditionFailed) || infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(errs.Mark(errs.Wrapf(err, "decrement %s by %d", d.id, d.qty), ErrStockConflict), errs.ErrStock)
				}
				return errs.Wrapf(err, "decrement %s", d.id)
			}
		}
		return nil
	})
	if err != nil {
		if errs.Is(err, ErrStockConflict) {
			return err
		}
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// stockOption is the selected option whose own stock is decremented for the line, if any.
func stockOption(p cart.Product) (cart.SelectedOption, bool) {
	opt, ok := p.StockOption()
	if !ok || opt.Qty == nil {
		return cart.SelectedOption{}, false
	}
	return opt, true
}
