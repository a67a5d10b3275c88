package commands

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/config"
	"storefront-checkout/internal/pkg/errs"
)

var (
	ErrProductNotFound = errs.New("product not found")

	ErrPromoNotFound  = errs.Mark(errs.New("We have no record of this promo code."), errs.ErrValidation)
	ErrPromoUsed      = errs.Mark(errs.New("This promo code has already been used."), errs.ErrValidation)
	ErrPromoForbidden = errs.Mark(errs.New("You don't have permission to use this promo code."), errs.ErrValidation)
)

type AddItemInput struct {
	ProductID     uuid.UUID
	OptionItemIDs []uuid.UUID
	Qty           int
}

type AddItemResult struct {
	Key   string
	Count int
}

// CartTotals is what the storefront shows after a cart-wide change.
type CartTotals struct {
	Total    decimal.Decimal
	Discount decimal.Decimal
	Tax      decimal.Decimal
}

type CartCommands interface {
	AddItem(ctx context.Context, sessionID string, in AddItemInput) (*AddItemResult, error)
	UpdateQuantities(ctx context.Context, sessionID string, quantities map[string]int) (*CartTotals, error)
	RemoveItem(ctx context.Context, sessionID string, key string) error
	ApplyPromoCode(ctx context.Context, sessionID string, code string, userID *uuid.UUID) (*CartTotals, error)
	ApplyStateTax(ctx context.Context, sessionID string, shippingState, billingState string) (*CartTotals, error)
}

type cartUseCaseImpl struct {
	store     CartStore
	catalog   ProductCatalog
	discounts DiscountRepository
	taxRates  config.TaxConfig
	logger    *slog.Logger
}

func NewCartUseCase(
	store CartStore,
	catalog ProductCatalog,
	discounts DiscountRepository,
	cfg config.Config,
	logger *slog.Logger,
) CartCommands {
	return &cartUseCaseImpl{
		store:     store,
		catalog:   catalog,
		discounts: discounts,
		taxRates:  cfg.Tax,
		logger:    logger,
	}
}

func (u *cartUseCaseImpl) AddItem(ctx context.Context, sessionID string, in AddItemInput) (*AddItemResult, error) {
	if in.Qty <= 0 {
		return nil, cart.ErrInvalidQuantity
	}
	product, err := u.catalog.Product(ctx, in.ProductID, in.OptionItemIDs)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrProductNotFound)
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	c, err := u.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	key, err := c.Add(*product, in.Qty)
	if err != nil {
		return nil, err
	}
	if err := u.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return &AddItemResult{Key: key, Count: c.Count()}, nil
}

// UpdateQuantities applies every key/quantity pair; unknown keys are skipped and zero removes the line.
func (u *cartUseCaseImpl) UpdateQuantities(ctx context.Context, sessionID string, quantities map[string]int) (*CartTotals, error) {
	c, err := u.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	for key, qty := range quantities {
		if qty < 0 {
			return nil, cart.ErrInvalidQuantity
		}
		c.SetQuantity(key, qty)
	}
	if err := u.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return totalsOf(c), nil
}

func (u *cartUseCaseImpl) RemoveItem(ctx context.Context, sessionID string, key string) error {
	c, err := u.load(ctx, sessionID)
	if err != nil {
		return err
	}
	if !c.Remove(key) {
		return cart.ErrLineNotFound
	}
	return u.save(ctx, sessionID, c)
}

func (u *cartUseCaseImpl) ApplyPromoCode(ctx context.Context, sessionID string, code string, userID *uuid.UUID) (*CartTotals, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrPromoNotFound
	}
	d, err := u.discounts.FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPromoNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if d.OneTime && d.Used {
		return nil, ErrPromoUsed
	}
	if d.UserID != nil && (userID == nil || *userID != *d.UserID) {
		return nil, ErrPromoForbidden
	}

	c, err := u.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if _, err := c.Discount(d.Rate, d.Kind, map[string]string{
		cart.AttrName: d.Name,
		cart.AttrID:   d.ID.String(),
	}); err != nil {
		return nil, err
	}
	if err := u.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	u.logger.InfoContext(ctx, "promo code applied", slog.String("discount_id", d.ID.String()))
	return totalsOf(c), nil
}

// ApplyStateTax charges the configured state rate only when shipping and billing are in the same state.
func (u *cartUseCaseImpl) ApplyStateTax(ctx context.Context, sessionID string, shippingState, billingState string) (*CartTotals, error) {
	rate := decimal.Zero
	state := strings.ToUpper(strings.TrimSpace(shippingState))
	if state != "" && state == strings.ToUpper(strings.TrimSpace(billingState)) {
		r, err := u.taxRates.RateFor(state)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrConfiguration)
		}
		rate = r
	}

	c, err := u.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	c.Tax(rate)
	if err := u.save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return totalsOf(c), nil
}

func (u *cartUseCaseImpl) load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	snap, err := u.store.Load(ctx, sessionID)
	if err != nil {
		return nil, errs.Wrap(err, "load cart")
	}
	return cart.New(snap), nil
}

func (u *cartUseCaseImpl) save(ctx context.Context, sessionID string, c *cart.Cart) error {
	if err := u.store.Save(ctx, sessionID, c.Export()); err != nil {
		return errs.Wrap(err, "save cart")
	}
	return nil
}

func totalsOf(c *cart.Cart) *CartTotals {
	return &CartTotals{
		Total:    c.Total(),
		Discount: c.TotalDiscount(),
		Tax:      c.TotalTax(),
	}
}
