package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-checkout/internal/domain/cart"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type ProductSnapshot struct {
	ID        uuid.UUID
	Name      string
	Qty       int
	Inventory bool
}

// Qty is nil for option items that do not track their own stock.
type OptionItemSnapshot struct {
	ID        uuid.UUID
	ProductID uuid.UUID
	Name      string
	Qty       *int
}

type DiscountSnapshot struct {
	ID      uuid.UUID
	Name    string
	Code    string
	Kind    cart.DiscountKind
	Rate    decimal.Decimal
	UserID  *uuid.UUID
	OneTime bool
	Used    bool
}

// ProductRepository and OptionItemRepository return infra.KindNotFound for rows that no longer exist.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ProductSnapshot, error)
}

type OptionItemRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OptionItemSnapshot, error)
}

type DiscountRepository interface {
	FindByCode(ctx context.Context, code string) (*DiscountSnapshot, error)
}

// CartStore is the session container for cart snapshots. Loading a missing session yields an empty cart.
type CartStore interface {
	Load(ctx context.Context, sessionID string) (cart.Snapshot, error)
	Save(ctx context.Context, sessionID string, snap cart.Snapshot) error
	Delete(ctx context.Context, sessionID string) error
}

// CheckoutLock serializes checkouts of one session. Acquire fails with ErrCheckoutInProgress
// while another holder has the lock.
type CheckoutLock interface {
	Acquire(ctx context.Context, sessionID string) (release func(context.Context) error, err error)
}

// ProductCatalog builds the cart view of a product with the given option items selected.
// Option items that do not belong to the product are rejected with infra.KindNotFound.
type ProductCatalog interface {
	Product(ctx context.Context, productID uuid.UUID, optionItemIDs []uuid.UUID) (*cart.Product, error)
}
