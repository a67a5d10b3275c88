package queries

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/infra"
	"storefront-checkout/internal/pkg/errs"
)

var (
	ErrOrderNotFound = errs.New("order not found")
	ErrOrderAccess   = errs.New("order belongs to another user")
)

type CartOptionView struct {
	Group string          `json:"group"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type CartLineView struct {
	Key       string           `json:"key"`
	ProductID uuid.UUID        `json:"product_id"`
	Name      string           `json:"name"`
	Slug      string           `json:"slug,omitempty"`
	Price     decimal.Decimal  `json:"price"`
	FakePrice decimal.Decimal  `json:"fake_price"`
	Qty       int              `json:"qty"`
	MaxQty    *int             `json:"max_qty,omitempty"`
	Subtotal  decimal.Decimal  `json:"subtotal"`
	Discount  decimal.Decimal  `json:"discount"`
	Tax       decimal.Decimal  `json:"tax"`
	Shipping  decimal.Decimal  `json:"shipping"`
	Total     decimal.Decimal  `json:"total"`
	Options   []CartOptionView `json:"options"`
}

type CartDiscountView struct {
	Key  string            `json:"key"`
	Name string            `json:"name"`
	Kind cart.DiscountKind `json:"kind"`
	Rate decimal.Decimal   `json:"rate"`
}

type CartView struct {
	Lines     []CartLineView     `json:"lines"`
	Discounts []CartDiscountView `json:"discounts"`
	Totals    cart.Breakdown     `json:"totals"`
	Error     string             `json:"error,omitempty"`
}

// OrderView is a stored order with its archived cart still encoded.
type OrderView struct {
	ID            uuid.UUID       `json:"id"`
	Email         string          `json:"email"`
	TransactionID string          `json:"transaction_id"`
	Total         decimal.Decimal `json:"total"`
	Billing       json.RawMessage `json:"billing,omitempty"`
	Shipping      json.RawMessage `json:"shipping"`
	UserID        *uuid.UUID      `json:"user_id,omitempty"`
	Cart          json.RawMessage `json:"-"`
	Test          bool            `json:"test"`
	CreatedAt     time.Time       `json:"created_at"`
}

type ReceiptView struct {
	Order OrderView `json:"order"`
	Cart  CartView  `json:"cart"`
}

type CartSnapshotReader interface {
	Load(ctx context.Context, sessionID string) (cart.Snapshot, error)
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
}

type CartQueries interface {
	View(ctx context.Context, sessionID string) (*CartView, error)
	Receipt(ctx context.Context, orderID uuid.UUID, actorID *uuid.UUID) (*ReceiptView, error)
}

type cartQueriesImpl struct {
	carts  CartSnapshotReader
	orders OrderReadStore
}

func NewCartQueries(carts CartSnapshotReader, orders OrderReadStore) CartQueries {
	return &cartQueriesImpl{carts: carts, orders: orders}
}

func (q *cartQueriesImpl) View(ctx context.Context, sessionID string) (*CartView, error) {
	snap, err := q.carts.Load(ctx, sessionID)
	if err != nil {
		return nil, errs.Wrap(err, "load cart")
	}
	// Load keeps the last error so a checkout that adjusted the cart can explain why.
	c := cart.New(cart.EmptySnapshot())
	c.Load(snap)
	return BuildCartView(c)
}

// Receipt rebuilds the cart exactly as it was charged, without touching any session cart.
func (q *cartQueriesImpl) Receipt(ctx context.Context, orderID uuid.UUID, actorID *uuid.UUID) (*ReceiptView, error) {
	order, err := q.orders.FindByID(ctx, orderID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrOrderNotFound)
		}
		return nil, err
	}
	if order.UserID != nil && (actorID == nil || *actorID != *order.UserID) {
		return nil, ErrOrderAccess
	}

	var snap cart.Snapshot
	if err := json.Unmarshal(order.Cart, &snap); err != nil {
		return nil, errs.Mark(errs.Wrap(err, "decode archived cart"), cart.ErrMalformedProduct)
	}
	c := cart.New(cart.EmptySnapshot())
	c.Load(snap)

	view, err := BuildCartView(c)
	if err != nil {
		return nil, err
	}
	return &ReceiptView{Order: *order, Cart: *view}, nil
}

// BuildCartView prices every line of c.
func BuildCartView(c *cart.Cart) (*CartView, error) {
	items, err := c.Decoded()
	if err != nil {
		return nil, err
	}

	lines := make([]CartLineView, 0, len(items))
	for _, it := range items {
		line := CartLineView{
			Key:       it.Key,
			ProductID: it.Decoded.ID,
			Name:      it.Decoded.Name,
			Slug:      it.Decoded.Slug,
			Price:     it.Price,
			FakePrice: it.FakePrice,
			Qty:       it.Qty,
			MaxQty:    it.MaxQty,
			Subtotal:  c.SubtotalForKey(it.Key),
			Discount:  c.DiscountForKey(it.Key),
			Tax:       c.TaxForKey(it.Key),
			Shipping:  c.ShippingForKey(it.Key),
			Total:     c.TotalForKey(it.Key),
			Options:   []CartOptionView{},
		}
		opts, _ := c.Options(it.Key)
		for _, o := range opts {
			line.Options = append(line.Options, CartOptionView{Group: o.Group, Name: o.Name, Price: o.Price})
		}
		lines = append(lines, line)
	}

	discounts := make([]CartDiscountView, 0)
	for _, d := range c.Discounts() {
		discounts = append(discounts, CartDiscountView{Key: d.Key, Name: d.Name(), Kind: d.Kind, Rate: d.Rate})
	}

	return &CartView{
		Lines:     lines,
		Discounts: discounts,
		Totals:    c.Breakdown(),
		Error:     c.Error(),
	}, nil
}
