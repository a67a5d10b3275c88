//go:build unit || e2e

package builder

import (
	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductBuilder struct {
	ID        uuid.UUID
	Name      string
	Slug      string
	Price     string
	FakePrice string
	Shipping  string
	Qty       int
	Inventory bool
	Options   map[string]cart.SelectedOption
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		ID:        uuid.New(),
		Name:      "Canvas Tote",
		Slug:      "canvas-tote",
		Price:     "10.00",
		FakePrice: "0",
		Shipping:  "0",
		Qty:       0,
		Inventory: false,
		Options:   map[string]cart.SelectedOption{},
	}
}

func (b *ProductBuilder) With(mutate func(*ProductBuilder)) *ProductBuilder {
	mutate(b)
	return b
}

func (b *ProductBuilder) WithPrice(price string) *ProductBuilder {
	b.Price = price
	return b
}

func (b *ProductBuilder) WithFakePrice(price string) *ProductBuilder {
	b.FakePrice = price
	return b
}

func (b *ProductBuilder) WithShipping(shipping string) *ProductBuilder {
	b.Shipping = shipping
	return b
}

// Tracked turns on inventory tracking with the given stock.
func (b *ProductBuilder) Tracked(qty int) *ProductBuilder {
	b.Inventory = true
	b.Qty = qty
	return b
}

// WithOption selects a stored option item. qty 0 means the option does not carry its own stock.
func (b *ProductBuilder) WithOption(key string, price string, qty int, order int) *ProductBuilder {
	opt := cart.SelectedOption{
		ID:    ptr.Of(uuid.New()),
		Name:  key,
		Price: decimal.RequireFromString(price),
		Order: order,
	}
	if qty != 0 {
		opt.Qty = ptr.Of(qty)
	}
	b.Options[key] = opt
	return b
}

// WithCustomOption selects a free-form option with no stored item behind it.
func (b *ProductBuilder) WithCustomOption(key string, price string) *ProductBuilder {
	b.Options[key] = cart.SelectedOption{
		Name:  key,
		Price: decimal.RequireFromString(price),
	}
	return b
}

func (b *ProductBuilder) BuildDomain() cart.Product {
	opts := make(map[string]cart.SelectedOption, len(b.Options))
	for k, v := range b.Options {
		opts[k] = v
	}
	return cart.Product{
		ID:              b.ID,
		Name:            b.Name,
		Slug:            b.Slug,
		Price:           decimal.RequireFromString(b.Price),
		FakePrice:       decimal.RequireFromString(b.FakePrice),
		Shipping:        decimal.RequireFromString(b.Shipping),
		Qty:             b.Qty,
		Inventory:       b.Inventory,
		SelectedOptions: opts,
	}
}

func Dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
