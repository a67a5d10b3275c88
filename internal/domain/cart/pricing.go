package cart

import (
	"github.com/shopspring/decimal"

	"storefront-checkout/internal/pkg/money"
)

// Pricing for a key that is not in the cart is zero.

func (c *Cart) SubtotalForKey(key string) decimal.Decimal {
	it, ok := c.line(key)
	if !ok {
		return decimal.Zero
	}
	return it.Price.Mul(decimal.NewFromInt(int64(it.Qty)))
}

func (c *Cart) Subtotal() decimal.Decimal {
	return c.sum(c.SubtotalForKey)
}

func (c *Cart) ShippingForKey(key string) decimal.Decimal {
	it, ok := c.line(key)
	if !ok {
		return decimal.Zero
	}
	d, err := it.decode()
	if err != nil {
		return decimal.Zero
	}
	return d.Decoded.Shipping.Mul(decimal.NewFromInt(int64(it.Qty)))
}

func (c *Cart) TotalShipping() decimal.Decimal {
	return c.sum(c.ShippingForKey)
}

func (c *Cart) TaxForKey(key string) decimal.Decimal {
	it, ok := c.line(key)
	if !ok || c.snap.Tax == nil {
		return decimal.Zero
	}
	return money.Round2(c.snap.Tax.Mul(it.Price).Mul(decimal.NewFromInt(int64(it.Qty))))
}

func (c *Cart) TotalTax() decimal.Decimal {
	if c.snap.Tax == nil {
		return decimal.Zero
	}
	return c.sum(c.TaxForKey)
}

// DiscountForKey sums percent discounts on the line; flat discounts only apply to the aggregate.
func (c *Cart) DiscountForKey(key string) decimal.Decimal {
	it, ok := c.line(key)
	if !ok {
		return decimal.Zero
	}
	total := decimal.Zero
	qty := decimal.NewFromInt(int64(it.Qty))
	for _, d := range c.snap.Discounts {
		if d.Kind != DiscountPercent {
			continue
		}
		unit := money.Round2(money.Percent(d.Rate).Mul(it.Price))
		total = total.Add(unit.Mul(qty))
	}
	return total
}

func (c *Cart) TotalDiscountFlat() decimal.Decimal {
	total := decimal.Zero
	for _, d := range c.snap.Discounts {
		if d.Kind == DiscountFlat {
			total = total.Add(d.Rate)
		}
	}
	return total
}

func (c *Cart) TotalDiscount() decimal.Decimal {
	if len(c.snap.Discounts) == 0 {
		return decimal.Zero
	}
	return c.sum(c.DiscountForKey).Add(c.TotalDiscountFlat())
}

func (c *Cart) TotalForKey(key string) decimal.Decimal {
	if _, ok := c.line(key); !ok {
		return decimal.Zero
	}
	return c.SubtotalForKey(key).
		Add(c.ShippingForKey(key)).
		Add(c.TaxForKey(key)).
		Sub(c.DiscountForKey(key))
}

// Total is the amount to charge. It never goes below zero.
func (c *Cart) Total() decimal.Decimal {
	return money.FloorZero(c.sum(c.TotalForKey).Sub(c.TotalDiscountFlat()))
}

func (c *Cart) sum(f func(string) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.snap.Items {
		total = total.Add(f(it.Key))
	}
	return total
}

// Breakdown is every aggregate of the cart at one point in time.
type Breakdown struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Shipping decimal.Decimal `json:"shipping"`
	Tax      decimal.Decimal `json:"tax"`
	Discount decimal.Decimal `json:"discount"`
	Total    decimal.Decimal `json:"total"`
	Count    int             `json:"count"`
}

func (c *Cart) Breakdown() Breakdown {
	return Breakdown{
		Subtotal: c.Subtotal(),
		Shipping: c.TotalShipping(),
		Tax:      c.TotalTax(),
		Discount: c.TotalDiscount(),
		Total:    c.Total(),
		Count:    c.Count(),
	}
}
