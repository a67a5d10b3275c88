package response

import (
	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/pkg/money"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"
)

type CartOptionResponse struct {
	Group string `json:"group"`
	Name  string `json:"name"`
	Price string `json:"price"`
}

type CartLineResponse struct {
	Key       string               `json:"key"`
	ProductID string               `json:"product_id"`
	Name      string               `json:"name"`
	Slug      string               `json:"slug,omitempty"`
	Price     string               `json:"price"`
	FakePrice string               `json:"fake_price"`
	Qty       int                  `json:"qty"`
	MaxQty    *int                 `json:"max_qty,omitempty"`
	Subtotal  string               `json:"subtotal"`
	Discount  string               `json:"discount"`
	Tax       string               `json:"tax"`
	Shipping  string               `json:"shipping"`
	Total     string               `json:"total"`
	Options   []CartOptionResponse `json:"options"`
}

type CartDiscountResponse struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Kind string `json:"kind"`
	Rate string `json:"rate"`
}

type CartTotalsResponse struct {
	Subtotal string `json:"subtotal"`
	Shipping string `json:"shipping"`
	Tax      string `json:"tax"`
	Discount string `json:"discount"`
	Total    string `json:"total"`
	Count    int    `json:"count"`
}

type CartResponse struct {
	Lines     []CartLineResponse     `json:"lines"`
	Discounts []CartDiscountResponse `json:"discounts"`
	Totals    CartTotalsResponse     `json:"totals"`
	Error     string                 `json:"error,omitempty"`
}

func FromCartView(v *queries.CartView) *CartResponse {
	res := &CartResponse{
		Lines:     make([]CartLineResponse, len(v.Lines)),
		Discounts: make([]CartDiscountResponse, len(v.Discounts)),
		Totals:    fromBreakdown(v.Totals),
		Error:     v.Error,
	}
	for i, l := range v.Lines {
		opts := make([]CartOptionResponse, len(l.Options))
		for j, o := range l.Options {
			opts[j] = CartOptionResponse{Group: o.Group, Name: o.Name, Price: money.Format(o.Price)}
		}
		res.Lines[i] = CartLineResponse{
			Key:       l.Key,
			ProductID: l.ProductID.String(),
			Name:      l.Name,
			Slug:      l.Slug,
			Price:     money.Format(l.Price),
			FakePrice: money.Format(l.FakePrice),
			Qty:       l.Qty,
			MaxQty:    l.MaxQty,
			Subtotal:  money.Format(l.Subtotal),
			Discount:  money.Format(l.Discount),
			Tax:       money.Format(l.Tax),
			Shipping:  money.Format(l.Shipping),
			Total:     money.Format(l.Total),
			Options:   opts,
		}
	}
	for i, d := range v.Discounts {
		res.Discounts[i] = CartDiscountResponse{Key: d.Key, Name: d.Name, Kind: string(d.Kind), Rate: d.Rate.String()}
	}
	return res
}

func fromBreakdown(b cart.Breakdown) CartTotalsResponse {
	return CartTotalsResponse{
		Subtotal: money.Format(b.Subtotal),
		Shipping: money.Format(b.Shipping),
		Tax:      money.Format(b.Tax),
		Discount: money.Format(b.Discount),
		Total:    money.Format(b.Total),
		Count:    b.Count,
	}
}

type AddCartItemResponse struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

func FromAddItemResult(r *commands.AddItemResult) *AddCartItemResponse {
	return &AddCartItemResponse{Key: r.Key, Count: r.Count}
}

// CartAmountsResponse is what the storefront redraws after a quantity, promo or tax change.
type CartAmountsResponse struct {
	Total    string `json:"total"`
	Discount string `json:"discount"`
	Tax      string `json:"tax"`
}

func FromCartTotals(t *commands.CartTotals) *CartAmountsResponse {
	return &CartAmountsResponse{
		Total:    money.Format(t.Total),
		Discount: money.Format(t.Discount),
		Tax:      money.Format(t.Tax),
	}
}
