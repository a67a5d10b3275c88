package cart

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is the catalog view handed to Add, with the customer's option selection applied.
type Product struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Slug      string          `json:"slug,omitempty"`
	Price     decimal.Decimal `json:"price"`
	FakePrice decimal.Decimal `json:"fake_price"`
	Shipping  decimal.Decimal `json:"shipping"`
	Qty       int             `json:"qty"`
	Inventory bool            `json:"inventory"`
	// Keyed by "Group: Value", e.g. "Size: Large".
	SelectedOptions map[string]SelectedOption `json:"selected_options"`
}

// SelectedOption is one chosen option item. ID is nil for free-form custom options.
type SelectedOption struct {
	ID    *uuid.UUID      `json:"id,omitempty"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
	Qty   *int            `json:"qty,omitempty"`
	Order int             `json:"order"`
}

// SelectedKeys returns the selected option keys in sorted order.
func (p Product) SelectedKeys() []string {
	keys := make([]string, 0, len(p.SelectedOptions))
	for k := range p.SelectedOptions {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StockOption returns the first selected option, in key order, that refers to a stored option item.
func (p Product) StockOption() (SelectedOption, bool) {
	for _, k := range p.SelectedKeys() {
		opt := p.SelectedOptions[k]
		if opt.ID != nil {
			return opt, true
		}
	}
	return SelectedOption{}, false
}
