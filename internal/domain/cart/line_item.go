package cart

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"storefront-checkout/internal/pkg/errs"
)

type LineItem struct {
	Key string `json:"key"`
	// Serialized Product as it was when the line was created.
	Product   json.RawMessage `json:"product"`
	Price     decimal.Decimal `json:"price"`
	FakePrice decimal.Decimal `json:"fake_price"`
	Qty       int             `json:"qty"`
	MaxQty    *int            `json:"max_qty,omitempty"`
}

func (l LineItem) Tracked() bool {
	return l.MaxQty != nil
}

// DecodedItem is a line with its product snapshot parsed.
type DecodedItem struct {
	LineItem
	Decoded Product
}

func (l LineItem) decode() (DecodedItem, error) {
	var p Product
	if err := json.Unmarshal(l.Product, &p); err != nil {
		return DecodedItem{}, err
	}
	return DecodedItem{LineItem: l, Decoded: p}, nil
}

// DecodeProduct parses the product snapshot stored with the line.
func (l LineItem) DecodeProduct() (Product, error) {
	d, err := l.decode()
	if err != nil {
		return Product{}, errs.Mark(errs.Wrapf(err, "line %s", l.Key), ErrMalformedProduct)
	}
	return d.Decoded, nil
}
