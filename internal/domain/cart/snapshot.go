package cart

import "github.com/shopspring/decimal"

// Snapshot is the whole cart state as stored by the session container.
type Snapshot struct {
	Items     []LineItem          `json:"items"`
	Discounts map[string]Discount `json:"discounts"`
	Tax       *decimal.Decimal    `json:"tax,omitempty"`
	Error     string              `json:"error,omitempty"`
}

func EmptySnapshot() Snapshot {
	return Snapshot{
		Items:     []LineItem{},
		Discounts: map[string]Discount{},
	}
}

func (s Snapshot) IsEmpty() bool {
	return len(s.Items) == 0
}

// clone deep-copies the parts a Cart mutates so exported snapshots stay independent.
func (s Snapshot) clone() Snapshot {
	out := Snapshot{
		Items:     make([]LineItem, len(s.Items)),
		Discounts: make(map[string]Discount, len(s.Discounts)),
		Error:     s.Error,
	}
	for i, it := range s.Items {
		if it.MaxQty != nil {
			m := *it.MaxQty
			it.MaxQty = &m
		}
		out.Items[i] = it
	}
	for k, d := range s.Discounts {
		out.Discounts[k] = d
	}
	if s.Tax != nil {
		t := *s.Tax
		out.Tax = &t
	}
	return out
}
