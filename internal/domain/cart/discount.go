package cart

import (
	"encoding/hex"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/blake2b"

	"storefront-checkout/internal/pkg/errs"
)

var ErrInvalidDiscountKind = errs.Mark(errs.New("discount kind must be flat or percent"), errs.ErrValidation)

type DiscountKind string

const (
	DiscountFlat    DiscountKind = "flat"
	DiscountPercent DiscountKind = "percent"
)

func (k DiscountKind) IsValid() bool {
	switch k {
	case DiscountFlat, DiscountPercent:
		return true
	default:
		return false
	}
}

func (k DiscountKind) String() string {
	return string(k)
}

// Attribute names understood by the engine. Anything else is carried through untouched.
const (
	AttrID   = "id"
	AttrName = "name"
	AttrUser = "user_id"
)

type Discount struct {
	Key        string            `json:"key"`
	Rate       decimal.Decimal   `json:"rate"`
	Kind       DiscountKind      `json:"type"`
	Attributes map[string]string `json:"values,omitempty"`
}

func (d Discount) Name() string {
	return d.Attributes[AttrName]
}

// ID is the explicit identifier the discount was applied with, if any.
func (d Discount) ID() string {
	return d.Attributes[AttrID]
}

func discountKey(attrs map[string]string) string {
	if id := attrs[AttrID]; id != "" {
		return id
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(attrs[k])
		b.WriteByte(';')
	}
	sum := blake2b.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:16])
}
