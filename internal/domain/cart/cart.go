package cart

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"storefront-checkout/internal/pkg/errs"
)

// Cart is the pricing engine over one Snapshot. It holds no ambient state: the caller loads
// the snapshot, mutates through Cart, and persists Export() when it is done.
// A Cart is not safe for concurrent use.
type Cart struct {
	snap  Snapshot
	index map[string]int

	decoded    []DecodedItem
	decodedErr error
	decodedSet bool
}

// New wraps a snapshot freshly loaded from its container. The last error does not survive a load.
func New(s Snapshot) *Cart {
	c := &Cart{}
	c.reset(s)
	c.snap.Error = ""
	return c
}

func (c *Cart) reset(s Snapshot) {
	s = s.clone()
	if s.Items == nil {
		s.Items = []LineItem{}
	}
	if s.Discounts == nil {
		s.Discounts = map[string]Discount{}
	}
	c.snap = s
	c.decoded, c.decodedErr, c.decodedSet = nil, nil, false
	c.reindex()
}

func (c *Cart) reindex() {
	c.index = make(map[string]int, len(c.snap.Items))
	for i, it := range c.snap.Items {
		c.index[it.Key] = i
	}
}

func (c *Cart) line(key string) (*LineItem, bool) {
	i, ok := c.index[key]
	if !ok {
		return nil, false
	}
	return &c.snap.Items[i], true
}

// Load swaps in a historical snapshot, e.g. the one archived with an order.
func (c *Cart) Load(s Snapshot) {
	c.reset(s)
}

func (c *Cart) Export() Snapshot {
	return c.snap.clone()
}

// Destroy empties the cart.
func (c *Cart) Destroy() {
	c.reset(EmptySnapshot())
}

// Add puts qty of the product into the cart, or raises the quantity of an existing line with the
// same fingerprint. Inventory-tracked products cannot exceed their stock; on that failure the
// message is recorded in Error and nothing changes.
func (c *Cart) Add(p Product, qty int) (string, error) {
	if qty <= 0 {
		return "", ErrInvalidQuantity
	}
	key := Fingerprint(p)

	price := p.Price
	fakePrice := p.FakePrice
	maxQty := p.Qty
	optionQty := 0
	for _, k := range p.SelectedKeys() {
		opt := p.SelectedOptions[k]
		price = price.Add(opt.Price)
		if p.FakePrice.IsPositive() {
			fakePrice = fakePrice.Add(opt.Price)
		}
		if opt.Qty != nil && *opt.Qty != 0 && (optionQty == 0 || *opt.Qty < optionQty) {
			optionQty = *opt.Qty
		}
	}
	if optionQty != 0 {
		maxQty = optionQty
	}

	desired := qty
	existing, exists := c.line(key)
	if exists {
		desired = existing.Qty + qty
	}

	if p.Inventory && desired > maxQty {
		msg, err := stockError(maxQty)
		c.snap.Error = msg
		return "", err
	}

	if exists {
		existing.Qty = desired
		return key, nil
	}

	raw, err := json.Marshal(p)
	if err != nil {
		return "", errs.Wrap(err, "failed to serialize product")
	}
	item := LineItem{
		Key:       key,
		Product:   raw,
		Price:     price,
		FakePrice: fakePrice,
		Qty:       desired,
	}
	if p.Inventory {
		m := maxQty
		item.MaxQty = &m
		item.Qty = min(qty, maxQty)
	}
	c.snap.Items = append(c.snap.Items, item)
	c.index[key] = len(c.snap.Items) - 1
	return key, nil
}

func (c *Cart) Remove(key string) bool {
	i, ok := c.index[key]
	if !ok {
		return false
	}
	c.snap.Items = append(c.snap.Items[:i], c.snap.Items[i+1:]...)
	c.reindex()
	return true
}

// SetQuantity sets a line's quantity. Zero removes the line; values above MaxQty are clamped.
func (c *Cart) SetQuantity(key string, qty int) bool {
	it, ok := c.line(key)
	if !ok {
		return false
	}
	if qty <= 0 {
		return c.Remove(key)
	}
	if it.MaxQty != nil && qty > *it.MaxQty {
		qty = *it.MaxQty
	}
	it.Qty = qty
	return true
}

// SetMaxQuantity overwrites a line's ceiling without reclamping its quantity. Zero removes the line.
func (c *Cart) SetMaxQuantity(key string, ceiling int) bool {
	it, ok := c.line(key)
	if !ok {
		return false
	}
	if ceiling <= 0 {
		return c.Remove(key)
	}
	it.MaxQty = &ceiling
	return true
}

func (c *Cart) Get(key string) (LineItem, bool) {
	it, ok := c.line(key)
	if !ok {
		return LineItem{}, false
	}
	return *it, true
}

// All returns the lines in insertion order.
func (c *Cart) All() []LineItem {
	out := make([]LineItem, len(c.snap.Items))
	copy(out, c.snap.Items)
	return out
}

func (c *Cart) Keys() []string {
	keys := make([]string, len(c.snap.Items))
	for i, it := range c.snap.Items {
		keys[i] = it.Key
	}
	return keys
}

// Count is the number of units in the cart, not the number of lines.
func (c *Cart) Count() int {
	n := 0
	for _, it := range c.snap.Items {
		n += it.Qty
	}
	return n
}

// Decoded parses every line's product snapshot once. Later mutations are not reflected until
// the cart is rebuilt or reloaded.
func (c *Cart) Decoded() ([]DecodedItem, error) {
	if c.decodedSet {
		return c.decoded, c.decodedErr
	}
	out := make([]DecodedItem, 0, len(c.snap.Items))
	for _, it := range c.snap.Items {
		d, err := it.decode()
		if err != nil {
			c.decodedErr = errs.Mark(errs.Wrapf(err, "line %s", it.Key), ErrMalformedProduct)
			break
		}
		out = append(out, d)
	}
	if c.decodedErr == nil {
		c.decoded = out
	}
	c.decodedSet = true
	return c.decoded, c.decodedErr
}

// GroupedOption is a selected option labelled with its group, the text before ':' in its key.
type GroupedOption struct {
	Group string
	SelectedOption
}

// Options returns a line's selected options grouped by name and ordered by their display order.
func (c *Cart) Options(key string) ([]GroupedOption, bool) {
	it, ok := c.line(key)
	if !ok {
		return nil, false
	}
	d, err := it.decode()
	if err != nil {
		return nil, false
	}

	byGroup := make(map[string]SelectedOption, len(d.Decoded.SelectedOptions))
	for _, k := range d.Decoded.SelectedKeys() {
		group, _, _ := strings.Cut(k, ":")
		byGroup[strings.TrimSpace(group)] = d.Decoded.SelectedOptions[k]
	}
	out := make([]GroupedOption, 0, len(byGroup))
	for g, opt := range byGroup {
		out = append(out, GroupedOption{Group: g, SelectedOption: opt})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		return out[i].Group < out[j].Group
	})
	return out, true
}

// Discount upserts a discount. An explicit "id" attribute is the key; without one the key is a
// hash of the attributes, so the same attributes never stack.
func (c *Cart) Discount(rate decimal.Decimal, kind DiscountKind, attrs map[string]string) (string, error) {
	if kind == "" {
		kind = DiscountFlat
	}
	if !kind.IsValid() {
		return "", ErrInvalidDiscountKind
	}
	values := make(map[string]string, len(attrs))
	for k, v := range attrs {
		values[k] = v
	}
	key := discountKey(values)
	c.snap.Discounts[key] = Discount{
		Key:        key,
		Rate:       rate,
		Kind:       kind,
		Attributes: values,
	}
	return key, nil
}

func (c *Cart) RemoveDiscount(key string) bool {
	if _, ok := c.snap.Discounts[key]; !ok {
		return false
	}
	delete(c.snap.Discounts, key)
	return true
}

// Discounts returns the applied discounts ordered by key.
func (c *Cart) Discounts() []Discount {
	out := make([]Discount, 0, len(c.snap.Discounts))
	for _, d := range c.snap.Discounts {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// Tax sets the rate when one is given and returns the current rate.
func (c *Cart) Tax(rate ...decimal.Decimal) decimal.Decimal {
	if len(rate) > 0 {
		r := rate[0]
		c.snap.Tax = &r
	}
	if c.snap.Tax == nil {
		return decimal.Zero
	}
	return *c.snap.Tax
}

func (c *Cart) HasTax() bool {
	return c.snap.Tax != nil
}

// Error records msg when given and returns the last operational error.
func (c *Cart) Error(msg ...string) string {
	if len(msg) > 0 {
		c.snap.Error = msg[0]
	}
	return c.snap.Error
}
