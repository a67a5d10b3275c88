package payment

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

type Operation string

const (
	OpAuthorize Operation = "authorize"
	OpCapture   Operation = "capture"
	OpCharge    Operation = "charge"
	OpRefund    Operation = "refund"
	OpCancel    Operation = "cancel"
	OpCredit    Operation = "credit"
)

func (o Operation) IsValid() bool {
	switch o {
	case OpAuthorize, OpCapture, OpCharge, OpRefund, OpCancel, OpCredit:
		return true
	}
	return false
}

const DefaultCurrency = "USD"

type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Company   string `json:"company,omitempty"`
	Address   string `json:"address"`
	Address2  string `json:"address_2,omitempty"`
	City      string `json:"city"`
	State     string `json:"state"`
	Zip       string `json:"zip"`
	Country   string `json:"country"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Fax       string `json:"fax,omitempty"`
}

// Street joins both address lines.
func (a Address) Street() string {
	return strings.TrimSpace(a.Address + " " + a.Address2)
}

func (a Address) IsZero() bool {
	return a == Address{}
}

// SplitName fills FirstName and LastName from a single "billing name", split on the first space.
func (a *Address) SplitName(full string) {
	first, last, _ := strings.Cut(strings.TrimSpace(full), " ")
	a.FirstName = first
	a.LastName = strings.TrimSpace(last)
}

type Card struct {
	Number          string `json:"-"`
	ExpirationMonth string `json:"-"`
	ExpirationYear  string `json:"-"`
	Code            string `json:"-"`
}

func (c Card) IsZero() bool {
	return c.Number == ""
}

// ExpirationMMYY is the two-digit month and year, e.g. "0927".
func (c Card) ExpirationMMYY() string {
	return pad2(c.ExpirationMonth) + lastN(c.ExpirationYear, 2)
}

// ExpirationYYYYMM is the profile API form, e.g. "2027-09".
func (c Card) ExpirationYYYYMM() string {
	y := c.ExpirationYear
	if len(y) == 2 {
		y = "20" + y
	}
	return y + "-" + pad2(c.ExpirationMonth)
}

// Masked keeps only the last four digits; the only form a card number is ever logged in.
func (c Card) Masked() string {
	if c.Number == "" {
		return ""
	}
	return "XXXX" + lastN(c.Number, 4)
}

func pad2(s string) string {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		return "0" + s
	}
	return lastN(s, 2)
}

func lastN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}

type Totals struct {
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discounts decimal.Decimal `json:"discounts"`
	Tax       decimal.Decimal `json:"tax"`
	Shipping  decimal.Decimal `json:"shipping"`
	Handling  decimal.Decimal `json:"handling"`
	Insurance decimal.Decimal `json:"insurance"`
}

type LineItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Taxable     bool            `json:"taxable"`
}

// ProfileRef points at a payment method stored with the gateway.
type ProfileRef struct {
	ProfileID         string `json:"profile_id"`
	PaymentProfileID  string `json:"payment_profile_id"`
	ShippingAddressID string `json:"shipping_address_id,omitempty"`
}

type Request struct {
	Address       Address
	Shipping      Address
	Card          Card
	Amount        decimal.Decimal
	Currency      string
	Totals        Totals
	Invoice       string
	Description   string
	Items         []LineItem
	Custom        map[string]string
	TransactionID string
	Profile       *ProfileRef
	SaveProfile   bool
}

// CurrencyOrDefault is the request currency, USD when unset.
func (r Request) CurrencyOrDefault() string {
	if r.Currency == "" {
		return DefaultCurrency
	}
	return strings.ToUpper(r.Currency)
}

type ProfileResult struct {
	ProfileID        string `json:"profile_id,omitempty"`
	PaymentProfileID string `json:"payment_profile_id,omitempty"`
	Success          bool   `json:"success"`
	Message          string `json:"message"`
}

// Result is the uniform outcome of every operation. Err carries the failure class and is never serialized.
type Result struct {
	Success       bool           `json:"success"`
	Message       string         `json:"message"`
	TransactionID string         `json:"transaction_id,omitempty"`
	Action        string         `json:"action,omitempty"`
	Test          bool           `json:"test"`
	Source        string         `json:"source"`
	Raw           string         `json:"-"`
	Profile       *ProfileResult `json:"profile,omitempty"`
	Err           error          `json:"-"`
}

// Failed builds an unsuccessful result whose message is the error text.
func Failed(source string, err error) Result {
	return Result{Success: false, Message: err.Error(), Source: source, Err: err}
}

type Gateway interface {
	Name() string
}

type Authorizer interface {
	Authorize(ctx context.Context, req Request) Result
}

type Capturer interface {
	Capture(ctx context.Context, req Request) Result
}

type Charger interface {
	Charge(ctx context.Context, req Request) Result
}

type Refunder interface {
	Refund(ctx context.Context, req Request) Result
}

type Canceler interface {
	Cancel(ctx context.Context, req Request) Result
}

type Creditor interface {
	Credit(ctx context.Context, req Request) Result
}

// Adapter is a gateway that supports every operation.
type Adapter interface {
	Gateway
	Authorizer
	Capturer
	Charger
	Refunder
	Canceler
	Creditor
}

type CurrencyConverter interface {
	Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error)
}
