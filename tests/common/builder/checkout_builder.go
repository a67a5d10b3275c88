//go:build unit || e2e

package builder

import (
	"encoding/json"
	"time"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/domain/payment"
	reqdto "storefront-checkout/internal/handler/dto/request"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"

	"github.com/google/uuid"
)

type CheckoutBuilder struct {
	SessionID   string
	Email       string
	Shipping    commands.CheckoutAddress
	Billing     commands.CheckoutAddress
	SameAddress bool
	Card        payment.Card
	UserID      *uuid.UUID
}

func NewCheckoutBuilder() *CheckoutBuilder {
	addr := commands.CheckoutAddress{
		Name:    "Jane Doe",
		Address: "1 Market St",
		City:    "San Francisco",
		State:   "CA",
		Zip:     "94105",
		Country: "US",
		Phone:   "4155550100",
	}
	return &CheckoutBuilder{
		SessionID:   uuid.NewString(),
		Email:       "jane@example.com",
		Shipping:    addr,
		Billing:     addr,
		SameAddress: true,
		Card: payment.Card{
			Number:          "4111111111111111",
			ExpirationMonth: "09",
			ExpirationYear:  "2030",
			Code:            "123",
		},
	}
}

func (b *CheckoutBuilder) With(mutate func(*CheckoutBuilder)) *CheckoutBuilder {
	mutate(b)
	return b
}

func (b *CheckoutBuilder) BuildInput() commands.CheckoutInput {
	return commands.CheckoutInput{
		SessionID:   b.SessionID,
		Email:       b.Email,
		Billing:     b.Billing,
		Shipping:    b.Shipping,
		SameAddress: b.SameAddress,
		Card:        b.Card,
		UserID:      b.UserID,
	}
}

func (b *CheckoutBuilder) BuildRequestDTO() reqdto.CheckoutRequest {
	req := reqdto.CheckoutRequest{
		Email:       b.Email,
		Shipping:    addressDTO(b.Shipping),
		SameAddress: b.SameAddress,
		Card: reqdto.CardRequest{
			Number:          b.Card.Number,
			ExpirationMonth: b.Card.ExpirationMonth,
			ExpirationYear:  b.Card.ExpirationYear,
			Code:            b.Card.Code,
		},
	}
	if !b.SameAddress {
		billing := addressDTO(b.Billing)
		req.Billing = &billing
	}
	return req
}

func addressDTO(a commands.CheckoutAddress) reqdto.AddressRequest {
	return reqdto.AddressRequest{
		Name:     a.Name,
		Address:  a.Address,
		Address2: a.Address2,
		City:     a.City,
		State:    a.State,
		Zip:      a.Zip,
		Country:  a.Country,
		Phone:    a.Phone,
	}
}

// CartOf adds each product once, failing the test setup loudly if the cart rejects one.
func CartOf(products ...cart.Product) *cart.Cart {
	c := cart.New(cart.EmptySnapshot())
	for _, p := range products {
		if _, err := c.Add(p, 1); err != nil {
			panic(err)
		}
	}
	return c
}

func CartViewOf(products ...cart.Product) *queries.CartView {
	view, err := queries.BuildCartView(CartOf(products...))
	if err != nil {
		panic(err)
	}
	return view
}

func OrderViewOf(c *cart.Cart, userID *uuid.UUID) *queries.OrderView {
	raw, err := json.Marshal(c.Export())
	if err != nil {
		panic(err)
	}
	return &queries.OrderView{
		ID:            uuid.New(),
		Email:         "jane@example.com",
		TransactionID: "2149186848",
		Total:         c.Total(),
		Shipping:      []byte(`{"name":"Jane Doe","state":"CA"}`),
		UserID:        userID,
		Cart:          raw,
		Test:          true,
		CreatedAt:     time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}
