package request

import (
	"storefront-checkout/internal/domain/payment"
	"storefront-checkout/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type AddressRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Address  string `json:"address" binding:"required,max=60"`
	Address2 string `json:"address_2" binding:"omitempty,max=60"`
	City     string `json:"city" binding:"required,max=40"`
	State    string `json:"state" binding:"required,max=40"`
	Zip      string `json:"zip" binding:"required,max=20"`
	Country  string `json:"country" binding:"omitempty,max=60"`
	Phone    string `json:"phone" binding:"omitempty,max=25"`
}

type CardRequest struct {
	Number          string `json:"number" binding:"required,numeric,min=13,max=16"`
	ExpirationMonth string `json:"expiration_month" binding:"required,numeric,max=2"`
	ExpirationYear  string `json:"expiration_year" binding:"required,numeric,min=2,max=4"`
	Code            string `json:"code" binding:"required,numeric,min=3,max=4"`
}

// CheckoutRequest may omit billing when it matches shipping.
type CheckoutRequest struct {
	Email       string          `json:"email" binding:"required,email"`
	Shipping    AddressRequest  `json:"shipping"`
	Billing     *AddressRequest `json:"billing" binding:"omitempty"`
	SameAddress bool            `json:"same_address"`
	Card        CardRequest     `json:"card"`
}

func (r *CheckoutRequest) ToInput(sessionID string, userID *uuid.UUID) (commands.CheckoutInput, error) {
	in := commands.CheckoutInput{
		SessionID:   sessionID,
		Email:       r.Email,
		SameAddress: r.SameAddress,
		UserID:      userID,
		Card: payment.Card{
			Number:          r.Card.Number,
			ExpirationMonth: r.Card.ExpirationMonth,
			ExpirationYear:  r.Card.ExpirationYear,
			Code:            r.Card.Code,
		},
	}
	if err := copier.Copy(&in.Shipping, &r.Shipping); err != nil {
		return commands.CheckoutInput{}, err
	}
	if r.Billing != nil {
		if err := copier.Copy(&in.Billing, r.Billing); err != nil {
			return commands.CheckoutInput{}, err
		}
	}
	return in, nil
}
