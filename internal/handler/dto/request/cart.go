package request

import (
	"storefront-checkout/internal/usecase/commands"

	"github.com/google/uuid"
)

type AddCartItemRequest struct {
	ProductID     uuid.UUID   `json:"product_id" binding:"required"`
	OptionItemIDs []uuid.UUID `json:"option_item_ids" binding:"omitempty,max=20"`
	Qty           int         `json:"qty" binding:"required,min=1,max=999"`
}

func (r *AddCartItemRequest) ToInput() commands.AddItemInput {
	return commands.AddItemInput{
		ProductID:     r.ProductID,
		OptionItemIDs: r.OptionItemIDs,
		Qty:           r.Qty,
	}
}

// UpdateCartItemsRequest maps line keys to new quantities; zero removes the line.
type UpdateCartItemsRequest struct {
	Quantities map[string]int `json:"quantities" binding:"required,min=1,dive,keys,required,endkeys,min=0,max=999"`
}

type ApplyPromoCodeRequest struct {
	Code string `json:"code" binding:"required,max=64"`
}

type ApplyStateTaxRequest struct {
	ShippingState string `json:"shipping_state" binding:"required,max=2"`
	BillingState  string `json:"billing_state" binding:"omitempty,max=2"`
	SameAddress   bool   `json:"same_address"`
}

// States returns the shipping and billing states, billing following shipping when the addresses match.
func (r *ApplyStateTaxRequest) States() (string, string) {
	if r.SameAddress {
		return r.ShippingState, r.ShippingState
	}
	return r.ShippingState, r.BillingState
}
