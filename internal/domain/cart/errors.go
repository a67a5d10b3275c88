package cart

import (
	"fmt"

	"storefront-checkout/internal/pkg/errs"
)

var (
	ErrOutOfStock        = errs.New("out of stock")
	ErrInsufficientStock = errs.New("insufficient stock")
	ErrInvalidQuantity   = errs.Mark(errs.New("quantity must be positive"), errs.ErrValidation)
	ErrLineNotFound      = errs.New("cart line not found")
	ErrMalformedProduct  = errs.New("malformed product snapshot")
)

func stockError(maxQty int) (string, error) {
	if maxQty <= 0 {
		msg := "This item is currently sold out."
		return msg, errs.Mark(errs.Mark(errs.New(msg), ErrOutOfStock), errs.ErrStock)
	}
	verb := "are"
	if maxQty == 1 {
		verb = "is"
	}
	msg := fmt.Sprintf("There %s only %d of this item left.", verb, maxQty)
	return msg, errs.Mark(errs.Mark(errs.New(msg), ErrInsufficientStock), errs.ErrStock)
}
