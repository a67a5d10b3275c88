package api

import (
	"net/http"

	"storefront-checkout/internal/domain/cart"
	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

const stockConflictMessage = "Stock changed while your order was being placed. Your card has not been charged."

// statusFor classifies a use case error. Messages of validation, decline and stock failures are
// written for the shopper and are returned verbatim.
func statusFor(err error) (int, string) {
	switch {
	case errs.Is(err, commands.ErrCheckoutInProgress):
		return http.StatusConflict, "Checkout already in progress"
	case errs.Is(err, commands.ErrStockConflict):
		return http.StatusConflict, stockConflictMessage
	case errs.Is(err, errs.ErrStock):
		return http.StatusConflict, errs.Cause(err).Error()
	case errs.Is(err, errs.ErrValidation):
		return http.StatusBadRequest, errs.Cause(err).Error()
	case errs.Is(err, errs.ErrDecline):
		return http.StatusPaymentRequired, errs.Cause(err).Error()
	case errs.Is(err, commands.ErrProductNotFound):
		return http.StatusNotFound, "Product not found"
	case errs.Is(err, cart.ErrLineNotFound):
		return http.StatusNotFound, "Cart item not found"
	case errs.Is(err, queries.ErrOrderNotFound):
		return http.StatusNotFound, "Order not found"
	case errs.Is(err, queries.ErrOrderAccess):
		return http.StatusForbidden, "Forbidden"
	case errs.Is(err, errs.ErrTransport):
		return http.StatusBadGateway, "Payment gateway unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func abortWithUseCaseError(c *gin.Context, err error, detail any) {
	status, msg := statusFor(err)
	httperr.AbortWithError(c, status, err, msg, detail)
}
