package api

import (
	"net/http"

	reqdto "storefront-checkout/internal/handler/dto/request"
	resdto "storefront-checkout/internal/handler/dto/response"
	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	cmds commands.CheckoutCommands
	q    queries.CartQueries
}

func NewCheckoutHandler(cmds commands.CheckoutCommands, q queries.CartQueries) *CheckoutHandler {
	return &CheckoutHandler{cmds: cmds, q: q}
}

// @Summary Checkout
// @Description Charge the session cart and place the order. When inventory ran short the cart is
// @Description adjusted and returned with status 409 without charging the card.
// @Tags checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /checkout [post]
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	sessionID := middleware.GetCartSession(c)
	in, err := req.ToInput(sessionID, middleware.UserIDPtr(c))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Checkout(c.Request.Context(), in)
	if err != nil {
		var detail any
		if errs.Is(err, errs.ErrStock) {
			// The shopper needs the adjusted cart to decide whether to try again.
			if view, viewErr := h.q.View(c.Request.Context(), sessionID); viewErr == nil {
				detail = resdto.FromCartView(view)
			}
		}
		abortWithUseCaseError(c, err, detail)
		return
	}

	if result.OrderID != nil {
		c.Header("Location", "/api/orders/"+result.OrderID.String()+"/receipt")
	}
	c.JSON(http.StatusCreated, resdto.FromCheckoutResult(result))
}
