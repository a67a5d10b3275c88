package api

import (
	"net/http"

	reqdto "storefront-checkout/internal/handler/dto/request"
	resdto "storefront-checkout/internal/handler/dto/response"
	"storefront-checkout/internal/handler/httperr"
	"storefront-checkout/internal/handler/middleware"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cmds commands.CartCommands
	q    queries.CartQueries
}

func NewCartHandler(cmds commands.CartCommands, q queries.CartQueries) *CartHandler {
	return &CartHandler{cmds: cmds, q: q}
}

// @Summary Get cart
// @Description Get the priced cart of the current session
// @Tags cart
// @Produce json
// @Success 200 {object} resdto.CartResponse
// @Failure 500 {object} httperr.Response
// @Router /cart [get]
func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.q.View(c.Request.Context(), middleware.GetCartSession(c))
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartView(view))
}

// @Summary Add cart item
// @Description Add a product with its selected option items; identical selections merge into one line
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.AddCartItemRequest true "Add item request"
// @Success 201 {object} resdto.AddCartItemResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req reqdto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.AddItem(c.Request.Context(), middleware.GetCartSession(c), req.ToInput())
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromAddItemResult(result))
}

// @Summary Update cart quantities
// @Description Set quantities for several lines at once; zero removes a line and unknown keys are ignored
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.UpdateCartItemsRequest true "Quantities by line key"
// @Success 200 {object} resdto.CartAmountsResponse
// @Failure 400 {object} httperr.Response
// @Router /cart/items [patch]
func (h *CartHandler) UpdateQuantities(c *gin.Context) {
	var req reqdto.UpdateCartItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	totals, err := h.cmds.UpdateQuantities(c.Request.Context(), middleware.GetCartSession(c), req.Quantities)
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartTotals(totals))
}

// @Summary Remove cart item
// @Tags cart
// @Param key path string true "Line key"
// @Success 204 "No Content"
// @Failure 404 {object} httperr.Response
// @Router /cart/items/{key} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	if err := h.cmds.RemoveItem(c.Request.Context(), middleware.GetCartSession(c), c.Param("key")); err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Apply promo code
// @Description Redeem a promo code; user-scoped codes require the owning customer's token
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ApplyPromoCodeRequest true "Promo code"
// @Success 200 {object} resdto.CartAmountsResponse
// @Failure 400 {object} httperr.Response
// @Router /cart/discounts [post]
func (h *CartHandler) ApplyPromoCode(c *gin.Context) {
	var req reqdto.ApplyPromoCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	totals, err := h.cmds.ApplyPromoCode(c.Request.Context(), middleware.GetCartSession(c), req.Code, middleware.UserIDPtr(c))
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartTotals(totals))
}

// @Summary Apply state tax
// @Description Apply the state sales tax; charged only when shipping and billing are in the same state
// @Tags cart
// @Accept json
// @Produce json
// @Param request body reqdto.ApplyStateTaxRequest true "States"
// @Success 200 {object} resdto.CartAmountsResponse
// @Failure 400 {object} httperr.Response
// @Router /cart/tax [post]
func (h *CartHandler) ApplyStateTax(c *gin.Context) {
	var req reqdto.ApplyStateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	shipping, billing := req.States()
	totals, err := h.cmds.ApplyStateTax(c.Request.Context(), middleware.GetCartSession(c), shipping, billing)
	if err != nil {
		abortWithUseCaseError(c, err, nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCartTotals(totals))
}
