//go:build unit

package api_test

import (
	"net/http"
	"testing"

	"storefront-checkout/internal/handler/api"
	resdto "storefront-checkout/internal/handler/dto/response"
	"storefront-checkout/internal/pkg/errs"
	"storefront-checkout/internal/usecase/queries"
	"storefront-checkout/tests/common/builder"
	"storefront-checkout/tests/common/httptest"
	queriesmock "storefront-checkout/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	mockQueries *queriesmock.MockCartQueries
	userID      uuid.UUID
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockQueries = queriesmock.NewMockCartQueries(s.mockCtrl)
	s.userID = uuid.New()

	optionalAuth := func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			c.Set("user_id", s.userID)
		}
		c.Next()
	}
	s.router.GET("/orders/:id/receipt", optionalAuth, api.NewOrderHandler(s.mockQueries).Receipt)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

func (s *OrderHandlerTestSuite) TestReceipt() {
	c := builder.CartOf(builder.NewProductBuilder().WithPrice("10.00").BuildDomain())
	order := builder.OrderViewOf(c, &s.userID)
	cartView, err := queries.BuildCartView(c)
	s.Require().NoError(err)

	s.Run("success: owner gets the archived cart", func() {
		s.mockQueries.EXPECT().Receipt(gomock.Any(), order.ID, &s.userID).
			Return(&queries.ReceiptView{Order: *order, Cart: *cartView}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+order.ID.String()+"/receipt", nil, "token")

		var body resdto.ReceiptResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(order.ID.String(), body.Order.ID)
		s.Equal("10.00", body.Order.Total)
		s.Require().Len(body.Cart.Lines, 1)
		s.Equal("10.00", body.Cart.Totals.Total)
	})

	s.Run("error: 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/nope/receipt", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 403 for another customer's order", func() {
		s.mockQueries.EXPECT().Receipt(gomock.Any(), order.ID, (*uuid.UUID)(nil)).Return(nil, queries.ErrOrderAccess).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+order.ID.String()+"/receipt", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Forbidden")
	})

	s.Run("error: 404 for an unknown order", func() {
		missing := uuid.New()
		s.mockQueries.EXPECT().Receipt(gomock.Any(), missing, gomock.Any()).
			Return(nil, errs.Mark(errs.New("no rows"), queries.ErrOrderNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+missing.String()+"/receipt", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})
}
