package response

import (
	"encoding/json"

	"storefront-checkout/internal/pkg/money"
	"storefront-checkout/internal/usecase/commands"
	"storefront-checkout/internal/usecase/queries"
)

type CheckoutResponse struct {
	OrderID       string `json:"order_id,omitempty"`
	TransactionID string `json:"transaction_id"`
	Total         string `json:"total"`
	Test          bool   `json:"test"`
}

func FromCheckoutResult(r *commands.CheckoutResult) *CheckoutResponse {
	res := &CheckoutResponse{
		TransactionID: r.TransactionID,
		Total:         money.Format(r.Total),
		Test:          r.Test,
	}
	if r.OrderID != nil {
		res.OrderID = r.OrderID.String()
	}
	return res
}

type OrderResponse struct {
	ID            string          `json:"id"`
	Email         string          `json:"email"`
	TransactionID string          `json:"transaction_id"`
	Total         string          `json:"total"`
	Billing       json.RawMessage `json:"billing,omitempty"`
	Shipping      json.RawMessage `json:"shipping"`
	Test          bool            `json:"test"`
	CreatedAt     int64           `json:"created_at"`
}

type ReceiptResponse struct {
	Order OrderResponse `json:"order"`
	Cart  *CartResponse `json:"cart"`
}

func FromReceiptView(v *queries.ReceiptView) *ReceiptResponse {
	return &ReceiptResponse{
		Order: OrderResponse{
			ID:            v.Order.ID.String(),
			Email:         v.Order.Email,
			TransactionID: v.Order.TransactionID,
			Total:         money.Format(v.Order.Total),
			Billing:       v.Order.Billing,
			Shipping:      v.Order.Shipping,
			Test:          v.Order.Test,
			CreatedAt:     v.Order.CreatedAt.Unix(),
		},
		Cart: FromCartView(&v.Cart),
	}
}
