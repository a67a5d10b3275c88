package shared

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderRecord is a completed checkout. Cart holds the exported cart snapshot so a receipt can
// be rebuilt exactly as it was charged.
type OrderRecord struct {
	ID            uuid.UUID
	Email         string
	TransactionID string
	Total         decimal.Decimal
	Billing       json.RawMessage
	Shipping      json.RawMessage
	UserID        *uuid.UUID
	Cart          json.RawMessage
	Test          bool
	CreatedAt     time.Time
}
