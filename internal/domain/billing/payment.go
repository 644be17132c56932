package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentora/backend/internal/domain/shared"
)

// Payment represents a single payment recorded against an invoice.
// Payments are append-only: once recorded they are never updated or
// deleted, and an invoice's paid total is always the sum of its
// payment rows.
type Payment struct {
	shared.BaseEntity
	TenantID  int64
	InvoiceID uuid.UUID
	Amount    decimal.Decimal
	Method    string
	Reference string
	PaidAt    time.Time
}
