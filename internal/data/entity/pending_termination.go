package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PendingTermination preserves the outstanding balance of a member removed
// while still in debt. The ID is the former member id.
type PendingTermination struct {
	ID          string          `db:"id"`
	Email       string          `db:"email"`
	PaymentDue  decimal.Decimal `db:"payment_due"`
	RequestDate time.Time       `db:"request_date"`
	ProcessedAt *time.Time      `db:"processed_at"`
	ProcessedBy *string         `db:"processed_by"`
}
