package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type MemberStatus string

const (
	MemberStatusActive     MemberStatus = "active"
	MemberStatusSuspended  MemberStatus = "suspended"
	MemberStatusTerminated MemberStatus = "terminated"
)

// Member is the ledger side of an account. PaymentDue is owned by the
// booking/payment/cancellation operations and is never set by callers.
type Member struct {
	ID           string          `db:"id"`
	PasswordHash string          `db:"password"`
	Email        string          `db:"email"`
	PaymentDue   decimal.Decimal `db:"payment_due"`
	Status       MemberStatus    `db:"status"`
	MemberSince  time.Time       `db:"member_since"`
}
