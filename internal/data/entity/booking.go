package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid    PaymentStatus = "unpaid"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Booking reserves one (room, date, time) slot. At most one booking per slot
// may be in a non-cancelled status at any time.
type Booking struct {
	ID                 uuid.UUID       `db:"id"`
	RoomID             string          `db:"room_id"`
	MemberID           string          `db:"member_id"`
	BookedDate         time.Time       `db:"booked_date"`
	BookedTime         string          `db:"booked_time"`
	PaymentStatus      PaymentStatus   `db:"payment_status"`
	TotalAmount        decimal.Decimal `db:"total_amount"`
	DatetimeOfBooking  time.Time       `db:"datetime_of_booking"`
	CancellationReason *string         `db:"cancellation_reason"`
	CancelledAt        *time.Time      `db:"cancelled_at"`
}

// Final reports whether the booking reached a terminal payment state.
func (b *Booking) Final() bool {
	return b.PaymentStatus == PaymentStatusPaid || b.PaymentStatus == PaymentStatusCancelled
}
