package response

import (
	"time"

	"sports-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

// BookingResult is the outcome envelope of a ledger operation: a status code
// from the closed taxonomy plus a human message, mirroring the @status/@message
// pair the presentation layer expects.
type BookingResult struct {
	Status      string           `json:"status"`
	Message     string           `json:"message"`
	FineApplied bool             `json:"fine_applied,omitempty"`
	Booking     *BookingResponse `json:"booking,omitempty"`
}

type BookingResponse struct {
	ID                string               `json:"id"`
	RoomID            string               `json:"room_id"`
	MemberID          string               `json:"member_id"`
	BookedDate        string               `json:"booked_date"`
	BookedTime        string               `json:"booked_time"`
	PaymentStatus     entity.PaymentStatus `json:"payment_status"`
	TotalAmount       decimal.Decimal      `json:"total_amount"`
	DatetimeOfBooking time.Time            `json:"datetime_of_booking"`
	CancelledAt       *time.Time           `json:"cancelled_at,omitempty"`
}

// BookingListItem carries the fields of the bookings overview (room, slot,
// member, status), the shape of the original show_bookings listing.
type BookingListItem struct {
	BookingID         string               `json:"booking_id"`
	RoomID            string               `json:"room_id"`
	RoomType          string               `json:"room_type"`
	BookedDate        string               `json:"booked_date"`
	BookedTime        string               `json:"booked_time"`
	DatetimeOfBooking time.Time            `json:"datetime_of_booking"`
	MemberID          string               `json:"member_id"`
	PaymentStatus     entity.PaymentStatus `json:"payment_status"`
}

func BookingToResponse(b *entity.Booking) *BookingResponse {
	return &BookingResponse{
		ID:                b.ID.String(),
		RoomID:            b.RoomID,
		MemberID:          b.MemberID,
		BookedDate:        b.BookedDate.Format("2006-01-02"),
		BookedTime:        b.BookedTime,
		PaymentStatus:     b.PaymentStatus,
		TotalAmount:       b.TotalAmount,
		DatetimeOfBooking: b.DatetimeOfBooking,
		CancelledAt:       b.CancelledAt,
	}
}
