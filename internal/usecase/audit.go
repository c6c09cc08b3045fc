package usecase

import (
	"encoding/json"
	"fmt"
	"time"

	"sports-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// bookingSnapshot captures a booking plus the owning member's balance at
// that instant, serialized for the audit trail.
func bookingSnapshot(b *entity.Booking, paymentDue decimal.Decimal) (json.RawMessage, error) {
	snap := entity.BookingSnapshot{
		RoomID:        b.RoomID,
		MemberID:      b.MemberID,
		BookedDate:    b.BookedDate.Format("2006-01-02"),
		BookedTime:    b.BookedTime,
		PaymentStatus: b.PaymentStatus,
		TotalAmount:   b.TotalAmount,
		PaymentDue:    paymentDue,
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal booking snapshot: %w", err)
	}
	return raw, nil
}

func newAuditRecord(action entity.AuditAction, bookingID uuid.UUID, oldValues, newValues json.RawMessage, actor entity.ActorContext) *entity.AuditRecord {
	return &entity.AuditRecord{
		ID:         uuid.New(),
		BookingID:  bookingID,
		Action:     action,
		OldValues:  oldValues,
		NewValues:  newValues,
		Actor:      actor.ActorID,
		SourceAddr: actor.SourceAddr,
		UserAgent:  actor.UserAgent,
		ChangedAt:  time.Now(),
	}
}
