package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type AuditAction string

const (
	AuditActionInsert AuditAction = "INSERT"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
	AuditActionCancel AuditAction = "CANCEL"
)

// ActorContext identifies who performed a mutation and from where. It is
// passed explicitly by the caller and persisted as-is; the engine does not
// authenticate it.
type ActorContext struct {
	ActorID    string
	SourceAddr string
	UserAgent  string
}

// BookingSnapshot is the before/after image stored in an audit record. It
// includes the owning member's balance so CANCEL records capture the balance
// adjustment alongside the status flip.
type BookingSnapshot struct {
	RoomID        string          `json:"room_id"`
	MemberID      string          `json:"member_id"`
	BookedDate    string          `json:"booked_date"`
	BookedTime    string          `json:"booked_time"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaymentDue    decimal.Decimal `json:"payment_due"`
}

// AuditRecord is append-only and outlives the booking it references.
type AuditRecord struct {
	ID         uuid.UUID       `db:"id"`
	BookingID  uuid.UUID       `db:"booking_id"`
	Action     AuditAction     `db:"action"`
	OldValues  json.RawMessage `db:"old_values"`
	NewValues  json.RawMessage `db:"new_values"`
	Actor      string          `db:"actor"`
	SourceAddr string          `db:"source_addr"`
	UserAgent  string          `db:"user_agent"`
	ChangedAt  time.Time       `db:"changed_at"`
}
