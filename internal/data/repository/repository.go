package repository

import (
	"context"
	"errors"
	"fmt"

	"sports-booking/pkg/database"

	"go.uber.org/zap"
)

// Sentinel errors mapped from storage constraint violations. Services
// translate them into the operation outcome codes.
var (
	// ErrSlotTaken: another non-cancelled booking already holds the
	// (room, date, time) slot. Raised by the partial unique index at commit
	// time, so concurrent creates cannot both succeed.
	ErrSlotTaken = errors.New("slot already booked")

	// ErrDuplicateMember: member id or email already registered.
	ErrDuplicateMember = errors.New("member already exists")
)

type Repository struct {
	Member             MemberRepository
	Room               RoomRepository
	Booking            BookingRepository
	PendingTermination PendingTerminationRepository
	Audit              AuditRepository

	db  database.PgxIface
	log *zap.Logger
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Member:             NewMemberRepository(db, log),
		Room:               NewRoomRepository(db, log),
		Booking:            NewBookingRepository(db, log),
		PendingTermination: NewPendingTerminationRepository(db, log),
		Audit:              NewAuditRepository(db, log),

		db:  db,
		log: log,
	}
}

// WithTx runs fn against transaction-scoped repositories. Every ledger
// operation goes through here: either all of its reads, writes and the audit
// append commit together, or none do.
func (r *Repository) WithTx(ctx context.Context, fn func(*Repository) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	txRepo := &Repository{
		Member:             NewMemberRepository(tx, r.log),
		Room:               NewRoomRepository(tx, r.log),
		Booking:            NewBookingRepository(tx, r.log),
		PendingTermination: NewPendingTerminationRepository(tx, r.log),
		Audit:              NewAuditRepository(tx, r.log),
	}

	if err := fn(txRepo); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}
