package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sports-booking/internal/data/entity"
	"sports-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindAll(ctx context.Context) ([]*entity.Booking, error)

	// FindSlotForUpdate returns the non-cancelled booking holding the slot,
	// if any, locked for the rest of the transaction. Slot locks are taken
	// before member locks, always.
	FindSlotForUpdate(ctx context.Context, roomID string, date time.Time, slot string) (*entity.Booking, error)

	// FindByMemberNewestFirst orders by creation time descending; the
	// cancellation policy engine scans this for the trailing run.
	FindByMemberNewestFirst(ctx context.Context, memberID string) ([]*entity.Booking, error)

	// FindByMemberForUpdate locks all of a member's bookings. Member removal
	// takes these locks before the member-balance lock to keep the global
	// booking-before-member lock order.
	FindByMemberForUpdate(ctx context.Context, memberID string) ([]*entity.Booking, error)

	MarkPaid(ctx context.Context, id uuid.UUID) error
	MarkCancelled(ctx context.Context, id uuid.UUID, reason *string, cancelledAt time.Time) error
	DeleteByMember(ctx context.Context, memberID string) (int64, error)
}

type bookingRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewBookingRepository(db database.Querier, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, room_id, member_id, booked_date, booked_time,
	payment_status, total_amount, datetime_of_booking, cancellation_reason, cancelled_at`

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, room_id, member_id, booked_date, booked_time,
			payment_status, total_amount, datetime_of_booking)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.RoomID,
		booking.MemberID,
		booking.BookedDate,
		booking.BookedTime,
		booking.PaymentStatus,
		booking.TotalAmount,
		booking.DatetimeOfBooking,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrSlotTaken
		}
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("room_id", booking.RoomID),
			zap.String("member_id", booking.MemberID),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

func (r *bookingRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

func (r *bookingRepository) scanOne(ctx context.Context, query string, args ...any) (*entity.Booking, error) {
	var booking entity.Booking
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&booking.ID,
		&booking.RoomID,
		&booking.MemberID,
		&booking.BookedDate,
		&booking.BookedTime,
		&booking.PaymentStatus,
		&booking.TotalAmount,
		&booking.DatetimeOfBooking,
		&booking.CancellationReason,
		&booking.CancelledAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking", zap.Error(err))
		return nil, fmt.Errorf("find booking: %w", err)
	}

	return &booking, nil
}

func (r *bookingRepository) FindSlotForUpdate(ctx context.Context, roomID string, date time.Time, slot string) (*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE room_id = $1 AND booked_date = $2 AND booked_time = $3
		  AND payment_status <> 'cancelled'
		FOR UPDATE
	`
	return r.scanOne(ctx, query, roomID, date, slot)
}

func (r *bookingRepository) FindAll(ctx context.Context) ([]*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings ORDER BY datetime_of_booking DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

func (r *bookingRepository) FindByMemberNewestFirst(ctx context.Context, memberID string) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE member_id = $1
		ORDER BY datetime_of_booking DESC, id DESC
	`

	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		r.log.Error("Failed to find bookings by member",
			zap.Error(err),
			zap.String("member_id", memberID),
		)
		return nil, fmt.Errorf("find bookings by member %s: %w", memberID, err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

func (r *bookingRepository) FindByMemberForUpdate(ctx context.Context, memberID string) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE member_id = $1
		ORDER BY datetime_of_booking DESC, id DESC
		FOR UPDATE
	`

	rows, err := r.db.Query(ctx, query, memberID)
	if err != nil {
		r.log.Error("Failed to lock bookings by member",
			zap.Error(err),
			zap.String("member_id", memberID),
		)
		return nil, fmt.Errorf("lock bookings for member %s: %w", memberID, err)
	}
	defer rows.Close()

	return r.scanMany(rows)
}

func (r *bookingRepository) scanMany(rows pgx.Rows) ([]*entity.Booking, error) {
	var bookings []*entity.Booking
	for rows.Next() {
		var booking entity.Booking
		err := rows.Scan(
			&booking.ID,
			&booking.RoomID,
			&booking.MemberID,
			&booking.BookedDate,
			&booking.BookedTime,
			&booking.PaymentStatus,
			&booking.TotalAmount,
			&booking.DatetimeOfBooking,
			&booking.CancellationReason,
			&booking.CancelledAt,
		)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, &booking)
	}

	return bookings, rows.Err()
}

func (r *bookingRepository) MarkPaid(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE bookings SET payment_status = 'paid' WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to mark booking paid",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("mark booking %s paid: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) MarkCancelled(ctx context.Context, id uuid.UUID, reason *string, cancelledAt time.Time) error {
	query := `
		UPDATE bookings
		SET payment_status = 'cancelled', cancellation_reason = $2, cancelled_at = $3
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, id, reason, cancelledAt)
	if err != nil {
		r.log.Error("Failed to mark booking cancelled",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("mark booking %s cancelled: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", id.String())
	}

	return nil
}

func (r *bookingRepository) DeleteByMember(ctx context.Context, memberID string) (int64, error) {
	query := `DELETE FROM bookings WHERE member_id = $1`

	result, err := r.db.Exec(ctx, query, memberID)
	if err != nil {
		r.log.Error("Failed to delete bookings by member",
			zap.Error(err),
			zap.String("member_id", memberID),
		)
		return 0, fmt.Errorf("delete bookings for member %s: %w", memberID, err)
	}

	return result.RowsAffected(), nil
}
