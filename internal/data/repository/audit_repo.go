package repository

import (
	"context"
	"fmt"

	"sports-booking/internal/data/entity"
	"sports-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AuditRepository is an append-only sink. There is no update or delete: a
// failed append fails the enclosing transaction, an operation without its
// audit record must never commit.
type AuditRepository interface {
	Append(ctx context.Context, record *entity.AuditRecord) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.AuditRecord, error)
}

type auditRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewAuditRepository(db database.Querier, log *zap.Logger) AuditRepository {
	return &auditRepository{
		db:  db,
		log: log.With(zap.String("repository", "audit")),
	}
}

func (r *auditRepository) Append(ctx context.Context, record *entity.AuditRecord) error {
	query := `
		INSERT INTO booking_audit (id, booking_id, action, old_values, new_values,
			actor, source_addr, user_agent, changed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		record.ID,
		record.BookingID,
		record.Action,
		record.OldValues,
		record.NewValues,
		record.Actor,
		record.SourceAddr,
		record.UserAgent,
		record.ChangedAt,
	)

	if err != nil {
		r.log.Error("Failed to append audit record",
			zap.Error(err),
			zap.String("booking_id", record.BookingID.String()),
			zap.String("action", string(record.Action)),
		)
		return fmt.Errorf("append audit record for booking %s: %w", record.BookingID.String(), err)
	}

	return nil
}

func (r *auditRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.AuditRecord, error) {
	query := `
		SELECT id, booking_id, action, old_values, new_values,
			actor, source_addr, user_agent, changed_at
		FROM booking_audit
		WHERE booking_id = $1
		ORDER BY changed_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find audit records",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find audit records for booking %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var records []*entity.AuditRecord
	for rows.Next() {
		var record entity.AuditRecord
		err := rows.Scan(
			&record.ID,
			&record.BookingID,
			&record.Action,
			&record.OldValues,
			&record.NewValues,
			&record.Actor,
			&record.SourceAddr,
			&record.UserAgent,
			&record.ChangedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan audit row", zap.Error(err))
			return nil, fmt.Errorf("scan audit row: %w", err)
		}
		records = append(records, &record)
	}

	return records, rows.Err()
}
