package repository

import (
	"context"
	"fmt"

	"sports-booking/internal/data/entity"
	"sports-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PendingTerminationRepository interface {
	Create(ctx context.Context, pt *entity.PendingTermination) error
	FindByID(ctx context.Context, id string) (*entity.PendingTermination, error)
	FindAll(ctx context.Context) ([]*entity.PendingTermination, error)
}

type pendingTerminationRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewPendingTerminationRepository(db database.Querier, log *zap.Logger) PendingTerminationRepository {
	return &pendingTerminationRepository{
		db:  db,
		log: log.With(zap.String("repository", "pending_termination")),
	}
}

func (r *pendingTerminationRepository) Create(ctx context.Context, pt *entity.PendingTermination) error {
	query := `
		INSERT INTO pending_terminations (id, email, payment_due, request_date)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, pt.ID, pt.Email, pt.PaymentDue, pt.RequestDate)
	if err != nil {
		r.log.Error("Failed to create pending termination",
			zap.Error(err),
			zap.String("member_id", pt.ID),
			zap.String("payment_due", pt.PaymentDue.String()),
		)
		return fmt.Errorf("create pending termination for member %s: %w", pt.ID, err)
	}

	return nil
}

func (r *pendingTerminationRepository) FindByID(ctx context.Context, id string) (*entity.PendingTermination, error) {
	query := `
		SELECT id, email, payment_due, request_date, processed_at, processed_by
		FROM pending_terminations
		WHERE id = $1
	`

	var pt entity.PendingTermination
	err := r.db.QueryRow(ctx, query, id).Scan(
		&pt.ID,
		&pt.Email,
		&pt.PaymentDue,
		&pt.RequestDate,
		&pt.ProcessedAt,
		&pt.ProcessedBy,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find pending termination",
			zap.Error(err),
			zap.String("member_id", id),
		)
		return nil, fmt.Errorf("find pending termination %s: %w", id, err)
	}

	return &pt, nil
}

func (r *pendingTerminationRepository) FindAll(ctx context.Context) ([]*entity.PendingTermination, error) {
	query := `
		SELECT id, email, payment_due, request_date, processed_at, processed_by
		FROM pending_terminations
		ORDER BY request_date DESC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list pending terminations", zap.Error(err))
		return nil, fmt.Errorf("list pending terminations: %w", err)
	}
	defer rows.Close()

	var pts []*entity.PendingTermination
	for rows.Next() {
		var pt entity.PendingTermination
		err := rows.Scan(
			&pt.ID,
			&pt.Email,
			&pt.PaymentDue,
			&pt.RequestDate,
			&pt.ProcessedAt,
			&pt.ProcessedBy,
		)
		if err != nil {
			r.log.Error("Failed to scan pending termination row", zap.Error(err))
			return nil, fmt.Errorf("scan pending termination row: %w", err)
		}
		pts = append(pts, &pt)
	}

	return pts, rows.Err()
}
