package repository

import (
	"context"
	"errors"
	"fmt"

	"sports-booking/internal/data/entity"
	"sports-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type MemberRepository interface {
	Create(ctx context.Context, member *entity.Member) error
	FindByID(ctx context.Context, id string) (*entity.Member, error)
	FindByIDForUpdate(ctx context.Context, id string) (*entity.Member, error)
	FindAll(ctx context.Context) ([]*entity.Member, error)
	UpdatePaymentDue(ctx context.Context, id string, amount decimal.Decimal) error
	UpdateEmail(ctx context.Context, id, email string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

type memberRepository struct {
	db  database.Querier
	log *zap.Logger
}

func NewMemberRepository(db database.Querier, log *zap.Logger) MemberRepository {
	return &memberRepository{
		db:  db,
		log: log.With(zap.String("repository", "member")),
	}
}

const memberColumns = `id, password, email, payment_due, status, member_since`

func (r *memberRepository) Create(ctx context.Context, member *entity.Member) error {
	query := `
		INSERT INTO members (id, password, email, payment_due, status, member_since)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.Exec(ctx, query,
		member.ID,
		member.PasswordHash,
		member.Email,
		member.PaymentDue,
		member.Status,
		member.MemberSince,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateMember
		}
		r.log.Error("Failed to create member",
			zap.Error(err),
			zap.String("member_id", member.ID),
		)
		return fmt.Errorf("create member %s: %w", member.ID, err)
	}

	return nil
}

func (r *memberRepository) FindByID(ctx context.Context, id string) (*entity.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1`
	return r.scanOne(ctx, query, id)
}

// FindByIDForUpdate locks the member row for the rest of the transaction.
// Balance reads that precede a balance write must come through here.
func (r *memberRepository) FindByIDForUpdate(ctx context.Context, id string) (*entity.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id)
}

func (r *memberRepository) scanOne(ctx context.Context, query, id string) (*entity.Member, error) {
	var member entity.Member
	err := r.db.QueryRow(ctx, query, id).Scan(
		&member.ID,
		&member.PasswordHash,
		&member.Email,
		&member.PaymentDue,
		&member.Status,
		&member.MemberSince,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find member",
			zap.Error(err),
			zap.String("member_id", id),
		)
		return nil, fmt.Errorf("find member %s: %w", id, err)
	}

	return &member, nil
}

func (r *memberRepository) FindAll(ctx context.Context) ([]*entity.Member, error) {
	query := `SELECT ` + memberColumns + ` FROM members ORDER BY member_since DESC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to list members", zap.Error(err))
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []*entity.Member
	for rows.Next() {
		var member entity.Member
		err := rows.Scan(
			&member.ID,
			&member.PasswordHash,
			&member.Email,
			&member.PaymentDue,
			&member.Status,
			&member.MemberSince,
		)
		if err != nil {
			r.log.Error("Failed to scan member row", zap.Error(err))
			return nil, fmt.Errorf("scan member row: %w", err)
		}
		members = append(members, &member)
	}

	return members, rows.Err()
}

func (r *memberRepository) UpdatePaymentDue(ctx context.Context, id string, amount decimal.Decimal) error {
	query := `UPDATE members SET payment_due = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, amount)
	if err != nil {
		r.log.Error("Failed to update payment due",
			zap.Error(err),
			zap.String("member_id", id),
			zap.String("payment_due", amount.String()),
		)
		return fmt.Errorf("update payment due for member %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("member %s not found", id)
	}

	return nil
}

func (r *memberRepository) UpdateEmail(ctx context.Context, id, email string) error {
	query := `UPDATE members SET email = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, email)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateMember
		}
		r.log.Error("Failed to update member email",
			zap.Error(err),
			zap.String("member_id", id),
		)
		return fmt.Errorf("update email for member %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("member %s not found", id)
	}

	return nil
}

func (r *memberRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	query := `UPDATE members SET password = $2 WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, passwordHash)
	if err != nil {
		r.log.Error("Failed to update member password",
			zap.Error(err),
			zap.String("member_id", id),
		)
		return fmt.Errorf("update password for member %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("member %s not found", id)
	}

	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM members WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete member",
			zap.Error(err),
			zap.String("member_id", id),
		)
		return fmt.Errorf("delete member %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("member %s not found", id)
	}

	r.log.Info("Member deleted", zap.String("member_id", id))
	return nil
}
