package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"sports-booking/internal/data/entity"
	"sports-booking/internal/data/repository"
	"sports-booking/internal/dto/request"
	"sports-booking/internal/dto/response"
	"sports-booking/pkg/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type MemberService interface {
	Register(ctx context.Context, req *request.RegisterMemberRequest) (*response.MemberResult, error)
	UpdateEmail(ctx context.Context, memberID string, req *request.UpdateEmailRequest) (*response.MemberResult, error)
	UpdatePassword(ctx context.Context, memberID string, req *request.UpdatePasswordRequest) (*response.MemberResult, error)
	ListMembers(ctx context.Context) ([]*response.MemberResponse, error)
	RemoveMember(ctx context.Context, memberID string, actor entity.ActorContext) (*response.RemoveMemberResult, error)
	ListPendingTerminations(ctx context.Context) ([]*response.PendingTerminationResponse, error)
}

type memberService struct {
	store Store
	log   *zap.Logger
}

func NewMemberService(store Store, log *zap.Logger) MemberService {
	return &memberService{
		store: store,
		log:   log.With(zap.String("service", "member")),
	}
}

func memberFailure(outcome Outcome, message string) *response.MemberResult {
	return &response.MemberResult{Status: string(outcome), Message: message}
}

func (s *memberService) Register(ctx context.Context, req *request.RegisterMemberRequest) (*response.MemberResult, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register member validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	member := &entity.Member{
		ID:           req.ID,
		PasswordHash: string(hash),
		Email:        req.Email,
		PaymentDue:   decimal.Zero,
		Status:       entity.MemberStatusActive,
		MemberSince:  time.Now(),
	}

	var res *response.MemberResult
	err = s.store.WithTx(ctx, func(repo *repository.Repository) error {
		if err := repo.Member.Create(ctx, member); err != nil {
			if errors.Is(err, repository.ErrDuplicateMember) {
				res = memberFailure(OutcomeAlreadyExists, fmt.Sprintf("member id %s or email %s already registered", req.ID, req.Email))
				return errRolledBack
			}
			return err
		}

		res = &response.MemberResult{
			Status:  string(OutcomeSuccess),
			Message: "member registered",
			Member:  response.MemberToResponse(member),
		}
		return nil
	})

	if err != nil && !errors.Is(err, errRolledBack) {
		s.log.Error("Failed to register member",
			zap.Error(err),
			zap.String("member_id", req.ID),
		)
		return nil, fmt.Errorf("register member: %w", err)
	}

	if res.Status == string(OutcomeSuccess) {
		s.log.Info("Member registered", zap.String("member_id", req.ID))
	}

	return res, nil
}

func (s *memberService) UpdateEmail(ctx context.Context, memberID string, req *request.UpdateEmailRequest) (*response.MemberResult, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	var res *response.MemberResult
	err := s.store.WithTx(ctx, func(repo *repository.Repository) error {
		member, err := repo.Member.FindByID(ctx, memberID)
		if err != nil {
			return err
		}
		if member == nil {
			res = memberFailure(OutcomeNotFound, fmt.Sprintf("member %s not found", memberID))
			return errRolledBack
		}

		if err := repo.Member.UpdateEmail(ctx, memberID, req.Email); err != nil {
			if errors.Is(err, repository.ErrDuplicateMember) {
				res = memberFailure(OutcomeAlreadyExists, fmt.Sprintf("email %s already registered", req.Email))
				return errRolledBack
			}
			return err
		}

		member.Email = req.Email
		res = &response.MemberResult{
			Status:  string(OutcomeSuccess),
			Message: "email updated",
			Member:  response.MemberToResponse(member),
		}
		return nil
	})

	if err != nil && !errors.Is(err, errRolledBack) {
		s.log.Error("Failed to update member email",
			zap.Error(err),
			zap.String("member_id", memberID),
		)
		return nil, fmt.Errorf("update member email: %w", err)
	}

	return res, nil
}

func (s *memberService) UpdatePassword(ctx context.Context, memberID string, req *request.UpdatePasswordRequest) (*response.MemberResult, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var res *response.MemberResult
	err = s.store.WithTx(ctx, func(repo *repository.Repository) error {
		member, err := repo.Member.FindByID(ctx, memberID)
		if err != nil {
			return err
		}
		if member == nil {
			res = memberFailure(OutcomeNotFound, fmt.Sprintf("member %s not found", memberID))
			return errRolledBack
		}

		if err := repo.Member.UpdatePassword(ctx, memberID, string(hash)); err != nil {
			return err
		}

		res = &response.MemberResult{
			Status:  string(OutcomeSuccess),
			Message: "password updated",
			Member:  response.MemberToResponse(member),
		}
		return nil
	})

	if err != nil && !errors.Is(err, errRolledBack) {
		s.log.Error("Failed to update member password",
			zap.Error(err),
			zap.String("member_id", memberID),
		)
		return nil, fmt.Errorf("update member password: %w", err)
	}

	return res, nil
}

func (s *memberService) ListMembers(ctx context.Context) ([]*response.MemberResponse, error) {
	var members []*entity.Member
	err := s.store.WithTx(ctx, func(repo *repository.Repository) error {
		var err error
		members, err = repo.Member.FindAll(ctx)
		return err
	})
	if err != nil {
		s.log.Error("Failed to list members", zap.Error(err))
		return nil, fmt.Errorf("list members: %w", err)
	}

	responses := make([]*response.MemberResponse, 0, len(members))
	for _, m := range members {
		responses = append(responses, response.MemberToResponse(m))
	}

	return responses, nil
}

// RemoveMember deletes a member and their bookings. A positive balance is
// snapshotted into the pending termination queue before the member row goes
// away, in the same transaction; the debt must not die with the account.
// Audit records for the removed bookings are kept, with a DELETE entry
// appended per booking.
func (s *memberService) RemoveMember(ctx context.Context, memberID string, actor entity.ActorContext) (*response.RemoveMemberResult, error) {
	var res *response.RemoveMemberResult
	err := s.store.WithTx(ctx, func(repo *repository.Repository) error {
		// Booking locks precede the member-balance lock (global lock order).
		bookings, err := repo.Booking.FindByMemberForUpdate(ctx, memberID)
		if err != nil {
			return err
		}

		member, err := repo.Member.FindByIDForUpdate(ctx, memberID)
		if err != nil {
			return err
		}
		if member == nil {
			res = &response.RemoveMemberResult{
				Status:  string(OutcomeNotFound),
				Message: fmt.Sprintf("member %s not found", memberID),
			}
			return errRolledBack
		}

		preserved := member.PaymentDue.IsPositive()
		if preserved {
			pt := &entity.PendingTermination{
				ID:          member.ID,
				Email:       member.Email,
				PaymentDue:  member.PaymentDue,
				RequestDate: time.Now(),
			}
			if err := repo.PendingTermination.Create(ctx, pt); err != nil {
				return err
			}
		}

		for _, booking := range bookings {
			oldSnap, err := bookingSnapshot(booking, member.PaymentDue)
			if err != nil {
				return err
			}
			if err := repo.Audit.Append(ctx, newAuditRecord(entity.AuditActionDelete, booking.ID, oldSnap, nil, actor)); err != nil {
				return err
			}
		}

		if _, err := repo.Booking.DeleteByMember(ctx, memberID); err != nil {
			return err
		}
		if err := repo.Member.Delete(ctx, memberID); err != nil {
			return err
		}

		message := "member removed"
		if preserved {
			message = fmt.Sprintf("member removed; outstanding balance %s preserved", member.PaymentDue.StringFixed(2))
		}

		res = &response.RemoveMemberResult{
			Status:        string(OutcomeSuccess),
			Message:       message,
			DebtPreserved: preserved,
			PaymentDue:    member.PaymentDue,
		}
		return nil
	})

	if err != nil && !errors.Is(err, errRolledBack) {
		s.log.Error("Failed to remove member",
			zap.Error(err),
			zap.String("member_id", memberID),
		)
		return nil, fmt.Errorf("remove member: %w", err)
	}

	if res.Status == string(OutcomeSuccess) {
		s.log.Info("Member removed",
			zap.String("member_id", memberID),
			zap.Bool("debt_preserved", res.DebtPreserved),
		)
	}

	return res, nil
}

func (s *memberService) ListPendingTerminations(ctx context.Context) ([]*response.PendingTerminationResponse, error) {
	var pts []*entity.PendingTermination
	err := s.store.WithTx(ctx, func(repo *repository.Repository) error {
		var err error
		pts, err = repo.PendingTermination.FindAll(ctx)
		return err
	})
	if err != nil {
		s.log.Error("Failed to list pending terminations", zap.Error(err))
		return nil, fmt.Errorf("list pending terminations: %w", err)
	}

	responses := make([]*response.PendingTerminationResponse, 0, len(pts))
	for _, pt := range pts {
		responses = append(responses, response.PendingTerminationToResponse(pt))
	}

	return responses, nil
}
