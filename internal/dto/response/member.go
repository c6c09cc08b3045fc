package response

import (
	"time"

	"sports-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type MemberResult struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Member  *MemberResponse `json:"member,omitempty"`
}

type MemberResponse struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	PaymentDue  decimal.Decimal `json:"payment_due"`
	Status      entity.MemberStatus `json:"status"`
	MemberSince time.Time       `json:"member_since"`
}

// RemoveMemberResult reports whether an outstanding balance survived the
// removal as a pending termination.
type RemoveMemberResult struct {
	Status        string          `json:"status"`
	Message       string          `json:"message"`
	DebtPreserved bool            `json:"debt_preserved"`
	PaymentDue    decimal.Decimal `json:"payment_due"`
}

type PendingTerminationResponse struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	PaymentDue  decimal.Decimal `json:"payment_due"`
	RequestDate time.Time       `json:"request_date"`
}

func MemberToResponse(m *entity.Member) *MemberResponse {
	return &MemberResponse{
		ID:          m.ID,
		Email:       m.Email,
		PaymentDue:  m.PaymentDue,
		Status:      m.Status,
		MemberSince: m.MemberSince,
	}
}

func PendingTerminationToResponse(pt *entity.PendingTermination) *PendingTerminationResponse {
	return &PendingTerminationResponse{
		ID:          pt.ID,
		Email:       pt.Email,
		PaymentDue:  pt.PaymentDue,
		RequestDate: pt.RequestDate,
	}
}
