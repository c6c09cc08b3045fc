package usecase

import (
	"context"

	"sports-booking/internal/data/repository"
	"sports-booking/pkg/utils"

	"go.uber.org/zap"
)

// Store gives services transactional access to the repositories. Every
// public operation runs as one WithTx unit so it appears atomic with respect
// to the slot-uniqueness and balance invariants.
type Store interface {
	WithTx(ctx context.Context, fn func(*repository.Repository) error) error
}

type Service struct {
	Booking BookingService
	Member  MemberService
	Room    RoomService
}

func NewService(store Store, config *utils.Config, log *zap.Logger) *Service {
	policy := newCancellationPolicy(config.Booking)

	return &Service{
		Booking: NewBookingService(store, policy, log),
		Member:  NewMemberService(store, log),
		Room:    NewRoomService(store, log),
	}
}
