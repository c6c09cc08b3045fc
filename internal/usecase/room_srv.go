package usecase

import (
	"context"
	"fmt"

	"sports-booking/internal/data/entity"
	"sports-booking/internal/data/repository"
	"sports-booking/internal/dto/response"

	"go.uber.org/zap"
)

// RoomService exposes the read-only room catalog. Catalog mutations belong
// to an administrative path outside the booking engine.
type RoomService interface {
	ListRooms(ctx context.Context) ([]*response.RoomResponse, error)
	GetRoom(ctx context.Context, roomID string) (*response.RoomResponse, error)
}

type roomService struct {
	store Store
	log   *zap.Logger
}

func NewRoomService(store Store, log *zap.Logger) RoomService {
	return &roomService{
		store: store,
		log:   log.With(zap.String("service", "room")),
	}
}

func (s *roomService) ListRooms(ctx context.Context) ([]*response.RoomResponse, error) {
	var rooms []*entity.Room
	err := s.store.WithTx(ctx, func(repo *repository.Repository) error {
		var err error
		rooms, err = repo.Room.FindAll(ctx)
		return err
	})
	if err != nil {
		s.log.Error("Failed to list rooms", zap.Error(err))
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	responses := make([]*response.RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		responses = append(responses, response.RoomToResponse(room))
	}

	return responses, nil
}

func (s *roomService) GetRoom(ctx context.Context, roomID string) (*response.RoomResponse, error) {
	var room *entity.Room
	err := s.store.WithTx(ctx, func(repo *repository.Repository) error {
		var err error
		room, err = repo.Room.FindByID(ctx, roomID)
		return err
	})
	if err != nil {
		s.log.Error("Failed to get room",
			zap.Error(err),
			zap.String("room_id", roomID),
		)
		return nil, fmt.Errorf("get room %s: %w", roomID, err)
	}
	if room == nil {
		return nil, fmt.Errorf("room %s not found", roomID)
	}

	return response.RoomToResponse(room), nil
}
