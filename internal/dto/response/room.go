package response

import (
	"sports-booking/internal/data/entity"

	"github.com/shopspring/decimal"
)

type RoomResponse struct {
	ID       string            `json:"id"`
	RoomType string            `json:"room_type"`
	Price    decimal.Decimal   `json:"price"`
	Capacity int               `json:"capacity"`
	Status   entity.RoomStatus `json:"status"`
}

type RoomSearchResult struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Rooms   []*RoomResponse `json:"rooms"`
}

func RoomToResponse(room *entity.Room) *RoomResponse {
	return &RoomResponse{
		ID:       room.ID,
		RoomType: room.RoomType,
		Price:    room.Price,
		Capacity: room.Capacity,
		Status:   room.Status,
	}
}
