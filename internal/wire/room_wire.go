package wire

import (
	"sports-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireRoom(r chi.Router, roomHandler *adaptor.RoomHandler, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/rooms", func(r chi.Router) {
		// GET /api/rooms - List the room catalog
		r.Get("/", roomHandler.ListRooms)

		// GET /api/rooms/search - Find available rooms for a slot
		r.Get("/search", bookingHandler.SearchRooms)

		// GET /api/rooms/{id} - Room details
		r.Get("/{id}", roomHandler.GetRoom)
	})
}
