package wire

import (
	"sports-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler) {
	r.Route("/api/bookings", func(r chi.Router) {
		// POST /api/bookings - Book a slot for a member
		r.Post("/", bookingHandler.CreateBooking)

		// GET /api/bookings - List all bookings
		r.Get("/", bookingHandler.ListBookings)

		// POST /api/bookings/{id}/payment - Record payment for a booking
		r.Post("/{id}/payment", bookingHandler.RecordPayment)

		// POST /api/bookings/{id}/cancel - Cancel a booking
		r.Post("/{id}/cancel", bookingHandler.CancelBooking)
	})
}
