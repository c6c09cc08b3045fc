package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"sports-booking/internal/dto/request"
	"sports-booking/internal/usecase"
	"sports-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	actor, _ := utils.GetActorContext(r.Context())

	result, err := h.service.CreateBooking(r.Context(), &req, actor)
	if err != nil {
		h.handleServiceError(w, err, "create booking")
		return
	}

	if result.Status == string(usecase.OutcomeSuccess) {
		utils.ResponseCreated(w, result.Message, result)
		return
	}
	respondOutcome(w, result.Status, result.Message, result)
}

// RecordPayment handles POST /api/bookings/{id}/payment
func (h *BookingHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	actor, _ := utils.GetActorContext(r.Context())

	result, err := h.service.RecordPayment(r.Context(), bookingID, actor)
	if err != nil {
		h.handleServiceError(w, err, "record payment")
		return
	}

	respondOutcome(w, result.Status, result.Message, result)
}

// CancelBooking handles POST /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	// Body is optional; a cancellation reason may be attached.
	var req request.CancelBookingRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	actor, _ := utils.GetActorContext(r.Context())

	result, err := h.service.CancelBooking(r.Context(), bookingID, &req, actor)
	if err != nil {
		h.handleServiceError(w, err, "cancel booking")
		return
	}

	respondOutcome(w, result.Status, result.Message, result)
}

// SearchRooms handles GET /api/rooms/search?room_type=...&date=...&time=...
func (h *BookingHandler) SearchRooms(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.SearchRoomsRequest{
		RoomType: query.Get("room_type"),
		Date:     query.Get("date"),
		Time:     query.Get("time"),
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.SearchAvailableRooms(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "search rooms")
		return
	}

	respondOutcome(w, result.Status, result.Message, result)
}

// ListBookings handles GET /api/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.ListBookings(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// handleServiceError handles errors untuk booking operations
func (h *BookingHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, string(usecase.OutcomeError))
	}
}
