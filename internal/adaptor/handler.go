package adaptor

import (
	"net/http"

	"sports-booking/internal/usecase"
	"sports-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Booking *BookingHandler
	Member  *MemberHandler
	Room    *RoomHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Booking: NewBookingHandler(service.Booking, log),
		Member:  NewMemberHandler(service.Member, log),
		Room:    NewRoomHandler(service.Room, log),
	}
}

// respondOutcome maps the engine's closed outcome taxonomy onto HTTP
// statuses. The outcome code itself travels in the payload so callers can
// branch on it rather than on status codes.
func respondOutcome(w http.ResponseWriter, outcome, message string, data any) {
	switch usecase.Outcome(outcome) {
	case usecase.OutcomeSuccess:
		utils.ResponseSuccess(w, message, data)
	case usecase.OutcomeNotFound, usecase.OutcomeRoomNotFound, usecase.OutcomeMemberNotFound:
		utils.ResponseNotFound(w, message)
	case usecase.OutcomeConflict, usecase.OutcomeAlreadyExists:
		utils.ResponseConflict(w, message)
	case usecase.OutcomeInvalidDate:
		utils.ResponseBadRequest(w, message, nil)
	case usecase.OutcomeAlreadyPaid, usecase.OutcomeCancelled,
		usecase.OutcomeTooLate, usecase.OutcomeAlreadyFinal:
		utils.ResponseUnprocessable(w, message)
	default:
		utils.ResponseInternalError(w, message)
	}
}
