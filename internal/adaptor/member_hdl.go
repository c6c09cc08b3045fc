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

type MemberHandler struct {
	service usecase.MemberService
	log     *zap.Logger
}

func NewMemberHandler(service usecase.MemberService, log *zap.Logger) *MemberHandler {
	return &MemberHandler{
		service: service,
		log:     log.With(zap.String("handler", "member")),
	}
}

// Register handles POST /api/members
func (h *MemberHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.Register(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "register member")
		return
	}

	if result.Status == string(usecase.OutcomeSuccess) {
		utils.ResponseCreated(w, result.Message, result)
		return
	}
	respondOutcome(w, result.Status, result.Message, result)
}

// UpdateEmail handles PUT /api/members/{id}/email
func (h *MemberHandler) UpdateEmail(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "id")

	var req request.UpdateEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.UpdateEmail(r.Context(), memberID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update member email")
		return
	}

	respondOutcome(w, result.Status, result.Message, result)
}

// UpdatePassword handles PUT /api/members/{id}/password
func (h *MemberHandler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "id")

	var req request.UpdatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	result, err := h.service.UpdatePassword(r.Context(), memberID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update member password")
		return
	}

	respondOutcome(w, result.Status, result.Message, result)
}

// ListMembers handles GET /api/members
func (h *MemberHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	members, err := h.service.ListMembers(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list members")
		return
	}

	utils.ResponseSuccess(w, "success", members)
}

// RemoveMember handles DELETE /api/members/{id}
func (h *MemberHandler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "id")
	if memberID == "" {
		utils.ResponseBadRequest(w, "Member ID is required", nil)
		return
	}

	actor, _ := utils.GetActorContext(r.Context())

	result, err := h.service.RemoveMember(r.Context(), memberID, actor)
	if err != nil {
		h.handleServiceError(w, err, "remove member")
		return
	}

	respondOutcome(w, result.Status, result.Message, result)
}

// ListPendingTerminations handles GET /api/pending-terminations
func (h *MemberHandler) ListPendingTerminations(w http.ResponseWriter, r *http.Request) {
	pts, err := h.service.ListPendingTerminations(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "list pending terminations")
		return
	}

	utils.ResponseSuccess(w, "success", pts)
}

func (h *MemberHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
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
