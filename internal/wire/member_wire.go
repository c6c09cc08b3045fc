package wire

import (
	"sports-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMember(r chi.Router, memberHandler *adaptor.MemberHandler) {
	r.Route("/api/members", func(r chi.Router) {
		// POST /api/members - Register a new member
		r.Post("/", memberHandler.Register)

		// GET /api/members - List all members
		r.Get("/", memberHandler.ListMembers)

		// PUT /api/members/{id}/email - Update member email
		r.Put("/{id}/email", memberHandler.UpdateEmail)

		// PUT /api/members/{id}/password - Update member password
		r.Put("/{id}/password", memberHandler.UpdatePassword)

		// DELETE /api/members/{id} - Remove a member, preserving unpaid debt
		r.Delete("/{id}", memberHandler.RemoveMember)
	})

	// GET /api/pending-terminations - Debts preserved from removed members
	r.Get("/api/pending-terminations", memberHandler.ListPendingTerminations)
}
