package middleware

import (
	"net/http"

	"sports-booking/internal/data/entity"
	"sports-booking/pkg/utils"
)

// ActorContext middleware: captures who is calling and from where so every
// mutating operation can record it in the audit trail. The actor id comes
// from the X-Actor-ID header set by the presentation layer; it is persisted,
// not authenticated.
func ActorContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := entity.ActorContext{
				ActorID:    r.Header.Get("X-Actor-ID"),
				SourceAddr: r.RemoteAddr,
				UserAgent:  r.UserAgent(),
			}

			ctx := utils.SetActorContext(r.Context(), actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
