package middleware

import (
	"context"
	"net/http"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/room"
)

const activeRoomsContextKey contextKey = "activeRooms"

// GetActiveRooms retrieves the rooms the signed-in user currently sits in
func GetActiveRooms(ctx context.Context) []model.Presence {
	rooms, _ := ctx.Value(activeRoomsContextKey).([]model.Presence)
	return rooms
}

// ActiveRooms returns middleware that looks up where the signed-in user is playing
// and adds it to the context. Requires an auth middleware to be applied first.
func ActiveRooms(orch *room.Orchestrator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := GetIdentity(r.Context())
			if ident == nil {
				next.ServeHTTP(w, r)
				return
			}

			rooms := orch.FindPresence(r.Context(), ident.UserID)
			ctx := context.WithValue(r.Context(), activeRoomsContextKey, rooms)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
