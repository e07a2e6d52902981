package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MaelVB/Drawsyn-sub000/internal/api/response"
	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/room"
)

// PresenceHandler answers where a user is playing, for the social graph
type PresenceHandler struct {
	orch *room.Orchestrator
}

// NewPresenceHandler creates a new presence handler
func NewPresenceHandler(orch *room.Orchestrator) *PresenceHandler {
	return &PresenceHandler{orch: orch}
}

// Get handles GET /api/v1/presence/{user_id}
func (h *PresenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := model.UserID(mux.Vars(r)["user_id"])

	rows := h.orch.FindPresence(r.Context(), userID)
	response.JSON(w, http.StatusOK, response.PresenceFromModel(userID, rows))
}
