package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MaelVB/Drawsyn-sub000/internal/api/middleware"
	"github.com/MaelVB/Drawsyn-sub000/internal/api/request"
	"github.com/MaelVB/Drawsyn-sub000/internal/api/response"
	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/room"
)

// RoomListNotifier is told when the set of rooms changes outside the socket protocol
type RoomListNotifier interface {
	BroadcastRoomList()
}

// RoomHandler handles room endpoints
type RoomHandler struct {
	orch     *room.Orchestrator
	notifier RoomListNotifier
}

// NewRoomHandler creates a new room handler. notifier may be nil.
func NewRoomHandler(orch *room.Orchestrator, notifier RoomListNotifier) *RoomHandler {
	return &RoomHandler{
		orch:     orch,
		notifier: notifier,
	}
}

// List handles GET /api/v1/rooms
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	rooms := h.orch.ListRooms(r.Context())

	resp := response.RoomList{Rooms: make([]response.RoomSummary, len(rooms))}
	for i, rm := range rooms {
		resp.Rooms[i] = response.RoomSummaryFromModel(rm)
	}

	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/rooms/{id}
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["id"])

	rm, err := h.orch.GetRoom(r.Context(), roomID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RoomFromModel(rm))
}

// Create handles POST /api/v1/rooms. The caller is host until a connected player takes over.
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := middleware.MustGetIdentity(r.Context())

	var req request.CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	rm, err := h.orch.CreateRoom(r.Context(), room.CreateRequest{
		Name:          req.Name,
		MaxPlayers:    req.MaxPlayers,
		RoundDuration: req.RoundDuration,
		TotalRounds:   req.TotalRounds,
		HostUserID:    ident.UserID,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	if h.notifier != nil {
		h.notifier.BroadcastRoomList()
	}

	response.Created(w, "/api/v1/rooms/"+string(rm.ID), response.RoomFromModel(rm))
}
