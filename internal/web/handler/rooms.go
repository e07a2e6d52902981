package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/room"
	"github.com/MaelVB/Drawsyn-sub000/internal/web/middleware"
	"github.com/MaelVB/Drawsyn-sub000/internal/web/templates/pages"
)

// RoomListNotifier is told when a room is created from the web form
type RoomListNotifier interface {
	BroadcastRoomList()
}

// RoomHandler handles room pages and the creation form
type RoomHandler struct {
	orch     *room.Orchestrator
	notifier RoomListNotifier
}

// NewRoomHandler creates a new RoomHandler. notifier may be nil.
func NewRoomHandler(orch *room.Orchestrator, notifier RoomListNotifier) *RoomHandler {
	return &RoomHandler{orch: orch, notifier: notifier}
}

// View renders a read-only room snapshot
func (h *RoomHandler) View(w http.ResponseWriter, r *http.Request) {
	roomID := model.RoomID(mux.Vars(r)["id"])

	rm, err := h.orch.GetRoom(r.Context(), roomID)
	if err != nil {
		if errors.Is(err, model.ErrRoomNotFound) {
			renderError(w, r, http.StatusNotFound, "Room not found", "This room has closed or never existed.")
			return
		}
		renderError(w, r, http.StatusInternalServerError, "Error", "Could not load the room.")
		return
	}

	data := pages.RoomData{
		PageData: pageData(r, rm.Name),
		Room:     model.NewRoomView(rm),
	}
	render(w, r, http.StatusOK, pages.Room(data))
}

// Create handles the room creation form
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	ident := middleware.GetIdentity(r.Context())

	if err := r.ParseForm(); err != nil {
		middleware.SetFlash(w, "error", "Invalid form")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	rm, err := h.orch.CreateRoom(r.Context(), room.CreateRequest{
		Name:          r.FormValue("name"),
		MaxPlayers:    formInt(r, "max_players"),
		RoundDuration: formInt(r, "round_duration"),
		TotalRounds:   formInt(r, "total_rounds"),
		HostUserID:    ident.UserID,
	})
	if err != nil {
		message := "Could not create the room"
		if errors.Is(err, model.ErrInvalidConfig) {
			message = err.Error()
		}
		middleware.SetFlash(w, "error", message)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if h.notifier != nil {
		h.notifier.BroadcastRoomList()
	}

	middleware.SetFlash(w, "success", "Room "+string(rm.ID)+" created")
	http.Redirect(w, r, "/rooms/"+string(rm.ID), http.StatusSeeOther)
}

// formInt reads an integer form field; missing or malformed values read as zero
func formInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.FormValue(key))
	if err != nil {
		return 0
	}
	return n
}
