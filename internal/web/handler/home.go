package handler

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/room"
	"github.com/MaelVB/Drawsyn-sub000/internal/web/middleware"
	"github.com/MaelVB/Drawsyn-sub000/internal/web/templates/layout"
	"github.com/MaelVB/Drawsyn-sub000/internal/web/templates/pages"
)

// HomeHandler handles the room browser
type HomeHandler struct {
	orch *room.Orchestrator
}

// NewHomeHandler creates a new HomeHandler
func NewHomeHandler(orch *room.Orchestrator) *HomeHandler {
	return &HomeHandler{orch: orch}
}

// Home renders the room browser
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	rooms := h.orch.ListRooms(r.Context())
	views := make([]model.RoomSummaryView, len(rooms))
	for i, rm := range rooms {
		views[i] = model.NewRoomSummaryView(rm)
	}

	data := pages.HomeData{
		PageData: pageData(r, "Rooms"),
		Rooms:    views,
	}

	render(w, r, http.StatusOK, pages.Home(data))
}

// NotFound renders the 404 page
func NotFound(w http.ResponseWriter, r *http.Request) {
	renderError(w, r, http.StatusNotFound, "Not Found", "This page does not exist.")
}

// pageData collects the per-request layout fields set by middleware
func pageData(r *http.Request, title string) layout.PageData {
	return layout.PageData{
		Title:       title,
		User:        middleware.GetIdentity(r.Context()),
		Flash:       middleware.GetFlash(r.Context()),
		ActiveRooms: middleware.GetActiveRooms(r.Context()),
	}
}

func render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	templ.Handler(c, templ.WithStatus(status)).ServeHTTP(w, r)
}

func renderError(w http.ResponseWriter, r *http.Request, status int, title, message string) {
	render(w, r, status, pages.Error(pageData(r, title), message))
}
