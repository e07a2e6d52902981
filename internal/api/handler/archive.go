package handler

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/MaelVB/Drawsyn-sub000/internal/api/response"
	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/archive"
	"github.com/MaelVB/Drawsyn-sub000/internal/storage"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// ArchiveHandler serves finished games and the leaderboard
type ArchiveHandler struct {
	storage storage.Storage
	games   archive.Reader
}

// NewArchiveHandler creates a new archive handler. Single games are read through games.
func NewArchiveHandler(storage storage.Storage, games archive.Reader) *ArchiveHandler {
	return &ArchiveHandler{storage: storage, games: games}
}

// ListGames handles GET /api/v1/games
func (h *ArchiveHandler) ListGames(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	games, err := h.storage.ListGameSummaries(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.GameList{Games: make([]response.GameSummary, len(games))}
	for i, g := range games {
		resp.Games[i] = response.GameSummaryFromModel(g, false)
	}

	response.JSON(w, http.StatusOK, resp)
}

// GetGame handles GET /api/v1/games/{id}
func (h *ArchiveHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	game, err := h.games.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameSummaryFromModel(game, true))
}

// Leaderboard handles GET /api/v1/leaderboard
func (h *ArchiveHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, err := parseLimit(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	entries, err := h.storage.TopLeaderboard(r.Context(), limit)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.LeaderboardFromModel(entries))
}

// parseLimit reads the optional limit query parameter, capped at maxListLimit
func parseLimit(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return defaultListLimit, nil
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, NewInvalidRequestError("limit must be a positive integer")
	}
	return min(limit, maxListLimit), nil
}
