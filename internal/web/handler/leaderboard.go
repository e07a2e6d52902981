package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/archive"
	"github.com/MaelVB/Drawsyn-sub000/internal/storage"
	"github.com/MaelVB/Drawsyn-sub000/internal/web/templates/pages"
)

const (
	leaderboardSize = 20
	recentGames     = 10
)

// ArchiveHandler renders the leaderboard and archived games
type ArchiveHandler struct {
	storage storage.Storage
	games   archive.Reader
	logger  *slog.Logger
}

// NewArchiveHandler creates a new ArchiveHandler
func NewArchiveHandler(storage storage.Storage, games archive.Reader, logger *slog.Logger) *ArchiveHandler {
	return &ArchiveHandler{storage: storage, games: games, logger: logger}
}

// Leaderboard renders the all-time ranking with the most recent games
func (h *ArchiveHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	entries, err := h.storage.TopLeaderboard(r.Context(), leaderboardSize)
	if err != nil {
		h.logger.Error("failed to load leaderboard", slog.String("error", err.Error()))
		renderError(w, r, http.StatusInternalServerError, "Error", "Could not load the leaderboard.")
		return
	}

	games, err := h.storage.ListGameSummaries(r.Context(), recentGames)
	if err != nil {
		h.logger.Error("failed to list games", slog.String("error", err.Error()))
		renderError(w, r, http.StatusInternalServerError, "Error", "Could not load recent games.")
		return
	}

	data := pages.LeaderboardData{
		PageData: pageData(r, "Leaderboard"),
		Entries:  entries,
		Games:    games,
	}
	render(w, r, http.StatusOK, pages.Leaderboard(data))
}

// Game renders one archived game
func (h *ArchiveHandler) Game(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	game, err := h.games.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			renderError(w, r, http.StatusNotFound, "Game not found", "No archived game has this id.")
			return
		}
		h.logger.Error("failed to load game", slog.String("game_id", string(id)), slog.String("error", err.Error()))
		renderError(w, r, http.StatusInternalServerError, "Error", "Could not load the game.")
		return
	}

	data := pages.GameData{
		PageData: pageData(r, game.RoomName),
		Game:     game,
	}
	render(w, r, http.StatusOK, pages.Game(data))
}
