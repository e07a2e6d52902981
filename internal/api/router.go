package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MaelVB/Drawsyn-sub000/internal/api/handler"
	apimw "github.com/MaelVB/Drawsyn-sub000/internal/api/middleware"
	"github.com/MaelVB/Drawsyn-sub000/internal/api/response"
	"github.com/MaelVB/Drawsyn-sub000/internal/gateway"
	"github.com/MaelVB/Drawsyn-sub000/internal/middleware"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/archive"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/identity"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/room"
	"github.com/MaelVB/Drawsyn-sub000/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger       *slog.Logger
	Orchestrator *room.Orchestrator
	Verifier     identity.Verifier
	Storage      storage.Storage
	Games        *archive.Games // optional, defaults to reading Storage only
	Gateway      *gateway.Gateway
}

// NewRouter creates a new API router with all routes configured.
// The socket endpoint is mounted at /ws when a gateway is configured.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	var notifier handler.RoomListNotifier
	if cfg.Gateway != nil {
		notifier = cfg.Gateway
	}

	// Create handlers
	roomHandler := handler.NewRoomHandler(cfg.Orchestrator, notifier)
	games := cfg.Games
	if games == nil {
		games = archive.NewGames(cfg.Storage)
	}
	archiveHandler := handler.NewArchiveHandler(cfg.Storage, games)
	presenceHandler := handler.NewPresenceHandler(cfg.Orchestrator)

	// Create middleware
	authMiddleware := apimw.Auth(cfg.Verifier)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := apimw.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	api.HandleFunc("/health", healthHandler(cfg)).Methods(http.MethodGet)

	// Room routes; only creation requires a token
	api.HandleFunc("/rooms", roomHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/rooms/{id}", roomHandler.Get).Methods(http.MethodGet)
	api.Handle("/rooms", authMiddleware(http.HandlerFunc(roomHandler.Create))).Methods(http.MethodPost)

	api.HandleFunc("/presence/{user_id}", presenceHandler.Get).Methods(http.MethodGet)

	// Archive routes
	api.HandleFunc("/games", archiveHandler.ListGames).Methods(http.MethodGet)
	api.HandleFunc("/games/{id}", archiveHandler.GetGame).Methods(http.MethodGet)
	api.HandleFunc("/leaderboard", archiveHandler.Leaderboard).Methods(http.MethodGet)

	if cfg.Gateway != nil {
		// Logging wraps recovery here so a panic after the upgrade never writes an HTTP response
		ws := middleware.Logging(cfg.Logger)(recoveryMiddleware(http.HandlerFunc(cfg.Gateway.ServeWS)))
		r.Handle("/ws", ws).Methods(http.MethodGet)
	}

	return r
}

func healthHandler(cfg RouterConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := response.Health{
			Status: "ok",
			Rooms:  len(cfg.Orchestrator.ListRooms(r.Context())),
		}
		if cfg.Gateway != nil {
			resp.Sockets = cfg.Gateway.Hub().Count()
		}
		response.JSON(w, http.StatusOK, resp)
	}
}
