package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/MaelVB/Drawsyn-sub000/internal/gateway"
	sharedmw "github.com/MaelVB/Drawsyn-sub000/internal/middleware"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/archive"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/identity"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/room"
	"github.com/MaelVB/Drawsyn-sub000/internal/storage"
	"github.com/MaelVB/Drawsyn-sub000/internal/web/handler"
	"github.com/MaelVB/Drawsyn-sub000/internal/web/middleware"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger       *slog.Logger
	Orchestrator *room.Orchestrator
	Verifier     identity.Verifier
	Storage      storage.Storage
	Games        *archive.Games   // optional, defaults to reading Storage only
	Gateway      *gateway.Gateway // optional, refreshes socket room lists after a form create
	StaticDir    string           // Path to static files directory
}

// NewRouter creates a new web router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create middleware
	loggingMiddleware := sharedmw.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	flashMiddleware := middleware.Flash()
	authMiddleware := middleware.Auth(cfg.Verifier)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.Verifier)
	activeRoomsMiddleware := middleware.ActiveRooms(cfg.Orchestrator)

	// Apply global middleware to all routes
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)

	var notifier handler.RoomListNotifier
	if cfg.Gateway != nil {
		notifier = cfg.Gateway
	}

	// Create handlers
	homeHandler := handler.NewHomeHandler(cfg.Orchestrator)
	roomHandler := handler.NewRoomHandler(cfg.Orchestrator, notifier)
	games := cfg.Games
	if games == nil {
		games = archive.NewGames(cfg.Storage)
	}
	archiveHandler := handler.NewArchiveHandler(cfg.Storage, games, cfg.Logger)

	// Static files
	if cfg.StaticDir != "" {
		staticHandler := http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticDir)))
		r.PathPrefix("/static/").Handler(staticHandler)
	}

	// Public pages (optional auth for showing the user and their rooms in nav)
	public := r.NewRoute().Subrouter()
	public.Use(flashMiddleware)
	public.Use(optionalAuthMiddleware)
	public.Use(activeRoomsMiddleware)
	public.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)
	public.HandleFunc("/rooms/{id}", roomHandler.View).Methods(http.MethodGet)
	public.HandleFunc("/leaderboard", archiveHandler.Leaderboard).Methods(http.MethodGet)
	public.HandleFunc("/games/{id}", archiveHandler.Game).Methods(http.MethodGet)

	// Protected actions (require auth)
	protected := r.NewRoute().Subrouter()
	protected.Use(authMiddleware)
	protected.HandleFunc("/rooms", roomHandler.Create).Methods(http.MethodPost)

	r.NotFoundHandler = recoveryMiddleware(http.HandlerFunc(handler.NotFound))

	return r
}
