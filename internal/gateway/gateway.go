package gateway

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/identity"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/room"
)

// Gateway maps live sockets to sessions and translates protocol events into orchestrator calls
type Gateway struct {
	orch     *room.Orchestrator
	verifier identity.Verifier
	hub      *Hub
	sessions *Sessions
	cfg      Config
	logger   *slog.Logger
	upgrader websocket.Upgrader
}

// New creates a Gateway and subscribes it to idle room evictions
func New(orch *room.Orchestrator, verifier identity.Verifier, cfg Config, logger *slog.Logger) *Gateway {
	logger = logger.With(slog.String("component", "gateway"))
	g := &Gateway{
		orch:     orch,
		verifier: verifier,
		hub:      NewHub(logger),
		sessions: NewSessions(),
		cfg:      cfg,
		logger:   logger,
	}
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     g.checkOrigin,
	}
	orch.OnEvicted(g.roomEvicted)
	return g
}

// Hub returns the gateway's broadcast hub
func (g *Gateway) Hub() *Hub {
	return g.hub
}

// ServeWS authenticates and upgrades a connection, then runs it until the peer goes away
func (g *Gateway) ServeWS(w http.ResponseWriter, r *http.Request) {
	ws, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Warn("websocket upgrade failed", slog.String("error", err.Error()))
		return
	}

	ident, err := g.verifier.Verify(r.Context(), extractToken(r))
	if err != nil {
		g.rejectAuth(ws, err)
		return
	}

	conn := newConn(model.SocketID(uuid.NewString()), ws, g.cfg, g.logger)

	// The session must exist before anything is emitted to or read from this socket
	g.sessions.Register(conn.id, ident)
	g.hub.Add(conn)

	g.logger.Info("socket connected",
		slog.String("socket_id", string(conn.id)),
		slog.String("user_id", string(ident.UserID)),
	)

	go conn.writePump()
	g.sendRoomList(conn)

	conn.readPump(g.handleFrame)
	g.disconnect(conn)
}

// Shutdown closes every live connection
func (g *Gateway) Shutdown() {
	g.hub.CloseAll()
}

func (g *Gateway) rejectAuth(ws *websocket.Conn, err error) {
	g.logger.Info("socket rejected", slog.String("error", err.Error()))

	data, encErr := encode(model.EventAuthError, model.AuthErrorPayload{Message: "Authentication required"})
	if encErr == nil {
		_ = ws.WriteMessage(websocket.TextMessage, data)
	}
	_ = ws.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "authentication required"))
	_ = ws.Close()
}

// extractToken prefers the dedicated token query field, then a bearer Authorization header
func extractToken(r *http.Request) string {
	if token := r.URL.Query().Get("token"); token != "" {
		return token
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func (g *Gateway) checkOrigin(r *http.Request) bool {
	if len(g.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range g.cfg.AllowedOrigins {
		if strings.EqualFold(origin, allowed) {
			return true
		}
	}
	return false
}
