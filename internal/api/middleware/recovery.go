package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/MaelVB/Drawsyn-sub000/internal/api/apierr"
	"github.com/MaelVB/Drawsyn-sub000/internal/middleware"
)

// Recovery turns a panic into an INTERNAL_ERROR response. A failed socket
// handshake gets a bare 500 since socket clients never read the body.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, r *http.Request, _ any) {
		if websocket.IsWebSocketUpgrade(r) {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
