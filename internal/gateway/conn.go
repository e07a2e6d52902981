package gateway

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

// Conn is one live WebSocket connection
type Conn struct {
	id     model.SocketID
	ws     *websocket.Conn
	cfg    Config
	logger *slog.Logger

	send chan []byte
	done chan struct{}

	mu     sync.Mutex
	closed bool

	drawLimiter    *rate.Limiter
	controlLimiter *rate.Limiter

	connectedAt time.Time
}

func newConn(id model.SocketID, ws *websocket.Conn, cfg Config, logger *slog.Logger) *Conn {
	return &Conn{
		id:             id,
		ws:             ws,
		cfg:            cfg,
		logger:         logger.With(slog.String("socket_id", string(id))),
		send:           make(chan []byte, cfg.SendBufferSize),
		done:           make(chan struct{}),
		drawLimiter:    rate.NewLimiter(rate.Limit(cfg.DrawRate), cfg.DrawBurst),
		controlLimiter: rate.NewLimiter(rate.Limit(cfg.ControlRate), cfg.ControlBurst),
		connectedAt:    time.Now(),
	}
}

// ID returns the socket id
func (c *Conn) ID() model.SocketID {
	return c.id
}

// Send queues an event for this connection
func (c *Conn) Send(eventType model.EventType, payload any) error {
	data, err := encode(eventType, payload)
	if err != nil {
		return err
	}
	c.enqueue(data)
	return nil
}

// enqueue never blocks; a slow client loses messages rather than stalling a room
func (c *Conn) enqueue(data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}

	select {
	case c.send <- data:
	default:
		c.logger.Warn("send buffer full, message dropped")
	}
}

// Close asks the write pump to send a close frame and release the socket. Safe to call more than once.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true
	close(c.done)
	return nil
}

// Done is closed once the connection starts shutting down
func (c *Conn) Done() <-chan struct{} {
	return c.done
}

// readPump feeds inbound frames to handle until the peer goes away
func (c *Conn) readPump(handle func(*Conn, []byte)) {
	c.ws.SetReadLimit(c.cfg.MaxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(c.cfg.PongWait))
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Debug("websocket read error", slog.String("error", err.Error()))
			}
			return
		}
		handle(c, message)
	}
}

// writePump drains the send buffer and keeps the connection alive with pings
func (c *Conn) writePump() {
	ticker := time.NewTicker(c.cfg.PingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.Close()
		_ = c.ws.Close()
	}()

	for {
		select {
		case <-c.done:
			c.flush()
			return
		case message := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// flush writes whatever is still queued, then a close frame
func (c *Conn) flush() {
	for {
		select {
		case message := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		default:
			_ = c.ws.SetWriteDeadline(time.Now().Add(c.cfg.WriteWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func encode(eventType model.EventType, payload any) ([]byte, error) {
	env := model.Envelope{Type: eventType}
	switch p := payload.(type) {
	case nil:
	case json.RawMessage:
		env.Payload = p
	default:
		raw, err := json.Marshal(p)
		if err != nil {
			return nil, err
		}
		env.Payload = raw
	}
	return json.Marshal(env)
}
