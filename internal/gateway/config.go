package gateway

import "time"

// Config holds connection and throttling settings
type Config struct {
	// Time allowed to write a message to the peer
	WriteWait time.Duration
	// Time allowed to read the next pong message from the peer
	PongWait time.Duration
	// Send pings to peer with this period (must be less than PongWait)
	PingPeriod time.Duration
	// Maximum message size allowed from peer
	MaxMessageSize int64
	// Size of each connection's send buffer
	SendBufferSize int

	// Drawing events per second and burst, per socket
	DrawRate  float64
	DrawBurst int
	// Every other event, per socket
	ControlRate  float64
	ControlBurst int

	// How often overdue rounds are checked
	RoundTick time.Duration

	// Allowed Origin headers; empty allows any origin
	AllowedOrigins []string
}

// DefaultConfig returns the default gateway configuration
func DefaultConfig() Config {
	pongWait := 60 * time.Second
	return Config{
		WriteWait:      10 * time.Second,
		PongWait:       pongWait,
		PingPeriod:     (pongWait * 9) / 10,
		MaxMessageSize: 16 * 1024,
		SendBufferSize: 256,
		DrawRate:       120,
		DrawBurst:      240,
		ControlRate:    5,
		ControlBurst:   10,
		RoundTick:      time.Second,
	}
}
