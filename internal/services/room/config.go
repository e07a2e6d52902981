package room

import "time"

// Room setting bounds
const (
	MinPlayers          = 2
	MaxPlayers          = 12
	MinRoundDuration    = 30
	MaxRoundDuration    = 240
	MinTotalRounds      = 1
	MaxTotalRounds      = 20
	MaxRoomNameLength   = 40
	DefaultRoundSeconds = 80
)

const (
	// RoomCodeLength is the length of generated room ids
	RoomCodeLength = 6
	// RoomCodeAlphabet avoids characters that are easy to confuse
	RoomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// maxCodeAttempts bounds room id generation
	maxCodeAttempts = 32

	gameIDLength   = 12
	gameIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Config holds the orchestrator's tunables
type Config struct {
	GuessPoints        int
	IdleTimeout        time.Duration
	SweepInterval      time.Duration
	DefaultTotalRounds int
	MaxGuessLength     int
}

// DefaultConfig returns the default orchestrator configuration
func DefaultConfig() Config {
	return Config{
		GuessPoints:        100,
		IdleTimeout:        10 * time.Minute,
		SweepInterval:      time.Minute,
		DefaultTotalRounds: 3,
		MaxGuessLength:     100,
	}
}
