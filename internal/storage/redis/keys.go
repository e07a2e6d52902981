package redis

import (
	"fmt"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "drawsyn"

// wordsKey returns the Redis key for the word list SET
func wordsKey() string {
	return fmt.Sprintf("%s:words", keyPrefix)
}

// gameKey returns the Redis key for a finished game summary
func gameKey(id model.GameID) string {
	return fmt.Sprintf("%s:game:%s", keyPrefix, id)
}

// gamesIndexKey returns the Redis key for the LIST of recent game ids, newest first
func gamesIndexKey() string {
	return fmt.Sprintf("%s:idx:games", keyPrefix)
}

// leaderboardKey returns the Redis key for the all-time points ZSET
func leaderboardKey() string {
	return fmt.Sprintf("%s:leaderboard", keyPrefix)
}

// displayNamesKey returns the Redis key for the user_id -> display name HASH
func displayNamesKey() string {
	return fmt.Sprintf("%s:idx:display_names", keyPrefix)
}
