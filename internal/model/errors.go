package model

import "errors"

// Common errors used across the application
var (
	// Identity errors
	ErrAuthRequired = errors.New("authentication required")

	// Room errors
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room is full")
	ErrInvalidConfig = errors.New("invalid room configuration")
	ErrForbidden     = errors.New("action not allowed")

	// Player errors
	ErrPlayerNotFound = errors.New("player not found")

	// Round errors
	ErrNoWords = errors.New("word list is empty")

	// Archive errors
	ErrGameNotFound = errors.New("game not found")
)
