package gateway

import (
	"errors"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

// Error codes sent in room:error
const (
	CodeBadRequest       = "BAD_REQUEST"
	CodeAuthRequired     = "AUTH_REQUIRED"
	CodeNotFound         = "NOT_FOUND"
	CodeRoomFull         = "ROOM_FULL"
	CodeInvalidConfig    = "INVALID_CONFIG"
	CodeForbidden        = "FORBIDDEN"
	CodeNotInRoom        = "NOT_IN_ROOM"
	CodeNotEnoughPlayers = "NOT_ENOUGH_PLAYERS"
	CodeRateLimited      = "RATE_LIMITED"
	CodeUnavailable      = "UNAVAILABLE"
	CodeInternal         = "INTERNAL_ERROR"
)

// toRoomError maps a domain error to the payload sent to the originating socket
func toRoomError(err error) model.RoomErrorPayload {
	switch {
	case errors.Is(err, model.ErrAuthRequired):
		return model.RoomErrorPayload{Code: CodeAuthRequired, Message: "Authentication required"}
	case errors.Is(err, model.ErrRoomNotFound):
		return model.RoomErrorPayload{Code: CodeNotFound, Message: "Room not found"}
	case errors.Is(err, model.ErrPlayerNotFound):
		return model.RoomErrorPayload{Code: CodeNotFound, Message: "Player not found"}
	case errors.Is(err, model.ErrRoomFull):
		return model.RoomErrorPayload{Code: CodeRoomFull, Message: "Room is full"}
	case errors.Is(err, model.ErrInvalidConfig):
		return model.RoomErrorPayload{Code: CodeInvalidConfig, Message: err.Error()}
	case errors.Is(err, model.ErrForbidden):
		return model.RoomErrorPayload{Code: CodeForbidden, Message: "Action not allowed"}
	case errors.Is(err, model.ErrNoWords):
		return model.RoomErrorPayload{Code: CodeUnavailable, Message: "No words available"}
	default:
		return model.RoomErrorPayload{Code: CodeInternal, Message: "An internal error occurred"}
	}
}
