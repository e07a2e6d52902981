package model

import "encoding/json"

// EventType identifies a protocol event exchanged over a socket
type EventType string

const (
	// Room events
	EventRoomList   EventType = "room:list"
	EventRoomCreate EventType = "room:create"
	EventRoomJoin   EventType = "room:join"
	EventRoomJoined EventType = "room:joined"
	EventRoomState  EventType = "room:state"
	EventRoomUpdate EventType = "room:update"
	EventRoomLeave  EventType = "room:leave"
	EventRoomError  EventType = "room:error"
	EventRoomClosed EventType = "room:closed"

	// Game and round events
	EventGameStart      EventType = "game:start"
	EventGameEnded      EventType = "game:ended"
	EventRoundStarted   EventType = "round:started"
	EventRoundWord      EventType = "round:word"
	EventRoundCancelled EventType = "round:cancelled"
	EventRoundEnded     EventType = "round:ended"

	// Drawing events, relayed verbatim
	EventDrawSegment EventType = "draw:segment"
	EventDrawFill    EventType = "draw:fill"

	// Guess events
	EventGuessSubmit    EventType = "guess:submit"
	EventGuessSubmitted EventType = "guess:submitted"

	// Connection events
	EventAuthError EventType = "auth:error"
)

// Envelope is the wire format of every frame in both directions
type Envelope struct {
	Type    EventType       `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Client payloads

// RoomCreatePayload is sent by a client asking for a new room
type RoomCreatePayload struct {
	Name          string `json:"name"`
	MaxPlayers    int    `json:"maxPlayers"`
	RoundDuration int    `json:"roundDuration"`
	TotalRounds   int    `json:"totalRounds,omitempty"`
}

// RoomJoinPayload is sent by a client joining a room
type RoomJoinPayload struct {
	RoomID RoomID `json:"roomId"`
}

// RoomUpdatePayload carries a partial settings update
type RoomUpdatePayload struct {
	MaxPlayers    *int `json:"maxPlayers,omitempty"`
	RoundDuration *int `json:"roundDuration,omitempty"`
	TotalRounds   *int `json:"totalRounds,omitempty"`
}

// GuessSubmitPayload is a free-text guess
type GuessSubmitPayload struct {
	RoomID RoomID `json:"roomId"`
	Text   string `json:"text"`
}

// Server payloads

// RoomListPayload lists rooms available to join
type RoomListPayload struct {
	Rooms []RoomSummaryView `json:"rooms"`
}

// RoomJoinedPayload confirms a join to the caller
type RoomJoinedPayload struct {
	Room     RoomView `json:"room"`
	PlayerID PlayerID `json:"playerId"`
}

// RoomErrorPayload reports a failed request to the originating socket
type RoomErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RoomClosedPayload announces a room was destroyed
type RoomClosedPayload struct {
	RoomID RoomID `json:"roomId"`
}

// RoundStartedPayload announces a new round to the whole room
type RoundStartedPayload struct {
	DrawerID    PlayerID `json:"drawerId"`
	RoundEndsAt int64    `json:"roundEndsAt"` // unix millis
	Revealed    string   `json:"revealed"`
	Number      int      `json:"number"`
	TotalRounds int      `json:"totalRounds"`
}

// RoundWordPayload carries the secret word, private to the drawer
type RoundWordPayload struct {
	Word string `json:"word"`
}

// RoundCancelledPayload announces a round torn down because its drawer left
type RoundCancelledPayload struct {
	Room RoomView `json:"room"`
}

// RoundEndedPayload announces the end of a round; WinnerID is empty on timeout
type RoundEndedPayload struct {
	WinnerID PlayerID `json:"winnerId"`
	Word     string   `json:"word"`
	Room     RoomView `json:"room"`
}

// GameEndedPayload announces that all rounds of a game are consumed
type GameEndedPayload struct {
	Room RoomView `json:"room"`
}

// GuessSubmittedPayload relays an incorrect guess for chat display
type GuessSubmittedPayload struct {
	PlayerID PlayerID `json:"playerId"`
	Text     string   `json:"text"`
}

// AuthErrorPayload is sent right before an unauthenticated socket is closed
type AuthErrorPayload struct {
	Message string `json:"message"`
}
