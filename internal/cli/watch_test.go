package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

func envelope(t *testing.T, eventType model.EventType, payload any) model.Envelope {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return model.Envelope{Type: eventType, Payload: raw}
}

func TestSocketTracksJoinedRoom(t *testing.T) {
	sock := &socket{}

	sock.observe(envelope(t, model.EventRoomJoined, model.RoomJoinedPayload{
		Room:     model.RoomView{ID: "ROOM01"},
		PlayerID: "p1",
	}))
	assert.Equal(t, model.RoomID("ROOM01"), sock.room())

	// Another room closing leaves the binding alone
	sock.observe(envelope(t, model.EventRoomClosed, model.RoomClosedPayload{RoomID: "ROOM02"}))
	assert.Equal(t, model.RoomID("ROOM01"), sock.room())

	sock.observe(envelope(t, model.EventRoomClosed, model.RoomClosedPayload{RoomID: "ROOM01"}))
	assert.Empty(t, sock.room())
}

func TestInputEventGuessUsesJoinedRoom(t *testing.T) {
	sock := &socket{}
	sock.observe(envelope(t, model.EventRoomJoined, model.RoomJoinedPayload{Room: model.RoomView{ID: "ROOM07"}}))

	eventType, payload, ok := inputEvent("  lune ", sock.room())

	require.True(t, ok)
	assert.Equal(t, model.EventGuessSubmit, eventType)
	assert.Equal(t, model.GuessSubmitPayload{RoomID: "ROOM07", Text: "lune"}, payload)
}

func TestInputEventCommands(t *testing.T) {
	tests := []struct {
		line      string
		eventType model.EventType
		payload   any
	}{
		{"/start", model.EventGameStart, nil},
		{"/leave", model.EventRoomLeave, nil},
		{"/join ROOM03", model.EventRoomJoin, model.RoomJoinPayload{RoomID: "ROOM03"}},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			eventType, payload, ok := inputEvent(tt.line, "")
			require.True(t, ok)
			assert.Equal(t, tt.eventType, eventType)
			assert.Equal(t, tt.payload, payload)
		})
	}

	_, _, ok := inputEvent("   ", "ROOM01")
	assert.False(t, ok)
}
