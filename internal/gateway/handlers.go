package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/room"
)

// handleFrame decodes one inbound frame and dispatches it. A failing handler never takes the socket down.
func (g *Gateway) handleFrame(c *Conn, data []byte) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Error("panic handling event",
				slog.String("socket_id", string(c.id)),
				slog.String("panic", fmt.Sprint(r)),
			)
			g.sendError(c, errors.New("panic"))
		}
	}()

	var env model.Envelope
	if err := json.Unmarshal(data, &env); err != nil || env.Type == "" {
		_ = c.Send(model.EventRoomError, model.RoomErrorPayload{Code: CodeBadRequest, Message: "Invalid message format"})
		return
	}

	g.dispatch(context.Background(), c, env)
}

func (g *Gateway) dispatch(ctx context.Context, c *Conn, env model.Envelope) {
	sess, ok := g.sessions.Get(c.id)
	if !ok {
		g.sendError(c, model.ErrAuthRequired)
		return
	}

	switch env.Type {
	case model.EventDrawSegment, model.EventDrawFill:
		if !c.drawLimiter.Allow() {
			return
		}
		g.handleDraw(ctx, c, sess, env)
		return
	}

	if !c.controlLimiter.Allow() {
		_ = c.Send(model.EventRoomError, model.RoomErrorPayload{Code: CodeRateLimited, Message: "Too many requests"})
		return
	}

	switch env.Type {
	case model.EventRoomList:
		g.sendRoomList(c)
	case model.EventRoomCreate:
		g.handleCreate(ctx, c, sess, env.Payload)
	case model.EventRoomJoin:
		g.handleJoin(ctx, c, sess, env.Payload)
	case model.EventRoomLeave:
		g.handleLeave(ctx, c, sess)
	case model.EventRoomUpdate:
		g.handleUpdate(ctx, c, sess, env.Payload)
	case model.EventGameStart:
		g.handleStart(ctx, c, sess)
	case model.EventGuessSubmit:
		g.handleGuess(ctx, c, sess, env.Payload)
	default:
		_ = c.Send(model.EventRoomError, model.RoomErrorPayload{Code: CodeBadRequest, Message: "Unknown event type"})
	}
}

func (g *Gateway) handleCreate(ctx context.Context, c *Conn, sess Session, raw json.RawMessage) {
	var payload model.RoomCreatePayload
	if !g.decode(c, raw, &payload) {
		return
	}

	created, err := g.orch.CreateRoom(ctx, room.CreateRequest{
		Name:          payload.Name,
		MaxPlayers:    payload.MaxPlayers,
		RoundDuration: payload.RoundDuration,
		TotalRounds:   payload.TotalRounds,
		HostUserID:    sess.UserID,
	})
	if err != nil {
		g.sendError(c, err)
		return
	}

	g.join(ctx, c, sess, created.ID)
	g.BroadcastRoomList()
}

func (g *Gateway) handleJoin(ctx context.Context, c *Conn, sess Session, raw json.RawMessage) {
	var payload model.RoomJoinPayload
	if !g.decode(c, raw, &payload) {
		return
	}
	if payload.RoomID == "" {
		_ = c.Send(model.EventRoomError, model.RoomErrorPayload{Code: CodeBadRequest, Message: "roomId is required"})
		return
	}

	g.join(ctx, c, sess, payload.RoomID)
}

// join binds the socket to the room, leaving any other room it was bound to first
func (g *Gateway) join(ctx context.Context, c *Conn, sess Session, roomID model.RoomID) {
	if sess.Bound() && sess.RoomID != roomID {
		g.leave(ctx, c, sess)
		sess.RoomID, sess.PlayerID = "", ""
	}

	joined, player, err := g.orch.JoinRoom(ctx, roomID, sess.UserID, sess.DisplayName)
	if err != nil {
		g.sendError(c, err)
		return
	}

	g.sessions.Bind(c.id, roomID, player.ID)
	g.hub.Subscribe(RoomGroup(roomID), c)
	g.hub.Subscribe(PlayerGroup(player.ID), c)

	view := model.NewRoomView(joined)
	_ = c.Send(model.EventRoomJoined, model.RoomJoinedPayload{Room: view, PlayerID: player.ID})
	g.hub.Emit(RoomGroup(roomID), model.EventRoomState, view)

	// Resynchronize a client arriving mid-round
	if joined.Round != nil {
		_ = c.Send(model.EventRoundStarted, roundStarted(joined))
		if joined.Round.DrawerID == player.ID {
			_ = c.Send(model.EventRoundWord, model.RoundWordPayload{Word: joined.Round.Word})
		}
	}
}

func (g *Gateway) handleLeave(ctx context.Context, c *Conn, sess Session) {
	if !sess.Bound() {
		_ = c.Send(model.EventRoomError, model.RoomErrorPayload{Code: CodeNotInRoom, Message: "Not in a room"})
		return
	}
	g.leave(ctx, c, sess)
}

// leave removes the session's player from its room and reports the outcome
func (g *Gateway) leave(ctx context.Context, c *Conn, sess Session) {
	g.sessions.Unbind(c.id)
	g.hub.Unsubscribe(RoomGroup(sess.RoomID), c)
	g.hub.Unsubscribe(PlayerGroup(sess.PlayerID), c)

	result, err := g.orch.LeaveRoom(ctx, sess.RoomID, sess.PlayerID)
	if err != nil {
		g.sendError(c, err)
		return
	}
	g.reportDeparture(sess.RoomID, result)
}

// disconnect tears down a socket's session. A player still reachable through another socket stays connected.
func (g *Gateway) disconnect(c *Conn) {
	_ = c.Close()
	g.hub.Remove(c)

	sess, ok := g.sessions.Remove(c.id)
	if !ok {
		return
	}

	g.logger.Info("socket disconnected",
		slog.String("socket_id", string(c.id)),
		slog.String("user_id", string(sess.UserID)),
		slog.Duration("connection_duration", time.Since(c.connectedAt)),
	)

	if !sess.Bound() || g.sessions.BoundElsewhere(sess.RoomID, sess.PlayerID, c.id) {
		return
	}

	result, err := g.orch.MarkDisconnected(context.Background(), sess.RoomID, sess.PlayerID)
	if err != nil {
		if !errors.Is(err, model.ErrRoomNotFound) && !errors.Is(err, model.ErrPlayerNotFound) {
			g.logger.Error("failed to mark player disconnected",
				slog.String("room_id", string(sess.RoomID)),
				slog.String("error", err.Error()),
			)
		}
		return
	}
	g.reportDeparture(sess.RoomID, result)
}

func (g *Gateway) reportDeparture(roomID model.RoomID, result room.LeaveResult) {
	if result.Deleted {
		g.sessions.UnbindRoom(roomID)
		g.hub.EmitAll(model.EventRoomClosed, model.RoomClosedPayload{RoomID: roomID})
		return
	}

	view := model.NewRoomView(result.Room)
	if result.RoundCancelled {
		g.hub.Emit(RoomGroup(roomID), model.EventRoundCancelled, model.RoundCancelledPayload{Room: view})
	}
	g.hub.Emit(RoomGroup(roomID), model.EventRoomState, view)
}

func (g *Gateway) handleUpdate(ctx context.Context, c *Conn, sess Session, raw json.RawMessage) {
	var payload model.RoomUpdatePayload
	if !g.decode(c, raw, &payload) {
		return
	}
	if !g.requireHost(ctx, c, sess) {
		return
	}

	updated, err := g.orch.UpdateRoomSettings(ctx, sess.RoomID, room.Settings{
		MaxPlayers:    payload.MaxPlayers,
		RoundDuration: payload.RoundDuration,
		TotalRounds:   payload.TotalRounds,
	})
	if err != nil {
		g.sendError(c, err)
		return
	}
	g.hub.Emit(RoomGroup(sess.RoomID), model.EventRoomState, model.NewRoomView(updated))
}

func (g *Gateway) handleStart(ctx context.Context, c *Conn, sess Session) {
	if !g.requireHost(ctx, c, sess) {
		return
	}

	result, err := g.orch.StartGame(ctx, sess.RoomID)
	if err != nil {
		g.sendError(c, err)
		return
	}
	if result.Round == nil {
		g.hub.Emit(RoomGroup(sess.RoomID), model.EventRoomState, model.NewRoomView(result.Room))
		_ = c.Send(model.EventRoomError, model.RoomErrorPayload{
			Code:    CodeNotEnoughPlayers,
			Message: "At least two connected players are needed",
		})
		return
	}
	if result.Started {
		g.announceRound(result.Room)
	}
}

// requireHost checks the session is bound to a room it hosts
func (g *Gateway) requireHost(ctx context.Context, c *Conn, sess Session) bool {
	if !sess.Bound() {
		_ = c.Send(model.EventRoomError, model.RoomErrorPayload{Code: CodeNotInRoom, Message: "Not in a room"})
		return false
	}
	current, err := g.orch.GetRoom(ctx, sess.RoomID)
	if err != nil {
		g.sendError(c, err)
		return false
	}
	if current.HostUserID != sess.UserID {
		g.sendError(c, model.ErrForbidden)
		return false
	}
	return true
}

// handleDraw relays strokes from the drawer only; anyone else is dropped without a reply
func (g *Gateway) handleDraw(ctx context.Context, c *Conn, sess Session, env model.Envelope) {
	if !sess.Bound() || !g.orch.CanDraw(ctx, sess.RoomID, sess.PlayerID) {
		return
	}

	g.hub.EmitExcept(RoomGroup(sess.RoomID), c.id, env.Type, env.Payload)
	if err := g.orch.Touch(ctx, sess.RoomID); err != nil {
		g.logger.Debug("touch failed", slog.String("room_id", string(sess.RoomID)), slog.String("error", err.Error()))
	}
}

func (g *Gateway) handleGuess(ctx context.Context, c *Conn, sess Session, raw json.RawMessage) {
	var payload model.GuessSubmitPayload
	if !g.decode(c, raw, &payload) {
		return
	}
	if !sess.Bound() {
		_ = c.Send(model.EventRoomError, model.RoomErrorPayload{Code: CodeNotInRoom, Message: "Not in a room"})
		return
	}
	if payload.RoomID != sess.RoomID {
		g.sendError(c, model.ErrForbidden)
		return
	}

	result, err := g.orch.SubmitGuess(ctx, sess.RoomID, sess.PlayerID, payload.Text)
	if err != nil {
		g.sendError(c, err)
		return
	}

	switch {
	case result.Correct:
		g.finishRound(ctx, sess.RoomID, result.Room, result.WinnerID, result.Word, result.GameEnded)
	case result.Suppressed, result.Text == "":
	default:
		g.hub.Emit(RoomGroup(sess.RoomID), model.EventGuessSubmitted, model.GuessSubmittedPayload{
			PlayerID: sess.PlayerID,
			Text:     result.Text,
		})
	}
}

// finishRound broadcasts a round's end, then either the game's end or the next round
func (g *Gateway) finishRound(ctx context.Context, roomID model.RoomID, ended *model.Room, winner model.PlayerID, word string, gameEnded bool) {
	view := model.NewRoomView(ended)
	group := RoomGroup(roomID)

	g.hub.Emit(group, model.EventRoundEnded, model.RoundEndedPayload{WinnerID: winner, Word: word, Room: view})
	g.hub.Emit(group, model.EventRoomState, view)

	if gameEnded {
		g.hub.Emit(group, model.EventGameEnded, model.GameEndedPayload{Room: view})
		return
	}

	next, err := g.orch.EnsureRound(ctx, roomID)
	if err != nil {
		g.logger.Error("failed to start next round",
			slog.String("room_id", string(roomID)),
			slog.String("error", err.Error()),
		)
		return
	}
	if next.Started {
		g.announceRound(next.Room)
	}
}

// announceRound tells the room a round started and sends the word to the drawer only
func (g *Gateway) announceRound(r *model.Room) {
	g.hub.Emit(RoomGroup(r.ID), model.EventRoundStarted, roundStarted(r))
	g.hub.Emit(PlayerGroup(r.Round.DrawerID), model.EventRoundWord, model.RoundWordPayload{Word: r.Round.Word})
	g.hub.Emit(RoomGroup(r.ID), model.EventRoomState, model.NewRoomView(r))
}

func roundStarted(r *model.Room) model.RoundStartedPayload {
	return model.RoundStartedPayload{
		DrawerID:    r.Round.DrawerID,
		RoundEndsAt: r.Round.EndsAt.UnixMilli(),
		Revealed:    r.Round.RevealedMask,
		Number:      r.Round.Number,
		TotalRounds: r.TotalRounds,
	}
}

func (g *Gateway) sendRoomList(c *Conn) {
	_ = c.Send(model.EventRoomList, g.roomList())
}

// BroadcastRoomList sends the current room list to every connected socket
func (g *Gateway) BroadcastRoomList() {
	g.hub.EmitAll(model.EventRoomList, g.roomList())
}

func (g *Gateway) roomList() model.RoomListPayload {
	rooms := g.orch.ListRooms(context.Background())
	views := make([]model.RoomSummaryView, len(rooms))
	for i, r := range rooms {
		views[i] = model.NewRoomSummaryView(r)
	}
	return model.RoomListPayload{Rooms: views}
}

// roomEvicted runs under the evicted room's lock; it only touches gateway state
func (g *Gateway) roomEvicted(roomID model.RoomID) {
	g.sessions.UnbindRoom(roomID)
	g.hub.EmitAll(model.EventRoomClosed, model.RoomClosedPayload{RoomID: roomID})
}

func (g *Gateway) decode(c *Conn, raw json.RawMessage, v any) bool {
	if len(raw) == 0 {
		raw = json.RawMessage("{}")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		_ = c.Send(model.EventRoomError, model.RoomErrorPayload{Code: CodeBadRequest, Message: "Invalid payload"})
		return false
	}
	return true
}

func (g *Gateway) sendError(c *Conn, err error) {
	payload := toRoomError(err)
	if payload.Code == CodeInternal {
		g.logger.Error("event failed",
			slog.String("socket_id", string(c.id)),
			slog.String("error", err.Error()),
		)
	}
	_ = c.Send(model.EventRoomError, payload)
}
