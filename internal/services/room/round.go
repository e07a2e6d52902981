package room

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode"

	"github.com/MaelVB/Drawsyn-sub000/internal/dependencies/clock"
	"github.com/MaelVB/Drawsyn-sub000/internal/dependencies/random"
	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

// RoundResult is returned by EnsureRound and StartGame
type RoundResult struct {
	Room    *model.Room
	Round   *model.Round // nil when no round could start
	Started bool         // false when the round already existed
}

// GuessResult describes the outcome of a guess
type GuessResult struct {
	Correct bool
	// Suppressed marks the drawer typing their own word; it must not be relayed
	Suppressed bool
	Text       string // trimmed and length-capped guess for relay
	Word       string // revealed word, set when Correct
	WinnerID   model.PlayerID
	GameEnded  bool
	Room       *model.Room
}

// ExpireResult describes a round ended by its deadline
type ExpireResult struct {
	Expired   bool
	Word      string
	GameEnded bool
	Room      *model.Room
}

// EnsureRound returns the active round, or starts one when at least two players are connected
func (o *Orchestrator) EnsureRound(ctx context.Context, roomID model.RoomID) (RoundResult, error) {
	unlock, err := o.store.Lock(roomID)
	if err != nil {
		return RoundResult{}, err
	}
	defer unlock()

	room, err := o.store.Get(roomID)
	if err != nil {
		return RoundResult{}, err
	}

	return o.ensureRoundLocked(room)
}

// StartGame starts play in the room. An ended game is reset first.
func (o *Orchestrator) StartGame(ctx context.Context, roomID model.RoomID) (RoundResult, error) {
	unlock, err := o.store.Lock(roomID)
	if err != nil {
		return RoundResult{}, err
	}
	defer unlock()

	room, err := o.store.Get(roomID)
	if err != nil {
		return RoundResult{}, err
	}

	if room.Status == model.RoomStatusEnded {
		for _, p := range room.Players {
			p.Score = 0
			p.IsDrawing = false
		}
		room.RoundsPlayed = 0
		room.History = nil
		room.LastDrawerID = ""
		room.Status = model.RoomStatusLobby
		o.logger.Info("game reset", slog.String("room_id", string(roomID)))
	}

	result, err := o.ensureRoundLocked(room)
	if err != nil {
		return RoundResult{}, err
	}
	if result.Round == nil {
		// Persist the reset even when too few players are connected to start
		o.store.Upsert(room)
		result.Room = room
	}
	return result, nil
}

func (o *Orchestrator) ensureRoundLocked(room *model.Room) (RoundResult, error) {
	if room.Round != nil {
		return RoundResult{Room: room, Round: room.Round}, nil
	}
	if room.Status == model.RoomStatusEnded {
		return RoundResult{Room: room}, nil
	}

	if room.ConnectedCount() < 2 {
		return RoundResult{Room: room}, nil
	}
	candidates := drawerCandidates(room)

	word, err := o.words.Pick()
	if err != nil {
		return RoundResult{}, err
	}

	drawer, _ := random.Choice(o.random, candidates)
	now := o.clock.Now()

	round := &model.Round{
		Number:       room.RoundsPlayed + 1,
		Word:         word,
		RevealedMask: mask(word),
		DrawerID:     drawer,
		StartedAt:    now,
		EndsAt:       now.Add(room.RoundDuration()),
	}

	for id, p := range room.Players {
		p.IsDrawing = id == drawer
	}
	room.Round = round
	room.Status = model.RoomStatusRunning
	room.LastActivityAt = now
	o.store.Upsert(room)

	o.logger.Info("round started",
		slog.String("room_id", string(room.ID)),
		slog.String("drawer_id", string(drawer)),
		slog.Int("round", round.Number),
	)

	return RoundResult{Room: room, Round: round, Started: true}, nil
}

// drawerCandidates returns connected players, excluding the previous drawer when anyone else is connected.
// The result is sorted so the random index is reproducible.
func drawerCandidates(room *model.Room) []model.PlayerID {
	var connected []model.PlayerID
	for id, p := range room.Players {
		if p.Connected {
			connected = append(connected, id)
		}
	}
	sort.Slice(connected, func(i, j int) bool { return connected[i] < connected[j] })

	candidates := make([]model.PlayerID, 0, len(connected))
	for _, id := range connected {
		if id != room.LastDrawerID {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return connected
	}
	return candidates
}

// SubmitGuess evaluates a guess against the active round's word
func (o *Orchestrator) SubmitGuess(ctx context.Context, roomID model.RoomID, playerID model.PlayerID, text string) (GuessResult, error) {
	unlock, err := o.store.Lock(roomID)
	if err != nil {
		return GuessResult{}, err
	}
	defer unlock()

	room, err := o.store.Get(roomID)
	if err != nil {
		return GuessResult{}, err
	}

	player, ok := room.Players[playerID]
	if !ok {
		return GuessResult{}, model.ErrPlayerNotFound
	}

	text = capRunes(strings.TrimSpace(text), o.cfg.MaxGuessLength)
	room.LastActivityAt = o.clock.Now()

	result := GuessResult{Text: text}
	if room.Round == nil || !matches(text, room.Round.Word) {
		o.store.Upsert(room)
		result.Room = room
		return result, nil
	}

	if room.IsDrawer(playerID) {
		o.store.Upsert(room)
		result.Suppressed = true
		result.Room = room
		return result, nil
	}

	word := room.Round.Word
	player.Score += o.cfg.GuessPoints
	gameEnded := o.finishRound(room, model.RoundOutcomeGuessed, playerID)
	o.store.Upsert(room)

	o.logger.Info("round guessed",
		slog.String("room_id", string(roomID)),
		slog.String("winner_id", string(playerID)),
		slog.Int("score", player.Score),
	)

	return GuessResult{
		Correct:   true,
		Text:      text,
		Word:      word,
		WinnerID:  playerID,
		GameEnded: gameEnded,
		Room:      room,
	}, nil
}

// ExpireRound ends the active round if its deadline has passed. No points are awarded.
func (o *Orchestrator) ExpireRound(ctx context.Context, roomID model.RoomID) (ExpireResult, error) {
	unlock, err := o.store.Lock(roomID)
	if err != nil {
		return ExpireResult{}, err
	}
	defer unlock()

	room, err := o.store.Get(roomID)
	if err != nil {
		return ExpireResult{}, err
	}

	if room.Round == nil || !clock.Reached(o.clock, room.Round.EndsAt) {
		return ExpireResult{Room: room}, nil
	}

	word := room.Round.Word
	gameEnded := o.finishRound(room, model.RoundOutcomeTimeout, "")
	o.store.Upsert(room)

	o.logger.Info("round timed out", slog.String("room_id", string(roomID)))
	return ExpireResult{Expired: true, Word: word, GameEnded: gameEnded, Room: room}, nil
}

// ExpiredRooms returns the ids of rooms whose active round is past its deadline
func (o *Orchestrator) ExpiredRooms(ctx context.Context) []model.RoomID {
	var ids []model.RoomID
	for _, room := range o.store.List() {
		if room.Round != nil && clock.Reached(o.clock, room.Round.EndsAt) {
			ids = append(ids, room.ID)
		}
	}
	return ids
}

// finishRound tears down the active round and records it. Returns true when the game ended.
// Callers hold the room lock and upsert afterwards.
func (o *Orchestrator) finishRound(room *model.Room, outcome model.RoundOutcome, winner model.PlayerID) bool {
	round := room.Round
	if round == nil {
		return false
	}

	now := o.clock.Now()
	room.History = append(room.History, model.RoundRecord{
		Number:     round.Number,
		DrawerID:   round.DrawerID,
		Word:       round.Word,
		WinnerID:   winner,
		Outcome:    outcome,
		DrawingRef: fmt.Sprintf("%s/%d/%d", room.ID, len(room.History)+1, round.Number),
		StartedAt:  round.StartedAt,
		EndedAt:    now,
	})

	for _, p := range room.Players {
		p.IsDrawing = false
	}
	room.LastDrawerID = round.DrawerID
	room.Round = nil
	room.Status = model.RoomStatusLobby

	if outcome == model.RoundOutcomeCancelled {
		return false
	}

	room.RoundsPlayed++
	if room.RoundsPlayed < room.TotalRounds {
		return false
	}

	room.Status = model.RoomStatusEnded
	summary := o.summarize(room)
	o.archiver.Archive(summary)
	o.logger.Info("game completed",
		slog.String("room_id", string(room.ID)),
		slog.String("game_id", string(summary.ID)),
		slog.String("winner_id", string(summary.WinnerID)),
	)
	return true
}

func (o *Orchestrator) summarize(room *model.Room) *model.GameSummary {
	players := room.SortedPlayers()
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].Score > players[j].Score
	})

	scores := make([]model.PlayerScore, len(players))
	for i, p := range players {
		scores[i] = model.PlayerScore{
			PlayerID:    p.ID,
			UserID:      p.UserID,
			DisplayName: p.DisplayName,
			Score:       p.Score,
		}
	}

	var winner model.PlayerID
	if len(players) > 0 && players[0].Score > 0 {
		winner = players[0].ID
	}

	startedAt := room.CreatedAt
	if len(room.History) > 0 {
		startedAt = room.History[0].StartedAt
	}

	rounds := make([]model.RoundRecord, len(room.History))
	copy(rounds, room.History)

	return &model.GameSummary{
		ID:          model.GameID(o.random.String(gameIDLength, gameIDAlphabet)),
		RoomID:      room.ID,
		RoomName:    room.Name,
		Players:     scores,
		Rounds:      rounds,
		WinnerID:    winner,
		StartedAt:   startedAt,
		CompletedAt: o.clock.Now(),
	}
}

// normalize trims, folds case and collapses inner whitespace
func normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func matches(guess, word string) bool {
	g := normalize(guess)
	return g != "" && g == normalize(word)
}

// mask hides letters and digits, keeping separators visible
func mask(word string) string {
	var b strings.Builder
	for _, r := range word {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune('_')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func capRunes(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	i := 0
	for pos := range s {
		if i == limit {
			return s[:pos]
		}
		i++
	}
	return s
}
