package room

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/MaelVB/Drawsyn-sub000/internal/dependencies/clock"
	"github.com/MaelVB/Drawsyn-sub000/internal/dependencies/random"
	"github.com/MaelVB/Drawsyn-sub000/internal/model"
	"github.com/MaelVB/Drawsyn-sub000/internal/roomstore"
	"github.com/MaelVB/Drawsyn-sub000/internal/services/words"
)

// Archiver receives finished games. Implementations must not block.
type Archiver interface {
	Archive(summary *model.GameSummary)
}

// NopArchiver discards finished games
type NopArchiver struct{}

// Archive does nothing
func (NopArchiver) Archive(*model.GameSummary) {}

// Orchestrator owns the room business rules: membership, rounds, guesses and eviction.
// Every mutation holds the room's lock from the store for its whole duration.
type Orchestrator struct {
	store    *roomstore.Store
	words    words.Picker
	archiver Archiver
	clock    clock.Clock
	random   random.Random
	cfg      Config
	logger   *slog.Logger

	onEvicted func(model.RoomID)
}

// NewOrchestrator creates a new Orchestrator
func NewOrchestrator(
	store *roomstore.Store,
	words words.Picker,
	archiver Archiver,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Orchestrator {
	if archiver == nil {
		archiver = NopArchiver{}
	}
	return &Orchestrator{
		store:    store,
		words:    words,
		archiver: archiver,
		clock:    clock,
		random:   random,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "room-orchestrator")),
	}
}

// Config returns the orchestrator configuration
func (o *Orchestrator) Config() Config {
	return o.cfg
}

// CreateRequest describes a room to create
type CreateRequest struct {
	Name          string
	MaxPlayers    int
	RoundDuration int // seconds
	TotalRounds   int // zero means the configured default
	HostUserID    model.UserID
}

// Settings is a partial settings update; nil fields are left unchanged
type Settings struct {
	MaxPlayers    *int
	RoundDuration *int
	TotalRounds   *int
}

// LeaveResult describes the room after a player left or disconnected
type LeaveResult struct {
	Room           *model.Room // nil when Deleted
	RoundCancelled bool
	Deleted        bool
}

// CreateRoom validates the settings and stores a new empty room
func (o *Orchestrator) CreateRoom(ctx context.Context, req CreateRequest) (*model.Room, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", model.ErrInvalidConfig)
	}
	if utf8.RuneCountInString(name) > MaxRoomNameLength {
		return nil, fmt.Errorf("%w: name longer than %d characters", model.ErrInvalidConfig, MaxRoomNameLength)
	}
	if req.TotalRounds == 0 {
		req.TotalRounds = o.cfg.DefaultTotalRounds
	}
	if err := validate(req.MaxPlayers, req.RoundDuration, req.TotalRounds); err != nil {
		return nil, err
	}

	now := o.clock.Now()
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		id := model.RoomID(o.random.String(RoomCodeLength, RoomCodeAlphabet))
		if o.store.Exists(id) {
			continue
		}

		room, err := o.store.Create(&model.Room{
			ID:                   id,
			Name:                 name,
			HostUserID:           req.HostUserID,
			MaxPlayers:           req.MaxPlayers,
			RoundDurationSeconds: req.RoundDuration,
			TotalRounds:          req.TotalRounds,
			Players:              make(map[model.PlayerID]*model.Player),
			Status:               model.RoomStatusLobby,
			CreatedAt:            now,
			LastActivityAt:       now,
		})
		if err != nil {
			// Lost a race for the same id
			continue
		}

		o.logger.Info("room created",
			slog.String("room_id", string(room.ID)),
			slog.String("host_user_id", string(req.HostUserID)),
			slog.Int("max_players", room.MaxPlayers),
		)
		return room, nil
	}

	return nil, errors.New("could not allocate a room id")
}

// GetRoom returns a snapshot of the room
func (o *Orchestrator) GetRoom(ctx context.Context, roomID model.RoomID) (*model.Room, error) {
	return o.store.Get(roomID)
}

// ListRooms returns snapshots of all rooms, oldest first
func (o *Orchestrator) ListRooms(ctx context.Context) []*model.Room {
	return o.store.List()
}

// JoinRoom adds the user to the room, or reconnects the player the user already owns there
func (o *Orchestrator) JoinRoom(ctx context.Context, roomID model.RoomID, userID model.UserID, displayName string) (*model.Room, *model.Player, error) {
	unlock, err := o.store.Lock(roomID)
	if err != nil {
		return nil, nil, err
	}
	defer unlock()

	room, err := o.store.Get(roomID)
	if err != nil {
		return nil, nil, err
	}

	now := o.clock.Now()
	player := room.FindByUser(userID)
	if player != nil {
		player.Connected = true
		if displayName != "" {
			player.DisplayName = displayName
		}
		o.logger.Info("player reconnected",
			slog.String("room_id", string(roomID)),
			slog.String("player_id", string(player.ID)),
		)
	} else {
		if len(room.Players) >= room.MaxPlayers {
			return nil, nil, model.ErrRoomFull
		}
		player = &model.Player{
			ID:          model.PlayerID(uuid.NewString()),
			UserID:      userID,
			DisplayName: displayName,
			Connected:   true,
			JoinedAt:    now,
		}
		room.Players[player.ID] = player
		o.logger.Info("player joined",
			slog.String("room_id", string(roomID)),
			slog.String("player_id", string(player.ID)),
			slog.Int("players", len(room.Players)),
		)
	}

	electHost(room)
	room.LastActivityAt = now
	o.store.Upsert(room)

	p := *player
	return room, &p, nil
}

// LeaveRoom removes the player. A departing drawer cancels the round and an empty room is deleted.
func (o *Orchestrator) LeaveRoom(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (LeaveResult, error) {
	unlock, err := o.store.Lock(roomID)
	if err != nil {
		return LeaveResult{}, err
	}
	defer unlock()

	room, err := o.store.Get(roomID)
	if err != nil {
		return LeaveResult{}, err
	}

	_, ok := room.Players[playerID]
	if !ok {
		return LeaveResult{}, model.ErrPlayerNotFound
	}

	cancelled := false
	if room.IsDrawer(playerID) {
		o.finishRound(room, model.RoundOutcomeCancelled, "")
		cancelled = true
	}

	delete(room.Players, playerID)

	if len(room.Players) == 0 {
		o.store.Delete(roomID)
		o.logger.Info("room deleted",
			slog.String("room_id", string(roomID)),
			slog.String("reason", "empty"),
		)
		return LeaveResult{RoundCancelled: cancelled, Deleted: true}, nil
	}

	electHost(room)

	o.store.Upsert(room)
	o.logger.Info("player left",
		slog.String("room_id", string(roomID)),
		slog.String("player_id", string(playerID)),
		slog.Bool("round_cancelled", cancelled),
	)
	return LeaveResult{Room: room, RoundCancelled: cancelled}, nil
}

// MarkDisconnected flags the player as offline but keeps their entry for a later reconnect
func (o *Orchestrator) MarkDisconnected(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) (LeaveResult, error) {
	unlock, err := o.store.Lock(roomID)
	if err != nil {
		return LeaveResult{}, err
	}
	defer unlock()

	room, err := o.store.Get(roomID)
	if err != nil {
		return LeaveResult{}, err
	}

	player, ok := room.Players[playerID]
	if !ok {
		return LeaveResult{}, model.ErrPlayerNotFound
	}

	player.Connected = false
	cancelled := false
	if room.IsDrawer(playerID) {
		o.finishRound(room, model.RoundOutcomeCancelled, "")
		cancelled = true
	}
	electHost(room)

	o.store.Upsert(room)
	o.logger.Info("player disconnected",
		slog.String("room_id", string(roomID)),
		slog.String("player_id", string(playerID)),
		slog.Bool("round_cancelled", cancelled),
	)
	return LeaveResult{Room: room, RoundCancelled: cancelled}, nil
}

// CanDraw reports whether the player is the drawer of the room's active round
func (o *Orchestrator) CanDraw(ctx context.Context, roomID model.RoomID, playerID model.PlayerID) bool {
	room, err := o.store.Get(roomID)
	if err != nil {
		return false
	}
	return room.IsDrawer(playerID)
}

// Touch refreshes the room's activity timestamp
func (o *Orchestrator) Touch(ctx context.Context, roomID model.RoomID) error {
	unlock, err := o.store.Lock(roomID)
	if err != nil {
		return err
	}
	defer unlock()

	room, err := o.store.Get(roomID)
	if err != nil {
		return err
	}
	room.LastActivityAt = o.clock.Now()
	o.store.Upsert(room)
	return nil
}

// UpdateRoomSettings applies the provided fields. An in-progress round keeps its deadline.
func (o *Orchestrator) UpdateRoomSettings(ctx context.Context, roomID model.RoomID, settings Settings) (*model.Room, error) {
	unlock, err := o.store.Lock(roomID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	room, err := o.store.Get(roomID)
	if err != nil {
		return nil, err
	}

	maxPlayers, duration, totalRounds := room.MaxPlayers, room.RoundDurationSeconds, room.TotalRounds
	if settings.MaxPlayers != nil {
		maxPlayers = *settings.MaxPlayers
	}
	if settings.RoundDuration != nil {
		duration = *settings.RoundDuration
	}
	if settings.TotalRounds != nil {
		totalRounds = *settings.TotalRounds
	}

	if err := validate(maxPlayers, duration, totalRounds); err != nil {
		return nil, err
	}
	if maxPlayers < len(room.Players) {
		return nil, fmt.Errorf("%w: room already has %d players", model.ErrInvalidConfig, len(room.Players))
	}
	if room.Status != model.RoomStatusEnded && totalRounds <= room.RoundsPlayed && room.RoundsPlayed > 0 {
		return nil, fmt.Errorf("%w: %d rounds already played", model.ErrInvalidConfig, room.RoundsPlayed)
	}

	room.MaxPlayers = maxPlayers
	room.RoundDurationSeconds = duration
	room.TotalRounds = totalRounds
	room.LastActivityAt = o.clock.Now()
	o.store.Upsert(room)

	o.logger.Info("room settings updated",
		slog.String("room_id", string(roomID)),
		slog.Int("max_players", maxPlayers),
		slog.Int("round_duration", duration),
		slog.Int("total_rounds", totalRounds),
	)
	return room, nil
}

// FindPresence lists the rooms in which the user currently owns a player
func (o *Orchestrator) FindPresence(ctx context.Context, userID model.UserID) []model.Presence {
	var presence []model.Presence
	for _, room := range o.store.List() {
		player := room.FindByUser(userID)
		if player == nil {
			continue
		}
		presence = append(presence, model.Presence{
			UserID:    userID,
			RoomID:    room.ID,
			RoomName:  room.Name,
			PlayerID:  player.ID,
			Connected: player.Connected,
			Status:    room.Status,
		})
	}
	return presence
}

// electHost hands the host role to the earliest-joined connected player when the
// current host has no connected player in the room. With nobody connected the host
// only moves if its player is gone.
func electHost(room *model.Room) {
	if host := room.FindByUser(room.HostUserID); host != nil && host.Connected {
		return
	}
	sorted := room.SortedPlayers()
	for _, p := range sorted {
		if p.Connected {
			room.HostUserID = p.UserID
			return
		}
	}
	if room.FindByUser(room.HostUserID) == nil && len(sorted) > 0 {
		room.HostUserID = sorted[0].UserID
	}
}

func validate(maxPlayers, roundDuration, totalRounds int) error {
	if maxPlayers < MinPlayers || maxPlayers > MaxPlayers {
		return fmt.Errorf("%w: maxPlayers must be between %d and %d", model.ErrInvalidConfig, MinPlayers, MaxPlayers)
	}
	if roundDuration < MinRoundDuration || roundDuration > MaxRoundDuration {
		return fmt.Errorf("%w: roundDuration must be between %d and %d seconds", model.ErrInvalidConfig, MinRoundDuration, MaxRoundDuration)
	}
	if totalRounds < MinTotalRounds || totalRounds > MaxTotalRounds {
		return fmt.Errorf("%w: totalRounds must be between %d and %d", model.ErrInvalidConfig, MinTotalRounds, MaxTotalRounds)
	}
	return nil
}
