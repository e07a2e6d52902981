package room

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

// OnEvicted registers a callback invoked with the id of every room removed by the idle sweep.
// It must be set before RunSweeper starts.
func (o *Orchestrator) OnEvicted(fn func(model.RoomID)) {
	o.onEvicted = fn
}

// SweepIdle deletes rooms with no connected players whose last activity is older than the idle timeout.
// A failure on one room does not stop the sweep.
func (o *Orchestrator) SweepIdle(ctx context.Context) []model.RoomID {
	cutoff := o.clock.Now().Add(-o.cfg.IdleTimeout)

	var evicted []model.RoomID
	for _, snapshot := range o.store.List() {
		if !idle(snapshot, cutoff) {
			continue
		}

		deleted, err := o.evict(snapshot.ID, cutoff)
		if err != nil {
			if !errors.Is(err, model.ErrRoomNotFound) {
				o.logger.Error("failed to sweep room",
					slog.String("room_id", string(snapshot.ID)),
					slog.String("error", err.Error()),
				)
			}
			continue
		}
		if deleted {
			evicted = append(evicted, snapshot.ID)
		}
	}

	if len(evicted) > 0 {
		o.logger.Info("idle rooms swept", slog.Int("count", len(evicted)))
	}
	return evicted
}

// evict re-checks the room under its lock so a concurrent join keeps it alive
func (o *Orchestrator) evict(roomID model.RoomID, cutoff time.Time) (deleted bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.New("panic while evicting room")
		}
	}()

	unlock, err := o.store.Lock(roomID)
	if err != nil {
		return false, err
	}
	defer unlock()

	room, err := o.store.Get(roomID)
	if err != nil {
		return false, err
	}
	if !idle(room, cutoff) {
		return false, nil
	}

	o.store.Delete(roomID)
	o.logger.Info("room deleted",
		slog.String("room_id", string(roomID)),
		slog.String("reason", "idle"),
	)
	if o.onEvicted != nil {
		o.onEvicted(roomID)
	}
	return true, nil
}

func idle(room *model.Room, cutoff time.Time) bool {
	return room.ConnectedCount() == 0 && room.LastActivityAt.Before(cutoff)
}

// RunSweeper runs SweepIdle every SweepInterval until ctx is cancelled
func (o *Orchestrator) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(o.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			o.SweepIdle(ctx)
		}
	}
}
