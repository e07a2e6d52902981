package archive

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

// DispatcherConfig tunes the background archive worker
type DispatcherConfig struct {
	BufferSize     int
	PersistTimeout time.Duration
}

// DefaultDispatcherConfig returns the default dispatcher configuration
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		BufferSize:     64,
		PersistTimeout: 10 * time.Second,
	}
}

// Dispatcher hands finished games to a Sink on a background worker so callers never block on it
type Dispatcher struct {
	sink   Sink
	cfg    DispatcherConfig
	logger *slog.Logger

	mu     sync.RWMutex
	closed bool
	queue  chan *model.GameSummary
	done   chan struct{}
}

// NewDispatcher creates a Dispatcher and starts its worker
func NewDispatcher(sink Sink, cfg DispatcherConfig, logger *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		sink:   sink,
		cfg:    cfg,
		logger: logger.With(slog.String("component", "archive")),
		queue:  make(chan *model.GameSummary, cfg.BufferSize),
		done:   make(chan struct{}),
	}
	go d.run()
	return d
}

// Archive queues a summary. It drops the summary when the queue is full or the dispatcher is closed.
func (d *Dispatcher) Archive(summary *model.GameSummary) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("archive dispatcher closed, dropping game",
			slog.String("game_id", string(summary.ID)),
		)
		return
	}

	select {
	case d.queue <- summary:
	default:
		d.logger.Error("archive queue full, dropping game",
			slog.String("game_id", string(summary.ID)),
			slog.String("room_id", string(summary.RoomID)),
		)
	}
}

// Close stops accepting summaries and waits for queued ones to be persisted
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		<-d.done
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}

func (d *Dispatcher) run() {
	defer close(d.done)

	for summary := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), d.cfg.PersistTimeout)
		err := d.sink.Persist(ctx, summary)
		cancel()

		if err != nil {
			d.logger.Error("failed to archive game",
				slog.String("game_id", string(summary.ID)),
				slog.String("error", err.Error()),
			)
			continue
		}
		d.logger.Info("game archived",
			slog.String("game_id", string(summary.ID)),
			slog.String("room_id", string(summary.RoomID)),
		)
	}
}
