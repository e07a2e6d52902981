package gateway

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

// RunRoundTicker ends overdue rounds every RoundTick until ctx is cancelled
func (g *Gateway) RunRoundTicker(ctx context.Context) {
	ticker := time.NewTicker(g.cfg.RoundTick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			g.ExpireRounds(ctx)
		}
	}
}

// ExpireRounds times out every round past its deadline and starts the next one
func (g *Gateway) ExpireRounds(ctx context.Context) {
	for _, roomID := range g.orch.ExpiredRooms(ctx) {
		result, err := g.orch.ExpireRound(ctx, roomID)
		if err != nil {
			if !errors.Is(err, model.ErrRoomNotFound) {
				g.logger.Error("failed to expire round",
					slog.String("room_id", string(roomID)),
					slog.String("error", err.Error()),
				)
			}
			continue
		}
		if !result.Expired {
			continue
		}
		g.finishRound(ctx, roomID, result.Room, "", result.Word, result.GameEnded)
	}
}
