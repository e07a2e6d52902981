package room

import (
	"context"
	"time"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

func (s *OrchestratorSuite) TestSweepRemovesIdleDisconnectedRoom() {
	room := s.createRoom(4)
	a := s.join(room.ID, "user-a")
	_, _ = s.orch.MarkDisconnected(s.ctx, room.ID, a.ID)

	var evicted []model.RoomID
	s.orch.OnEvicted(func(id model.RoomID) { evicted = append(evicted, id) })

	s.clock.Advance(11 * time.Minute)
	swept := s.orch.SweepIdle(s.ctx)

	s.Equal([]model.RoomID{room.ID}, swept)
	s.Equal([]model.RoomID{room.ID}, evicted)
	s.Empty(s.orch.ListRooms(s.ctx))
}

func (s *OrchestratorSuite) TestSweepRemovesIdleEmptyRoom() {
	room := s.createRoom(4)
	s.clock.Advance(11 * time.Minute)

	s.Equal([]model.RoomID{room.ID}, s.orch.SweepIdle(s.ctx))
}

func (s *OrchestratorSuite) TestSweepKeepsRoomsWithConnectedPlayers() {
	room := s.createRoom(4)
	s.join(room.ID, "user-a")

	s.clock.Advance(24 * time.Hour)
	s.Empty(s.orch.SweepIdle(s.ctx))
	s.True(s.store.Exists(room.ID))
}

func (s *OrchestratorSuite) TestSweepKeepsRecentlyActiveRooms() {
	room := s.createRoom(4)
	a := s.join(room.ID, "user-a")
	_, _ = s.orch.MarkDisconnected(s.ctx, room.ID, a.ID)

	s.clock.Advance(9 * time.Minute)
	s.Empty(s.orch.SweepIdle(s.ctx))
	s.True(s.store.Exists(room.ID))
}

func (s *OrchestratorSuite) TestSweepContinuesPastOtherRooms() {
	s.random.QueueString("ROOM01", "ROOM02", "ROOM03")
	idleA, _ := s.orch.CreateRoom(s.ctx, CreateRequest{Name: "A", MaxPlayers: 4, RoundDuration: 60})
	live, _ := s.orch.CreateRoom(s.ctx, CreateRequest{Name: "B", MaxPlayers: 4, RoundDuration: 60})
	idleC, _ := s.orch.CreateRoom(s.ctx, CreateRequest{Name: "C", MaxPlayers: 4, RoundDuration: 60})
	s.join(live.ID, "user-a")

	s.clock.Advance(time.Hour)
	swept := s.orch.SweepIdle(s.ctx)

	s.ElementsMatch([]model.RoomID{idleA.ID, idleC.ID}, swept)
	s.True(s.store.Exists(live.ID))
}

func (s *OrchestratorSuite) TestRunSweeperStopsOnCancel() {
	cfg := DefaultConfig()
	cfg.SweepInterval = time.Millisecond
	orch := NewOrchestrator(s.store, s.words, s.archiver, s.clock, s.random, cfg, s.orch.logger)

	room := s.createRoom(4)
	s.clock.Advance(time.Hour)

	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan struct{})
	go func() {
		orch.RunSweeper(ctx)
		close(done)
	}()

	s.Eventually(func() bool { return !s.store.Exists(room.ID) }, time.Second, 5*time.Millisecond)
	cancel()
	s.Eventually(func() bool {
		select {
		case <-done:
			return true
		default:
			return false
		}
	}, time.Second, 5*time.Millisecond)
}
