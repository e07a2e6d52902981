package roomstore

import (
	"fmt"
	"sort"
	"sync"

	"github.com/MaelVB/Drawsyn-sub000/internal/model"
)

// Store is the in-memory authoritative map of live rooms.
//
// Rooms go in and come out as deep copies, so a caller only changes shared
// state through Upsert. Callers that read-modify-write a room must hold the
// room's lock (see Lock) for the whole sequence.
type Store struct {
	mu    sync.RWMutex
	rooms map[model.RoomID]*model.Room
	locks map[model.RoomID]*sync.Mutex
}

// New creates an empty room store
func New() *Store {
	return &Store{
		rooms: make(map[model.RoomID]*model.Room),
		locks: make(map[model.RoomID]*sync.Mutex),
	}
}

// Create inserts a new room. It fails if the id is already taken.
func (s *Store) Create(room *model.Room) (*model.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rooms[room.ID]; ok {
		return nil, fmt.Errorf("room %s already exists", room.ID)
	}
	s.rooms[room.ID] = room.Clone()
	s.locks[room.ID] = &sync.Mutex{}
	return room.Clone(), nil
}

// Get returns a copy of the room, or model.ErrRoomNotFound
func (s *Store) Get(id model.RoomID) (*model.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	room, ok := s.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return room.Clone(), nil
}

// Exists reports whether a room with the id is present
func (s *Store) Exists(id model.RoomID) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.rooms[id]
	return ok
}

// Upsert stores the room, replacing any previous version
func (s *Store) Upsert(room *model.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rooms[room.ID] = room.Clone()
	if _, ok := s.locks[room.ID]; !ok {
		s.locks[room.ID] = &sync.Mutex{}
	}
}

// Delete removes the room. Deleting an absent room is a no-op.
func (s *Store) Delete(id model.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.rooms, id)
	delete(s.locks, id)
}

// List returns copies of all rooms ordered by creation time
func (s *Store) List() []*model.Room {
	s.mu.RLock()
	rooms := make([]*model.Room, 0, len(s.rooms))
	for _, room := range s.rooms {
		rooms = append(rooms, room.Clone())
	}
	s.mu.RUnlock()

	sort.Slice(rooms, func(i, j int) bool {
		if !rooms[i].CreatedAt.Equal(rooms[j].CreatedAt) {
			return rooms[i].CreatedAt.Before(rooms[j].CreatedAt)
		}
		return rooms[i].ID < rooms[j].ID
	})
	return rooms
}

// Count returns the number of live rooms
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}

// Lock acquires the per-room lock and returns its release func.
//
// The room may have been deleted while the caller waited for the lock, so
// callers must re-read the room with Get after locking.
func (s *Store) Lock(id model.RoomID) (func(), error) {
	s.mu.RLock()
	l, ok := s.locks[id]
	s.mu.RUnlock()
	if !ok {
		return nil, model.ErrRoomNotFound
	}

	l.Lock()
	return l.Unlock, nil
}
