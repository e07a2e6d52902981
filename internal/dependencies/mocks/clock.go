package mocks

import (
	"sync"
	"time"

	"github.com/MaelVB/Drawsyn-sub000/internal/dependencies/clock"
)

// Epoch is the fixed start time shared by tests
var Epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// MockClock is a manually advanced Clock. Round deadlines and idle sweeps
// only move when a test calls Advance.
type MockClock struct {
	mu  sync.Mutex
	now time.Time
}

var _ clock.Clock = (*MockClock)(nil)

// NewMockClock creates a MockClock set to the given time
func NewMockClock(t time.Time) *MockClock {
	return &MockClock{now: t}
}

// Now returns the mocked current time
func (c *MockClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by the given duration
func (c *MockClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
