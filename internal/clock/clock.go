package clock

import (
	"sync"
	"time"
)

// Clock is the timestamp source injected into anything that records or
// compares wall-clock time, so tests can control the passage of time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// New returns a Clock backed by the system clock.
func New() Clock {
	return realClock{}
}

// Mock is a manually driven Clock for tests. The zero value is not usable;
// create one with NewMock.
type Mock struct {
	mu  sync.Mutex
	now time.Time
}

func NewMock(start time.Time) *Mock {
	return &Mock{now: start}
}

func (m *Mock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Mock) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}

func (m *Mock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
