package stopwatch

import (
	"sync"
	"time"
)

// NotRunning is returned by Elapsed and Stop when the stopwatch is stopped.
const NotRunning int64 = -1

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Stopwatch measures wall-clock milliseconds since it was started.
// startedAt is only meaningful while running.
type Stopwatch struct {
	mu        sync.RWMutex
	clock     Clock
	running   bool
	startedAt time.Time
}

func New(clock Clock) *Stopwatch {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Stopwatch{clock: clock}
}

func (s *Stopwatch) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return
	}

	s.startedAt = s.clock.Now()
	s.running = true
}

// Stop returns the elapsed milliseconds, or NotRunning if the stopwatch
// was already stopped.
func (s *Stopwatch) Stop() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return NotRunning
	}

	elapsed := s.elapsedLocked()
	s.running = false
	return elapsed
}

func (s *Stopwatch) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startedAt = s.clock.Now()
}

func (s *Stopwatch) Elapsed() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return NotRunning
	}
	return s.elapsedLocked()
}

func (s *Stopwatch) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

func (s *Stopwatch) StartedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.startedAt
}

func (s *Stopwatch) elapsedLocked() int64 {
	return s.clock.Now().Sub(s.startedAt).Milliseconds()
}
