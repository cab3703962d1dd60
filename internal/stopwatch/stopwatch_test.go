package stopwatch

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func TestElapsedWhileStopped(t *testing.T) {
	s := New(newFakeClock())
	if s.Running() {
		t.Fatalf("new stopwatch should be stopped")
	}
	if got := s.Elapsed(); got != NotRunning {
		t.Fatalf("expected %d, got %d", NotRunning, got)
	}
}

func TestStartThenElapsed(t *testing.T) {
	clock := newFakeClock()
	s := New(clock)
	s.Start()
	if got := s.Elapsed(); got != 0 {
		t.Fatalf("expected 0 right after start, got %d", got)
	}
	clock.advance(1500 * time.Millisecond)
	if got := s.Elapsed(); got != 1500 {
		t.Fatalf("expected 1500, got %d", got)
	}
}

func TestStartWithSystemClock(t *testing.T) {
	s := New(nil)
	s.Start()
	got := s.Elapsed()
	if got < 0 || got >= 50 {
		t.Fatalf("expected elapsed in [0, 50), got %d", got)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	clock := newFakeClock()
	s := New(clock)
	s.Start()
	clock.advance(time.Second)
	s.Start()
	if got := s.Elapsed(); got != 1000 {
		t.Fatalf("second start must not move the baseline, got %d", got)
	}
}

func TestStopReturnsElapsed(t *testing.T) {
	clock := newFakeClock()
	s := New(clock)
	s.Start()
	clock.advance(2 * time.Second)
	want := s.Elapsed()
	if got := s.Stop(); got != want {
		t.Fatalf("expected stop to return %d, got %d", want, got)
	}
	if s.Running() {
		t.Fatalf("expected stopped after Stop")
	}
	if got := s.Elapsed(); got != NotRunning {
		t.Fatalf("expected %d after stop, got %d", NotRunning, got)
	}
}

func TestStopTwice(t *testing.T) {
	clock := newFakeClock()
	s := New(clock)
	s.Start()
	clock.advance(time.Second)
	s.Stop()
	if got := s.Stop(); got != NotRunning {
		t.Fatalf("expected %d from second stop, got %d", NotRunning, got)
	}
	if s.Running() {
		t.Fatalf("expected to remain stopped")
	}
}

func TestResetWhileRunning(t *testing.T) {
	clock := newFakeClock()
	s := New(clock)
	s.Start()
	clock.advance(5 * time.Second)
	s.Reset()
	if !s.Running() {
		t.Fatalf("reset must not change running state")
	}
	if got := s.Elapsed(); got != 0 {
		t.Fatalf("expected baseline reset to 0, got %d", got)
	}
}

func TestResetWhileStopped(t *testing.T) {
	clock := newFakeClock()
	s := New(clock)
	s.Reset()
	if s.Running() {
		t.Fatalf("reset must not start the stopwatch")
	}
	if !s.StartedAt().Equal(clock.now) {
		t.Fatalf("expected baseline %v, got %v", clock.now, s.StartedAt())
	}
}
