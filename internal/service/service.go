package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"scratchpad/internal/notify"
	"scratchpad/internal/stopwatch"

	"go.uber.org/zap"
)

// NotificationID is the ID the service posts its status notification under.
const NotificationID = 1

var (
	ErrRunning = errors.New("timer is running")
	ErrBound   = errors.New("clients are still bound")
)

// Recorder stores completed stopwatch runs.
type Recorder interface {
	RecordSession(ctx context.Context, startedAt, stoppedAt time.Time, elapsedMillis int64) error
}

type Options struct {
	Clock    stopwatch.Clock
	Notifier notify.Notifier
	Recorder Recorder
	Logger   *zap.Logger
}

// Status is the human readable state mirrored into the notification.
type Status struct {
	Title   string
	Content string
}

func (s Status) String() string {
	return s.Title + " " + s.Content
}

// Service owns a stopwatch and keeps a status notification in sync with it.
type Service struct {
	clock    stopwatch.Clock
	watch    *stopwatch.Stopwatch
	notifier notify.Notifier
	recorder Recorder
	logger   *zap.Logger

	mu        sync.Mutex
	bindings  int
	destroyed bool
}

func New(opts Options) *Service {
	clock := opts.Clock
	if clock == nil {
		clock = stopwatch.SystemClock{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		clock:    clock,
		watch:    stopwatch.New(clock),
		notifier: opts.Notifier,
		recorder: opts.Recorder,
		logger:   logger.Named("timer_service"),
	}
	s.logger.Debug("created")
	return s
}

// Binding is a client's handle on the service. Unbind releases it.
type Binding struct {
	svc  *Service
	once sync.Once
}

// Bind hands out a client handle. Binding to a destroyed service brings it
// back, so a later Destroy withdraws the notification again.
func (s *Service) Bind() *Binding {
	s.mu.Lock()
	s.destroyed = false
	s.bindings++
	n := s.bindings
	s.mu.Unlock()

	s.logger.Debug("bound", zap.Int("clients", n))
	return &Binding{svc: s}
}

func (b *Binding) Service() *Service {
	return b.svc
}

func (b *Binding) Unbind() {
	b.once.Do(func() {
		s := b.svc
		s.mu.Lock()
		s.bindings--
		n := s.bindings
		s.mu.Unlock()
		s.logger.Debug("unbound", zap.Int("clients", n))
	})
}

func (s *Service) Bound() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bindings
}

// StartTimer starts the stopwatch from zero unless it is already running.
func (s *Service) StartTimer() {
	if !s.watch.Running() {
		s.logger.Debug("starting timer")
		s.watch.Start()
	} else {
		s.logger.Debug("already running")
	}
	s.updateNotification()
}

// StopTimer stops the stopwatch and returns the elapsed milliseconds, or
// stopwatch.NotRunning if it was not running. Completed runs are recorded.
func (s *Service) StopTimer(ctx context.Context) int64 {
	startedAt := s.watch.StartedAt()
	elapsed := s.watch.Stop()
	s.logger.Debug("stopping timer", zap.Int64("elapsed_ms", elapsed))
	s.updateNotification()

	if elapsed >= 0 && s.recorder != nil {
		stoppedAt := startedAt.Add(time.Duration(elapsed) * time.Millisecond)
		if err := s.recorder.RecordSession(ctx, startedAt, stoppedAt, elapsed); err != nil {
			s.logger.Error("failed to record session", zap.Error(err))
		}
	}
	return elapsed
}

func (s *Service) ResetTimer() {
	s.logger.Debug("resetting timer")
	s.watch.Reset()
	s.updateNotification()
}

// Elapsed returns milliseconds since the timer started, or
// stopwatch.NotRunning while stopped.
func (s *Service) Elapsed() int64 {
	return s.watch.Elapsed()
}

func (s *Service) Running() bool {
	return s.watch.Running()
}

func (s *Service) Status() Status {
	status, _ := s.snapshot()
	return status
}

// snapshot reads the stopwatch once so title, content and the ongoing flag
// always agree.
func (s *Service) snapshot() (Status, bool) {
	elapsed := s.watch.Elapsed()
	if elapsed < 0 {
		return Status{Title: "Timer: Stopped", Content: "-"}, false
	}
	return Status{
		Title:   "Timer: Running",
		Content: fmt.Sprintf("Elapsed: %d", elapsed),
	}, true
}

// CanStopSelf reports whether the service may shut down on its own.
func (s *Service) CanStopSelf() bool {
	return s.checkStopSelf() == nil
}

// StopSelf destroys the service unless the timer is running or clients are
// still bound.
func (s *Service) StopSelf(ctx context.Context) error {
	if err := s.checkStopSelf(); err != nil {
		s.logger.Debug("refusing to stop", zap.Error(err))
		return err
	}
	s.Destroy(ctx)
	return nil
}

func (s *Service) checkStopSelf() error {
	if s.watch.Running() {
		return ErrRunning
	}
	if s.Bound() > 0 {
		return ErrBound
	}
	return nil
}

// Destroy stops a running timer, recording the run, and withdraws the
// notification. It is safe to call more than once.
func (s *Service) Destroy(ctx context.Context) {
	s.mu.Lock()
	if s.destroyed {
		s.mu.Unlock()
		return
	}
	s.destroyed = true
	s.mu.Unlock()

	s.logger.Debug("destroying")
	if s.watch.Running() {
		s.StopTimer(ctx)
	}
	if s.notifier != nil {
		s.notifier.Cancel(NotificationID)
	}
}

func (s *Service) updateNotification() {
	if s.notifier == nil {
		return
	}
	status, running := s.snapshot()
	s.notifier.Notify(notify.Notification{
		ID:       NotificationID,
		Title:    status.Title,
		Content:  status.Content,
		Ongoing:  running,
		PostedAt: s.clock.Now(),
	})
}
