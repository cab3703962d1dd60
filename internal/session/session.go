package session

import "time"

// Session is one completed stopwatch run.
type Session struct {
	ID        int64
	StartedAt time.Time
	StoppedAt time.Time
	Elapsed   time.Duration
}

func (s Session) ElapsedMillis() int64 {
	return s.Elapsed.Milliseconds()
}
