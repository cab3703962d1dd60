package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	repo, err := NewRepository(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestNewRepositoryEmptyPath(t *testing.T) {
	if _, err := NewRepository(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestCreateAssignsID(t *testing.T) {
	repo := newTestRepository(t)
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s := &Session{StartedAt: start, StoppedAt: start.Add(3 * time.Second), Elapsed: 3 * time.Second}
	if err := repo.Create(context.Background(), s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.ID == 0 {
		t.Fatalf("expected id to be assigned")
	}
}

func TestRecentNewestFirst(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	for i := 1; i <= 3; i++ {
		stop := start.Add(time.Duration(i) * time.Second)
		if err := repo.RecordSession(ctx, start, stop, int64(i*1000)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	sessions, err := repo.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(sessions))
	}
	if sessions[0].ElapsedMillis() != 3000 || sessions[1].ElapsedMillis() != 2000 {
		t.Fatalf("unexpected order: %d, %d", sessions[0].ElapsedMillis(), sessions[1].ElapsedMillis())
	}
	if !sessions[0].StartedAt.Equal(start) {
		t.Fatalf("expected start %v, got %v", start, sessions[0].StartedAt)
	}
	if !sessions[0].StoppedAt.Equal(start.Add(3 * time.Second)) {
		t.Fatalf("unexpected stop time %v", sessions[0].StoppedAt)
	}
}

func TestClear(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()
	now := time.Now()
	if err := repo.RecordSession(ctx, now, now, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sessions, err := repo.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sessions) != 0 {
		t.Fatalf("expected no sessions, got %d", len(sessions))
	}
}
