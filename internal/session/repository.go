package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

type Repository struct {
	db *sql.DB
}

func NewRepository(path string) (*Repository, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	repo := &Repository{db: db}
	if err := repo.init(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

func (r *Repository) init() error {
	query := `
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TEXT NOT NULL,
		stopped_at TEXT NOT NULL,
		elapsed_ms INTEGER NOT NULL
	)
	`
	_, err := r.db.Exec(query)
	return err
}

// Create stores s and sets its ID.
func (r *Repository) Create(ctx context.Context, s *Session) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO sessions (started_at, stopped_at, elapsed_ms) VALUES (?, ?, ?)",
		s.StartedAt.Format(time.RFC3339Nano),
		s.StoppedAt.Format(time.RFC3339Nano),
		s.Elapsed.Milliseconds(),
	)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// RecordSession satisfies service.Recorder.
func (r *Repository) RecordSession(ctx context.Context, startedAt, stoppedAt time.Time, elapsedMillis int64) error {
	s := &Session{
		StartedAt: startedAt,
		StoppedAt: stoppedAt,
		Elapsed:   time.Duration(elapsedMillis) * time.Millisecond,
	}
	return r.Create(ctx, s)
}

// Recent returns up to limit sessions, newest first.
func (r *Repository) Recent(ctx context.Context, limit int) ([]Session, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, started_at, stopped_at, elapsed_ms FROM sessions ORDER BY id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var s Session
		var startedAt, stoppedAt string
		var elapsed int64
		if err := rows.Scan(&s.ID, &startedAt, &stoppedAt, &elapsed); err != nil {
			return nil, err
		}
		s.StartedAt, _ = time.Parse(time.RFC3339Nano, startedAt)
		s.StoppedAt, _ = time.Parse(time.RFC3339Nano, stoppedAt)
		s.Elapsed = time.Duration(elapsed) * time.Millisecond
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *Repository) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM sessions")
	return err
}

func (r *Repository) Close() error {
	return r.db.Close()
}
