// Package store persists privacy-conscious visitor metrics and terminal demo
// sessions in sqlite.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

var ErrNotFound = errors.New("not found")

// Visit is one tracked page view. The client IP is stored hashed.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
	Country   string    `json:"country,omitempty"`
}

// Activation is one screen shown to one terminal demo viewer
type Activation struct {
	SessionID   string    `json:"session_id"`
	ScreenID    string    `json:"screen_id"`
	Kind        string    `json:"kind"`
	RewardURL   string    `json:"reward_url,omitempty"`
	ActivatedAt time.Time `json:"activated_at"`
}

// ScreenStat counts activations of one screen
type ScreenStat struct {
	ScreenID string `json:"screen_id"`
	Kind     string `json:"kind"`
	Count    int64  `json:"count"`
}

// Stats feeds the admin dashboard
type Stats struct {
	TotalVisitors      int64        `json:"total_visitors"`
	UniqueVisitors     int64        `json:"unique_visitors"`
	VisitorsToday      int64        `json:"visitors_today"`
	VisitorsThisWeek   int64        `json:"visitors_this_week"`
	DemoSessions       int64        `json:"demo_sessions"`
	ActiveDemoSessions int64        `json:"active_demo_sessions"`
	ScreenActivations  int64        `json:"screen_activations"`
	RewardActivations  int64        `json:"reward_activations"`
	TopScreens         []ScreenStat `json:"top_screens"`
	RecentVisitors     []Visit      `json:"recent_visitors"`
}

type Store struct {
	db *sql.DB
}

// Open opens the sqlite file at path, creating it and its directory when
// missing, and applies migrations.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := Migrate(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) DB() *sql.DB {
	return s.db
}

func ts(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromTS(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// RecordVisit stores one page view
func (s *Store) RecordVisit(ctx context.Context, v Visit) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO visitors (hashed_ip, user_agent, path, visited_at, country)
VALUES (?, ?, ?, ?, ?)`, v.HashedIP, v.UserAgent, v.Path, ts(v.Timestamp), v.Country)
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecentVisitors returns the newest visits first
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT id, hashed_ip, user_agent, path, visited_at, country
FROM visitors
ORDER BY visited_at DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query visitors: %w", err)
	}
	defer rows.Close()

	var out []Visit
	for rows.Next() {
		var v Visit
		var at int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &at, &v.Country); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		v.Timestamp = fromTS(at)
		out = append(out, v)
	}
	return out, rows.Err()
}

// CleanupVisitors deletes visits older than cutoff and returns how many went
func (s *Store) CleanupVisitors(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM visitors WHERE visited_at < ?`, ts(cutoff))
	if err != nil {
		return 0, fmt.Errorf("cleanup visitors: %w", err)
	}
	return res.RowsAffected()
}

// StartDemoSession registers a terminal demo viewer
func (s *Store) StartDemoSession(ctx context.Context, id, hashedIP string, at time.Time) error {
	_, err := s.db.ExecContext(ctx, `
INSERT INTO demo_sessions (id, hashed_ip, started_at) VALUES (?, ?, ?)`, id, hashedIP, ts(at))
	if err != nil {
		return fmt.Errorf("start demo session: %w", err)
	}
	return nil
}

// EndDemoSession stamps the end of a viewer's session
func (s *Store) EndDemoSession(ctx context.Context, id string, at time.Time) error {
	res, err := s.db.ExecContext(ctx, `
UPDATE demo_sessions SET ended_at = ? WHERE id = ? AND ended_at IS NULL`, ts(at), id)
	if err != nil {
		return fmt.Errorf("end demo session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// RecordActivation logs one screen activation and bumps the session counter
func (s *Store) RecordActivation(ctx context.Context, a Activation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
UPDATE demo_sessions SET activations = activations + 1 WHERE id = ?`, a.SessionID)
	if err != nil {
		return fmt.Errorf("bump activations: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if a.ActivatedAt.IsZero() {
		a.ActivatedAt = time.Now()
	}
	_, err = tx.ExecContext(ctx, `
INSERT INTO screen_activations (session_id, screen_id, kind, reward_url, activated_at)
VALUES (?, ?, ?, ?, ?)`, a.SessionID, a.ScreenID, a.Kind, a.RewardURL, ts(a.ActivatedAt))
	if err != nil {
		return fmt.Errorf("insert activation: %w", err)
	}
	return tx.Commit()
}

// Stats aggregates dashboard counters relative to now
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekAgo := now.Add(-7 * 24 * time.Hour)

	counters := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE visited_at >= ?`, []any{ts(dayStart)}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE visited_at >= ?`, []any{ts(weekAgo)}},
		{&stats.DemoSessions, `SELECT COUNT(*) FROM demo_sessions`, nil},
		{&stats.ActiveDemoSessions, `SELECT COUNT(*) FROM demo_sessions WHERE ended_at IS NULL`, nil},
		{&stats.ScreenActivations, `SELECT COUNT(*) FROM screen_activations`, nil},
		{&stats.RewardActivations, `SELECT COUNT(*) FROM screen_activations WHERE kind = 'reward'`, nil},
	}
	for _, c := range counters {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT screen_id, kind, COUNT(*) AS n
FROM screen_activations
GROUP BY screen_id, kind
ORDER BY n DESC, screen_id
LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("top screens: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var st ScreenStat
		if err := rows.Scan(&st.ScreenID, &st.Kind, &st.Count); err != nil {
			return nil, fmt.Errorf("scan top screen: %w", err)
		}
		stats.TopScreens = append(stats.TopScreens, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close() // single connection

	stats.RecentVisitors, err = s.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
