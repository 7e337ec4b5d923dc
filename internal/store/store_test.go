package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s, err := Open(ctx, filepath.Join(t.TempDir(), "nested", "portfolio.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenAppliesMigrations(t *testing.T) {
	s := openTestStore(t)

	v, dirty, err := SchemaVersion(s.DB())
	require.NoError(t, err)
	require.False(t, dirty)
	require.Equal(t, uint(2), v)

	// re-running is a no-op
	require.NoError(t, Migrate(s.DB()))

	var n int
	require.NoError(t, s.DB().QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name IN ('visitors', 'demo_sessions', 'screen_activations')`).Scan(&n))
	require.Equal(t, 3, n)
}

func TestVisitorsLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.RecordVisit(ctx, Visit{HashedIP: "aaaa", UserAgent: "curl", Path: "/", Timestamp: now}))
	require.NoError(t, s.RecordVisit(ctx, Visit{HashedIP: "aaaa", Path: "/work-content", Timestamp: now.Add(-2 * time.Hour)}))
	require.NoError(t, s.RecordVisit(ctx, Visit{HashedIP: "bbbb", Path: "/", Timestamp: now.Add(-3 * 24 * time.Hour)}))
	require.NoError(t, s.RecordVisit(ctx, Visit{HashedIP: "cccc", Path: "/", Timestamp: now.Add(-400 * 24 * time.Hour)}))

	recent, err := s.RecentVisitors(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	require.Equal(t, "/", recent[0].Path)
	require.Equal(t, "curl", recent[0].UserAgent)
	require.True(t, recent[0].Timestamp.Equal(now))
	require.Equal(t, "/work-content", recent[1].Path)

	stats, err := s.Stats(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(4), stats.TotalVisitors)
	require.Equal(t, int64(3), stats.UniqueVisitors)
	require.Equal(t, int64(2), stats.VisitorsToday)
	require.Equal(t, int64(3), stats.VisitorsThisWeek)

	deleted, err := s.CleanupVisitors(ctx, now.Add(-365*24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), deleted)

	stats, err = s.Stats(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(3), stats.TotalVisitors)
	require.Len(t, stats.RecentVisitors, 3)
}

func TestDemoSessions(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.StartDemoSession(ctx, "s1", "aaaa", now))
	require.NoError(t, s.StartDemoSession(ctx, "s2", "bbbb", now))
	require.Error(t, s.StartDemoSession(ctx, "s1", "aaaa", now), "duplicate id")

	for _, a := range []Activation{
		{SessionID: "s1", ScreenID: "ssh-login", Kind: "script", ActivatedAt: now},
		{SessionID: "s1", ScreenID: "build", Kind: "script", ActivatedAt: now.Add(7 * time.Second)},
		{SessionID: "s1", ScreenID: "reward-ship-it", Kind: "reward", RewardURL: "/static/rewards/a.jpg", ActivatedAt: now.Add(14 * time.Second)},
		{SessionID: "s2", ScreenID: "ssh-login", Kind: "script", ActivatedAt: now},
	} {
		require.NoError(t, s.RecordActivation(ctx, a))
	}

	err := s.RecordActivation(ctx, Activation{SessionID: "ghost", ScreenID: "build", Kind: "script"})
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.EndDemoSession(ctx, "s2", now.Add(time.Minute)))
	require.ErrorIs(t, s.EndDemoSession(ctx, "s2", now.Add(time.Minute)), ErrNotFound)
	require.ErrorIs(t, s.EndDemoSession(ctx, "ghost", now), ErrNotFound)

	var count int
	require.NoError(t, s.DB().QueryRow(`SELECT activations FROM demo_sessions WHERE id = 's1'`).Scan(&count))
	require.Equal(t, 3, count)

	stats, err := s.Stats(ctx, now)
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.DemoSessions)
	require.Equal(t, int64(1), stats.ActiveDemoSessions)
	require.Equal(t, int64(4), stats.ScreenActivations)
	require.Equal(t, int64(1), stats.RewardActivations)
	require.NotEmpty(t, stats.TopScreens)
	require.Equal(t, ScreenStat{ScreenID: "ssh-login", Kind: "script", Count: 2}, stats.TopScreens[0])
}

func TestCloseNil(t *testing.T) {
	var s *Store
	require.NoError(t, s.Close())
}
