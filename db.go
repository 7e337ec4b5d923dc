package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/store"
)

func openStore(ctx context.Context, cfg config.DatabaseConfig) (*store.Store, error) {
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	st, err := store.Open(openCtx, cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Path, err)
	}
	v, _, err := store.SchemaVersion(st.DB())
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("schema version: %w", err)
	}
	log.Printf("Database ready at %s (schema v%d)", cfg.Path, v)
	return st, nil
}

// cleanupOldVisitorData drops visits older than the retention window
func (a *App) cleanupOldVisitorData(ctx context.Context) {
	cutoff := time.Now().Add(-a.cfg.Database.VisitorRetention)
	rowsDeleted, err := a.store.CleanupVisitors(ctx, cutoff)
	if err != nil {
		log.Printf("Error cleaning up old visitor data: %v", err)
		return
	}
	if rowsDeleted > 0 {
		log.Printf("Privacy cleanup: Removed %d visitor records older than %v", rowsDeleted, a.cfg.Database.VisitorRetention)
	}
}

// runVisitorRetention cleans up once at startup and then every interval
func (a *App) runVisitorRetention(ctx context.Context, interval time.Duration) {
	a.cleanupOldVisitorData(ctx)

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			a.cleanupOldVisitorData(ctx)
		}
	}
}
