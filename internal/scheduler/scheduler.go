// Package scheduler runs the background loops the API does not drive:
// the maintenance sweep that generates recurring service orders and the
// periodic state snapshot.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"servifix-backend/internal/repository"
	"servifix-backend/internal/store"
)

// Maintenance runs the due-schedule sweep once at startup and then on
// every tick until the context is cancelled.
type Maintenance struct {
	Store    *store.Store
	Logger   *slog.Logger
	Interval time.Duration
}

func (m Maintenance) Run(ctx context.Context) {
	m.sweep()

	ticker := time.NewTicker(m.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.sweep()
		}
	}
}

func (m Maintenance) sweep() {
	created := m.Store.RunMaintenanceSweep(time.Now())
	if len(created) == 0 {
		return
	}
	for _, order := range created {
		m.Logger.Info("maintenance order generated",
			"order_number", order.Number,
			"customer_id", order.CustomerID,
			"title", order.Title)
	}
}

// Snapshotter persists the in-memory state to Postgres on an interval so
// a restart can pick up where the last run left off. Best effort: a
// failed save is logged and retried on the next tick.
type Snapshotter struct {
	Store    *store.Store
	Repo     repository.SnapshotRepository
	Logger   *slog.Logger
	Interval time.Duration
}

func (s Snapshotter) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.save(ctx)
		}
	}
}

// SaveNow takes one snapshot outside the loop, used on shutdown.
func (s Snapshotter) SaveNow(ctx context.Context) {
	s.save(ctx)
}

func (s Snapshotter) save(ctx context.Context) {
	data, err := s.Store.Snapshot()
	if err != nil {
		s.Logger.Error("state snapshot marshal failed", "error", err)
		return
	}
	saveCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := s.Repo.Save(saveCtx, data); err != nil {
		s.Logger.Warn("state snapshot save failed", "error", err)
		return
	}
	s.Logger.Debug("state snapshot saved", "bytes", len(data))
}
