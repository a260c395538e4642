// Package cache holds the club snapshot and decides when it must be
// refreshed from the live directory.
package cache

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/use-agent/clubfeed/models"
	"golang.org/x/sync/singleflight"
)

// Event types passed to a Notifier.
const (
	EventRefreshed     = "snapshot.refreshed"
	EventRefreshFailed = "snapshot.refresh_failed"
)

// Source produces a fresh club list. Each call is one full render and
// extraction of the directory.
type Source interface {
	Fetch(ctx context.Context) ([]models.Club, error)
}

// Notifier is told about refresh outcomes. Notify must not block.
type Notifier interface {
	Notify(eventType string, data any)
}

// Snapshot is the cached club list and the time it was fetched.
type Snapshot struct {
	Records     []models.Club
	RefreshedAt time.Time
}

// Options tunes a Manager.
type Options struct {
	// Window is how long a snapshot stays fresh.
	Window time.Duration

	// ServeStale returns the previous snapshot when a refresh fails instead
	// of failing the caller. It has no effect while the snapshot is empty.
	ServeStale bool

	// Notifier receives refresh events. Optional.
	Notifier Notifier

	// Now is the clock. Defaults to time.Now.
	Now func() time.Time
}

// Manager owns the club snapshot. It starts empty, is hydrated from the
// Store on first access, and is replaced only by a refresh.
// It is safe for concurrent use.
type Manager struct {
	source Source
	store  *Store
	opts   Options

	mu   sync.RWMutex
	snap Snapshot

	hydrate    sync.Once
	flight     singleflight.Group
	refreshing atomic.Bool
}

// New creates a Manager. Nothing is read or fetched until the first call
// to Records.
func New(source Source, store *Store, opts Options) *Manager {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		source: source,
		store:  store,
		opts:   opts,
	}
}

// Records returns the current club list, refreshing it first when the
// snapshot is empty or older than the freshness window.
//
// At most one refresh runs at a time; callers that find the snapshot stale
// while a refresh is in flight wait for it and share its result. The
// returned slice is the caller's to keep.
func (m *Manager) Records(ctx context.Context) ([]models.Club, error) {
	m.hydrate.Do(m.loadStore)

	snap := m.Snapshot()
	if !m.stale(snap) {
		return slices.Clone(snap.Records), nil
	}

	v, err, shared := m.flight.Do("refresh", func() (any, error) {
		// A flight that finished just before this one started may have
		// already replaced the snapshot.
		if cur := m.Snapshot(); !m.stale(cur) {
			return cur, nil
		}
		// The refresh is shared by every waiting caller, so no single
		// caller's cancellation may abort it.
		return m.refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		prev := m.Snapshot()
		if m.opts.ServeStale && len(prev.Records) > 0 {
			slog.Debug("serving stale snapshot",
				"records", len(prev.Records),
				"refreshedAt", prev.RefreshedAt,
				"shared", shared,
			)
			return slices.Clone(prev.Records), nil
		}
		return nil, err
	}

	return slices.Clone(v.(Snapshot).Records), nil
}

// Snapshot returns the current snapshot without any freshness check.
// Callers must not modify the returned records.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snap
}

// Stats summarises the snapshot for health reporting.
func (m *Manager) Stats() models.SnapshotStats {
	snap := m.Snapshot()
	stats := models.SnapshotStats{
		Records:     len(snap.Records),
		RefreshedAt: snap.RefreshedAt,
		Stale:       m.stale(snap),
		Refreshing:  m.refreshing.Load(),
	}
	if !snap.RefreshedAt.IsZero() {
		stats.Age = m.opts.Now().Sub(snap.RefreshedAt).Round(time.Second).String()
	}
	return stats
}

// stale reports whether snap must be refreshed before it is served.
func (m *Manager) stale(snap Snapshot) bool {
	return len(snap.Records) == 0 || m.opts.Now().Sub(snap.RefreshedAt) > m.opts.Window
}

// loadStore seeds the snapshot from the Store. The refresh time stays zero,
// so loaded records count as present but never as fresh.
func (m *Manager) loadStore() {
	clubs, found, err := m.store.Load()
	if err != nil {
		slog.Warn("ignoring unreadable club cache", "path", m.store.Path(), "error", err)
		return
	}
	if !found {
		slog.Info("no club cache on disk", "path", m.store.Path())
		return
	}

	m.mu.Lock()
	if m.snap.Records == nil {
		m.snap.Records = clubs
	}
	m.mu.Unlock()
	slog.Info("club cache loaded", "path", m.store.Path(), "records", len(clubs))
}

// refresh fetches a new club list, swaps it in and persists it.
func (m *Manager) refresh(ctx context.Context) (Snapshot, error) {
	m.refreshing.Store(true)
	defer m.refreshing.Store(false)

	start := m.opts.Now()
	clubs, err := m.source.Fetch(ctx)
	if err != nil {
		se := models.AsScrapeError(err)
		slog.Error("club refresh failed",
			"code", se.Code,
			"error", err,
			"elapsed", m.opts.Now().Sub(start).Round(time.Millisecond),
		)
		m.notify(EventRefreshFailed, map[string]any{
			"code":    se.Code,
			"message": se.Message,
		})
		return Snapshot{}, err
	}
	if clubs == nil {
		clubs = []models.Club{}
	}

	snap := Snapshot{Records: clubs, RefreshedAt: m.opts.Now()}
	m.mu.Lock()
	m.snap = snap
	m.mu.Unlock()

	elapsed := snap.RefreshedAt.Sub(start).Round(time.Millisecond)
	slog.Info("club snapshot refreshed", "records", len(clubs), "elapsed", elapsed)

	// The committed snapshot stands even if it cannot be persisted; the
	// file only matters after a restart.
	if err := m.store.Save(clubs); err != nil {
		slog.Error("failed to persist club snapshot", "path", m.store.Path(), "error", err)
	}

	m.notify(EventRefreshed, map[string]any{
		"records":    len(clubs),
		"elapsed_ms": elapsed.Milliseconds(),
	})
	return snap, nil
}

func (m *Manager) notify(eventType string, data any) {
	if m.opts.Notifier != nil {
		m.opts.Notifier.Notify(eventType, data)
	}
}
