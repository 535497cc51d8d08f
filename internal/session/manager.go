package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/pinetree/internal/config"
	"github.com/dgallion1/pinetree/internal/dom"
	"github.com/dgallion1/pinetree/internal/pine"
)

const cleanupInterval = 5 * time.Minute

// Manager creates, tracks and evicts hosted widgets.
type Manager struct {
	sessions *Store
	log      *slog.Logger
	cfg      config.Config

	latency *LatencyStats

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewManager(cfg config.Config, log *slog.Logger) *Manager {
	return &Manager{
		sessions: NewStore(cfg.WidgetTTL, cfg.MaxWidgets),
		log:      log,
		cfg:      cfg,
		latency:  NewLatencyStats(time.Hour, 0, OpRender, OpClick),
	}
}

// Start launches the session cleanup loop.
func (m *Manager) Start(ctx context.Context) {
	loopCtx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-loopCtx.Done():
				return
			case now := <-ticker.C:
				if n := m.sessions.Cleanup(now); n > 0 {
					m.log.Info("evicted idle widgets", "count", n, "remaining", m.sessions.Len())
				}
			}
		}
	}()
}

// Stop shuts down the cleanup loop.
func (m *Manager) Stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()
}

// CreateOptions customizes a new widget.
type CreateOptions struct {
	Source string // Where the records came from, for display
	Prefix string // Class prefix; the configured prefix when empty
}

// Create builds and renders a widget from records and registers it.
func (m *Manager) Create(records []pine.Record, opts CreateOptions) (*Session, error) {
	if len(records) > m.cfg.MaxRecords {
		return nil, fmt.Errorf("%w: %d exceeds %d", ErrTooMany, len(records), m.cfg.MaxRecords)
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = m.cfg.ClassPrefix
	}

	id := newID()
	log := m.log.With("widget_id", id)
	doc := dom.NewDocument("pine-" + id)

	start := time.Now()
	w, err := pine.New(doc, records,
		pine.WithPrefix(prefix),
		pine.WithIndent(m.cfg.IndentWidth),
		pine.WithMaxDepth(m.cfg.MaxDepth),
		pine.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}
	m.latency.Record(OpRender, time.Since(start))

	now := time.Now()
	sess := &Session{
		ID:        id,
		Source:    opts.Source,
		CreatedAt: now,
		UpdatedAt: now,
		widget:    w,
		doc:       doc,
	}
	if err := m.sessions.Put(sess); err != nil {
		return nil, err
	}
	log.Info("widget created", "source", opts.Source, "nodes", w.Len())
	return sess, nil
}

// Get returns a session by id.
func (m *Manager) Get(id string) (*Session, error) {
	sess := m.sessions.Get(id)
	if sess == nil {
		return nil, ErrNotFound
	}
	return sess, nil
}

// Click delivers a click to a session and records its latency.
func (m *Manager) Click(id string, nodeID int64, part string) (ClickResult, error) {
	sess, err := m.Get(id)
	if err != nil {
		return ClickResult{}, err
	}
	start := time.Now()
	res, err := sess.Click(nodeID, part)
	if err != nil {
		return ClickResult{}, err
	}
	m.latency.Record(OpClick, time.Since(start))
	return res, nil
}

// Delete removes a session.
func (m *Manager) Delete(id string) error {
	if !m.sessions.Delete(id) {
		return ErrNotFound
	}
	m.log.Info("widget deleted", "widget_id", id)
	return nil
}

// Count returns the number of live sessions.
func (m *Manager) Count() int {
	return m.sessions.Len()
}

// Stats returns latency snapshots for rendering and click handling.
func (m *Manager) Stats() map[string]StatsSnapshot {
	return m.latency.Snapshot()
}
