// Package metrics batches operational counters and latency summaries in
// memory and periodically flushes them to a small SQLite database. Only
// content-free aggregates are recorded: no secret text, passwords, codes, or
// shareable URLs ever reach this package.
package metrics

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// Counter names used by the frontend.
const (
	CounterLinksCreated       = "links_created_total"
	CounterSecretsRevealed    = "secrets_revealed_total"
	CounterPasswordChallenges = "password_challenges_total"
	CounterUpstreamErrors     = "upstream_errors_total"
)

// Summary names.
const (
	SummaryUpstreamLatencyMS = "upstream_latency_ms"
)

// Config controls flush cadence and logging.
type Config struct {
	FlushInterval time.Duration
	Logger        *slog.Logger
}

// Manager aggregates samples and flushes them on a ticker. Construct via
// New, then Start; Inc and Observe are safe from any goroutine and drop
// samples rather than block when the intake channel is full.
type Manager struct {
	cfg     Config
	db      *sql.DB
	samples chan sample
	stop    chan struct{}
	done    chan struct{}
	started bool

	// pending deltas, protected by mu
	mu        sync.Mutex
	counters  map[string]int64
	summaries map[string]*summaryAgg
}

type sampleKind int

const (
	sampleInc sampleKind = iota + 1
	sampleObserve
)

type sample struct {
	kind sampleKind
	name string
	v    int64
}

type summaryAgg struct {
	count int64
	sum   int64
	min   int64
	max   int64
}

// SummaryView is a read-only copy of one summary for snapshots.
type SummaryView struct {
	Count int64 `json:"count"`
	Sum   int64 `json:"sum"`
	Min   int64 `json:"min"`
	Max   int64 `json:"max"`
}

// New creates a Manager. Call InitSchema once and Start to begin flushing.
func New(db *sql.DB, cfg Config) *Manager {
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = 5 * time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Manager{
		cfg:       cfg,
		db:        db,
		samples:   make(chan sample, 1024),
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
		counters:  make(map[string]int64),
		summaries: make(map[string]*summaryAgg),
	}
}

// InitSchema ensures the metrics tables exist.
func (m *Manager) InitSchema(ctx context.Context) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS metrics_counters (
			name TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS metrics_summaries (
			name TEXT PRIMARY KEY,
			count INTEGER NOT NULL,
			sum INTEGER NOT NULL,
			min INTEGER NOT NULL,
			max INTEGER NOT NULL
		);`,
	}
	for _, stmt := range ddl {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// Start launches the background flush loop.
func (m *Manager) Start(ctx context.Context) {
	if m.started {
		return
	}
	m.started = true
	go m.loop(ctx)
}

// Stop signals the loop to exit, waits for it, and performs a final flush.
func (m *Manager) Stop(ctx context.Context) {
	if !m.started {
		_ = m.flush(ctx)
		return
	}
	close(m.stop)
	<-m.done
	_ = m.flush(ctx)
}

// Inc increments a counter by delta (>= 1).
func (m *Manager) Inc(name string, delta int64) {
	if delta <= 0 {
		return
	}
	select {
	case m.samples <- sample{kind: sampleInc, name: name, v: delta}:
	default:
		// intake full; dropping is preferable to stalling a request
	}
}

// Observe records one summary observation.
func (m *Manager) Observe(name string, value int64) {
	select {
	case m.samples <- sample{kind: sampleObserve, name: name, v: value}:
	default:
	}
}

func (m *Manager) loop(ctx context.Context) {
	log := m.cfg.Logger.With("domain", "metrics")
	ticker := time.NewTicker(m.cfg.FlushInterval)
	defer func() {
		ticker.Stop()
		close(m.done)
	}()
	for {
		select {
		case <-ctx.Done():
			log.Info("metrics stop", "reason", "context_cancel")
			return
		case <-m.stop:
			log.Info("metrics stop", "reason", "stop_signal")
			return
		case s := <-m.samples:
			m.apply(s)
		case <-ticker.C:
			if err := m.flush(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.Error("flush", "error", err)
			}
		}
	}
}

func (m *Manager) apply(s sample) {
	m.mu.Lock()
	defer m.mu.Unlock()
	switch s.kind {
	case sampleInc:
		m.counters[s.name] += s.v
	case sampleObserve:
		agg := m.summaries[s.name]
		if agg == nil {
			m.summaries[s.name] = &summaryAgg{count: 1, sum: s.v, min: s.v, max: s.v}
			return
		}
		agg.count++
		agg.sum += s.v
		if s.v < agg.min {
			agg.min = s.v
		}
		if s.v > agg.max {
			agg.max = s.v
		}
	}
}

// Snapshot returns persisted totals with pending in-memory deltas layered on.
func (m *Manager) Snapshot(ctx context.Context) (map[string]int64, map[string]SummaryView, error) {
	counters := make(map[string]int64)
	summaries := make(map[string]SummaryView)

	rows, err := m.db.QueryContext(ctx, `SELECT name, value FROM metrics_counters`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var n string
		var v int64
		if err := rows.Scan(&n, &v); err != nil {
			return nil, nil, err
		}
		counters[n] = v
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	srows, err := m.db.QueryContext(ctx, `SELECT name, count, sum, min, max FROM metrics_summaries`)
	if err != nil {
		return nil, nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var n string
		var sv SummaryView
		if err := srows.Scan(&n, &sv.Count, &sv.Sum, &sv.Min, &sv.Max); err != nil {
			return nil, nil, err
		}
		summaries[n] = sv
	}
	if err := srows.Err(); err != nil {
		return nil, nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for n, v := range m.counters {
		counters[n] += v
	}
	for n, agg := range m.summaries {
		cur, ok := summaries[n]
		if !ok || cur.Count == 0 {
			summaries[n] = SummaryView{Count: agg.count, Sum: agg.sum, Min: agg.min, Max: agg.max}
			continue
		}
		cur.Count += agg.count
		cur.Sum += agg.sum
		if agg.min < cur.Min {
			cur.Min = agg.min
		}
		if agg.max > cur.Max {
			cur.Max = agg.max
		}
		summaries[n] = cur
	}
	return counters, summaries, nil
}

// flush writes pending deltas in one transaction and resets them.
func (m *Manager) flush(ctx context.Context) error {
	m.mu.Lock()
	if len(m.counters) == 0 && len(m.summaries) == 0 {
		m.mu.Unlock()
		return nil
	}
	cPend := m.counters
	sPend := m.summaries
	m.counters = make(map[string]int64)
	m.summaries = make(map[string]*summaryAgg)
	m.mu.Unlock()

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	for name, delta := range cPend {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO metrics_counters(name,value) VALUES(?,?)
			 ON CONFLICT(name) DO UPDATE SET value = value + excluded.value`,
			name, delta); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	for name, agg := range sPend {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO metrics_summaries(name,count,sum,min,max) VALUES(?,?,?,?,?)
			 ON CONFLICT(name) DO UPDATE SET
			   count = metrics_summaries.count + excluded.count,
			   sum = metrics_summaries.sum + excluded.sum,
			   min = MIN(metrics_summaries.min, excluded.min),
			   max = MAX(metrics_summaries.max, excluded.max)`,
			name, agg.count, agg.sum, agg.min, agg.max); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
