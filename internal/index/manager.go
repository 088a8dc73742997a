// Package index serves one kd-tree to concurrent callers and records every new point in the point log.
package index

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-sod/kdset/internal/logging"
	"github.com/go-sod/kdset/internal/metrics"
	"github.com/go-sod/kdset/pkg/container/kdtree"
	"github.com/go-sod/kdset/pkg/geom"
)

// Contract for returning the Manager instance
type ProvideFn func() (*Manager, error)

// Store is the durable log of inserted points.
type Store interface {
	Append(ctx context.Context, points []geom.Point) error
	Walk(ctx context.Context, fn func(geom.Point) error) error
}

type Options struct {
	pruning kdtree.Pruning
	replay  bool
}

type Option func(*Manager)

func WithPruning(p kdtree.Pruning) Option {
	return func(m *Manager) {
		m.opts.pruning = p
	}
}

func WithReplay(replay bool) Option {
	return func(m *Manager) {
		m.opts.replay = replay
	}
}

// New returns a manager over an empty tree. store may be nil, then nothing is persisted.
func New(store Store, opts ...Option) *Manager {
	m := &Manager{store: store, opts: Options{pruning: kdtree.PruneRegion, replay: true}}
	for _, opt := range opts {
		opt(m)
	}
	m.tree = kdtree.New(kdtree.WithPruning(m.opts.pruning))
	return m
}

// Manager guards the tree with a RWMutex: queries run concurrently, inserts run alone.
type Manager struct {
	mtx   sync.RWMutex
	opts  Options
	tree  *kdtree.Tree
	store Store
}

// Run replays the point log into the tree in the order the points were first inserted.
func (m *Manager) Run(ctx context.Context) error {
	if m.store == nil || !m.opts.replay {
		return nil
	}
	logger := logging.FromContext(ctx)
	defer metrics.RecordLatency(ctx, "replay", time.Now())

	m.mtx.Lock()
	defer m.mtx.Unlock()
	var skipped int
	if err := m.store.Walk(ctx, func(p geom.Point) error {
		if _, err := m.tree.Add(p); err != nil {
			skipped++
		}
		return nil
	}); err != nil {
		return fmt.Errorf("replay point log: %w", err)
	}
	if skipped > 0 {
		logger.Warnf("skipped %d invalid points in the point log", skipped)
	}
	logger.Infow("point log replayed", "size", m.tree.Len(), "pruning", m.opts.pruning.String())
	metrics.RecordInsert(ctx, m.tree.Len(), m.tree.Len())
	return nil
}

// Insert adds the points that are not stored yet and returns how many it added. When any
// point is out of the unit square the whole batch is rejected and nothing is stored.
func (m *Manager) Insert(ctx context.Context, points ...geom.Point) (int, error) {
	defer metrics.RecordLatency(ctx, "insert", time.Now())
	for i, p := range points {
		if err := p.ValidateUnit(); err != nil {
			metrics.RecordRejected(ctx, len(points))
			return 0, fmt.Errorf("point %d %v: %w", i, p, err)
		}
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	fresh := make([]geom.Point, 0, len(points))
	seen := make(map[geom.Point]struct{}, len(points))
	for _, p := range points {
		if _, ok := seen[p]; ok || m.tree.Contains(p) {
			continue
		}
		seen[p] = struct{}{}
		fresh = append(fresh, p)
	}
	if len(fresh) == 0 {
		return 0, nil
	}

	if m.store != nil {
		if err := m.store.Append(ctx, fresh); err != nil {
			return 0, fmt.Errorf("append to point log: %w", err)
		}
	}
	for _, p := range fresh {
		if err := m.tree.Insert(p); err != nil {
			return 0, fmt.Errorf("insert %v: %w", p, err)
		}
	}
	metrics.RecordInsert(ctx, len(fresh), m.tree.Len())
	logging.FromContext(ctx).Debugw("points inserted", "inserted", len(fresh), "size", m.tree.Len())
	return len(fresh), nil
}

func (m *Manager) Contains(ctx context.Context, p geom.Point) bool {
	defer metrics.RecordLatency(ctx, "contains", time.Now())
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.tree.Contains(p)
}

func (m *Manager) Range(ctx context.Context, r geom.Rect) ([]geom.Point, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	defer metrics.RecordLatency(ctx, "range", time.Now())
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.tree.Range(r), nil
}

func (m *Manager) Nearest(ctx context.Context, p geom.Point) (geom.Point, bool) {
	defer metrics.RecordLatency(ctx, "nearest", time.Now())
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.tree.Nearest(p)
}

func (m *Manager) KNearest(ctx context.Context, p geom.Point, k int) []geom.Point {
	defer metrics.RecordLatency(ctx, "knearest", time.Now())
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.tree.KNearest(p, k)
}

func (m *Manager) Partitions(ctx context.Context) []kdtree.Partition {
	defer metrics.RecordLatency(ctx, "partitions", time.Now())
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.tree.Partitions()
}

func (m *Manager) Len() int {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.tree.Len()
}

func (m *Manager) Pruning() kdtree.Pruning {
	return m.opts.pruning
}
