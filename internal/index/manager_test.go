package index

import (
	"context"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/go-sod/kdset/internal/database"
	pointDb "github.com/go-sod/kdset/internal/point/database"
	"github.com/go-sod/kdset/pkg/container/kdtree"
	"github.com/go-sod/kdset/pkg/geom"
	"github.com/stretchr/testify/require"
)

type memStore struct {
	mtx       sync.Mutex
	points    []geom.Point
	appendErr error
}

func (s *memStore) Append(_ context.Context, points []geom.Point) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	s.points = append(s.points, points...)
	return nil
}

func (s *memStore) Walk(_ context.Context, fn func(geom.Point) error) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	for _, p := range s.points {
		if err := fn(p); err != nil {
			return err
		}
	}
	return nil
}

func TestManager_Insert(t *testing.T) {
	tests := []struct {
		name           string
		points         []geom.Point
		expectedAdded  int
		expectedErr    error
		expectedStored int
	}{
		{
			name:           "positive",
			points:         []geom.Point{{X: 0.5, Y: 0.5}, {X: 0.25, Y: 0.75}, {X: 0.75, Y: 0.25}},
			expectedAdded:  3,
			expectedStored: 3,
		},
		{
			name:           "duplicates_in_batch",
			points:         []geom.Point{{X: 0.5, Y: 0.5}, {X: 0.5, Y: 0.5}, {X: 0.1, Y: 0.1}},
			expectedAdded:  2,
			expectedStored: 2,
		},
		{
			name:           "out_of_range_rejects_batch",
			points:         []geom.Point{{X: 0.5, Y: 0.5}, {X: 0.5, Y: 1.5}},
			expectedErr:    geom.ErrOutOfRange,
			expectedStored: 0,
		},
		{
			name:           "empty",
			points:         []geom.Point{},
			expectedStored: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			store := &memStore{}
			m := New(store)
			added, err := m.Insert(context.Background(), test.points...)
			if !errors.Is(err, test.expectedErr) {
				t.Errorf("insert error, got: %v, expected: %v", err, test.expectedErr)
			}
			if added != test.expectedAdded {
				t.Errorf("inserted points, got: %d, expected: %d", added, test.expectedAdded)
			}
			if len(store.points) != test.expectedStored || m.Len() != test.expectedStored {
				t.Errorf("stored points, got log: %d tree: %d, expected: %d", len(store.points), m.Len(), test.expectedStored)
			}
		})
	}
}

func TestManager_InsertStoreFailure(t *testing.T) {
	storeErr := errors.New("disk full")
	m := New(&memStore{appendErr: storeErr})
	_, err := m.Insert(context.Background(), geom.Point{X: 0.5, Y: 0.5})
	require.True(t, errors.Is(err, storeErr))
	require.Equal(t, 0, m.Len())
	require.False(t, m.Contains(context.Background(), geom.Point{X: 0.5, Y: 0.5}))
}

func TestManager_Queries(t *testing.T) {
	ctx := context.Background()
	for _, pruning := range []kdtree.Pruning{kdtree.PruneRegion, kdtree.PruneSplit} {
		m := New(nil, WithPruning(pruning))
		require.Equal(t, pruning, m.Pruning())

		_, ok := m.Nearest(ctx, geom.Point{X: 0.1, Y: 0.1})
		require.False(t, ok)

		_, err := m.Insert(ctx, geom.Point{X: 0.5, Y: 0.5}, geom.Point{X: 0.25, Y: 0.75}, geom.Point{X: 0.75, Y: 0.25})
		require.NoError(t, err)

		require.True(t, m.Contains(ctx, geom.Point{X: 0.25, Y: 0.75}))
		require.False(t, m.Contains(ctx, geom.Point{X: 0.25, Y: 0.25}))

		points, err := m.Range(ctx, geom.Rect{MinX: 0, MinY: 0.6, MaxX: 1, MaxY: 1})
		require.NoError(t, err)
		require.Equal(t, []geom.Point{{X: 0.25, Y: 0.75}}, points)

		_, err = m.Range(ctx, geom.Rect{MinX: 1, MinY: 0, MaxX: 0, MaxY: 1})
		require.True(t, errors.Is(err, geom.ErrInvalidRect))

		nearest, ok := m.Nearest(ctx, geom.Point{X: 0.7, Y: 0.3})
		require.True(t, ok)
		require.Equal(t, geom.Point{X: 0.75, Y: 0.25}, nearest)

		require.Equal(t, []geom.Point{{X: 0.75, Y: 0.25}, {X: 0.5, Y: 0.5}}, m.KNearest(ctx, geom.Point{X: 0.7, Y: 0.3}, 2))
		require.Len(t, m.Partitions(ctx), 3)
	}
}

func TestManager_ReplayKeepsShape(t *testing.T) {
	dir, err := ioutil.TempDir("", "kdset-index")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	ctx := context.Background()
	cfg := &database.Config{FileName: filepath.Join(dir, "index.db")}
	db, err := database.NewFromEnv(ctx, cfg)
	require.NoError(t, err)

	points := []geom.Point{{X: 0.5, Y: 0.5}, {X: 0.25, Y: 0.75}, {X: 0.75, Y: 0.25}, {X: 0.1, Y: 0.9}, {X: 0.9, Y: 0.6}}
	m := New(pointDb.New(db))
	require.NoError(t, m.Run(ctx))
	_, err = m.Insert(ctx, points[:3]...)
	require.NoError(t, err)
	_, err = m.Insert(ctx, points[2:]...)
	require.NoError(t, err)
	expected := m.Partitions(ctx)
	require.NoError(t, db.Close(ctx))

	db, err = database.NewFromEnv(ctx, cfg)
	require.NoError(t, err)
	defer db.Close(ctx)

	replayed := New(pointDb.New(db))
	require.NoError(t, replayed.Run(ctx))
	require.Equal(t, len(points), replayed.Len())
	require.Equal(t, expected, replayed.Partitions(ctx))
}

func TestManager_ReplayDisabled(t *testing.T) {
	store := &memStore{points: []geom.Point{{X: 0.5, Y: 0.5}}}
	m := New(store, WithReplay(false))
	require.NoError(t, m.Run(context.Background()))
	require.Equal(t, 0, m.Len())
}

func TestManager_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	m := New(&memStore{})
	wg := sync.WaitGroup{}
	for w := 0; w < 4; w++ {
		w := w
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				_, _ = m.Insert(ctx, geom.Point{X: float64(w) / 4, Y: float64(i) / 100})
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				m.Nearest(ctx, geom.Point{X: 0.5, Y: float64(i) / 100})
				_, _ = m.Range(ctx, geom.UnitSquare())
			}
		}()
	}
	wg.Wait()
	require.Equal(t, 400, m.Len())
}
