package state

import (
	"context"
	"sync"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/five82/settingsync/internal/settings"
)

// FetchFunc loads the remote settings snapshot.
type FetchFunc func(ctx context.Context) (settings.Remote, error)

// Query runs the remote fetch on demand, records the outcome in a Store and
// hands fresh snapshots to subscribers. Concurrent refreshes share one
// request. It never retries; callers decide when to refresh again.
type Query struct {
	store   *Store
	fetch   FetchFunc
	enabled func() bool
	logger  *zap.Logger
	group   singleflight.Group

	mu        sync.Mutex
	nextID    int
	listeners map[int]func(settings.Remote)
}

// NewQuery builds a Query. enabled gates every refresh (nil means always).
func NewQuery(store *Store, fetch FetchFunc, enabled func() bool, logger *zap.Logger) *Query {
	if store == nil {
		store = &Store{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Query{
		store:     store,
		fetch:     fetch,
		enabled:   enabled,
		logger:    logger,
		listeners: make(map[int]func(settings.Remote)),
	}
}

// Subscribe registers fn for every fetch that returns new data and returns a
// function that removes it.
func (q *Query) Subscribe(fn func(settings.Remote)) func() {
	q.mu.Lock()
	defer q.mu.Unlock()
	id := q.nextID
	q.nextID++
	q.listeners[id] = fn
	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		delete(q.listeners, id)
	}
}

// Snapshot returns the current fetch status.
func (q *Query) Snapshot() Snapshot {
	return q.store.Snapshot()
}

// Refresh fetches the remote snapshot unless the gate is closed. When the
// data differs from the stored snapshot, subscribers are notified before
// Refresh returns.
func (q *Query) Refresh(ctx context.Context) error {
	if q.enabled != nil && !q.enabled() {
		return nil
	}
	_, err, _ := q.group.Do("settings", func() (any, error) {
		q.store.Begin()
		remote, err := q.fetch(ctx)
		if err != nil {
			q.store.Update(nil, err)
			q.logger.Warn("settings fetch failed", zap.Error(err))
			return nil, err
		}
		prev := q.store.Snapshot()
		q.store.Update(&remote, nil)
		if prev.HasRemote && cmp.Equal(prev.Remote, remote) {
			q.logger.Debug("settings fetched, unchanged")
			return nil, nil
		}
		q.logger.Debug("settings fetched")
		q.notify(remote)
		return nil, nil
	})
	return err
}

func (q *Query) notify(remote settings.Remote) {
	q.mu.Lock()
	fns := make([]func(settings.Remote), 0, len(q.listeners))
	for _, fn := range q.listeners {
		fns = append(fns, fn)
	}
	q.mu.Unlock()

	for _, fn := range fns {
		fn(remote)
	}
}
