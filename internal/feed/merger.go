package feed

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrSupersededFetch marks a refresh whose response arrived after a newer
// refresh had already been issued. Its result is discarded; last response
// wins.
var ErrSupersededFetch = errors.New("fetch superseded by a newer one")

// Fetcher provides the combined feed for the authenticated session.
type Fetcher interface {
	Feed(ctx context.Context) (Feed, error)
}

// Merger fetches the combined feed and keeps the latest merged snapshot.
// Filtering uses the view at response time, so a response that outlives a
// view switch never shows items from the abandoned view.
type Merger struct {
	fetcher     Fetcher
	currentView func() View
	gen         atomic.Int64

	mu    sync.RWMutex
	items []Item
}

func NewMerger(fetcher Fetcher, currentView func() View) *Merger {
	return &Merger{fetcher: fetcher, currentView: currentView, items: []Item{}}
}

// Refresh performs one feed round trip, merges the response for the current
// view and replaces the snapshot. If another Refresh started while this one
// was in flight, the response is dropped and ErrSupersededFetch is returned.
func (m *Merger) Refresh(ctx context.Context) ([]Item, error) {
	gen := m.gen.Add(1)

	f, err := m.fetcher.Feed(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	items := Merge(f, m.currentView())

	m.mu.Lock()
	defer m.mu.Unlock()
	if gen != m.gen.Load() {
		return nil, ErrSupersededFetch
	}
	m.items = items
	return items, nil
}

// Items returns a copy of the latest merged snapshot.
func (m *Merger) Items() []Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	items := make([]Item, len(m.items))
	copy(items, m.items)
	return items
}
