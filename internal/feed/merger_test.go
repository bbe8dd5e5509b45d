package feed

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	feed    Feed
	err     error
	onFetch func()
}

func (s *stubFetcher) Feed(_ context.Context) (Feed, error) {
	if s.onFetch != nil {
		s.onFetch()
	}
	return s.feed, s.err
}

// scriptedFetcher serves one scripted response per call, in order.
type scriptedFetcher struct {
	script chan func() (Feed, error)
}

func (s *scriptedFetcher) Feed(_ context.Context) (Feed, error) {
	return (<-s.script)()
}

func TestMergerRefresh(t *testing.T) {
	fetcher := &stubFetcher{feed: testFeed()}
	merger := NewMerger(fetcher, func() View { return ViewGeneral })

	require.Empty(t, merger.Items())

	items, err := merger.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 4)
	require.Equal(t, items, merger.Items())
}

func TestMergerUsesViewAtResponseTime(t *testing.T) {
	view := ViewGeneral
	fetcher := &stubFetcher{feed: testFeed()}
	// Navigation happens while the request is in flight.
	fetcher.onFetch = func() { view = ViewPersonal }
	merger := NewMerger(fetcher, func() View { return view })

	items, err := merger.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, KindEvent, items[0].Kind)
}

func TestMergerDiscardsSupersededResponse(t *testing.T) {
	fetcher := &scriptedFetcher{script: make(chan func() (Feed, error), 1)}
	merger := NewMerger(fetcher, func() View { return ViewGeneral })

	oldFeed := Feed{Events: []Event{{ID: 1, Title: "old", CalendarType: ViewGeneral}}}
	freshFeed := Feed{Events: []Event{{ID: 2, Title: "new", CalendarType: ViewGeneral}}}

	started := make(chan struct{})
	release := make(chan struct{})
	errCh := make(chan error, 1)
	go func() {
		_, err := merger.Refresh(context.Background())
		errCh <- err
	}()
	fetcher.script <- func() (Feed, error) {
		close(started)
		<-release
		return oldFeed, nil
	}
	<-started

	// A second refresh completes while the first is still in flight.
	fetcher.script <- func() (Feed, error) { return freshFeed, nil }
	items, err := merger.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int64(2), items[0].ID)

	// Now the first response arrives; it must be dropped.
	close(release)
	select {
	case err := <-errCh:
		require.ErrorIs(t, err, ErrSupersededFetch)
	case <-time.After(time.Second):
		t.Fatal("first refresh did not finish")
	}
	require.Equal(t, int64(2), merger.Items()[0].ID)
}

func TestMergerItemsReturnsCopy(t *testing.T) {
	fetcher := &stubFetcher{feed: testFeed()}
	merger := NewMerger(fetcher, func() View { return ViewGeneral })
	_, err := merger.Refresh(context.Background())
	require.NoError(t, err)

	items := merger.Items()
	items[0].Title = "mutated"
	require.NotEqual(t, "mutated", merger.Items()[0].Title)
}
