package notify_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/curarr/internal/events"
	"github.com/vmunix/curarr/internal/notify"
)

func TestPoller_ColdStartSuppressesBacklog(t *testing.T) {
	source := &fakeSource{}
	for i := int64(1); i <= 10; i++ {
		source.push(i, events.TypeImported)
	}
	p := newPoller(t, source)

	got := p.Poll()
	assert.Empty(t, got, "cold start must not notify about backlog")
	assert.Empty(t, p.Feed())

	// The cursor landed on the max id: only newer events notify.
	source.push(11, events.TypeImported)
	got = p.Poll()
	require.Len(t, got, 1)
	assert.Equal(t, int64(11), got[0].ID)
}

func TestPoller_ColdStartEmptyLog(t *testing.T) {
	source := &fakeSource{}
	p := newPoller(t, source)

	assert.Empty(t, p.Poll())

	// The very first real event still notifies.
	source.push(1, events.TypeDownloaded)
	got := p.Poll()
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestPoller_DedupAcrossPolls(t *testing.T) {
	source := &fakeSource{}
	p := newPoller(t, source)
	p.Poll() // cold start

	source.push(1, events.TypeGrabbed)
	require.Len(t, p.Poll(), 1)

	// The same event replayed on the next tick yields nothing new.
	assert.Empty(t, p.Poll())
	assert.Len(t, p.Feed(), 1)
}

func TestPoller_FeedBounded(t *testing.T) {
	source := &fakeSource{}
	p := newPoller(t, source)
	p.Poll() // cold start

	var id int64
	for batch := 0; batch < 3; batch++ {
		for i := 0; i < 20; i++ {
			id++
			source.push(id, events.TypeImported)
		}
		p.Poll()
	}

	feed := p.Feed()
	require.Len(t, feed, 50, "feed capped at 50")
	assert.Equal(t, int64(60), feed[0].ID, "newest first")
	assert.Equal(t, int64(11), feed[49].ID, "the 10 oldest evicted")
}

func TestPoller_SkipsNonNotifiableEvents(t *testing.T) {
	source := &fakeSource{}
	p := newPoller(t, source)
	p.Poll() // cold start

	source.push(1, events.TypeItemAdded)
	source.push(2, events.TypeListSynced)
	source.push(3, events.TypeFailed)

	got := p.Poll()
	require.Len(t, got, 1)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, notify.SeverityError, got[0].Severity)

	// Skipped ids still advance the cursor.
	source.push(4, events.TypeItemAdded)
	assert.Empty(t, p.Poll())
}

func TestPoller_FetchErrorSwallowed(t *testing.T) {
	source := &fakeSource{}
	p := newPoller(t, source)
	p.Poll() // cold start

	source.push(1, events.TypeImported)
	source.err = assert.AnError
	assert.Empty(t, p.Poll(), "fetch error yields no notifications")

	// Next tick recovers; the event was not lost to a moved cursor.
	source.err = nil
	got := p.Poll()
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}

func TestPoller_AuthGateSkipsFetch(t *testing.T) {
	source := &fakeSource{}
	source.push(1, events.TypeImported)

	store := notify.NewStateStore(setupTestDB(t))
	p := notify.NewPoller(source, store, alwaysDeny{}, time.Second, testLogger())

	assert.Empty(t, p.Poll())
	assert.Zero(t, source.calls, "unauthenticated poll must not touch the log")
}

func TestPoller_ReadAndRemove(t *testing.T) {
	source := &fakeSource{}
	p := newPoller(t, source)
	p.Poll() // cold start

	for i := int64(1); i <= 3; i++ {
		source.push(i, events.TypeImported)
	}
	p.Poll()
	require.Equal(t, 3, p.UnreadCount())

	require.NoError(t, p.MarkRead(2))
	assert.Equal(t, 2, p.UnreadCount())
	assert.ErrorIs(t, p.MarkRead(99), notify.ErrNotFound)

	p.MarkAllRead()
	assert.Zero(t, p.UnreadCount())

	require.NoError(t, p.Remove(3))
	assert.Len(t, p.Feed(), 2)
	assert.ErrorIs(t, p.Remove(3), notify.ErrNotFound)

	// A removed notification does not come back on the next poll.
	assert.Empty(t, p.Poll())
	assert.Len(t, p.Feed(), 2)
}

func TestPoller_ClearAllForgetsEverything(t *testing.T) {
	source := &fakeSource{}
	p := newPoller(t, source)
	p.Poll() // cold start

	source.push(1, events.TypeImported)
	source.push(2, events.TypeFailed)
	require.Len(t, p.Poll(), 2)

	p.ClearAll()
	assert.Empty(t, p.Feed())

	// Clearing resets the cursor: the next poll is a cold start again and
	// swallows whatever is in the log.
	source.push(3, events.TypeImported)
	assert.Empty(t, p.Poll())

	source.push(4, events.TypeImported)
	got := p.Poll()
	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].ID)
}

func TestPoller_StateSurvivesRestart(t *testing.T) {
	db := setupTestDB(t)
	store := notify.NewStateStore(db)
	source := &fakeSource{}

	p1 := notify.NewPoller(source, store, nil, time.Second, testLogger())
	p1.Poll() // cold start
	source.push(1, events.TypeImported)
	source.push(2, events.TypeFailed)
	require.Len(t, p1.Poll(), 2)
	require.NoError(t, p1.MarkRead(2))

	// A new poller over the same store resumes without replaying.
	p2 := notify.NewPoller(source, store, nil, time.Second, testLogger())
	feed := p2.Feed()
	require.Len(t, feed, 2)
	assert.Equal(t, int64(2), feed[0].ID)
	assert.True(t, feed[0].Read)
	assert.Equal(t, 1, p2.UnreadCount())

	assert.Empty(t, p2.Poll(), "restored cursor prevents replay")
}
