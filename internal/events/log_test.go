package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLog_Append_MonotonicIDs(t *testing.T) {
	db := setupTestDB(t)
	log := NewLog(db)

	var last int64
	for i := 0; i < 5; i++ {
		id, err := log.Append(New(TypeImported, "imported something"))
		require.NoError(t, err)
		assert.Greater(t, id, last, "ids must increase")
		last = id
	}
}

func TestLog_Recent_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	log := NewLog(db)

	for i := 0; i < 4; i++ {
		_, err := log.Append(New(TypeGrabbed, "grab"))
		require.NoError(t, err)
	}

	events, err := log.Recent(3)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Greater(t, events[0].ID, events[1].ID)
	assert.Greater(t, events[1].ID, events[2].ID)
}

func TestLog_Since(t *testing.T) {
	db := setupTestDB(t)
	log := NewLog(db)

	var ids []int64
	for i := 0; i < 3; i++ {
		id, err := log.Append(New(TypeDownloaded, "done"))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	events, err := log.Since(ids[0])
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, ids[1], events[0].ID, "oldest first")
	assert.Equal(t, ids[2], events[1].ID)
}

func TestLog_Append_EntityRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	log := NewLog(db)

	a := New(TypeFailed, "could not add item").
		WithEntity("item", 42).
		WithLabel("Download Failed")
	id, err := log.Append(a)
	require.NoError(t, err)

	events, err := log.Recent(1)
	require.NoError(t, err)
	require.Len(t, events, 1)

	got := events[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, TypeFailed, got.Type)
	assert.Equal(t, "could not add item", got.Message)
	assert.Equal(t, "Download Failed", got.Label)
	assert.Equal(t, "item", got.EntityType)
	assert.Equal(t, int64(42), got.EntityID)
	assert.WithinDuration(t, time.Now(), got.CreatedAt, time.Minute)
}
