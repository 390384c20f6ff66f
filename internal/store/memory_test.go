package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"genai-space-backend/internal/store"
)

func TestMemoryStore_WatchDeliversFullSnapshots(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	var snapshots [][]store.Document
	cancel, err := s.Watch(ctx, "submissions", func(docs []store.Document) {
		snapshots = append(snapshots, docs)
	}, nil)
	require.NoError(t, err)
	defer cancel()

	require.Len(t, snapshots, 1)
	assert.Empty(t, snapshots[0])

	require.NoError(t, s.Set(ctx, "submissions", "b", store.Fields{"status": "pending"}))
	require.NoError(t, s.Set(ctx, "submissions", "a", store.Fields{"status": "pending"}))

	require.Len(t, snapshots, 3)
	last := snapshots[2]
	require.Len(t, last, 2)
	assert.Equal(t, "a", last[0].ID)
	assert.Equal(t, "b", last[1].ID)
}

func TestMemoryStore_MergeIsShallowAndRequiresDocument(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	err := s.Merge(ctx, "submissions", "missing", store.Fields{"progress": 50})
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Set(ctx, "submissions", "x", store.Fields{"status": "pending", "progress": 10}))
	require.NoError(t, s.Merge(ctx, "submissions", "x", store.Fields{"progress": 50}))

	var got store.Fields
	cancel, err := s.Watch(ctx, "submissions", func(docs []store.Document) {
		got = docs[0].Fields
	}, nil)
	require.NoError(t, err)
	defer cancel()

	assert.Equal(t, "pending", got["status"])
	assert.Equal(t, float64(50), got["progress"])
}

func TestMemoryStore_DeleteMissingIsNoop(t *testing.T) {
	s := store.NewMemoryStore()
	assert.NoError(t, s.Delete(context.Background(), "submissions", "nope"))
}

func TestMemoryStore_CancelStopsDelivery(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	calls := 0
	cancel, err := s.Watch(ctx, "submissions", func([]store.Document) { calls++ }, nil)
	require.NoError(t, err)
	cancel()
	cancel()

	require.NoError(t, s.Set(ctx, "submissions", "a", store.Fields{}))
	assert.Equal(t, 1, calls)
}

func TestMemoryStore_InjectedFailures(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	boom := errors.New("permission denied")

	s.FailWrites(boom)
	assert.ErrorIs(t, s.Set(ctx, "submissions", "a", store.Fields{}), boom)
	s.FailWrites(nil)
	assert.NoError(t, s.Set(ctx, "submissions", "a", store.Fields{}))

	s.FailWatch(boom)
	_, err := s.Watch(ctx, "submissions", func([]store.Document) {}, nil)
	assert.ErrorIs(t, err, boom)
}

func TestMemoryBlobStore_Write(t *testing.T) {
	b := store.NewMemoryBlobStore("https://blobs.test/")
	url, err := b.Write(context.Background(), "generated/1/out.jpg", []byte("img"), "image/jpeg")
	require.NoError(t, err)
	assert.Equal(t, "https://blobs.test/generated/1/out.jpg", url)

	data, ok := b.Object("generated/1/out.jpg")
	require.True(t, ok)
	assert.Equal(t, []byte("img"), data)
}
