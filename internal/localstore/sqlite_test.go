package localstore_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"genai-space-backend/internal/localstore"
)

func newTestStore(t *testing.T) *localstore.Store {
	t.Helper()
	s, err := localstore.Open(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStore_SaveLoadRemove(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var got []string
	found, err := s.Load(ctx, "wishlist", "u1", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Save(ctx, "wishlist", "u1", []string{"a", "b"}))
	require.NoError(t, s.Save(ctx, "wishlist", "u1", []string{"c"}))

	found, err = s.Load(ctx, "wishlist", "u1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"c"}, got)

	require.NoError(t, s.Remove(ctx, "wishlist", "u1"))
	found, err = s.Load(ctx, "wishlist", "u1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_NamespacesAreIsolated(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "drafts", "u1", map[string]int{"rows": 8}))

	var got []string
	found, err := s.Load(ctx, "wishlist", "u1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestStore_MalformedValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveRaw(ctx, "wishlist", "u1", "{not json"))

	var got []string
	found, err := s.Load(ctx, "wishlist", "u1", &got)
	assert.False(t, found)
	assert.ErrorIs(t, err, localstore.ErrMalformed)
}

func TestStore_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "local.db")
	ctx := context.Background()

	s, err := localstore.Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, "wishlist", "u1", []string{"sofa"}))
	require.NoError(t, s.Close())

	s, err = localstore.Open(path)
	require.NoError(t, err)
	defer s.Close()

	var got []string
	found, err := s.Load(ctx, "wishlist", "u1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []string{"sofa"}, got)
}
