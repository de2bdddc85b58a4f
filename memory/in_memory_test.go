package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/researchmesh/core"
)

// Interface compliance (compile-time assertion)
var _ core.MemoryStore = (*InMemoryStore)(nil)

func TestInMemoryStore_StoreAndList(t *testing.T) {
	store := NewInMemoryStore()

	r1 := core.NewMemoryRecord("sess-1", core.MemoryKindResult, "hypothesis output", nil)
	r2 := core.NewMemoryRecord("sess-1", core.MemoryKindResult, "analysis output", nil)
	require.NoError(t, store.Store(r1))
	require.NoError(t, store.Store(r2))

	recs, err := store.List("sess-1")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, r1.ID, recs[0].ID)
	assert.Equal(t, r2.ID, recs[1].ID)

	other, err := store.List("sess-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestInMemoryStore_Search(t *testing.T) {
	store := NewInMemoryStore()
	require.NoError(t, store.Store(core.NewMemoryRecord("sess-1", core.MemoryKindResult, "quicksort pivot analysis", nil)))
	require.NoError(t, store.Store(core.NewMemoryRecord("sess-1", core.MemoryKindResult, "mergesort baseline", nil)))

	hits, err := store.Search("sess-1", "pivot", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Contains(t, hits[0].Content, "pivot")

	all, err := store.Search("sess-1", "", 1)
	require.NoError(t, err)
	assert.Len(t, all, 1, "limit must cap results")
}

func TestInMemoryStore_Delete(t *testing.T) {
	store := NewInMemoryStore()
	rec := core.NewMemoryRecord("sess-1", core.MemoryKindResult, "x", nil)
	require.NoError(t, store.Store(rec))

	require.NoError(t, store.Delete("sess-1", rec.ID))
	assert.ErrorIs(t, store.Delete("sess-1", rec.ID), ErrNotFound)
	assert.ErrorIs(t, store.Delete("sess-9", "x"), ErrNotFound)
}
