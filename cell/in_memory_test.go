package cell

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/researchmesh/core"
)

// Interface compliance (compile-time assertion)
var _ core.CellStore = (*InMemoryStore)(nil)

func TestInMemoryStore_AppendAssignsPosition(t *testing.T) {
	store := NewInMemoryStore()

	c1, err := store.Append(core.NewCell("sess-1", core.CellMarkdown, "# Hypotheses", "hypothesis_agent", "generate_hypotheses"))
	require.NoError(t, err)
	c2, err := store.Append(core.NewCell("sess-1", core.CellCode, "print(1)", "code_gen_agent", "generate_code"))
	require.NoError(t, err)

	assert.Equal(t, 0, c1.Position)
	assert.Equal(t, 1, c2.Position)

	// Positions are per session.
	other, err := store.Append(core.NewCell("sess-2", core.CellMarkdown, "x", "a", "s"))
	require.NoError(t, err)
	assert.Equal(t, 0, other.Position)
}

func TestInMemoryStore_ListAndGet(t *testing.T) {
	store := NewInMemoryStore()
	c, err := store.Append(core.NewCell("sess-1", core.CellMarkdown, "report", "analysis_agent", "analyze_results"))
	require.NoError(t, err)

	cells, err := store.List("sess-1")
	require.NoError(t, err)
	require.Len(t, cells, 1)
	assert.Equal(t, c.ID, cells[0].ID)

	got, err := store.Get("sess-1", c.ID)
	require.NoError(t, err)
	assert.Equal(t, "report", got.Content)

	_, err = store.Get("sess-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
