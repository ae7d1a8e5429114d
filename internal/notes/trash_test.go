package notes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thealienated1/Notefied/internal/api"
)

func trashedAt(id, title string, age time.Duration) api.TrashedNote {
	return api.TrashedNote{
		Note:      api.Note{ID: id, Title: title},
		TrashedAt: time.Now().Add(-age),
	}
}

func TestTrashProjectionSortsNewestFirst(t *testing.T) {
	tr := NewTrash()
	tr.SetAll([]api.TrashedNote{
		trashedAt("old", "old", time.Hour),
		trashedAt("new", "new", time.Minute),
	})

	got := tr.Projection("")
	require.Len(t, got, 2)
	assert.Equal(t, "new", got[0].ID)
}

func TestTrashSelectionToggle(t *testing.T) {
	tr := NewTrash()
	tr.SetAll([]api.TrashedNote{trashedAt("a", "a", 0), trashedAt("b", "b", 0)})

	tr.Toggle("a")
	assert.True(t, tr.IsSelected("a"))

	tr.Toggle("a")
	assert.False(t, tr.IsSelected("a"))

	tr.Toggle("missing")
	assert.Equal(t, 0, tr.SelectionLen(), "unknown ids are not selectable")
}

func TestTrashSelectAllAndClear(t *testing.T) {
	tr := NewTrash()
	tr.SetAll([]api.TrashedNote{
		trashedAt("a", "a", 0),
		trashedAt("b", "b", time.Minute),
		trashedAt("c", "c", time.Hour),
	})

	tr.SelectAll([]string{"a", "b", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, tr.Selected())

	tr.ClearSelection()
	assert.Equal(t, 0, tr.SelectionLen())
}

func TestTrashRemoveDropsSelection(t *testing.T) {
	tr := NewTrash()
	tr.SetAll([]api.TrashedNote{trashedAt("a", "a", 0)})
	tr.Toggle("a")

	tn, ok := tr.Remove("a")
	require.True(t, ok)
	assert.Equal(t, "a", tn.ID)
	assert.False(t, tr.IsSelected("a"))

	_, ok = tr.Remove("a")
	assert.False(t, ok)
}

func TestTrashSetAllPrunesStaleSelection(t *testing.T) {
	tr := NewTrash()
	tr.SetAll([]api.TrashedNote{trashedAt("a", "a", 0), trashedAt("b", "b", 0)})
	tr.SelectAll([]string{"a", "b"})

	// A resync that no longer contains "b" must drop it from the selection.
	tr.SetAll([]api.TrashedNote{trashedAt("a", "a", 0)})
	assert.Equal(t, []string{"a"}, tr.Selected())
}

func TestTrashProjectionFilters(t *testing.T) {
	tr := NewTrash()
	tr.SetAll([]api.TrashedNote{
		{Note: api.Note{ID: "a", Title: "Groceries", Content: "milk"}, TrashedAt: time.Now()},
		{Note: api.Note{ID: "b", Title: "Other", Content: "nothing"}, TrashedAt: time.Now()},
	})

	got := tr.Projection("MILK")
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}
