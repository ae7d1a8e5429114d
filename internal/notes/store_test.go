package notes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thealienated1/Notefied/internal/api"
)

func noteAt(id, title, content string, age time.Duration) api.Note {
	return api.Note{
		ID:        id,
		Title:     title,
		Content:   content,
		UpdatedAt: time.Now().Add(-age),
	}
}

func TestStoreProjectionSortsNewestFirst(t *testing.T) {
	s := NewStore()
	s.SetAll([]api.Note{
		noteAt("old", "old note", "", 2*time.Hour),
		noteAt("new", "new note", "", time.Minute),
		noteAt("mid", "mid note", "", time.Hour),
	})

	got := s.Projection("")
	require.Len(t, got, 3)
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "mid", got[1].ID)
	assert.Equal(t, "old", got[2].ID)
}

func TestStoreUpsertResorts(t *testing.T) {
	s := NewStore()
	s.SetAll([]api.Note{
		noteAt("a", "a", "", time.Hour),
		noteAt("b", "b", "", time.Minute),
	})

	// Updating "a" makes it the most recent note.
	updated := noteAt("a", "a", "fresh", 0)
	s.Upsert(updated)

	got := s.Projection("")
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
}

func TestStoreUpsertInserts(t *testing.T) {
	s := NewStore()
	s.Upsert(noteAt("a", "a", "", 0))
	assert.Equal(t, 1, s.Len())

	s.Upsert(noteAt("b", "b", "", time.Minute))
	assert.Equal(t, 2, s.Len())

	got := s.Projection("")
	assert.Equal(t, "a", got[0].ID)
}

func TestStoreRemove(t *testing.T) {
	s := NewStore()
	s.SetAll([]api.Note{noteAt("a", "a", "body", 0)})

	n, ok := s.Remove("a")
	require.True(t, ok)
	assert.Equal(t, "body", n.Content)
	assert.Equal(t, 0, s.Len())

	_, ok = s.Remove("a")
	assert.False(t, ok)
}

func TestStoreProjectionFilters(t *testing.T) {
	s := NewStore()
	s.SetAll([]api.Note{
		noteAt("a", "Groceries", "buy milk and eggs", time.Minute),
		noteAt("b", "Meeting notes", "quarterly planning", time.Hour),
		noteAt("c", "Ideas", "MILK carton sculpture", 2*time.Hour),
	})

	got := s.Projection("milk")
	require.Len(t, got, 2, "match is case-insensitive over title and content")
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	got = s.Projection("meeting")
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)

	assert.Empty(t, s.Projection("no such text"))
}
