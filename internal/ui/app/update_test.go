package app

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thealienated1/Notefied/internal/api"
	"github.com/thealienated1/Notefied/internal/api/apitest"
	"github.com/thealienated1/Notefied/internal/notes"
)

// tickRec records a debounce timer armed by the model. Tests replace the
// timer factory with a recorder and fire saveTickMsg by hand, so no test
// ever sleeps through the save delay.
type tickRec struct {
	key string
	gen int
}

func newTestModel(t *testing.T, srv *apitest.Server) (Model, *[]tickRec) {
	t.Helper()

	m := NewModel(srv.Client(), zerolog.Nop())
	ticks := &[]tickRec{}
	m.tick = func(key string, gen int) tea.Cmd {
		*ticks = append(*ticks, tickRec{key: key, gen: gen})
		return nil
	}

	m = drain(t, m, m.Init())
	m = feed(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	return m, ticks
}

// feed sends one message through Update and runs every resulting command
// to completion, feeding their messages back in.
func feed(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	nm, cmd := m.Update(msg)
	return drain(t, nm.(Model), cmd)
}

func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if msg == nil {
		return m
	}
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
		return m
	case tea.QuitMsg:
		return m
	}
	nm, next := m.Update(msg)
	return drain(t, nm.(Model), next)
}

func typeString(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = feed(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func pressKey(t *testing.T, m Model, k tea.KeyType) Model {
	t.Helper()
	return feed(t, m, tea.KeyMsg{Type: k})
}

// fireTimer delivers the most recently armed timer for key, as the real
// tea.Tick would after the save delay.
func fireTimer(t *testing.T, m Model, ticks *[]tickRec, key string) Model {
	t.Helper()
	for i := len(*ticks) - 1; i >= 0; i-- {
		if (*ticks)[i].key == key {
			return feed(t, m, saveTickMsg{key: key, gen: (*ticks)[i].gen})
		}
	}
	t.Fatalf("no timer was armed for key %q", key)
	return m
}

func TestTypingNewNoteCreatesOnceAfterQuietWindow(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	m, ticks := newTestModel(t, srv)

	m = typeString(t, m, "n") // new note
	m = typeString(t, m, "Buy milk and eggs today please")

	// Every keystroke re-arms the timer; nothing is sent while typing.
	assert.Equal(t, 0, srv.RequestCount("POST", "/notes"))

	// Timers from earlier keystrokes were superseded and must not fire a
	// save.
	stale := (*ticks)[len(*ticks)-2]
	m = feed(t, m, saveTickMsg{key: stale.key, gen: stale.gen})
	assert.Equal(t, 0, srv.RequestCount("POST", "/notes"))

	// The last timer survives the quiet window and creates the note.
	m = fireTimer(t, m, ticks, notes.NewNoteKey)
	require.Equal(t, 1, srv.RequestCount("POST", "/notes"))

	id := m.session.NoteID
	require.NotEmpty(t, id, "session adopts the server-assigned id")

	n, ok := srv.ActiveNote(id)
	require.True(t, ok)
	assert.Equal(t, "Buy milk and eggs today please", n.Content)
	assert.Equal(t, "Buy milk and eggs today...", n.Title)

	// The old new-note timer is dead once the id is adopted.
	m = feed(t, m, saveTickMsg{key: notes.NewNoteKey, gen: stale.gen + 1})
	assert.Equal(t, 1, srv.RequestCount("POST", "/notes"))
	assert.False(t, m.session.Dirty())
}

func TestCreateResponseForSupersededSessionDoesNotAdopt(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	m, ticks := newTestModel(t, srv)

	m = typeString(t, m, "n")
	m = typeString(t, m, "alpha alpha alpha")

	// Fire the timer but hold the create response in flight.
	var gen int
	for i := len(*ticks) - 1; i >= 0; i-- {
		if (*ticks)[i].key == notes.NewNoteKey {
			gen = (*ticks)[i].gen
			break
		}
	}
	nm, createCmd := m.Update(saveTickMsg{key: notes.NewNoteKey, gen: gen})
	m = nm.(Model)
	require.NotNil(t, createCmd)

	// Start a different note while the create is still out.
	m = pressKey(t, m, tea.KeyEsc)
	m = typeString(t, m, "n")
	m = typeString(t, m, "beta beta beta")

	// The response lands: it must not claim the newer session.
	m = feed(t, m, createCmd())
	assert.Empty(t, m.session.NoteID)
	assert.Equal(t, "beta beta beta", m.session.Content)

	first := m.store.Projection("alpha")
	require.Len(t, first, 1)
	got, ok := srv.ActiveNote(first[0].ID)
	require.True(t, ok)
	assert.Equal(t, "alpha alpha alpha", got.Content)

	// The second note runs its own create once its window elapses.
	m = fireTimer(t, m, ticks, notes.NewNoteKey)
	require.Equal(t, 2, srv.RequestCount("POST", "/notes"))
	assert.Equal(t, 0, srv.RequestCount("PUT", "/notes/"))

	require.NotEmpty(t, m.session.NoteID)
	assert.NotEqual(t, first[0].ID, m.session.NoteID)
	second, ok := srv.ActiveNote(m.session.NoteID)
	require.True(t, ok)
	assert.Equal(t, "beta beta beta", second.Content)
	assert.Equal(t, 2, m.store.Len())
}

func TestEditingExistingNoteUpdatesOnce(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seeded := srv.Seed(api.Note{Title: "milk", Content: "milk"})
	m, ticks := newTestModel(t, srv)

	m = pressKey(t, m, tea.KeyEnter) // open note under cursor
	m = typeString(t, m, " and eggs")

	assert.Equal(t, 0, srv.RequestCount("PUT", "/notes/"))

	m = fireTimer(t, m, ticks, seeded.ID)
	require.Equal(t, 1, srv.RequestCount("PUT", "/notes/"+seeded.ID))

	n, ok := srv.ActiveNote(seeded.ID)
	require.True(t, ok)
	assert.Equal(t, "milk and eggs", n.Content)
	assert.Equal(t, "milk and eggs", n.Title, "derived title follows content")

	assert.False(t, m.session.Dirty(), "server response becomes the baseline")
}

func TestClearingContentEvacuatesWithoutNetwork(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seeded := srv.Seed(api.Note{Title: "remember the milk", Content: "remember the milk"})
	m, _ := newTestModel(t, srv)

	m = pressKey(t, m, tea.KeyEnter)
	for range seeded.Content {
		m = pressKey(t, m, tea.KeyBackspace)
	}

	// The note left the active projection but no delete was issued.
	assert.Equal(t, 0, m.store.Len())
	assert.Equal(t, 0, srv.RequestCount("DELETE", "/notes/"))
	_, stillActive := srv.ActiveNote(seeded.ID)
	assert.True(t, stillActive)

	// Undo inside the window brings it back, still with zero deletes.
	m = pressKey(t, m, tea.KeyCtrlU)
	got, ok := m.store.Get(seeded.ID)
	require.True(t, ok)
	assert.Equal(t, "remember the milk", got.Content)
	assert.Equal(t, seeded.ID, m.session.NoteID)
	assert.Equal(t, 0, srv.RequestCount("DELETE", "/notes/"))
	assert.Equal(t, 0, srv.RequestCount("PUT", "/notes/"))
}

func TestClearedNoteIsTrashedWhenWindowElapses(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seeded := srv.Seed(api.Note{Title: "old idea", Content: "old idea"})
	m, ticks := newTestModel(t, srv)

	m = pressKey(t, m, tea.KeyEnter)
	for range seeded.Content {
		m = pressKey(t, m, tea.KeyBackspace)
	}

	m = fireTimer(t, m, ticks, seeded.ID)

	assert.Equal(t, 1, srv.RequestCount("DELETE", "/notes/"+seeded.ID))
	_, trashed := srv.TrashedNote(seeded.ID)
	assert.True(t, trashed)

	_, buffered := m.undo.Peek()
	assert.False(t, buffered, "undo window is gone after the delete")
	assert.Equal(t, 1, m.trashCol.Len(), "trash view picked up the note")
}

func TestTypingForfeitsUndoAndFinalizesDelete(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seeded := srv.Seed(api.Note{Title: "scratch", Content: "scratch"})
	m, _ := newTestModel(t, srv)

	m = pressKey(t, m, tea.KeyEnter)
	for range seeded.Content {
		m = pressKey(t, m, tea.KeyBackspace)
	}
	_, buffered := m.undo.Peek()
	require.True(t, buffered)

	// New content claims the editor; the evacuated note's delete goes out
	// now instead of waiting for the timer.
	m = typeString(t, m, "x")

	_, buffered = m.undo.Peek()
	assert.False(t, buffered)
	assert.Equal(t, 1, srv.RequestCount("DELETE", "/notes/"+seeded.ID))
	_, trashed := srv.TrashedNote(seeded.ID)
	assert.True(t, trashed)
}

func TestBulkRestoreKeepsFailedNoteInTrash(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	a := srv.SeedTrashed(api.TrashedNote{Note: api.Note{Title: "a", Content: "a"}})
	b := srv.SeedTrashed(api.TrashedNote{Note: api.Note{Title: "b", Content: "b"}})
	c := srv.SeedTrashed(api.TrashedNote{Note: api.Note{Title: "c", Content: "c"}})
	m, _ := newTestModel(t, srv)

	m = typeString(t, m, "J") // into the trash section
	m = typeString(t, m, "a") // select all
	require.Equal(t, 3, m.trashCol.SelectionLen())

	srv.ForceError("POST", "/trashed-notes/"+b.ID+"/restore", 404)
	m = typeString(t, m, "r")

	assert.Equal(t, 3, srv.RequestCount("POST", "/trashed-notes/"))

	_, ok := srv.ActiveNote(a.ID)
	assert.True(t, ok)
	_, ok = srv.ActiveNote(c.ID)
	assert.True(t, ok)
	_, ok = srv.TrashedNote(b.ID)
	assert.True(t, ok, "failed id stays trashed")

	assert.Equal(t, 2, m.store.Len())
	assert.Equal(t, 1, m.trashCol.Len())
	assert.Equal(t, 0, m.trashCol.SelectionLen(), "selection clears once all ops report")
}

func TestTrashFailureResynchronizes(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	seeded := srv.Seed(api.Note{Title: "keep me", Content: "keep me"})
	m, _ := newTestModel(t, srv)

	srv.ForceError("DELETE", "/notes/"+seeded.ID, 500)
	m = typeString(t, m, "d")

	// The optimistic removal was rolled back by the refetch.
	assert.Equal(t, 1, m.store.Len())
	_, ok := srv.ActiveNote(seeded.ID)
	assert.True(t, ok)
	assert.Equal(t, "Move to trash failed, refreshing", m.status)
}

func TestPurgeNeedsConfirmation(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	tn := srv.SeedTrashed(api.TrashedNote{Note: api.Note{Title: "gone", Content: "gone"}})
	m, _ := newTestModel(t, srv)

	m = typeString(t, m, "J")
	m = typeString(t, m, "x")
	require.Equal(t, []string{tn.ID}, m.confirmPurge)
	assert.Equal(t, 0, srv.RequestCount("DELETE", "/trashed-notes/"))

	// Declining leaves the note alone.
	m = typeString(t, m, "n")
	assert.Nil(t, m.confirmPurge)
	assert.Equal(t, 0, srv.RequestCount("DELETE", "/trashed-notes/"))

	m = typeString(t, m, "x")
	m = typeString(t, m, "y")
	assert.Equal(t, 1, srv.RequestCount("DELETE", "/trashed-notes/"+tn.ID))
	_, still := srv.TrashedNote(tn.ID)
	assert.False(t, still)
	assert.Equal(t, 0, m.trashCol.Len())
}

func TestRejectedTokenEndsSession(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()

	client := api.New(srv.URL())
	client.SetToken("stale")
	m := NewModel(client, zerolog.Nop())

	msg := m.fetchNotesCmd()()
	nm, cmd := m.Update(msg)
	m = nm.(Model)
	require.NotNil(t, cmd)
	assert.Equal(t, SignedOutMsg{}, cmd())
	assert.Equal(t, notes.SessionEmpty, m.session.State())
}

func TestSearchFiltersBothSections(t *testing.T) {
	srv := apitest.New()
	defer srv.Close()
	srv.Seed(api.Note{Title: "grocery list", Content: "grocery list", UpdatedAt: time.Now()})
	srv.Seed(api.Note{Title: "meeting notes", Content: "meeting notes", UpdatedAt: time.Now()})
	m, _ := newTestModel(t, srv)

	m = typeString(t, m, "/")
	m = typeString(t, m, "grocery")
	assert.Len(t, m.noteList.Items(), 1)

	// Escape clears the query and restores the full projection.
	m = pressKey(t, m, tea.KeyEsc)
	assert.Len(t, m.noteList.Items(), 2)
}
