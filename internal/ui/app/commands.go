package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thealienated1/Notefied/internal/notes"
)

// Network work runs in tea.Cmd closures and comes back as typed result
// messages, so all engine state is mutated on the event loop only.
// In-flight requests are never cancelled; superseded results are ignored
// by the handlers in update.go.

func (m *Model) fetchNotesCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ns, err := client.ListNotes(context.Background())
		return notesLoadedMsg{notes: ns, err: err}
	}
}

func (m *Model) fetchTrashCmd() tea.Cmd {
	client := m.client
	return func() tea.Msg {
		ns, err := client.ListTrashed(context.Background())
		return trashLoadedMsg{notes: ns, err: err}
	}
}

// resyncCmd re-fetches both collections to restore ground truth after a
// failed mutation.
func (m *Model) resyncCmd() tea.Cmd {
	return tea.Batch(m.fetchNotesCmd(), m.fetchTrashCmd())
}

func (m *Model) createNoteCmd(title, content string, epoch int) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		n, err := client.CreateNote(context.Background(), title, content)
		return noteCreatedMsg{note: n, epoch: epoch, err: err}
	}
}

func (m *Model) updateNoteCmd(id, title, content string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		n, err := client.UpdateNote(context.Background(), id, title, content)
		return noteSavedMsg{id: id, note: n, err: err}
	}
}

func (m *Model) trashNoteCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.TrashNote(context.Background(), id)
		return noteTrashedMsg{id: id, err: err}
	}
}

func (m *Model) restoreNoteCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		n, err := client.RestoreNote(context.Background(), id)
		return noteRestoredMsg{id: id, note: n, err: err}
	}
}

func (m *Model) purgeNoteCmd(id string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		err := client.PurgeNote(context.Background(), id)
		return notePurgedMsg{id: id, err: err}
	}
}

// saveTimer is the real debounce timer.
func saveTimer(key string, gen int) tea.Cmd {
	return tea.Tick(notes.SaveDelay, func(time.Time) tea.Msg {
		return saveTickMsg{key: key, gen: gen}
	})
}

// scheduleSave arms the debounced autosave for the current session.
func (m *Model) scheduleSave() tea.Cmd {
	key := m.session.Key()
	return m.tick(key, m.deb.Arm(key))
}

// scheduleTombstone arms the finalize timer for an evacuated note.
func (m *Model) scheduleTombstone(id string) tea.Cmd {
	return m.tick(id, m.deb.Arm(id))
}

func signOutCmd() tea.Cmd {
	return func() tea.Msg { return SignedOutMsg{} }
}
