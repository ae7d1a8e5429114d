package app

import (
	"errors"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/thealienated1/Notefied/internal/api"
	"github.com/thealienated1/Notefied/internal/editor"
	"github.com/thealienated1/Notefied/internal/notes"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case saveTickMsg:
		if !m.deb.Valid(msg.key, msg.gen) {
			return m, nil
		}
		return m, m.flushSave(msg.key)

	case notesLoadedMsg:
		if msg.err != nil {
			if cmd, ok := m.authFailure(msg.err); ok {
				return m, cmd
			}
			// read failures retry on the next trigger
			m.log.Warn().Err(msg.err).Msg("load notes failed")
			return m, nil
		}
		m.store.SetAll(msg.notes)
		m.refreshList()
		return m, nil

	case trashLoadedMsg:
		if msg.err != nil {
			if cmd, ok := m.authFailure(msg.err); ok {
				return m, cmd
			}
			m.log.Warn().Err(msg.err).Msg("load trashed notes failed")
			return m, nil
		}
		m.trashCol.SetAll(msg.notes)
		m.refreshList()
		return m, nil

	case noteCreatedMsg:
		return m.noteCreated(msg)

	case noteSavedMsg:
		return m.noteSaved(msg)

	case noteTrashedMsg:
		return m.noteTrashed(msg)

	case noteRestoredMsg:
		return m.noteRestored(msg)

	case notePurgedMsg:
		return m.notePurged(msg)

	case editorFinishedMsg:
		return m.externalEditDone(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// ---------- network results ----------

func (m Model) noteCreated(msg noteCreatedMsg) (tea.Model, tea.Cmd) {
	m.createInFlight = false
	if msg.err != nil {
		if cmd, ok := m.authFailure(msg.err); ok {
			return m, cmd
		}
		// Not surfaced per-keystroke; the session stays dirty and the
		// next edit re-arms the save.
		m.log.Warn().Err(msg.err).Msg("autosave create failed")
		return m, nil
	}

	m.store.Upsert(msg.note)
	m.refreshList()

	// The response belongs to the session that issued it. A note started
	// while the create was in flight keeps its own lifecycle; adopting the
	// id here would overwrite the created note with unrelated content.
	if msg.epoch == m.session.Epoch() && m.session.NoteID == "" && !m.session.Blank() {
		m.deb.Cancel(notes.NewNoteKey)
		m.session.Adopt(msg.note)
	}

	// Re-arm for edits typed while the create was in flight, and for a
	// newer new-note session whose own create was blocked behind this one.
	if m.session.Dirty() && !m.session.Blank() &&
		(m.session.NoteID == "" || m.session.NoteID == msg.note.ID) {
		return m, m.scheduleSave()
	}
	return m, nil
}

func (m Model) noteSaved(msg noteSavedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if cmd, ok := m.authFailure(msg.err); ok {
			return m, cmd
		}
		if errors.Is(msg.err, api.ErrNotFound) {
			// deleted elsewhere; ground truth wins
			m.status = "Note no longer exists, refreshing"
			m.log.Warn().Str("id", msg.id).Msg("update hit missing note")
			return m, m.resyncCmd()
		}
		m.log.Warn().Err(msg.err).Str("id", msg.id).Msg("autosave update failed")
		return m, nil
	}

	m.store.Upsert(msg.note)
	m.refreshList()
	if m.session.NoteID == msg.id {
		m.session.Adopt(msg.note)
	}
	return m, nil
}

func (m Model) noteTrashed(msg noteTrashedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		if cmd, ok := m.authFailure(msg.err); ok {
			return m, cmd
		}
		// The optimistic local removal may be wrong; resynchronize.
		m.status = "Move to trash failed, refreshing"
		m.log.Error().Err(msg.err).Str("id", msg.id).Msg("move to trash failed")
		return m, m.resyncCmd()
	}
	return m, m.fetchTrashCmd()
}

func (m Model) noteRestored(msg noteRestoredMsg) (tea.Model, tea.Cmd) {
	if m.pendingOps > 0 {
		m.pendingOps--
	}

	var cmd tea.Cmd
	if msg.err != nil {
		if c, ok := m.authFailure(msg.err); ok {
			return m, c
		}
		// Failed ids stay in the trashed collection.
		m.status = "Some notes could not be restored"
		m.log.Error().Err(msg.err).Str("id", msg.id).Msg("restore failed")
		cmd = m.resyncCmd()
	} else {
		m.trashCol.Remove(msg.id)
		m.store.Upsert(msg.note)
		m.status = "Restored"
	}

	if m.pendingOps == 0 {
		m.trashCol.ClearSelection()
	}
	m.refreshList()
	return m, cmd
}

func (m Model) notePurged(msg notePurgedMsg) (tea.Model, tea.Cmd) {
	if m.pendingOps > 0 {
		m.pendingOps--
	}

	var cmd tea.Cmd
	if msg.err != nil {
		if c, ok := m.authFailure(msg.err); ok {
			return m, c
		}
		m.status = "Some notes could not be deleted"
		m.log.Error().Err(msg.err).Str("id", msg.id).Msg("purge failed")
		cmd = m.resyncCmd()
	} else {
		m.trashCol.Remove(msg.id)
		m.status = "Deleted forever"
	}

	if m.pendingOps == 0 {
		m.trashCol.ClearSelection()
	}
	m.refreshList()
	return m, cmd
}

func (m Model) externalEditDone(msg editorFinishedMsg) (tea.Model, tea.Cmd) {
	content, readErr := os.ReadFile(msg.path)
	_ = os.Remove(msg.path)

	if msg.err != nil {
		m.status = "external editor: " + msg.err.Error()
		return m, nil
	}
	if readErr != nil {
		m.status = "external editor: " + readErr.Error()
		return m, nil
	}

	m.editor.SetValue(string(content))
	return m, m.contentChanged(m.editor.Value())
}

// ---------- key handling ----------

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m, tea.Quit
	}

	// A pending purge confirmation swallows everything else.
	if m.confirmPurge != nil {
		return m.handlePurgeConfirmKey(msg)
	}

	if key.Matches(msg, m.keys.Logout) {
		m.log.Info().Msg("logging out")
		return m, m.signOut()
	}
	if key.Matches(msg, m.keys.Undo) {
		return m, m.undoEvacuation()
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusTitle:
		return m.handleTitleKey(msg)
	case focusEditor:
		return m.handleEditorKey(msg)
	default:
		return m.handleBrowseKey(msg)
	}
}

func (m Model) handlePurgeConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		ids := m.confirmPurge
		m.confirmPurge = nil
		m.pendingOps += len(ids)
		cmds := make([]tea.Cmd, 0, len(ids))
		for _, id := range ids {
			cmds = append(cmds, m.purgeNoteCmd(id))
		}
		return m, tea.Batch(cmds...)
	case "n", "N", "esc":
		m.confirmPurge = nil
		m.status = "Delete cancelled"
	}
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.query = ""
		m.focus = focusSidebar
		m.refreshList()
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.searchInput.Blur()
		m.focus = focusSidebar
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if q := m.searchInput.Value(); q != m.query {
		m.query = q
		m.refreshList()
	}
	return m, cmd
}

func (m Model) handleTitleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Back) || msg.Type == tea.KeyEnter {
		m.titleInput.Blur()
		m.focus = focusEditor
		m.editor.Focus()
		return m, textarea.Blink
	}

	before := m.titleInput.Value()
	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	if v := m.titleInput.Value(); v != before {
		m.session.SetTitle(v)
		if m.session.Dirty() && !m.session.Blank() {
			return m, tea.Batch(cmd, m.scheduleSave())
		}
	}
	return m, cmd
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.editor.Blur()
		m.focus = focusSidebar
		return m, nil

	case key.Matches(msg, m.keys.Save):
		return m, m.flushSaveNow()

	case key.Matches(msg, m.keys.Title):
		m.editor.Blur()
		m.focus = focusTitle
		m.titleInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.External):
		return m, m.openExternalEditor()
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if v := m.editor.Value(); v != before {
		return m, tea.Batch(cmd, m.contentChanged(v))
	}
	return m, cmd
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Search):
		m.focus = focusSearch
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keys.SectionDn), key.Matches(msg, m.keys.SectionUp):
		return m, m.switchSection()

	case key.Matches(msg, m.keys.Down):
		m.noteList.CursorDown()
		return m, m.syncSelection()

	case key.Matches(msg, m.keys.Up):
		m.noteList.CursorUp()
		return m, m.syncSelection()

	case key.Matches(msg, m.keys.New):
		if m.section != sectionNotes {
			return m, nil
		}
		return m, m.startNewNote()

	case key.Matches(msg, m.keys.Edit):
		if m.section != sectionNotes {
			return m, nil
		}
		cmd := m.syncSelection()
		m.focus = focusEditor
		m.editor.Focus()
		m.editor.CursorEnd()
		return m, tea.Batch(cmd, textarea.Blink)

	case key.Matches(msg, m.keys.Trash):
		if m.section != sectionNotes {
			return m, nil
		}
		return m, m.moveCursorNoteToTrash()
	}

	if m.section == sectionTrash {
		switch {
		case key.Matches(msg, m.keys.Toggle):
			if tn, ok := m.cursorTrashed(); ok {
				m.trashCol.Toggle(tn.ID)
				m.refreshList()
			}
			return m, nil

		case key.Matches(msg, m.keys.SelectAll):
			m.trashCol.SelectAll(m.visibleTrashedIDs())
			m.refreshList()
			return m, nil

		case key.Matches(msg, m.keys.Restore):
			return m, m.restoreSelection()

		case key.Matches(msg, m.keys.Purge):
			if ids := m.purgeTargets(); len(ids) > 0 {
				m.confirmPurge = ids
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.noteList, cmd = m.noteList.Update(msg)
	return m, cmd
}

// ---------- engine transitions ----------

// contentChanged runs the edit-session state machine for newly typed
// content.
func (m *Model) contentChanged(val string) tea.Cmd {
	var cmds []tea.Cmd

	// Typing new non-empty content forfeits the undo window; the
	// evacuated note's delete is issued now.
	if strings.TrimSpace(val) != "" {
		if buffered, ok := m.undo.Consume(); ok {
			m.deb.Cancel(buffered.ID)
			cmds = append(cmds, m.trashNoteCmd(buffered.ID))
		}
	}

	wasExisting := m.session.NoteID != ""
	m.session.SetContent(val)
	if !m.session.TitleManual {
		m.titleInput.SetValue(m.session.Title)
	}

	if wasExisting && m.session.Blank() {
		// Evacuate: drop from the active projection now, delete remotely
		// only if the window elapses without an undo.
		if n, ok := m.store.Remove(m.session.NoteID); ok {
			m.undo.Evict(n)
			cmds = append(cmds, m.scheduleTombstone(n.ID))
			m.status = "Note cleared, ctrl+u to undo"
		}
		m.session.Reset()
		m.titleInput.SetValue("")
		m.refreshList()
		return tea.Batch(cmds...)
	}

	if m.session.Dirty() && !m.session.Blank() {
		cmds = append(cmds, m.scheduleSave())
	}
	return tea.Batch(cmds...)
}

// flushSave performs the save a fired (or forced) timer asked for.
func (m *Model) flushSave(key string) tea.Cmd {
	if buffered, ok := m.undo.Peek(); ok && buffered.ID == key {
		// The undo window elapsed with the content still empty.
		m.undo.Clear()
		return m.trashNoteCmd(buffered.ID)
	}

	if m.session.Key() != key || m.session.Blank() || !m.session.Dirty() {
		return nil
	}

	if m.session.NoteID == "" {
		if m.createInFlight {
			return nil
		}
		m.createInFlight = true
		return m.createNoteCmd(m.session.Title, m.session.Content, m.session.Epoch())
	}
	return m.updateNoteCmd(m.session.NoteID, m.session.Title, m.session.Content)
}

// flushSaveNow bypasses the debounce window for an explicit save.
func (m *Model) flushSaveNow() tea.Cmd {
	key := m.session.Key()
	m.deb.Cancel(key)
	return m.flushSave(key)
}

// undoEvacuation restores the evacuated note while the undo window is
// still open. With an empty buffer it is a no-op.
func (m *Model) undoEvacuation() tea.Cmd {
	n, ok := m.undo.Consume()
	if !ok {
		return nil
	}

	m.deb.Cancel(n.ID)
	m.store.Upsert(n)
	m.session.Open(n)
	m.editor.SetValue(n.Content)
	m.titleInput.SetValue(n.Title)
	m.refreshList()
	m.selectByID(n.ID)
	m.status = "Restored " + displayTitle(n.Title)
	return nil
}

// syncSelection opens the note under the cursor into the edit session.
func (m *Model) syncSelection() tea.Cmd {
	if m.section != sectionNotes {
		return nil
	}
	n, ok := m.cursorNote()
	if !ok || n.ID == m.session.NoteID {
		return nil
	}
	return m.openNote(n)
}

func (m *Model) openNote(n api.Note) tea.Cmd {
	var cmds []tea.Cmd

	// Cancel the previous session's pending timer; in-flight requests
	// are left alone.
	m.deb.Cancel(m.session.Key())

	// Selecting a different note forfeits any pending undo.
	if buffered, ok := m.undo.Consume(); ok {
		m.deb.Cancel(buffered.ID)
		cmds = append(cmds, m.trashNoteCmd(buffered.ID))
	}

	m.session.Open(n)
	m.editor.SetValue(n.Content)
	m.titleInput.SetValue(n.Title)
	return tea.Batch(cmds...)
}

func (m *Model) startNewNote() tea.Cmd {
	var cmds []tea.Cmd

	m.deb.Cancel(m.session.Key())
	if buffered, ok := m.undo.Consume(); ok {
		m.deb.Cancel(buffered.ID)
		cmds = append(cmds, m.trashNoteCmd(buffered.ID))
	}

	m.session.Reset()
	m.editor.SetValue("")
	m.titleInput.SetValue("")
	m.focus = focusEditor
	m.editor.Focus()
	cmds = append(cmds, textarea.Blink)
	return tea.Batch(cmds...)
}

func (m *Model) moveCursorNoteToTrash() tea.Cmd {
	n, ok := m.cursorNote()
	if !ok {
		return nil
	}

	if m.session.NoteID == n.ID {
		m.deb.Cancel(m.session.Key())
		m.session.Reset()
		m.editor.SetValue("")
		m.titleInput.SetValue("")
	}

	// Optimistic removal; failure triggers a full resync.
	m.store.Remove(n.ID)
	m.refreshList()
	m.status = "Moved to trash: " + displayTitle(n.Title)
	return m.trashNoteCmd(n.ID)
}

func (m *Model) switchSection() tea.Cmd {
	// The selection set does not survive leaving the trash view.
	m.trashCol.ClearSelection()

	if m.section == sectionNotes {
		m.section = sectionTrash
	} else {
		m.section = sectionNotes
	}
	m.noteList.Select(0)
	m.refreshList()

	if m.section == sectionTrash {
		return m.fetchTrashCmd()
	}
	return m.fetchNotesCmd()
}

func (m *Model) restoreSelection() tea.Cmd {
	ids := m.trashCol.Selected()
	if len(ids) == 0 {
		if tn, ok := m.cursorTrashed(); ok {
			ids = []string{tn.ID}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	m.pendingOps += len(ids)
	cmds := make([]tea.Cmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, m.restoreNoteCmd(id))
	}
	return tea.Batch(cmds...)
}

func (m *Model) purgeTargets() []string {
	ids := m.trashCol.Selected()
	if len(ids) == 0 {
		if tn, ok := m.cursorTrashed(); ok {
			ids = []string{tn.ID}
		}
	}
	return ids
}

func (m *Model) openExternalEditor() tea.Cmd {
	path, err := editor.WriteTemp(m.session.Content)
	if err != nil {
		m.status = "external editor: " + err.Error()
		return nil
	}

	cmd, err := editor.EditCmd(path)
	if err != nil {
		m.status = "external editor: " + err.Error()
		return nil
	}

	return tea.ExecProcess(cmd, func(err error) tea.Msg {
		return editorFinishedMsg{path: path, err: err}
	})
}

// authFailure reports whether err means the token was rejected, in which
// case the session ends.
func (m *Model) authFailure(err error) (tea.Cmd, bool) {
	if errors.Is(err, api.ErrUnauthenticated) {
		m.log.Warn().Err(err).Msg("token rejected")
		return m.signOut(), true
	}
	return nil, false
}

// signOut tears down all transient engine state and tells the parent to
// show the login screen.
func (m *Model) signOut() tea.Cmd {
	m.deb.CancelAll()
	m.undo.Clear()
	m.trashCol.ClearSelection()
	m.session.Reset()
	m.editor.SetValue("")
	m.titleInput.SetValue("")
	return signOutCmd()
}
