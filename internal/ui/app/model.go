// Package app is the main notes screen: the sidebar with the active and
// trashed collections, the editor pane with debounced autosave, and the
// command layer talking to the Notefied server.
package app

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/thealienated1/Notefied/internal/api"
	"github.com/thealienated1/Notefied/internal/notes"
)

type focusArea int

const (
	focusSidebar focusArea = iota
	focusEditor
	focusTitle
	focusSearch
)

type section int

const (
	sectionNotes section = iota
	sectionTrash
)

func (s section) String() string {
	if s == sectionTrash {
		return "Trash"
	}
	return "Notes"
}

type noteItem struct {
	n api.Note
}

func (i noteItem) Title() string       { return displayTitle(i.n.Title) }
func (i noteItem) Description() string { return i.n.UpdatedAt.Local().Format("2006-01-02 15:04") }
func (i noteItem) FilterValue() string { return i.n.Title }

type trashItem struct {
	n        api.TrashedNote
	selected bool
}

func (i trashItem) Title() string {
	marker := "[ ] "
	if i.selected {
		marker = "[x] "
	}
	return marker + displayTitle(i.n.Title)
}

func (i trashItem) Description() string {
	return "trashed " + i.n.TrashedAt.Local().Format("2006-01-02 15:04")
}

func (i trashItem) FilterValue() string { return i.n.Title }

func displayTitle(title string) string {
	if title == "" {
		return "(untitled)"
	}
	return title
}

// Model is the notes screen. All engine state is mutated in Update only.
type Model struct {
	client *api.Client
	log    zerolog.Logger

	width  int
	height int

	section section
	focus   focusArea

	store    *notes.Store
	trashCol *notes.Trash
	session  *notes.Session
	undo     *notes.UndoBuffer
	deb      *notes.Debouncer

	// createInFlight suppresses a second create while one is outstanding;
	// edits typed meanwhile are saved once the response assigns an id.
	createInFlight bool

	// pendingOps counts outstanding bulk restore/purge requests; the
	// selection set clears once they have all reported back.
	pendingOps int

	// confirmPurge holds the ids awaiting the irreversible-delete
	// confirmation; nil means no confirmation is pending.
	confirmPurge []string

	query string

	noteList    list.Model
	editor      textarea.Model
	titleInput  textinput.Model
	searchInput textinput.Model

	help     help.Model
	keys     KeyMap
	showHelp bool

	status string

	// tick arms a debounce timer; swapped out by tests to fire timers
	// deterministically.
	tick func(key string, gen int) tea.Cmd
}

// NewModel builds the notes screen around an authenticated client.
func NewModel(client *api.Client, log zerolog.Logger) Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	ta := textarea.New()
	ta.Placeholder = "Start typing; saves happen on their own..."
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0

	ti := textinput.New()
	ti.Placeholder = "(derived from content)"
	ti.Prompt = "Title: "
	ti.CharLimit = 200

	si := textinput.New()
	si.Placeholder = "search title or content"
	si.Prompt = "/ "

	h := help.New()
	h.ShowAll = false

	return Model{
		client:      client,
		log:         log,
		store:       notes.NewStore(),
		trashCol:    notes.NewTrash(),
		session:     notes.NewSession(),
		undo:        notes.NewUndoBuffer(),
		deb:         notes.NewDebouncer(),
		noteList:    l,
		editor:      ta,
		titleInput:  ti,
		searchInput: si,
		help:        h,
		keys:        DefaultKeyMap(),
		tick:        saveTimer,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchNotesCmd(), m.fetchTrashCmd(), textarea.Blink)
}

// ---------- helpers ----------

func (m *Model) layout() {
	sidebarW := max(28, min(44, m.width/3))
	contentH := max(10, m.height-3)

	m.noteList.SetSize(sidebarW-4, contentH-4)

	rightW := m.width - sidebarW - 6
	if rightW < 20 {
		rightW = 20
	}
	editorH := contentH - 8
	if editorH < 3 {
		editorH = 3
	}

	m.editor.SetWidth(rightW)
	m.editor.SetHeight(editorH)
	m.titleInput.Width = rightW - len(m.titleInput.Prompt) - 2
	m.searchInput.Width = sidebarW - 8
}

// refreshList rebuilds the sidebar from the current section's projection.
func (m *Model) refreshList() {
	var items []list.Item
	switch m.section {
	case sectionTrash:
		for _, tn := range m.trashCol.Projection(m.query) {
			items = append(items, trashItem{n: tn, selected: m.trashCol.IsSelected(tn.ID)})
		}
	default:
		for _, n := range m.store.Projection(m.query) {
			items = append(items, noteItem{n: n})
		}
	}
	m.noteList.SetItems(items)

	if idx := m.noteList.Index(); idx >= len(items) && len(items) > 0 {
		m.noteList.Select(len(items) - 1)
	}
}

// cursorNote returns the active note under the cursor, if any.
func (m *Model) cursorNote() (api.Note, bool) {
	it, ok := m.noteList.SelectedItem().(noteItem)
	if !ok {
		return api.Note{}, false
	}
	return it.n, true
}

// cursorTrashed returns the trashed note under the cursor, if any.
func (m *Model) cursorTrashed() (api.TrashedNote, bool) {
	it, ok := m.noteList.SelectedItem().(trashItem)
	if !ok {
		return api.TrashedNote{}, false
	}
	return it.n, true
}

// visibleTrashedIDs lists the ids in the current trash projection, for
// select-all.
func (m *Model) visibleTrashedIDs() []string {
	tns := m.trashCol.Projection(m.query)
	ids := make([]string, 0, len(tns))
	for _, tn := range tns {
		ids = append(ids, tn.ID)
	}
	return ids
}

func (m *Model) selectByID(id string) {
	for i, it := range m.noteList.Items() {
		switch v := it.(type) {
		case noteItem:
			if v.n.ID == id {
				m.noteList.Select(i)
				return
			}
		case trashItem:
			if v.n.ID == id {
				m.noteList.Select(i)
				return
			}
		}
	}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
