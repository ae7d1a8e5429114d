package notes

import (
	"strings"

	"github.com/thealienated1/Notefied/internal/api"
)

// SessionState enumerates where the edit session sits in the note
// lifecycle.
type SessionState int

const (
	// SessionEmpty: no note open, no content typed.
	SessionEmpty SessionState = iota
	// SessionNewDirty: content typed but the note has no id yet; a create
	// is (or should be) pending.
	SessionNewDirty
	// SessionCreated: the note exists remotely and matches the baseline.
	SessionCreated
	// SessionExistingDirty: content or title diverges from the baseline;
	// an update is (or should be) pending.
	SessionExistingDirty
)

// Session is the single live edit session. NoteID == "" means an unsaved
// new note is in progress. OriginalContent and OriginalTitle are the last
// values known to be persisted; they are the dirty-check baseline.
type Session struct {
	NoteID          string
	Content         string
	Title           string
	OriginalContent string
	OriginalTitle   string

	// TitleManual latches once the user edits the title directly; while
	// set, the title is no longer derived from content. It resets when a
	// different note is opened or the session resets.
	TitleManual bool

	epoch int
}

func NewSession() *Session {
	return &Session{}
}

// Open replaces the session with the given note's values as both current
// state and baseline.
func (s *Session) Open(n api.Note) {
	s.NoteID = n.ID
	s.Content = n.Content
	s.Title = n.Title
	s.OriginalContent = n.Content
	s.OriginalTitle = n.Title
	// A stored title that isn't the derived one was set by hand at some
	// point; keep honoring it instead of rederiving on the next edit.
	s.TitleManual = n.Title != DeriveTitle(n.Content)
	s.epoch++
}

// Reset returns the session to the empty state.
func (s *Session) Reset() {
	epoch := s.epoch + 1
	*s = Session{epoch: epoch}
}

// Epoch identifies the session's current identity. It advances whenever
// the session switches notes (Open or Reset), so a server response
// stamped with an earlier epoch belongs to a session that no longer
// exists and must not be adopted.
func (s *Session) Epoch() int {
	return s.epoch
}

// SetContent records typed content, rederiving the title unless it was
// manually overridden.
func (s *Session) SetContent(content string) {
	s.Content = content
	if !s.TitleManual {
		s.Title = DeriveTitle(content)
	}
}

// SetTitle records a direct title edit and latches the manual override.
func (s *Session) SetTitle(title string) {
	s.Title = title
	s.TitleManual = true
}

// Adopt installs a server response as the new baseline. The id is adopted
// too, turning a new-note session into an existing-note one after create.
func (s *Session) Adopt(n api.Note) {
	s.NoteID = n.ID
	s.OriginalContent = n.Content
	s.OriginalTitle = n.Title
}

// Dirty reports whether content or title diverges from the baseline.
func (s *Session) Dirty() bool {
	return s.Content != s.OriginalContent || s.Title != s.OriginalTitle
}

// Blank reports whether the content is empty or whitespace-only.
func (s *Session) Blank() bool {
	return strings.TrimSpace(s.Content) == ""
}

// Key is the debounce key for this session's pending save.
func (s *Session) Key() string {
	if s.NoteID == "" {
		return NewNoteKey
	}
	return s.NoteID
}

// State derives the lifecycle state from the session fields.
func (s *Session) State() SessionState {
	switch {
	case s.NoteID == "" && s.Blank():
		return SessionEmpty
	case s.NoteID == "":
		return SessionNewDirty
	case s.Dirty():
		return SessionExistingDirty
	default:
		return SessionCreated
	}
}
