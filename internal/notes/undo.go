package notes

import "github.com/thealienated1/Notefied/internal/api"

// UndoBuffer holds at most one note that was evacuated from the active
// collection because its content was cleared, but whose deletion has not
// been finalized yet. Only the most recently evacuated note is
// recoverable.
type UndoBuffer struct {
	note *api.Note
}

func NewUndoBuffer() *UndoBuffer {
	return &UndoBuffer{}
}

// Evict buffers a note, overwriting any previously buffered one.
func (b *UndoBuffer) Evict(n api.Note) {
	b.note = &n
}

// Peek returns the buffered note without consuming it.
func (b *UndoBuffer) Peek() (api.Note, bool) {
	if b.note == nil {
		return api.Note{}, false
	}
	return *b.note, true
}

// Consume removes and returns the buffered note. Undo with an empty
// buffer is a no-op for the caller.
func (b *UndoBuffer) Consume() (api.Note, bool) {
	if b.note == nil {
		return api.Note{}, false
	}
	n := *b.note
	b.note = nil
	return n, true
}

// Clear drops the buffered note, if any.
func (b *UndoBuffer) Clear() {
	b.note = nil
}
