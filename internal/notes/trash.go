package notes

import (
	"sort"

	"github.com/thealienated1/Notefied/internal/api"
)

// Trash owns the trashed-notes collection and the multi-select set used
// for bulk restore and purge.
type Trash struct {
	notes    []api.TrashedNote
	selected map[string]struct{}
}

func NewTrash() *Trash {
	return &Trash{selected: make(map[string]struct{})}
}

// SetAll replaces the collection, typically from a full fetch. Selected
// ids that no longer exist are dropped.
func (t *Trash) SetAll(notes []api.TrashedNote) {
	t.notes = make([]api.TrashedNote, len(notes))
	copy(t.notes, notes)
	t.sort()

	for id := range t.selected {
		if _, ok := t.Get(id); !ok {
			delete(t.selected, id)
		}
	}
}

// Remove deletes a trashed note by id, dropping it from the selection.
func (t *Trash) Remove(id string) (api.TrashedNote, bool) {
	delete(t.selected, id)
	for i := range t.notes {
		if t.notes[i].ID == id {
			tn := t.notes[i]
			t.notes = append(t.notes[:i], t.notes[i+1:]...)
			return tn, true
		}
	}
	return api.TrashedNote{}, false
}

// Get looks up a trashed note by id.
func (t *Trash) Get(id string) (api.TrashedNote, bool) {
	for i := range t.notes {
		if t.notes[i].ID == id {
			return t.notes[i], true
		}
	}
	return api.TrashedNote{}, false
}

// Len is the size of the collection, ignoring any filter.
func (t *Trash) Len() int {
	return len(t.notes)
}

// Projection returns the trashed notes matching query, most recently
// trashed first.
func (t *Trash) Projection(query string) []api.TrashedNote {
	out := make([]api.TrashedNote, 0, len(t.notes))
	for _, tn := range t.notes {
		if matchesQuery(tn.Title, tn.Content, query) {
			out = append(out, tn)
		}
	}
	return out
}

// Toggle flips a note's membership in the selection set.
func (t *Trash) Toggle(id string) {
	if _, ok := t.selected[id]; ok {
		delete(t.selected, id)
		return
	}
	if _, ok := t.Get(id); ok {
		t.selected[id] = struct{}{}
	}
}

// SelectAll selects every given id; the caller passes the currently
// visible (filtered) notes.
func (t *Trash) SelectAll(ids []string) {
	for _, id := range ids {
		if _, ok := t.Get(id); ok {
			t.selected[id] = struct{}{}
		}
	}
}

// ClearSelection empties the selection set.
func (t *Trash) ClearSelection() {
	t.selected = make(map[string]struct{})
}

// Selected returns the selected ids in a stable order.
func (t *Trash) Selected() []string {
	ids := make([]string, 0, len(t.selected))
	for id := range t.selected {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsSelected reports membership in the selection set.
func (t *Trash) IsSelected(id string) bool {
	_, ok := t.selected[id]
	return ok
}

// SelectionLen is the size of the selection set.
func (t *Trash) SelectionLen() int {
	return len(t.selected)
}

func (t *Trash) sort() {
	sort.SliceStable(t.notes, func(i, j int) bool {
		return t.notes[i].TrashedAt.After(t.notes[j].TrashedAt)
	})
}
