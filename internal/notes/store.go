package notes

import (
	"sort"
	"strings"

	"github.com/thealienated1/Notefied/internal/api"
)

// Store owns the active-notes collection. It is the single source of
// truth the UI renders from; every mutation keeps the collection sorted
// by UpdatedAt descending.
type Store struct {
	notes []api.Note
}

func NewStore() *Store {
	return &Store{}
}

// SetAll replaces the collection, typically from a full fetch.
func (s *Store) SetAll(notes []api.Note) {
	s.notes = make([]api.Note, len(notes))
	copy(s.notes, notes)
	s.sort()
}

// Upsert inserts or replaces a note by id.
func (s *Store) Upsert(n api.Note) {
	for i := range s.notes {
		if s.notes[i].ID == n.ID {
			s.notes[i] = n
			s.sort()
			return
		}
	}
	s.notes = append(s.notes, n)
	s.sort()
}

// Remove deletes a note by id, returning the removed note.
func (s *Store) Remove(id string) (api.Note, bool) {
	for i := range s.notes {
		if s.notes[i].ID == id {
			n := s.notes[i]
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			return n, true
		}
	}
	return api.Note{}, false
}

// Get looks up a note by id.
func (s *Store) Get(id string) (api.Note, bool) {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return s.notes[i], true
		}
	}
	return api.Note{}, false
}

// Len is the size of the collection, ignoring any filter.
func (s *Store) Len() int {
	return len(s.notes)
}

// Projection returns the notes matching query, most recently updated
// first. An empty query matches everything.
func (s *Store) Projection(query string) []api.Note {
	out := make([]api.Note, 0, len(s.notes))
	for _, n := range s.notes {
		if matchesQuery(n.Title, n.Content, query) {
			out = append(out, n)
		}
	}
	return out
}

func (s *Store) sort() {
	sort.SliceStable(s.notes, func(i, j int) bool {
		return s.notes[i].UpdatedAt.After(s.notes[j].UpdatedAt)
	})
}

// matchesQuery does a case-insensitive substring match on title or
// content.
func matchesQuery(title, content, query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(title), q) ||
		strings.Contains(strings.ToLower(content), q)
}
