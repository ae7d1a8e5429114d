// Package notes holds the note lifecycle engine: the edit session state
// machine, debounced autosave bookkeeping, the active and trashed
// collections, and the single-slot undo buffer. Everything here is pure
// in-memory state; network effects are driven by the UI layer.
package notes

import "strings"

const titleWordLimit = 5

// DeriveTitle builds a display title from note content: the first five
// whitespace-separated words, with "..." appended when the content has
// more. Blank content derives an empty title.
func DeriveTitle(content string) string {
	words := strings.Fields(content)
	if len(words) == 0 {
		return ""
	}
	if len(words) <= titleWordLimit {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:titleWordLimit], " ") + "..."
}
