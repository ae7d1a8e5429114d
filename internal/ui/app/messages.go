package app

import "github.com/thealienated1/Notefied/internal/api"

// SignedOutMsg tells the parent model the session ended, either by the
// logout key or because the server rejected the token.
type SignedOutMsg struct{}

// saveTickMsg is a fired debounce timer. It is acted on only if its
// generation is still current for its key.
type saveTickMsg struct {
	key string
	gen int
}

type notesLoadedMsg struct {
	notes []api.Note
	err   error
}

type trashLoadedMsg struct {
	notes []api.TrashedNote
	err   error
}

type noteCreatedMsg struct {
	note api.Note
	// epoch stamps the session that issued the create; the response is
	// adopted only if that session is still live.
	epoch int
	err   error
}

type noteSavedMsg struct {
	id   string
	note api.Note
	err  error
}

type noteTrashedMsg struct {
	id  string
	err error
}

type noteRestoredMsg struct {
	id   string
	note api.Note
	err  error
}

type notePurgedMsg struct {
	id  string
	err error
}

type editorFinishedMsg struct {
	path string
	err  error
}
