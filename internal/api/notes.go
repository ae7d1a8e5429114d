package api

import (
	"context"
	"net/http"
)

// ListNotes fetches all active notes for the current user.
func (c *Client) ListNotes(ctx context.Context) ([]Note, error) {
	var notes []Note
	if err := c.do(ctx, http.MethodGet, "/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// CreateNote persists a new note; the server assigns id and updatedAt.
func (c *Client) CreateNote(ctx context.Context, title, content string) (Note, error) {
	var n Note
	err := c.do(ctx, http.MethodPost, "/notes", notePayload{Title: title, Content: content}, &n)
	if err != nil {
		return Note{}, err
	}
	return n, nil
}

// UpdateNote overwrites title and content of an existing note and returns
// it with a refreshed updatedAt.
func (c *Client) UpdateNote(ctx context.Context, id, title, content string) (Note, error) {
	var n Note
	err := c.do(ctx, http.MethodPut, "/notes/"+id, notePayload{Title: title, Content: content}, &n)
	if err != nil {
		return Note{}, err
	}
	return n, nil
}

// TrashNote soft-deletes a note, moving it to the trashed collection.
func (c *Client) TrashNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+id, nil, nil)
}

// ListTrashed fetches all trashed notes for the current user.
func (c *Client) ListTrashed(ctx context.Context) ([]TrashedNote, error) {
	var notes []TrashedNote
	if err := c.do(ctx, http.MethodGet, "/trashed-notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// RestoreNote moves a trashed note back to the active collection.
func (c *Client) RestoreNote(ctx context.Context, id string) (Note, error) {
	var n Note
	err := c.do(ctx, http.MethodPost, "/trashed-notes/"+id+"/restore", nil, &n)
	if err != nil {
		return Note{}, err
	}
	return n, nil
}

// PurgeNote permanently deletes a trashed note. Irreversible.
func (c *Client) PurgeNote(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/trashed-notes/"+id, nil, nil)
}
