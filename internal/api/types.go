package api

import "time"

// Note is an active note as stored by the persistence service.
type Note struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TrashedNote is a soft-deleted note. UpdatedAt keeps its pre-trash value
// for display.
type TrashedNote struct {
	Note
	TrashedAt time.Time `json:"trashedAt"`
}

type notePayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerResponse struct {
	ID string `json:"id"`
}

type loginResponse struct {
	Token string `json:"token"`
}
