package domain

import "time"

// Tag is a shared, de-duplicated label attachable to notes and links.
// Tags are global with no ownership model. Name is the source of truth and
// unique case-sensitively. Tags persist even when their last reference is
// removed so they stay available for reuse and autocomplete.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NoteTag represents the many-to-many relationship between notes and tags.
type NoteTag struct {
	NoteID string `json:"note_id"`
	TagID  string `json:"tag_id"`
}

// LinkTag represents the many-to-many relationship between links and tags.
type LinkTag struct {
	LinkID string `json:"link_id"`
	TagID  string `json:"tag_id"`
}
