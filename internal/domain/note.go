package domain

import "time"

// Note is a short free-form text capture with optional reminder and
// reading flags. Tags holds the hydrated tag names, sorted, duplicates
// collapsed.
type Note struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Reminder  bool      `json:"reminder"`
	Reading   bool      `json:"reading"`
	CreatedAt time.Time `json:"created_at"`
	Tags      []string  `json:"tags"`
}

// NotePatch describes a partial update to a note.
// Nil fields are left untouched; a non-nil pointer applies the value even
// when it is the zero value, so "set reminder to false" is representable.
// A non-nil Tags replaces the entire tag set.
type NotePatch struct {
	Text     *string   `json:"text"`
	Reminder *bool     `json:"reminder"`
	Reading  *bool     `json:"reading"`
	Tags     *[]string `json:"tags"`
}

// IsZero reports whether the patch carries no changes.
func (p NotePatch) IsZero() bool {
	return p.Text == nil && p.Reminder == nil && p.Reading == nil && p.Tags == nil
}
