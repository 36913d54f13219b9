package domain

import "time"

// Link is a bookmarked URL with a user-supplied summary and page metadata
// captured once at creation time. MetaTitle and MetaDescription are empty
// when the metadata fetch failed; both stay editable afterwards.
type Link struct {
	ID              string    `json:"id"`
	URL             string    `json:"url"`
	Summary         string    `json:"summary"`
	MetaTitle       string    `json:"meta_title"`
	MetaDescription string    `json:"meta_description"`
	Reminder        bool      `json:"reminder"`
	Reading         bool      `json:"reading"`
	CreatedAt       time.Time `json:"created_at"`
	Tags            []string  `json:"tags"`
}

// LinkPatch describes a partial update to a link.
// Same semantics as NotePatch: nil means untouched, non-nil applies the
// value, a non-nil Tags replaces the entire tag set.
type LinkPatch struct {
	URL             *string   `json:"url"`
	Summary         *string   `json:"summary"`
	MetaTitle       *string   `json:"meta_title"`
	MetaDescription *string   `json:"meta_description"`
	Reminder        *bool     `json:"reminder"`
	Reading         *bool     `json:"reading"`
	Tags            *[]string `json:"tags"`
}

// IsZero reports whether the patch carries no changes.
func (p LinkPatch) IsZero() bool {
	return p.URL == nil && p.Summary == nil && p.MetaTitle == nil &&
		p.MetaDescription == nil && p.Reminder == nil && p.Reading == nil && p.Tags == nil
}
