// Package store defines the persistence interface for notes, links, and
// tags, along with the storage error types shared by its implementations.
package store

import (
	"context"

	"github.com/rememdia/rememdia-server/internal/domain"
)

// Store is the persistence interface consumed by the service layer.
// Every mutating method is all-or-nothing: either the entity and all of
// its tag associations are committed, or nothing is.
type Store interface {
	// Tags.

	// FindOrCreateTag finds an existing tag by exact-match name or creates
	// a new one. Returns (tag, created, error) where created is true if a
	// new tag was made. Safe under concurrent calls with the same name.
	FindOrCreateTag(ctx context.Context, name string) (*domain.Tag, bool, error)

	// ListTagNames returns every known tag name ordered by name.
	ListTagNames(ctx context.Context) ([]string, error)

	// Notes.

	// CreateNote persists a note and attaches the given tag names,
	// resolving or creating each. The note's Tags field is hydrated on
	// return.
	CreateNote(ctx context.Context, n *domain.Note, tagNames []string) error

	// GetNote retrieves a note by ID with its tags hydrated.
	// Returns ErrNotFound if the note does not exist.
	GetNote(ctx context.Context, noteID string) (*domain.Note, error)

	// ListNotes returns notes matching the filter, tags hydrated,
	// ordered by creation.
	ListNotes(ctx context.Context, filter domain.ItemFilter) ([]*domain.Note, error)

	// UpdateNote applies a partial update. A non-nil Tags in the patch
	// replaces the entire tag set. Returns the updated note, or
	// ErrNotFound if the note does not exist.
	UpdateNote(ctx context.Context, noteID string, patch domain.NotePatch) (*domain.Note, error)

	// DeleteNote removes a note and its tag associations. The tags
	// themselves are untouched. Returns ErrNotFound if the note does not
	// exist.
	DeleteNote(ctx context.Context, noteID string) error

	// Links.

	// CreateLink persists a link and attaches the given tag names.
	CreateLink(ctx context.Context, l *domain.Link, tagNames []string) error

	// GetLink retrieves a link by ID with its tags hydrated.
	GetLink(ctx context.Context, linkID string) (*domain.Link, error)

	// ListLinks returns links matching the filter, tags hydrated,
	// ordered by creation.
	ListLinks(ctx context.Context, filter domain.ItemFilter) ([]*domain.Link, error)

	// UpdateLink applies a partial update with the same semantics as
	// UpdateNote.
	UpdateLink(ctx context.Context, linkID string, patch domain.LinkPatch) (*domain.Link, error)

	// DeleteLink removes a link and its tag associations.
	DeleteLink(ctx context.Context, linkID string) error

	// Close releases the underlying storage resources.
	Close() error
}
