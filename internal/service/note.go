package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rememdia/rememdia-server/internal/domain"
	domainerrors "github.com/rememdia/rememdia-server/internal/errors"
	"github.com/rememdia/rememdia-server/internal/id"
	"github.com/rememdia/rememdia-server/internal/store"
	"github.com/rememdia/rememdia-server/internal/validation"
)

// NoteService manages note capture and retrieval.
type NoteService struct {
	store     store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

// NewNoteService creates a new note service.
func NewNoteService(store store.Store, validator *validation.Validator, logger *slog.Logger) *NoteService {
	return &NoteService{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

// CreateNoteInput is the payload for creating a note.
type CreateNoteInput struct {
	Text     string   `json:"text" validate:"required,max=10000"`
	Reminder bool     `json:"reminder"`
	Reading  bool     `json:"reading"`
	Tags     []string `json:"tags" validate:"max=50,dive,max=100"`
}

// Create validates the input and persists a new note with its tags.
func (s *NoteService) Create(ctx context.Context, input CreateNoteInput) (*domain.Note, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	noteID, err := id.Generate("note")
	if err != nil {
		return nil, fmt.Errorf("generate note id: %w", err)
	}

	note := &domain.Note{
		ID:        noteID,
		Text:      input.Text,
		Reminder:  input.Reminder,
		Reading:   input.Reading,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.CreateNote(ctx, note, input.Tags); err != nil {
		return nil, fmt.Errorf("create note: %w", err)
	}

	s.logger.Info("note created",
		"note_id", note.ID,
		"tags", len(note.Tags),
	)

	return note, nil
}

// Get returns a single note by id.
func (s *NoteService) Get(ctx context.Context, noteID string) (*domain.Note, error) {
	note, err := s.store.GetNote(ctx, noteID)
	if domainerrors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFoundf("note %s not found", noteID)
	}
	if err != nil {
		return nil, fmt.Errorf("get note: %w", err)
	}
	return note, nil
}

// List returns notes matching the filter, oldest first.
func (s *NoteService) List(ctx context.Context, filter domain.ItemFilter) ([]*domain.Note, error) {
	notes, err := s.store.ListNotes(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return notes, nil
}

// Update applies a partial update to a note. Nil patch fields are left
// untouched; a non-nil Tags slice replaces the full tag set.
func (s *NoteService) Update(ctx context.Context, noteID string, patch domain.NotePatch) (*domain.Note, error) {
	if patch.Text != nil && *patch.Text == "" {
		return nil, domainerrors.Validation("note text must not be empty")
	}

	// An empty patch changes nothing; skip the update round-trip.
	if patch.IsZero() {
		return s.Get(ctx, noteID)
	}

	note, err := s.store.UpdateNote(ctx, noteID, patch)
	if domainerrors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFoundf("note %s not found", noteID)
	}
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	s.logger.Info("note updated", "note_id", noteID)

	return note, nil
}

// Delete removes a note. Its tags persist for reuse.
func (s *NoteService) Delete(ctx context.Context, noteID string) error {
	err := s.store.DeleteNote(ctx, noteID)
	if domainerrors.Is(err, store.ErrNotFound) {
		return domainerrors.NotFoundf("note %s not found", noteID)
	}
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}

	s.logger.Info("note deleted", "note_id", noteID)

	return nil
}
