package service

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rememdia/rememdia-server/internal/domain"
	domainerrors "github.com/rememdia/rememdia-server/internal/errors"
	"github.com/rememdia/rememdia-server/internal/store"
	"github.com/rememdia/rememdia-server/internal/store/sqlite"
	"github.com/rememdia/rememdia-server/internal/validation"
)

// setupNoteTest creates a note service backed by a temporary database.
func setupNoteTest(t *testing.T) (*NoteService, store.Store) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return NewNoteService(s, validation.New(), logger), s
}

func TestNoteService_Create(t *testing.T) {
	svc, _ := setupNoteTest(t)
	ctx := context.Background()

	note, err := svc.Create(ctx, CreateNoteInput{
		Text:     "remember the milk",
		Reminder: true,
		Tags:     []string{"errand", "errand", "home"},
	})
	require.NoError(t, err)

	assert.NotEmpty(t, note.ID)
	assert.True(t, note.Reminder)
	assert.False(t, note.Reading)
	assert.Equal(t, []string{"errand", "home"}, note.Tags)
	assert.False(t, note.CreatedAt.IsZero())
}

func TestNoteService_Create_EmptyText(t *testing.T) {
	svc, _ := setupNoteTest(t)

	_, err := svc.Create(context.Background(), CreateNoteInput{Text: ""})
	require.Error(t, err)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))
}

func TestNoteService_Get(t *testing.T) {
	svc, _ := setupNoteTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNoteInput{Text: "find me"})
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "find me", got.Text)

	_, err = svc.Get(ctx, "note-missing")
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestNoteService_List_Filtered(t *testing.T) {
	svc, _ := setupNoteTest(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateNoteInput{Text: "plain"})
	require.NoError(t, err)
	flagged, err := svc.Create(ctx, CreateNoteInput{Text: "flagged", Reminder: true})
	require.NoError(t, err)

	notes, err := svc.List(ctx, domain.Reminders())
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, flagged.ID, notes[0].ID)

	all, err := svc.List(ctx, domain.ItemFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestNoteService_Update(t *testing.T) {
	svc, _ := setupNoteTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNoteInput{Text: "v1", Reminder: true})
	require.NoError(t, err)

	reading := true
	updated, err := svc.Update(ctx, created.ID, domain.NotePatch{Reading: &reading})
	require.NoError(t, err)
	assert.Equal(t, "v1", updated.Text)
	assert.True(t, updated.Reminder)
	assert.True(t, updated.Reading)

	empty := ""
	_, err = svc.Update(ctx, created.ID, domain.NotePatch{Text: &empty})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrValidation))

	_, err = svc.Update(ctx, "note-missing", domain.NotePatch{Reading: &reading})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestNoteService_Update_EmptyPatch(t *testing.T) {
	svc, _ := setupNoteTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNoteInput{
		Text:     "unchanged",
		Reminder: true,
		Tags:     []string{"keep"},
	})
	require.NoError(t, err)

	got, err := svc.Update(ctx, created.ID, domain.NotePatch{})
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "unchanged", got.Text)
	assert.True(t, got.Reminder)
	assert.Equal(t, []string{"keep"}, got.Tags)

	_, err = svc.Update(ctx, "note-missing", domain.NotePatch{})
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}

func TestNoteService_Delete(t *testing.T) {
	svc, _ := setupNoteTest(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateNoteInput{Text: "temporary"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, created.ID))

	err = svc.Delete(ctx, created.ID)
	assert.True(t, domainerrors.Is(err, domainerrors.ErrNotFound))
}
