package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rememdia/rememdia-server/internal/domain"
	"github.com/rememdia/rememdia-server/internal/store"
)

// noteColumns is the ordered list of columns selected in note queries.
// Must match the scan order in scanNote.
const noteColumns = `id, text, reminder, reading, created_at`

// scanNote scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Note. Tags are left nil; the caller hydrates them.
func scanNote(scanner interface{ Scan(dest ...any) error }) (*domain.Note, error) {
	var n domain.Note

	var (
		reminder  int
		reading   int
		createdAt string
	)

	err := scanner.Scan(
		&n.ID,
		&n.Text,
		&reminder,
		&reading,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	n.Reminder = reminder != 0
	n.Reading = reading != 0

	n.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &n, nil
}

// CreateNote inserts a note and attaches the given tag names in a single
// transaction. The note's Tags field is hydrated on return.
func (s *Store) CreateNote(ctx context.Context, n *domain.Note, tagNames []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO notes (id, text, reminder, reading, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		n.ID,
		n.Text,
		boolToInt(n.Reminder),
		boolToInt(n.Reading),
		formatTime(n.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert note: %w", err)
	}

	tagIDs, err := resolveTagIDs(ctx, tx, tagNames)
	if err != nil {
		return err
	}
	if err := replaceAssociations(ctx, tx, "note_tags", "note_id", n.ID, tagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	n.Tags = uniqueNames(tagNames)
	return nil
}

// GetNote retrieves a note by ID with its tags hydrated.
// Returns store.ErrNotFound if the note does not exist.
func (s *Store) GetNote(ctx context.Context, noteID string) (*domain.Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ?`, noteID)

	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	n.Tags, err = tagNamesFor(ctx, s.db, "note_tags", "note_id", noteID)
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ListNotes returns notes matching the filter, ordered by creation.
// Tags are hydrated for the whole result set with one association query.
func (s *Store) ListNotes(ctx context.Context, filter domain.ItemFilter) ([]*domain.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE 1=1`
	clause, args := flagClauses(filter.Reminder, filter.Reading)
	query += clause + ` ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query notes: %w", err)
	}
	defer rows.Close()

	notes := []*domain.Note{}
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	if len(notes) == 0 {
		return notes, nil
	}

	noteIDs := make([]string, len(notes))
	for i, n := range notes {
		noteIDs[i] = n.ID
	}
	tagsByNote, err := tagNamesByEntity(ctx, s.db, "note_tags", "note_id", noteIDs)
	if err != nil {
		return nil, err
	}
	for _, n := range notes {
		if names, ok := tagsByNote[n.ID]; ok {
			n.Tags = names
		} else {
			n.Tags = []string{}
		}
	}

	return notes, nil
}

// UpdateNote applies a partial update in a single transaction. Only
// non-nil patch fields are changed; a non-nil Tags replaces the entire
// tag set via set-diff. Returns store.ErrNotFound if the note does not
// exist.
func (s *Store) UpdateNote(ctx context.Context, noteID string, patch domain.NotePatch) (*domain.Note, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ?`, noteID)
	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// Apply only the fields that were provided.
	if patch.Text != nil {
		n.Text = *patch.Text
	}
	if patch.Reminder != nil {
		n.Reminder = *patch.Reminder
	}
	if patch.Reading != nil {
		n.Reading = *patch.Reading
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE notes SET text = ?, reminder = ?, reading = ?
		WHERE id = ?`,
		n.Text,
		boolToInt(n.Reminder),
		boolToInt(n.Reading),
		noteID,
	)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	if patch.Tags != nil {
		tagIDs, err := resolveTagIDs(ctx, tx, *patch.Tags)
		if err != nil {
			return nil, err
		}
		if err := replaceAssociations(ctx, tx, "note_tags", "note_id", noteID, tagIDs); err != nil {
			return nil, err
		}
	}

	n.Tags, err = tagNamesFor(ctx, tx, "note_tags", "note_id", noteID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return n, nil
}

// DeleteNote removes a note. Its tag associations cascade; the tags
// themselves are untouched. Returns store.ErrNotFound if the note does
// not exist.
func (s *Store) DeleteNote(ctx context.Context, noteID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, noteID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
