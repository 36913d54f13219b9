package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rememdia/rememdia-server/internal/domain"
	"github.com/rememdia/rememdia-server/internal/store"
)

// linkColumns is the ordered list of columns selected in link queries.
// Must match the scan order in scanLink.
const linkColumns = `id, url, summary, meta_title, meta_description, reminder, reading, created_at`

// scanLink scans a sql.Row (or sql.Rows via its Scan method) into a
// domain.Link. Tags are left nil; the caller hydrates them.
func scanLink(scanner interface{ Scan(dest ...any) error }) (*domain.Link, error) {
	var l domain.Link

	var (
		reminder  int
		reading   int
		createdAt string
	)

	err := scanner.Scan(
		&l.ID,
		&l.URL,
		&l.Summary,
		&l.MetaTitle,
		&l.MetaDescription,
		&reminder,
		&reading,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	l.Reminder = reminder != 0
	l.Reading = reading != 0

	l.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &l, nil
}

// CreateLink inserts a link and attaches the given tag names in a single
// transaction. The link's Tags field is hydrated on return.
func (s *Store) CreateLink(ctx context.Context, l *domain.Link, tagNames []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO links (id, url, summary, meta_title, meta_description, reminder, reading, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID,
		l.URL,
		l.Summary,
		l.MetaTitle,
		l.MetaDescription,
		boolToInt(l.Reminder),
		boolToInt(l.Reading),
		formatTime(l.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert link: %w", err)
	}

	tagIDs, err := resolveTagIDs(ctx, tx, tagNames)
	if err != nil {
		return err
	}
	if err := replaceAssociations(ctx, tx, "link_tags", "link_id", l.ID, tagIDs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	l.Tags = uniqueNames(tagNames)
	return nil
}

// GetLink retrieves a link by ID with its tags hydrated.
// Returns store.ErrNotFound if the link does not exist.
func (s *Store) GetLink(ctx context.Context, linkID string) (*domain.Link, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+linkColumns+` FROM links WHERE id = ?`, linkID)

	l, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	l.Tags, err = tagNamesFor(ctx, s.db, "link_tags", "link_id", linkID)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// ListLinks returns links matching the filter, ordered by creation.
// Tags are hydrated for the whole result set with one association query.
func (s *Store) ListLinks(ctx context.Context, filter domain.ItemFilter) ([]*domain.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links WHERE 1=1`
	clause, args := flagClauses(filter.Reminder, filter.Reading)
	query += clause + ` ORDER BY created_at ASC, id ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	links := []*domain.Link{}
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	if len(links) == 0 {
		return links, nil
	}

	linkIDs := make([]string, len(links))
	for i, l := range links {
		linkIDs[i] = l.ID
	}
	tagsByLink, err := tagNamesByEntity(ctx, s.db, "link_tags", "link_id", linkIDs)
	if err != nil {
		return nil, err
	}
	for _, l := range links {
		if names, ok := tagsByLink[l.ID]; ok {
			l.Tags = names
		} else {
			l.Tags = []string{}
		}
	}

	return links, nil
}

// UpdateLink applies a partial update in a single transaction with the
// same semantics as UpdateNote.
func (s *Store) UpdateLink(ctx context.Context, linkID string, patch domain.LinkPatch) (*domain.Link, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx,
		`SELECT `+linkColumns+` FROM links WHERE id = ?`, linkID)
	l, err := scanLink(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// Apply only the fields that were provided.
	if patch.URL != nil {
		l.URL = *patch.URL
	}
	if patch.Summary != nil {
		l.Summary = *patch.Summary
	}
	if patch.MetaTitle != nil {
		l.MetaTitle = *patch.MetaTitle
	}
	if patch.MetaDescription != nil {
		l.MetaDescription = *patch.MetaDescription
	}
	if patch.Reminder != nil {
		l.Reminder = *patch.Reminder
	}
	if patch.Reading != nil {
		l.Reading = *patch.Reading
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE links SET url = ?, summary = ?, meta_title = ?, meta_description = ?, reminder = ?, reading = ?
		WHERE id = ?`,
		l.URL,
		l.Summary,
		l.MetaTitle,
		l.MetaDescription,
		boolToInt(l.Reminder),
		boolToInt(l.Reading),
		linkID,
	)
	if err != nil {
		return nil, fmt.Errorf("update link: %w", err)
	}

	if patch.Tags != nil {
		tagIDs, err := resolveTagIDs(ctx, tx, *patch.Tags)
		if err != nil {
			return nil, err
		}
		if err := replaceAssociations(ctx, tx, "link_tags", "link_id", linkID, tagIDs); err != nil {
			return nil, err
		}
	}

	l.Tags, err = tagNamesFor(ctx, tx, "link_tags", "link_id", linkID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	return l, nil
}

// DeleteLink removes a link. Its tag associations cascade; the tags
// themselves are untouched. Returns store.ErrNotFound if the link does
// not exist.
func (s *Store) DeleteLink(ctx context.Context, linkID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM links WHERE id = ?`, linkID)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
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
