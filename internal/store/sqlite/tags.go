package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rememdia/rememdia-server/internal/domain"
	"github.com/rememdia/rememdia-server/internal/id"
	"github.com/rememdia/rememdia-server/internal/store"
)

// tagColumns is the ordered list of columns selected in tag queries.
// Must match the scan order in scanTag.
const tagColumns = `id, name, created_at`

// scanTag scans a sql.Row (or sql.Rows via its Scan method) into a domain.Tag.
func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag
	var createdAt string

	err := scanner.Scan(
		&t.ID,
		&t.Name,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// createTag inserts a new tag.
// Returns store.ErrAlreadyExists on duplicate name.
func createTag(ctx context.Context, q querier, t *domain.Tag) error {
	_, err := q.ExecContext(ctx, `
		INSERT INTO tags (id, name, created_at)
		VALUES (?, ?, ?)`,
		t.ID,
		t.Name,
		formatTime(t.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// getTagByName retrieves a tag by its exact-match name.
func getTagByName(ctx context.Context, q querier, name string) (*domain.Tag, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE name = ?`, name)

	t, err := scanTag(row)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// findOrCreateTag finds an existing tag by name or creates a new one.
// The tags UNIQUE constraint is the arbiter when two creation calls race:
// the loser retries the lookup and adopts the winner's row.
func findOrCreateTag(ctx context.Context, q querier, name string) (*domain.Tag, bool, error) {
	existing, err := getTagByName(ctx, q, name)
	if err == nil {
		return existing, false, nil
	}
	if err != store.ErrNotFound {
		return nil, false, err
	}

	// Tag doesn't exist, create it.
	tagID, err := id.Generate("tag")
	if err != nil {
		return nil, false, fmt.Errorf("generate tag id: %w", err)
	}

	t := &domain.Tag{
		ID:        tagID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := createTag(ctx, q, t); err != nil {
		if err == store.ErrAlreadyExists {
			// Race condition: another goroutine created it.
			existing, err := getTagByName(ctx, q, name)
			if err != nil {
				return nil, false, err
			}
			return existing, false, nil
		}
		return nil, false, err
	}

	return t, true, nil
}

// FindOrCreateTag finds an existing tag by exact-match name or creates a
// new one. Returns (tag, created, error) where created is true if a new
// tag was made.
func (s *Store) FindOrCreateTag(ctx context.Context, name string) (*domain.Tag, bool, error) {
	if name == "" {
		return nil, false, store.ErrInvalidInput.WithMessage("tag name is empty")
	}
	return findOrCreateTag(ctx, s.db, name)
}

// ListTagNames returns all tag names ordered by name.
func (s *Store) ListTagNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name FROM tags ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return names, nil
}

// resolveTagIDs resolves each unique name to a tag ID, creating missing
// tags. Returns IDs in the same order as the deduplicated names.
func resolveTagIDs(ctx context.Context, q querier, names []string) ([]string, error) {
	unique := uniqueNames(names)
	ids := make([]string, 0, len(unique))
	for _, name := range unique {
		t, _, err := findOrCreateTag(ctx, q, name)
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", name, err)
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}

// replaceAssociations diffs the current tag set of an entity against the
// desired one, detaching removed tags and attaching added ones. table is
// the association table and column the entity ID column.
func replaceAssociations(ctx context.Context, q querier, table, column, entityID string, desired []string) error {
	rows, err := q.QueryContext(ctx,
		`SELECT tag_id FROM `+table+` WHERE `+column+` = ?`, entityID)
	if err != nil {
		return fmt.Errorf("query %s: %w", table, err)
	}
	current := make(map[string]bool)
	for rows.Next() {
		var tagID string
		if err := rows.Scan(&tagID); err != nil {
			rows.Close()
			return fmt.Errorf("scan %s: %w", table, err)
		}
		current[tagID] = true
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("rows iteration: %w", err)
	}
	rows.Close()

	want := make(map[string]bool, len(desired))
	for _, tagID := range desired {
		want[tagID] = true
	}

	// Detach removed.
	for tagID := range current {
		if want[tagID] {
			continue
		}
		if _, err := q.ExecContext(ctx,
			`DELETE FROM `+table+` WHERE `+column+` = ? AND tag_id = ?`,
			entityID, tagID); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}

	// Attach added.
	now := formatTime(time.Now().UTC())
	for _, tagID := range desired {
		if current[tagID] {
			continue
		}
		if _, err := q.ExecContext(ctx, `
			INSERT INTO `+table+` (`+column+`, tag_id, created_at)
			VALUES (?, ?, ?)`,
			entityID, tagID, now); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}

	return nil
}

// tagNamesFor returns the sorted tag names attached to an entity.
func tagNamesFor(ctx context.Context, q querier, table, column, entityID string) ([]string, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT t.name FROM `+table+` a
		JOIN tags t ON t.id = a.tag_id
		WHERE a.`+column+` = ?
		ORDER BY t.name ASC`, entityID)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan tag name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return names, nil
}

// tagNamesByEntity returns a map of entity ID to sorted tag names for the
// given entities in a single query. List operations use this to hydrate
// tags without a per-entity lookup.
func tagNamesByEntity(ctx context.Context, q querier, table, column string, entityIDs []string) (map[string][]string, error) {
	if len(entityIDs) == 0 {
		return map[string][]string{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(entityIDs)), ",")
	args := make([]any, len(entityIDs))
	for i, entityID := range entityIDs {
		args[i] = entityID
	}

	rows, err := q.QueryContext(ctx, `
		SELECT a.`+column+`, t.name FROM `+table+` a
		JOIN tags t ON t.id = a.tag_id
		WHERE a.`+column+` IN (`+placeholders+`)
		ORDER BY a.`+column+`, t.name ASC`, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	byEntity := make(map[string][]string)
	for rows.Next() {
		var entityID, name string
		if err := rows.Scan(&entityID, &name); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		byEntity[entityID] = append(byEntity[entityID], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return byEntity, nil
}
