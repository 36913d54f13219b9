package sqlite

import (
	"context"
	"sync"
	"testing"
)

func TestFindOrCreateTag(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// First call should create a new tag.
	tag1, created, err := s.FindOrCreateTag(ctx, "golang")
	if err != nil {
		t.Fatalf("FindOrCreateTag (create): %v", err)
	}
	if !created {
		t.Error("expected created=true for new tag")
	}
	if tag1.ID == "" {
		t.Error("expected non-empty ID for created tag")
	}
	if tag1.Name != "golang" {
		t.Errorf("Name: got %q, want %q", tag1.Name, "golang")
	}
	if tag1.CreatedAt.IsZero() {
		t.Error("CreatedAt: expected non-zero")
	}

	// Second call should return the same tag.
	tag2, created, err := s.FindOrCreateTag(ctx, "golang")
	if err != nil {
		t.Fatalf("FindOrCreateTag (find): %v", err)
	}
	if created {
		t.Error("expected created=false for existing tag")
	}
	if tag2.ID != tag1.ID {
		t.Errorf("ID: got %q, want %q", tag2.ID, tag1.ID)
	}

	// list_all contains the name exactly once.
	names, err := s.ListTagNames(ctx)
	if err != nil {
		t.Fatalf("ListTagNames: %v", err)
	}
	count := 0
	for _, name := range names {
		if name == "golang" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected %q exactly once, got %d occurrences", "golang", count)
	}
}

func TestFindOrCreateTag_Concurrent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// All goroutines race on the same name. The UNIQUE constraint
	// arbitrates: losers retry the lookup and adopt the winner's row.
	const workers = 16
	ids := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tag, _, err := s.FindOrCreateTag(ctx, "raced")
			if err != nil {
				errs[i] = err
				return
			}
			ids[i] = tag.ID
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: FindOrCreateTag: %v", i, err)
		}
	}
	for i := 1; i < workers; i++ {
		if ids[i] != ids[0] {
			t.Errorf("worker %d: ID %q, want %q", i, ids[i], ids[0])
		}
	}

	names, err := s.ListTagNames(ctx)
	if err != nil {
		t.Fatalf("ListTagNames: %v", err)
	}
	count := 0
	for _, name := range names {
		if name == "raced" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("expected %q exactly once, got %d occurrences", "raced", count)
	}
}

func TestFindOrCreateTag_CaseSensitive(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	lower, _, err := s.FindOrCreateTag(ctx, "reading")
	if err != nil {
		t.Fatalf("FindOrCreateTag: %v", err)
	}
	upper, created, err := s.FindOrCreateTag(ctx, "Reading")
	if err != nil {
		t.Fatalf("FindOrCreateTag: %v", err)
	}
	if !created {
		t.Error("expected created=true: tag matching is case-sensitive")
	}
	if upper.ID == lower.ID {
		t.Error("expected distinct tags for distinct casings")
	}
}

func TestFindOrCreateTag_EmptyName(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, _, err := s.FindOrCreateTag(ctx, "")
	if err == nil {
		t.Fatal("expected error for empty tag name, got nil")
	}
}

func TestListTagNames_Ordering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"zig", "ada", "ml"} {
		if _, _, err := s.FindOrCreateTag(ctx, name); err != nil {
			t.Fatalf("FindOrCreateTag(%s): %v", name, err)
		}
	}

	names, err := s.ListTagNames(ctx)
	if err != nil {
		t.Fatalf("ListTagNames: %v", err)
	}
	want := []string{"ada", "ml", "zig"}
	if len(names) != len(want) {
		t.Fatalf("expected %d names, got %d", len(want), len(names))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("item %d: got %q, want %q", i, names[i], want[i])
		}
	}
}

func TestTagNamesByEntity_RestrictsToListed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	first := makeTestNote("first")
	if err := s.CreateNote(ctx, first, []string{"alpha"}); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}
	second := makeTestNote("second")
	if err := s.CreateNote(ctx, second, []string{"beta"}); err != nil {
		t.Fatalf("CreateNote: %v", err)
	}

	byNote, err := tagNamesByEntity(ctx, s.db, "note_tags", "note_id", []string{first.ID})
	if err != nil {
		t.Fatalf("tagNamesByEntity: %v", err)
	}
	if len(byNote) != 1 {
		t.Fatalf("expected 1 entity, got %d", len(byNote))
	}
	if got := byNote[first.ID]; len(got) != 1 || got[0] != "alpha" {
		t.Errorf("tags for first note: got %v, want [alpha]", got)
	}

	empty, err := tagNamesByEntity(ctx, s.db, "note_tags", "note_id", nil)
	if err != nil {
		t.Fatalf("tagNamesByEntity (no IDs): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("expected empty map for no IDs, got %v", empty)
	}
}

func TestListTagNames_Empty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	names, err := s.ListTagNames(ctx)
	if err != nil {
		t.Fatalf("ListTagNames: %v", err)
	}
	if len(names) != 0 {
		t.Errorf("expected no names, got %v", names)
	}
}
