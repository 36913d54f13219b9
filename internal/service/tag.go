package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rememdia/rememdia-server/internal/store"
)

// TagService exposes the shared tag vocabulary for autocomplete.
// Tag creation happens implicitly through note and link writes.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(store store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:  store,
		logger: logger,
	}
}

// ListNames returns every tag name, ordered by name.
func (s *TagService) ListNames(ctx context.Context) ([]string, error) {
	names, err := s.store.ListTagNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tag names: %w", err)
	}
	return names, nil
}
