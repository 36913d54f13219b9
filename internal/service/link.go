package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rememdia/rememdia-server/internal/domain"
	domainerrors "github.com/rememdia/rememdia-server/internal/errors"
	"github.com/rememdia/rememdia-server/internal/fetcher"
	"github.com/rememdia/rememdia-server/internal/id"
	"github.com/rememdia/rememdia-server/internal/store"
	"github.com/rememdia/rememdia-server/internal/validation"
)

// LinkService manages saved links and their page metadata.
type LinkService struct {
	store     store.Store
	fetcher   fetcher.Fetcher
	validator *validation.Validator
	logger    *slog.Logger
}

// NewLinkService creates a new link service.
func NewLinkService(store store.Store, fetcher fetcher.Fetcher, validator *validation.Validator, logger *slog.Logger) *LinkService {
	return &LinkService{
		store:     store,
		fetcher:   fetcher,
		validator: validator,
		logger:    logger,
	}
}

// CreateLinkInput is the payload for saving a link.
type CreateLinkInput struct {
	URL      string   `json:"url" validate:"required,max=2048"`
	Summary  string   `json:"summary" validate:"max=10000"`
	Reminder bool     `json:"reminder"`
	Reading  bool     `json:"reading"`
	Tags     []string `json:"tags" validate:"max=50,dive,max=100"`
}

// Create saves a link, enriching it with page metadata. A metadata fetch
// failure degrades to empty fields and never fails the save.
func (s *LinkService) Create(ctx context.Context, input CreateLinkInput) (*domain.Link, error) {
	if err := s.validator.Validate(input); err != nil {
		return nil, err
	}

	linkID, err := id.Generate("link")
	if err != nil {
		return nil, fmt.Errorf("generate link id: %w", err)
	}

	url := fetcher.NormalizeURL(input.URL)

	link := &domain.Link{
		ID:        linkID,
		URL:       url,
		Summary:   input.Summary,
		Reminder:  input.Reminder,
		Reading:   input.Reading,
		CreatedAt: time.Now().UTC(),
	}

	meta, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn("metadata fetch failed, saving link without metadata",
			"url", url,
			"error", err,
		)
	} else {
		link.MetaTitle = meta.Title
		link.MetaDescription = meta.Description
	}

	if err := s.store.CreateLink(ctx, link, input.Tags); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}

	s.logger.Info("link created",
		"link_id", link.ID,
		"url", link.URL,
		"tags", len(link.Tags),
	)

	return link, nil
}

// Get returns a single link by id.
func (s *LinkService) Get(ctx context.Context, linkID string) (*domain.Link, error) {
	link, err := s.store.GetLink(ctx, linkID)
	if domainerrors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFoundf("link %s not found", linkID)
	}
	if err != nil {
		return nil, fmt.Errorf("get link: %w", err)
	}
	return link, nil
}

// List returns links matching the filter, oldest first.
func (s *LinkService) List(ctx context.Context, filter domain.ItemFilter) ([]*domain.Link, error) {
	links, err := s.store.ListLinks(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	return links, nil
}

// Update applies a partial update to a link. A patched URL is normalized
// and its metadata re-fetched, degrading the same way Create does.
func (s *LinkService) Update(ctx context.Context, linkID string, patch domain.LinkPatch) (*domain.Link, error) {
	// An empty patch changes nothing; skip the update round-trip.
	if patch.IsZero() {
		return s.Get(ctx, linkID)
	}

	if patch.URL != nil {
		if *patch.URL == "" {
			return nil, domainerrors.Validation("link url must not be empty")
		}
		url := fetcher.NormalizeURL(*patch.URL)
		patch.URL = &url

		// Only refresh metadata when the caller didn't set it explicitly.
		if patch.MetaTitle == nil && patch.MetaDescription == nil {
			meta, err := s.fetcher.Fetch(ctx, url)
			if err != nil {
				s.logger.Warn("metadata refresh failed, keeping stored metadata",
					"url", url,
					"error", err,
				)
			} else {
				patch.MetaTitle = &meta.Title
				patch.MetaDescription = &meta.Description
			}
		}
	}

	link, err := s.store.UpdateLink(ctx, linkID, patch)
	if domainerrors.Is(err, store.ErrNotFound) {
		return nil, domainerrors.NotFoundf("link %s not found", linkID)
	}
	if err != nil {
		return nil, fmt.Errorf("update link: %w", err)
	}

	s.logger.Info("link updated", "link_id", linkID)

	return link, nil
}

// Delete removes a link. Its tags persist for reuse.
func (s *LinkService) Delete(ctx context.Context, linkID string) error {
	err := s.store.DeleteLink(ctx, linkID)
	if domainerrors.Is(err, store.ErrNotFound) {
		return domainerrors.NotFoundf("link %s not found", linkID)
	}
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}

	s.logger.Info("link deleted", "link_id", linkID)

	return nil
}
