package fetcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// maxBodySize caps how much of a page we read when extracting metadata.
// Open Graph tags live in <head>, so 1 MiB is plenty.
const maxBodySize = 1 << 20

// Metadata holds page metadata extracted from a fetched URL.
type Metadata struct {
	Title       string
	Description string
}

// Fetcher retrieves page metadata for a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (Metadata, error)
}

// Client fetches pages over HTTP and extracts Open Graph metadata.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a metadata fetcher with the given request timeout.
// Rate limited to 1 request per second with a small burst so bulk link
// imports don't hammer remote sites.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(time.Second), 5),
		logger:      logger,
	}
}

// NormalizeURL prepends https:// when the URL carries no scheme.
func NormalizeURL(url string) string {
	if url == "" {
		return url
	}
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return "https://" + url
}

// Fetch downloads the page at url and extracts its title and description.
// The caller decides how to degrade when an error is returned.
func (c *Client) Fetch(ctx context.Context, url string) (Metadata, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return Metadata{}, fmt.Errorf("rate limit: %w", err)
	}

	c.logger.Debug("fetching page metadata", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Metadata{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Metadata{}, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Metadata{}, fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	meta, err := extractMetadata(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Metadata{}, fmt.Errorf("parse page: %w", err)
	}

	c.logger.Debug("extracted page metadata",
		"url", url,
		"title", meta.Title,
	)

	return meta, nil
}
