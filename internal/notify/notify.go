package notify

import (
	"bytes"
	"context"
	"encoding/json/v2"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Notifier delivers a human-readable message to an external channel.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// Webhook posts messages to a Discord-compatible webhook URL.
type Webhook struct {
	url        string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWebhook creates a webhook notifier.
func NewWebhook(url string, logger *slog.Logger) *Webhook {
	return &Webhook{
		url: url,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

type webhookPayload struct {
	Content string `json:"content"`
}

// Notify posts the message as the webhook payload content.
func (w *Webhook) Notify(ctx context.Context, message string) error {
	body, err := json.Marshal(webhookPayload{Content: message})
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	// Discord returns 204 on success; accept any 2xx.
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("post webhook: status %d", resp.StatusCode)
	}

	return nil
}

// Noop discards messages. Used when no webhook URL is configured so the
// scheduler still exercises its scan loops in development.
type Noop struct {
	logger *slog.Logger
}

// NewNoop creates a notifier that logs messages instead of delivering them.
func NewNoop(logger *slog.Logger) *Noop {
	return &Noop{logger: logger}
}

func (n *Noop) Notify(_ context.Context, message string) error {
	n.logger.Debug("notification discarded, no webhook configured", "message", message)
	return nil
}
