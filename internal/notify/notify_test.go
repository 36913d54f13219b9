package notify

import (
	"context"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWebhook_Notify(t *testing.T) {
	var gotBody []byte
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	wh := NewWebhook(server.URL, testLogger())
	if err := wh.Notify(context.Background(), "reminder: buy milk"); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	if gotContentType != "application/json" {
		t.Errorf("Content-Type: got %q", gotContentType)
	}

	var payload struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal(gotBody, &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if payload.Content != "reminder: buy milk" {
		t.Errorf("content: got %q", payload.Content)
	}
}

func TestWebhook_Notify_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	wh := NewWebhook(server.URL, testLogger())
	if err := wh.Notify(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for 400 response")
	}
}

func TestNoop_Notify(t *testing.T) {
	n := NewNoop(testLogger())
	if err := n.Notify(context.Background(), "dropped"); err != nil {
		t.Fatalf("Notify: %v", err)
	}
}
