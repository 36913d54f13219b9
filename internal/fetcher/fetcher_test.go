package fetcher

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	client := NewClient(5*time.Second, logger)
	client.httpClient = server.Client()

	return client, server
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare host gets scheme",
			input: "example.com/page",
			want:  "https://example.com/page",
		},
		{
			name:  "https unchanged",
			input: "https://example.com",
			want:  "https://example.com",
		},
		{
			name:  "http unchanged",
			input: "http://example.com",
			want:  "http://example.com",
		},
		{
			name:  "empty string unchanged",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeURL(tt.input); got != tt.want {
				t.Errorf("NormalizeURL(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClient_Fetch(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head>
<title>Fallback Title</title>
<meta property="og:title" content="OG Title" />
<meta property="og:description" content="A page about things." />
</head>
<body><p>body</p></body>
</html>`

	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(page))
	})

	meta, err := client.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if meta.Title != "OG Title" {
		t.Errorf("Title: got %q, want %q", meta.Title, "OG Title")
	}
	if meta.Description != "A page about things." {
		t.Errorf("Description: got %q", meta.Description)
	}
}

func TestClient_Fetch_TitleFallback(t *testing.T) {
	page := `<html><head><title>  Plain   Title </title></head><body></body></html>`

	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	})

	meta, err := client.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if meta.Title != "Plain Title" {
		t.Errorf("Title: got %q, want %q", meta.Title, "Plain Title")
	}
	if meta.Description != "" {
		t.Errorf("Description: got %q, want empty", meta.Description)
	}
}

func TestClient_Fetch_NameAttribute(t *testing.T) {
	page := `<html><head><meta name="og:title" content="Named Title"></head></html>`

	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	})

	meta, err := client.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if meta.Title != "Named Title" {
		t.Errorf("Title: got %q, want %q", meta.Title, "Named Title")
	}
}

func TestClient_Fetch_ServerError(t *testing.T) {
	client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for 500 response")
	}
	if !strings.Contains(err.Error(), "status 500") {
		t.Errorf("error: got %v, want status 500", err)
	}
}

func TestClient_Fetch_Unreachable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	client := NewClient(time.Second, logger)

	_, err := client.Fetch(context.Background(), "http://127.0.0.1:1")
	if err == nil {
		t.Fatal("expected error for unreachable host")
	}
}

func TestRenderDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "plain text unchanged",
			input: "Just plain text",
			want:  "Just plain text",
		},
		{
			name:  "collapses whitespace",
			input: "Too    many\n\tspaces",
			want:  "Too many spaces",
		},
		{
			name:  "converts markup to markdown",
			input: "<p><strong>Bold</strong> statement</p>",
			want:  "**Bold** statement",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := renderDescription(tt.input); got != tt.want {
				t.Errorf("renderDescription() = %q, want %q", got, tt.want)
			}
		})
	}
}
