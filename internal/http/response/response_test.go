package response

import (
	"encoding/json/v2"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "github.com/rememdia/rememdia-server/internal/errors"
	"github.com/rememdia/rememdia-server/internal/store"
)

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}

func TestSuccess(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, map[string]string{"id": "note-123"}, nil)

	if rec.Code != http.StatusOK {
		t.Errorf("status: got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("Content-Type: got %q", ct)
	}

	env := decodeEnvelope(t, rec)
	if !env.Success {
		t.Error("Success: expected true")
	}
	if env.Error != "" {
		t.Errorf("Error: got %q, want empty", env.Error)
	}
}

func TestCreated(t *testing.T) {
	rec := httptest.NewRecorder()
	Created(rec, map[string]string{"id": "link-456"}, nil)

	if rec.Code != http.StatusCreated {
		t.Errorf("status: got %d, want 201", rec.Code)
	}
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NoContent(rec)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want 204", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body: got %q, want empty", rec.Body.String())
	}
}

func TestHandleError_DomainError(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, domainerrors.NotFound("note not found"), nil)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Success {
		t.Error("Success: expected false")
	}
	if env.Error != "note not found" {
		t.Errorf("Error: got %q", env.Error)
	}
	if env.Code != "NOT_FOUND" {
		t.Errorf("Code: got %q", env.Code)
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	err := domainerrors.ValidationWithDetails("validation failed", map[string]string{"text": "is required"})
	HandleError(rec, err, nil)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Details == nil {
		t.Error("Details: expected field errors")
	}
}

func TestHandleError_StoreError(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, store.ErrNotFound, nil)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
}

func TestHandleError_Unknown(t *testing.T) {
	rec := httptest.NewRecorder()
	HandleError(rec, errors.New("something broke"), nil)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Error != "internal server error" {
		t.Errorf("Error: got %q, internals should not leak", env.Error)
	}
}
