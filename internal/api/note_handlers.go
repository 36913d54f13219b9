package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rememdia/rememdia-server/internal/domain"
	"github.com/rememdia/rememdia-server/internal/http/response"
	"github.com/rememdia/rememdia-server/internal/service"
)

// handleCreateNote creates a note.
func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.CreateNoteInput
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	note, err := s.noteService.Create(ctx, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, note, s.logger)
}

// handleListNotes returns notes, optionally filtered by flags.
func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseItemFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error(), s.logger)
		return
	}

	notes, err := s.noteService.List(ctx, filter)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	// Empty list, not null.
	if notes == nil {
		notes = []*domain.Note{}
	}

	response.Success(w, notes, s.logger)
}

// handleGetNote returns a single note by ID.
func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	note, err := s.noteService.Get(ctx, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, note, s.logger)
}

// handleUpdateNote applies a partial update to a note.
func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	// Absent body fields stay nil and leave the stored value untouched;
	// a present field is applied even when zero.
	var patch domain.NotePatch
	if err := json.UnmarshalRead(r.Body, &patch); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	note, err := s.noteService.Update(ctx, id, patch)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, note, s.logger)
}

// handleDeleteNote deletes a note.
func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := s.noteService.Delete(ctx, id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
