package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rememdia/rememdia-server/internal/domain"
	"github.com/rememdia/rememdia-server/internal/http/response"
	"github.com/rememdia/rememdia-server/internal/service"
)

// handleCreateLink saves a link, enriched with fetched page metadata.
func (s *Server) handleCreateLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.CreateLinkInput
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	link, err := s.linkService.Create(ctx, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, link, s.logger)
}

// handleListLinks returns links, optionally filtered by flags.
func (s *Server) handleListLinks(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseItemFilter(r)
	if err != nil {
		response.BadRequest(w, err.Error(), s.logger)
		return
	}

	links, err := s.linkService.List(ctx, filter)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	// Empty list, not null.
	if links == nil {
		links = []*domain.Link{}
	}

	response.Success(w, links, s.logger)
}

// handleGetLink returns a single link by ID.
func (s *Server) handleGetLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	link, err := s.linkService.Get(ctx, id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, link, s.logger)
}

// handleUpdateLink applies a partial update to a link.
func (s *Server) handleUpdateLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	// Absent body fields stay nil and leave the stored value untouched;
	// a present field is applied even when zero.
	var patch domain.LinkPatch
	if err := json.UnmarshalRead(r.Body, &patch); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	link, err := s.linkService.Update(ctx, id, patch)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, link, s.logger)
}

// handleDeleteLink deletes a link.
func (s *Server) handleDeleteLink(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	if err := s.linkService.Delete(ctx, id); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}
