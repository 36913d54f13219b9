package api

import (
	"net/http"

	"github.com/rememdia/rememdia-server/internal/http/response"
)

// handleListTags returns every tag name for autocomplete.
func (s *Server) handleListTags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	names, err := s.tagService.ListNames(ctx)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if names == nil {
		names = []string{}
	}

	response.Success(w, names, s.logger)
}
