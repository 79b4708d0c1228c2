package handler

import (
	"net/http"

	"github.com/pkordes/facility-catalog/internal/domain"
)

// TagResponse is the JSON form of domain.Tag.
type TagResponse struct {
	ID            int64  `json:"tag_id"`
	Name          string `json:"tag_name"`
	FacilityCount int64  `json:"facility_count"`
}

// TagListResponse is the body of GET /api/tags.
type TagListResponse struct {
	Data []TagResponse `json:"data"`
}

// ListTags handles GET /api/tags.
// The optional ?q= query parameter filters tags by name prefix.
func (s *Server) ListTags(w http.ResponseWriter, r *http.Request) {
	q, err := bindOptionalQuery(r, "q")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, parameterBody(err))
		return
	}

	tags, err := s.tags.List(r.Context(), derefString(q))
	if err != nil {
		s.respondError(w, r, err, "tag not found")
		return
	}

	data := make([]TagResponse, len(tags))
	for i, t := range tags {
		data[i] = tagToResponse(t)
	}
	writeJSON(w, http.StatusOK, TagListResponse{Data: data})
}

// tagToResponse converts a domain.Tag to its JSON form.
func tagToResponse(t domain.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, FacilityCount: t.FacilityCount}
}

// derefString returns the value of s, or "" if s is nil.
func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
