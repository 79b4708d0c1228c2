package handler

import (
	"net/http"

	"github.com/pkordes/facility-catalog/internal/domain"
)

const facilityNotFound = "facility not found"

// CreateFacility handles POST /api/facilities.
func (s *Server) CreateFacility(w http.ResponseWriter, r *http.Request) {
	var req CreateFacilityRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Location == nil {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("location is required"))
		return
	}

	id, err := s.facilities.Create(r.Context(), req.toNewFacility())
	if err != nil {
		s.respondError(w, r, err, facilityNotFound)
		return
	}
	writeJSON(w, http.StatusCreated, MessageResponse{Message: "Facility created successfully", FacilityID: id})
}

// GetFacility handles GET /api/facilities/{id}.
func (s *Server) GetFacility(w http.ResponseWriter, r *http.Request) {
	id, err := bindFacilityID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, parameterBody(err))
		return
	}

	view, err := s.facilities.Get(r.Context(), id)
	if err != nil {
		s.respondError(w, r, err, facilityNotFound)
		return
	}
	writeJSON(w, http.StatusOK, facilityToResponse(view))
}

// ListFacilities handles GET /api/facilities.
// With no filter it returns every facility; otherwise the name, city and tag
// filters are ANDed. tag_mode selects how the tag filter is applied.
func (s *Server) ListFacilities(w http.ResponseWriter, r *http.Request) {
	filter, err := bindSearchFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, parameterBody(err))
		return
	}

	var views []domain.FacilityView
	if filter.IsEmpty() {
		views, err = s.facilities.List(r.Context())
	} else {
		views, err = s.facilities.Search(r.Context(), filter)
	}
	if err != nil {
		s.respondError(w, r, err, facilityNotFound)
		return
	}

	data := make([]FacilityResponse, len(views))
	for i, v := range views {
		data[i] = facilityToResponse(v)
	}
	writeJSON(w, http.StatusOK, FacilityListResponse{Data: data})
}

// UpdateFacility handles PUT /api/facilities/{id}.
func (s *Server) UpdateFacility(w http.ResponseWriter, r *http.Request) {
	id, err := bindFacilityID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, parameterBody(err))
		return
	}

	var req UpdateFacilityRequest
	if !decodeBody(w, r, &req) {
		return
	}

	view, err := s.facilities.Update(r.Context(), id, req.toPatch())
	if err != nil {
		s.respondError(w, r, err, facilityNotFound)
		return
	}
	writeJSON(w, http.StatusOK, facilityToResponse(view))
}

// DeleteFacility handles DELETE /api/facilities/{id}.
func (s *Server) DeleteFacility(w http.ResponseWriter, r *http.Request) {
	id, err := bindFacilityID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, parameterBody(err))
		return
	}

	if err := s.facilities.Delete(r.Context(), id); err != nil {
		s.respondError(w, r, err, facilityNotFound)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "Facility deleted successfully"})
}

// bindSearchFilter reads the name, city, tag and tag_mode query parameters.
func bindSearchFilter(r *http.Request) (domain.SearchFilter, error) {
	var (
		f   domain.SearchFilter
		err error
	)
	if f.Name, err = bindOptionalQuery(r, "name"); err != nil {
		return f, err
	}
	if f.City, err = bindOptionalQuery(r, "city"); err != nil {
		return f, err
	}
	if f.Tag, err = bindOptionalQuery(r, "tag"); err != nil {
		return f, err
	}

	mode, err := bindOptionalQuery(r, "tag_mode")
	if err != nil {
		return f, err
	}
	raw := ""
	if mode != nil {
		raw = *mode
	}
	if f.TagMode, err = domain.ParseTagMatchMode(raw); err != nil {
		return f, err
	}
	return f, nil
}
