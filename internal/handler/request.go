package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/facility-catalog/internal/domain"
)

// TagList is the "tags" field of a facility request body. Clients may send a
// JSON array of names or a single comma-separated string. Names inside the
// array are split on commas later by domain.NormalizeTagNames, so both forms
// yield the same tag set. JSON null leaves the list nil.
type TagList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *TagList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}

	out := make([]string, 0)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if strings.TrimSpace(s) != "" {
			out = append(out, strings.Split(s, ",")...)
		}
		*l = out
		return nil
	}

	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return errors.New("tags must be an array of strings or a comma-separated string")
	}
	*l = append(out, names...)
	return nil
}

// LocationBody is the location object of a create request.
type LocationBody struct {
	City        string `json:"city"`
	Address     string `json:"address"`
	ZipCode     string `json:"zip_code"`
	CountryCode string `json:"country_code"`
	PhoneNumber string `json:"phone_number"`
}

// CreateFacilityRequest is the body of POST /api/facilities.
type CreateFacilityRequest struct {
	Name     string        `json:"name"`
	Location *LocationBody `json:"location"`
	Tags     TagList       `json:"tags"`
}

// LocationPatchBody is the location object of an update request.
// Absent fields are left unchanged.
type LocationPatchBody struct {
	City        *string `json:"city"`
	Address     *string `json:"address"`
	ZipCode     *string `json:"zip_code"`
	CountryCode *string `json:"country_code"`
	PhoneNumber *string `json:"phone_number"`
}

// UpdateFacilityRequest is the body of PUT /api/facilities/{id}.
// Every field is optional; a present "tags" replaces the whole tag set.
type UpdateFacilityRequest struct {
	Name     *string            `json:"name"`
	Location *LocationPatchBody `json:"location"`
	Tags     *TagList           `json:"tags"`
}

// LocationResponse is the location object of a facility view.
type LocationResponse struct {
	ID          int64  `json:"location_id"`
	City        string `json:"city"`
	Address     string `json:"address"`
	ZipCode     string `json:"zip_code"`
	CountryCode string `json:"country_code"`
	PhoneNumber string `json:"phone_number"`
}

// FacilityResponse is the JSON form of domain.FacilityView.
type FacilityResponse struct {
	ID           int64            `json:"facility_id"`
	Name         string           `json:"name"`
	CreationDate time.Time        `json:"creation_date"`
	Location     LocationResponse `json:"location"`
	TagNames     string           `json:"tag_names"`
	Tags         []string         `json:"tags"`
}

// FacilityListResponse is the body of GET /api/facilities.
type FacilityListResponse struct {
	Data []FacilityResponse `json:"data"`
}

// MessageResponse acknowledges a write. FacilityID is set on create only.
type MessageResponse struct {
	Message    string `json:"message"`
	FacilityID int64  `json:"facility_id,omitempty"`
}

// decodeBody decodes the JSON request body into dst and writes the error
// response itself when that fails. It reports whether the caller may proceed.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if r.Body == nil || r.Body == http.NoBody {
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("request body is required"))
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, ErrorResponse{Error: ErrorDetail{
				Code:    "validation_error",
				Message: fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit),
			}})
			return false
		}
		writeJSON(w, http.StatusUnprocessableEntity, requestBody("malformed JSON body: "+err.Error()))
		return false
	}
	return true
}

// bindFacilityID binds the {id} path parameter.
func bindFacilityID(r *http.Request) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("invalid id %d: must be positive", id)
	}
	return id, nil
}

// bindOptionalQuery binds an optional string query parameter. Blank values
// are treated as absent.
func bindOptionalQuery(r *http.Request, name string) (*string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), &v); err != nil {
		return nil, err
	}
	if v != nil && strings.TrimSpace(*v) == "" {
		return nil, nil
	}
	return v, nil
}

// toNewFacility maps a create request onto the service input.
func (req CreateFacilityRequest) toNewFacility() domain.NewFacility {
	in := domain.NewFacility{Name: req.Name, Tags: []string(req.Tags)}
	if req.Location != nil {
		in.Location = domain.Location{
			City:        req.Location.City,
			Address:     req.Location.Address,
			ZipCode:     req.Location.ZipCode,
			CountryCode: req.Location.CountryCode,
			PhoneNumber: req.Location.PhoneNumber,
		}
	}
	return in
}

// toPatch maps an update request onto the service patch.
func (req UpdateFacilityRequest) toPatch() domain.FacilityPatch {
	patch := domain.FacilityPatch{Name: req.Name}
	if req.Location != nil {
		patch.Location = &domain.LocationPatch{
			City:        req.Location.City,
			Address:     req.Location.Address,
			ZipCode:     req.Location.ZipCode,
			CountryCode: req.Location.CountryCode,
			PhoneNumber: req.Location.PhoneNumber,
		}
	}
	if req.Tags != nil {
		patch.Tags = make([]string, 0, len(*req.Tags))
		patch.Tags = append(patch.Tags, *req.Tags...)
	}
	return patch
}

// facilityToResponse converts a domain.FacilityView to its JSON form.
func facilityToResponse(v domain.FacilityView) FacilityResponse {
	return FacilityResponse{
		ID:           v.ID,
		Name:         v.Name,
		CreationDate: v.CreationDate,
		Location: LocationResponse{
			ID:          v.Location.ID,
			City:        v.Location.City,
			Address:     v.Location.Address,
			ZipCode:     v.Location.ZipCode,
			CountryCode: v.Location.CountryCode,
			PhoneNumber: v.Location.PhoneNumber,
		},
		TagNames: v.TagNames,
		Tags:     v.Tags(),
	}
}
