// Package handler implements the HTTP handlers for the facility catalog API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, facility.go, etc.) but all share the same Server struct so
// they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/facility-catalog/internal/domain"
)

// FacilityServicer defines the business operations the facility handlers
// depend on. Defining the interface here (in the consumer package) follows the
// Go convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type FacilityServicer interface {
	Create(ctx context.Context, in domain.NewFacility) (int64, error)
	Get(ctx context.Context, id int64) (domain.FacilityView, error)
	List(ctx context.Context) ([]domain.FacilityView, error)
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.FacilityView, error)
	Update(ctx context.Context, id int64, patch domain.FacilityPatch) (domain.FacilityView, error)
	Delete(ctx context.Context, id int64) error
}

// TagServicer defines the tag operations the tag handler depends on.
type TagServicer interface {
	List(ctx context.Context, prefix string) ([]domain.Tag, error)
}

// ExportServicer defines the operations the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	facilities FacilityServicer
	tags       TagServicer
	export     ExportServicer
	log        *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(facilities FacilityServicer, tags TagServicer, export ExportServicer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{facilities: facilities, tags: tags, export: export, log: log}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil, nil, nil)
}

// Routes returns a router serving every endpoint of the API.
// main.go mounts it under the global middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Route("/facilities", func(r chi.Router) {
			r.Post("/", s.CreateFacility)
			r.Get("/", s.ListFacilities)
			r.Get("/{id}", s.GetFacility)
			r.Put("/{id}", s.UpdateFacility)
			r.Delete("/{id}", s.DeleteFacility)
		})
		r.Get("/tags", s.ListTags)
		r.Get("/export", s.GetExport)
	})

	return r
}
