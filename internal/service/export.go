package service

import (
	"context"
	"fmt"

	"github.com/pkordes/facility-catalog/internal/domain"
	"github.com/pkordes/facility-catalog/internal/repo"
)

// ExportService assembles a flat export of every facility with its location
// and tags.
type ExportService struct {
	facilities repo.FacilityRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(facilities repo.FacilityRepo) *ExportService {
	return &ExportService{facilities: facilities}
}

// Export returns one ExportRow per facility, ordered by facility id.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	views, err := s.facilities.Search(ctx, domain.SearchFilter{})
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(views))
	for _, v := range views {
		rows = append(rows, domain.ExportRow{
			FacilityID:   v.ID,
			FacilityName: v.Name,
			CreationDate: v.CreationDate,
			City:         v.Location.City,
			Address:      v.Location.Address,
			ZipCode:      v.Location.ZipCode,
			CountryCode:  v.Location.CountryCode,
			PhoneNumber:  v.Location.PhoneNumber,
			Tags:         v.Tags(),
		})
	}
	return rows, nil
}
