package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/facility-catalog/internal/domain"
	"github.com/pkordes/facility-catalog/internal/service"
)

func TestExportService_Export_FlattensViews(t *testing.T) {
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := service.NewExportService(&mockFacilityRepo{
		search: func(_ context.Context, filter domain.SearchFilter) ([]domain.FacilityView, error) {
			assert.True(t, filter.IsEmpty())
			return []domain.FacilityView{
				{
					ID: 1, Name: "Dock A", CreationDate: created,
					Location: domain.Location{ID: 5, City: "Amsterdam", Address: "Dam 1", ZipCode: "1012 JS", CountryCode: "NL", PhoneNumber: "+31"},
					TagNames: "cold,secure",
				},
				{ID: 2, Name: "Bare Hall", CreationDate: created},
			}, nil
		},
	})

	rows, err := svc.Export(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, domain.ExportRow{
		FacilityID: 1, FacilityName: "Dock A", CreationDate: created,
		City: "Amsterdam", Address: "Dam 1", ZipCode: "1012 JS", CountryCode: "NL", PhoneNumber: "+31",
		Tags: []string{"cold", "secure"},
	}, rows[0])
	assert.Equal(t, []string{}, rows[1].Tags)
}

func TestExportService_Export_Error(t *testing.T) {
	svc := service.NewExportService(&mockFacilityRepo{
		search: func(_ context.Context, _ domain.SearchFilter) ([]domain.FacilityView, error) {
			return nil, domain.ErrStorage
		},
	})

	_, err := svc.Export(context.Background())

	assert.ErrorIs(t, err, domain.ErrStorage)
}
