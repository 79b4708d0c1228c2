package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/facility-catalog/internal/domain"
	"github.com/pkordes/facility-catalog/internal/handler"
)

// ---- mock TagServicer ------------------------------------------------------

type mockTagServicer struct {
	list func(ctx context.Context, prefix string) ([]domain.Tag, error)
}

func (m *mockTagServicer) List(ctx context.Context, prefix string) ([]domain.Tag, error) {
	return m.list(ctx, prefix)
}

// compile-time check: mockTagServicer must satisfy handler.TagServicer.
var _ handler.TagServicer = (*mockTagServicer)(nil)

func newTagHTTPHandler(svc handler.TagServicer) http.Handler {
	return handler.NewServer(nil, svc, nil, quietLogger).Routes()
}

// ---- GET /api/tags ---------------------------------------------------------

func TestListTags_200(t *testing.T) {
	var gotPrefix string
	svc := &mockTagServicer{
		list: func(_ context.Context, prefix string) ([]domain.Tag, error) {
			gotPrefix = prefix
			return []domain.Tag{
				{ID: 1, Name: "cold", FacilityCount: 2},
				{ID: 4, Name: "cool", FacilityCount: 1},
			}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tags?q=co", nil)
	rec := httptest.NewRecorder()

	newTagHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "co", gotPrefix)

	var resp handler.TagListResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, handler.TagResponse{ID: 1, Name: "cold", FacilityCount: 2}, resp.Data[0])
	assert.Equal(t, "cool", resp.Data[1].Name)
}

func TestListTags_200_NoPrefix(t *testing.T) {
	gotPrefix := "unset"
	svc := &mockTagServicer{
		list: func(_ context.Context, prefix string) ([]domain.Tag, error) {
			gotPrefix = prefix
			return []domain.Tag{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	rec := httptest.NewRecorder()

	newTagHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", gotPrefix)
	assert.JSONEq(t, `{"data":[]}`, rec.Body.String())
}

func TestListTags_500(t *testing.T) {
	svc := &mockTagServicer{
		list: func(_ context.Context, _ string) ([]domain.Tag, error) {
			return nil, fmt.Errorf("repo.TagRepo.List: %w: timeout", domain.ErrStorage)
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/tags", nil)
	rec := httptest.NewRecorder()

	newTagHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "storage_error", decodeError(t, rec).Code)
}
