package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkordes/facility-catalog/internal/domain"
	"github.com/pkordes/facility-catalog/internal/repo"
)

// TagService implements read-side tag operations. Tags are created and
// deleted only as a side effect of facility writes.
type TagService struct {
	tags repo.TagRepo
}

// NewTagService constructs a TagService backed by the provided TagRepo.
func NewTagService(tags repo.TagRepo) *TagService {
	return &TagService{tags: tags}
}

// List returns all tags whose name starts with prefix (surrounding whitespace
// ignored), ordered by name. Always returns a non-nil slice.
func (s *TagService) List(ctx context.Context, prefix string) ([]domain.Tag, error) {
	tags, err := s.tags.List(ctx, strings.TrimSpace(prefix))
	if err != nil {
		return nil, fmt.Errorf("service.TagService.List: %w", err)
	}
	if tags == nil {
		return []domain.Tag{}, nil
	}
	return tags, nil
}
