// Package service contains the business logic for the facility catalog.
// Services validate inputs, enforce the aggregate rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/facility-catalog/internal/domain"
	"github.com/pkordes/facility-catalog/internal/repo"
)

// FacilityService keeps a facility, its location and its tag links consistent.
// Every write runs inside one transaction obtained from the store, so readers
// never see a partial aggregate.
//
// Tag garbage collection: whenever an operation detaches tags from a facility
// (delete, or replacing the tag list on update), each detached tag that no
// facility references any more is deleted in the same transaction.
//
// Deleting a facility also deletes the location it owns.
type FacilityService struct {
	store repo.Store
	log   *slog.Logger
}

// NewFacilityService constructs a FacilityService backed by store.
// A nil logger falls back to slog.Default().
func NewFacilityService(store repo.Store, log *slog.Logger) *FacilityService {
	if log == nil {
		log = slog.Default()
	}
	return &FacilityService{store: store, log: log}
}

// Create inserts the location, the facility and its tag links in one
// transaction and returns the new facility id.
// Returns domain.ErrValidation if the name is blank.
func (s *FacilityService) Create(ctx context.Context, in domain.NewFacility) (int64, error) {
	if strings.TrimSpace(in.Name) == "" {
		return 0, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	tags := domain.NormalizeTagNames(in.Tags)

	var id int64
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		locID, err := r.Locations.Insert(ctx, in.Location)
		if err != nil {
			return err
		}
		id, err = r.Facilities.Insert(ctx, in.Name, locID)
		if err != nil {
			return err
		}
		_, err = attachTags(ctx, r, id, tags)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("service.FacilityService.Create: %w", err)
	}
	return id, nil
}

// Get returns the facility view for id.
// Returns domain.ErrNotFound if it does not exist.
func (s *FacilityService) Get(ctx context.Context, id int64) (domain.FacilityView, error) {
	view, err := s.store.Repos().Facilities.GetView(ctx, id)
	if err != nil {
		return domain.FacilityView{}, fmt.Errorf("service.FacilityService.Get: %w", err)
	}
	return view, nil
}

// List returns every facility, one view each.
// Always returns a non-nil slice so callers can safely range over it.
func (s *FacilityService) List(ctx context.Context) ([]domain.FacilityView, error) {
	return s.Search(ctx, domain.SearchFilter{})
}

// Search returns the facilities matching every supplied filter.
// Always returns a non-nil slice so callers can safely range over it.
func (s *FacilityService) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.FacilityView, error) {
	views, err := s.store.Repos().Facilities.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service.FacilityService.Search: %w", err)
	}
	if views == nil {
		return []domain.FacilityView{}, nil
	}
	return views, nil
}

// Update applies patch in one transaction and returns the resulting view.
// A non-nil patch.Tags replaces the whole tag set.
// Returns domain.ErrValidation for a blank name, domain.ErrNotFound if the
// facility does not exist.
func (s *FacilityService) Update(ctx context.Context, id int64, patch domain.FacilityPatch) (domain.FacilityView, error) {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return domain.FacilityView{}, fmt.Errorf("%w: name must not be empty", domain.ErrValidation)
	}

	var view domain.FacilityView
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		locID, err := r.Facilities.LocationID(ctx, id)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			if err := r.Facilities.UpdateName(ctx, id, *patch.Name); err != nil {
				return err
			}
		}
		if patch.Location != nil {
			if err := r.Locations.Update(ctx, locID, *patch.Location); err != nil {
				return err
			}
		}
		if patch.Tags != nil {
			if err := s.replaceTags(ctx, r, id, patch.Tags); err != nil {
				return err
			}
		}
		view, err = r.Facilities.GetView(ctx, id)
		return err
	})
	if err != nil {
		return domain.FacilityView{}, fmt.Errorf("service.FacilityService.Update: %w", err)
	}
	return view, nil
}

// Delete removes the facility, its tag links and its location in one
// transaction, then deletes the tags nobody uses any more.
// Returns domain.ErrNotFound if the facility does not exist.
func (s *FacilityService) Delete(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(r repo.Repos) error {
		locID, err := r.Facilities.LocationID(ctx, id)
		if err != nil {
			return err
		}
		detached, err := r.Tags.DetachAll(ctx, id)
		if err != nil {
			return err
		}
		if err := r.Facilities.Delete(ctx, id); err != nil {
			return err
		}
		if err := r.Locations.Delete(ctx, locID); err != nil {
			return err
		}
		return s.collectOrphans(ctx, r, detached)
	})
	if err != nil {
		return fmt.Errorf("service.FacilityService.Delete: %w", err)
	}
	return nil
}

// replaceTags swaps the facility's tag set for names and collects the tags
// that were dropped.
func (s *FacilityService) replaceTags(ctx context.Context, r repo.Repos, facilityID int64, names []string) error {
	detached, err := r.Tags.DetachAll(ctx, facilityID)
	if err != nil {
		return err
	}
	attached, err := attachTags(ctx, r, facilityID, domain.NormalizeTagNames(names))
	if err != nil {
		return err
	}

	kept := make(map[int64]struct{}, len(attached))
	for _, tagID := range attached {
		kept[tagID] = struct{}{}
	}
	dropped := make([]int64, 0, len(detached))
	for _, tagID := range detached {
		if _, ok := kept[tagID]; !ok {
			dropped = append(dropped, tagID)
		}
	}
	return s.collectOrphans(ctx, r, dropped)
}

// collectOrphans deletes every tag in tagIDs that no facility references.
func (s *FacilityService) collectOrphans(ctx context.Context, r repo.Repos, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		deleted, err := r.Tags.DeleteIfUnreferenced(ctx, tagID)
		if err != nil {
			return err
		}
		if deleted {
			s.log.DebugContext(ctx, "deleted orphaned tag", "tag_id", tagID)
		}
	}
	return nil
}

// attachTags resolves each name to a tag id, creating missing tags, and links
// it to the facility. names must already be normalized. Returns the linked ids
// in input order.
func attachTags(ctx context.Context, r repo.Repos, facilityID int64, names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		tagID, err := r.Tags.ResolveOrCreate(ctx, name)
		if err != nil {
			return nil, err
		}
		if err := r.Tags.Attach(ctx, facilityID, tagID); err != nil {
			return nil, err
		}
		ids = append(ids, tagID)
	}
	return ids, nil
}
