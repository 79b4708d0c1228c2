package service_test

import (
	"context"
	"fmt"

	"github.com/pkordes/facility-catalog/internal/domain"
	"github.com/pkordes/facility-catalog/internal/repo"
)

// callLog records repo calls in order so tests can assert on the sequence of
// writes inside a transaction.
type callLog struct {
	calls []string
}

func (l *callLog) add(format string, args ...any) {
	l.calls = append(l.calls, fmt.Sprintf(format, args...))
}

// ---- mockStore ---------------------------------------------------------------

// mockStore is a hand-written test double for repo.Store. WithTx runs fn
// against the same mock repos and counts how often it was entered.
type mockStore struct {
	repos   repo.Repos
	txCalls int
}

func (m *mockStore) Repos() repo.Repos { return m.repos }

func (m *mockStore) WithTx(_ context.Context, fn func(repo.Repos) error) error {
	m.txCalls++
	return fn(m.repos)
}

var _ repo.Store = (*mockStore)(nil)

// newMockStore wires the three mock repos into a store. Any of them may be nil
// when the test does not reach it.
func newMockStore(f *mockFacilityRepo, l *mockLocationRepo, t *mockTagRepo) *mockStore {
	r := repo.Repos{}
	if f != nil {
		r.Facilities = f
	}
	if l != nil {
		r.Locations = l
	}
	if t != nil {
		r.Tags = t
	}
	return &mockStore{repos: r}
}

// ---- mockFacilityRepo --------------------------------------------------------

// mockFacilityRepo is a hand-written test double for repo.FacilityRepo.
// Unset method fields return zero values.
type mockFacilityRepo struct {
	log        *callLog
	insert     func(ctx context.Context, name string, locationID int64) (int64, error)
	locationID func(ctx context.Context, facilityID int64) (int64, error)
	updateName func(ctx context.Context, facilityID int64, name string) error
	delete     func(ctx context.Context, facilityID int64) error
	getView    func(ctx context.Context, facilityID int64) (domain.FacilityView, error)
	search     func(ctx context.Context, filter domain.SearchFilter) ([]domain.FacilityView, error)
}

func (m *mockFacilityRepo) record(format string, args ...any) {
	if m.log != nil {
		m.log.add(format, args...)
	}
}

func (m *mockFacilityRepo) Insert(ctx context.Context, name string, locationID int64) (int64, error) {
	m.record("facility.insert %s loc=%d", name, locationID)
	if m.insert == nil {
		return 0, nil
	}
	return m.insert(ctx, name, locationID)
}
func (m *mockFacilityRepo) LocationID(ctx context.Context, facilityID int64) (int64, error) {
	m.record("facility.location_id %d", facilityID)
	if m.locationID == nil {
		return 0, nil
	}
	return m.locationID(ctx, facilityID)
}
func (m *mockFacilityRepo) UpdateName(ctx context.Context, facilityID int64, name string) error {
	m.record("facility.update_name %d %s", facilityID, name)
	if m.updateName == nil {
		return nil
	}
	return m.updateName(ctx, facilityID, name)
}
func (m *mockFacilityRepo) Delete(ctx context.Context, facilityID int64) error {
	m.record("facility.delete %d", facilityID)
	if m.delete == nil {
		return nil
	}
	return m.delete(ctx, facilityID)
}
func (m *mockFacilityRepo) GetView(ctx context.Context, facilityID int64) (domain.FacilityView, error) {
	m.record("facility.get_view %d", facilityID)
	if m.getView == nil {
		return domain.FacilityView{ID: facilityID}, nil
	}
	return m.getView(ctx, facilityID)
}
func (m *mockFacilityRepo) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.FacilityView, error) {
	if m.search == nil {
		return nil, nil
	}
	return m.search(ctx, filter)
}

var _ repo.FacilityRepo = (*mockFacilityRepo)(nil)

// ---- mockLocationRepo --------------------------------------------------------

// mockLocationRepo is a hand-written test double for repo.LocationRepo.
type mockLocationRepo struct {
	log    *callLog
	insert func(ctx context.Context, loc domain.Location) (int64, error)
	update func(ctx context.Context, locationID int64, patch domain.LocationPatch) error
	delete func(ctx context.Context, locationID int64) error
}

func (m *mockLocationRepo) record(format string, args ...any) {
	if m.log != nil {
		m.log.add(format, args...)
	}
}

func (m *mockLocationRepo) Insert(ctx context.Context, loc domain.Location) (int64, error) {
	m.record("location.insert %s", loc.City)
	if m.insert == nil {
		return 0, nil
	}
	return m.insert(ctx, loc)
}
func (m *mockLocationRepo) Update(ctx context.Context, locationID int64, patch domain.LocationPatch) error {
	m.record("location.update %d", locationID)
	if m.update == nil {
		return nil
	}
	return m.update(ctx, locationID, patch)
}
func (m *mockLocationRepo) Delete(ctx context.Context, locationID int64) error {
	m.record("location.delete %d", locationID)
	if m.delete == nil {
		return nil
	}
	return m.delete(ctx, locationID)
}

var _ repo.LocationRepo = (*mockLocationRepo)(nil)

// ---- mockTagRepo -------------------------------------------------------------

// mockTagRepo is a hand-written test double for repo.TagRepo.
type mockTagRepo struct {
	log                  *callLog
	resolveOrCreate      func(ctx context.Context, name string) (int64, error)
	deleteIfUnreferenced func(ctx context.Context, tagID int64) (bool, error)
	attach               func(ctx context.Context, facilityID, tagID int64) error
	detachAll            func(ctx context.Context, facilityID int64) ([]int64, error)
	list                 func(ctx context.Context, prefix string) ([]domain.Tag, error)
}

func (m *mockTagRepo) record(format string, args ...any) {
	if m.log != nil {
		m.log.add(format, args...)
	}
}

func (m *mockTagRepo) ResolveOrCreate(ctx context.Context, name string) (int64, error) {
	m.record("tag.resolve %s", name)
	if m.resolveOrCreate == nil {
		return 0, nil
	}
	return m.resolveOrCreate(ctx, name)
}
func (m *mockTagRepo) DeleteIfUnreferenced(ctx context.Context, tagID int64) (bool, error) {
	m.record("tag.gc %d", tagID)
	if m.deleteIfUnreferenced == nil {
		return false, nil
	}
	return m.deleteIfUnreferenced(ctx, tagID)
}
func (m *mockTagRepo) Attach(ctx context.Context, facilityID, tagID int64) error {
	m.record("tag.attach %d %d", facilityID, tagID)
	if m.attach == nil {
		return nil
	}
	return m.attach(ctx, facilityID, tagID)
}
func (m *mockTagRepo) DetachAll(ctx context.Context, facilityID int64) ([]int64, error) {
	m.record("tag.detach_all %d", facilityID)
	if m.detachAll == nil {
		return []int64{}, nil
	}
	return m.detachAll(ctx, facilityID)
}
func (m *mockTagRepo) List(ctx context.Context, prefix string) ([]domain.Tag, error) {
	if m.list == nil {
		return nil, nil
	}
	return m.list(ctx, prefix)
}

var _ repo.TagRepo = (*mockTagRepo)(nil)

// tagIDs returns a resolveOrCreate func that maps names to fixed ids.
func tagIDs(ids map[string]int64) func(context.Context, string) (int64, error) {
	return func(_ context.Context, name string) (int64, error) {
		id, ok := ids[name]
		if !ok {
			return 0, fmt.Errorf("unexpected tag %q", name)
		}
		return id, nil
	}
}
