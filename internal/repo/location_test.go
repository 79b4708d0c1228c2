package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/facility-catalog/internal/domain"
)

func TestLocationRepo_Insert(t *testing.T) {
	r := newTestRepos(t)

	id, err := r.Locations.Insert(context.Background(), locationFixture())

	require.NoError(t, err)
	assert.NotZero(t, id)
}

func TestLocationRepo_Update_OnlySuppliedFields(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	facilityID := mustCreateFacility(t, r, "Dock A")
	locID, err := r.Facilities.LocationID(ctx, facilityID)
	require.NoError(t, err)

	city, phone := "Rotterdam", "+31 10 555 0199"
	err = r.Locations.Update(ctx, locID, domain.LocationPatch{City: &city, PhoneNumber: &phone})
	require.NoError(t, err)

	got, err := r.Facilities.GetView(ctx, facilityID)
	require.NoError(t, err)
	want := locationFixture()
	want.ID = locID
	want.City = city
	want.PhoneNumber = phone
	assert.Equal(t, want, got.Location)
}

func TestLocationRepo_Update_EmptyPatchIsNoop(t *testing.T) {
	r := newTestRepos(t)

	err := r.Locations.Update(context.Background(), -1, domain.LocationPatch{})

	require.NoError(t, err)
}

func TestLocationRepo_Update_NotFound(t *testing.T) {
	r := newTestRepos(t)
	city := "Rotterdam"

	err := r.Locations.Update(context.Background(), -1, domain.LocationPatch{City: &city})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocationRepo_Delete(t *testing.T) {
	r := newTestRepos(t)
	ctx := context.Background()

	id, err := r.Locations.Insert(ctx, locationFixture())
	require.NoError(t, err)

	require.NoError(t, r.Locations.Delete(ctx, id))

	err = r.Locations.Delete(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
