package repo

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/pkordes/facility-catalog/internal/domain"
)

// LocationRepo defines the persistence operations for locations.
// A location is owned by exactly one facility; the service layer keeps the
// two rows in step.
type LocationRepo interface {
	// Insert creates a location row and returns its id.
	Insert(ctx context.Context, loc domain.Location) (int64, error)

	// Update sets only the fields present in patch. An empty patch is a no-op.
	// Returns domain.ErrNotFound if no location has that id.
	Update(ctx context.Context, locationID int64, patch domain.LocationPatch) error

	// Delete removes a location. Its facility must already be gone.
	// Returns domain.ErrNotFound if no location has that id.
	Delete(ctx context.Context, locationID int64) error
}

// pgLocationRepo is the Postgres implementation of LocationRepo.
type pgLocationRepo struct {
	db db
}

// NewLocationRepo constructs a LocationRepo backed by the provided db connection.
func NewLocationRepo(db db) LocationRepo {
	return &pgLocationRepo{db: db}
}

func (r *pgLocationRepo) Insert(ctx context.Context, loc domain.Location) (int64, error) {
	const q = `
		INSERT INTO locations (city, address, zip_code, country_code, phone_number)
		VALUES (@city, @address, @zip_code, @country_code, @phone_number)
		RETURNING location_id`

	args := pgx.NamedArgs{
		"city":         loc.City,
		"address":      loc.Address,
		"zip_code":     loc.ZipCode,
		"country_code": loc.CountryCode,
		"phone_number": loc.PhoneNumber,
	}

	var id int64
	if err := r.db.QueryRow(ctx, q, args).Scan(&id); err != nil {
		return 0, storageErr("repo.LocationRepo.Insert", err)
	}
	return id, nil
}

func (r *pgLocationRepo) Update(ctx context.Context, locationID int64, patch domain.LocationPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	sql, args, err := locationUpdateQuery(locationID, patch).ToSql()
	if err != nil {
		return storageErr("repo.LocationRepo.Update: build", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return storageErr("repo.LocationRepo.Update", err)
	}
	if tag.RowsAffected() == 0 {
		return storageErr("repo.LocationRepo.Update", domain.ErrNotFound)
	}
	return nil
}

func (r *pgLocationRepo) Delete(ctx context.Context, locationID int64) error {
	const q = `DELETE FROM locations WHERE location_id = @location_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"location_id": locationID})
	if err != nil {
		return storageErr("repo.LocationRepo.Delete", err)
	}
	if tag.RowsAffected() == 0 {
		return storageErr("repo.LocationRepo.Delete", domain.ErrNotFound)
	}
	return nil
}

// locationUpdateQuery emits one SET clause per non-nil patch field.
func locationUpdateQuery(locationID int64, patch domain.LocationPatch) sq.UpdateBuilder {
	q := psql.Update("locations").Where(sq.Eq{"location_id": locationID})
	for _, f := range []struct {
		column string
		value  *string
	}{
		{"city", patch.City},
		{"address", patch.Address},
		{"zip_code", patch.ZipCode},
		{"country_code", patch.CountryCode},
		{"phone_number", patch.PhoneNumber},
	} {
		if f.value != nil {
			q = q.Set(f.column, *f.value)
		}
	}
	return q
}
