package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/facility-catalog/internal/domain"
)

// FacilityRepo defines the persistence operations for facility rows and the
// joined facility read model.
type FacilityRepo interface {
	// Insert creates a facility row referencing locationID and returns its id.
	// The creation date is assigned by the database.
	Insert(ctx context.Context, name string, locationID int64) (int64, error)

	// LocationID returns the id of the location owned by the facility.
	// Returns domain.ErrNotFound if the facility does not exist.
	LocationID(ctx context.Context, facilityID int64) (int64, error)

	// UpdateName renames a facility. Returns domain.ErrNotFound if it does not exist.
	UpdateName(ctx context.Context, facilityID int64, name string) error

	// Delete removes the facility row. Junction rows must already be gone.
	// Returns domain.ErrNotFound if it does not exist.
	Delete(ctx context.Context, facilityID int64) error

	// GetView returns the facility joined with its location and tag names.
	// Returns domain.ErrNotFound if the facility does not exist.
	GetView(ctx context.Context, facilityID int64) (domain.FacilityView, error)

	// Search returns one view per facility matching filter, ordered by id.
	// An empty filter returns every facility.
	Search(ctx context.Context, filter domain.SearchFilter) ([]domain.FacilityView, error)
}

// pgFacilityRepo is the Postgres implementation of FacilityRepo.
type pgFacilityRepo struct {
	db db
}

// NewFacilityRepo constructs a FacilityRepo backed by the provided db connection.
func NewFacilityRepo(db db) FacilityRepo {
	return &pgFacilityRepo{db: db}
}

func (r *pgFacilityRepo) Insert(ctx context.Context, name string, locationID int64) (int64, error) {
	const q = `
		INSERT INTO facilities (name, location_id)
		VALUES (@name, @location_id)
		RETURNING facility_id`

	var id int64
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name, "location_id": locationID}).Scan(&id)
	if err != nil {
		return 0, storageErr("repo.FacilityRepo.Insert", err)
	}
	return id, nil
}

func (r *pgFacilityRepo) LocationID(ctx context.Context, facilityID int64) (int64, error) {
	const q = `SELECT location_id FROM facilities WHERE facility_id = @facility_id`

	var id int64
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"facility_id": facilityID}).Scan(&id)
	if err != nil {
		return 0, storageErr("repo.FacilityRepo.LocationID", notFoundOnNoRows(err))
	}
	return id, nil
}

func (r *pgFacilityRepo) UpdateName(ctx context.Context, facilityID int64, name string) error {
	const q = `UPDATE facilities SET name = @name WHERE facility_id = @facility_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"facility_id": facilityID, "name": name})
	if err != nil {
		return storageErr("repo.FacilityRepo.UpdateName", err)
	}
	if tag.RowsAffected() == 0 {
		return storageErr("repo.FacilityRepo.UpdateName", domain.ErrNotFound)
	}
	return nil
}

func (r *pgFacilityRepo) Delete(ctx context.Context, facilityID int64) error {
	const q = `DELETE FROM facilities WHERE facility_id = @facility_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"facility_id": facilityID})
	if err != nil {
		return storageErr("repo.FacilityRepo.Delete", err)
	}
	if tag.RowsAffected() == 0 {
		return storageErr("repo.FacilityRepo.Delete", domain.ErrNotFound)
	}
	return nil
}

func (r *pgFacilityRepo) GetView(ctx context.Context, facilityID int64) (domain.FacilityView, error) {
	sql, args, err := viewByIDQuery(facilityID).ToSql()
	if err != nil {
		return domain.FacilityView{}, storageErr("repo.FacilityRepo.GetView: build", err)
	}

	view, err := scanFacilityView(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		return domain.FacilityView{}, storageErr("repo.FacilityRepo.GetView", notFoundOnNoRows(err))
	}
	return view, nil
}

func (r *pgFacilityRepo) Search(ctx context.Context, filter domain.SearchFilter) ([]domain.FacilityView, error) {
	sql, args, err := searchQuery(filter).ToSql()
	if err != nil {
		return nil, storageErr("repo.FacilityRepo.Search: build", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, storageErr("repo.FacilityRepo.Search", err)
	}
	defer rows.Close()

	views := []domain.FacilityView{}
	for rows.Next() {
		v, err := scanFacilityView(rows)
		if err != nil {
			return nil, storageErr("repo.FacilityRepo.Search: scan", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("repo.FacilityRepo.Search: rows", err)
	}
	return views, nil
}

// scanFacilityView maps one row of facilityViewQuery into a domain.FacilityView.
func scanFacilityView(s scanner) (domain.FacilityView, error) {
	var v domain.FacilityView
	err := s.Scan(
		&v.ID, &v.Name, &v.CreationDate,
		&v.Location.ID, &v.Location.City, &v.Location.Address,
		&v.Location.ZipCode, &v.Location.CountryCode, &v.Location.PhoneNumber,
		&v.TagNames,
	)
	if err != nil {
		return domain.FacilityView{}, err
	}
	return v, nil
}
