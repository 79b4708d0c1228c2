package repo

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/pkordes/facility-catalog/internal/domain"
)

// TagRepo defines the persistence operations for Tags and the facility_tags
// join table.
type TagRepo interface {
	// ResolveOrCreate returns the id of the tag with exactly this name,
	// inserting it first if it does not exist yet.
	ResolveOrCreate(ctx context.Context, name string) (int64, error)

	// DeleteIfUnreferenced removes the tag when no facility carries it any more
	// and reports whether a row was deleted.
	DeleteIfUnreferenced(ctx context.Context, tagID int64) (bool, error)

	// Attach links a tag to a facility. Idempotent — no error if already linked.
	Attach(ctx context.Context, facilityID, tagID int64) error

	// DetachAll unlinks every tag from a facility and returns the ids it unlinked.
	DetachAll(ctx context.Context, facilityID int64) ([]int64, error)

	// List returns all tags whose name starts with prefix, ordered by name,
	// with the number of facilities carrying each. An empty prefix matches all.
	List(ctx context.Context, prefix string) ([]domain.Tag, error)
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

// ResolveOrCreate relies on the UNIQUE constraint on tag_name, so two
// concurrent requests creating the same new tag end up with one row.
// The DO UPDATE SET trick forces the RETURNING clause to fire even when
// the conflict handler skips the insert — without it, RETURNING returns
// nothing on DO NOTHING conflicts.
func (r *pgTagRepo) ResolveOrCreate(ctx context.Context, name string) (int64, error) {
	const q = `
		INSERT INTO tags (tag_name)
		VALUES (@tag_name)
		ON CONFLICT (tag_name) DO UPDATE SET tag_name = EXCLUDED.tag_name
		RETURNING tag_id`

	var id int64
	if err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"tag_name": name}).Scan(&id); err != nil {
		return 0, storageErr("repo.TagRepo.ResolveOrCreate", err)
	}
	return id, nil
}

// DeleteIfUnreferenced checks and deletes in one statement.
func (r *pgTagRepo) DeleteIfUnreferenced(ctx context.Context, tagID int64) (bool, error) {
	const q = `
		DELETE FROM tags t
		WHERE t.tag_id = @tag_id
		  AND NOT EXISTS (SELECT 1 FROM facility_tags ft WHERE ft.tag_id = t.tag_id)`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"tag_id": tagID})
	if err != nil {
		return false, storageErr("repo.TagRepo.DeleteIfUnreferenced", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Attach links a tag to a facility. Idempotent via ON CONFLICT DO NOTHING.
func (r *pgTagRepo) Attach(ctx context.Context, facilityID, tagID int64) error {
	const q = `
		INSERT INTO facility_tags (facility_id, tag_id)
		VALUES (@facility_id, @tag_id)
		ON CONFLICT (facility_id, tag_id) DO NOTHING`

	_, err := r.db.Exec(ctx, q, pgx.NamedArgs{"facility_id": facilityID, "tag_id": tagID})
	if err != nil {
		return storageErr("repo.TagRepo.Attach", err)
	}
	return nil
}

func (r *pgTagRepo) DetachAll(ctx context.Context, facilityID int64) ([]int64, error) {
	const q = `
		DELETE FROM facility_tags
		WHERE facility_id = @facility_id
		RETURNING tag_id`

	ids, err := r.queryIDs(ctx, q, facilityID)
	if err != nil {
		return nil, storageErr("repo.TagRepo.DetachAll", err)
	}
	return ids, nil
}

func (r *pgTagRepo) List(ctx context.Context, prefix string) ([]domain.Tag, error) {
	const q = `
		SELECT t.tag_id, t.tag_name, count(ft.facility_id)
		FROM tags t
		LEFT JOIN facility_tags ft ON ft.tag_id = t.tag_id
		WHERE t.tag_name LIKE @prefix || '%'
		GROUP BY t.tag_id
		ORDER BY t.tag_name`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"prefix": likeEscaper.Replace(prefix)})
	if err != nil {
		return nil, storageErr("repo.TagRepo.List", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		var t domain.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.FacilityCount); err != nil {
			return nil, storageErr("repo.TagRepo.List: scan", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("repo.TagRepo.List: rows", err)
	}
	return tags, nil
}

// queryIDs runs a single-column id query keyed by facility id.
// Always returns a non-nil slice on success.
func (r *pgTagRepo) queryIDs(ctx context.Context, q string, facilityID int64) ([]int64, error) {
	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"facility_id": facilityID})
	if err != nil {
		return nil, err
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
