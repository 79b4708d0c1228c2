package repo

import (
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/pkordes/facility-catalog/internal/domain"
)

// psql renders squirrel builders with Postgres $n placeholders.
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// tagAggregate collapses the joined tag rows of one facility into a single
// name-ordered, comma-separated string.
const tagAggregate = "COALESCE(string_agg(t.tag_name, ',' ORDER BY t.tag_name), '')"

// tagExistsClause keeps facilities owning at least one tag that matches.
const tagExistsClause = `EXISTS (
	SELECT 1 FROM facility_tags ftx
	JOIN tags tx ON tx.tag_id = ftx.tag_id
	WHERE ftx.facility_id = f.facility_id AND tx.tag_name ILIKE ?)`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns v into an ILIKE pattern matching any value that
// contains v literally.
func containsPattern(v string) string {
	return "%" + likeEscaper.Replace(v) + "%"
}

// facilityViewQuery selects the facility aggregate columns in the order
// scanFacilityView expects. Callers add filters and then call groupFacilities.
func facilityViewQuery() sq.SelectBuilder {
	return psql.
		Select(
			"f.facility_id", "f.name", "f.creation_date",
			"l.location_id", "l.city", "l.address", "l.zip_code", "l.country_code", "l.phone_number",
			tagAggregate+" AS tag_names",
		).
		From("facilities f").
		Join("locations l ON l.location_id = f.location_id").
		LeftJoin("facility_tags ft ON ft.facility_id = f.facility_id").
		LeftJoin("tags t ON t.tag_id = ft.tag_id")
}

// groupFacilities collapses the tag join back to one row per facility.
func groupFacilities(q sq.SelectBuilder) sq.SelectBuilder {
	return q.GroupBy("f.facility_id", "l.location_id").OrderBy("f.facility_id")
}

// searchQuery appends one ILIKE condition per supplied filter. Squirrel numbers
// placeholders and collects args in clause order, WHERE before HAVING.
func searchQuery(filter domain.SearchFilter) sq.SelectBuilder {
	q := facilityViewQuery()
	if filter.Name != nil {
		q = q.Where(sq.ILike{"f.name": containsPattern(*filter.Name)})
	}
	if filter.City != nil {
		q = q.Where(sq.ILike{"l.city": containsPattern(*filter.City)})
	}
	if filter.Tag != nil {
		pattern := containsPattern(*filter.Tag)
		if filter.TagMode == domain.TagMatchJoined {
			q = q.Having(tagAggregate+" ILIKE ?", pattern)
		} else {
			q = q.Where(sq.Expr(tagExistsClause, pattern))
		}
	}
	return groupFacilities(q)
}

// viewByIDQuery selects a single facility aggregate.
func viewByIDQuery(id int64) sq.SelectBuilder {
	return groupFacilities(facilityViewQuery().Where(sq.Eq{"f.facility_id": id}))
}
