package domain

// Location is the address record owned by exactly one facility.
// None of the string fields carry format validation.
type Location struct {
	ID          int64
	City        string
	Address     string
	ZipCode     string
	CountryCode string
	PhoneNumber string
}

// LocationPatch lists the location fields to change. Nil fields are skipped.
type LocationPatch struct {
	City        *string
	Address     *string
	ZipCode     *string
	CountryCode *string
	PhoneNumber *string
}

// IsEmpty reports whether the patch changes nothing.
func (p LocationPatch) IsEmpty() bool {
	return p.City == nil && p.Address == nil && p.ZipCode == nil &&
		p.CountryCode == nil && p.PhoneNumber == nil
}
