package domain

import "time"

// ExportRow is one line of the full-data export: a flat, denormalized view of
// a facility and its location. Tags are ordered by name.
type ExportRow struct {
	FacilityID   int64
	FacilityName string
	CreationDate time.Time

	City        string
	Address     string
	ZipCode     string
	CountryCode string
	PhoneNumber string

	Tags []string
}
