// Package domain contains the core data types for the facility catalog.
// This package has no dependencies on other internal packages and is imported
// by every layer (repo, service, handler).
package domain

import (
	"strings"
	"time"
)

// NewFacility is the input for creating a facility together with its location
// and tags. Tags are raw names; the service normalizes them before persisting.
type NewFacility struct {
	Name     string
	Location Location
	Tags     []string
}

// FacilityView is the read model of the facility aggregate: the facility row
// joined with its location and the names of its tags.
//
// TagNames is the comma-joined list of tag names ordered by name, or "" when
// the facility has no tags.
type FacilityView struct {
	ID           int64
	Name         string
	CreationDate time.Time
	Location     Location
	TagNames     string
}

// Tags splits TagNames into a slice. Always returns a non-nil slice.
func (v FacilityView) Tags() []string {
	if v.TagNames == "" {
		return []string{}
	}
	return strings.Split(v.TagNames, ",")
}

// FacilityPatch carries the fields of an update. Nil fields are left unchanged.
//
// Tags follows slice semantics: nil leaves the tag set untouched, a non-nil
// slice (even an empty one) replaces the whole set.
type FacilityPatch struct {
	Name     *string
	Location *LocationPatch
	Tags     []string
}
