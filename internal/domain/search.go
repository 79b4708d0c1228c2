package domain

import "fmt"

// TagMatchMode selects how the tag filter of a search is applied.
type TagMatchMode string

const (
	// TagMatchExists keeps facilities with at least one tag whose name
	// contains the filter value. This is the default.
	TagMatchExists TagMatchMode = "exists"

	// TagMatchJoined matches the filter value against the comma-joined tag
	// string, so a value may span two adjacent tags (e.g. "d,s").
	TagMatchJoined TagMatchMode = "joined"
)

// ParseTagMatchMode maps a query value to a TagMatchMode.
// The empty string selects TagMatchExists.
func ParseTagMatchMode(s string) (TagMatchMode, error) {
	switch TagMatchMode(s) {
	case "", TagMatchExists:
		return TagMatchExists, nil
	case TagMatchJoined:
		return TagMatchJoined, nil
	}
	return "", fmt.Errorf("%w: unknown tag_mode %q", ErrValidation, s)
}

// SearchFilter holds the optional filters of a facility search.
// Each non-nil field is a case-insensitive substring match; all are ANDed.
type SearchFilter struct {
	Name    *string
	City    *string
	Tag     *string
	TagMode TagMatchMode
}

// IsEmpty reports whether the filter imposes no condition.
func (f SearchFilter) IsEmpty() bool {
	return f.Name == nil && f.City == nil && f.Tag == nil
}
