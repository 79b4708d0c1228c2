package domain

import "strings"

// Tag is a label shared by any number of facilities.
// Names are case-sensitive and unique across the tags table.
type Tag struct {
	ID            int64
	Name          string
	FacilityCount int64
}

// NormalizeTagNames splits every name on commas, trims the parts, drops
// blanks and removes duplicates, keeping the first occurrence. A comma can
// never be part of a tag name because views carry the tag set as one
// comma-joined string, so ["cold,dry"] and "cold,dry" both mean two tags.
// Comparison is case-sensitive, so "Cold" and "cold" are two different tags.
// Always returns a non-nil slice.
func NormalizeTagNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, raw := range names {
		for _, n := range strings.Split(raw, ",") {
			n = strings.TrimSpace(n)
			if n == "" {
				continue
			}
			if _, ok := seen[n]; ok {
				continue
			}
			seen[n] = struct{}{}
			out = append(out, n)
		}
	}
	return out
}
