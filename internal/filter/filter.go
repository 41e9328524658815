package filter

import (
	"github.com/fr4nk3nst1ner/jobmap/internal/models"
)

// allowSet is a membership test where a nil set admits everything
type allowSet map[string]struct{}

func newAllowSet(values []string) allowSet {
	if len(values) == 0 {
		return nil
	}
	set := make(allowSet, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}

func (s allowSet) allows(value string) bool {
	if s == nil {
		return true
	}
	_, ok := s[value]
	return ok
}

// Apply returns the listings matching every facet of the selection, in their
// original order. The input slice is never modified.
func Apply(listings []models.JobListing, sel models.FilterSelection) []models.JobListing {
	if sel.IsEmpty() {
		return listings
	}

	cities := newAllowSet(sel.Cities)
	types := newAllowSet(sel.Types)
	hours := newAllowSet(sel.WorkHours)

	result := make([]models.JobListing, 0, len(listings))
	for _, l := range listings {
		if cities.allows(l.City) && types.allows(l.Type) && hours.allows(l.WorkHours) {
			result = append(result, l)
		}
	}
	return result
}

// BuildFacets collects the distinct value of each facet in order of first appearance
func BuildFacets(listings []models.JobListing) models.Facets {
	return models.Facets{
		Cities:    unique(listings, func(l models.JobListing) string { return l.City }),
		Types:     unique(listings, func(l models.JobListing) string { return l.Type }),
		WorkHours: unique(listings, func(l models.JobListing) string { return l.WorkHours }),
	}
}

func unique(listings []models.JobListing, key func(models.JobListing) string) []string {
	seen := make(map[string]struct{})
	values := []string{}
	for _, l := range listings {
		v := key(l)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	return values
}

// Contains reports whether value is among the selected values
func Contains(selected []string, value string) bool {
	for _, s := range selected {
		if s == value {
			return true
		}
	}
	return false
}
