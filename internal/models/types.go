package models

import "strings"

// JobListing represents one row of the job-listing dataset
type JobListing struct {
	Index     int     `json:"index"`
	City      string  `json:"city"`
	Company   string  `json:"company"`
	Title     string  `json:"title"`
	URL       string  `json:"url"`
	Type      string  `json:"type"`
	WorkHours string  `json:"work_hours"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// FilterSelection holds the allowed values per facet. An empty slice means
// every value of that facet is allowed.
type FilterSelection struct {
	Cities    []string `json:"cities" form:"city"`
	Types     []string `json:"types" form:"type"`
	WorkHours []string `json:"work_hours" form:"hours"`
}

// IsEmpty reports whether no facet has an explicit selection
func (s FilterSelection) IsEmpty() bool {
	return len(s.Cities) == 0 && len(s.Types) == 0 && len(s.WorkHours) == 0
}

// Facets lists the distinct values of each filterable column
type Facets struct {
	Cities    []string `json:"cities"`
	Types     []string `json:"types"`
	WorkHours []string `json:"work_hours"`
}

// PageWindow describes the active page of a paginated result
type PageWindow struct {
	Current    int `json:"current"`
	TotalPages int `json:"total_pages"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
}

// ControlKind identifies what a pagination control does when clicked
type ControlKind string

const (
	ControlPage     ControlKind = "page"
	ControlEllipsis ControlKind = "ellipsis"
	ControlFirst    ControlKind = "first"
	ControlLast     ControlKind = "last"
)

// PageControl is one button (or inert ellipsis) of the pagination bar
type PageControl struct {
	Kind   ControlKind `json:"kind"`
	Page   int         `json:"page,omitempty"`
	Label  string      `json:"label"`
	Active bool        `json:"active,omitempty"`
}

// Clickable reports whether the control navigates anywhere
func (c PageControl) Clickable() bool {
	return c.Kind != ControlEllipsis
}

// Variant selects one of the two dashboard layouts
type Variant string

const (
	// VariantNumbered shows numbered page buttons and a plain URL column
	VariantNumbered Variant = "numbered"
	// VariantArrowed shows first/last arrows and links the job title
	VariantArrowed Variant = "arrowed"
)

// ParseVariant normalizes a variant name, defaulting to numbered
func ParseVariant(s string) Variant {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case VariantArrowed:
		return VariantArrowed
	default:
		return VariantNumbered
	}
}
