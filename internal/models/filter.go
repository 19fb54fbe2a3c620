package models

import (
	"slices"
	"strings"
)

// PriceRange bounds are inclusive. A nil bound does not restrict.
type PriceRange struct {
	Min *int64 `json:"min,omitempty"`
	Max *int64 `json:"max,omitempty"`
}

// FilterSpec holds the active search constraints. Empty sets and nil bounds
// leave their dimension open.
type FilterSpec struct {
	SearchTerm    string         `json:"search_term,omitempty"`
	PriceRange    PriceRange     `json:"price_range"`
	Areas         []string       `json:"areas,omitempty"`
	PropertyTypes []PropertyType `json:"property_types,omitempty"`
	Bedrooms      []int          `json:"bedrooms,omitempty"`
	Bathrooms     []int          `json:"bathrooms,omitempty"`
}

// Matches checks if a property satisfies every active constraint
func (f *FilterSpec) Matches(property *Property) bool {
	if f == nil {
		return true
	}

	// Search term against title or address
	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(property.Title), term) &&
			!strings.Contains(strings.ToLower(property.Address), term) {
			return false
		}
	}

	// Check price range
	if f.PriceRange.Min != nil && property.Price < *f.PriceRange.Min {
		return false
	}
	if f.PriceRange.Max != nil && property.Price > *f.PriceRange.Max {
		return false
	}

	if len(f.Areas) > 0 && !slices.Contains(f.Areas, property.Area) {
		return false
	}
	if len(f.PropertyTypes) > 0 && !slices.Contains(f.PropertyTypes, property.PropertyType) {
		return false
	}

	// Room counts match exactly, not as a minimum
	if len(f.Bedrooms) > 0 && !slices.Contains(f.Bedrooms, property.Bedrooms) {
		return false
	}
	if len(f.Bathrooms) > 0 && !slices.Contains(f.Bathrooms, property.Bathrooms) {
		return false
	}

	return true
}

// IsOpen reports whether the filter restricts nothing.
func (f *FilterSpec) IsOpen() bool {
	return f == nil || (f.SearchTerm == "" &&
		f.PriceRange.Min == nil && f.PriceRange.Max == nil &&
		len(f.Areas) == 0 && len(f.PropertyTypes) == 0 &&
		len(f.Bedrooms) == 0 && len(f.Bathrooms) == 0)
}
