// Package search selects listings from a catalog snapshot.
package search

import (
	"net/url"
	"strconv"
	"strings"

	"oakvale/server/config"
	"oakvale/server/internal/models"
)

// Filter returns the listings of catalog that satisfy spec, in catalog order.
// The result is always a fresh slice; catalog is left untouched.
func Filter(catalog []models.Property, spec models.FilterSpec) []models.Property {
	if spec.IsOpen() {
		return append(make([]models.Property, 0, len(catalog)), catalog...)
	}

	result := make([]models.Property, 0, len(catalog))
	for i := range catalog {
		if spec.Matches(&catalog[i]) {
			result = append(result, catalog[i])
		}
	}
	return result
}

// PriceBracket is one of the preset price ranges offered by the filter panel
type PriceBracket struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Min   int64  `json:"min"`
	Max   int64  `json:"max"`
}

var PriceBrackets = []PriceBracket{
	{Label: "All Prices", Value: "0-50000000", Min: 0, Max: 50000000},
	{Label: "Under 2M", Value: "0-2000000", Min: 0, Max: 2000000},
	{Label: "2M - 5M", Value: "2000000-5000000", Min: 2000000, Max: 5000000},
	{Label: "5M - 10M", Value: "5000000-10000000", Min: 5000000, Max: 10000000},
	{Label: "Above 10M", Value: "10000000-50000000", Min: 10000000, Max: 50000000},
}

// ParseQuery builds a FilterSpec from URL query parameters. Parameters that
// are unknown or cannot be parsed are skipped.
//
//	q, search            free text matched against title and address
//	area                 neighborhood, repeatable or comma separated
//	type                 property type, repeatable or comma separated
//	bedrooms, bathrooms  exact room counts, repeatable or comma separated
//	min_price, max_price inclusive bounds
//	price                "MIN-MAX" bracket, as sent by the filter panel
func ParseQuery(values url.Values) models.FilterSpec {
	var spec models.FilterSpec

	for _, key := range []string{"q", "search"} {
		if term := strings.TrimSpace(values.Get(key)); term != "" {
			spec.SearchTerm = term
			break
		}
	}

	for _, area := range splitValues(values["area"]) {
		if name, ok := config.CanonicalAreaName(area); ok {
			area = name
		}
		spec.Areas = appendUnique(spec.Areas, area)
	}

	for _, raw := range splitValues(values["type"]) {
		t := models.PropertyType(strings.ToLower(raw))
		if t.Valid() {
			spec.PropertyTypes = appendUnique(spec.PropertyTypes, t)
		}
	}

	spec.Bedrooms = parseCounts(values["bedrooms"])
	spec.Bathrooms = parseCounts(values["bathrooms"])

	if lo, hi, ok := parseBracket(values.Get("price")); ok {
		spec.PriceRange.Min = &lo
		spec.PriceRange.Max = &hi
	}
	if v, ok := parseAmount(values.Get("min_price")); ok {
		spec.PriceRange.Min = &v
	}
	if v, ok := parseAmount(values.Get("max_price")); ok {
		spec.PriceRange.Max = &v
	}

	return spec
}

func splitValues(raw []string) []string {
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseCounts(raw []string) []int {
	var counts []int
	for _, v := range splitValues(raw) {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			continue
		}
		counts = appendUnique(counts, n)
	}
	return counts
}

func parseAmount(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	return v, true
}

func parseBracket(raw string) (int64, int64, bool) {
	minRaw, maxRaw, found := strings.Cut(raw, "-")
	if !found {
		return 0, 0, false
	}
	lo, ok := parseAmount(minRaw)
	if !ok {
		return 0, 0, false
	}
	hi, ok := parseAmount(maxRaw)
	if !ok {
		return 0, 0, false
	}
	return lo, hi, true
}

func appendUnique[T comparable](list []T, v T) []T {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}
