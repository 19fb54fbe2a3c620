package config

import "strings"

// DefaultBaseRate is the valuation rate per square foot used for areas
// outside the neighborhood table.
const DefaultBaseRate = 4000.0

// MapCenter is the default [lat, lng] the map widget opens on
var MapCenter = []float64{-1.2308, 36.7616}

const MapZoomLevel = 12

// AreaAmenity is a guide entry: either a count of facilities or a rating out of 5
type AreaAmenity struct {
	Name        string  `json:"name"`
	Count       int     `json:"count,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	Description string  `json:"description,omitempty"`
}

type PriceBand struct {
	Min int64 `json:"min"`
	Max int64 `json:"max"`
}

// Neighborhood represents one of the areas served along Waiyaki Way
type Neighborhood struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Center      []float64     `json:"center"`
	ZoomLevel   int           `json:"zoom_level"`
	BaseRate    float64       `json:"base_rate"`
	AvgPrice    int64         `json:"avg_price"`
	PriceRange  PriceBand     `json:"price_range"`
	Amenities   []AreaAmenity `json:"amenities"`
	Highlights  []string      `json:"highlights"`
}

// Neighborhoods is the fixed set of recognized areas
var Neighborhoods = []Neighborhood{
	{
		Name:        "Kinoo",
		Description: "Vibrant community with excellent connectivity and modern amenities. Perfect for families seeking convenience and luxury.",
		Center:      []float64{-1.2280, 36.7538},
		ZoomLevel:   14,
		BaseRate:    4200,
		AvgPrice:    8500000,
		PriceRange:  PriceBand{Min: 5000000, Max: 15000000},
		Amenities: []AreaAmenity{
			{Name: "Top Schools", Count: 8, Description: "Including international schools"},
			{Name: "Shopping Centers", Count: 5, Description: "Modern malls and markets"},
			{Name: "Transport Links", Count: 12, Description: "Matatu routes and highways"},
			{Name: "Security Level", Rating: 4.8, Description: "Gated communities available"},
		},
		Highlights: []string{"Nairobi CBD - 25 mins", "Westlands - 15 mins", "JKIA - 45 mins"},
	},
	{
		Name:        "Regen",
		Description: "Peaceful residential area with lush greenery and family-friendly environment. Known for its serene atmosphere.",
		Center:      []float64{-1.2295, 36.7620},
		ZoomLevel:   14,
		BaseRate:    3800,
		AvgPrice:    6200000,
		PriceRange:  PriceBand{Min: 4000000, Max: 10000000},
		Amenities: []AreaAmenity{
			{Name: "Green Spaces", Count: 6, Description: "Parks and nature trails"},
			{Name: "Schools", Count: 5, Description: "Quality education facilities"},
			{Name: "Internet Coverage", Rating: 4.9, Description: "Fiber optic available"},
			{Name: "Safety Rating", Rating: 4.7, Description: "Community policing"},
		},
		Highlights: []string{"Nature Trails", "Community Center", "Farmers Market"},
	},
	{
		Name:        "Limuru",
		Description: "Premium location with panoramic views and executive properties. The epitome of luxury living in Nairobi.",
		Center:      []float64{-1.2342, 36.7842},
		ZoomLevel:   14,
		BaseRate:    5500,
		AvgPrice:    12000000,
		PriceRange:  PriceBand{Min: 8000000, Max: 25000000},
		Amenities: []AreaAmenity{
			{Name: "Luxury Amenities", Count: 10, Description: "Clubhouses and spas"},
			{Name: "Private Roads", Count: 8, Description: "Well-maintained access"},
			{Name: "Golf Courses", Count: 2, Description: "18-hole championship courses"},
			{Name: "Gated Communities", Count: 6, Description: "Premium security"},
		},
		Highlights: []string{"Golf Club Access", "Mountain Views", "Cool Climate"},
	},
	{
		Name:        "Ngecha",
		Description: "Serene environment with spacious plots and countryside feel. Perfect for those seeking tranquility and space.",
		Center:      []float64{-1.2415, 36.8065},
		ZoomLevel:   14,
		BaseRate:    4800,
		AvgPrice:    9800000,
		PriceRange:  PriceBand{Min: 6000000, Max: 18000000},
		Amenities: []AreaAmenity{
			{Name: "Large Plots", Count: 15, Description: "Spacious compounds available"},
			{Name: "Easy Access", Rating: 4.5, Description: "Good road connectivity"},
			{Name: "Privacy Level", Rating: 4.9, Description: "Secluded living"},
			{Name: "Connectivity", Rating: 4.3, Description: "Growing infrastructure"},
		},
		Highlights: []string{"Spacious Compounds", "Quiet Environment", "Investment Potential"},
	},
}

// GetAreaNames returns the recognized neighborhood names
func GetAreaNames() []string {
	names := make([]string, len(Neighborhoods))
	for i, n := range Neighborhoods {
		names[i] = n.Name
	}
	return names
}

// GetNeighborhoodByName looks a neighborhood up ignoring case
func GetNeighborhoodByName(name string) *Neighborhood {
	for i := range Neighborhoods {
		if strings.EqualFold(Neighborhoods[i].Name, name) {
			return &Neighborhoods[i]
		}
	}
	return nil
}

// CanonicalAreaName maps any casing of a known area to its table spelling.
func CanonicalAreaName(name string) (string, bool) {
	if n := GetNeighborhoodByName(name); n != nil {
		return n.Name, true
	}
	return "", false
}

// BaseRateFor returns the valuation base rate of an area and whether the
// area was recognized. Unknown areas get DefaultBaseRate.
func BaseRateFor(area string) (float64, bool) {
	if n := GetNeighborhoodByName(area); n != nil {
		return n.BaseRate, true
	}
	return DefaultBaseRate, false
}
