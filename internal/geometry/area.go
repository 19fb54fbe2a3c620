package geometry

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"
	"github.com/sirupsen/logrus"

	"oakvale/server/config"
	"oakvale/server/internal/models"
)

// AreaLocator resolves coordinates to the closest known neighborhood
type AreaLocator struct {
	names   []string
	centers []orb.Point
	logger  *logrus.Logger
}

func NewAreaLocator(neighborhoods []config.Neighborhood, logger *logrus.Logger) *AreaLocator {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	l := &AreaLocator{logger: logger}
	for _, n := range neighborhoods {
		if len(n.Center) != 2 {
			logger.WithField("area", n.Name).Warn("Neighborhood has no center, skipping")
			continue
		}
		l.names = append(l.names, n.Name)
		l.centers = append(l.centers, toPoint(models.Location{Lat: n.Center[0], Lng: n.Center[1]}))
	}
	return l
}

func toPoint(loc models.Location) orb.Point {
	return orb.Point{loc.Lng, loc.Lat}
}

// NearestArea returns the neighborhood whose center is closest to loc and the
// great-circle distance to it in meters. ok is false when no neighborhood is
// configured.
func (l *AreaLocator) NearestArea(loc models.Location) (name string, meters float64, ok bool) {
	p := toPoint(loc)
	best := math.Inf(1)
	for i, center := range l.centers {
		if d := geo.Distance(p, center); d < best {
			best = d
			name = l.names[i]
			ok = true
		}
	}
	if !ok {
		return "", 0, false
	}

	l.logger.WithFields(logrus.Fields{
		"latitude":  loc.Lat,
		"longitude": loc.Lng,
		"area":      name,
		"meters":    best,
	}).Debug("Resolved nearest neighborhood")
	return name, best, true
}

// CatalogBound is the bounding box of every located listing. ok is false when
// no listing has coordinates.
func CatalogBound(properties []models.Property) (orb.Bound, bool) {
	var bound orb.Bound
	found := false
	for i := range properties {
		if !properties[i].HasLocation() {
			continue
		}
		p := toPoint(properties[i].Location)
		if !found {
			bound = p.Bound()
			found = true
			continue
		}
		bound = bound.Extend(p)
	}
	return bound, found
}

// ListingsFeatureCollection renders located listings as GeoJSON points for
// the map widget, in catalog order.
func ListingsFeatureCollection(properties []models.Property) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for i := range properties {
		p := &properties[i]
		if !p.HasLocation() {
			continue
		}

		feature := geojson.NewFeature(toPoint(p.Location))
		feature.ID = p.ID
		feature.Properties = geojson.Properties{
			"kind":          "listing",
			"title":         p.Title,
			"address":       p.Address,
			"price":         p.Price,
			"area":          p.Area,
			"property_type": string(p.PropertyType),
			"bedrooms":      p.Bedrooms,
			"bathrooms":     p.Bathrooms,
			"status":        string(p.Status),
		}
		if len(p.Images) > 0 {
			feature.Properties["image"] = p.Images[0]
		}
		fc.Append(feature)
	}

	if bound, ok := CatalogBound(properties); ok {
		fc.BBox = geojson.NewBBox(bound)
	}
	return fc
}

// NeighborhoodFeatures renders the neighborhood centers as GeoJSON points
func NeighborhoodFeatures(neighborhoods []config.Neighborhood) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, n := range neighborhoods {
		if len(n.Center) != 2 {
			continue
		}
		feature := geojson.NewFeature(orb.Point{n.Center[1], n.Center[0]})
		feature.ID = n.Name
		feature.Properties = geojson.Properties{
			"kind":      "neighborhood",
			"name":      n.Name,
			"avg_price": n.AvgPrice,
			"zoom":      n.ZoomLevel,
		}
		fc.Append(feature)
	}
	return fc
}
