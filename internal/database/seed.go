package database

import (
	"context"
	"fmt"
	"time"

	"oakvale/server/internal/models"
)

const imageQuery = "?auto=compress&cs=tinysrgb&w=800&h=600&fit=crop"

func pexels(ids ...string) []string {
	urls := make([]string, 0, len(ids))
	for _, id := range ids {
		urls = append(urls, fmt.Sprintf("https://images.pexels.com/photos/%s/pexels-photo-%s.jpeg%s", id, id, imageQuery))
	}
	return urls
}

func sqft(v float64) *float64 { return &v }

// DemoCatalog returns the listings a fresh install starts with, newest first.
func DemoCatalog(now time.Time) []models.Property {
	return []models.Property{
		{
			ID:           "1",
			Title:        "Executive Villa in Kinoo Heights",
			Address:      "Kinoo Estate, Waiyaki Way",
			Location:     models.Location{Lat: -1.2280, Lng: 36.7538},
			Price:        12_500_000,
			Images:       pexels("1396122", "1438832", "2121121"),
			Bedrooms:     5,
			Bathrooms:    4,
			PropertyType: models.PropertyTypeHouse,
			Amenities:    []string{"Garden", "Parking", "Security", "Swimming Pool", "Gym"},
			Description:  "Beautiful executive villa with modern amenities and stunning views, set in a secure gated community.",
			Area:         "Kinoo",
			SizeSqft:     sqft(3200),
			Status:       models.StatusAvailable,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           "2",
			Title:        "Modern Apartment in Regen",
			Address:      "Regen Estate, Waiyaki Way",
			Location:     models.Location{Lat: -1.2295, Lng: 36.7620},
			Price:        8_200_000,
			Images:       pexels("1438832", "2121121", "1396122"),
			Bedrooms:     3,
			Bathrooms:    2,
			PropertyType: models.PropertyTypeApartment,
			Amenities:    []string{"Balcony", "Parking", "Security", "Elevator", "Backup Generator"},
			Description:  "Modern apartment with contemporary design. Suits young professionals and small families.",
			Area:         "Regen",
			SizeSqft:     sqft(1800),
			Status:       models.StatusAvailable,
			CreatedAt:    now.Add(-time.Hour),
			UpdatedAt:    now.Add(-time.Hour),
		},
		{
			ID:           "3",
			Title:        "Luxury Home in Limuru Gardens",
			Address:      "Limuru Gardens, Waiyaki Way",
			Location:     models.Location{Lat: -1.2342, Lng: 36.7842},
			Price:        15_000_000,
			Images:       pexels("2121121", "1396122", "1438832"),
			Bedrooms:     6,
			Bathrooms:    5,
			PropertyType: models.PropertyTypeHouse,
			Amenities:    []string{"Garden", "Study Room", "Garage", "Security", "Servant Quarter", "Fireplace"},
			Description:  "Luxury home with panoramic views, a study room, fireplace and landscaped gardens.",
			Area:         "Limuru",
			SizeSqft:     sqft(4000),
			Status:       models.StatusAvailable,
			CreatedAt:    now.Add(-2 * time.Hour),
			UpdatedAt:    now.Add(-2 * time.Hour),
		},
		{
			ID:           "4",
			Title:        "Serene Estate in Ngecha",
			Address:      "Ngecha Road",
			Location:     models.Location{Lat: -1.2415, Lng: 36.8065},
			Price:        9_800_000,
			Images:       pexels("1396122", "2121121"),
			Bedrooms:     4,
			Bathrooms:    3,
			PropertyType: models.PropertyTypeHouse,
			Amenities:    []string{"Garden", "Parking", "Borehole"},
			Description:  "Quiet family estate surrounded by farmland and mature trees.",
			Area:         "Ngecha",
			SizeSqft:     sqft(2600),
			Status:       models.StatusAvailable,
			CreatedAt:    now.Add(-3 * time.Hour),
			UpdatedAt:    now.Add(-3 * time.Hour),
		},
	}
}

// SeedCatalog loads the demo catalog into an empty properties table.
// It reports how many listings were inserted.
func (d *Database) SeedCatalog(ctx context.Context, now time.Time) (int, error) {
	n, err := d.CountProperties(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count properties: %w", err)
	}
	if n > 0 {
		d.logger.WithField("existing", n).Debug("Catalog already populated, skipping seed")
		return 0, nil
	}

	catalog := DemoCatalog(now)
	if err := d.UpsertProperties(ctx, catalog); err != nil {
		return 0, err
	}

	d.logger.WithField("count", len(catalog)).Info("Seeded demo catalog")
	return len(catalog), nil
}
