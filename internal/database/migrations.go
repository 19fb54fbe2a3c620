package database

import (
	"fmt"

	"oakvale/server/internal/models"
)

func (d *Database) RunMigrations() error {
	if err := d.db.AutoMigrate(&models.Property{}, &models.User{}, &models.Booking{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Listing pages sort by recency
	if err := d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_created_at
		ON properties(created_at DESC);
	`).Error; err != nil {
		return fmt.Errorf("failed to create created_at index: %w", err)
	}

	if err := d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_location
		ON properties(location_lat, location_lng);
	`).Error; err != nil {
		return fmt.Errorf("failed to create location index: %w", err)
	}

	return nil
}
