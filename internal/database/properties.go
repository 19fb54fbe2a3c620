package database

import (
	"context"
	"fmt"

	"oakvale/server/internal/models"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ListProperties returns listings newest first. An empty status returns
// every listing regardless of status.
func (d *Database) ListProperties(ctx context.Context, status models.PropertyStatus) ([]models.Property, error) {
	query := d.db.WithContext(ctx).Order("created_at DESC").Order("id")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	properties := make([]models.Property, 0)
	if err := query.Find(&properties).Error; err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}
	return properties, nil
}

func (d *Database) GetProperty(ctx context.Context, id string) (*models.Property, error) {
	var p models.Property
	if err := d.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &p, nil
}

func (d *Database) CreateProperty(ctx context.Context, p *models.Property) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = models.StatusAvailable
	}
	if err := p.Validate(); err != nil {
		return err
	}
	if err := d.db.WithContext(ctx).Create(p).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}

	d.logger.WithFields(logrus.Fields{
		"property_id": p.ID,
		"area":        p.Area,
		"price":       p.Price,
	}).Info("Created property")
	return nil
}

// UpdateProperty replaces every editable field of an existing listing.
func (d *Database) UpdateProperty(ctx context.Context, p *models.Property) error {
	if err := p.Validate(); err != nil {
		return err
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Property
		if err := tx.First(&existing, "id = ?", p.ID).Error; err != nil {
			return notFound(err)
		}
		p.CreatedAt = existing.CreatedAt
		if err := tx.Save(p).Error; err != nil {
			return fmt.Errorf("failed to update property: %w", err)
		}
		return nil
	})
}

// DeleteProperty removes a listing. Its bookings go with it.
func (d *Database) DeleteProperty(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&models.Property{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	d.logger.WithField("property_id", id).Info("Deleted property")
	return nil
}

// UpsertProperties inserts the listings, overwriting any with the same ID.
func (d *Database) UpsertProperties(ctx context.Context, properties []models.Property) error {
	if len(properties) == 0 {
		return nil
	}
	for i := range properties {
		if err := properties[i].Validate(); err != nil {
			return fmt.Errorf("property %s: %w", properties[i].ID, err)
		}
	}

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&properties).Error
	})
	if err != nil {
		return fmt.Errorf("failed to upsert properties: %w", err)
	}
	return nil
}

func (d *Database) CountProperties(ctx context.Context) (int64, error) {
	var n int64
	err := d.db.WithContext(ctx).Model(&models.Property{}).Count(&n).Error
	return n, err
}
