package models

import (
	"errors"
	"fmt"
	"time"
)

var ErrInvalidProperty = errors.New("invalid property")

type PropertyType string

const (
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeCommercial PropertyType = "commercial"
	PropertyTypeLand       PropertyType = "land"
)

// PropertyTypes lists the listing types in display order
var PropertyTypes = []PropertyType{
	PropertyTypeHouse,
	PropertyTypeApartment,
	PropertyTypeCommercial,
	PropertyTypeLand,
}

func (t PropertyType) Valid() bool {
	switch t {
	case PropertyTypeHouse, PropertyTypeApartment, PropertyTypeCommercial, PropertyTypeLand:
		return true
	}
	return false
}

type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "available"
	StatusSold      PropertyStatus = "sold"
	StatusRented    PropertyStatus = "rented"
)

func (s PropertyStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusRented:
		return true
	}
	return false
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Property struct {
	ID           string         `gorm:"primaryKey" json:"id"`
	Title        string         `gorm:"not null" json:"title"`
	Address      string         `json:"address"`
	Location     Location       `gorm:"embedded;embeddedPrefix:location_" json:"location"`
	Price        int64          `gorm:"not null" json:"price"`
	Images       []string       `gorm:"serializer:json" json:"images"`
	VideoURL     string         `json:"video_url,omitempty"`
	Bedrooms     int            `json:"bedrooms"`
	Bathrooms    int            `json:"bathrooms"`
	PropertyType PropertyType   `gorm:"index" json:"property_type"`
	Amenities    []string       `gorm:"serializer:json" json:"amenities"`
	Description  string         `json:"description"`
	Area         string         `gorm:"index" json:"area"`
	SizeSqft     *float64       `json:"size_sqft,omitempty"`
	Status       PropertyStatus `gorm:"index" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Validate checks the record invariants an administrator must respect when
// creating or editing a listing.
func (p *Property) Validate() error {
	if p.Title == "" {
		return fmt.Errorf("%w: title is required", ErrInvalidProperty)
	}
	if p.Price <= 0 {
		return fmt.Errorf("%w: price must be positive", ErrInvalidProperty)
	}
	if p.Bedrooms < 0 || p.Bathrooms < 0 {
		return fmt.Errorf("%w: room counts cannot be negative", ErrInvalidProperty)
	}
	if !p.PropertyType.Valid() {
		return fmt.Errorf("%w: unknown property type %q", ErrInvalidProperty, p.PropertyType)
	}
	if !p.Status.Valid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidProperty, p.Status)
	}
	if p.SizeSqft != nil && *p.SizeSqft <= 0 {
		return fmt.Errorf("%w: size must be positive", ErrInvalidProperty)
	}
	if p.Location.Lat < -90 || p.Location.Lat > 90 || p.Location.Lng < -180 || p.Location.Lng > 180 {
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidProperty)
	}
	return nil
}

// HasLocation reports whether the listing carries a usable coordinate.
func (p *Property) HasLocation() bool {
	return p.Location.Lat != 0 || p.Location.Lng != 0
}

type DashboardStats struct {
	TotalProperties   int64 `json:"total_properties"`
	AvailableCount    int64 `json:"available_count"`
	SoldCount         int64 `json:"sold_count"`
	RentedCount       int64 `json:"rented_count"`
	TotalBookings     int64 `json:"total_bookings"`
	PendingBookings   int64 `json:"pending_bookings"`
	ConfirmedBookings int64 `json:"confirmed_bookings"`
}
