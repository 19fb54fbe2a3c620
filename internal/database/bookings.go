package database

import (
	"context"
	"fmt"

	"oakvale/server/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (d *Database) CreateBooking(ctx context.Context, b *models.Booking) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = models.BookingPending
	}
	if b.PaymentStatus == "" {
		b.PaymentStatus = models.PaymentPending
	}

	if err := d.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (d *Database) GetBooking(ctx context.Context, id string) (*models.Booking, error) {
	var b models.Booking
	err := d.db.WithContext(ctx).Preload("Property").First(&b, "id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &b, nil
}

// ListBookings returns bookings newest first with their listing and client.
// An empty userID lists every booking.
func (d *Database) ListBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	query := d.db.WithContext(ctx).
		Preload("Property").
		Preload("User").
		Order("created_at DESC").
		Order("id")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}

	bookings := make([]models.Booking, 0)
	if err := query.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// UpdateBookingStatus moves a booking to next if the lifecycle allows it.
func (d *Database) UpdateBookingStatus(ctx context.Context, id string, next models.BookingStatus) (*models.Booking, error) {
	var b models.Booking
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Property").First(&b, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if !b.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, b.Status, next)
		}

		updates := map[string]interface{}{"status": next}
		if next == models.BookingPaid {
			updates["payment_status"] = models.PaymentCompleted
			b.PaymentStatus = models.PaymentCompleted
		}
		if err := tx.Model(&models.Booking{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update booking: %w", err)
		}
		b.Status = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// ExpireBookings settles bookings whose viewing date is before today.
// Confirmed viewings become completed and unconfirmed ones are cancelled.
// today uses models.ViewingDateLayout.
func (d *Database) ExpireBookings(ctx context.Context, today string) (completed, cancelled int64, err error) {
	err = d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Booking{}).
			Where("status = ? AND viewing_date < ?", models.BookingConfirmed, today).
			Update("status", models.BookingCompleted)
		if res.Error != nil {
			return res.Error
		}
		completed = res.RowsAffected

		res = tx.Model(&models.Booking{}).
			Where("status IN ? AND viewing_date < ?",
				[]models.BookingStatus{models.BookingPending, models.BookingPaid}, today).
			Update("status", models.BookingCancelled)
		if res.Error != nil {
			return res.Error
		}
		cancelled = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("failed to expire bookings: %w", err)
	}
	return completed, cancelled, nil
}

func (d *Database) GetDashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats
	db := d.db.WithContext(ctx)

	counts := []struct {
		dst   *int64
		model interface{}
		where string
		arg   interface{}
	}{
		{&stats.TotalProperties, &models.Property{}, "", nil},
		{&stats.AvailableCount, &models.Property{}, "status = ?", models.StatusAvailable},
		{&stats.SoldCount, &models.Property{}, "status = ?", models.StatusSold},
		{&stats.RentedCount, &models.Property{}, "status = ?", models.StatusRented},
		{&stats.TotalBookings, &models.Booking{}, "", nil},
		{&stats.PendingBookings, &models.Booking{}, "status = ?", models.BookingPending},
		{&stats.ConfirmedBookings, &models.Booking{}, "status = ?", models.BookingConfirmed},
	}
	for _, c := range counts {
		q := db.Model(c.model)
		if c.where != "" {
			q = q.Where(c.where, c.arg)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("failed to compute stats: %w", err)
		}
	}
	return &stats, nil
}
