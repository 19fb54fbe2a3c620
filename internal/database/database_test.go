package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oakvale/server/internal/models"
)

func newTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewTestDB()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedUser(t *testing.T, db *Database, email string) *models.User {
	t.Helper()
	u := &models.User{Email: email, FullName: "Test Client", Phone: "+254700000000"}
	require.NoError(t, db.CreateUser(context.Background(), u))
	return u
}

func TestSeedCatalog(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	n, err := db.SeedCatalog(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, len(DemoCatalog(now)), n)

	// Second run leaves the catalog alone
	n, err = db.SeedCatalog(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, n)

	properties, err := db.ListProperties(ctx, models.StatusAvailable)
	require.NoError(t, err)
	require.Len(t, properties, 4)
	assert.Equal(t, "1", properties[0].ID, "newest listing first")
	assert.Equal(t, "4", properties[3].ID)
	assert.Equal(t, []string{"Garden", "Parking", "Security", "Swimming Pool", "Gym"}, properties[0].Amenities)
	require.NotNil(t, properties[0].SizeSqft)
	assert.Equal(t, 3200.0, *properties[0].SizeSqft)
}

func TestListPropertiesByStatus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	_, err := db.SeedCatalog(ctx, time.Now())
	require.NoError(t, err)

	p, err := db.GetProperty(ctx, "2")
	require.NoError(t, err)
	p.Status = models.StatusSold
	require.NoError(t, db.UpdateProperty(ctx, p))

	available, err := db.ListProperties(ctx, models.StatusAvailable)
	require.NoError(t, err)
	assert.Len(t, available, 3)
	for _, a := range available {
		assert.NotEqual(t, "2", a.ID)
	}

	all, err := db.ListProperties(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestPropertyCRUD(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	p := &models.Property{
		Title:        "Garden Flat",
		Price:        5_000_000,
		Bedrooms:     2,
		Bathrooms:    1,
		PropertyType: models.PropertyTypeApartment,
		Area:         "Regen",
	}
	require.NoError(t, db.CreateProperty(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, models.StatusAvailable, p.Status)

	got, err := db.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Garden Flat", got.Title)
	created := got.CreatedAt

	got.Price = 5_500_000
	got.CreatedAt = time.Time{}
	require.NoError(t, db.UpdateProperty(ctx, got))

	got, err = db.GetProperty(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(5_500_000), got.Price)
	assert.True(t, created.Equal(got.CreatedAt), "created_at survives updates")

	require.NoError(t, db.DeleteProperty(ctx, p.ID))
	_, err = db.GetProperty(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, db.DeleteProperty(ctx, p.ID), ErrNotFound)
}

func TestPropertyValidationRejected(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	err := db.CreateProperty(ctx, &models.Property{Title: "No price", PropertyType: models.PropertyTypeLand})
	assert.ErrorIs(t, err, models.ErrInvalidProperty)

	err = db.UpdateProperty(ctx, &models.Property{
		ID: "missing", Title: "Ghost", Price: 1,
		PropertyType: models.PropertyTypeLand, Status: models.StatusAvailable,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	u := seedUser(t, db, "Jane@Example.com")
	assert.Equal(t, "jane@example.com", u.Email)
	assert.Equal(t, models.RoleClient, u.Role)

	err := db.CreateUser(ctx, &models.User{Email: "jane@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)

	got, err := db.GetUserByEmail(ctx, " JANE@example.com ")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = db.GetUserByID(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	_, err := db.SeedCatalog(ctx, time.Now())
	require.NoError(t, err)
	u := seedUser(t, db, "client@example.com")

	b := &models.Booking{
		PropertyID:  "1",
		UserID:      u.ID,
		ViewingDate: "2024-06-01",
		ViewingTime: "10:00 AM",
		ContactName: "Client",
		FeeAmount:   1000,
	}
	require.NoError(t, db.CreateBooking(ctx, b))
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, models.PaymentPending, b.PaymentStatus)

	mine, err := db.ListBookings(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Property)
	assert.Equal(t, "Executive Villa in Kinoo Heights", mine[0].Property.Title)
	require.NotNil(t, mine[0].User)
	assert.Equal(t, u.Email, mine[0].User.Email)

	others, err := db.ListBookings(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, others)

	updated, err := db.UpdateBookingStatus(ctx, b.ID, models.BookingPaid)
	require.NoError(t, err)
	assert.Equal(t, models.BookingPaid, updated.Status)
	assert.Equal(t, models.PaymentCompleted, updated.PaymentStatus)

	updated, err = db.UpdateBookingStatus(ctx, b.ID, models.BookingConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, updated.Status)

	_, err = db.UpdateBookingStatus(ctx, b.ID, models.BookingPending)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = db.UpdateBookingStatus(ctx, "missing", models.BookingPaid)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingRequiresExistingProperty(t *testing.T) {
	db := newTestDB(t)
	u := seedUser(t, db, "client@example.com")

	err := db.CreateBooking(context.Background(), &models.Booking{
		PropertyID: "does-not-exist", UserID: u.ID, ViewingDate: "2024-06-01",
	})
	assert.Error(t, err)
}

func TestDeletePropertyCascadesBookings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	_, err := db.SeedCatalog(ctx, time.Now())
	require.NoError(t, err)
	u := seedUser(t, db, "client@example.com")

	b := &models.Booking{PropertyID: "3", UserID: u.ID, ViewingDate: "2024-06-01"}
	require.NoError(t, db.CreateBooking(ctx, b))
	require.NoError(t, db.DeleteProperty(ctx, "3"))

	_, err = db.GetBooking(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpireBookings(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	_, err := db.SeedCatalog(ctx, time.Now())
	require.NoError(t, err)
	u := seedUser(t, db, "client@example.com")

	book := func(date string, status models.BookingStatus) string {
		b := &models.Booking{PropertyID: "1", UserID: u.ID, ViewingDate: date, Status: status}
		require.NoError(t, db.CreateBooking(ctx, b))
		return b.ID
	}
	pastConfirmed := book("2024-05-01", models.BookingConfirmed)
	pastPending := book("2024-05-01", models.BookingPending)
	pastPaid := book("2024-05-02", models.BookingPaid)
	today := book("2024-05-10", models.BookingPending)
	pastCancelled := book("2024-04-01", models.BookingCancelled)

	completed, cancelled, err := db.ExpireBookings(ctx, "2024-05-10")
	require.NoError(t, err)
	assert.Equal(t, int64(1), completed)
	assert.Equal(t, int64(2), cancelled)

	expect := map[string]models.BookingStatus{
		pastConfirmed: models.BookingCompleted,
		pastPending:   models.BookingCancelled,
		pastPaid:      models.BookingCancelled,
		today:         models.BookingPending,
		pastCancelled: models.BookingCancelled,
	}
	for id, status := range expect {
		b, err := db.GetBooking(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, status, b.Status, id)
	}
}

func TestGetDashboardStats(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	_, err := db.SeedCatalog(ctx, time.Now())
	require.NoError(t, err)
	u := seedUser(t, db, "client@example.com")

	p, err := db.GetProperty(ctx, "4")
	require.NoError(t, err)
	p.Status = models.StatusRented
	require.NoError(t, db.UpdateProperty(ctx, p))

	require.NoError(t, db.CreateBooking(ctx, &models.Booking{PropertyID: "1", UserID: u.ID, ViewingDate: "2024-06-01"}))
	require.NoError(t, db.CreateBooking(ctx, &models.Booking{
		PropertyID: "2", UserID: u.ID, ViewingDate: "2024-06-02", Status: models.BookingConfirmed,
	}))

	stats, err := db.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.DashboardStats{
		TotalProperties:   4,
		AvailableCount:    3,
		RentedCount:       1,
		TotalBookings:     2,
		PendingBookings:   1,
		ConfirmedBookings: 1,
	}, *stats)
}
