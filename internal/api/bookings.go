package api

import (
	"net/http"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"oakvale/server/internal/database"
	"oakvale/server/internal/models"
)

type bookingRequest struct {
	ViewingDate  string `json:"viewing_date"`
	ViewingTime  string `json:"viewing_time"`
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
	Message      string `json:"message"`
}

type statusRequest struct {
	Status models.BookingStatus `json:"status" binding:"required"`
}

// validate trims the request and checks it against the booking form rules.
// today uses models.ViewingDateLayout.
func (r *bookingRequest) validate(today string) error {
	r.ViewingDate = strings.TrimSpace(r.ViewingDate)
	r.ViewingTime = strings.TrimSpace(r.ViewingTime)
	r.ContactName = strings.TrimSpace(r.ContactName)
	r.ContactPhone = strings.TrimSpace(r.ContactPhone)
	r.ContactEmail = strings.TrimSpace(r.ContactEmail)
	r.Message = strings.TrimSpace(r.Message)

	if _, err := time.Parse(models.ViewingDateLayout, r.ViewingDate); err != nil {
		return &fieldError{Field: "viewing_date", Reason: "must be a date in YYYY-MM-DD form"}
	}
	if r.ViewingDate < today {
		return &fieldError{Field: "viewing_date", Reason: "cannot be in the past"}
	}
	if !slices.Contains(models.TimeSlots, r.ViewingTime) {
		return &fieldError{Field: "viewing_time", Reason: "is not an offered time slot"}
	}
	if r.ContactName == "" {
		return &fieldError{Field: "contact_name", Reason: "is required"}
	}
	if r.ContactPhone == "" {
		return &fieldError{Field: "contact_phone", Reason: "is required"}
	}
	if r.ContactEmail != "" {
		if _, err := mail.ParseAddress(r.ContactEmail); err != nil {
			return &fieldError{Field: "contact_email", Reason: "is not a valid email address"}
		}
	}
	return nil
}

// CreateBooking books a tour of an available listing for the signed-in user
func (h *Handler) CreateBooking(c *gin.Context) {
	ctx := c.Request.Context()

	var req bookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if err := req.validate(h.now().Format(models.ViewingDateLayout)); err != nil {
		h.respondError(c, err, "Invalid booking")
		return
	}

	property, err := h.db.GetProperty(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get property")
		return
	}
	if property.Status != models.StatusAvailable {
		c.JSON(http.StatusConflict, gin.H{"error": "Property is no longer available for viewing"})
		return
	}

	user, err := h.db.GetUserByID(ctx, c.GetString(ContextKeyUserID))
	if err != nil {
		h.respondError(c, err, "Failed to load account")
		return
	}
	if req.ContactEmail == "" {
		req.ContactEmail = user.Email
	}

	booking := &models.Booking{
		PropertyID:   property.ID,
		UserID:       user.ID,
		ViewingDate:  req.ViewingDate,
		ViewingTime:  req.ViewingTime,
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		Message:      req.Message,
		FeeAmount:    h.bookingFee,
	}
	if err := h.db.CreateBooking(ctx, booking); err != nil {
		h.respondError(c, err, "Failed to create booking")
		return
	}
	booking.Property = property

	h.logger.WithFields(logrus.Fields{
		"booking_id":  booking.ID,
		"property_id": property.ID,
		"user_id":     user.ID,
		"date":        booking.ViewingDate,
	}).Info("Created tour booking")

	h.publish(models.BookingEventCreated, booking)
	c.JSON(http.StatusCreated, booking)
}

// ListMyBookings returns the signed-in user's bookings
func (h *Handler) ListMyBookings(c *gin.Context) {
	bookings, err := h.db.ListBookings(c.Request.Context(), c.GetString(ContextKeyUserID))
	if err != nil {
		h.respondError(c, err, "Failed to get bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// CancelBooking lets a client cancel one of their own bookings
func (h *Handler) CancelBooking(c *gin.Context) {
	ctx := c.Request.Context()

	booking, err := h.db.GetBooking(ctx, c.Param("id"))
	if err != nil {
		h.respondError(c, err, "Failed to get booking")
		return
	}
	if booking.UserID != c.GetString(ContextKeyUserID) && !isAdmin(c) {
		h.respondError(c, database.ErrNotFound, "Failed to get booking")
		return
	}

	h.changeBookingStatus(c, booking.ID, models.BookingCancelled)
}

// ListAllBookings returns every booking for the admin dashboard
func (h *Handler) ListAllBookings(c *gin.Context) {
	bookings, err := h.db.ListBookings(c.Request.Context(), "")
	if err != nil {
		h.respondError(c, err, "Failed to get bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *Handler) UpdateBookingStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}
	h.changeBookingStatus(c, c.Param("id"), req.Status)
}

func (h *Handler) changeBookingStatus(c *gin.Context, id string, next models.BookingStatus) {
	booking, err := h.db.UpdateBookingStatus(c.Request.Context(), id, next)
	if err != nil {
		h.respondError(c, err, "Failed to update booking")
		return
	}

	h.logger.WithFields(logrus.Fields{
		"booking_id": booking.ID,
		"status":     booking.Status,
		"by":         c.GetString(ContextKeyUserID),
	}).Info("Booking status changed")

	h.publish(models.BookingEventStatusChanged, booking)
	c.JSON(http.StatusOK, booking)
}
