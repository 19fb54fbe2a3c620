package api

import (
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"oakvale/server/config"
	"oakvale/server/internal/auth"
	"oakvale/server/internal/database"
	"oakvale/server/internal/finance"
	"oakvale/server/internal/geometry"
	"oakvale/server/internal/models"
	"oakvale/server/internal/queue"
)

type Handler struct {
	db         *database.Database
	auth       *auth.Service
	queue      *queue.BookingQueue
	estimator  *finance.Estimator
	locator    *geometry.AreaLocator
	bookingFee int64
	now        func() time.Time
	logger     *logrus.Logger
}

type Option func(*Handler)

// WithClock sets the clock used to reject viewing dates in the past.
func WithClock(now func() time.Time) Option {
	return func(h *Handler) { h.now = now }
}

func NewHandler(db *database.Database, authService *auth.Service, q *queue.BookingQueue, cfg *config.Config, logger *logrus.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}

	h := &Handler{
		db:         db,
		auth:       authService,
		queue:      q,
		locator:    geometry.NewAreaLocator(config.Neighborhoods, logger),
		bookingFee: cfg.Booking.Fee,
		now:        time.Now,
		logger:     logger,
	}
	for _, opt := range opts {
		opt(h)
	}
	h.estimator = finance.NewEstimator(finance.WithClock(h.now))
	return h
}

// fieldError is a request validation failure tied to one input field
type fieldError struct {
	Field  string
	Reason string
}

func (e *fieldError) Error() string {
	return e.Field + " " + e.Reason
}

// respondError maps domain errors to HTTP responses. Anything unrecognised
// is logged and reported as a 500 with msg.
func (h *Handler) respondError(c *gin.Context, err error, msg string) {
	var inputErr *finance.InputError
	var fieldErr *fieldError

	switch {
	case errors.As(err, &inputErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": inputErr.Field})
	case errors.As(err, &fieldErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": fieldErr.Field})
	case errors.Is(err, models.ErrInvalidProperty),
		errors.Is(err, auth.ErrInvalidSignUp):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, database.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": msg + ": not found"})
	case errors.Is(err, database.ErrEmailTaken),
		errors.Is(err, database.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.WithError(err).WithField("path", c.FullPath()).Error(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}

// publish queues a booking event. Notification trouble never fails the request.
func (h *Handler) publish(kind string, booking *models.Booking) {
	if h.queue == nil {
		return
	}
	if err := h.queue.Push(&models.BookingEvent{Kind: kind, Booking: booking}); err != nil {
		h.logger.WithError(err).WithFields(logrus.Fields{
			"booking_id": booking.ID,
			"kind":       kind,
		}).Warn("Failed to queue booking notification")
	}
}
