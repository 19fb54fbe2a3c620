package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"oakvale/server/config"
	"oakvale/server/internal/models"
	"oakvale/server/internal/queue"
)

// Notifier delivers a booking event to one outside channel
type Notifier interface {
	NotifyBooking(ctx context.Context, event *models.BookingEvent) error
}

// NotificationProcessor drains the booking queue into the notifiers,
// retrying each failed delivery
type NotificationProcessor struct {
	queue      *queue.BookingQueue
	notifiers  []Notifier
	maxRetries int
	retryDelay time.Duration
	logger     *logrus.Logger
	ctx        context.Context
	cancel     context.CancelFunc
}

// NewNotificationProcessor creates a processor fed by q
func NewNotificationProcessor(q *queue.BookingQueue, cfg *config.Config, logger *logrus.Logger, notifiers ...Notifier) *NotificationProcessor {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &NotificationProcessor{
		queue:      q,
		notifiers:  notifiers,
		maxRetries: cfg.Booking.NotifyRetries,
		retryDelay: cfg.Booking.NotifyRetryDelay,
		logger:     logger,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start subscribes the processor to the queue
func (p *NotificationProcessor) Start() {
	p.queue.Subscribe(p.processEvent)
}

// Stop abandons pending retries
func (p *NotificationProcessor) Stop() {
	p.cancel()
}

// processEvent hands the event to every notifier and joins their failures
func (p *NotificationProcessor) processEvent(event *models.BookingEvent) error {
	var errs []error
	for _, n := range p.notifiers {
		if err := p.deliver(n, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *NotificationProcessor) deliver(n Notifier, event *models.BookingEvent) error {
	fields := logrus.Fields{
		"booking_id": event.Booking.ID,
		"kind":       event.Kind,
	}

	var err error
	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			p.logger.WithFields(fields).Infof("Retrying booking notification, attempt %d of %d", attempt, p.maxRetries)
			select {
			case <-p.ctx.Done():
				return fmt.Errorf("notification abandoned: %w", p.ctx.Err())
			case <-time.After(p.retryDelay):
			}
		}

		err = n.NotifyBooking(p.ctx, event)
		if err == nil {
			p.logger.WithFields(fields).Info("Delivered booking notification")
			return nil
		}

		p.logger.WithError(err).WithFields(fields).Error("Booking notification failed")
	}

	return fmt.Errorf("failed to deliver notification after %d attempts: %w", p.maxRetries+1, err)
}
