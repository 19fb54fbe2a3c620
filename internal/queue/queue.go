package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"oakvale/server/internal/models"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// BookingQueue is an in-memory fan-out queue for booking events
type BookingQueue struct {
	items    chan *models.BookingEvent
	wg       sync.WaitGroup
	maxSize  int
	closed   bool
	mu       sync.RWMutex
	logger   *logrus.Logger
	handlers []func(*models.BookingEvent) error
}

// NewBookingQueue creates a new booking queue with the specified buffer size
func NewBookingQueue(bufferSize int, logger *logrus.Logger) *BookingQueue {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	return &BookingQueue{
		items:    make(chan *models.BookingEvent, bufferSize),
		maxSize:  bufferSize,
		logger:   logger,
		handlers: make([]func(*models.BookingEvent) error, 0),
	}
}

// Push adds an event to the queue without blocking
func (q *BookingQueue) Push(event *models.BookingEvent) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.items <- event:
		q.logger.WithFields(logrus.Fields{
			"kind":       event.Kind,
			"booking_id": event.Booking.ID,
		}).Debug("Pushed booking event to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Subscribe adds a handler function that will be called for each event
func (q *BookingQueue) Subscribe(handler func(*models.BookingEvent) error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers = append(q.handlers, handler)
}

// Start begins processing items in the queue
func (q *BookingQueue) Start() {
	q.wg.Add(1)
	go q.process()
}

func (q *BookingQueue) process() {
	defer q.wg.Done()
	// Runs until Close, delivering whatever was accepted before it
	for event := range q.items {
		q.dispatch(event)
	}
}

// dispatch sends the event to all subscribed handlers
func (q *BookingQueue) dispatch(event *models.BookingEvent) {
	q.mu.RLock()
	handlers := q.handlers
	q.mu.RUnlock()

	for _, handler := range handlers {
		if err := handler(event); err != nil {
			q.logger.WithError(err).WithField("booking_id", event.Booking.ID).Error("Handler failed to process booking event")
		}
	}
}

// Close stops accepting events and waits for queued ones to be dispatched
func (q *BookingQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.items)
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}

// Len returns the current number of events in the queue
func (q *BookingQueue) Len() int {
	return len(q.items)
}

// IsClosed returns whether the queue has been closed
func (q *BookingQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
