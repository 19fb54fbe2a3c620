package scheduler

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"oakvale/server/internal/models"
)

// JobType represents the maintenance jobs the scheduler runs
type JobType int

const (
	JobTypeExpireBookings JobType = iota
)

// String returns the string representation of a JobType
func (j JobType) String() string {
	switch j {
	case JobTypeExpireBookings:
		return "expire_bookings"
	default:
		return "unknown"
	}
}

// BookingStore settles bookings whose viewing date has passed
type BookingStore interface {
	ExpireBookings(ctx context.Context, today string) (completed, cancelled int64, err error)
}

// Scheduler manages periodic booking maintenance
type Scheduler struct {
	store    BookingStore
	logger   *logrus.Logger
	interval time.Duration
	now      func() time.Time
	stopChan chan struct{}
	wg       sync.WaitGroup
	jobMutex sync.Mutex // Ensures sequential job execution
}

type Option func(*Scheduler)

// WithClock replaces the wall clock used to decide what "today" is.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// NewScheduler creates a new scheduler
func NewScheduler(store BookingStore, interval time.Duration, logger *logrus.Logger, opts ...Option) *Scheduler {
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
		logger.SetLevel(logrus.InfoLevel)
	}
	if interval <= 0 {
		interval = time.Hour
	}

	s := &Scheduler{
		store:    store,
		logger:   logger,
		interval: interval,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start runs maintenance once immediately and then on every interval
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.runScheduler()
}

func (s *Scheduler) runScheduler() {
	defer s.wg.Done()

	s.logger.Info("Running startup maintenance jobs")
	s.RunOnce(context.Background())

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.RunOnce(context.Background())
		}
	}
}

// RunOnce executes every maintenance job a single time
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.jobMutex.Lock()
	defer s.jobMutex.Unlock()

	today := s.now().Format(models.ViewingDateLayout)
	fields := logrus.Fields{
		"job_type": JobTypeExpireBookings.String(),
		"today":    today,
	}

	completed, cancelled, err := s.store.ExpireBookings(ctx, today)
	if err != nil {
		s.logger.WithError(err).WithFields(fields).Error("Maintenance job failed")
		return
	}

	fields["completed"] = completed
	fields["cancelled"] = cancelled
	if completed > 0 || cancelled > 0 {
		s.logger.WithFields(fields).Info("Settled elapsed bookings")
	} else {
		s.logger.WithFields(fields).Debug("No elapsed bookings")
	}
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	close(s.stopChan)
	s.wg.Wait()
}
