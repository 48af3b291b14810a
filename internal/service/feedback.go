// Package service holds the feedback operations behind the HTTP API.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"airport-feedback/internal/aggregate"
	"airport-feedback/internal/logger"
	"airport-feedback/internal/metrics"
	"airport-feedback/internal/models"
	"airport-feedback/internal/notify"
	"airport-feedback/internal/repository"
)

const notifyTimeout = 10 * time.Second

// FeedbackStore is the persistence the service needs. *repository.FeedbackRepo
// satisfies it.
type FeedbackStore interface {
	Create(ctx context.Context, feedback *models.Feedback) error
	List(ctx context.Context, rng repository.DateRange) ([]models.Feedback, error)
}

// FeedbackService submits and lists feedback. Location and rating are stored
// as given; values outside the closed sets are accepted and logged.
type FeedbackService struct {
	store    FeedbackStore
	notifier notify.Notifier
	metrics  *metrics.Recorder
	now      func() time.Time

	pending sync.WaitGroup
}

// Option customises a FeedbackService.
type Option func(*FeedbackService)

// WithClock replaces time.Now as the source of createdAt and of the
// reference instant for summaries.
func WithClock(now func() time.Time) Option {
	return func(s *FeedbackService) { s.now = now }
}

// NewFeedbackService wires the service. notifier and rec may be nil.
func NewFeedbackService(store FeedbackStore, notifier notify.Notifier, rec *metrics.Recorder, opts ...Option) *FeedbackService {
	s := &FeedbackService{
		store:    store,
		notifier: notifier,
		metrics:  rec,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit stores a new record stamped with the current server time and
// returns it with its identifier. Store failures come back as
// *repository.PersistenceError.
func (s *FeedbackService) Submit(ctx context.Context, location, rating, reasons string) (models.Feedback, error) {
	fb := models.Feedback{
		Location:  location,
		Rating:    rating,
		Reasons:   reasons,
		CreatedAt: s.now(),
	}

	if err := s.store.Create(ctx, &fb); err != nil {
		s.metrics.StoreError("insert")
		return models.Feedback{}, fmt.Errorf("submit feedback: %w", err)
	}
	s.metrics.Submitted(fb)

	if !models.IsKnownLocation(fb.Location) || !models.IsKnownRating(fb.Rating) {
		logger.GetLogger().Warnw("Stored feedback outside the known categories",
			"id", fb.ID.Hex(), "location", fb.Location, "rating", fb.Rating)
	}

	s.publish(fb)
	return fb, nil
}

// publish sends the notification in the background; its outcome never
// affects the submit.
func (s *FeedbackService) publish(fb models.Feedback) {
	if s.notifier == nil {
		return
	}
	message := notify.FormatFeedback(fb)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Publish(ctx, message); err != nil {
			logger.GetLogger().Errorw("Error publishing feedback notification", "error", err, "id", fb.ID.Hex())
		}
	}()
}

// Wait blocks until in-flight notifications have finished.
func (s *FeedbackService) Wait() {
	s.pending.Wait()
}

// List returns feedback with start <= createdAt <= end, newest first. Either
// bound may be nil.
func (s *FeedbackService) List(ctx context.Context, start, end *time.Time) ([]models.Feedback, error) {
	records, err := s.store.List(ctx, repository.DateRange{Start: start, End: end})
	if err != nil {
		s.metrics.StoreError("find")
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	return records, nil
}

// Summary aggregates every stored record for window w, using the current
// time in loc as the reference instant.
func (s *FeedbackService) Summary(ctx context.Context, w aggregate.Window, loc *time.Location) (aggregate.Result, error) {
	records, err := s.List(ctx, nil, nil)
	if err != nil {
		return aggregate.Result{}, err
	}
	return aggregate.Aggregate(records, w, s.Now(loc)), nil
}

// Now returns the service clock in loc; a nil loc means time.Local.
func (s *FeedbackService) Now(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return s.now().In(loc)
}
