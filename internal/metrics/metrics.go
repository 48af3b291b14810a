// Package metrics holds the Prometheus collectors for the feedback service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"airport-feedback/internal/models"
)

// otherLabel replaces location and rating values outside the closed sets so
// free-form input cannot blow up label cardinality.
const otherLabel = "other"

// Recorder counts feedback traffic. A nil *Recorder is valid and records
// nothing.
type Recorder struct {
	submitted   *prometheus.CounterVec
	storeErrors *prometheus.CounterVec
}

// NewRecorder creates the collectors and registers them with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	r := &Recorder{
		submitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "airport_feedback_submitted_total",
			Help: "Feedback records stored, by location and rating.",
		}, []string{"location", "rating"}),
		storeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "airport_feedback_store_errors_total",
			Help: "Failed feedback store operations, by operation.",
		}, []string{"op"}),
	}
	reg.MustRegister(r.submitted, r.storeErrors)
	return r
}

// Submitted counts one stored record.
func (r *Recorder) Submitted(fb models.Feedback) {
	if r == nil {
		return
	}
	location, rating := fb.Location, fb.Rating
	if !models.IsKnownLocation(location) {
		location = otherLabel
	}
	if !models.IsKnownRating(rating) {
		rating = otherLabel
	}
	r.submitted.WithLabelValues(location, rating).Inc()
}

// StoreError counts one failed store operation.
func (r *Recorder) StoreError(op string) {
	if r == nil {
		return
	}
	r.storeErrors.WithLabelValues(op).Inc()
}
