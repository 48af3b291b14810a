package aggregate

import (
	"time"

	"airport-feedback/internal/models"
)

// Result is one dashboard view: the records inside the window and the two
// histograms computed over them.
type Result struct {
	Window Window
	// Bounds is nil for All.
	Bounds    *Bounds
	Records   []models.Feedback
	Ratings   *Histogram
	Locations *Histogram
}

// Filter returns the records of w around ref, keeping input order. For All
// the input slice itself is returned.
func Filter(records []models.Feedback, w Window, ref time.Time) []models.Feedback {
	b, ok := BoundsFor(w, ref)
	if !ok {
		return records
	}
	return FilterBounds(records, b)
}

// FilterBounds returns the records with b.Start <= CreatedAt <= b.End, in
// input order. The result never aliases records.
func FilterBounds(records []models.Feedback, b Bounds) []models.Feedback {
	out := make([]models.Feedback, 0, len(records))
	for _, r := range records {
		if b.Contains(r.CreatedAt) {
			out = append(out, r)
		}
	}
	return out
}

// RatingCounts tallies records over models.Ratings.
func RatingCounts(records []models.Feedback) *Histogram {
	h := NewHistogram(models.Ratings)
	for _, r := range records {
		h.Add(r.Rating)
	}
	return h
}

// LocationCounts tallies records over models.Locations.
func LocationCounts(records []models.Feedback) *Histogram {
	h := NewHistogram(models.Locations)
	for _, r := range records {
		h.Add(r.Location)
	}
	return h
}

// Aggregate filters records to w around ref and builds both histograms.
func Aggregate(records []models.Feedback, w Window, ref time.Time) Result {
	res := Result{Window: w}
	if b, ok := BoundsFor(w, ref); ok {
		res.Bounds = &b
		res.Records = FilterBounds(records, b)
	} else {
		res.Records = records
	}
	res.Ratings = RatingCounts(res.Records)
	res.Locations = LocationCounts(res.Records)
	return res
}
