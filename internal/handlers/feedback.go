package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"airport-feedback/internal/aggregate"
	"airport-feedback/internal/models"
)

// FeedbackService is what the handlers need from the service layer.
// *service.FeedbackService satisfies it.
type FeedbackService interface {
	Submit(ctx context.Context, location, rating, reasons string) (models.Feedback, error)
	List(ctx context.Context, start, end *time.Time) ([]models.Feedback, error)
	Summary(ctx context.Context, w aggregate.Window, loc *time.Location) (aggregate.Result, error)
}

type FeedbackHandler struct {
	service FeedbackService
}

func NewFeedbackHandler(service FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{service: service}
}

type SubmitFeedbackRequest struct {
	Location string `json:"location"`
	Rating   string `json:"rating"`
	Reasons  string `json:"reasons"`
}

// --- POST /api/feedback ---

// SubmitFeedback stores the body as-is. Fields are not validated; any
// failure, a malformed body included, is a plain 500.
func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		serverError(w, r, "Error decoding feedback body", err)
		return
	}

	feedback, err := h.service.Submit(r.Context(), req.Location, req.Rating, req.Reasons)
	if err != nil {
		serverError(w, r, "Error creating feedback", err)
		return
	}

	writeJSON(w, http.StatusCreated, feedback)
}

// --- GET /api/feedback ---

// ListFeedback returns records newest first, optionally bounded by the
// startDate and endDate query parameters (inclusive).
func (h *FeedbackHandler) ListFeedback(w http.ResponseWriter, r *http.Request) {
	start, err := parseDateParam(r, "startDate")
	if err != nil {
		serverError(w, r, "Error parsing date filter", err)
		return
	}
	end, err := parseDateParam(r, "endDate")
	if err != nil {
		serverError(w, r, "Error parsing date filter", err)
		return
	}

	records, err := h.service.List(r.Context(), start, end)
	if err != nil {
		serverError(w, r, "Error fetching feedback", err)
		return
	}
	if records == nil {
		records = []models.Feedback{}
	}

	writeJSON(w, http.StatusOK, records)
}

// Layouts accepted for date filters. Date-only values (day, month or year)
// are midnight UTC; a date-time without an offset is server local time.
var (
	zonedLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04Z07:00"}
	localLayouts = []string{"2006-01-02T15:04:05.999999999", "2006-01-02T15:04"}
	dateLayouts  = []string{"2006-01-02", "2006-01", "2006"}
)

func parseDateParam(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := ParseISODate(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &t, nil
}

// ParseISODate parses the ISO 8601 forms clients send for date filters.
func ParseISODate(s string) (time.Time, error) {
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}
