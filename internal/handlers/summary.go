package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"airport-feedback/internal/aggregate"
	"airport-feedback/internal/export"
	"airport-feedback/internal/models"
)

type unrecognizedCounts struct {
	Ratings   int `json:"ratings"`
	Locations int `json:"locations"`
}

type summaryResponse struct {
	Window       aggregate.Window     `json:"window"`
	Start        *time.Time           `json:"start"`
	End          *time.Time           `json:"end"`
	Total        int                  `json:"total"`
	Ratings      *aggregate.Histogram `json:"ratings"`
	Locations    *aggregate.Histogram `json:"locations"`
	Unrecognized unrecognizedCounts   `json:"unrecognized"`
	Records      []models.Feedback    `json:"records"`
}

// --- GET /api/feedback/summary ---

func (h *FeedbackHandler) Summary(w http.ResponseWriter, r *http.Request) {
	window, loc, ok := windowParams(w, r)
	if !ok {
		return
	}

	res, err := h.service.Summary(r.Context(), window, loc)
	if err != nil {
		serverError(w, r, "Error aggregating feedback", err)
		return
	}

	resp := summaryResponse{
		Window:    res.Window,
		Total:     len(res.Records),
		Ratings:   res.Ratings,
		Locations: res.Locations,
		Unrecognized: unrecognizedCounts{
			Ratings:   res.Ratings.Unrecognized,
			Locations: res.Locations.Unrecognized,
		},
		Records: res.Records,
	}
	if res.Bounds != nil {
		resp.Start = &res.Bounds.Start
		resp.End = &res.Bounds.End
	}
	if resp.Records == nil {
		resp.Records = []models.Feedback{}
	}

	writeJSON(w, http.StatusOK, resp)
}

// --- GET /api/feedback/export ---

// Export serves the window's records as a PDF or spreadsheet attachment.
// format defaults to pdf.
func (h *FeedbackHandler) Export(w http.ResponseWriter, r *http.Request) {
	window, loc, ok := windowParams(w, r)
	if !ok {
		return
	}

	format := export.PDF
	if raw := r.URL.Query().Get("format"); raw != "" {
		f, err := export.ParseFormat(raw)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		format = f
	}

	res, err := h.service.Summary(r.Context(), window, loc)
	if err != nil {
		serverError(w, r, "Error aggregating feedback", err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, res.Records, loc); err != nil {
		serverError(w, r, "Error rendering export", err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.FileName()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}

// windowParams reads window and tz. It answers 400 itself and returns
// ok=false when either is invalid.
func windowParams(w http.ResponseWriter, r *http.Request) (aggregate.Window, *time.Location, bool) {
	q := r.URL.Query()

	window, err := aggregate.ParseWindow(q.Get("window"))
	if err != nil {
		badRequest(w, err.Error())
		return "", nil, false
	}

	loc := time.Local
	if tz := q.Get("tz"); tz != "" {
		loc, err = time.LoadLocation(tz)
		if err != nil {
			badRequest(w, fmt.Sprintf("unknown time zone %q", tz))
			return "", nil, false
		}
	}
	return window, loc, true
}
