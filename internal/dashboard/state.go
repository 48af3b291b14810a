// Package dashboard holds the terminal dashboard: the selected window, the
// last fetched records, and the text rendering of a view.
package dashboard

import (
	"context"
	"time"

	"airport-feedback/internal/aggregate"
	"airport-feedback/internal/export"
	"airport-feedback/internal/logger"
	"airport-feedback/internal/models"
)

// Fetcher loads every record from the API. *client.Client satisfies it.
type Fetcher interface {
	List(ctx context.Context, start, end time.Time) ([]models.Feedback, error)
}

// State is what the dashboard shows: a window and the records it was last
// able to fetch. The zero value is the all window with no records.
type State struct {
	Window  aggregate.Window
	Records []models.Feedback
}

// NewState starts with window w and no records.
func NewState(w aggregate.Window) *State {
	return &State{Window: w, Records: []models.Feedback{}}
}

// Refresh replaces Records with a full fetch. On failure the error is
// logged and returned and the previous records stay in place.
func (s *State) Refresh(ctx context.Context, f Fetcher) error {
	records, err := f.List(ctx, time.Time{}, time.Time{})
	if err != nil {
		logger.GetLogger().Errorw("Error fetching feedback", "error", err)
		return err
	}
	s.Records = records
	return nil
}

// SetWindow selects the window used by the next View or Export.
func (s *State) SetWindow(w aggregate.Window) {
	s.Window = w
}

// View aggregates the current records for the selected window around ref.
func (s *State) View(ref time.Time) aggregate.Result {
	w := s.Window
	if w == "" {
		w = aggregate.All
	}
	return aggregate.Aggregate(s.Records, w, ref)
}

// Export writes the records of the current view to path. Dates are shown in
// ref's location.
func (s *State) Export(path string, f export.Format, ref time.Time) error {
	res := s.View(ref)
	if err := export.SaveFile(path, f, res.Records, ref.Location()); err != nil {
		return err
	}
	logger.GetLogger().Infow("Exported feedback", "path", path, "format", f, "records", len(res.Records))
	return nil
}
