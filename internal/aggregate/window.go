// Package aggregate filters feedback into calendar windows and tallies it
// into fixed-key histograms for the dashboard.
//
// Every function here is pure: boundaries derive from an explicit reference
// instant, inputs are never mutated, and nothing is cached between calls.
package aggregate

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Window selects the calendar period a dashboard view covers.
type Window string

const (
	All     Window = "all"
	Daily   Window = "daily"
	Weekly  Window = "weekly"
	Monthly Window = "monthly"
	Yearly  Window = "yearly"
)

// Windows lists every selector in menu order.
var Windows = []Window{All, Daily, Weekly, Monthly, Yearly}

var ErrUnknownWindow = errors.New("unknown window")

// ParseWindow maps a selector keyword to a Window. The empty string means All.
func ParseWindow(s string) (Window, error) {
	w := Window(strings.ToLower(strings.TrimSpace(s)))
	if w == "" {
		return All, nil
	}
	for _, known := range Windows {
		if w == known {
			return w, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownWindow, s)
}

// Bounds is an inclusive [Start, End] interval.
type Bounds struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether Start <= t <= End.
func (b Bounds) Contains(t time.Time) bool {
	return !t.Before(b.Start) && !t.After(b.End)
}

const lastMillisecond = 999 * int(time.Millisecond)

func startOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func endOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	return time.Date(y, m, d, 23, 59, 59, lastMillisecond, loc)
}

// BoundsFor returns the interval w covers around ref, in ref's location.
// Out-of-range days (day 0, day 32) are normalised by time.Date, which is
// what lets weeks and months cross calendar boundaries. ok is false for All,
// which has no bounds.
func BoundsFor(w Window, ref time.Time) (b Bounds, ok bool) {
	y, m, d := ref.Date()
	loc := ref.Location()

	switch w {
	case Daily:
		return Bounds{Start: startOfDay(y, m, d, loc), End: endOfDay(y, m, d, loc)}, true
	case Weekly:
		sunday := d - int(ref.Weekday())
		return Bounds{Start: startOfDay(y, m, sunday, loc), End: endOfDay(y, m, sunday+6, loc)}, true
	case Monthly:
		return Bounds{Start: startOfDay(y, m, 1, loc), End: endOfDay(y, m+1, 0, loc)}, true
	case Yearly:
		return Bounds{Start: startOfDay(y, time.January, 1, loc), End: endOfDay(y, time.December, 31, loc)}, true
	default:
		return Bounds{}, false
	}
}
