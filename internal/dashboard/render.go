package dashboard

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"airport-feedback/internal/aggregate"
	"airport-feedback/internal/export"
)

// barWidth is the length of the longest bar.
const barWidth = 40

// Render writes the view: a heading, the rating and location bar charts and
// the record table. Dates are shown in loc.
func Render(w io.Writer, res aggregate.Result, loc *time.Location) error {
	var b strings.Builder

	b.WriteString(heading(res, loc))
	b.WriteString("\n\n")
	writeChart(&b, "Ratings", res.Ratings)
	b.WriteString("\n")
	writeChart(&b, "Locations", res.Locations)
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}
	return writeTable(w, res, loc)
}

func heading(res aggregate.Result, loc *time.Location) string {
	window := res.Window
	if window == "" {
		window = aggregate.All
	}
	h := fmt.Sprintf("Feedback: %s (%d records)", window, len(res.Records))
	if res.Bounds != nil {
		h += fmt.Sprintf("\n%s to %s",
			export.FormatDate(res.Bounds.Start, loc), export.FormatDate(res.Bounds.End, loc))
	}
	return h
}

func writeChart(b *strings.Builder, title string, h *aggregate.Histogram) {
	b.WriteString(title)
	b.WriteString("\n")
	if h == nil {
		return
	}

	keys := h.Keys()
	labelWidth, peak := 0, 0
	for _, k := range keys {
		labelWidth = max(labelWidth, len(k))
		peak = max(peak, h.Count(k))
	}

	for _, k := range keys {
		n := h.Count(k)
		fmt.Fprintf(b, "  %-*s |%s %d\n", labelWidth, k, bar(n, peak), n)
	}
	if h.Unrecognized > 0 {
		fmt.Fprintf(b, "  (%d unrecognized)\n", h.Unrecognized)
	}
}

// bar scales n against peak; any non-zero count gets at least one block.
func bar(n, peak int) string {
	if n == 0 || peak == 0 {
		return ""
	}
	width := n * barWidth / peak
	if width == 0 {
		width = 1
	}
	return strings.Repeat("#", width)
}

func writeTable(w io.Writer, res aggregate.Result, loc *time.Location) error {
	if len(res.Records) == 0 {
		_, err := io.WriteString(w, "No feedback in this window.\n")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(export.Header, "\t"))
	for _, row := range export.Table(res.Records, loc) {
		for i := range row {
			row[i] = oneLine(row[i])
		}
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

// oneLine keeps multi-line reasons from breaking the table layout.
func oneLine(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(s)
	return strings.TrimSpace(s)
}
