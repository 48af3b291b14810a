// Package export turns a list of feedback into a downloadable report, either
// a PDF table or a single-sheet spreadsheet. Both formats share the same
// header and row layout built by Table.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"airport-feedback/internal/models"
)

// Format is an export file type.
type Format string

const (
	PDF  Format = "pdf"
	XLSX Format = "xlsx"
)

const (
	// Title heads the PDF report.
	Title = "Feedback Report"
	// SheetName names the only sheet of the workbook.
	SheetName = "Feedback"
	// DateLayout renders createdAt like "Jun 18, 2025, 02:30 PM".
	DateLayout = "Jan 2, 2006, 03:04 PM"
)

// Header is the first row of every export.
var Header = []string{"Location", "Rating", "Reasons", "Date"}

// ParseFormat accepts "pdf" and "xlsx" (also "excel"), case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pdf":
		return PDF, nil
	case "xlsx", "excel":
		return XLSX, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// FileName is the default download name for f.
func (f Format) FileName() string {
	return "feedback_report." + string(f)
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
	if f == XLSX {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "application/pdf"
}

// FormatDate renders t in loc using DateLayout. A nil loc means time.Local.
func FormatDate(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DateLayout)
}

// Table flattens records into rows matching Header, preserving order.
func Table(records []models.Feedback, loc *time.Location) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{r.Location, r.Rating, r.Reasons, FormatDate(r.CreatedAt, loc)})
	}
	return rows
}

// Write renders records in format f to w.
func Write(w io.Writer, f Format, records []models.Feedback, loc *time.Location) error {
	switch f {
	case PDF:
		return WritePDF(w, records, loc)
	case XLSX:
		return WriteXLSX(w, records, loc)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// SaveFile writes the report to path, replacing any existing file.
func SaveFile(path string, f Format, records []models.Feedback, loc *time.Location) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()

	if err := Write(file, f, records, loc); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
