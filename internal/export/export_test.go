package export_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"airport-feedback/internal/export"
	"airport-feedback/internal/models"
)

var utc = time.UTC

func twoRecords() []models.Feedback {
	return []models.Feedback{
		{
			Location:  models.LocationDeparture,
			Rating:    models.RatingVeryGood,
			Reasons:   "Fast boarding",
			CreatedAt: time.Date(2025, 6, 18, 14, 30, 0, 0, utc),
		},
		{
			Location:  models.LocationCheckIn,
			Rating:    models.RatingBad,
			Reasons:   "Long queue at the kiosk",
			CreatedAt: time.Date(2025, 6, 17, 9, 5, 0, 0, utc),
		},
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2025, 6, 18, 14, 30, 0, 0, utc)

	assert.Equal(t, "Jun 18, 2025, 02:30 PM", export.FormatDate(ts, utc))
	assert.Equal(t, "Jun 18, 2025, 11:30 PM", export.FormatDate(ts, time.FixedZone("UTC+9", 9*3600)))
	assert.Equal(t, "Jan 2, 2026, 09:05 AM", export.FormatDate(time.Date(2026, 1, 2, 9, 5, 0, 0, utc), utc))
}

func TestTable_RowsMatchHeaderAndOrder(t *testing.T) {
	rows := export.Table(twoRecords(), utc)

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"Location", "Rating", "Reasons", "Date"}, export.Header)
	assert.Equal(t, []string{"Departure", "Very Good", "Fast boarding", "Jun 18, 2025, 02:30 PM"}, rows[0])
	assert.Equal(t, []string{"Check-in", "Bad", "Long queue at the kiosk", "Jun 17, 2025, 09:05 AM"}, rows[1])
}

func TestParseFormat(t *testing.T) {
	f, err := export.ParseFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, export.PDF, f)
	assert.Equal(t, "feedback_report.pdf", f.FileName())
	assert.Equal(t, "application/pdf", f.ContentType())

	f, err = export.ParseFormat("excel")
	require.NoError(t, err)
	assert.Equal(t, export.XLSX, f)
	assert.Equal(t, "feedback_report.xlsx", f.FileName())

	_, err = export.ParseFormat("csv")
	assert.Error(t, err)
}

// ---- spreadsheet -----------------------------------------------------------

func readWorkbook(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWriteXLSX_TwoRecords_HeaderPlusTwoRows(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.WriteXLSX(&buf, twoRecords(), utc))

	f := readWorkbook(t, buf.Bytes())
	assert.Equal(t, []string{"Feedback"}, f.GetSheetList())

	rows, err := f.GetRows("Feedback")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, export.Header, rows[0])
	assert.Equal(t, []string{"Departure", "Very Good", "Fast boarding", "Jun 18, 2025, 02:30 PM"}, rows[1])
	assert.Equal(t, "Check-in", rows[2][0])
}

func TestWriteXLSX_NoRecords_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.WriteXLSX(&buf, nil, utc))

	rows, err := readWorkbook(t, buf.Bytes()).GetRows("Feedback")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, export.Header, rows[0])
}

// ---- pdf -------------------------------------------------------------------

func TestWritePDF_ProducesDocument(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.WritePDF(&buf, twoRecords(), utc))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "missing PDF header")
	assert.Contains(t, string(out), "%%EOF")
}

// TestWritePDF_ManyRowsAndWideText exercises wrapping, page breaks and
// characters outside Latin-1.
func TestWritePDF_ManyRowsAndWideText(t *testing.T) {
	var records []models.Feedback
	for i := 0; i < 120; i++ {
		records = append(records, models.Feedback{
			Location:  models.LocationArrivals,
			Rating:    models.RatingAverage,
			Reasons:   strings.Repeat("Très bien, merci — ", 12) + "✈",
			CreatedAt: time.Date(2025, 6, 18, 14, 30, 0, 0, utc),
		})
	}
	var buf bytes.Buffer

	require.NoError(t, export.WritePDF(&buf, records, utc))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestSaveFile_WritesBothFormats(t *testing.T) {
	dir := t.TempDir()

	for _, f := range []export.Format{export.PDF, export.XLSX} {
		path := filepath.Join(dir, f.FileName())
		require.NoError(t, export.SaveFile(path, f, twoRecords(), utc))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestSaveFile_BadDirectory(t *testing.T) {
	err := export.SaveFile(filepath.Join(t.TempDir(), "missing", "x.pdf"), export.PDF, nil, utc)
	assert.Error(t, err)
}
