package export

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"airport-feedback/internal/models"
)

const (
	pdfMargin   = 10.0
	pdfLineH    = 5.0
	pdfCellPad  = 1.0
	pdfFontSize = 9.0
)

// Column widths in mm; they add up to the A4 width minus both margins.
var pdfColumnWidths = []float64{30, 25, 90, 45}

// WritePDF writes a one-table PDF report: the title, then Header and one row
// per record. Long cells wrap and the header repeats on every page.
func WritePDF(w io.Writer, records []models.Feedback, loc *time.Location) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 14)
	pdf.Text(pdfMargin, pdfMargin, Title)
	pdf.SetXY(pdfMargin, pdfMargin+5)

	t := &pdfTable{pdf: pdf, tr: tr}
	t.row(Header, true)
	for _, row := range Table(records, loc) {
		t.row(row, false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

type pdfTable struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// row draws one table row, starting a new page (with the header) when the
// row would cross the bottom margin.
func (t *pdfTable) row(cells []string, header bool) {
	pdf := t.pdf
	if header {
		pdf.SetFont("Helvetica", "B", pdfFontSize)
	} else {
		pdf.SetFont("Helvetica", "", pdfFontSize)
	}

	lines := make([][][]byte, len(cells))
	maxLines := 1
	for i, c := range cells {
		lines[i] = pdf.SplitLines([]byte(t.tr(c)), pdfColumnWidths[i])
		if len(lines[i]) > maxLines {
			maxLines = len(lines[i])
		}
	}
	h := float64(maxLines)*pdfLineH + 2*pdfCellPad

	_, pageH := pdf.GetPageSize()
	if _, y := pdf.GetXY(); !header && y+h > pageH-pdfMargin {
		pdf.AddPage()
		pdf.SetXY(pdfMargin, pdfMargin)
		t.row(Header, true)
		pdf.SetFont("Helvetica", "", pdfFontSize)
	}

	x, y := pdf.GetXY()
	for i := range cells {
		w := pdfColumnWidths[i]
		if header {
			pdf.SetFillColor(41, 128, 185)
			pdf.SetTextColor(255, 255, 255)
			pdf.Rect(x, y, w, h, "FD")
		} else {
			pdf.SetTextColor(0, 0, 0)
			pdf.Rect(x, y, w, h, "D")
		}
		for j, ln := range lines[i] {
			pdf.SetXY(x, y+pdfCellPad+float64(j)*pdfLineH)
			pdf.CellFormat(w, pdfLineH, string(ln), "", 0, "L", false, 0, "")
		}
		x += w
	}
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(pdfMargin, y+h)
}
