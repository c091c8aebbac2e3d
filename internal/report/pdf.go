package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"attendease/internal/attendance"
	"attendease/internal/directory"
)

var pdfColWidths = []float64{28, 32, 28, 20, 25, 25, 24}

// ExportPDF renders the filtered set as a paginated A4 table with a title,
// range description, and total count. Empty sets yield ErrNoRecordsInRange.
func ExportPDF(records []attendance.Record, dir *directory.Directory, mode Mode, ref time.Time) (File, error) {
	filtered := FilterByRange(records, mode, ref)
	if len(filtered) == 0 {
		return File{}, ErrNoRecordsInRange
	}
	rows := buildRows(filtered, dir)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	title := fmt.Sprintf("Attendance Report - %s of %s", titleMode(mode), ref.Format("January 2, 2006"))
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, RangeText(mode, ref), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Total Records: %d", len(filtered)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(79, 70, 229)
		pdf.SetTextColor(255, 255, 255)
		for i, h := range tableHeaders {
			pdf.CellFormat(pdfColWidths[i], 7, h, "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(0, 0, 0)
	}

	writeHeader()
	for i, r := range rows {
		// Re-draw the header after an automatic page break.
		if pdf.GetY() > 270 {
			pdf.AddPage()
			writeHeader()
		}
		fill := i%2 == 1
		if fill {
			pdf.SetFillColor(249, 250, 251)
		}
		cells := []string{r.Date, r.Employee, r.Department, r.Status, r.PunchIn, r.PunchOut, r.WorkingHours}
		for j, cell := range cells {
			pdf.CellFormat(pdfColWidths[j], 6, cell, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return File{}, fmt.Errorf("render pdf: %w", err)
	}

	name := fmt.Sprintf("attendance_%s_%s.pdf", mode, ref.Format(attendance.DateLayout))
	return File{Name: name, ContentType: "application/pdf", Data: buf.Bytes()}, nil
}

func titleMode(mode Mode) string {
	switch mode {
	case ModeDay:
		return "Day"
	case ModeWeek:
		return "Week"
	case ModeMonth:
		return "Month"
	}
	return string(mode)
}
