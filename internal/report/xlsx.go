package report

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"attendease/internal/attendance"
	"attendease/internal/directory"
)

// ExportXLSX renders the filtered set plus the summary block as a
// spreadsheet. Empty sets yield ErrNoRecordsInRange.
func ExportXLSX(records []attendance.Record, dir *directory.Directory, mode Mode, ref time.Time) (File, error) {
	filtered := FilterByRange(records, mode, ref)
	if len(filtered) == 0 {
		return File{}, ErrNoRecordsInRange
	}
	rows := buildRows(filtered, dir)
	summary := Summarize(filtered)

	f := excelize.NewFile()
	const sheet = "Sheet1"

	header := make([]interface{}, len(tableHeaders))
	for i, h := range tableHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return File{}, fmt.Errorf("write xlsx: %w", err)
	}

	line := 2
	for _, r := range rows {
		cells := []interface{}{r.Date, r.Employee, r.Department, r.Status, r.PunchIn, r.PunchOut, r.WorkingHours}
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", line), &cells); err != nil {
			return File{}, fmt.Errorf("write xlsx: %w", err)
		}
		line++
	}

	line++ // blank row before the summary block
	summaryRows := [][]interface{}{
		{"Summary Statistics"},
		{"Total Records", summary.Total},
		{"Present", summary.Present},
		{"Absent", summary.Absent},
		{"Half Day", summary.HalfDay},
		{"Average Working Hours", summary.AverageText()},
	}
	for _, cells := range summaryRows {
		row := cells
		if err := f.SetSheetRow(sheet, fmt.Sprintf("A%d", line), &row); err != nil {
			return File{}, fmt.Errorf("write xlsx: %w", err)
		}
		line++
	}

	_ = f.SetColWidth(sheet, "A", "G", 16)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return File{}, fmt.Errorf("write xlsx: %w", err)
	}

	name := fmt.Sprintf("attendance_%s_%s.xlsx", mode, ref.Format(attendance.DateLayout))
	return File{
		Name:        name,
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Data:        buf.Bytes(),
	}, nil
}
