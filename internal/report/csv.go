package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"attendease/internal/attendance"
	"attendease/internal/directory"
)

// ExportCSV renders the filtered set plus a summary block as UTF-8 CSV with
// a leading byte-order mark (for spreadsheet apps). An empty filtered set
// yields ErrNoRecordsInRange and no file.
func ExportCSV(records []attendance.Record, dir *directory.Directory, mode Mode, ref time.Time) (File, error) {
	filtered := FilterByRange(records, mode, ref)
	if len(filtered) == 0 {
		return File{}, ErrNoRecordsInRange
	}

	rows := buildRows(filtered, dir)
	summary := Summarize(filtered)

	var buf bytes.Buffer
	buf.WriteString("\uFEFF")

	w := csv.NewWriter(&buf)
	if err := w.Write(tableHeaders); err != nil {
		return File{}, fmt.Errorf("write csv: %w", err)
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Date, r.Employee, r.Department, r.Status, r.PunchIn, r.PunchOut, r.WorkingHours}); err != nil {
			return File{}, fmt.Errorf("write csv: %w", err)
		}
	}

	summaryRows := [][]string{
		{""},
		{"Summary Statistics"},
		{"Total Records", strconv.Itoa(summary.Total)},
		{"Present", strconv.Itoa(summary.Present)},
		{"Absent", strconv.Itoa(summary.Absent)},
		{"Half Day", strconv.Itoa(summary.HalfDay)},
		{"Average Working Hours", summary.AverageText()},
	}
	for _, r := range summaryRows {
		if err := w.Write(r); err != nil {
			return File{}, fmt.Errorf("write csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return File{}, fmt.Errorf("write csv: %w", err)
	}

	name := fmt.Sprintf("attendance_report_%s_%s.csv",
		sanitize(RangeText(mode, ref)), ref.Format(attendance.DateLayout))
	return File{Name: name, ContentType: "text/csv; charset=utf-8", Data: buf.Bytes()}, nil
}
