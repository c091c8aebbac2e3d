package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"attendease/internal/attendance"
	"attendease/internal/directory"
)

func testDirectory() *directory.Directory {
	return directory.New([]directory.User{
		{ID: 1, Username: "neha", Name: "Neha", Role: directory.RoleStaff, Department: "HR"},
		{ID: 2, Username: "smith", Name: "Smith, John", Role: directory.RoleStaff},
	}, nil)
}

func TestExportCSV(t *testing.T) {
	dir := testDirectory()
	records := []attendance.Record{
		rec(1, 1, "2024-03-12", attendance.StatusPresent, "09:00:00", "17:30:00"),
		rec(2, 2, "2024-03-12", attendance.StatusHalfDay, "09:10:00", ""),
	}
	ref := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)

	file, err := ExportCSV(records, dir, ModeDay, ref)
	if err != nil {
		t.Fatalf("export: %v", err)
	}

	if file.Name != "attendance_report_Date__March_12__2024_2024-03-12.csv" {
		t.Errorf("filename = %q", file.Name)
	}
	if !bytes.HasPrefix(file.Data, []byte("\uFEFF")) {
		t.Error("missing UTF-8 BOM")
	}

	body := string(file.Data)
	if !strings.Contains(body, "Date,Employee,Department,Status,Punch In,Punch Out,Working Hours") {
		t.Error("missing header row")
	}
	if !strings.Contains(body, `"Mar 12, 2024",Neha,HR,Present,09:00:00,17:30:00,8h 30m`) {
		t.Errorf("missing data row in:\n%s", body)
	}
	// Comma in the employee name must be quoted.
	if !strings.Contains(body, `"Smith, John"`) {
		t.Errorf("comma field not escaped in:\n%s", body)
	}
	if !strings.Contains(body, "Summary Statistics") ||
		!strings.Contains(body, "Total Records,2") ||
		!strings.Contains(body, "Present,1") ||
		!strings.Contains(body, "Half Day,1") ||
		!strings.Contains(body, "Average Working Hours,8h 30m") {
		t.Errorf("summary block incomplete in:\n%s", body)
	}
}

func TestExportEmptyRange(t *testing.T) {
	dir := testDirectory()
	records := []attendance.Record{
		rec(1, 1, "2024-03-12", attendance.StatusPresent, "09:00:00", "17:00:00"),
	}
	ref := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)

	if _, err := ExportCSV(records, dir, ModeDay, ref); !errors.Is(err, ErrNoRecordsInRange) {
		t.Errorf("csv err = %v, want ErrNoRecordsInRange", err)
	}
	if _, err := ExportPDF(records, dir, ModeDay, ref); !errors.Is(err, ErrNoRecordsInRange) {
		t.Errorf("pdf err = %v, want ErrNoRecordsInRange", err)
	}
	if _, err := ExportXLSX(records, dir, ModeDay, ref); !errors.Is(err, ErrNoRecordsInRange) {
		t.Errorf("xlsx err = %v, want ErrNoRecordsInRange", err)
	}
}

func TestExportPDF(t *testing.T) {
	dir := testDirectory()
	records := []attendance.Record{
		rec(1, 1, "2024-03-12", attendance.StatusPresent, "09:00:00", "17:30:00"),
	}
	ref := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)

	file, err := ExportPDF(records, dir, ModeDay, ref)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if file.Name != "attendance_day_2024-03-12.pdf" {
		t.Errorf("filename = %q", file.Name)
	}
	if !bytes.HasPrefix(file.Data, []byte("%PDF")) {
		t.Error("output is not a PDF document")
	}
}

func TestExportXLSX(t *testing.T) {
	dir := testDirectory()
	records := []attendance.Record{
		rec(1, 1, "2024-03-12", attendance.StatusPresent, "09:00:00", "17:30:00"),
	}
	ref := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC)

	file, err := ExportXLSX(records, dir, ModeDay, ref)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if file.Name != "attendance_day_2024-03-12.xlsx" {
		t.Errorf("filename = %q", file.Name)
	}
	// XLSX files are zip archives.
	if !bytes.HasPrefix(file.Data, []byte("PK")) {
		t.Error("output is not a zip container")
	}
}

func TestUnknownUserRendering(t *testing.T) {
	dir := testDirectory()
	records := []attendance.Record{
		rec(1, 99, "2024-03-12", attendance.StatusPresent, "", ""),
	}
	rows := buildRows(records, dir)
	if rows[0].Employee != "Unknown" || rows[0].Department != "Not Assigned" {
		t.Errorf("row = %+v", rows[0])
	}
	if rows[0].PunchIn != "-" || rows[0].WorkingHours != "-" {
		t.Errorf("missing stamps must render as dashes: %+v", rows[0])
	}
}
