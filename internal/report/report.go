// Package report derives date-range views, summary statistics, and export
// artifacts from the attendance collection.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"attendease/internal/attendance"
	"attendease/internal/directory"
)

// Mode scopes filtering to a day, calendar week, or calendar month.
type Mode string

const (
	ModeDay   Mode = "day"
	ModeWeek  Mode = "week"
	ModeMonth Mode = "month"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDay, ModeWeek, ModeMonth:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown range mode %q", s)
}

// ErrNoRecordsInRange signals an export was requested for an empty filtered
// set; callers surface it as a notice, no file is produced.
var ErrNoRecordsInRange = errors.New("no records found for the selected date range")

// FilterByRange returns the subset of records whose date falls in the day,
// week, or month containing ref. Weeks start on Sunday. An empty result is
// not an error.
func FilterByRange(records []attendance.Record, mode Mode, ref time.Time) []attendance.Record {
	var out []attendance.Record
	switch mode {
	case ModeDay:
		want := ref.Format(attendance.DateLayout)
		for _, r := range records {
			if r.Date == want {
				out = append(out, r)
			}
		}
	case ModeWeek:
		start, end := weekBounds(ref)
		for _, r := range records {
			d, err := time.Parse(attendance.DateLayout, r.Date)
			if err != nil {
				continue
			}
			if !d.Before(start) && !d.After(end) {
				out = append(out, r)
			}
		}
	case ModeMonth:
		for _, r := range records {
			d, err := time.Parse(attendance.DateLayout, r.Date)
			if err != nil {
				continue
			}
			if d.Year() == ref.Year() && d.Month() == ref.Month() {
				out = append(out, r)
			}
		}
	}
	return out
}

// weekBounds returns midnight of the Sunday starting ref's week and of the
// following Saturday, in UTC for date-only comparison.
func weekBounds(ref time.Time) (time.Time, time.Time) {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)
	start := day.AddDate(0, 0, -int(day.Weekday()))
	return start, start.AddDate(0, 0, 6)
}

// Summary aggregates a filtered record set.
type Summary struct {
	Total   int
	Present int
	Absent  int
	HalfDay int

	// Worked counts only records carrying both punch stamps; they are the
	// population the average is taken over.
	Worked        int
	WorkedMinutes int
}

// Summarize computes status counts and worked-time totals.
func Summarize(records []attendance.Record) Summary {
	var s Summary
	s.Total = len(records)
	for _, r := range records {
		switch r.Status {
		case attendance.StatusPresent:
			s.Present++
		case attendance.StatusAbsent:
			s.Absent++
		case attendance.StatusHalfDay:
			s.HalfDay++
		}
		if min, ok := workedMinutes(r); ok {
			s.Worked++
			s.WorkedMinutes += min
		}
	}
	return s
}

// AverageMinutes returns the mean worked duration. ok is false when no
// record has both punch stamps; callers must not divide by zero themselves.
func (s Summary) AverageMinutes() (float64, bool) {
	if s.Worked == 0 {
		return 0, false
	}
	return float64(s.WorkedMinutes) / float64(s.Worked), true
}

// AverageText renders the average as "8h 30m", or "-" when undefined.
func (s Summary) AverageText() string {
	avg, ok := s.AverageMinutes()
	if !ok {
		return "-"
	}
	// Round once, then split, so minutes wrapping to 60 carry the hour.
	total := int(avg + 0.5)
	return fmt.Sprintf("%dh %dm", total/60, total%60)
}

// workedMinutes is punch-out minus punch-in, ignoring seconds.
func workedMinutes(r attendance.Record) (int, bool) {
	if r.PunchInTime == "" || r.PunchOutTime == "" {
		return 0, false
	}
	in, err := time.Parse(attendance.TimeLayout, r.PunchInTime)
	if err != nil {
		return 0, false
	}
	out, err := time.Parse(attendance.TimeLayout, r.PunchOutTime)
	if err != nil {
		return 0, false
	}
	return (out.Hour()*60 + out.Minute()) - (in.Hour()*60 + in.Minute()), true
}

// RangeText describes the filtered range for report headers.
func RangeText(mode Mode, ref time.Time) string {
	switch mode {
	case ModeDay:
		return "Date: " + ref.Format("January 2, 2006")
	case ModeWeek:
		start, end := weekBounds(ref)
		return "Week: " + start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
	case ModeMonth:
		return "Month: " + ref.Format("January 2006")
	}
	return ""
}

// row is one rendered table line shared by all export formats.
type row struct {
	Date         string
	Employee     string
	Department   string
	Status       string
	PunchIn      string
	PunchOut     string
	WorkingHours string
}

var tableHeaders = []string{"Date", "Employee", "Department", "Status", "Punch In", "Punch Out", "Working Hours"}

func buildRows(records []attendance.Record, dir *directory.Directory) []row {
	rows := make([]row, 0, len(records))
	for _, r := range records {
		name, dept := "Unknown", "Not Assigned"
		if u := dir.ByID(r.UserID); u != nil {
			name = u.Name
			if u.Department != "" {
				dept = u.Department
			}
		}

		date := r.Date
		if d, err := time.Parse(attendance.DateLayout, r.Date); err == nil {
			date = d.Format("Jan 02, 2006")
		}

		working := "-"
		if min, ok := workedMinutes(r); ok {
			working = fmt.Sprintf("%dh %dm", min/60, min%60)
		}

		rows = append(rows, row{
			Date:         date,
			Employee:     name,
			Department:   dept,
			Status:       titleStatus(r.Status),
			PunchIn:      orDash(r.PunchInTime),
			PunchOut:     orDash(r.PunchOutTime),
			WorkingHours: working,
		})
	}
	return rows
}

// titleStatus uppercases only the first letter: "half-day" -> "Half-day".
func titleStatus(s attendance.Status) string {
	str := string(s)
	if str == "" {
		return str
	}
	return strings.ToUpper(str[:1]) + str[1:]
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// sanitize replaces every non-alphanumeric rune with '_' for filenames.
func sanitize(s string) string {
	out := []byte(s)
	for i := 0; i < len(out); i++ {
		c := out[i]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			continue
		}
		out[i] = '_'
	}
	return string(out)
}

// File is a rendered export artifact ready for download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}
