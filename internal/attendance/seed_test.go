package attendance

import (
	"math/rand"
	"testing"
	"time"

	"attendease/internal/directory"
)

func TestGenerateSeedSkipsWeekendsAndStampsTimes(t *testing.T) {
	staff := []directory.User{
		{ID: 1, Username: "a", Role: directory.RoleStaff},
		{ID: 2, Username: "b", Role: directory.RoleStaff},
	}
	now := time.Date(2024, time.March, 12, 10, 0, 0, 0, time.UTC)
	records := GenerateSeed(staff, now, rand.New(rand.NewSource(1)))

	if len(records) == 0 {
		t.Fatal("no records generated")
	}

	seen := make(map[[2]interface{}]bool)
	for _, r := range records {
		d, err := time.Parse(DateLayout, r.Date)
		if err != nil {
			t.Fatalf("bad date %q: %v", r.Date, err)
		}
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			t.Errorf("weekend record on %s", r.Date)
		}

		key := [2]interface{}{r.UserID, r.Date}
		if seen[key] {
			t.Errorf("duplicate record for user %d on %s", r.UserID, r.Date)
		}
		seen[key] = true

		switch r.Status {
		case StatusPresent:
			if r.PunchInTime == "" || r.PunchOutTime == "" {
				t.Errorf("present record %d missing punch stamps", r.ID)
			}
		case StatusAbsent:
			if r.PunchInTime != "" || r.PunchOutTime != "" {
				t.Errorf("absent record %d has punch stamps", r.ID)
			}
			if r.Notes != "Sick leave" {
				t.Errorf("absent record %d notes = %q", r.ID, r.Notes)
			}
		case StatusHalfDay:
			if r.PunchInTime == "" {
				t.Errorf("half-day record %d missing punch in", r.ID)
			}
			if r.PunchOutTime != "" {
				t.Errorf("half-day record %d has punch out", r.ID)
			}
		}
	}
}
