package attendance

import (
	"fmt"
	"math/rand"
	"time"

	"attendease/internal/directory"
)

// GenerateSeed builds randomized demo records for the past 30 days for each
// staff user, skipping weekends. Present days get a morning punch-in
// (08:00-09:59) and, when fully present, an evening punch-out (17:00-18:59).
// Absent days are noted as sick leave.
func GenerateSeed(staff []directory.User, now time.Time, rng *rand.Rand) []Record {
	// Weighted toward present, matching a plausible office month.
	statuses := []Status{
		StatusPresent, StatusPresent, StatusPresent, StatusPresent,
		StatusAbsent, StatusHalfDay,
	}

	var records []Record
	id := 1
	for _, u := range staff {
		for j := 0; j < 30; j++ {
			day := now.AddDate(0, 0, -j)
			if wd := day.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}

			status := statuses[rng.Intn(len(statuses))]
			rec := Record{
				ID:     id,
				UserID: u.ID,
				Date:   day.Format(DateLayout),
				Status: status,
			}
			id++

			if status != StatusAbsent {
				rec.PunchInTime = fmt.Sprintf("%02d:%02d:00", 8+rng.Intn(2), rng.Intn(60))
			}
			if status == StatusPresent {
				rec.PunchOutTime = fmt.Sprintf("%02d:%02d:00", 17+rng.Intn(2), rng.Intn(60))
			}
			if status == StatusAbsent {
				rec.Notes = "Sick leave"
			}
			records = append(records, rec)
		}
	}
	return records
}
