package attendance

// Status classifies a day's attendance.
type Status string

const (
	StatusPresent Status = "present"
	StatusAbsent  Status = "absent"
	StatusHalfDay Status = "half-day"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusHalfDay:
		return true
	}
	return false
}

// Record is one user's attendance for one calendar day. IDs are unique and
// monotonically assigned; there is at most one record per (UserID, Date).
// Field names match the serialized form in durable storage.
type Record struct {
	ID           int    `json:"id"`
	UserID       int    `json:"userId"`
	Date         string `json:"date"` // 2006-01-02
	Status       Status `json:"status"`
	PunchInTime  string `json:"punchInTime,omitempty"` // 15:04:05
	PunchOutTime string `json:"punchOutTime,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// DateLayout and TimeLayout are the wire formats for record fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)
