// Package attendance owns the record collection: it is the single writer,
// enforces one record per (user, date), and snapshots the full collection to
// durable storage after every mutation.
package attendance

import (
	"errors"
	"sync"

	"attendease/internal/clock"
)

// ErrNotPunchedIn is returned by PunchOut when the user has no record for
// today. The action is refused outright rather than silently ignored, so
// the collection is left unchanged either way.
var ErrNotPunchedIn = errors.New("no punch-in recorded for today")

// ErrUnknownStatus rejects statuses outside present/absent/half-day.
var ErrUnknownStatus = errors.New("unknown attendance status")

// Store holds the in-memory record collection.
type Store struct {
	mu      sync.Mutex
	records []Record
	nextID  int
	clk     clock.Clock
	sink    Sink
}

// NewStore creates a store seeded with the given records. The clock supplies
// "today" for punch operations; the sink receives a snapshot after every
// mutation.
func NewStore(records []Record, clk clock.Clock, sink Sink) *Store {
	if clk == nil {
		clk = clock.System{}
	}
	if sink == nil {
		sink = discardSink{}
	}
	nextID := 1
	for _, r := range records {
		if r.ID >= nextID {
			nextID = r.ID + 1
		}
	}
	s := &Store{
		records: append([]Record(nil), records...),
		nextID:  nextID,
		clk:     clk,
		sink:    sink,
	}
	// Initial snapshot so seeded state is durable before the first mutation.
	s.sink.Save(s.snapshotLocked())
	return s
}

// MarkAttendance upserts the record for (userID, date). An existing record
// has its status replaced in place; a punch-in time is stamped when the new
// status is present and none was recorded yet. An empty date means today.
func (s *Store) MarkAttendance(userID int, status Status, date string) (Record, error) {
	if !status.Valid() {
		return Record{}, ErrUnknownStatus
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.Now()
	if date == "" {
		date = now.Format(DateLayout)
	}

	if i := s.indexLocked(userID, date); i >= 0 {
		rec := &s.records[i]
		rec.Status = status
		if status == StatusPresent && rec.PunchInTime == "" {
			rec.PunchInTime = now.Format(TimeLayout)
		}
		s.saveLocked()
		return *rec, nil
	}

	rec := Record{
		ID:     s.nextID,
		UserID: userID,
		Date:   date,
		Status: status,
	}
	if status == StatusPresent {
		rec.PunchInTime = now.Format(TimeLayout)
	}
	s.nextID++
	s.records = append(s.records, rec)
	s.saveLocked()
	return rec, nil
}

// PunchIn marks today present and stamps the punch-in time, overwriting any
// earlier stamp. Repeated calls just refresh the timestamp.
func (s *Store) PunchIn(userID int) Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.Now()
	today := now.Format(DateLayout)
	current := now.Format(TimeLayout)

	if i := s.indexLocked(userID, today); i >= 0 {
		rec := &s.records[i]
		rec.Status = StatusPresent
		rec.PunchInTime = current
		s.saveLocked()
		return *rec
	}

	rec := Record{
		ID:          s.nextID,
		UserID:      userID,
		Date:        today,
		Status:      StatusPresent,
		PunchInTime: current,
	}
	s.nextID++
	s.records = append(s.records, rec)
	s.saveLocked()
	return rec
}

// PunchOut stamps the punch-out time on today's record. Without a prior
// record the call fails with ErrNotPunchedIn and nothing changes.
func (s *Store) PunchOut(userID int) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clk.Now()
	today := now.Format(DateLayout)

	i := s.indexLocked(userID, today)
	if i < 0 {
		return Record{}, ErrNotPunchedIn
	}
	rec := &s.records[i]
	rec.PunchOutTime = now.Format(TimeLayout)
	s.saveLocked()
	return *rec, nil
}

// ByDate returns the records for one calendar day.
func (s *Store) ByDate(date string) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Record
	for _, r := range s.records {
		if r.Date == date {
			out = append(out, r)
		}
	}
	return out
}

// ByUser returns all records for one user.
func (s *Store) ByUser(userID int) []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Record
	for _, r := range s.records {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out
}

// All returns a copy of the full collection.
func (s *Store) All() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Today returns the current date in record format, from the store's clock.
func (s *Store) Today() string {
	return s.clk.Now().Format(DateLayout)
}

func (s *Store) indexLocked(userID int, date string) int {
	for i, r := range s.records {
		if r.UserID == userID && r.Date == date {
			return i
		}
	}
	return -1
}

func (s *Store) snapshotLocked() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) saveLocked() {
	s.sink.Save(s.snapshotLocked())
}
