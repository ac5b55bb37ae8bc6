package attendance

import (
	"errors"
	"sort"
)

// Status constants for a coach's daily attendance.
const (
	StatusPresent = "present"
	StatusAbsent  = "absent"
)

// Record holds one coach's attendance mark for one day.
type Record struct {
	ID          string
	CoachID     string
	Date        string // YYYY-MM-DD
	Status      string
	ConfirmedBy string
}

// Validate checks if the Record has valid data.
// PRE: Record struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: CoachID and Date must be set, Status must be present or absent
func (r *Record) Validate() error {
	if r.CoachID == "" {
		return errors.New("attendance must be associated with a coach")
	}
	if r.Date == "" {
		return errors.New("attendance date must be set")
	}
	if r.Status != StatusPresent && r.Status != StatusAbsent {
		return errors.New("status must be 'present' or 'absent'")
	}
	return nil
}

// Summary tallies a set of attendance records for the payslip's
// attendance section. Days keeps the individual records so the document
// can show one status chip per day alongside the counts.
type Summary struct {
	Present int
	Absent  int
	Total   int
	Days    []Record // date order, one entry per record
}

// Summarize tallies records into present/absent/total counts and keeps the
// per-day records in date order.
// POST: Total == Present + Absent
// POST: Days holds every input record sorted by Date; the input is not mutated
func Summarize(records []Record) Summary {
	s := Summary{Days: make([]Record, len(records))}
	copy(s.Days, records)
	sort.SliceStable(s.Days, func(i, j int) bool { return s.Days[i].Date < s.Days[j].Date })

	for i := range s.Days {
		switch s.Days[i].Status {
		case StatusPresent:
			s.Present++
		case StatusAbsent:
			s.Absent++
		}
	}
	s.Total = s.Present + s.Absent
	return s
}
