package report

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// MaxSnapshots caps the archived history; the oldest entries are dropped.
const MaxSnapshots = 50

// Domain errors.
var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

// SnapshotData is the frozen set of numbers embedded in a snapshot. Later
// re-viewing must reproduce these verbatim, never recompute from live data.
type SnapshotData struct {
	TotalRevenue  decimal.Decimal
	TotalProfit   decimal.Decimal
	ActiveMembers int
	TotalClasses  int
	PopularClass  string
}

// Snapshot is one archived export. Immutable after creation.
type Snapshot struct {
	ID          string
	ExportedAt  time.Time
	Period      string
	MonthOffset int
	Data        SnapshotData
}

// Validate checks if the Snapshot has valid data.
// PRE: Snapshot struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (s *Snapshot) Validate() error {
	if s.ID == "" {
		return errors.New("snapshot id must be set")
	}
	if s.ExportedAt.IsZero() {
		return errors.New("snapshot export time must be set")
	}
	if s.Period == "" {
		return errors.New("snapshot period must be set")
	}
	return nil
}

// Archive is the capped, newest-first snapshot history. It is a value: the
// export operation loads it, appends, and saves the returned copy, so there
// is no hidden shared state.
type Archive struct {
	Snapshots []Snapshot
}

// Append returns a new archive with the snapshot prepended and the history
// trimmed to MaxSnapshots.
// PRE: snap has been validated
// POST: Result is newest-first and never exceeds MaxSnapshots entries
// INVARIANT: The receiver is not mutated
func (a Archive) Append(snap Snapshot) Archive {
	out := make([]Snapshot, 0, len(a.Snapshots)+1)
	out = append(out, snap)
	out = append(out, a.Snapshots...)
	if len(out) > MaxSnapshots {
		out = out[:MaxSnapshots]
	}
	return Archive{Snapshots: out}
}

// Find returns the archived snapshot with the given id.
// POST: Returns ErrSnapshotNotFound when no entry matches
func (a Archive) Find(id string) (Snapshot, error) {
	for _, s := range a.Snapshots {
		if s.ID == id {
			return s, nil
		}
	}
	return Snapshot{}, ErrSnapshotNotFound
}

// Len returns the number of archived snapshots.
func (a Archive) Len() int {
	return len(a.Snapshots)
}
