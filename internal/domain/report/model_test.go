package report

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func snapshotWithID(id string, exportedAt time.Time) Snapshot {
	return Snapshot{
		ID:         id,
		ExportedAt: exportedAt,
		Period:     "month",
		Data: SnapshotData{
			TotalRevenue:  decimal.NewFromInt(3000),
			TotalProfit:   decimal.NewFromInt(2500),
			ActiveMembers: 1,
			TotalClasses:  2,
			PopularClass:  "Boxing",
		},
	}
}

// TestArchiveAppendNewestFirst verifies ordering after repeated appends.
func TestArchiveAppendNewestFirst(t *testing.T) {
	var a Archive
	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.Local)
	for i := 0; i < 3; i++ {
		a = a.Append(snapshotWithID(fmt.Sprintf("s%d", i), base.AddDate(0, 0, i)))
	}
	if a.Len() != 3 {
		t.Fatalf("expected 3 snapshots, got %d", a.Len())
	}
	if a.Snapshots[0].ID != "s2" || a.Snapshots[2].ID != "s0" {
		t.Errorf("expected newest first, got %s..%s", a.Snapshots[0].ID, a.Snapshots[2].ID)
	}
}

// TestArchiveCap verifies the history never exceeds MaxSnapshots and drops
// the oldest entries.
func TestArchiveCap(t *testing.T) {
	var a Archive
	base := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local)
	for i := 0; i < MaxSnapshots+10; i++ {
		a = a.Append(snapshotWithID(fmt.Sprintf("s%d", i), base.Add(time.Duration(i)*time.Hour)))
	}
	if a.Len() != MaxSnapshots {
		t.Fatalf("expected %d snapshots, got %d", MaxSnapshots, a.Len())
	}
	if a.Snapshots[0].ID != fmt.Sprintf("s%d", MaxSnapshots+9) {
		t.Errorf("expected newest snapshot first, got %s", a.Snapshots[0].ID)
	}
	if _, err := a.Find("s0"); err != ErrSnapshotNotFound {
		t.Errorf("oldest snapshot should have been dropped, got err=%v", err)
	}
}

// TestArchiveAppendDoesNotMutateReceiver verifies value semantics.
func TestArchiveAppendDoesNotMutateReceiver(t *testing.T) {
	a := Archive{}.Append(snapshotWithID("first", time.Now()))
	_ = a.Append(snapshotWithID("second", time.Now()))
	if a.Len() != 1 {
		t.Errorf("append must not mutate the receiver: len=%d", a.Len())
	}
}

// TestArchiveFindReproducesNumbers verifies a found snapshot carries the
// embedded numbers verbatim.
func TestArchiveFindReproducesNumbers(t *testing.T) {
	snap := snapshotWithID("keep", time.Date(2026, time.August, 10, 9, 0, 0, 0, time.Local))
	a := Archive{}.Append(snap)

	got, err := a.Find("keep")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Data.TotalRevenue.Equal(snap.Data.TotalRevenue) {
		t.Errorf("revenue changed: %s vs %s", got.Data.TotalRevenue, snap.Data.TotalRevenue)
	}
	if got.Data.PopularClass != "Boxing" || got.Data.ActiveMembers != 1 {
		t.Errorf("snapshot data not reproduced verbatim: %+v", got.Data)
	}
}

// TestSnapshotValidate verifies required fields.
func TestSnapshotValidate(t *testing.T) {
	s := snapshotWithID("ok", time.Now())
	if err := s.Validate(); err != nil {
		t.Errorf("expected valid snapshot, got %v", err)
	}
	missing := s
	missing.ID = ""
	if err := missing.Validate(); err == nil {
		t.Error("expected error for missing id")
	}
}
