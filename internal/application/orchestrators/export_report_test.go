package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	earningsStore "southpaw/internal/adapters/storage/earnings"
	"southpaw/internal/domain/coach"
	"southpaw/internal/domain/earnings"
	"southpaw/internal/domain/membership"
	"southpaw/internal/domain/period"
	"southpaw/internal/domain/report"
)

type stubCoachStore struct {
	coaches []coach.Coach
	err     error
}

func (s *stubCoachStore) List(ctx context.Context) ([]coach.Coach, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.coaches, nil
}

func (s *stubCoachStore) GetByID(ctx context.Context, id string) (coach.Coach, error) {
	for _, c := range s.coaches {
		if c.ID == id {
			return c, nil
		}
	}
	return coach.Coach{}, errors.New("coach not found")
}

type stubEarningsStore struct {
	summaries map[string]earningsStore.CoachSummary
	records   map[string][]earnings.ClassEarningRecord
	err       error
}

func (s *stubEarningsStore) SummarizeByCoachAndDateRange(ctx context.Context, coachID string, startDate string, endDate string) (earningsStore.CoachSummary, error) {
	if s.err != nil {
		return earningsStore.CoachSummary{}, s.err
	}
	return s.summaries[coachID], nil
}

func (s *stubEarningsStore) ListByCoachAndDateRange(ctx context.Context, coachID string, startDate string, endDate string) ([]earnings.ClassEarningRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.records[coachID], nil
}

type stubMembershipStore struct {
	apps []membership.Application
	err  error
}

func (s *stubMembershipStore) List(ctx context.Context) ([]membership.Application, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.apps, nil
}

type memorySnapshotStore struct {
	archive report.Archive
	loadErr error
	saveErr error
	saves   int
}

func (s *memorySnapshotStore) Load(ctx context.Context) (report.Archive, error) {
	if s.loadErr != nil {
		return report.Archive{}, s.loadErr
	}
	return s.archive, nil
}

func (s *memorySnapshotStore) Save(ctx context.Context, archive report.Archive) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.archive = archive
	s.saves++
	return nil
}

func exportFixture(now time.Time) ExportReportDeps {
	future := now.AddDate(1, 0, 0)
	return ExportReportDeps{
		CoachStore: &stubCoachStore{coaches: []coach.Coach{{ID: "c1", Name: "Mike Chen"}}},
		EarningsStore: &stubEarningsStore{summaries: map[string]earningsStore.CoachSummary{
			"c1": {
				TotalRevenue: decimal.NewFromInt(2000),
				TotalClasses: 8,
				TotalClients: 15,
				CoachShare:   decimal.NewFromInt(1000),
				Breakdown: []earnings.ClassEarningRecord{
					{ClassName: "Boxing", Date: now.Format("2006-01-02"), ClientCount: 15, Revenue: decimal.NewFromInt(2000), CoachShare: decimal.NewFromInt(1000)},
				},
			},
		}},
		MembershipStore: &stubMembershipStore{apps: []membership.Application{
			{ID: "a1", Name: "Kai", Status: membership.StatusApproved, SubmittedAt: now.AddDate(0, 0, -2), ExpiresAt: &future},
		}},
		SnapshotStore: &memorySnapshotStore{},
	}
}

// TestExecuteExportReport verifies the snapshot freezes the headline numbers
// and lands newest-first in the archive.
func TestExecuteExportReport(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	deps := exportFixture(now)
	store := deps.SnapshotStore.(*memorySnapshotStore)

	result, err := ExecuteExportReport(context.Background(), ExportReportInput{Period: period.Month, Now: now}, deps)
	if err != nil {
		t.Fatalf("ExecuteExportReport failed: %v", err)
	}

	if !result.Archived {
		t.Error("expected the snapshot to be archived")
	}
	if result.Snapshot.ID == "" {
		t.Error("expected a generated snapshot id")
	}
	if !result.Snapshot.Data.TotalRevenue.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected frozen revenue 2000, got %s", result.Snapshot.Data.TotalRevenue)
	}
	// 2000 - 1000 + 1000 membership revenue.
	if !result.Snapshot.Data.TotalProfit.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected frozen profit 2000, got %s", result.Snapshot.Data.TotalProfit)
	}
	if result.Snapshot.Data.ActiveMembers != 1 || result.Snapshot.Data.TotalClasses != 8 {
		t.Errorf("snapshot data wrong: %+v", result.Snapshot.Data)
	}
	if result.Snapshot.Data.PopularClass != "Boxing" {
		t.Errorf("expected popular class Boxing, got %q", result.Snapshot.Data.PopularClass)
	}
	if store.archive.Len() != 1 || store.archive.Snapshots[0].ID != result.Snapshot.ID {
		t.Errorf("expected the snapshot as the newest archive entry, got %+v", store.archive.Snapshots)
	}
}

// TestExecuteExportReportNewestFirstAndCapped verifies repeated exports keep
// the archive newest-first and capped.
func TestExecuteExportReportNewestFirstAndCapped(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	deps := exportFixture(now)
	store := deps.SnapshotStore.(*memorySnapshotStore)

	var lastID string
	for i := 0; i < report.MaxSnapshots+5; i++ {
		deps.GenerateID = func() string { return fmt.Sprintf("snap-%d", i) }
		result, err := ExecuteExportReport(context.Background(), ExportReportInput{Period: period.Month, Now: now.Add(time.Duration(i) * time.Minute)}, deps)
		if err != nil {
			t.Fatalf("export %d failed: %v", i, err)
		}
		lastID = result.Snapshot.ID
	}

	if store.archive.Len() != report.MaxSnapshots {
		t.Errorf("expected archive capped at %d, got %d", report.MaxSnapshots, store.archive.Len())
	}
	if store.archive.Snapshots[0].ID != lastID {
		t.Errorf("expected newest snapshot first, got %s", store.archive.Snapshots[0].ID)
	}
	if store.archive.Snapshots[0].ID != "snap-54" || store.archive.Snapshots[report.MaxSnapshots-1].ID != "snap-5" {
		t.Errorf("expected the oldest exports dropped, got %s .. %s", store.archive.Snapshots[0].ID, store.archive.Snapshots[report.MaxSnapshots-1].ID)
	}
}

// TestExecuteExportReportHistoryWriteFailure verifies a failed archive write
// still returns the document, flagged as not archived.
func TestExecuteExportReportHistoryWriteFailure(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	deps := exportFixture(now)
	deps.SnapshotStore.(*memorySnapshotStore).saveErr = errors.New("disk full")

	result, err := ExecuteExportReport(context.Background(), ExportReportInput{Period: period.Month, Now: now}, deps)
	if err != nil {
		t.Fatalf("expected the document despite the archive failure, got %v", err)
	}
	if result.Archived {
		t.Error("expected Archived=false after a failed history write")
	}
	if !result.Snapshot.Data.TotalRevenue.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected the document data intact, got %s", result.Snapshot.Data.TotalRevenue)
	}
}

// TestExecuteExportReportMetricsFailure verifies an earnings failure aborts
// the export with no archive write.
func TestExecuteExportReportMetricsFailure(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	deps := exportFixture(now)
	deps.EarningsStore = &stubEarningsStore{err: errors.New("earnings read failed")}
	store := deps.SnapshotStore.(*memorySnapshotStore)

	_, err := ExecuteExportReport(context.Background(), ExportReportInput{Period: period.Month, Now: now}, deps)
	if err == nil {
		t.Fatal("expected an error when metrics cannot be computed")
	}
	if store.saves != 0 {
		t.Errorf("expected no archive write, got %d", store.saves)
	}
}
