package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"southpaw/internal/application/projections"
	"southpaw/internal/domain/report"
)

// SnapshotArchiveStore defines the archive persistence interface needed by
// the export orchestrator. Load and Save move the whole archive.
type SnapshotArchiveStore interface {
	Load(ctx context.Context) (report.Archive, error)
	Save(ctx context.Context, archive report.Archive) error
}

// ExportReportInput carries input for the export orchestrator.
type ExportReportInput struct {
	Period      string
	MonthOffset int
	Rate        decimal.Decimal // membership rate; zero falls back to the default
	Now         time.Time       // optional: if zero, time.Now() is used
}

// ExportReportDeps holds dependencies for ExportReport.
type ExportReportDeps struct {
	CoachStore      projections.DashboardCoachStore
	EarningsStore   projections.EarningsSummaryStore
	MembershipStore projections.MembershipApplicationStore
	SnapshotStore   SnapshotArchiveStore
	GenerateID      func() string // optional: defaults to uuid.NewString
}

// ExportReportResult carries the generated document data plus the archived
// snapshot that froze its headline numbers.
type ExportReportResult struct {
	Snapshot report.Snapshot
	Metrics  projections.GetDashboardMetricsResult

	// Archived is false when the history write failed; the document is
	// still returned, it just is not in the archive.
	Archived bool
}

// ExecuteExportReport generates a summary report from live data and archives
// a snapshot of its headline numbers.
// PRE: input.Period is a valid period selector
// POST: On success the snapshot is the newest archive entry and the archive
// holds at most report.MaxSnapshots entries
// POST: A history-write failure does not fail the export; Archived is false
func ExecuteExportReport(ctx context.Context, input ExportReportInput, deps ExportReportDeps) (ExportReportResult, error) {
	generateID := deps.GenerateID
	if generateID == nil {
		generateID = uuid.NewString
	}
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	metrics, err := projections.QueryDashboardMetrics(ctx, projections.GetDashboardMetricsQuery{
		Period:      input.Period,
		MonthOffset: input.MonthOffset,
		Rate:        input.Rate,
		Now:         now,
	}, projections.GetDashboardMetricsDeps{
		CoachStore:      deps.CoachStore,
		EarningsStore:   deps.EarningsStore,
		MembershipStore: deps.MembershipStore,
	})
	if err != nil {
		return ExportReportResult{}, err
	}

	snap := report.Snapshot{
		ID:          generateID(),
		ExportedAt:  now,
		Period:      input.Period,
		MonthOffset: input.MonthOffset,
		Data: report.SnapshotData{
			TotalRevenue:  metrics.Dashboard.TotalRevenue,
			TotalProfit:   metrics.Dashboard.TotalProfit,
			ActiveMembers: metrics.Dashboard.ActiveMembers,
			TotalClasses:  metrics.Dashboard.TotalClasses,
			PopularClass:  metrics.Dashboard.PopularClass,
		},
	}
	if err := snap.Validate(); err != nil {
		return ExportReportResult{}, err
	}

	result := ExportReportResult{Snapshot: snap, Metrics: metrics}

	archive, err := deps.SnapshotStore.Load(ctx)
	if err != nil {
		slog.Warn("report_event", "event", "history_load_failed", "snapshot_id", snap.ID, "error", err)
		return result, nil
	}
	if err := deps.SnapshotStore.Save(ctx, archive.Append(snap)); err != nil {
		slog.Warn("report_event", "event", "history_save_failed", "snapshot_id", snap.ID, "error", err)
		return result, nil
	}

	result.Archived = true
	slog.Info("report_event", "event", "report_exported", "snapshot_id", snap.ID, "period", input.Period, "month_offset", input.MonthOffset)
	return result, nil
}
