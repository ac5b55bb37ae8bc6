package projections

import (
	"context"

	"southpaw/internal/domain/report"
)

// ReportArchiveStore defines the archive read interface for history views.
type ReportArchiveStore interface {
	Load(ctx context.Context) (report.Archive, error)
}

// GetReportHistoryDeps holds dependencies for the history projections.
type GetReportHistoryDeps struct {
	SnapshotStore ReportArchiveStore
}

// QueryReportHistory returns the archived snapshots, newest first.
func QueryReportHistory(ctx context.Context, deps GetReportHistoryDeps) (report.Archive, error) {
	return deps.SnapshotStore.Load(ctx)
}

// QueryArchivedSnapshot returns one archived snapshot by id. Re-viewing an
// archived report renders from these frozen numbers, never from live data.
// POST: Returns report.ErrSnapshotNotFound when no entry matches
func QueryArchivedSnapshot(ctx context.Context, id string, deps GetReportHistoryDeps) (report.Snapshot, error) {
	archive, err := deps.SnapshotStore.Load(ctx)
	if err != nil {
		return report.Snapshot{}, err
	}
	return archive.Find(id)
}
