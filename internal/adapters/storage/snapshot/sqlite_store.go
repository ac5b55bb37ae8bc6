package snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"southpaw/internal/adapters/storage"
	domain "southpaw/internal/domain/report"
)

// SQLiteStore implements Store using SQLite. Save replaces the whole archive
// in one transaction so a reader never observes a partially written history.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new snapshot archive store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Load retrieves the full archive, newest first.
// POST: Returns the persisted archive; an empty table yields an empty archive
func (s *SQLiteStore) Load(ctx context.Context) (domain.Archive, error) {
	query := `SELECT id, exported_at, period, month_offset,
		total_revenue, total_profit, active_members, total_classes, popular_class
		FROM report_snapshot ORDER BY position`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return domain.Archive{}, err
	}
	defer rows.Close()

	var archive domain.Archive
	for rows.Next() {
		var snap domain.Snapshot
		var exportedStr, revenueStr, profitStr string
		if err := rows.Scan(
			&snap.ID,
			&exportedStr,
			&snap.Period,
			&snap.MonthOffset,
			&revenueStr,
			&profitStr,
			&snap.Data.ActiveMembers,
			&snap.Data.TotalClasses,
			&snap.Data.PopularClass,
		); err != nil {
			return domain.Archive{}, err
		}

		if snap.ExportedAt, err = time.Parse(time.RFC3339Nano, exportedStr); err != nil {
			return domain.Archive{}, fmt.Errorf("failed to parse exported_at: %w", err)
		}
		if snap.Data.TotalRevenue, err = decimal.NewFromString(revenueStr); err != nil {
			return domain.Archive{}, fmt.Errorf("failed to parse total_revenue: %w", err)
		}
		if snap.Data.TotalProfit, err = decimal.NewFromString(profitStr); err != nil {
			return domain.Archive{}, fmt.Errorf("failed to parse total_profit: %w", err)
		}

		archive.Snapshots = append(archive.Snapshots, snap)
	}
	return archive, rows.Err()
}

// Save replaces the persisted archive with the given one.
// PRE: archive is newest-first and within the domain cap
// POST: The table holds exactly the archive's snapshots in order
func (s *SQLiteStore) Save(ctx context.Context, archive domain.Archive) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM report_snapshot"); err != nil {
		return err
	}

	insert := `INSERT INTO report_snapshot
		(id, position, exported_at, period, month_offset,
		 total_revenue, total_profit, active_members, total_classes, popular_class)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	for i, snap := range archive.Snapshots {
		if _, err := tx.ExecContext(ctx, insert,
			snap.ID,
			i,
			snap.ExportedAt.Format(time.RFC3339Nano),
			snap.Period,
			snap.MonthOffset,
			snap.Data.TotalRevenue.String(),
			snap.Data.TotalProfit.String(),
			snap.Data.ActiveMembers,
			snap.Data.TotalClasses,
			snap.Data.PopularClass,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
