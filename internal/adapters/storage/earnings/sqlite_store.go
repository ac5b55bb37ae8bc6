package earnings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"southpaw/internal/adapters/storage"
	domain "southpaw/internal/domain/earnings"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new class-earning store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// parseAmount converts a stored TEXT amount, treating NULL or empty as zero.
func parseAmount(s sql.NullString) (decimal.Decimal, error) {
	if !s.Valid || s.String == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s.String)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse stored amount %q: %w", s.String, err)
	}
	return d, nil
}

// SaveRecord persists one class earning record for a coach.
// PRE: record has been validated
// POST: Record is persisted with a generated id
func (s *SQLiteStore) SaveRecord(ctx context.Context, coachID string, record domain.ClassEarningRecord) error {
	query := `INSERT INTO class_earning
		(id, coach_id, class_name, class_date, client_count, revenue, coach_share)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		uuid.New().String(),
		coachID,
		record.ClassName,
		record.Date,
		record.ClientCount,
		record.Revenue.String(),
		record.CoachShare.String(),
	)
	return err
}

// ListByCoachAndDateRange retrieves the breakdown rows for one coach inside
// an inclusive date range.
// PRE: startDate and endDate are YYYY-MM-DD strings
// POST: Returns records ordered by class date
func (s *SQLiteStore) ListByCoachAndDateRange(ctx context.Context, coachID string, startDate string, endDate string) ([]domain.ClassEarningRecord, error) {
	query := `SELECT class_name, class_date, client_count, revenue, coach_share
		FROM class_earning
		WHERE coach_id = ? AND class_date >= ? AND class_date <= ?
		ORDER BY class_date, class_name`

	rows, err := s.db.QueryContext(ctx, query, coachID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.ClassEarningRecord
	for rows.Next() {
		var entity domain.ClassEarningRecord
		var clientCount sql.NullInt64
		var revenue, share sql.NullString
		if err := rows.Scan(&entity.ClassName, &entity.Date, &clientCount, &revenue, &share); err != nil {
			return nil, err
		}
		if clientCount.Valid {
			entity.ClientCount = int(clientCount.Int64)
		}
		if entity.Revenue, err = parseAmount(revenue); err != nil {
			return nil, err
		}
		if entity.CoachShare, err = parseAmount(share); err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}

// SummarizeByCoachAndDateRange answers the per-coach earnings read: totals
// plus the breakdown for the inclusive range.
// PRE: startDate and endDate are YYYY-MM-DD strings
// POST: Totals equal the sums over the returned breakdown; a coach with no
// records in range yields an all-zero summary
func (s *SQLiteStore) SummarizeByCoachAndDateRange(ctx context.Context, coachID string, startDate string, endDate string) (CoachSummary, error) {
	breakdown, err := s.ListByCoachAndDateRange(ctx, coachID, startDate, endDate)
	if err != nil {
		return CoachSummary{}, err
	}

	summary := CoachSummary{
		TotalRevenue: decimal.Zero,
		CoachShare:   decimal.Zero,
		Breakdown:    breakdown,
		TotalClasses: len(breakdown),
	}
	for _, r := range breakdown {
		summary.TotalClients += r.ClientCount
		summary.TotalRevenue = summary.TotalRevenue.Add(r.Revenue)
		summary.CoachShare = summary.CoachShare.Add(r.CoachShare)
	}
	return summary, nil
}
