package attendance

import (
	"context"
	"database/sql"

	"southpaw/internal/adapters/storage"
	domain "southpaw/internal/domain/attendance"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new coach attendance store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Save persists a Record to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Record) error {
	query := `INSERT INTO coach_attendance (id, coach_id, class_date, status, confirmed_by)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			coach_id=excluded.coach_id,
			class_date=excluded.class_date,
			status=excluded.status,
			confirmed_by=excluded.confirmed_by`

	var confirmedVal interface{}
	if entity.ConfirmedBy != "" {
		confirmedVal = entity.ConfirmedBy
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.CoachID,
		entity.Date,
		entity.Status,
		confirmedVal,
	)
	return err
}

// ListByCoachIDAndDateRange retrieves one coach's attendance marks inside an
// inclusive date range, oldest first.
// PRE: startDate and endDate are YYYY-MM-DD strings
// POST: Returns matching records ordered by date
func (s *SQLiteStore) ListByCoachIDAndDateRange(ctx context.Context, coachID string, startDate string, endDate string) ([]domain.Record, error) {
	query := `SELECT id, coach_id, class_date, status, confirmed_by
		FROM coach_attendance
		WHERE coach_id = ? AND class_date >= ? AND class_date <= ?
		ORDER BY class_date`

	rows, err := s.db.QueryContext(ctx, query, coachID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Record
	for rows.Next() {
		var entity domain.Record
		var confirmedBy sql.NullString
		if err := rows.Scan(&entity.ID, &entity.CoachID, &entity.Date, &entity.Status, &confirmedBy); err != nil {
			return nil, err
		}
		if confirmedBy.Valid {
			entity.ConfirmedBy = confirmedBy.String
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
