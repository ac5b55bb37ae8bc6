package payment

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"southpaw/internal/adapters/storage"
	domain "southpaw/internal/domain/payroll"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new payroll payment store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func scanPayment(scan func(dest ...any) error) (domain.PaymentRecord, error) {
	var entity domain.PaymentRecord
	var amountStr string
	if err := scan(&entity.ID, &entity.CoachID, &entity.CoachName, &amountStr, &entity.PaymentDate, &entity.Status); err != nil {
		return domain.PaymentRecord{}, err
	}
	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return domain.PaymentRecord{}, fmt.Errorf("failed to parse stored amount %q: %w", amountStr, err)
	}
	entity.Amount = amount
	return entity, nil
}

// GetByID retrieves a PaymentRecord by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.PaymentRecord, error) {
	query := "SELECT id, coach_id, coach_name, amount, payment_date, status FROM payroll_payment WHERE id = ?"

	row := s.db.QueryRowContext(ctx, query, id)
	entity, err := scanPayment(row.Scan)
	if err == sql.ErrNoRows {
		return domain.PaymentRecord{}, fmt.Errorf("payment not found: %w", err)
	}
	return entity, err
}

// Save persists a PaymentRecord to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.PaymentRecord) error {
	query := `INSERT INTO payroll_payment (id, coach_id, coach_name, amount, payment_date, status)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			coach_id=excluded.coach_id,
			coach_name=excluded.coach_name,
			amount=excluded.amount,
			payment_date=excluded.payment_date,
			status=excluded.status`

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.CoachID,
		entity.CoachName,
		entity.Amount.String(),
		entity.PaymentDate,
		entity.Status,
	)
	return err
}

// List retrieves all payments, newest payment date first.
// POST: Returns the full payment history
func (s *SQLiteStore) List(ctx context.Context) ([]domain.PaymentRecord, error) {
	return s.list(ctx, "SELECT id, coach_id, coach_name, amount, payment_date, status FROM payroll_payment ORDER BY payment_date DESC")
}

// ListByCoachID retrieves one coach's payments, newest payment date first.
// PRE: coachID is non-empty
// POST: Returns the coach's payment history
func (s *SQLiteStore) ListByCoachID(ctx context.Context, coachID string) ([]domain.PaymentRecord, error) {
	return s.list(ctx, "SELECT id, coach_id, coach_name, amount, payment_date, status FROM payroll_payment WHERE coach_id = ? ORDER BY payment_date DESC", coachID)
}

func (s *SQLiteStore) list(ctx context.Context, query string, args ...any) ([]domain.PaymentRecord, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.PaymentRecord
	for rows.Next() {
		entity, err := scanPayment(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
