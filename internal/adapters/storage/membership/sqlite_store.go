package membership

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"southpaw/internal/adapters/storage"
	domain "southpaw/internal/domain/membership"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new membership application store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func parseStoredTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func scanApplication(scan func(dest ...any) error) (domain.Application, error) {
	var entity domain.Application
	var submittedStr string
	var expiresStr sql.NullString
	if err := scan(&entity.ID, &entity.Name, &entity.Email, &entity.Status, &submittedStr, &expiresStr); err != nil {
		return domain.Application{}, err
	}

	submitted, err := parseStoredTime(submittedStr)
	if err != nil {
		return domain.Application{}, fmt.Errorf("failed to parse submitted_at: %w", err)
	}
	entity.SubmittedAt = submitted

	if expiresStr.Valid {
		expires, err := parseStoredTime(expiresStr.String)
		if err != nil {
			return domain.Application{}, fmt.Errorf("failed to parse expires_at: %w", err)
		}
		entity.ExpiresAt = &expires
	}
	return entity, nil
}

// GetByID retrieves an Application by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Application, error) {
	query := "SELECT id, name, email, status, submitted_at, expires_at FROM membership_application WHERE id = ?"

	row := s.db.QueryRowContext(ctx, query, id)
	entity, err := scanApplication(row.Scan)
	if err == sql.ErrNoRows {
		return domain.Application{}, fmt.Errorf("membership application not found: %w", err)
	}
	return entity, err
}

// Save persists an Application to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Application) error {
	query := `INSERT INTO membership_application (id, name, email, status, submitted_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			email=excluded.email,
			status=excluded.status,
			submitted_at=excluded.submitted_at,
			expires_at=excluded.expires_at`

	var expiresVal interface{}
	if entity.ExpiresAt != nil {
		expiresVal = entity.ExpiresAt.Format(time.RFC3339Nano)
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		entity.Email,
		entity.Status,
		entity.SubmittedAt.Format(time.RFC3339Nano),
		expiresVal,
	)
	return err
}

// Delete removes an Application from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM membership_application WHERE id = ?", id)
	return err
}

// List retrieves all membership applications ordered by submission time,
// newest first.
// POST: Returns the full, unfiltered application list
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Application, error) {
	query := "SELECT id, name, email, status, submitted_at, expires_at FROM membership_application ORDER BY submitted_at DESC"

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Application
	for rows.Next() {
		entity, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, entity)
	}
	return results, rows.Err()
}
