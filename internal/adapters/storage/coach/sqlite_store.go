package coach

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"southpaw/internal/adapters/storage"
	domain "southpaw/internal/domain/coach"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db storage.SQLDB
}

// NewSQLiteStore creates a new coach store.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// specialty lists are stored as a comma-separated TEXT column.
func joinSpecialties(s []string) string {
	return strings.Join(s, ",")
}

func splitSpecialties(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// GetByID retrieves a Coach by its ID.
// PRE: id is non-empty
// POST: Returns the entity or an error if not found
func (s *SQLiteStore) GetByID(ctx context.Context, id string) (domain.Coach, error) {
	query := "SELECT id, name, email, specialties, belt FROM coach WHERE id = ?"

	row := s.db.QueryRowContext(ctx, query, id)

	var entity domain.Coach
	var email sql.NullString
	var specialties string
	err := row.Scan(&entity.ID, &entity.Name, &email, &specialties, &entity.Belt)
	if err == sql.ErrNoRows {
		return domain.Coach{}, fmt.Errorf("coach not found: %w", err)
	}
	if err != nil {
		return domain.Coach{}, err
	}
	if email.Valid {
		entity.Email = email.String
	}
	entity.Specialties = splitSpecialties(specialties)
	return entity, nil
}

// Save persists a Coach to the database.
// PRE: entity has been validated
// POST: Entity is persisted (insert or update)
func (s *SQLiteStore) Save(ctx context.Context, entity domain.Coach) error {
	query := `INSERT INTO coach (id, name, email, specialties, belt)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name=excluded.name,
			email=excluded.email,
			specialties=excluded.specialties,
			belt=excluded.belt`

	var emailVal interface{}
	if entity.Email != "" {
		emailVal = entity.Email
	}

	_, err := s.db.ExecContext(ctx, query,
		entity.ID,
		entity.Name,
		emailVal,
		joinSpecialties(entity.Specialties),
		entity.Belt,
	)
	return err
}

// Delete removes a Coach from the database.
// PRE: id is non-empty
// POST: Entity with given id is removed
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM coach WHERE id = ?", id)
	return err
}

// List retrieves all coaches ordered by name.
// POST: Returns the full roster
func (s *SQLiteStore) List(ctx context.Context) ([]domain.Coach, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, name, email, specialties, belt FROM coach ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Coach
	for rows.Next() {
		var entity domain.Coach
		var email sql.NullString
		var specialties string
		if err := rows.Scan(&entity.ID, &entity.Name, &email, &specialties, &entity.Belt); err != nil {
			return nil, err
		}
		if email.Valid {
			entity.Email = email.String
		}
		entity.Specialties = splitSpecialties(specialties)
		results = append(results, entity)
	}
	return results, rows.Err()
}
