package attendance

import (
	"context"

	domain "southpaw/internal/domain/attendance"
)

// Store persists coach attendance state.
type Store interface {
	Save(ctx context.Context, value domain.Record) error
	ListByCoachIDAndDateRange(ctx context.Context, coachID string, startDate string, endDate string) ([]domain.Record, error)
}
