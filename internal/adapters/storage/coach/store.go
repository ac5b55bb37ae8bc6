package coach

import (
	"context"

	domain "southpaw/internal/domain/coach"
)

// Store persists Coach state. The metrics pipeline treats the roster as
// read-only; Save and Delete exist for the roster-management surface.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Coach, error)
	Save(ctx context.Context, value domain.Coach) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Coach, error)
}
