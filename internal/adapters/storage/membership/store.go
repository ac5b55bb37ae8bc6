package membership

import (
	"context"

	domain "southpaw/internal/domain/membership"
)

// Store persists MembershipApplication state. List returns the full set;
// date scoping is the metrics core's responsibility, not the store's.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Application, error)
	Save(ctx context.Context, value domain.Application) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]domain.Application, error)
}
