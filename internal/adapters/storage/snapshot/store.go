package snapshot

import (
	"context"

	domain "southpaw/internal/domain/report"
)

// Store persists the report snapshot archive. It deliberately exposes only
// whole-archive load and save: the history is a capped list with no query
// capability, and the append-with-cap rule lives in the domain Archive.
type Store interface {
	Load(ctx context.Context) (domain.Archive, error)
	Save(ctx context.Context, archive domain.Archive) error
}
