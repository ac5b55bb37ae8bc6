package projections

import (
	"context"

	"golang.org/x/sync/errgroup"

	earningsStore "southpaw/internal/adapters/storage/earnings"
	"southpaw/internal/domain/coach"
	"southpaw/internal/domain/earnings"
	"southpaw/internal/domain/period"
)

// EarningsSummaryStore defines the earnings store interface needed by the
// coach earnings projection.
type EarningsSummaryStore interface {
	SummarizeByCoachAndDateRange(ctx context.Context, coachID string, startDate string, endDate string) (earningsStore.CoachSummary, error)
}

// GetCoachEarningsQuery carries input for the coach earnings projection.
type GetCoachEarningsQuery struct {
	Coaches []coach.Coach
	Range   period.Range
}

// GetCoachEarningsDeps holds dependencies for the coach earnings projection.
type GetCoachEarningsDeps struct {
	EarningsStore EarningsSummaryStore
}

// QueryCoachEarnings composes each coach's per-period earnings with one
// range-scoped store read per coach. Reads run concurrently and join
// all-or-nothing: a single failed read fails the whole call with no partial
// results, and no read is retried.
// PRE: query.Range is a resolved inclusive range
// POST: Result order matches the input coach order regardless of completion order
func QueryCoachEarnings(ctx context.Context, query GetCoachEarningsQuery, deps GetCoachEarningsDeps) ([]earnings.Aggregate, error) {
	aggregates := make([]earnings.Aggregate, len(query.Coaches))

	g, gctx := errgroup.WithContext(ctx)
	for i, c := range query.Coaches {
		g.Go(func() error {
			summary, err := deps.EarningsStore.SummarizeByCoachAndDateRange(gctx, c.ID, query.Range.StartDate(), query.Range.EndDate())
			if err != nil {
				return err
			}
			aggregates[i] = earnings.Aggregate{
				Coach:          c,
				TotalClasses:   summary.TotalClasses,
				TotalClients:   summary.TotalClients,
				TotalRevenue:   summary.TotalRevenue,
				CoachShare:     summary.CoachShare,
				ClassBreakdown: summary.Breakdown,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return aggregates, nil
}
