package projections

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"southpaw/internal/domain/membership"
	"southpaw/internal/domain/period"
)

// MembershipApplicationStore defines the membership store interface needed
// by the membership revenue projection. The store returns the full list;
// date scoping happens here.
type MembershipApplicationStore interface {
	List(ctx context.Context) ([]membership.Application, error)
}

// GetMembershipRevenueQuery carries input for the membership revenue projection.
type GetMembershipRevenueQuery struct {
	Range period.Range
	Rate  decimal.Decimal // zero value falls back to membership.DefaultRate
	Now   time.Time       // optional: if zero, time.Now() is used
}

// GetMembershipRevenueResult carries the counts, revenue, and the active
// applications backing them.
type GetMembershipRevenueResult struct {
	Summary membership.RevenueSummary
	Active  []membership.Application
}

// GetMembershipRevenueDeps holds dependencies for the projection.
type GetMembershipRevenueDeps struct {
	MembershipStore MembershipApplicationStore
}

// QueryMembershipRevenue filters applications submitted inside the range and
// derives the membership revenue at the configured rate.
// POST: Summary.Revenue == Summary.ActiveCount x rate
// INVARIANT: active status is evaluated at call time, not submission time
func QueryMembershipRevenue(ctx context.Context, query GetMembershipRevenueQuery, deps GetMembershipRevenueDeps) (GetMembershipRevenueResult, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}
	rate := query.Rate
	if rate.IsZero() {
		rate = membership.DefaultRate
	}

	apps, err := deps.MembershipStore.List(ctx)
	if err != nil {
		return GetMembershipRevenueResult{}, err
	}

	return GetMembershipRevenueResult{
		Summary: membership.SummarizeRevenue(apps, query.Range.Start, query.Range.End, rate, now),
		Active:  membership.FilterActive(apps, query.Range.Start, query.Range.End, now),
	}, nil
}
