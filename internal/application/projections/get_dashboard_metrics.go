package projections

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"

	"southpaw/internal/domain/coach"
	"southpaw/internal/domain/earnings"
	"southpaw/internal/domain/membership"
	"southpaw/internal/domain/metrics"
	"southpaw/internal/domain/period"
)

// DashboardCoachStore defines the roster interface needed by the dashboard
// metrics projection.
type DashboardCoachStore interface {
	List(ctx context.Context) ([]coach.Coach, error)
}

// GetDashboardMetricsQuery carries input for the dashboard metrics projection.
type GetDashboardMetricsQuery struct {
	Period      string // period.Week, period.Month, or period.Year
	MonthOffset int
	Rate        decimal.Decimal // membership rate; zero falls back to the default
	Now         time.Time       // optional: if zero, time.Now() is used
}

// GetDashboardMetricsDeps holds dependencies for the projection.
type GetDashboardMetricsDeps struct {
	CoachStore      DashboardCoachStore
	EarningsStore   EarningsSummaryStore
	MembershipStore MembershipApplicationStore
}

// GetDashboardMetricsResult carries the composed KPIs plus the intermediate
// data the report generator reuses.
type GetDashboardMetricsResult struct {
	Dashboard         metrics.Dashboard
	Aggregates        []earnings.Aggregate
	ActiveMemberships []membership.Application
	Range             period.Range
	PeriodLabel       string
}

// QueryDashboardMetrics resolves the range, aggregates earnings and
// membership, and composes the dashboard KPIs.
// PRE: query.Period is a valid period selector
// POST: A roster or earnings failure aborts the whole refresh; a membership
// failure still yields a dashboard with membership fields flagged unavailable
func QueryDashboardMetrics(ctx context.Context, query GetDashboardMetricsQuery, deps GetDashboardMetricsDeps) (GetDashboardMetricsResult, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now()
	}

	rng, err := period.Resolve(query.Period, query.MonthOffset, now)
	if err != nil {
		return GetDashboardMetricsResult{}, err
	}

	coaches, err := deps.CoachStore.List(ctx)
	if err != nil {
		return GetDashboardMetricsResult{}, fmt.Errorf("metrics unavailable: %w", err)
	}

	aggregates, err := QueryCoachEarnings(ctx, GetCoachEarningsQuery{Coaches: coaches, Range: rng}, GetCoachEarningsDeps{EarningsStore: deps.EarningsStore})
	if err != nil {
		return GetDashboardMetricsResult{}, fmt.Errorf("metrics unavailable: %w", err)
	}

	// Membership is tolerated as a partial failure: the dashboard still
	// composes, with membership-derived fields flagged rather than zeroed.
	membershipAvailable := true
	var ms membership.RevenueSummary
	var active []membership.Application
	mr, err := QueryMembershipRevenue(ctx, GetMembershipRevenueQuery{Range: rng, Rate: query.Rate, Now: now}, GetMembershipRevenueDeps{MembershipStore: deps.MembershipStore})
	if err != nil {
		membershipAvailable = false
	} else {
		ms = mr.Summary
		active = mr.Active
	}

	return GetDashboardMetricsResult{
		Dashboard:         metrics.Compose(aggregates, ms, membershipAvailable),
		Aggregates:        aggregates,
		ActiveMemberships: active,
		Range:             rng,
		PeriodLabel:       rng.Label(query.Period),
	}, nil
}

// MetricsRefresher serializes dashboard refreshes with a monotonically
// increasing generation counter: when a newer refresh starts while an older
// one is in flight, the older result is discarded instead of racing the
// newer one onto the screen.
type MetricsRefresher struct {
	generation atomic.Uint64
}

// Refresh runs the dashboard projection under a new generation. The boolean
// reports whether the result is current; a superseded refresh returns false
// with no error.
// POST: At most one Refresh call per generation reports current==true
func (r *MetricsRefresher) Refresh(ctx context.Context, query GetDashboardMetricsQuery, deps GetDashboardMetricsDeps) (GetDashboardMetricsResult, bool, error) {
	gen := r.generation.Add(1)

	result, err := QueryDashboardMetrics(ctx, query, deps)
	if r.generation.Load() != gen {
		return GetDashboardMetricsResult{}, false, nil
	}
	if err != nil {
		return GetDashboardMetricsResult{}, true, err
	}
	return result, true, nil
}
