package projections

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	earningsStore "southpaw/internal/adapters/storage/earnings"
	"southpaw/internal/domain/coach"
	"southpaw/internal/domain/earnings"
	"southpaw/internal/domain/membership"
	"southpaw/internal/domain/period"
)

type stubCoachStore struct {
	coaches []coach.Coach
	err     error
}

func (s *stubCoachStore) List(ctx context.Context) ([]coach.Coach, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.coaches, nil
}

func dashboardFixture(now time.Time) GetDashboardMetricsDeps {
	future := now.AddDate(1, 0, 0)
	return GetDashboardMetricsDeps{
		CoachStore: &stubCoachStore{coaches: []coach.Coach{
			{ID: "c1", Name: "Mike Chen"},
			{ID: "c2", Name: "Sarah Jones"},
		}},
		EarningsStore: &stubEarningsStore{summaries: map[string]earningsStore.CoachSummary{
			"c1": {
				TotalRevenue: decimal.NewFromInt(2000),
				TotalClasses: 8,
				TotalClients: 15,
				CoachShare:   decimal.NewFromInt(1000),
				Breakdown: []earnings.ClassEarningRecord{
					{ClassName: "Boxing", Date: "2026-08-03", ClientCount: 12, Revenue: decimal.NewFromInt(1500), CoachShare: decimal.NewFromInt(750)},
					{ClassName: "BoxingPackage", Date: "2026-08-10", ClientCount: 3, Revenue: decimal.NewFromInt(500), CoachShare: decimal.NewFromInt(250)},
				},
			},
			"c2": {
				TotalRevenue: decimal.NewFromInt(1000),
				TotalClasses: 4,
				TotalClients: 10,
				CoachShare:   decimal.NewFromInt(500),
				Breakdown: []earnings.ClassEarningRecord{
					{ClassName: "Yoga", Date: "2026-08-05", ClientCount: 10, Revenue: decimal.NewFromInt(1000), CoachShare: decimal.NewFromInt(500)},
				},
			},
		}},
		MembershipStore: &stubMembershipStore{apps: []membership.Application{
			{ID: "a1", Name: "Kai", Status: membership.StatusApproved, SubmittedAt: now.AddDate(0, 0, -3), ExpiresAt: &future},
		}},
	}
}

// TestQueryDashboardMetrics composes the full pipeline: per-coach earnings,
// membership revenue, and the derived KPIs.
func TestQueryDashboardMetrics(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	deps := dashboardFixture(now)

	result, err := QueryDashboardMetrics(context.Background(), GetDashboardMetricsQuery{Period: period.Month, Now: now}, deps)
	if err != nil {
		t.Fatalf("QueryDashboardMetrics failed: %v", err)
	}

	d := result.Dashboard
	if !d.TotalRevenue.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("expected total revenue 3000, got %s", d.TotalRevenue)
	}
	if !d.TotalCoachPayments.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected coach payments 1500, got %s", d.TotalCoachPayments)
	}
	// 3000 - 1500 + 1000 membership revenue.
	if !d.TotalProfit.Equal(decimal.NewFromInt(2500)) {
		t.Errorf("expected profit 2500, got %s", d.TotalProfit)
	}
	if d.ActiveMembers != 1 {
		t.Errorf("expected 1 active member, got %d", d.ActiveMembers)
	}
	if d.TotalClasses != 12 {
		t.Errorf("expected 12 classes, got %d", d.TotalClasses)
	}
	if d.TopCoach != "Mike Chen" {
		t.Errorf("expected top coach Mike Chen, got %q", d.TopCoach)
	}
	// Boxing + BoxingPackage merge to 15 clients, beating Yoga's 10.
	if d.PopularClass != "Boxing" {
		t.Errorf("expected popular class Boxing, got %q", d.PopularClass)
	}
	if d.MembershipUnavailable {
		t.Error("membership was available; flag must be clear")
	}
	if d.RevenueGrowth.Available || d.MembershipGrowth.Available {
		t.Error("growth figures must report unavailable, not a number")
	}
	if len(result.Aggregates) != 2 {
		t.Errorf("expected 2 aggregates, got %d", len(result.Aggregates))
	}
	if len(result.ActiveMemberships) != 1 {
		t.Errorf("expected 1 active membership, got %d", len(result.ActiveMemberships))
	}
	if result.PeriodLabel == "" {
		t.Error("expected a period label")
	}
}

// TestQueryDashboardMetricsMembershipFailure verifies a failed membership
// read still yields a dashboard, flagged rather than zeroed.
func TestQueryDashboardMetricsMembershipFailure(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	deps := dashboardFixture(now)
	deps.MembershipStore = &stubMembershipStore{err: errors.New("membership read failed")}

	result, err := QueryDashboardMetrics(context.Background(), GetDashboardMetricsQuery{Period: period.Month, Now: now}, deps)
	if err != nil {
		t.Fatalf("expected a flagged dashboard, got error: %v", err)
	}

	d := result.Dashboard
	if !d.MembershipUnavailable {
		t.Error("expected the membership-unavailable flag")
	}
	if d.ActiveMembers != 0 {
		t.Errorf("expected no active member count, got %d", d.ActiveMembers)
	}
	// Earnings-only profit: 3000 - 1500.
	if !d.TotalProfit.Equal(decimal.NewFromInt(1500)) {
		t.Errorf("expected earnings-only profit 1500, got %s", d.TotalProfit)
	}
}

// TestQueryDashboardMetricsEarningsFailure verifies a failed earnings read
// aborts the refresh entirely.
func TestQueryDashboardMetricsEarningsFailure(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	deps := dashboardFixture(now)
	deps.EarningsStore = &stubEarningsStore{failFor: "c1"}

	_, err := QueryDashboardMetrics(context.Background(), GetDashboardMetricsQuery{Period: period.Month, Now: now}, deps)
	if err == nil {
		t.Fatal("expected metrics to be unavailable when earnings fail")
	}
}

// TestQueryDashboardMetricsRosterFailure verifies a failed roster read aborts
// the refresh.
func TestQueryDashboardMetricsRosterFailure(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	deps := dashboardFixture(now)
	deps.CoachStore = &stubCoachStore{err: errors.New("roster read failed")}

	_, err := QueryDashboardMetrics(context.Background(), GetDashboardMetricsQuery{Period: period.Month, Now: now}, deps)
	if err == nil {
		t.Fatal("expected an error when the roster read fails")
	}
}

// TestQueryDashboardMetricsInvalidPeriod verifies the period is validated
// before any store read.
func TestQueryDashboardMetricsInvalidPeriod(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	deps := dashboardFixture(now)
	deps.CoachStore = &stubCoachStore{err: errors.New("must not be reached")}

	_, err := QueryDashboardMetrics(context.Background(), GetDashboardMetricsQuery{Period: "decade", Now: now}, deps)
	if !errors.Is(err, period.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

// TestMetricsRefresherSupersedes verifies a slow refresh started before a
// newer one is discarded rather than reported as current.
func TestMetricsRefresherSupersedes(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)

	slowDeps := dashboardFixture(now)
	slowDeps.EarningsStore = &stubEarningsStore{
		summaries: map[string]earningsStore.CoachSummary{},
		delayFor: map[string]time.Duration{
			"c1": 50 * time.Millisecond,
			"c2": 50 * time.Millisecond,
		},
	}
	fastDeps := dashboardFixture(now)

	var r MetricsRefresher
	query := GetDashboardMetricsQuery{Period: period.Month, Now: now}

	type outcome struct {
		current bool
		err     error
	}
	slowDone := make(chan outcome, 1)
	go func() {
		_, current, err := r.Refresh(context.Background(), query, slowDeps)
		slowDone <- outcome{current, err}
	}()

	// Let the slow refresh claim its generation before starting the next.
	time.Sleep(10 * time.Millisecond)

	result, current, err := r.Refresh(context.Background(), query, fastDeps)
	if err != nil {
		t.Fatalf("fast refresh failed: %v", err)
	}
	if !current {
		t.Error("newest refresh must be current")
	}
	if !result.Dashboard.TotalRevenue.Equal(decimal.NewFromInt(3000)) {
		t.Errorf("expected the fast refresh result, got revenue %s", result.Dashboard.TotalRevenue)
	}

	slow := <-slowDone
	if slow.err != nil {
		t.Fatalf("slow refresh failed: %v", slow.err)
	}
	if slow.current {
		t.Error("superseded refresh must not report current")
	}
}
