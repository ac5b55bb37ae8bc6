package metrics

import (
	"github.com/shopspring/decimal"

	"southpaw/internal/domain/earnings"
	"southpaw/internal/domain/membership"
)

// Performance tier constants for the coach-performance table.
const (
	TierExcellent = "Excellent"
	TierGood      = "Good"
	TierAverage   = "Average"
)

// Tier thresholds on per-coach revenue.
var (
	tierExcellentAbove = decimal.NewFromInt(30000)
	tierGoodAbove      = decimal.NewFromInt(15000)
)

// GrowthFigure is a growth percentage that may not have been computed.
// Prior-period comparison is not implemented; Available stays false until it
// is, and displays must show an explicit placeholder rather than 0%.
type GrowthFigure struct {
	Available bool
	Percent   float64
}

// Dashboard carries the composed top-level KPIs. Fully derived; recomputed
// on every refresh, never persisted.
type Dashboard struct {
	TotalRevenue       decimal.Decimal
	TotalCoachPayments decimal.Decimal
	MembershipRevenue  decimal.Decimal
	TotalProfit        decimal.Decimal
	ActiveMembers      int
	TotalClasses       int
	TopCoach           string // empty when no aggregates
	PopularClass       string // empty when no client counts recorded
	RevenueGrowth      GrowthFigure
	MembershipGrowth   GrowthFigure

	// MembershipUnavailable is set when the membership collaborator failed
	// while earnings succeeded; membership-derived fields must then be shown
	// as N/A, not zero.
	MembershipUnavailable bool
}

// PerformanceTier classifies a coach's revenue for the summary report.
// POST: Returns Excellent above 30000, Good above 15000, Average otherwise
func PerformanceTier(revenue decimal.Decimal) string {
	if revenue.GreaterThan(tierExcellentAbove) {
		return TierExcellent
	}
	if revenue.GreaterThan(tierGoodAbove) {
		return TierGood
	}
	return TierAverage
}

// Compose combines per-coach aggregates and the membership summary into
// dashboard KPIs.
// PRE: aggregates were produced for the same resolved range as the summary
// POST: TotalProfit == TotalRevenue - TotalCoachPayments + membership revenue
// INVARIANT: ties for top coach and popular class resolve to first encounter
func Compose(aggregates []earnings.Aggregate, ms membership.RevenueSummary, membershipAvailable bool) Dashboard {
	d := Dashboard{
		TotalRevenue:          decimal.Zero,
		TotalCoachPayments:    decimal.Zero,
		MembershipRevenue:     decimal.Zero,
		TotalProfit:           decimal.Zero,
		MembershipUnavailable: !membershipAvailable,
	}

	var topRevenue decimal.Decimal
	classClients := make(map[string]int)
	var classOrder []string

	for i := range aggregates {
		agg := &aggregates[i]
		d.TotalRevenue = d.TotalRevenue.Add(agg.TotalRevenue)
		d.TotalCoachPayments = d.TotalCoachPayments.Add(agg.CoachShare)
		d.TotalClasses += agg.TotalClasses

		// First max wins: strictly-greater comparison keeps the earlier coach.
		if d.TopCoach == "" || agg.TotalRevenue.GreaterThan(topRevenue) {
			d.TopCoach = agg.Coach.Name
			topRevenue = agg.TotalRevenue
		}

		for _, rec := range agg.ClassBreakdown {
			name := earnings.BaseClassName(rec.ClassName)
			if name == "" {
				continue
			}
			if _, seen := classClients[name]; !seen {
				classOrder = append(classOrder, name)
			}
			classClients[name] += rec.ClientCount
		}
	}

	best := 0
	for _, name := range classOrder {
		if classClients[name] > best {
			best = classClients[name]
			d.PopularClass = name
		}
	}

	d.TotalProfit = d.TotalRevenue.Sub(d.TotalCoachPayments)
	if membershipAvailable {
		d.ActiveMembers = ms.ActiveCount
		d.MembershipRevenue = ms.Revenue
		d.TotalProfit = d.TotalProfit.Add(ms.Revenue)
	}

	return d
}
