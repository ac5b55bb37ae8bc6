package earnings

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"southpaw/internal/domain/coach"
)

// CoachShareRate is the fraction of class revenue attributed to the
// instructor rather than the business.
var CoachShareRate = decimal.NewFromFloat(0.5)

// reconcileTolerance absorbs rounding drift when checking totals.
var reconcileTolerance = decimal.NewFromFloat(0.01)

// ClassEarningRecord is one class session's earnings for one coach.
// Immutable once issued by the payroll data service.
type ClassEarningRecord struct {
	ClassName   string
	Date        string // YYYY-MM-DD
	ClientCount int
	Revenue     decimal.Decimal
	CoachShare  decimal.Decimal
}

// Validate checks if the ClassEarningRecord has valid data.
// PRE: ClassEarningRecord struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: ClassName and Date must be set, amounts must be non-negative
func (r *ClassEarningRecord) Validate() error {
	if strings.TrimSpace(r.ClassName) == "" {
		return errors.New("class name cannot be empty")
	}
	if r.Date == "" {
		return errors.New("class date must be set")
	}
	if r.ClientCount < 0 {
		return errors.New("client count cannot be negative")
	}
	if r.Revenue.IsNegative() {
		return errors.New("revenue cannot be negative")
	}
	if r.CoachShare.IsNegative() {
		return errors.New("coach share cannot be negative")
	}
	return nil
}

// BaseClassName strips a trailing "Package" marker so package sales and
// regular sessions of the same class aggregate under one name.
func BaseClassName(name string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), "Package"))
}

// Aggregate is one coach's earnings over a resolved range. Derived, never
// persisted; recomputed on every dashboard refresh.
type Aggregate struct {
	Coach          coach.Coach
	TotalClasses   int
	TotalClients   int
	TotalRevenue   decimal.Decimal
	CoachShare     decimal.Decimal
	ClassBreakdown []ClassEarningRecord
}

// FromBreakdown builds an Aggregate whose totals are the sums of the
// breakdown rows.
// PRE: breakdown rows have been validated
// POST: TotalRevenue and CoachShare equal the breakdown sums
func FromBreakdown(c coach.Coach, breakdown []ClassEarningRecord) Aggregate {
	agg := Aggregate{
		Coach:          c,
		TotalClasses:   len(breakdown),
		TotalRevenue:   decimal.Zero,
		CoachShare:     decimal.Zero,
		ClassBreakdown: breakdown,
	}
	for _, r := range breakdown {
		agg.TotalClients += r.ClientCount
		agg.TotalRevenue = agg.TotalRevenue.Add(r.Revenue)
		agg.CoachShare = agg.CoachShare.Add(r.CoachShare)
	}
	return agg
}

// Reconcile checks the aggregate's totals against its breakdown.
// PRE: Aggregate is initialized
// POST: Returns error when totals drift from the breakdown sums beyond
// rounding tolerance, nil otherwise
// INVARIANT: TotalRevenue == sum(breakdown revenue), CoachShare == sum(breakdown share)
func (a *Aggregate) Reconcile() error {
	sumRevenue := decimal.Zero
	sumShare := decimal.Zero
	for _, r := range a.ClassBreakdown {
		sumRevenue = sumRevenue.Add(r.Revenue)
		sumShare = sumShare.Add(r.CoachShare)
	}
	if a.TotalRevenue.Sub(sumRevenue).Abs().GreaterThan(reconcileTolerance) {
		return errors.New("total revenue does not match breakdown sum")
	}
	if a.CoachShare.Sub(sumShare).Abs().GreaterThan(reconcileTolerance) {
		return errors.New("coach share does not match breakdown sum")
	}
	return nil
}

// GymShare returns the portion of the aggregate revenue retained by the gym.
func (a *Aggregate) GymShare() decimal.Decimal {
	return a.TotalRevenue.Sub(a.CoachShare)
}
