package membership

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status constants for membership applications.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// DefaultRate is the per-membership revenue used when no rate is configured.
// The broader system exposes a configurable rate elsewhere; callers may
// override it, this literal is the observed business default.
var DefaultRate = decimal.NewFromInt(1000)

// Application holds state for the concept.
type Application struct {
	ID          string
	Name        string
	Email       string
	Status      string
	SubmittedAt time.Time
	ExpiresAt   *time.Time // set on approval
}

// Validate checks if the Application has valid data.
// PRE: Application struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name must not be empty, Status must be a known status
func (a *Application) Validate() error {
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("applicant name cannot be empty")
	}
	if !strings.Contains(a.Email, "@") {
		return errors.New("applicant email must be valid")
	}
	if a.Status != StatusPending && a.Status != StatusApproved && a.Status != StatusRejected {
		return errors.New("status must be 'pending', 'approved', or 'rejected'")
	}
	if a.SubmittedAt.IsZero() {
		return errors.New("submitted date must be set")
	}
	return nil
}

// IsActive reports whether the application represents a live membership:
// approved with an expiration date still in the future, evaluated at the
// given instant.
// INVARIANT: Application fields are not mutated
func (a *Application) IsActive(now time.Time) bool {
	return a.Status == StatusApproved && a.ExpiresAt != nil && a.ExpiresAt.After(now)
}

// IsPending reports whether the application awaits a decision.
func (a *Application) IsPending() bool {
	return a.Status == StatusPending
}

// RevenueSummary carries the date-scoped membership counts and derived revenue.
type RevenueSummary struct {
	ActiveCount  int
	PendingCount int
	Revenue      decimal.Decimal
}

// SummarizeRevenue filters applications submitted inside [start, end] and
// derives the membership revenue.
// PRE: rate is a non-negative per-membership amount
// POST: Revenue == ActiveCount x rate; pending applications add no revenue
// INVARIANT: active status is evaluated against now, not the submission time
func SummarizeRevenue(apps []Application, start, end time.Time, rate decimal.Decimal, now time.Time) RevenueSummary {
	summary := RevenueSummary{Revenue: decimal.Zero}
	for i := range apps {
		a := &apps[i]
		if a.SubmittedAt.Before(start) || a.SubmittedAt.After(end) {
			continue
		}
		if a.IsActive(now) {
			summary.ActiveCount++
		}
		if a.IsPending() {
			summary.PendingCount++
		}
	}
	summary.Revenue = rate.Mul(decimal.NewFromInt(int64(summary.ActiveCount)))
	return summary
}

// FilterActive returns the applications counted as live memberships, for the
// summary report's active-membership table.
func FilterActive(apps []Application, start, end time.Time, now time.Time) []Application {
	var out []Application
	for i := range apps {
		a := apps[i]
		if a.SubmittedAt.Before(start) || a.SubmittedAt.After(end) {
			continue
		}
		if a.IsActive(now) {
			out = append(out, a)
		}
	}
	return out
}
