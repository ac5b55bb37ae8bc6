package membership

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func timePtr(t time.Time) *time.Time { return &t }

var testNow = time.Date(2026, time.August, 28, 12, 0, 0, 0, time.Local)

func approvedApp(id string, submitted time.Time, expires time.Time) Application {
	return Application{
		ID:          id,
		Name:        "Member " + id,
		Email:       id + "@example.com",
		Status:      StatusApproved,
		SubmittedAt: submitted,
		ExpiresAt:   timePtr(expires),
	}
}

// TestIsActiveConditions verifies both active-membership conditions are required.
func TestIsActiveConditions(t *testing.T) {
	submitted := testNow.AddDate(0, -1, 0)
	future := testNow.AddDate(0, 6, 0)
	past := testNow.AddDate(0, -1, 0)

	active := approvedApp("a1", submitted, future)
	if !active.IsActive(testNow) {
		t.Error("approved with future expiration must be active")
	}

	expired := approvedApp("a2", submitted, past)
	if expired.IsActive(testNow) {
		t.Error("expired membership must not be active")
	}

	pending := active
	pending.Status = StatusPending
	if pending.IsActive(testNow) {
		t.Error("pending application must not be active")
	}

	noExpiry := active
	noExpiry.ExpiresAt = nil
	if noExpiry.IsActive(testNow) {
		t.Error("approved without expiration must not be active")
	}
}

// TestSummarizeRevenue verifies date scoping, counts, and the rate product.
func TestSummarizeRevenue(t *testing.T) {
	start := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, time.August, 31, 23, 59, 59, 0, time.Local)
	future := testNow.AddDate(1, 0, 0)

	apps := []Application{
		approvedApp("in-range", start.AddDate(0, 0, 4), future),
		approvedApp("also-in-range", start.AddDate(0, 0, 10), future),
		approvedApp("out-of-range", start.AddDate(0, -2, 0), future),
		{ID: "p1", Name: "Pending", Email: "p1@example.com", Status: StatusPending, SubmittedAt: start.AddDate(0, 0, 8)},
		{ID: "r1", Name: "Rejected", Email: "r1@example.com", Status: StatusRejected, SubmittedAt: start.AddDate(0, 0, 9)},
	}

	s := SummarizeRevenue(apps, start, end, DefaultRate, testNow)

	if s.ActiveCount != 2 {
		t.Errorf("expected 2 active, got %d", s.ActiveCount)
	}
	if s.PendingCount != 1 {
		t.Errorf("expected 1 pending, got %d", s.PendingCount)
	}
	if !s.Revenue.Equal(decimal.NewFromInt(2000)) {
		t.Errorf("expected revenue 2000, got %s", s.Revenue)
	}
}

// TestSummarizeRevenuePastSubmissionStillActive verifies active status is
// evaluated at call time: an old submission inside the range window with an
// unexpired membership still counts.
func TestSummarizeRevenuePastSubmissionStillActive(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(2026, time.December, 31, 23, 59, 59, 0, time.Local)

	app := approvedApp("old", start.AddDate(0, 1, 0), testNow.AddDate(0, 3, 0))
	s := SummarizeRevenue([]Application{app}, start, end, DefaultRate, testNow)
	if s.ActiveCount != 1 {
		t.Errorf("unexpired membership submitted months ago must count, got %d", s.ActiveCount)
	}
}

// TestSummarizeRevenueCustomRate verifies the configurable rate input.
func TestSummarizeRevenueCustomRate(t *testing.T) {
	start := testNow.AddDate(0, -1, 0)
	end := testNow.AddDate(0, 1, 0)
	app := approvedApp("a", testNow, testNow.AddDate(1, 0, 0))

	s := SummarizeRevenue([]Application{app}, start, end, decimal.NewFromInt(1250), testNow)
	if !s.Revenue.Equal(decimal.NewFromInt(1250)) {
		t.Errorf("expected revenue 1250 with custom rate, got %s", s.Revenue)
	}
}

// TestFilterActive verifies the report's active-membership table source.
func TestFilterActive(t *testing.T) {
	start := testNow.AddDate(0, -1, 0)
	end := testNow.AddDate(0, 1, 0)

	apps := []Application{
		approvedApp("live", testNow, testNow.AddDate(0, 6, 0)),
		approvedApp("expired", testNow, testNow.AddDate(0, -1, 0)),
		{ID: "p", Name: "P", Email: "p@example.com", Status: StatusPending, SubmittedAt: testNow},
	}

	active := FilterActive(apps, start, end, testNow)
	if len(active) != 1 || active[0].ID != "live" {
		t.Errorf("expected only the live membership, got %+v", active)
	}
}

// TestApplicationValidate verifies field requirements.
func TestApplicationValidate(t *testing.T) {
	app := approvedApp("ok", testNow, testNow.AddDate(1, 0, 0))
	if err := app.Validate(); err != nil {
		t.Errorf("expected valid application, got %v", err)
	}

	badStatus := app
	badStatus.Status = "maybe"
	if err := badStatus.Validate(); err == nil {
		t.Error("expected error for unknown status")
	}

	badEmail := app
	badEmail.Email = "nope"
	if err := badEmail.Validate(); err == nil {
		t.Error("expected error for invalid email")
	}
}
