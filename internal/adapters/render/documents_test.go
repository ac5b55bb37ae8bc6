package render

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"southpaw/internal/application/orchestrators"
	"southpaw/internal/application/projections"
	"southpaw/internal/domain/attendance"
	"southpaw/internal/domain/coach"
	"southpaw/internal/domain/earnings"
	"southpaw/internal/domain/membership"
	"southpaw/internal/domain/metrics"
	"southpaw/internal/domain/period"
	"southpaw/internal/domain/report"
)

func metricsResult() projections.GetDashboardMetricsResult {
	expiry := time.Date(2027, time.August, 1, 0, 0, 0, 0, time.UTC)
	return projections.GetDashboardMetricsResult{
		Dashboard: metrics.Dashboard{
			TotalRevenue:       decimal.NewFromInt(3000),
			TotalCoachPayments: decimal.NewFromInt(1500),
			MembershipRevenue:  decimal.NewFromInt(1000),
			TotalProfit:        decimal.NewFromInt(2500),
			ActiveMembers:      1,
			TotalClasses:       12,
			TopCoach:           "Mike Chen",
			PopularClass:       "Boxing",
		},
		Aggregates: []earnings.Aggregate{
			{
				Coach:        coach.Coach{ID: "c1", Name: "Mike Chen"},
				TotalClasses: 8,
				TotalClients: 15,
				TotalRevenue: decimal.NewFromInt(2000),
				CoachShare:   decimal.NewFromInt(1000),
			},
			{
				Coach:        coach.Coach{ID: "c2", Name: "Sarah Jones"},
				TotalClasses: 4,
				TotalClients: 10,
				TotalRevenue: decimal.NewFromInt(1000),
				CoachShare:   decimal.NewFromInt(500),
			},
		},
		ActiveMemberships: []membership.Application{
			{ID: "a1", Name: "Kai Williams", Email: "kai@example.com", Status: membership.StatusApproved,
				SubmittedAt: time.Date(2026, time.August, 12, 0, 0, 0, 0, time.UTC), ExpiresAt: &expiry},
		},
		PeriodLabel: "August 2026",
	}
}

// TestSummaryReportHTML verifies the live report carries KPIs, the coach
// table with tiers, and the membership table.
func TestSummaryReportHTML(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	html, err := SummaryReportHTML(SummaryReportFromLive(metricsResult(), now))
	if err != nil {
		t.Fatalf("SummaryReportHTML failed: %v", err)
	}

	for _, want := range []string{
		"$3000.00", "$1500.00", "$2500.00",
		"Mike Chen", "Boxing", "August 2026",
		"Average", // both coaches are under the Good threshold
		"Kai Williams", "2026-08-12",
		"<svg", // revenue doughnut
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in the report", want)
		}
	}
	if strings.Contains(html, "Archived report") {
		t.Error("a live report must not carry the archived banner")
	}
}

// TestSummaryReportRevenueSummaryTable verifies the reconciliation table lines
// up coach-training revenue, membership revenue, coach payments, and profit.
func TestSummaryReportRevenueSummaryTable(t *testing.T) {
	now := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
	html, err := SummaryReportHTML(SummaryReportFromLive(metricsResult(), now))
	if err != nil {
		t.Fatalf("SummaryReportHTML failed: %v", err)
	}

	for _, want := range []string{
		"Revenue Summary",
		"Coach Training Revenue", "$3000.00",
		"Membership Revenue", "$1000.00",
		"Coach Payments", "$1500.00",
		"Net Profit", "$2500.00",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in the revenue summary, got none", want)
		}
	}
}

// TestSummaryReportFourKPICards verifies the headline row carries exactly the
// four cards; everything else lives in the tables.
func TestSummaryReportFourKPICards(t *testing.T) {
	html, err := SummaryReportHTML(SummaryReportFromLive(metricsResult(), time.Now()))
	if err != nil {
		t.Fatalf("SummaryReportHTML failed: %v", err)
	}
	if got := strings.Count(html, `class="kpi"`); got != 4 {
		t.Errorf("expected 4 KPI cards, got %d", got)
	}
}

// TestSummaryReportMembershipUnavailable verifies membership figures show as
// N/A, never zero.
func TestSummaryReportMembershipUnavailable(t *testing.T) {
	m := metricsResult()
	m.Dashboard.MembershipUnavailable = true
	m.Dashboard.ActiveMembers = 0
	m.ActiveMemberships = nil

	html, err := SummaryReportHTML(SummaryReportFromLive(m, time.Now()))
	if err != nil {
		t.Fatalf("SummaryReportHTML failed: %v", err)
	}
	if !strings.Contains(html, "N/A") {
		t.Error("expected N/A for unavailable membership figures")
	}
	if !strings.Contains(html, "Membership data is currently unavailable") {
		t.Error("expected the membership-unavailable notice")
	}
	if strings.Contains(html, "$0.00") {
		t.Error("unavailable membership revenue must show as N/A, never zero")
	}
}

// TestSummaryReportFromSnapshot verifies the archived view renders the frozen
// numbers with both timestamps and no live-only content.
func TestSummaryReportFromSnapshot(t *testing.T) {
	snap := report.Snapshot{
		ID:         "s1",
		ExportedAt: time.Date(2026, time.July, 31, 18, 0, 0, 0, time.UTC),
		Period:     period.Month,
		Data: report.SnapshotData{
			TotalRevenue:  decimal.RequireFromString("3000.50"),
			TotalProfit:   decimal.RequireFromString("2500.25"),
			ActiveMembers: 4,
			TotalClasses:  12,
			PopularClass:  "Boxing",
		},
	}
	viewedAt := time.Date(2026, time.August, 28, 9, 30, 0, 0, time.UTC)

	html, err := SummaryReportHTML(SummaryReportFromSnapshot(snap, "July 2026", viewedAt))
	if err != nil {
		t.Fatalf("SummaryReportHTML failed: %v", err)
	}

	for _, want := range []string{
		"Archived report",
		"31 Jul 2026 18:00", "28 Aug 2026 09:30",
		"$3000.50", "$2500.25", "Boxing",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in the archived view", want)
		}
	}
	if !strings.Contains(html, "N/A") {
		t.Error("figures the snapshot does not freeze must show as N/A")
	}
}

// TestSummaryReportNotArchivedWarning verifies a failed history write shows
// the warning.
func TestSummaryReportNotArchivedWarning(t *testing.T) {
	result := orchestrators.ExportReportResult{
		Snapshot: report.Snapshot{ExportedAt: time.Now()},
		Metrics:  metricsResult(),
		Archived: false,
	}
	html, err := SummaryReportHTML(SummaryReportFromExport(result))
	if err != nil {
		t.Fatalf("SummaryReportHTML failed: %v", err)
	}
	if !strings.Contains(html, "could not be archived") {
		t.Error("expected the not-archived warning")
	}
}

// TestPayslipHTML verifies the payslip carries the breakdown, totals,
// attendance chips, and rendered acknowledgment markdown.
func TestPayslipHTML(t *testing.T) {
	slip := orchestrators.Payslip{
		Coach:       coach.Coach{Name: "Mike Chen", Email: "mike@example.com"},
		PeriodLabel: "August 2026",
		GeneratedAt: time.Date(2026, time.August, 28, 0, 0, 0, 0, time.UTC),
		Breakdown: []earnings.ClassEarningRecord{
			{ClassName: "Boxing", Date: "2026-08-03", ClientCount: 8, Revenue: decimal.NewFromInt(1200), CoachShare: decimal.NewFromInt(600)},
		},
		TotalClasses:   1,
		TotalClients:   8,
		TotalRevenue:   decimal.NewFromInt(1200),
		TotalShare:     decimal.NewFromInt(600),
		Attendance: &attendance.Summary{
			Present: 2, Absent: 1, Total: 3,
			Days: []attendance.Record{
				{Date: "2026-08-03", Status: attendance.StatusPresent},
				{Date: "2026-08-10", Status: attendance.StatusPresent},
				{Date: "2026-08-12", Status: attendance.StatusAbsent},
			},
		},
		Acknowledgment: "I confirm the **total payment** is correct.",
	}

	html, err := PayslipHTML(PayslipFromSlip(slip))
	if err != nil {
		t.Fatalf("PayslipHTML failed: %v", err)
	}

	for _, want := range []string{
		"Mike Chen", "August 2026",
		"Boxing", "$600.00", "$1200.00",
		"Present: 2", "Absent: 1", "Days: 3",
		`class="chip-present">2026-08-03</span>`, // one chip per day
		`class="chip-present">2026-08-10</span>`,
		`class="chip-absent">2026-08-12</span>`,
		"<strong>total payment</strong>", // markdown rendered
		"Coach signature", "Manager signature",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("expected %q in the payslip", want)
		}
	}
}

// TestPayslipHTMLNoAttendance verifies the chips are omitted without an
// attendance summary.
func TestPayslipHTMLNoAttendance(t *testing.T) {
	slip := orchestrators.Payslip{
		Coach:          coach.Coach{Name: "Mike Chen"},
		PeriodLabel:    "August 2026",
		GeneratedAt:    time.Now(),
		TotalRevenue:   decimal.Zero,
		TotalShare:     decimal.Zero,
		Acknowledgment: "ok",
	}
	html, err := PayslipHTML(PayslipFromSlip(slip))
	if err != nil {
		t.Fatalf("PayslipHTML failed: %v", err)
	}
	if strings.Contains(html, "Present:") {
		t.Error("expected no attendance chips")
	}
	if !strings.Contains(html, "No classes recorded") {
		t.Error("expected the empty-period notice")
	}
}
