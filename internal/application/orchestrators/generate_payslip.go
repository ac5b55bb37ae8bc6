package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	earningsStore "southpaw/internal/adapters/storage/earnings"
	"southpaw/internal/domain/attendance"
	"southpaw/internal/domain/coach"
	"southpaw/internal/domain/earnings"
	"southpaw/internal/domain/period"
)

// DefaultPayslipAcknowledgment is the markdown shown above the signature
// lines when no custom text is configured.
const DefaultPayslipAcknowledgment = "I confirm the classes, client counts, and amounts listed above are " +
	"correct and that the **total payment** shown is what I am owed for this period."

// CoachReader resolves a coach by id.
type CoachReader interface {
	GetByID(ctx context.Context, id string) (coach.Coach, error)
}

// PayslipEarningsStore defines the earnings reads needed for a payslip.
type PayslipEarningsStore interface {
	ListByCoachAndDateRange(ctx context.Context, coachID string, startDate string, endDate string) ([]earnings.ClassEarningRecord, error)
	SummarizeByCoachAndDateRange(ctx context.Context, coachID string, startDate string, endDate string) (earningsStore.CoachSummary, error)
}

// PayslipAttendanceStore defines the attendance reads needed for a payslip.
// Optional: a nil store omits the attendance section.
type PayslipAttendanceStore interface {
	ListByCoachIDAndDateRange(ctx context.Context, coachID string, startDate string, endDate string) ([]attendance.Record, error)
}

// GeneratePayslipInput carries input for the payslip orchestrator.
type GeneratePayslipInput struct {
	CoachID        string
	Period         string
	MonthOffset    int
	Acknowledgment string    // markdown; empty uses the default text
	Now            time.Time // optional: if zero, time.Now() is used
}

// GeneratePayslipDeps holds dependencies for GeneratePayslip.
type GeneratePayslipDeps struct {
	CoachStore      CoachReader
	EarningsStore   PayslipEarningsStore
	AttendanceStore PayslipAttendanceStore // nil omits attendance
}

// Payslip is one coach's pay document for one period. The acknowledgment is
// markdown; rendering to HTML happens at the web layer.
type Payslip struct {
	Coach          coach.Coach
	Range          period.Range
	PeriodLabel    string
	GeneratedAt    time.Time
	Breakdown      []earnings.ClassEarningRecord
	TotalClasses   int
	TotalClients   int
	TotalRevenue   decimal.Decimal
	TotalShare     decimal.Decimal
	Attendance     *attendance.Summary // nil when attendance was not requested
	Acknowledgment string
}

// ExecuteGeneratePayslip assembles a coach's payslip for the resolved period.
// PRE: input.CoachID resolves to a stored coach
// POST: TotalShare equals the sum of the breakdown's coach shares
// POST: A coach with no classes in range still gets a payslip with zero totals
func ExecuteGeneratePayslip(ctx context.Context, input GeneratePayslipInput, deps GeneratePayslipDeps) (Payslip, error) {
	if input.CoachID == "" {
		return Payslip{}, errors.New("coach ID cannot be empty")
	}
	now := input.Now
	if now.IsZero() {
		now = time.Now()
	}

	rng, err := period.Resolve(input.Period, input.MonthOffset, now)
	if err != nil {
		return Payslip{}, err
	}

	c, err := deps.CoachStore.GetByID(ctx, input.CoachID)
	if err != nil {
		return Payslip{}, fmt.Errorf("coach not found: %w", err)
	}

	breakdown, err := deps.EarningsStore.ListByCoachAndDateRange(ctx, c.ID, rng.StartDate(), rng.EndDate())
	if err != nil {
		return Payslip{}, err
	}
	summary, err := deps.EarningsStore.SummarizeByCoachAndDateRange(ctx, c.ID, rng.StartDate(), rng.EndDate())
	if err != nil {
		return Payslip{}, err
	}

	ack := input.Acknowledgment
	if ack == "" {
		ack = DefaultPayslipAcknowledgment
	}

	slip := Payslip{
		Coach:          c,
		Range:          rng,
		PeriodLabel:    rng.Label(input.Period),
		GeneratedAt:    now,
		Breakdown:      breakdown,
		TotalClasses:   summary.TotalClasses,
		TotalClients:   summary.TotalClients,
		TotalRevenue:   summary.TotalRevenue,
		TotalShare:     summary.CoachShare,
		Acknowledgment: ack,
	}

	if deps.AttendanceStore != nil {
		records, err := deps.AttendanceStore.ListByCoachIDAndDateRange(ctx, c.ID, rng.StartDate(), rng.EndDate())
		if err != nil {
			return Payslip{}, err
		}
		s := attendance.Summarize(records)
		slip.Attendance = &s
	}

	return slip, nil
}
