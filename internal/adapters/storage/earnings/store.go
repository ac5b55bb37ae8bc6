package earnings

import (
	"context"

	"github.com/shopspring/decimal"

	domain "southpaw/internal/domain/earnings"
)

// CoachSummary is the payroll data service's answer for one coach and one
// date range: totals plus the per-class breakdown behind them. Missing
// numeric fields default to zero.
type CoachSummary struct {
	TotalRevenue decimal.Decimal
	TotalClasses int
	TotalClients int
	CoachShare   decimal.Decimal
	Breakdown    []domain.ClassEarningRecord
}

// Store persists ClassEarningRecord state and answers range-scoped summaries.
type Store interface {
	SaveRecord(ctx context.Context, coachID string, record domain.ClassEarningRecord) error
	ListByCoachAndDateRange(ctx context.Context, coachID string, startDate string, endDate string) ([]domain.ClassEarningRecord, error)
	SummarizeByCoachAndDateRange(ctx context.Context, coachID string, startDate string, endDate string) (CoachSummary, error)
}
