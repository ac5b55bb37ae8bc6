package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"southpaw/internal/domain/attendance"
	"southpaw/internal/domain/coach"
	"southpaw/internal/domain/earnings"
	"southpaw/internal/domain/membership"
	"southpaw/internal/domain/payroll"
)

// DemoSeedDeps holds all stores needed for demo data seeding.
type DemoSeedDeps struct {
	CoachStore      seedCoachStore
	EarningsStore   seedEarningsStore
	MembershipStore seedMembershipStore
	AttendanceStore seedAttendanceStore
	PaymentStore    seedPaymentStore
}

type seedCoachStore interface {
	Save(ctx context.Context, value coach.Coach) error
	List(ctx context.Context) ([]coach.Coach, error)
}
type seedEarningsStore interface {
	SaveRecord(ctx context.Context, coachID string, record earnings.ClassEarningRecord) error
}
type seedMembershipStore interface {
	Save(ctx context.Context, value membership.Application) error
}
type seedAttendanceStore interface {
	Save(ctx context.Context, value attendance.Record) error
}
type seedPaymentStore interface {
	Save(ctx context.Context, value payroll.PaymentRecord) error
}

// ExecuteSeedDemo populates an empty database with a small realistic data
// set for local development. Idempotent: if any coach already exists the
// seed is skipped entirely.
// POST: Either the full demo set is written or nothing is
func ExecuteSeedDemo(ctx context.Context, deps DemoSeedDeps, now time.Time) error {
	existing, err := deps.CoachStore.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		slog.Info("seed_event", "event", "seed_skipped", "reason", "coaches exist", "count", len(existing))
		return nil
	}

	coaches := []coach.Coach{
		{ID: uuid.NewString(), Name: "Mike Chen", Email: "mike@example.com", Specialties: []string{"Boxing", "Kickboxing"}, Belt: coach.BeltBlack},
		{ID: uuid.NewString(), Name: "Sarah Jones", Email: "sarah@example.com", Specialties: []string{"BJJ"}, Belt: coach.BeltBrown},
		{ID: uuid.NewString(), Name: "Joe Makea", Email: "joe@example.com", Specialties: []string{"Muay Thai", "Boxing"}, Belt: coach.BeltPurple},
	}
	for i := range coaches {
		if err := deps.CoachStore.Save(ctx, coaches[i]); err != nil {
			return err
		}
	}

	// A month of classes spread across the roster. Coach share is half of
	// class revenue.
	type classSeed struct {
		coachIdx int
		name     string
		daysAgo  int
		clients  int
		revenue  int64
	}
	classSeeds := []classSeed{
		{0, "Boxing", 3, 10, 1200},
		{0, "Boxing", 10, 8, 960},
		{0, "BoxingPackage", 6, 4, 1600},
		{0, "Kickboxing", 14, 6, 720},
		{1, "BJJ", 2, 12, 1440},
		{1, "BJJ", 9, 9, 1080},
		{1, "BJJPackage", 16, 3, 1200},
		{2, "Muay Thai", 5, 7, 840},
		{2, "Muay Thai", 12, 5, 600},
	}
	for _, s := range classSeeds {
		revenue := decimal.NewFromInt(s.revenue)
		rec := earnings.ClassEarningRecord{
			ClassName:   s.name,
			Date:        now.AddDate(0, 0, -s.daysAgo).Format("2006-01-02"),
			ClientCount: s.clients,
			Revenue:     revenue,
			CoachShare:  revenue.Mul(earnings.CoachShareRate),
		}
		if err := deps.EarningsStore.SaveRecord(ctx, coaches[s.coachIdx].ID, rec); err != nil {
			return err
		}
	}

	expiry := now.AddDate(1, 0, 0)
	applications := []membership.Application{
		{ID: uuid.NewString(), Name: "Kai Williams", Email: "kai@example.com", Status: membership.StatusApproved, SubmittedAt: now.AddDate(0, 0, -4), ExpiresAt: &expiry},
		{ID: uuid.NewString(), Name: "Moana Parata", Email: "moana@example.com", Status: membership.StatusApproved, SubmittedAt: now.AddDate(0, 0, -11), ExpiresAt: &expiry},
		{ID: uuid.NewString(), Name: "Rex Hohepa", Email: "rex@example.com", Status: membership.StatusPending, SubmittedAt: now.AddDate(0, 0, -1)},
	}
	for i := range applications {
		if err := deps.MembershipStore.Save(ctx, applications[i]); err != nil {
			return err
		}
	}

	for _, s := range classSeeds {
		rec := attendance.Record{
			ID:          uuid.NewString(),
			CoachID:     coaches[s.coachIdx].ID,
			Date:        now.AddDate(0, 0, -s.daysAgo).Format("2006-01-02"),
			Status:      attendance.StatusPresent,
			ConfirmedBy: "seed",
		}
		if err := deps.AttendanceStore.Save(ctx, rec); err != nil {
			return err
		}
	}

	payment := payroll.PaymentRecord{
		ID:          uuid.NewString(),
		CoachID:     coaches[0].ID,
		CoachName:   coaches[0].Name,
		Amount:      decimal.NewFromInt(2240),
		PaymentDate: now.AddDate(0, 0, -30).Format("2006-01-02"),
		Status:      payroll.StatusPaid,
	}
	if err := deps.PaymentStore.Save(ctx, payment); err != nil {
		return err
	}

	slog.Info("seed_event", "event", "seed_completed", "coaches", len(coaches), "classes", len(classSeeds), "applications", len(applications))
	return nil
}
