package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"southpaw/internal/domain/payroll"
)

// PaymentWriter persists payroll payment records.
type PaymentWriter interface {
	Save(ctx context.Context, value payroll.PaymentRecord) error
}

// RecordPaymentInput carries input for the record payment orchestrator.
type RecordPaymentInput struct {
	CoachID     string
	Amount      decimal.Decimal
	PaymentDate string // YYYY-MM-DD; empty uses today
	Status      string // empty defaults to paid
}

// RecordPaymentDeps holds dependencies for RecordPayment.
type RecordPaymentDeps struct {
	CoachStore   CoachReader
	PaymentStore PaymentWriter
	GenerateID   func() string   // optional: defaults to uuid.NewString
	Now          func() time.Time // optional: defaults to time.Now
}

// ExecuteRecordPayment records one processed payroll payment for a coach.
// PRE: CoachID resolves to a stored coach, Amount is non-negative
// POST: Payment record persisted with the coach's current name denormalized
func ExecuteRecordPayment(ctx context.Context, input RecordPaymentInput, deps RecordPaymentDeps) (payroll.PaymentRecord, error) {
	if input.CoachID == "" {
		return payroll.PaymentRecord{}, errors.New("coach ID cannot be empty")
	}
	generateID := deps.GenerateID
	if generateID == nil {
		generateID = uuid.NewString
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	c, err := deps.CoachStore.GetByID(ctx, input.CoachID)
	if err != nil {
		return payroll.PaymentRecord{}, fmt.Errorf("coach not found: %w", err)
	}

	status := input.Status
	if status == "" {
		status = payroll.StatusPaid
	}
	paymentDate := input.PaymentDate
	if paymentDate == "" {
		paymentDate = now().Format("2006-01-02")
	}

	rec := payroll.PaymentRecord{
		ID:          generateID(),
		CoachID:     c.ID,
		CoachName:   c.Name,
		Amount:      input.Amount,
		PaymentDate: paymentDate,
		Status:      status,
	}
	if err := rec.Validate(); err != nil {
		return payroll.PaymentRecord{}, err
	}

	if err := deps.PaymentStore.Save(ctx, rec); err != nil {
		return payroll.PaymentRecord{}, err
	}

	slog.Info("payroll_event", "event", "payment_recorded", "payment_id", rec.ID, "coach_id", rec.CoachID, "amount", rec.Amount.String(), "status", rec.Status)
	return rec, nil
}
