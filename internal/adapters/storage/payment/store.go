package payment

import (
	"context"

	domain "southpaw/internal/domain/payroll"
)

// Store persists PayrollPaymentRecord state. Records are written when a
// payment is entered and read back for history listing and payslip reprints.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.PaymentRecord, error)
	Save(ctx context.Context, value domain.PaymentRecord) error
	List(ctx context.Context) ([]domain.PaymentRecord, error)
	ListByCoachID(ctx context.Context, coachID string) ([]domain.PaymentRecord, error)
}
