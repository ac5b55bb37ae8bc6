package payroll

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Status constants for payment lifecycle.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
)

// PaymentRecord is one processed payroll payment for a coach. Written when a
// payment is entered; read back for historical listing and payslip reprints.
type PaymentRecord struct {
	ID          string
	CoachID     string
	CoachName   string
	Amount      decimal.Decimal
	PaymentDate string // YYYY-MM-DD
	Status      string
}

// Validate checks if the PaymentRecord has valid data.
// PRE: PaymentRecord struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: CoachID and PaymentDate must be set, Amount must be non-negative
func (p *PaymentRecord) Validate() error {
	if p.CoachID == "" {
		return errors.New("payment must be associated with a coach")
	}
	if strings.TrimSpace(p.CoachName) == "" {
		return errors.New("coach name cannot be empty")
	}
	if p.PaymentDate == "" {
		return errors.New("payment date must be set")
	}
	if p.Amount.IsNegative() {
		return errors.New("payment amount cannot be negative")
	}
	if p.Status != StatusPending && p.Status != StatusPaid {
		return errors.New("status must be 'pending' or 'paid'")
	}
	return nil
}
