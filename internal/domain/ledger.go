package domain

import (
	"time"

	"rentdesk/internal/domain/models"
)

// Reconciliation is the ledger view of a trip: what has been received, what
// is still due, and the derived payment status. Provisional marks figures
// reconciled against an estimated cost (trip not ended yet), so callers can
// render them as indicative rather than final.
type Reconciliation struct {
	AmountPaid  int64                `json:"amountPaid"`
	AmountDue   int64                `json:"amountDue"`
	Status      models.PaymentStatus `json:"status"`
	Provisional bool                 `json:"provisional"`
}

// Reconcile derives the payment position from a cost breakdown and the
// payment records. Overpayment simply floors AmountDue at zero.
func Reconcile(b CostBreakdown, payments []models.Payment, provisional bool) Reconciliation {
	var paid int64
	for _, p := range payments {
		paid += p.Amount
	}

	due := b.TotalCost - paid
	if due < 0 {
		due = 0
	}

	status := models.PaymentPartiallyPaid
	switch {
	case paid == 0:
		status = models.PaymentUnpaid
	case due == 0:
		status = models.PaymentPaid
	}

	return Reconciliation{
		AmountPaid:  paid,
		AmountDue:   due,
		Status:      status,
		Provisional: provisional,
	}
}

// ValidatePayment checks a payment amount before it is recorded.
func ValidatePayment(amount int64) error {
	if amount <= 0 {
		return ValidationError{Field: "amount", Msg: "payment amount must be positive"}
	}
	return nil
}

// AppendPayment validates and appends a payment record, returning the new
// slice. It never caps at the due amount; overpayment is allowed.
func AppendPayment(payments []models.Payment, tripID, amount int64, date time.Time) ([]models.Payment, error) {
	if err := ValidatePayment(amount); err != nil {
		return payments, err
	}
	out := make([]models.Payment, len(payments), len(payments)+1)
	copy(out, payments)
	return append(out, models.Payment{TripID: tripID, Amount: amount, PaymentDate: date}), nil
}

// RemovePaymentRecord drops the payment with the given id, returning the new
// slice. NotFound when no record matches.
func RemovePaymentRecord(payments []models.Payment, paymentID int64) ([]models.Payment, error) {
	for i, p := range payments {
		if p.ID == paymentID {
			out := make([]models.Payment, 0, len(payments)-1)
			out = append(out, payments[:i]...)
			return append(out, payments[i+1:]...), nil
		}
	}
	return payments, NotFoundError{Resource: "payment"}
}
