package domain

import (
	"testing"
	"time"

	"rentdesk/internal/domain/models"
)

func TestReconcilePartiallyPaid(t *testing.T) {
	b := CostBreakdown{TotalCost: 16500}
	payments := []models.Payment{{Amount: 5000}, {Amount: 5000}}

	rec := Reconcile(b, payments, false)
	if rec.AmountPaid != 10000 {
		t.Fatalf("amount paid = %d, want 10000", rec.AmountPaid)
	}
	if rec.AmountDue != 6500 {
		t.Fatalf("amount due = %d, want 6500", rec.AmountDue)
	}
	if rec.Status != models.PaymentPartiallyPaid {
		t.Fatalf("status = %s, want Partially_Paid", rec.Status)
	}
}

func TestReconcileStatusDerivation(t *testing.T) {
	b := CostBreakdown{TotalCost: 1000}

	cases := []struct {
		name     string
		payments []models.Payment
		status   models.PaymentStatus
		due      int64
	}{
		{"no payments", nil, models.PaymentUnpaid, 1000},
		{"partial", []models.Payment{{Amount: 400}}, models.PaymentPartiallyPaid, 600},
		{"exact", []models.Payment{{Amount: 1000}}, models.PaymentPaid, 0},
		{"overpaid", []models.Payment{{Amount: 1500}}, models.PaymentPaid, 0},
	}

	for _, tc := range cases {
		rec := Reconcile(b, tc.payments, false)
		if rec.Status != tc.status {
			t.Fatalf("%s: status = %s, want %s", tc.name, rec.Status, tc.status)
		}
		if rec.AmountDue != tc.due {
			t.Fatalf("%s: due = %d, want %d", tc.name, rec.AmountDue, tc.due)
		}
	}
}

func TestReconcileProvisionalFlag(t *testing.T) {
	rec := Reconcile(CostBreakdown{TotalCost: 500}, nil, true)
	if !rec.Provisional {
		t.Fatal("provisional flag lost")
	}
}

func TestAmountDueMonotonicUnderPayments(t *testing.T) {
	b := CostBreakdown{TotalCost: 10000}
	var payments []models.Payment

	prev := Reconcile(b, payments, false).AmountDue
	for _, amt := range []int64{1000, 2500, 4000, 5000} {
		var err error
		payments, err = AppendPayment(payments, 1, amt, time.Now())
		if err != nil {
			t.Fatalf("append payment: %v", err)
		}
		due := Reconcile(b, payments, false).AmountDue
		if due > prev {
			t.Fatalf("due increased from %d to %d after a payment", prev, due)
		}
		prev = due
	}
}

func TestAppendPaymentRejectsNonPositive(t *testing.T) {
	for _, amt := range []int64{0, -100} {
		if _, err := AppendPayment(nil, 1, amt, time.Now()); !IsValidation(err) {
			t.Fatalf("amount %d: got %v, want validation error", amt, err)
		}
	}
}

func TestRemovePaymentRecord(t *testing.T) {
	payments := []models.Payment{{ID: 1, Amount: 100}, {ID: 2, Amount: 200}}

	out, err := RemovePaymentRecord(payments, 1)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(out) != 1 || out[0].ID != 2 {
		t.Fatalf("unexpected remainder: %+v", out)
	}

	if _, err := RemovePaymentRecord(payments, 99); !IsNotFound(err) {
		t.Fatalf("missing payment: got %v, want not found", err)
	}
}
