package services

import (
	"context"
	"fmt"
	"time"

	"rentdesk/internal/domain"
	"rentdesk/internal/domain/models"
	"rentdesk/internal/repositories"
	"rentdesk/internal/utils"
)

// PaymentService records and removes payments against a trip and keeps the
// trip's derived payment fields reconciled. The amount rules (positive
// amounts, overpayment allowed, terminal trips frozen) live in the domain
// lifecycle; this layer persists the outcome.
type PaymentService struct {
	TripRepo     repositories.TripRepository
	PaymentRepo  repositories.PaymentRepository
	Tariffs      TariffService
	FreeKmPerDay int64
	RequestID    string
	Now          func() time.Time
}

func (s PaymentService) lifecycle(ctx context.Context, t models.Trip) (domain.Lifecycle, error) {
	snap, err := s.Tariffs.Resolve(ctx, t.VehicleID, t.DriverID, t.DriverRequired)
	if err != nil {
		return domain.Lifecycle{}, err
	}
	return domain.Lifecycle{Tariffs: snap, FreeKmPerDay: s.FreeKmPerDay, Now: s.Now}, nil
}

// AddPaymentInput carries one payment record.
type AddPaymentInput struct {
	Amount      int64
	PaymentDate time.Time
	Method      string
	Reference   string
}

// AddPayment appends a payment, re-reconciles and persists. The trip row and
// the payment row land in one transaction; the trip write carries the version
// gate, so a concurrent transition rolls the whole write back as a conflict.
func (s PaymentService) AddPayment(ctx context.Context, tripID int64, in AddPaymentInput) (TripView, error) {
	t, err := s.TripRepo.GetByID(tripID)
	if err != nil {
		return TripView{}, err
	}
	l, err := s.lifecycle(ctx, t)
	if err != nil {
		return TripView{}, err
	}

	date := in.PaymentDate
	if date.IsZero() {
		date = utils.NowUTC()
	}

	t, err = l.AddPayment(t, in.Amount, date)
	if err != nil {
		return TripView{}, err
	}

	tx, err := s.TripRepo.Begin()
	if err != nil {
		return TripView{}, err
	}
	defer func() { _ = tx.Rollback() }()

	t, err = s.TripRepo.UpdateTx(tx, t)
	if err != nil {
		return TripView{}, err
	}

	p := t.Payments[len(t.Payments)-1]
	p.Method = in.Method
	p.Reference = in.Reference
	p.ID, err = s.PaymentRepo.InsertTx(tx, p)
	if err != nil {
		return TripView{}, err
	}
	t.Payments[len(t.Payments)-1] = p

	if err := tx.Commit(); err != nil {
		return TripView{}, err
	}

	utils.LogEvent(s.RequestID, "payment", "add", fmt.Sprintf("trip_id=%d amount=%d", tripID, in.Amount))
	return view(l, t), nil
}

// RemovePayment deletes a payment record and re-reconciles. A terminal
// trip's payment history is immutable.
func (s PaymentService) RemovePayment(ctx context.Context, tripID, paymentID int64) (TripView, error) {
	t, err := s.TripRepo.GetByID(tripID)
	if err != nil {
		return TripView{}, err
	}
	l, err := s.lifecycle(ctx, t)
	if err != nil {
		return TripView{}, err
	}

	t, err = l.RemovePayment(t, paymentID)
	if err != nil {
		return TripView{}, err
	}

	tx, err := s.TripRepo.Begin()
	if err != nil {
		return TripView{}, err
	}
	defer func() { _ = tx.Rollback() }()

	t, err = s.TripRepo.UpdateTx(tx, t)
	if err != nil {
		return TripView{}, err
	}

	if err := s.PaymentRepo.DeleteTx(tx, paymentID); err != nil {
		return TripView{}, err
	}

	if err := tx.Commit(); err != nil {
		return TripView{}, err
	}

	utils.LogEvent(s.RequestID, "payment", "remove", fmt.Sprintf("trip_id=%d payment_id=%d", tripID, paymentID))
	return view(l, t), nil
}

// ListPayments returns a trip's payment history with its reconciliation.
func (s PaymentService) ListPayments(ctx context.Context, tripID int64) ([]models.Payment, domain.Reconciliation, error) {
	t, err := s.TripRepo.GetByID(tripID)
	if err != nil {
		return nil, domain.Reconciliation{}, err
	}
	l, err := s.lifecycle(ctx, t)
	if err != nil {
		return nil, domain.Reconciliation{}, err
	}
	return t.Payments, l.Reconcile(t), nil
}

func view(l domain.Lifecycle, t models.Trip) TripView {
	v := TripView{
		Trip:           t,
		Estimated:      l.Estimated(t),
		Reconciliation: l.Reconcile(t),
	}
	switch t.Status {
	case models.TripEnded, models.TripCompleted:
		a := l.Actual(t)
		v.Actual = &a
	}
	return v
}
