package domain

import (
	"time"

	"rentdesk/internal/domain/models"
)

// Transition names, used in IllegalTransitionError messages.
const (
	TransitionStart      = "start"
	TransitionEnd        = "end"
	TransitionComplete   = "complete"
	TransitionCancel     = "cancel"
	TransitionAlterDates = "alter dates"
	TransitionAlterMeter = "alter meters"
	TransitionAddDamage  = "add damage to"
)

// Lifecycle applies trip state transitions. Every transition that touches
// meters, dates, damage or payments re-runs the cost engine and ledger, so
// the derived fields on the returned Trip are always consistent with its
// inputs. Transitions take and return Trip values; persistence is the
// caller's concern.
type Lifecycle struct {
	Tariffs      models.TariffSnapshot
	FreeKmPerDay int64
	Now          func() time.Time // defaults to time.Now
}

func (l Lifecycle) now() time.Time {
	if l.Now != nil {
		return l.Now()
	}
	return time.Now()
}

// Start moves a Pending trip to Ongoing, capturing the start meter.
func (l Lifecycle) Start(t models.Trip, startMeter int64) (models.Trip, error) {
	if t.Status != models.TripPending {
		return t, IllegalTransitionError{Current: string(t.Status), Attempted: TransitionStart}
	}
	if startMeter < 0 {
		return t, ValidationError{Field: "start_meter", Msg: "meter reading cannot be negative"}
	}
	t.StartMeter = &startMeter
	t.Status = models.TripOngoing
	return l.Refresh(t), nil
}

// End moves an Ongoing trip to Ended: captures the end meter, derives the
// actual distance from the meters, stamps the actual return time and
// recomputes the actual breakdown.
func (l Lifecycle) End(t models.Trip, endMeter int64) (models.Trip, error) {
	if t.Status != models.TripOngoing {
		return t, IllegalTransitionError{Current: string(t.Status), Attempted: TransitionEnd}
	}
	if t.StartMeter == nil {
		return t, ValidationError{Field: "start_meter", Msg: "start meter missing"}
	}
	if endMeter < *t.StartMeter {
		return t, ValidationError{Field: "end_meter", Msg: "end meter cannot be below start meter"}
	}
	now := l.now()
	t.EndMeter = &endMeter
	t.ActualDistanceKm = float64(endMeter - *t.StartMeter)
	t.ActualReturnDatetime = &now
	t.Status = models.TripEnded
	return l.Refresh(t), nil
}

// Complete moves an Ended trip to Completed. The outstanding balance must be
// zero: once Completed the payment history freezes, so completing with a due
// amount would strand debt that can never be settled.
func (l Lifecycle) Complete(t models.Trip) (models.Trip, error) {
	if t.Status != models.TripEnded {
		return t, IllegalTransitionError{Current: string(t.Status), Attempted: TransitionComplete}
	}
	rec := l.Reconcile(t)
	if rec.AmountDue > 0 {
		return t, ConflictError{Resource: "trip", Msg: "outstanding balance must be settled before completion"}
	}
	t.Status = models.TripCompleted
	return l.Refresh(t), nil
}

// Cancel is the escape hatch from Pending or Ongoing. No cost or payment
// mutation is permitted afterwards.
func (l Lifecycle) Cancel(t models.Trip) (models.Trip, error) {
	if t.Status != models.TripPending && t.Status != models.TripOngoing {
		return t, IllegalTransitionError{Current: string(t.Status), Attempted: TransitionCancel}
	}
	t.Status = models.TripCancelled
	return l.Refresh(t), nil
}

// AlterDates updates leaving/estimated-return on any non-terminal trip.
func (l Lifecycle) AlterDates(t models.Trip, leaving, estimatedReturn time.Time) (models.Trip, error) {
	if t.Status.Terminal() {
		return t, LockedTripError{Status: string(t.Status)}
	}
	if estimatedReturn.Before(leaving) {
		return t, ValidationError{Field: "estimated_return_datetime", Msg: "return cannot precede leaving"}
	}
	t.LeavingDatetime = leaving
	t.EstimatedReturnDatetime = estimatedReturn
	days := int(estimatedReturn.Sub(leaving).Hours()/24 + 0.5)
	if days < 1 {
		days = 1
	}
	t.EstimatedDays = days
	return l.Refresh(t), nil
}

// AlterMeters corrects meter readings on any non-terminal trip and re-derives
// the actual distance and cost.
func (l Lifecycle) AlterMeters(t models.Trip, startMeter, endMeter *int64) (models.Trip, error) {
	if t.Status.Terminal() {
		return t, LockedTripError{Status: string(t.Status)}
	}
	if startMeter != nil {
		if *startMeter < 0 {
			return t, ValidationError{Field: "start_meter", Msg: "meter reading cannot be negative"}
		}
		t.StartMeter = startMeter
	}
	if endMeter != nil {
		t.EndMeter = endMeter
	}
	if t.HasMeters() {
		if *t.EndMeter < *t.StartMeter {
			return t, ValidationError{Field: "end_meter", Msg: "end meter cannot be below start meter"}
		}
		t.ActualDistanceKm = float64(*t.EndMeter - *t.StartMeter)
	}
	return l.Refresh(t), nil
}

// AddDamage adds to the damage cost on any non-terminal trip.
func (l Lifecycle) AddDamage(t models.Trip, amount int64) (models.Trip, error) {
	if t.Status.Terminal() {
		return t, LockedTripError{Status: string(t.Status)}
	}
	if amount < 0 {
		return t, ValidationError{Field: "damage_cost", Msg: "damage amount cannot be negative"}
	}
	t.DamageCost += amount
	return l.Refresh(t), nil
}

// AddPayment records a payment and re-reconciles. Rejected on terminal trips.
func (l Lifecycle) AddPayment(t models.Trip, amount int64, date time.Time) (models.Trip, error) {
	if t.Status.Terminal() {
		return t, LockedTripError{Status: string(t.Status)}
	}
	payments, err := AppendPayment(t.Payments, t.ID, amount, date)
	if err != nil {
		return t, err
	}
	t.Payments = payments
	return l.Refresh(t), nil
}

// RemovePayment drops a payment record and re-reconciles. A terminal trip's
// payment history is immutable.
func (l Lifecycle) RemovePayment(t models.Trip, paymentID int64) (models.Trip, error) {
	if t.Status.Terminal() {
		return t, LockedTripError{Status: string(t.Status)}
	}
	payments, err := RemovePaymentRecord(t.Payments, paymentID)
	if err != nil {
		return t, err
	}
	t.Payments = payments
	return l.Refresh(t), nil
}

// Estimated returns the breakdown computed from estimated distance and days.
func (l Lifecycle) Estimated(t models.Trip) CostBreakdown {
	return ComputeCost(EstimatedInput(t, l.Tariffs, l.FreeKmPerDay))
}

// Actual returns the breakdown computed from meter distance and actual days.
// Meaningful once the trip has ended.
func (l Lifecycle) Actual(t models.Trip) CostBreakdown {
	return ComputeCost(ActualInput(t, l.Tariffs, l.FreeKmPerDay))
}

// hasActual reports whether the trip has produced actual figures.
func hasActual(t models.Trip) bool {
	switch t.Status {
	case models.TripEnded, models.TripCompleted:
		return true
	}
	return false
}

// Effective returns the breakdown payments reconcile against: actual once the
// trip ended, estimated (provisional) before that.
func (l Lifecycle) Effective(t models.Trip) (CostBreakdown, bool) {
	if hasActual(t) {
		return l.Actual(t), false
	}
	return l.Estimated(t), true
}

// Reconcile derives the payment position of the trip as it stands.
func (l Lifecycle) Reconcile(t models.Trip) Reconciliation {
	b, provisional := l.Effective(t)
	return Reconcile(b, t.Payments, provisional)
}

// Refresh recomputes every derived field from the trip's current inputs.
// The state machine never hand-patches totals; all mutation paths funnel
// through here.
func (l Lifecycle) Refresh(t models.Trip) models.Trip {
	est := l.Estimated(t)
	t.TotalEstimatedCost = est.TotalCost

	if hasActual(t) {
		act := l.Actual(t)
		t.TotalActualCost = act.TotalCost
		t.Profit = act.Profit
	} else {
		t.TotalActualCost = 0
		t.Profit = est.Profit
	}

	t.PaymentStatus = l.Reconcile(t).Status
	return t
}
