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

// TripService orchestrates the trip lifecycle: it loads the aggregate,
// resolves tariffs, applies the state machine and persists the result under
// the optimistic version gate. All cost and payment math lives in
// internal/domain; this layer only wires it to storage.
type TripService struct {
	TripRepo     repositories.TripRepository
	PaymentRepo  repositories.PaymentRepository
	Tariffs      TariffService
	FreeKmPerDay int64
	RequestID    string
	Now          func() time.Time
}

// TripView is what the API returns for a trip: the aggregate plus the
// breakdowns recomputed from its current inputs. Actual is nil until the
// trip has ended.
type TripView struct {
	Trip           models.Trip           `json:"trip"`
	Estimated      domain.CostBreakdown  `json:"estimated"`
	Actual         *domain.CostBreakdown `json:"actual,omitempty"`
	Reconciliation domain.Reconciliation `json:"reconciliation"`
}

// CreateTripInput carries the booking-time fields.
type CreateTripInput struct {
	CustomerID int64
	VehicleID  int64
	DriverID   *int64

	FromLocation        string
	ToLocation          string
	Waypoints           []string
	EstimatedDistanceKm float64

	LeavingDatetime         time.Time
	EstimatedReturnDatetime time.Time
	EstimatedDays           int

	DriverRequired bool
	FuelRequired   bool
	UpDown         string

	Discount   int64
	OtherCosts []models.OtherCost
}

func (s TripService) lifecycle(ctx context.Context, t models.Trip) (domain.Lifecycle, error) {
	snap, err := s.Tariffs.Resolve(ctx, t.VehicleID, t.DriverID, t.DriverRequired)
	if err != nil {
		return domain.Lifecycle{}, err
	}
	return domain.Lifecycle{Tariffs: snap, FreeKmPerDay: s.FreeKmPerDay, Now: s.Now}, nil
}

func (s TripService) view(l domain.Lifecycle, t models.Trip) TripView {
	return view(l, t)
}

// Create validates the booking-time fields, derives the initial cost figures
// and stores the trip in Pending.
func (s TripService) Create(ctx context.Context, in CreateTripInput) (TripView, error) {
	if in.CustomerID <= 0 {
		return TripView{}, domain.ValidationError{Field: "customer_id", Msg: "required"}
	}
	if in.VehicleID <= 0 {
		return TripView{}, domain.ValidationError{Field: "vehicle_id", Msg: "required"}
	}
	if in.EstimatedDays < 1 {
		return TripView{}, domain.ValidationError{Field: "estimated_days", Msg: "must be at least 1"}
	}
	if in.EstimatedDistanceKm < 0 {
		return TripView{}, domain.ValidationError{Field: "estimated_distance_km", Msg: "cannot be negative"}
	}
	if in.Discount < 0 {
		return TripView{}, domain.ValidationError{Field: "discount", Msg: "cannot be negative"}
	}
	for _, oc := range in.OtherCosts {
		if oc.Amount < 0 {
			return TripView{}, domain.ValidationError{Field: "other_costs", Msg: "amount cannot be negative"}
		}
	}
	if in.LeavingDatetime.IsZero() {
		return TripView{}, domain.ValidationError{Field: "leaving_datetime", Msg: "required"}
	}
	if in.EstimatedReturnDatetime.IsZero() {
		in.EstimatedReturnDatetime = in.LeavingDatetime.Add(time.Duration(in.EstimatedDays) * 24 * time.Hour)
	}
	if in.EstimatedReturnDatetime.Before(in.LeavingDatetime) {
		return TripView{}, domain.ValidationError{Field: "estimated_return_datetime", Msg: "return cannot precede leaving"}
	}
	upDown := in.UpDown
	if upDown == "" {
		upDown = "Both"
	}

	t := models.Trip{
		CustomerID:              in.CustomerID,
		VehicleID:               in.VehicleID,
		DriverID:                in.DriverID,
		FromLocation:            in.FromLocation,
		ToLocation:              in.ToLocation,
		Waypoints:               in.Waypoints,
		EstimatedDistanceKm:     in.EstimatedDistanceKm,
		LeavingDatetime:         in.LeavingDatetime,
		EstimatedReturnDatetime: in.EstimatedReturnDatetime,
		EstimatedDays:           in.EstimatedDays,
		DriverRequired:          in.DriverRequired,
		FuelRequired:            in.FuelRequired,
		UpDown:                  upDown,
		Discount:                in.Discount,
		OtherCosts:              in.OtherCosts,
		Status:                  models.TripPending,
	}

	l, err := s.lifecycle(ctx, t)
	if err != nil {
		return TripView{}, err
	}
	t = l.Refresh(t)

	t, err = s.TripRepo.Create(t)
	if err != nil {
		return TripView{}, err
	}
	utils.LogEvent(s.RequestID, "trip", "create", fmt.Sprintf("trip_id=%d vehicle_id=%d", t.ID, t.VehicleID))
	return s.view(l, t), nil
}

// Get loads a trip and recomputes its breakdowns. Derived figures are never
// trusted from storage alone; the read is the recompute point.
func (s TripService) Get(ctx context.Context, id int64) (TripView, error) {
	t, err := s.TripRepo.GetByID(id)
	if err != nil {
		return TripView{}, err
	}
	l, err := s.lifecycle(ctx, t)
	if err != nil {
		return TripView{}, err
	}
	return s.view(l, t), nil
}

// List returns trip rows matching the filter.
func (s TripService) List(f repositories.TripFilter) ([]models.Trip, error) {
	return s.TripRepo.List(f)
}

// mutate is the shared load/apply/persist path for lifecycle operations.
func (s TripService) mutate(ctx context.Context, tripID int64, action string, apply func(domain.Lifecycle, models.Trip) (models.Trip, error)) (TripView, error) {
	t, err := s.TripRepo.GetByID(tripID)
	if err != nil {
		return TripView{}, err
	}
	l, err := s.lifecycle(ctx, t)
	if err != nil {
		return TripView{}, err
	}

	t, err = apply(l, t)
	if err != nil {
		return TripView{}, err
	}

	t, err = s.TripRepo.Update(t)
	if err != nil {
		return TripView{}, err
	}

	utils.LogEvent(s.RequestID, "trip", action, fmt.Sprintf("trip_id=%d status=%s", t.ID, t.Status))
	return s.view(l, t), nil
}

// Start moves a Pending trip to Ongoing with its start meter reading.
func (s TripService) Start(ctx context.Context, tripID, startMeter int64) (TripView, error) {
	return s.mutate(ctx, tripID, "start", func(l domain.Lifecycle, t models.Trip) (models.Trip, error) {
		return l.Start(t, startMeter)
	})
}

// End closes an Ongoing trip with its end meter reading.
func (s TripService) End(ctx context.Context, tripID, endMeter int64) (TripView, error) {
	return s.mutate(ctx, tripID, "end", func(l domain.Lifecycle, t models.Trip) (models.Trip, error) {
		return l.End(t, endMeter)
	})
}

// Complete finalizes an Ended trip once its balance is settled.
func (s TripService) Complete(ctx context.Context, tripID int64) (TripView, error) {
	return s.mutate(ctx, tripID, "complete", func(l domain.Lifecycle, t models.Trip) (models.Trip, error) {
		return l.Complete(t)
	})
}

// Cancel aborts a Pending or Ongoing trip.
func (s TripService) Cancel(ctx context.Context, tripID int64) (TripView, error) {
	return s.mutate(ctx, tripID, "cancel", func(l domain.Lifecycle, t models.Trip) (models.Trip, error) {
		return l.Cancel(t)
	})
}

// AlterDates updates a non-terminal trip's schedule.
func (s TripService) AlterDates(ctx context.Context, tripID int64, leaving, estimatedReturn time.Time) (TripView, error) {
	return s.mutate(ctx, tripID, "alter_dates", func(l domain.Lifecycle, t models.Trip) (models.Trip, error) {
		return l.AlterDates(t, leaving, estimatedReturn)
	})
}

// AlterMeters corrects a non-terminal trip's meter readings.
func (s TripService) AlterMeters(ctx context.Context, tripID int64, startMeter, endMeter *int64) (TripView, error) {
	return s.mutate(ctx, tripID, "alter_meters", func(l domain.Lifecycle, t models.Trip) (models.Trip, error) {
		return l.AlterMeters(t, startMeter, endMeter)
	})
}

// AddDamage adds a damage charge to a non-terminal trip.
func (s TripService) AddDamage(ctx context.Context, tripID, amount int64) (TripView, error) {
	return s.mutate(ctx, tripID, "add_damage", func(l domain.Lifecycle, t models.Trip) (models.Trip, error) {
		return l.AddDamage(t, amount)
	})
}

// AddOtherCost appends an extra billable line and recomputes.
func (s TripService) AddOtherCost(ctx context.Context, tripID int64, costType string, amount int64) (TripView, error) {
	if amount < 0 {
		return TripView{}, domain.ValidationError{Field: "amount", Msg: "cannot be negative"}
	}

	t, err := s.TripRepo.GetByID(tripID)
	if err != nil {
		return TripView{}, err
	}
	if t.Status.Terminal() {
		return TripView{}, domain.LockedTripError{Status: string(t.Status)}
	}
	l, err := s.lifecycle(ctx, t)
	if err != nil {
		return TripView{}, err
	}

	tx, err := s.TripRepo.Begin()
	if err != nil {
		return TripView{}, err
	}
	defer func() { _ = tx.Rollback() }()

	oc := models.OtherCost{TripID: tripID, CostType: costType, Amount: amount}
	oc.ID, err = s.TripRepo.InsertOtherCostTx(tx, oc)
	if err != nil {
		return TripView{}, err
	}
	t.OtherCosts = append(t.OtherCosts, oc)

	t, err = s.TripRepo.UpdateTx(tx, l.Refresh(t))
	if err != nil {
		return TripView{}, err
	}
	if err := tx.Commit(); err != nil {
		return TripView{}, err
	}
	utils.LogEvent(s.RequestID, "trip", "add_other_cost", fmt.Sprintf("trip_id=%d amount=%d", tripID, amount))
	return s.view(l, t), nil
}

// RemoveOtherCost drops an extra billable line and recomputes.
func (s TripService) RemoveOtherCost(ctx context.Context, tripID, otherCostID int64) (TripView, error) {
	t, err := s.TripRepo.GetByID(tripID)
	if err != nil {
		return TripView{}, err
	}
	if t.Status.Terminal() {
		return TripView{}, domain.LockedTripError{Status: string(t.Status)}
	}
	l, err := s.lifecycle(ctx, t)
	if err != nil {
		return TripView{}, err
	}

	found := false
	remaining := make([]models.OtherCost, 0, len(t.OtherCosts))
	for _, oc := range t.OtherCosts {
		if oc.ID == otherCostID {
			found = true
			continue
		}
		remaining = append(remaining, oc)
	}
	if !found {
		return TripView{}, domain.NotFoundError{Resource: "other cost"}
	}

	tx, err := s.TripRepo.Begin()
	if err != nil {
		return TripView{}, err
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.TripRepo.DeleteOtherCostTx(tx, otherCostID); err != nil {
		return TripView{}, err
	}
	t.OtherCosts = remaining

	t, err = s.TripRepo.UpdateTx(tx, l.Refresh(t))
	if err != nil {
		return TripView{}, err
	}
	if err := tx.Commit(); err != nil {
		return TripView{}, err
	}
	return s.view(l, t), nil
}
