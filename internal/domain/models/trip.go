package models

import (
	"math"
	"time"
)

type TripStatus string

const (
	TripPending   TripStatus = "Pending"
	TripOngoing   TripStatus = "Ongoing"
	TripEnded     TripStatus = "Ended"
	TripCompleted TripStatus = "Completed"
	TripCancelled TripStatus = "Cancelled"
)

// Terminal reports whether no transition may leave the status.
func (s TripStatus) Terminal() bool {
	return s == TripCompleted || s == TripCancelled
}

type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "Unpaid"
	PaymentPartiallyPaid PaymentStatus = "Partially_Paid"
	PaymentPaid          PaymentStatus = "Paid"
)

// Trip is the aggregate root of the rental core. Monetary outputs
// (TotalEstimatedCost, TotalActualCost, Profit, PaymentStatus) are derived
// and must only be written by the costing/ledger code, never by handlers.
type Trip struct {
	ID         int64  `json:"id"`
	CustomerID int64  `json:"customer_id"`
	VehicleID  int64  `json:"vehicle_id"`
	DriverID   *int64 `json:"driver_id,omitempty"` // nil = self-driven or external driver

	FromLocation        string   `json:"from_location"`
	ToLocation          string   `json:"to_location"`
	Waypoints           []string `json:"waypoints,omitempty"` // insertion order = visiting order
	EstimatedDistanceKm float64  `json:"estimated_distance_km"`
	ActualDistanceKm    float64  `json:"actual_distance_km"`

	LeavingDatetime         time.Time  `json:"leaving_datetime"`
	EstimatedReturnDatetime time.Time  `json:"estimated_return_datetime"`
	ActualReturnDatetime    *time.Time `json:"actual_return_datetime,omitempty"`
	EstimatedDays           int        `json:"estimated_days"`

	DriverRequired bool   `json:"driver_required"`
	FuelRequired   bool   `json:"fuel_required"`
	UpDown         string `json:"up_down"` // "Both" / "One-way", stored only

	StartMeter *int64 `json:"start_meter,omitempty"`
	EndMeter   *int64 `json:"end_meter,omitempty"`

	Discount   int64       `json:"discount"`
	DamageCost int64       `json:"damage_cost"`
	OtherCosts []OtherCost `json:"other_costs,omitempty"`
	Payments   []Payment   `json:"payments,omitempty"`

	TotalEstimatedCost int64         `json:"total_estimated_cost"`
	TotalActualCost    int64         `json:"total_actual_cost"`
	Profit             int64         `json:"profit"`
	PaymentStatus      PaymentStatus `json:"payment_status"`

	Status  TripStatus `json:"trip_status"`
	Version int64      `json:"version"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ActualDays is derived from leaving time and actual return, never below one
// full day (no proration below one day).
func (t Trip) ActualDays() int {
	if t.ActualReturnDatetime == nil || !t.ActualReturnDatetime.After(t.LeavingDatetime) {
		return 1
	}
	d := t.ActualReturnDatetime.Sub(t.LeavingDatetime)
	days := int(math.Ceil(d.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// HasMeters reports whether both meter readings are captured.
func (t Trip) HasMeters() bool {
	return t.StartMeter != nil && t.EndMeter != nil
}

// OtherCostsSum totals the extra billable cost lines.
func (t Trip) OtherCostsSum() int64 {
	var sum int64
	for _, oc := range t.OtherCosts {
		sum += oc.Amount
	}
	return sum
}

// OtherCost is an extra billable line item on a trip (tolls, parking, etc).
type OtherCost struct {
	ID       int64  `json:"id"`
	TripID   int64  `json:"trip_id"`
	CostType string `json:"cost_type"`
	Amount   int64  `json:"amount"`
}
