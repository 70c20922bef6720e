package domain

import (
	"math"

	"rentdesk/internal/domain/models"
)

// DefaultFreeKmPerDay is the per-day distance allowance billed at the base
// mileage rate; distance beyond days*allowance is billed at the additional
// rate. Overridable via FREE_KM_PER_DAY.
const DefaultFreeKmPerDay int64 = 100

// CostInput carries everything ComputeCost needs. The same shape serves the
// estimated breakdown (estimated distance/days) and the actual one (meter
// distance, actual days).
type CostInput struct {
	Days       int     `json:"days"`
	DistanceKm float64 `json:"distanceKm"`

	DailyRate        int64   `json:"dailyRate"`
	MileagePerKm     int64   `json:"mileagePerKm"`
	AdditionalPerKm  int64   `json:"additionalPerKm"`
	FuelCostPerLitre int64   `json:"fuelCostPerLitre"`
	FuelEfficiency   float64 `json:"fuelEfficiency"` // km per litre

	DriverRequired bool  `json:"driverRequired"`
	DriverDayRate  int64 `json:"driverDayRate"`

	OtherCostsSum int64 `json:"otherCostsSum"`
	Discount      int64 `json:"discount"`
	DamageCost    int64 `json:"damageCost"`

	FreeKmPerDay int64 `json:"freeKmPerDay,omitempty"` // <=0 means DefaultFreeKmPerDay
}

// CostBreakdown is the full costing result. TotalCost is the customer-facing
// amount; FuelCost is an operating cost that reduces profit but is not billed.
type CostBreakdown struct {
	Days       int     `json:"days"`
	DistanceKm float64 `json:"distanceKm"`

	VehicleCost            int64 `json:"vehicleCost"`
	DefaultDistanceCost    int64 `json:"defaultDistanceCost"`
	AdditionalDistanceCost int64 `json:"additionalDistanceCost"`
	DriverCost             int64 `json:"driverCost"`
	FuelCost               int64 `json:"fuelCost"`
	OtherCostsSum          int64 `json:"otherCostsSum"`

	Gross      int64 `json:"gross"`
	Discount   int64 `json:"discount"` // applied (clamped) discount
	DamageCost int64 `json:"damageCost"`
	TotalCost  int64 `json:"totalCost"`
	Profit     int64 `json:"profit"`
}

func roundMoney(x float64) int64 {
	return int64(math.Round(x))
}

// ComputeCost turns a costing request into a breakdown. Pure and
// deterministic: no I/O, identical inputs yield identical output.
func ComputeCost(in CostInput) CostBreakdown {
	days := in.Days
	if days < 1 {
		days = 1
	}

	freePerDay := in.FreeKmPerDay
	if freePerDay <= 0 {
		freePerDay = DefaultFreeKmPerDay
	}

	dist := in.DistanceKm
	if dist < 0 {
		dist = 0
	}

	allowance := float64(int64(days) * freePerDay)
	defaultKm := math.Min(allowance, dist)
	extraKm := dist - allowance
	if extraKm < 0 {
		extraKm = 0
	}

	vehicleCost := in.DailyRate * int64(days)
	defaultCost := roundMoney(defaultKm * float64(in.MileagePerKm))
	extraCost := roundMoney(extraKm * float64(in.AdditionalPerKm))

	var driverCost int64
	if in.DriverRequired {
		driverCost = in.DriverDayRate * int64(days)
	}

	// Fuel is absorbed by the vehicle owner: it reduces profit but is never
	// part of the customer total.
	var fuelCost int64
	if in.FuelEfficiency > 0 {
		fuelCost = roundMoney(dist / in.FuelEfficiency * float64(in.FuelCostPerLitre))
	}

	gross := vehicleCost + defaultCost + extraCost + driverCost + in.OtherCostsSum

	discount := in.Discount
	if discount < 0 {
		discount = 0
	}
	if discount > gross {
		discount = gross
	}

	damage := in.DamageCost
	if damage < 0 {
		damage = 0
	}

	total := gross - discount + damage

	// Damage is billed to the customer but is repair money, not revenue, so
	// it stays out of profit.
	profit := (gross - fuelCost - driverCost - in.OtherCostsSum - vehicleCost) - discount
	if profit < 0 {
		profit = 0
	}

	return CostBreakdown{
		Days:       days,
		DistanceKm: dist,

		VehicleCost:            vehicleCost,
		DefaultDistanceCost:    defaultCost,
		AdditionalDistanceCost: extraCost,
		DriverCost:             driverCost,
		FuelCost:               fuelCost,
		OtherCostsSum:          in.OtherCostsSum,

		Gross:      gross,
		Discount:   discount,
		DamageCost: damage,
		TotalCost:  total,
		Profit:     profit,
	}
}

// EstimatedInput assembles the costing request for a trip's estimated
// figures from the tariff snapshot.
func EstimatedInput(t models.Trip, ts models.TariffSnapshot, freeKmPerDay int64) CostInput {
	return costInput(t, ts, t.EstimatedDays, t.EstimatedDistanceKm, freeKmPerDay)
}

// ActualInput assembles the costing request for a trip's actual figures.
// Valid once the trip has ended (meters and return time captured).
func ActualInput(t models.Trip, ts models.TariffSnapshot, freeKmPerDay int64) CostInput {
	return costInput(t, ts, t.ActualDays(), t.ActualDistanceKm, freeKmPerDay)
}

func costInput(t models.Trip, ts models.TariffSnapshot, days int, distanceKm float64, freeKmPerDay int64) CostInput {
	in := CostInput{
		Days:       days,
		DistanceKm: distanceKm,

		DailyRate:        ts.Vehicle.DailyRentOrLease,
		MileagePerKm:     ts.Vehicle.MileageCostPerKm,
		AdditionalPerKm:  ts.Vehicle.AdditionalMileageCostPerKm,
		FuelCostPerLitre: ts.Vehicle.FuelCostPerLitre,
		FuelEfficiency:   ts.Vehicle.FuelEfficiencyKmPerLitre,

		DriverRequired: t.DriverRequired,

		OtherCostsSum: t.OtherCostsSum(),
		Discount:      t.Discount,
		DamageCost:    t.DamageCost,

		FreeKmPerDay: freeKmPerDay,
	}
	if t.DriverRequired && ts.Driver != nil {
		in.DriverDayRate = ts.Driver.CostPerDay
	}
	return in
}
