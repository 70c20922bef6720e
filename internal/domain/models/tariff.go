package models

// VehicleTariff holds the per-vehicle pricing parameters used as costing
// input. Owned by the vehicle directory; read-only to costing.
type VehicleTariff struct {
	VehicleID                  int64   `json:"vehicle_id"`
	DailyRentOrLease           int64   `json:"daily_rent_or_lease"`
	MileageCostPerKm           int64   `json:"mileage_cost_per_km"`
	AdditionalMileageCostPerKm int64   `json:"additional_mileage_cost_per_km"`
	FuelCostPerLitre           int64   `json:"fuel_cost_per_litre"`
	FuelEfficiencyKmPerLitre   float64 `json:"fuel_efficiency_km_per_litre"`
}

// DriverTariff holds per-driver pricing.
type DriverTariff struct {
	DriverID   int64 `json:"driver_id"`
	CostPerDay int64 `json:"cost_per_day"`
}

// TariffSnapshot is what the resolver hands to costing. Driver is nil when
// the trip is self-driven.
type TariffSnapshot struct {
	Vehicle VehicleTariff `json:"vehicle"`
	Driver  *DriverTariff `json:"driver,omitempty"`
}
