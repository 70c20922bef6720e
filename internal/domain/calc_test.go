package domain

import "testing"

func exampleInput() CostInput {
	return CostInput{
		Days:            2,
		DistanceKm:      250,
		DailyRate:       5000,
		MileagePerKm:    20,
		AdditionalPerKm: 30,
		DriverRequired:  true,
		DriverDayRate:   1000,
		Discount:        1000,
	}
}

func TestComputeCostTieredExample(t *testing.T) {
	b := ComputeCost(exampleInput())

	if b.VehicleCost != 10000 {
		t.Fatalf("vehicle cost = %d, want 10000", b.VehicleCost)
	}
	if b.DefaultDistanceCost != 4000 {
		t.Fatalf("default distance cost = %d, want 4000", b.DefaultDistanceCost)
	}
	if b.AdditionalDistanceCost != 1500 {
		t.Fatalf("additional distance cost = %d, want 1500", b.AdditionalDistanceCost)
	}
	if b.DriverCost != 2000 {
		t.Fatalf("driver cost = %d, want 2000", b.DriverCost)
	}
	if b.Gross != 17500 {
		t.Fatalf("gross = %d, want 17500", b.Gross)
	}
	if b.TotalCost != 16500 {
		t.Fatalf("total = %d, want 16500", b.TotalCost)
	}
	if b.Profit != 4500 {
		t.Fatalf("profit = %d, want 4500", b.Profit)
	}
}

func TestComputeCostDeterministic(t *testing.T) {
	in := exampleInput()
	if ComputeCost(in) != ComputeCost(in) {
		t.Fatal("identical inputs produced different breakdowns")
	}
}

func TestComputeCostDiscountClamp(t *testing.T) {
	in := exampleInput()
	in.Discount = 1_000_000
	in.DamageCost = 300

	b := ComputeCost(in)
	if b.Discount != b.Gross {
		t.Fatalf("applied discount = %d, want clamped to gross %d", b.Discount, b.Gross)
	}
	if b.TotalCost != 300 {
		t.Fatalf("total = %d, want damage only (300)", b.TotalCost)
	}

	in.Discount = -50
	b = ComputeCost(in)
	if b.Discount != 0 {
		t.Fatalf("negative discount applied as %d, want 0", b.Discount)
	}
}

func TestComputeCostFuelExcludedFromTotal(t *testing.T) {
	in := exampleInput()
	in.Discount = 0
	in.FuelCostPerLitre = 100
	in.FuelEfficiency = 10

	b := ComputeCost(in)
	if b.FuelCost != 2500 {
		t.Fatalf("fuel cost = %d, want 2500", b.FuelCost)
	}
	if b.TotalCost != b.Gross {
		t.Fatalf("fuel leaked into customer total: total=%d gross=%d", b.TotalCost, b.Gross)
	}
	// 5500 distance margin minus 2500 fuel
	if b.Profit != 3000 {
		t.Fatalf("profit = %d, want 3000", b.Profit)
	}
}

func TestComputeCostZeroEfficiencySkipsFuel(t *testing.T) {
	in := exampleInput()
	in.FuelCostPerLitre = 100
	in.FuelEfficiency = 0

	if b := ComputeCost(in); b.FuelCost != 0 {
		t.Fatalf("fuel cost = %d, want 0 when efficiency unknown", b.FuelCost)
	}
}

func TestComputeCostDaysFlooredAtOne(t *testing.T) {
	in := exampleInput()
	in.Days = 0

	b := ComputeCost(in)
	if b.Days != 1 {
		t.Fatalf("days = %d, want 1", b.Days)
	}
	if b.VehicleCost != 5000 {
		t.Fatalf("vehicle cost = %d, want one day's rate", b.VehicleCost)
	}
}

func TestComputeCostNoOverageAtAllowanceBoundary(t *testing.T) {
	in := exampleInput()
	in.DistanceKm = 200 // exactly days*100

	b := ComputeCost(in)
	if b.AdditionalDistanceCost != 0 {
		t.Fatalf("additional cost = %d at the allowance boundary, want 0", b.AdditionalDistanceCost)
	}
	if b.DefaultDistanceCost != 4000 {
		t.Fatalf("default cost = %d, want 4000", b.DefaultDistanceCost)
	}
}

func TestComputeCostFreeKmOverride(t *testing.T) {
	in := exampleInput()
	in.FreeKmPerDay = 50 // allowance 100km, overage 150km

	b := ComputeCost(in)
	if b.DefaultDistanceCost != 2000 {
		t.Fatalf("default cost = %d, want 2000", b.DefaultDistanceCost)
	}
	if b.AdditionalDistanceCost != 4500 {
		t.Fatalf("additional cost = %d, want 4500", b.AdditionalDistanceCost)
	}
}

func TestComputeCostNoDriver(t *testing.T) {
	in := exampleInput()
	in.DriverRequired = false

	if b := ComputeCost(in); b.DriverCost != 0 {
		t.Fatalf("driver cost = %d for self-driven trip, want 0", b.DriverCost)
	}
}
