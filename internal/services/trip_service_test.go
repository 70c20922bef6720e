package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"rentdesk/internal/domain"
	"rentdesk/internal/domain/models"
	"rentdesk/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

var testNow = time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC)

func testTariffs() TariffService {
	return TariffService{
		FetchVehicle: func(id int64) (models.Vehicle, error) {
			return models.Vehicle{
				ID: id,
				Tariff: models.VehicleTariff{
					VehicleID:                  id,
					DailyRentOrLease:           5000,
					MileageCostPerKm:           20,
					AdditionalMileageCostPerKm: 30,
				},
			}, nil
		},
		FetchDriver: func(id int64) (models.Driver, error) {
			return models.Driver{ID: id, Tariff: models.DriverTariff{DriverID: id, CostPerDay: 1000}}, nil
		},
	}
}

func pendingTrip() models.Trip {
	driverID := int64(7)
	return models.Trip{
		ID:                      1,
		CustomerID:              3,
		VehicleID:               1,
		DriverID:                &driverID,
		DriverRequired:          true,
		EstimatedDays:           2,
		EstimatedDistanceKm:     250,
		Discount:                1000,
		LeavingDatetime:         testNow.Add(-36 * time.Hour),
		EstimatedReturnDatetime: testNow.Add(12 * time.Hour),
		Status:                  models.TripPending,
		Version:                 3,
	}
}

func optInt64(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func optTime(p *time.Time) any {
	if p == nil {
		return nil
	}
	return *p
}

func tripRow(tr models.Trip) *sqlmock.Rows {
	status := string(tr.Status)
	if status == "" {
		status = "Pending"
	}
	payStatus := string(tr.PaymentStatus)
	if payStatus == "" {
		payStatus = "Unpaid"
	}
	return sqlmock.NewRows([]string{
		"id", "customer_id", "vehicle_id", "driver_id",
		"from_location", "to_location", "waypoints",
		"estimated_distance_km", "actual_distance_km",
		"leaving_datetime", "estimated_return_datetime", "actual_return_datetime",
		"estimated_days", "driver_required", "fuel_required", "up_down",
		"start_meter", "end_meter", "discount", "damage_cost",
		"total_estimated_cost", "total_actual_cost", "profit",
		"payment_status", "trip_status", "version", "created_at", "updated_at",
	}).AddRow(
		tr.ID, tr.CustomerID, tr.VehicleID, optInt64(tr.DriverID),
		tr.FromLocation, tr.ToLocation, "",
		tr.EstimatedDistanceKm, tr.ActualDistanceKm,
		tr.LeavingDatetime, tr.EstimatedReturnDatetime, optTime(tr.ActualReturnDatetime),
		tr.EstimatedDays, tr.DriverRequired, tr.FuelRequired, "Both",
		optInt64(tr.StartMeter), optInt64(tr.EndMeter), tr.Discount, tr.DamageCost,
		tr.TotalEstimatedCost, tr.TotalActualCost, tr.Profit,
		payStatus, status, tr.Version, testNow, testNow,
	)
}

func expectTripLoad(mock sqlmock.Sqlmock, tr models.Trip, payments *sqlmock.Rows) {
	mock.ExpectQuery("FROM trips WHERE id=").WithArgs(tr.ID).WillReturnRows(tripRow(tr))
	if payments == nil {
		payments = sqlmock.NewRows([]string{"id", "trip_id", "amount", "payment_date", "method", "reference"})
	}
	mock.ExpectQuery("FROM trip_payments").WithArgs(tr.ID).WillReturnRows(payments)
	mock.ExpectQuery("FROM trip_other_costs").WithArgs(tr.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "trip_id", "cost_type", "amount"}))
}

func tripServiceWith(db *sql.DB) TripService {
	return TripService{
		TripRepo:    repositories.TripRepository{DB: db},
		PaymentRepo: repositories.PaymentRepository{DB: db},
		Tariffs:     testTariffs(),
		Now:         func() time.Time { return testNow },
	}
}

func TestStartTripPersistsOngoing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectTripLoad(mock, pendingTrip(), nil)
	mock.ExpectExec("UPDATE trips SET").WillReturnResult(sqlmock.NewResult(0, 1))

	svc := tripServiceWith(db)
	view, err := svc.Start(context.Background(), 1, 1000)
	if err != nil {
		t.Fatalf("start error: %v", err)
	}
	if view.Trip.Status != models.TripOngoing {
		t.Fatalf("status = %s, want Ongoing", view.Trip.Status)
	}
	if view.Trip.Version != 4 {
		t.Fatalf("version = %d, want 4", view.Trip.Version)
	}
	if view.Trip.TotalEstimatedCost != 16500 {
		t.Fatalf("estimated total = %d, want 16500", view.Trip.TotalEstimatedCost)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestStartConflictOnStaleVersion(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectTripLoad(mock, pendingTrip(), nil)
	mock.ExpectExec("UPDATE trips SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	svc := tripServiceWith(db)
	_, err = svc.Start(context.Background(), 1, 1000)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestEndTripDerivesActuals(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	tr := pendingTrip()
	tr.Status = models.TripOngoing
	start := int64(1000)
	tr.StartMeter = &start

	expectTripLoad(mock, tr, nil)
	mock.ExpectExec("UPDATE trips SET").WillReturnResult(sqlmock.NewResult(0, 1))

	svc := tripServiceWith(db)
	view, err := svc.End(context.Background(), 1, 1250)
	if err != nil {
		t.Fatalf("end error: %v", err)
	}
	if view.Trip.Status != models.TripEnded {
		t.Fatalf("status = %s, want Ended", view.Trip.Status)
	}
	if view.Trip.ActualDistanceKm != 250 {
		t.Fatalf("actual distance = %v, want 250", view.Trip.ActualDistanceKm)
	}
	if view.Actual == nil || view.Actual.TotalCost != 16500 {
		t.Fatalf("actual breakdown = %+v, want total 16500", view.Actual)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCancelCompletedTripRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	tr := pendingTrip()
	tr.Status = models.TripCompleted
	expectTripLoad(mock, tr, nil)

	svc := tripServiceWith(db)
	_, err = svc.Cancel(context.Background(), 1)
	if !domain.IsIllegalTransition(err) {
		t.Fatalf("expected illegal transition, got %v", err)
	}
}

func TestAddOtherCostRolledBackOnStaleVersion(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectTripLoad(mock, pendingTrip(), nil)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trip_other_costs").WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("UPDATE trips SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	svc := tripServiceWith(db)
	_, err = svc.AddOtherCost(context.Background(), 1, "toll", 500)
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
	// the cost line must not survive the conflicted trip write
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestGetRecomputesBreakdownOnRead(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// Stored totals are stale on purpose; the read path must not trust them.
	tr := pendingTrip()
	tr.TotalEstimatedCost = 999

	expectTripLoad(mock, tr, nil)

	svc := tripServiceWith(db)
	view, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if view.Estimated.TotalCost != 16500 {
		t.Fatalf("estimated total = %d, want 16500", view.Estimated.TotalCost)
	}
}
