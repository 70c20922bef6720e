package repositories

import (
	"database/sql"
	"testing"
	"time"

	"rentdesk/internal/domain"
	"rentdesk/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func baseTrip() models.Trip {
	return models.Trip{
		ID:                      9,
		CustomerID:              3,
		VehicleID:               1,
		EstimatedDays:           2,
		LeavingDatetime:         time.Date(2025, 6, 9, 6, 0, 0, 0, time.UTC),
		EstimatedReturnDatetime: time.Date(2025, 6, 11, 6, 0, 0, 0, time.UTC),
		Status:                  models.TripPending,
		Version:                 4,
	}
}

func TestCreateStoresOtherCostsInOneTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trips").WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("INSERT INTO trip_other_costs").WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectCommit()

	tr := baseTrip()
	tr.ID = 0
	tr.OtherCosts = []models.OtherCost{{CostType: "toll", Amount: 500}}

	repo := TripRepository{DB: db}
	out, err := repo.Create(tr)
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if out.ID != 9 || out.OtherCosts[0].ID != 21 || out.OtherCosts[0].TripID != 9 {
		t.Fatalf("create returned ids %d/%d, want 9/21", out.ID, out.OtherCosts[0].ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCreateRollsBackWhenOtherCostFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO trips").WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectExec("INSERT INTO trip_other_costs").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	tr := baseTrip()
	tr.ID = 0
	tr.OtherCosts = []models.OtherCost{{CostType: "toll", Amount: 500}}

	repo := TripRepository{DB: db}
	if _, err := repo.Create(tr); err == nil {
		t.Fatal("expected other-cost insert failure to surface")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateBumpsVersion(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE trips SET").WillReturnResult(sqlmock.NewResult(0, 1))

	repo := TripRepository{DB: db}
	out, err := repo.Update(baseTrip())
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if out.Version != 5 {
		t.Fatalf("version = %d, want 5", out.Version)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestUpdateStaleVersionConflicts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE trips SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	repo := TripRepository{DB: db}
	_, err = repo.Update(baseTrip())
	if !domain.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateMissingTripNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE trips SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT COUNT").WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	repo := TripRepository{DB: db}
	_, err = repo.Update(baseTrip())
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestGetByIDMissingTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("FROM trips WHERE id=").WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	repo := TripRepository{DB: db}
	_, err = repo.GetByID(42)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteOtherCostMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM trip_other_costs").WillReturnResult(sqlmock.NewResult(0, 0))

	repo := TripRepository{DB: db}
	if err := repo.DeleteOtherCost(77); !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
