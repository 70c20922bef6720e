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

func endedTrip() models.Trip {
	tr := pendingTrip()
	tr.Status = models.TripEnded
	start, end := int64(1000), int64(1250)
	tr.StartMeter = &start
	tr.EndMeter = &end
	tr.ActualDistanceKm = 250
	ret := testNow
	tr.ActualReturnDatetime = &ret
	tr.TotalActualCost = 16500
	return tr
}

func paymentServiceWith(db *sql.DB) PaymentService {
	return PaymentService{
		TripRepo:    repositories.TripRepository{DB: db},
		PaymentRepo: repositories.PaymentRepository{DB: db},
		Tariffs:     testTariffs(),
		Now:         func() time.Time { return testNow },
	}
}

func TestAddPaymentSettlesTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectTripLoad(mock, endedTrip(), nil)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trips SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO trip_payments").WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectCommit()

	svc := paymentServiceWith(db)
	view, err := svc.AddPayment(context.Background(), 1, AddPaymentInput{Amount: 16500, Method: "cash"})
	if err != nil {
		t.Fatalf("add payment error: %v", err)
	}
	if view.Reconciliation.Status != models.PaymentPaid {
		t.Fatalf("payment status = %s, want Paid", view.Reconciliation.Status)
	}
	if view.Reconciliation.AmountDue != 0 {
		t.Fatalf("amount due = %d, want 0", view.Reconciliation.AmountDue)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOverpaymentFloorsAmountDue(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectTripLoad(mock, endedTrip(), nil)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trips SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO trip_payments").WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectCommit()

	svc := paymentServiceWith(db)
	view, err := svc.AddPayment(context.Background(), 1, AddPaymentInput{Amount: 20000})
	if err != nil {
		t.Fatalf("add payment error: %v", err)
	}
	if view.Reconciliation.AmountPaid != 20000 {
		t.Fatalf("amount paid = %d, want 20000", view.Reconciliation.AmountPaid)
	}
	if view.Reconciliation.AmountDue != 0 {
		t.Fatalf("amount due = %d, want 0", view.Reconciliation.AmountDue)
	}
}

func TestAddPaymentRollsBackWhenInsertFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectTripLoad(mock, endedTrip(), nil)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trips SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO trip_payments").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	svc := paymentServiceWith(db)
	_, err = svc.AddPayment(context.Background(), 1, AddPaymentInput{Amount: 16500})
	if err == nil {
		t.Fatal("expected insert failure to surface")
	}
	// the trip row write must not survive the failed payment insert
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRemovePaymentRollsBackWhenDeleteFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	payments := sqlmock.NewRows([]string{"id", "trip_id", "amount", "payment_date", "method", "reference"}).
		AddRow(5, 1, 16500, testNow, "cash", "")
	expectTripLoad(mock, endedTrip(), payments)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trips SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM trip_payments").WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	svc := paymentServiceWith(db)
	_, err = svc.RemovePayment(context.Background(), 1, 5)
	if err == nil {
		t.Fatal("expected delete failure to surface")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestAddPaymentRejectedOnCompletedTrip(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	tr := endedTrip()
	tr.Status = models.TripCompleted
	expectTripLoad(mock, tr, nil)

	svc := paymentServiceWith(db)
	_, err = svc.AddPayment(context.Background(), 1, AddPaymentInput{Amount: 100})
	if !domain.IsLockedTrip(err) {
		t.Fatalf("expected locked trip, got %v", err)
	}
}

func TestRemovePaymentMissingRecord(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	expectTripLoad(mock, endedTrip(), nil)

	svc := paymentServiceWith(db)
	_, err = svc.RemovePayment(context.Background(), 1, 99)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRemovePaymentReopensBalance(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	payments := sqlmock.NewRows([]string{"id", "trip_id", "amount", "payment_date", "method", "reference"}).
		AddRow(5, 1, 16500, testNow, "cash", "")
	expectTripLoad(mock, endedTrip(), payments)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE trips SET").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM trip_payments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	svc := paymentServiceWith(db)
	view, err := svc.RemovePayment(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("remove payment error: %v", err)
	}
	if view.Reconciliation.Status != models.PaymentUnpaid {
		t.Fatalf("payment status = %s, want Unpaid", view.Reconciliation.Status)
	}
	if view.Reconciliation.AmountDue != 16500 {
		t.Fatalf("amount due = %d, want 16500", view.Reconciliation.AmountDue)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
