package services

import (
	"context"
	"errors"
	"testing"

	"rentdesk/internal/domain"
	"rentdesk/internal/domain/models"
)

func TestResolveWithoutDriver(t *testing.T) {
	svc := testTariffs()

	snap, err := svc.Resolve(context.Background(), 1, nil, false)
	if err != nil {
		t.Fatalf("resolve error: %v", err)
	}
	if snap.Vehicle.DailyRentOrLease != 5000 {
		t.Fatalf("daily rate = %d, want 5000", snap.Vehicle.DailyRentOrLease)
	}
	if snap.Driver != nil {
		t.Fatalf("driver tariff resolved without a driver")
	}
}

func TestResolveDriverRequiredWithoutDriverID(t *testing.T) {
	svc := testTariffs()

	_, err := svc.Resolve(context.Background(), 1, nil, true)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestResolveDriverLookupFailurePropagates(t *testing.T) {
	svc := testTariffs()
	svc.FetchDriver = func(int64) (models.Driver, error) {
		return models.Driver{}, errors.New("directory down")
	}

	driverID := int64(7)
	_, err := svc.Resolve(context.Background(), 1, &driverID, true)
	if err == nil {
		t.Fatal("expected lookup error")
	}
}
