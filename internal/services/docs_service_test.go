package services

import (
	"context"
	"testing"

	"rentdesk/internal/domain"
	"rentdesk/internal/domain/models"
)

func TestDocsServiceGenerateInvoice(t *testing.T) {
	loader := func(id int64) (tripDocData, error) {
		return tripDocData{
			Trip: models.Trip{
				ID:           id,
				FromLocation: "Colombo",
				ToLocation:   "Kandy",
				Status:       models.TripEnded,
			},
			Breakdown: domain.CostBreakdown{
				Days:        2,
				DistanceKm:  250,
				VehicleCost: 10000,
				TotalCost:   16500,
			},
			Reconciliation: domain.Reconciliation{AmountPaid: 10000, AmountDue: 6500},
			CustomerName:   "Tester",
			VehicleCode:    "V-12",
			PlateNumber:    "ABC-1234",
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, filename, err := svc.GenerateInvoice(context.Background(), 1)
	if err != nil {
		t.Fatalf("GenerateInvoice returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("GenerateInvoice returned empty data")
	}
	if filename != "INVOICE_TRIP_1.pdf" {
		t.Fatalf("filename = %q, want INVOICE_TRIP_1.pdf", filename)
	}
}

func TestDocsServiceProvisionalInvoice(t *testing.T) {
	loader := func(id int64) (tripDocData, error) {
		return tripDocData{
			Trip:        models.Trip{ID: id, Status: models.TripPending},
			Breakdown:   domain.CostBreakdown{Days: 1, TotalCost: 5000},
			Provisional: true,
		}, nil
	}

	svc := DocsService{Loader: loader}

	pdf, _, err := svc.GenerateInvoice(context.Background(), 2)
	if err != nil {
		t.Fatalf("GenerateInvoice returned error: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("GenerateInvoice returned empty data")
	}
}
