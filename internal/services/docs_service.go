package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"

	"rentdesk/internal/domain"
	"rentdesk/internal/domain/models"
	"rentdesk/internal/repositories"
	"rentdesk/internal/utils"
)

// DocsService renders a persisted trip snapshot to a printable invoice. It
// consumes the final cost and payment fields only and triggers no
// recomputation beyond the standard read path.
type DocsService struct {
	Trips        TripService
	CustomerRepo repositories.CustomerRepository
	VehicleRepo  repositories.VehicleRepository
	RequestID    string

	Loader func(int64) (tripDocData, error) // test seam
}

type tripDocData struct {
	Trip           models.Trip
	Breakdown      domain.CostBreakdown
	Reconciliation domain.Reconciliation
	Provisional    bool

	CustomerName string
	VehicleCode  string
	PlateNumber  string
}

// GenerateInvoice renders the invoice PDF for a trip.
func (s DocsService) GenerateInvoice(ctx context.Context, tripID int64) ([]byte, string, error) {
	data, err := s.loadTripDocData(ctx, tripID)
	if err != nil {
		return nil, "", err
	}
	utils.LogEvent(s.RequestID, "docs", "generate_invoice", fmt.Sprintf("trip_id=%d", tripID))
	return buildInvoicePDF(data)
}

func (s DocsService) loadTripDocData(ctx context.Context, tripID int64) (tripDocData, error) {
	if s.Loader != nil {
		return s.Loader(tripID)
	}

	view, err := s.Trips.Get(ctx, tripID)
	if err != nil {
		return tripDocData{}, err
	}

	data := tripDocData{
		Trip:           view.Trip,
		Breakdown:      view.Estimated,
		Reconciliation: view.Reconciliation,
		Provisional:    view.Actual == nil,
	}
	if view.Actual != nil {
		data.Breakdown = *view.Actual
	}

	if c, err := s.CustomerRepo.GetByID(view.Trip.CustomerID); err == nil {
		data.CustomerName = c.Name
	}
	if v, err := s.VehicleRepo.GetByID(view.Trip.VehicleID); err == nil {
		data.VehicleCode = v.VehicleCode
		data.PlateNumber = v.PlateNumber
	}
	return data, nil
}

func buildInvoicePDF(d tripDocData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Invoice", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP INVOICE")
	pdf.Ln(12)

	invNo := fmt.Sprintf("INV-%d-%s", d.Trip.ID, strings.ToUpper(uuid.NewString()[:8]))
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, "Invoice no : "+invNo)
	pdf.Ln(7)
	pdf.Cell(0, 7, "Date       : "+time.Now().Format("2006-01-02 15:04"))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Billed to:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 7, fmt.Sprintf("Customer : %s", safe(d.CustomerName, "-")))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Trip:")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("Route      : %s -> %s", safe(d.Trip.FromLocation, "-"), safe(d.Trip.ToLocation, "-")),
		fmt.Sprintf("Vehicle    : %s (%s)", safe(d.VehicleCode, "-"), safe(d.PlateNumber, "-")),
		fmt.Sprintf("Leaving    : %s", utils.FormatDateTime(d.Trip.LeavingDatetime)),
		fmt.Sprintf("Days       : %d", d.Breakdown.Days),
		fmt.Sprintf("Distance   : %.1f km", d.Breakdown.DistanceKm),
		fmt.Sprintf("Status     : %s", d.Trip.Status),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 7, "Charges:")
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
	rows := []struct {
		label  string
		amount int64
	}{
		{"Vehicle rent/lease", d.Breakdown.VehicleCost},
		{"Mileage", d.Breakdown.DefaultDistanceCost},
		{"Additional mileage", d.Breakdown.AdditionalDistanceCost},
		{"Driver", d.Breakdown.DriverCost},
		{"Other costs", d.Breakdown.OtherCostsSum},
		{"Discount", -d.Breakdown.Discount},
		{"Damage", d.Breakdown.DamageCost},
	}
	for _, row := range rows {
		if row.amount == 0 {
			continue
		}
		pdf.Cell(120, 6, row.label)
		pdf.Cell(0, 6, utils.FormatMoney(row.amount))
		pdf.Ln(6)
	}
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(120, 8, "Total")
	pdf.Cell(0, 8, utils.FormatMoney(d.Breakdown.TotalCost))
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(120, 6, "Paid")
	pdf.Cell(0, 6, utils.FormatMoney(d.Reconciliation.AmountPaid))
	pdf.Ln(6)
	pdf.Cell(120, 6, "Due")
	pdf.Cell(0, 6, utils.FormatMoney(d.Reconciliation.AmountDue))
	pdf.Ln(10)

	if d.Provisional {
		pdf.SetFont("Helvetica", "I", 10)
		pdf.MultiCell(0, 6, "Note: the trip has not ended yet; figures are estimates and will be finalized at return.", "", "", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("INVOICE_TRIP_%d.pdf", d.Trip.ID)
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
