package services

import "rentdesk/internal/repositories"

// FinanceReportFilter bounds the reporting period (YYYY-MM-DD, inclusive).
type FinanceReportFilter struct {
	StartDate string
	EndDate   string
}

// FinanceReport is the per-vehicle aggregate with grand totals.
type FinanceReport struct {
	Rows         []repositories.FinanceRow `json:"rows"`
	TotalTrips   int                       `json:"total_trips"`
	TotalRevenue int64                     `json:"total_revenue"`
	TotalProfit  int64                     `json:"total_profit"`
}

type ReportsService struct {
	ReportRepo repositories.ReportRepository
}

// GetFinanceReport aggregates completed trips per vehicle over the period.
func (s ReportsService) GetFinanceReport(f FinanceReportFilter) (FinanceReport, error) {
	rows, err := s.ReportRepo.FinancePerVehicle(f.StartDate, f.EndDate)
	if err != nil {
		return FinanceReport{}, err
	}

	out := FinanceReport{Rows: rows}
	for _, r := range rows {
		out.TotalTrips += r.TripCount
		out.TotalRevenue += r.Revenue
		out.TotalProfit += r.Profit
	}
	return out, nil
}
