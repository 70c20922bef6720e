package repositories

import (
	"database/sql"
	"strings"

	intconfig "rentdesk/internal/config"
)

// FinanceRow is one vehicle's aggregate over a reporting period.
type FinanceRow struct {
	VehicleID   int64  `json:"vehicle_id"`
	VehicleCode string `json:"vehicle_code"`
	TripCount   int    `json:"trip_count"`
	Revenue     int64  `json:"revenue"`
	Profit      int64  `json:"profit"`
}

type ReportRepository struct {
	DB *sql.DB
}

func (r ReportRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// FinancePerVehicle aggregates completed trips per vehicle, optionally
// bounded by leaving date (YYYY-MM-DD).
func (r ReportRepository) FinancePerVehicle(startDate, endDate string) ([]FinanceRow, error) {
	where := []string{"t.trip_status='Completed'"}
	args := []any{}
	if s := strings.TrimSpace(startDate); s != "" {
		where = append(where, "DATE(t.leaving_datetime)>=?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(endDate); s != "" {
		where = append(where, "DATE(t.leaving_datetime)<=?")
		args = append(args, s)
	}

	query := `
		SELECT t.vehicle_id,
		       COALESCE(v.vehicle_code,''),
		       COUNT(*),
		       COALESCE(SUM(t.total_actual_cost),0),
		       COALESCE(SUM(t.profit),0)
		FROM trips t
		LEFT JOIN vehicles v ON v.id=t.vehicle_id
		WHERE ` + strings.Join(where, " AND ") + `
		GROUP BY t.vehicle_id, v.vehicle_code
		ORDER BY v.vehicle_code ASC`

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []FinanceRow{}
	for rows.Next() {
		var row FinanceRow
		if err := rows.Scan(&row.VehicleID, &row.VehicleCode, &row.TripCount, &row.Revenue, &row.Profit); err != nil {
			return out, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
