package repositories

import (
	"database/sql"
	"strings"

	intconfig "rentdesk/internal/config"
	"rentdesk/internal/domain"
	"rentdesk/internal/domain/models"
)

type VehicleRepository struct {
	DB *sql.DB
}

func (r VehicleRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const vehicleColumns = `
	id,
	COALESCE(vehicle_code,''),
	COALESCE(plate_number,''),
	COALESCE(vehicle_type,''),
	COALESCE(color,''),
	seats,
	COALESCE(owner_name,''),
	COALESCE(daily_rent_or_lease,0),
	COALESCE(mileage_cost_per_km,0),
	COALESCE(additional_mileage_cost_per_km,0),
	COALESCE(fuel_cost_per_litre,0),
	COALESCE(fuel_efficiency_km_per_litre,0)`

func scanVehicle(row interface{ Scan(...any) error }) (models.Vehicle, error) {
	var (
		v     models.Vehicle
		seats sql.NullInt64
	)
	err := row.Scan(
		&v.ID,
		&v.VehicleCode,
		&v.PlateNumber,
		&v.VehicleType,
		&v.Color,
		&seats,
		&v.OwnerName,
		&v.Tariff.DailyRentOrLease,
		&v.Tariff.MileageCostPerKm,
		&v.Tariff.AdditionalMileageCostPerKm,
		&v.Tariff.FuelCostPerLitre,
		&v.Tariff.FuelEfficiencyKmPerLitre,
	)
	if err != nil {
		return models.Vehicle{}, err
	}
	if seats.Valid {
		n := int(seats.Int64)
		v.Seats = &n
	}
	v.Tariff.VehicleID = v.ID
	return v, nil
}

// GetByID loads one vehicle with its tariff columns.
func (r VehicleRepository) GetByID(id int64) (models.Vehicle, error) {
	row := r.db().QueryRow(`SELECT`+vehicleColumns+` FROM vehicles WHERE id=? LIMIT 1`, id)
	v, err := scanVehicle(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Vehicle{}, domain.NotFoundError{Resource: "vehicle"}
		}
		return models.Vehicle{}, err
	}
	return v, nil
}

// List searches vehicles by code or plate.
func (r VehicleRepository) List(q string, page, limit int) ([]models.Vehicle, error) {
	where := "1=1"
	args := []any{}
	if q = strings.TrimSpace(q); q != "" {
		where = "(vehicle_code LIKE ? OR plate_number LIKE ?)"
		like := "%" + q + "%"
		args = append(args, like, like)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db().Query(`SELECT`+vehicleColumns+` FROM vehicles WHERE `+where+` ORDER BY vehicle_code ASC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// Create inserts a vehicle with its tariff columns.
func (r VehicleRepository) Create(v models.Vehicle) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO vehicles (
			vehicle_code, plate_number, vehicle_type, color, seats, owner_name,
			daily_rent_or_lease, mileage_cost_per_km, additional_mileage_cost_per_km,
			fuel_cost_per_litre, fuel_efficiency_km_per_litre,
			created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,NOW(),NOW())
	`,
		v.VehicleCode, v.PlateNumber, v.VehicleType, v.Color, nullableSeats(v.Seats), v.OwnerName,
		v.Tariff.DailyRentOrLease, v.Tariff.MileageCostPerKm, v.Tariff.AdditionalMileageCostPerKm,
		v.Tariff.FuelCostPerLitre, v.Tariff.FuelEfficiencyKmPerLitre,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites a vehicle row.
func (r VehicleRepository) Update(v models.Vehicle) error {
	res, err := r.db().Exec(`
		UPDATE vehicles SET
			vehicle_code=?, plate_number=?, vehicle_type=?, color=?, seats=?, owner_name=?,
			daily_rent_or_lease=?, mileage_cost_per_km=?, additional_mileage_cost_per_km=?,
			fuel_cost_per_litre=?, fuel_efficiency_km_per_litre=?,
			updated_at=NOW()
		WHERE id=?
	`,
		v.VehicleCode, v.PlateNumber, v.VehicleType, v.Color, nullableSeats(v.Seats), v.OwnerName,
		v.Tariff.DailyRentOrLease, v.Tariff.MileageCostPerKm, v.Tariff.AdditionalMileageCostPerKm,
		v.Tariff.FuelCostPerLitre, v.Tariff.FuelEfficiencyKmPerLitre,
		v.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "vehicle"}
	}
	return nil
}

// Delete removes a vehicle.
func (r VehicleRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM vehicles WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "vehicle"}
	}
	return nil
}

func nullableSeats(n *int) any {
	if n == nil {
		return nil
	}
	return *n
}
