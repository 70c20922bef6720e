package repositories

import (
	"database/sql"
	"strings"
	"time"

	intconfig "rentdesk/internal/config"
	intdb "rentdesk/internal/db"
	"rentdesk/internal/domain"
	"rentdesk/internal/domain/models"
	"rentdesk/internal/utils"
)

// runner is the statement surface shared by *sql.DB and *sql.Tx, so the
// write paths can run inside or outside a transaction.
type runner interface {
	Exec(query string, args ...any) (sql.Result, error)
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
}

type TripRepository struct {
	DB *sql.DB
}

func (r TripRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Begin opens a transaction for multi-statement writes.
func (r TripRepository) Begin() (*sql.Tx, error) {
	return r.db().Begin()
}

// TripFilter narrows List results.
type TripFilter struct {
	Status     string
	CustomerID int64
	VehicleID  int64
	StartDate  string // YYYY-MM-DD, on leaving_datetime
	EndDate    string
	Page       int
	Limit      int
}

const tripColumns = `
	id,
	customer_id,
	vehicle_id,
	driver_id,
	COALESCE(from_location,''),
	COALESCE(to_location,''),
	COALESCE(waypoints,''),
	COALESCE(estimated_distance_km,0),
	COALESCE(actual_distance_km,0),
	leaving_datetime,
	estimated_return_datetime,
	actual_return_datetime,
	COALESCE(estimated_days,1),
	driver_required,
	fuel_required,
	COALESCE(up_down,'Both'),
	start_meter,
	end_meter,
	COALESCE(discount,0),
	COALESCE(damage_cost,0),
	COALESCE(total_estimated_cost,0),
	COALESCE(total_actual_cost,0),
	COALESCE(profit,0),
	COALESCE(payment_status,'Unpaid'),
	COALESCE(trip_status,'Pending'),
	COALESCE(version,0),
	created_at,
	updated_at`

func scanTrip(row interface{ Scan(...any) error }) (models.Trip, error) {
	var (
		t         models.Trip
		driverID  sql.NullInt64
		waypoints string
		actualRet sql.NullTime
		startM    sql.NullInt64
		endM      sql.NullInt64
	)
	err := row.Scan(
		&t.ID,
		&t.CustomerID,
		&t.VehicleID,
		&driverID,
		&t.FromLocation,
		&t.ToLocation,
		&waypoints,
		&t.EstimatedDistanceKm,
		&t.ActualDistanceKm,
		&t.LeavingDatetime,
		&t.EstimatedReturnDatetime,
		&actualRet,
		&t.EstimatedDays,
		&t.DriverRequired,
		&t.FuelRequired,
		&t.UpDown,
		&startM,
		&endM,
		&t.Discount,
		&t.DamageCost,
		&t.TotalEstimatedCost,
		&t.TotalActualCost,
		&t.Profit,
		&t.PaymentStatus,
		&t.Status,
		&t.Version,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return models.Trip{}, err
	}
	if driverID.Valid {
		t.DriverID = &driverID.Int64
	}
	if waypoints != "" {
		t.Waypoints = utils.SplitWaypoints(waypoints)
	}
	if actualRet.Valid {
		ret := actualRet.Time
		t.ActualReturnDatetime = &ret
	}
	if startM.Valid {
		t.StartMeter = &startM.Int64
	}
	if endM.Valid {
		t.EndMeter = &endM.Int64
	}
	return t, nil
}

// Create inserts the trip row plus its initial other-cost lines in one
// transaction. The trip comes back with its assigned id and version 0.
func (r TripRepository) Create(t models.Trip) (models.Trip, error) {
	tx, err := r.Begin()
	if err != nil {
		return models.Trip{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
		INSERT INTO trips (
			customer_id, vehicle_id, driver_id,
			from_location, to_location, waypoints,
			estimated_distance_km, actual_distance_km,
			leaving_datetime, estimated_return_datetime,
			estimated_days, driver_required, fuel_required, up_down,
			discount, damage_cost,
			total_estimated_cost, total_actual_cost, profit,
			payment_status, trip_status, version,
			created_at, updated_at
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,0,NOW(),NOW())
	`,
		t.CustomerID, t.VehicleID, nullableID(t.DriverID),
		t.FromLocation, t.ToLocation, intdb.NullIfEmpty(utils.JoinWaypoints(t.Waypoints)),
		t.EstimatedDistanceKm, t.ActualDistanceKm,
		t.LeavingDatetime, t.EstimatedReturnDatetime,
		t.EstimatedDays, t.DriverRequired, t.FuelRequired, t.UpDown,
		t.Discount, t.DamageCost,
		t.TotalEstimatedCost, t.TotalActualCost, t.Profit,
		string(t.PaymentStatus), string(t.Status),
	)
	if err != nil {
		return models.Trip{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return models.Trip{}, err
	}
	t.ID = id
	t.Version = 0

	for i := range t.OtherCosts {
		t.OtherCosts[i].TripID = id
		ocID, err := insertOtherCost(tx, t.OtherCosts[i])
		if err != nil {
			return models.Trip{}, err
		}
		t.OtherCosts[i].ID = ocID
	}
	if err := tx.Commit(); err != nil {
		return models.Trip{}, err
	}
	return t, nil
}

// GetByID loads the full aggregate: trip row, payments, other costs.
func (r TripRepository) GetByID(id int64) (models.Trip, error) {
	row := r.db().QueryRow(`SELECT`+tripColumns+` FROM trips WHERE id=? LIMIT 1`, id)
	t, err := scanTrip(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Trip{}, domain.NotFoundError{Resource: "trip"}
		}
		return models.Trip{}, err
	}

	if t.Payments, err = r.payments(id); err != nil {
		return models.Trip{}, err
	}
	if t.OtherCosts, err = r.otherCosts(id); err != nil {
		return models.Trip{}, err
	}
	return t, nil
}

// List returns trip rows (without payments/other costs) matching the filter.
func (r TripRepository) List(f TripFilter) ([]models.Trip, error) {
	where := []string{"1=1"}
	args := []any{}

	if s := strings.TrimSpace(f.Status); s != "" {
		where = append(where, "trip_status=?")
		args = append(args, s)
	}
	if f.CustomerID > 0 {
		where = append(where, "customer_id=?")
		args = append(args, f.CustomerID)
	}
	if f.VehicleID > 0 {
		where = append(where, "vehicle_id=?")
		args = append(args, f.VehicleID)
	}
	if s := strings.TrimSpace(f.StartDate); s != "" {
		where = append(where, "DATE(leaving_datetime)>=?")
		args = append(args, s)
	}
	if s := strings.TrimSpace(f.EndDate); s != "" {
		where = append(where, "DATE(leaving_datetime)<=?")
		args = append(args, s)
	}

	query := `SELECT` + tripColumns + ` FROM trips WHERE ` + strings.Join(where, " AND ") + ` ORDER BY leaving_datetime DESC, id DESC`

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	page := f.Page
	if page < 1 {
		page = 1
	}
	query += " LIMIT ? OFFSET ?"
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db().Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Update writes the trip row guarded by its version: the write succeeds only
// against the version the caller read, and bumps it. A stale version
// surfaces as a conflict so the caller can re-fetch and retry.
func (r TripRepository) Update(t models.Trip) (models.Trip, error) {
	return update(r.db(), t)
}

// UpdateTx is Update inside a caller-owned transaction, for writes that must
// land atomically with payment or other-cost rows.
func (r TripRepository) UpdateTx(tx *sql.Tx, t models.Trip) (models.Trip, error) {
	return update(tx, t)
}

func update(e runner, t models.Trip) (models.Trip, error) {
	res, err := e.Exec(`
		UPDATE trips SET
			customer_id=?, vehicle_id=?, driver_id=?,
			from_location=?, to_location=?, waypoints=?,
			estimated_distance_km=?, actual_distance_km=?,
			leaving_datetime=?, estimated_return_datetime=?, actual_return_datetime=?,
			estimated_days=?, driver_required=?, fuel_required=?, up_down=?,
			start_meter=?, end_meter=?,
			discount=?, damage_cost=?,
			total_estimated_cost=?, total_actual_cost=?, profit=?,
			payment_status=?, trip_status=?,
			version=version+1, updated_at=NOW()
		WHERE id=? AND version=?
	`,
		t.CustomerID, t.VehicleID, nullableID(t.DriverID),
		t.FromLocation, t.ToLocation, intdb.NullIfEmpty(utils.JoinWaypoints(t.Waypoints)),
		t.EstimatedDistanceKm, t.ActualDistanceKm,
		t.LeavingDatetime, t.EstimatedReturnDatetime, nullableTime(t.ActualReturnDatetime),
		t.EstimatedDays, t.DriverRequired, t.FuelRequired, t.UpDown,
		nullableID(t.StartMeter), nullableID(t.EndMeter),
		t.Discount, t.DamageCost,
		t.TotalEstimatedCost, t.TotalActualCost, t.Profit,
		string(t.PaymentStatus), string(t.Status),
		t.ID, t.Version,
	)
	if err != nil {
		return models.Trip{}, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Trip{}, err
	}
	if affected == 0 {
		var exists int
		if err := e.QueryRow(`SELECT COUNT(*) FROM trips WHERE id=?`, t.ID).Scan(&exists); err == nil && exists == 0 {
			return models.Trip{}, domain.NotFoundError{Resource: "trip"}
		}
		return models.Trip{}, domain.ConflictError{Resource: "trip", Msg: "modified concurrently"}
	}
	t.Version++
	return t, nil
}

func (r TripRepository) payments(tripID int64) ([]models.Payment, error) {
	rows, err := r.db().Query(`
		SELECT id, trip_id, amount, payment_date, COALESCE(method,''), COALESCE(reference,'')
		FROM trip_payments
		WHERE trip_id=?
		ORDER BY payment_date ASC, id ASC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Payment{}
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.TripID, &p.Amount, &p.PaymentDate, &p.Method, &p.Reference); err != nil {
			return out, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r TripRepository) otherCosts(tripID int64) ([]models.OtherCost, error) {
	rows, err := r.db().Query(`
		SELECT id, trip_id, COALESCE(cost_type,''), amount
		FROM trip_other_costs
		WHERE trip_id=?
		ORDER BY id ASC
	`, tripID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.OtherCost{}
	for rows.Next() {
		var oc models.OtherCost
		if err := rows.Scan(&oc.ID, &oc.TripID, &oc.CostType, &oc.Amount); err != nil {
			return out, err
		}
		out = append(out, oc)
	}
	return out, rows.Err()
}

// InsertOtherCost appends an extra cost line.
func (r TripRepository) InsertOtherCost(oc models.OtherCost) (int64, error) {
	return insertOtherCost(r.db(), oc)
}

// InsertOtherCostTx is InsertOtherCost inside a caller-owned transaction.
func (r TripRepository) InsertOtherCostTx(tx *sql.Tx, oc models.OtherCost) (int64, error) {
	return insertOtherCost(tx, oc)
}

func insertOtherCost(e runner, oc models.OtherCost) (int64, error) {
	res, err := e.Exec(`
		INSERT INTO trip_other_costs (trip_id, cost_type, amount) VALUES (?,?,?)
	`, oc.TripID, oc.CostType, oc.Amount)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// DeleteOtherCost removes an extra cost line.
func (r TripRepository) DeleteOtherCost(id int64) error {
	return deleteOtherCost(r.db(), id)
}

// DeleteOtherCostTx is DeleteOtherCost inside a caller-owned transaction.
func (r TripRepository) DeleteOtherCostTx(tx *sql.Tx, id int64) error {
	return deleteOtherCost(tx, id)
}

func deleteOtherCost(e runner, id int64) error {
	res, err := e.Exec(`DELETE FROM trip_other_costs WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "other cost"}
	}
	return nil
}

func nullableID(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
