package repositories

import (
	"database/sql"
	"strings"

	intconfig "rentdesk/internal/config"
	"rentdesk/internal/domain"
	"rentdesk/internal/domain/models"
)

type DriverRepository struct {
	DB *sql.DB
}

func (r DriverRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const driverColumns = `
	id,
	COALESCE(name,''),
	COALESCE(phone,''),
	COALESCE(license_number,''),
	COALESCE(status,'active'),
	COALESCE(cost_per_day,0)`

func scanDriver(row interface{ Scan(...any) error }) (models.Driver, error) {
	var d models.Driver
	err := row.Scan(
		&d.ID,
		&d.Name,
		&d.Phone,
		&d.LicenseNumber,
		&d.Status,
		&d.Tariff.CostPerDay,
	)
	if err != nil {
		return models.Driver{}, err
	}
	d.Tariff.DriverID = d.ID
	return d, nil
}

// GetByID loads one driver with its day-rate tariff.
func (r DriverRepository) GetByID(id int64) (models.Driver, error) {
	row := r.db().QueryRow(`SELECT`+driverColumns+` FROM drivers WHERE id=? LIMIT 1`, id)
	d, err := scanDriver(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Driver{}, domain.NotFoundError{Resource: "driver"}
		}
		return models.Driver{}, err
	}
	return d, nil
}

// List searches drivers by name or phone.
func (r DriverRepository) List(q string, page, limit int) ([]models.Driver, error) {
	where := "1=1"
	args := []any{}
	if q = strings.TrimSpace(q); q != "" {
		where = "(name LIKE ? OR phone LIKE ?)"
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

	rows, err := r.db().Query(`SELECT`+driverColumns+` FROM drivers WHERE `+where+` ORDER BY name ASC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return out, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// Create inserts a driver.
func (r DriverRepository) Create(d models.Driver) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO drivers (name, phone, license_number, status, cost_per_day, created_at, updated_at)
		VALUES (?,?,?,?,?,NOW(),NOW())
	`, d.Name, d.Phone, d.LicenseNumber, d.Status, d.Tariff.CostPerDay)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites a driver row.
func (r DriverRepository) Update(d models.Driver) error {
	res, err := r.db().Exec(`
		UPDATE drivers SET name=?, phone=?, license_number=?, status=?, cost_per_day=?, updated_at=NOW()
		WHERE id=?
	`, d.Name, d.Phone, d.LicenseNumber, d.Status, d.Tariff.CostPerDay, d.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	return nil
}

// Delete removes a driver.
func (r DriverRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM drivers WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "driver"}
	}
	return nil
}
