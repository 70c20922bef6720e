package repositories

import (
	"database/sql"
	"strings"

	intconfig "rentdesk/internal/config"
	"rentdesk/internal/domain"
	"rentdesk/internal/domain/models"
)

type CustomerRepository struct {
	DB *sql.DB
}

func (r CustomerRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

const customerColumns = `
	id,
	COALESCE(name,''),
	COALESCE(phone,''),
	COALESCE(email,''),
	COALESCE(address,''),
	COALESCE(nic,'')`

func scanCustomer(row interface{ Scan(...any) error }) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.NIC)
	if err != nil {
		return models.Customer{}, err
	}
	return c, nil
}

// GetByID loads one customer.
func (r CustomerRepository) GetByID(id int64) (models.Customer, error) {
	row := r.db().QueryRow(`SELECT`+customerColumns+` FROM customers WHERE id=? LIMIT 1`, id)
	c, err := scanCustomer(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Customer{}, domain.NotFoundError{Resource: "customer"}
		}
		return models.Customer{}, err
	}
	return c, nil
}

// List searches customers by name, phone or NIC.
func (r CustomerRepository) List(q string, page, limit int) ([]models.Customer, error) {
	where := "1=1"
	args := []any{}
	if q = strings.TrimSpace(q); q != "" {
		where = "(name LIKE ? OR phone LIKE ? OR nic LIKE ?)"
		like := "%" + q + "%"
		args = append(args, like, like, like)
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if page < 1 {
		page = 1
	}
	args = append(args, limit, (page-1)*limit)

	rows, err := r.db().Query(`SELECT`+customerColumns+` FROM customers WHERE `+where+` ORDER BY name ASC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Customer{}
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return out, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Create inserts a customer.
func (r CustomerRepository) Create(c models.Customer) (int64, error) {
	res, err := r.db().Exec(`
		INSERT INTO customers (name, phone, email, address, nic, created_at, updated_at)
		VALUES (?,?,?,?,?,NOW(),NOW())
	`, c.Name, c.Phone, c.Email, c.Address, c.NIC)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Update rewrites a customer row.
func (r CustomerRepository) Update(c models.Customer) error {
	res, err := r.db().Exec(`
		UPDATE customers SET name=?, phone=?, email=?, address=?, nic=?, updated_at=NOW()
		WHERE id=?
	`, c.Name, c.Phone, c.Email, c.Address, c.NIC, c.ID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "customer"}
	}
	return nil
}

// Delete removes a customer.
func (r CustomerRepository) Delete(id int64) error {
	res, err := r.db().Exec(`DELETE FROM customers WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "customer"}
	}
	return nil
}
