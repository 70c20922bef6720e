package repositories

import (
	"database/sql"

	intconfig "rentdesk/internal/config"
	"rentdesk/internal/domain"
	"rentdesk/internal/domain/models"
)

type PaymentRepository struct {
	DB *sql.DB
}

func (r PaymentRepository) db() *sql.DB {
	if r.DB != nil {
		return r.DB
	}
	return intconfig.DB
}

// Insert stores a payment record and returns its id.
func (r PaymentRepository) Insert(p models.Payment) (int64, error) {
	return insertPayment(r.db(), p)
}

// InsertTx is Insert inside a caller-owned transaction, so the payment row
// lands atomically with the trip row it reconciles.
func (r PaymentRepository) InsertTx(tx *sql.Tx, p models.Payment) (int64, error) {
	return insertPayment(tx, p)
}

func insertPayment(e runner, p models.Payment) (int64, error) {
	res, err := e.Exec(`
		INSERT INTO trip_payments (trip_id, amount, payment_date, method, reference)
		VALUES (?,?,?,?,?)
	`, p.TripID, p.Amount, p.PaymentDate, p.Method, p.Reference)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// Delete removes a payment record.
func (r PaymentRepository) Delete(id int64) error {
	return deletePayment(r.db(), id)
}

// DeleteTx is Delete inside a caller-owned transaction.
func (r PaymentRepository) DeleteTx(tx *sql.Tx, id int64) error {
	return deletePayment(tx, id)
}

func deletePayment(e runner, id int64) error {
	res, err := e.Exec(`DELETE FROM trip_payments WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.NotFoundError{Resource: "payment"}
	}
	return nil
}

// GetByID fetches a single payment record.
func (r PaymentRepository) GetByID(id int64) (models.Payment, error) {
	var p models.Payment
	err := r.db().QueryRow(`
		SELECT id, trip_id, amount, payment_date, COALESCE(method,''), COALESCE(reference,'')
		FROM trip_payments
		WHERE id=? LIMIT 1
	`, id).Scan(&p.ID, &p.TripID, &p.Amount, &p.PaymentDate, &p.Method, &p.Reference)
	if err != nil {
		if err == sql.ErrNoRows {
			return models.Payment{}, domain.NotFoundError{Resource: "payment"}
		}
		return models.Payment{}, err
	}
	return p, nil
}

// ListByTrip returns a trip's payments in receipt order.
func (r PaymentRepository) ListByTrip(tripID int64) ([]models.Payment, error) {
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
