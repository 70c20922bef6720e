package models

import "time"

// Payment is a single amount received against a trip.
type Payment struct {
	ID          int64     `json:"id"`
	TripID      int64     `json:"trip_id"`
	Amount      int64     `json:"amount"`
	PaymentDate time.Time `json:"payment_date"`
	Method      string    `json:"method,omitempty"`
	Reference   string    `json:"reference,omitempty"`
}
