package domain

import (
	"encoding/json"
	"math"
	"time"
)

// DateLayout is the calendar date format used for invoice dates
const DateLayout = "2006-01-02"

// DateOnly is a custom type for handling date-only strings from JSON
type DateOnly struct {
	time.Time
}

// NewDateOnly truncates t to its UTC calendar day
func NewDateOnly(t time.Time) DateOnly {
	u := t.UTC()
	return DateOnly{Time: time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)}
}

// String formats the date as YYYY-MM-DD
func (d DateOnly) String() string {
	return d.Time.Format(DateLayout)
}

// UnmarshalJSON implements custom unmarshaling for date-only strings
func (d *DateOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}

	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}

	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// MarshalJSON implements custom marshaling for date-only strings
func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.String())
}

// InvoiceStatus is the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusPending InvoiceStatus = "pending"
)

// Valid reports whether s is one of the known statuses
func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusPaid, InvoiceStatusPending:
		return true
	}
	return false
}

// Invoice represents a billing record owned by a customer.
// Amount is stored in cents.
type Invoice struct {
	ID         string        `json:"id"`
	CustomerID string        `json:"customerId"`
	Amount     int64         `json:"amount"`
	Status     InvoiceStatus `json:"status"`
	Date       DateOnly      `json:"date"`
}

// ToCents converts a decimal currency amount to cents, rounding half away from zero
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
