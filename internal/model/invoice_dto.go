package model

import (
	"fmt"

	"github.com/ridwanfathin/invoice-dashboard-service/internal/domain"
)

// InvoiceResponse represents a single invoice for the edit form
type InvoiceResponse struct {
	ID         string `json:"id"`
	CustomerID string `json:"customerId"`
	Amount     int64  `json:"amount"` // cents
	Display    string `json:"amountDisplay"`
	Status     string `json:"status"`
	Date       string `json:"date"` // Format: YYYY-MM-DD
}

// FromDomain converts a domain Invoice to an InvoiceResponse
func (dto *InvoiceResponse) FromDomain(invoice *domain.Invoice) {
	dto.ID = invoice.ID
	dto.CustomerID = invoice.CustomerID
	dto.Amount = invoice.Amount
	dto.Display = formatCents(invoice.Amount)
	dto.Status = string(invoice.Status)
	dto.Date = invoice.Date.String()
}

// FormStateResponse is the state returned to a form after a failed or
// non-navigating submission
type FormStateResponse struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message *string             `json:"message"`
}

// LoginStateResponse carries the sign-in form message
type LoginStateResponse struct {
	Message string `json:"message"`
}

// formatCents renders cents as a dollar amount
func formatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}
