package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/domain"
)

// ErrInvoiceNotFound is returned when no invoice row matches the requested ID
var ErrInvoiceNotFound = errors.New("invoice not found")

// RepositoryError represents an error that occurred within a repository
type RepositoryError struct {
	// Op is the operation that failed
	Op string

	// Err is the underlying store error
	Err error
}

// Error returns a string representation of the error
func (e *RepositoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error
func (e *RepositoryError) Unwrap() error {
	return e.Err
}

// DBTX is the subset of pgxpool.Pool and pgx.Tx used by the repositories
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// InvoiceRepository defines the interface for invoice data operations
type InvoiceRepository interface {
	// CreateInvoice inserts a fully populated invoice
	CreateInvoice(ctx context.Context, invoice *domain.Invoice) error

	// UpdateInvoice replaces customer, amount and status of the invoice with invoice.ID.
	// It returns the number of rows affected; zero is not an error.
	UpdateInvoice(ctx context.Context, invoice *domain.Invoice) (int64, error)

	// DeleteInvoice removes the invoice with the given ID
	DeleteInvoice(ctx context.Context, invoiceID string) error

	// GetInvoiceByID retrieves an invoice by its ID
	GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves invoices newest first with pagination
	ListInvoices(ctx context.Context, offset, limit int) ([]domain.Invoice, error)
}
