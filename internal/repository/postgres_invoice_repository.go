package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/domain"
)

// PostgresInvoiceRepository implements InvoiceRepository using PostgreSQL
type PostgresInvoiceRepository struct {
	db DBTX
}

// NewPostgresInvoiceRepository creates a new PostgreSQL invoice repository
func NewPostgresInvoiceRepository(db DBTX) *PostgresInvoiceRepository {
	return &PostgresInvoiceRepository{db: db}
}

// CreateInvoice saves a new invoice to the database
func (r *PostgresInvoiceRepository) CreateInvoice(ctx context.Context, invoice *domain.Invoice) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO invoices (id, customer_id, amount, status, date)
		VALUES ($1, $2, $3, $4, $5)
	`, invoice.ID, invoice.CustomerID, invoice.Amount, string(invoice.Status), invoice.Date.Time)
	if err != nil {
		return &RepositoryError{Op: "insert_invoice", Err: err}
	}

	return nil
}

// UpdateInvoice updates customer, amount and status of an existing invoice.
// id and date are never written.
func (r *PostgresInvoiceRepository) UpdateInvoice(ctx context.Context, invoice *domain.Invoice) (int64, error) {
	commandTag, err := r.db.Exec(ctx, `
		UPDATE invoices
		SET customer_id = $1, amount = $2, status = $3
		WHERE id = $4
	`, invoice.CustomerID, invoice.Amount, string(invoice.Status), invoice.ID)
	if err != nil {
		return 0, &RepositoryError{Op: "update_invoice", Err: err}
	}

	return commandTag.RowsAffected(), nil
}

// DeleteInvoice deletes an invoice by its ID
func (r *PostgresInvoiceRepository) DeleteInvoice(ctx context.Context, invoiceID string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM invoices WHERE id = $1`, invoiceID); err != nil {
		return &RepositoryError{Op: "delete_invoice", Err: err}
	}

	return nil
}

// GetInvoiceByID retrieves an invoice by its ID
func (r *PostgresInvoiceRepository) GetInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	var (
		invoice domain.Invoice
		status  string
		date    time.Time
	)
	err := r.db.QueryRow(ctx, `
		SELECT id, customer_id, amount, status, date
		FROM invoices
		WHERE id = $1
	`, invoiceID).Scan(&invoice.ID, &invoice.CustomerID, &invoice.Amount, &status, &date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	invoice.Status = domain.InvoiceStatus(status)
	invoice.Date = domain.NewDateOnly(date)
	return &invoice, nil
}

// ListInvoices retrieves invoices ordered by date, newest first
func (r *PostgresInvoiceRepository) ListInvoices(ctx context.Context, offset, limit int) ([]domain.Invoice, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, customer_id, amount, status, date
		FROM invoices
		ORDER BY date DESC, id
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}
	defer rows.Close()

	invoices := []domain.Invoice{}
	for rows.Next() {
		var (
			invoice domain.Invoice
			status  string
			date    time.Time
		)
		if err := rows.Scan(&invoice.ID, &invoice.CustomerID, &invoice.Amount, &status, &date); err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoice.Status = domain.InvoiceStatus(status)
		invoice.Date = domain.NewDateOnly(date)
		invoices = append(invoices, invoice)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoices: %w", err)
	}

	return invoices, nil
}
