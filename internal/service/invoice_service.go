package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ridwanfathin/invoice-dashboard-service/internal/cache"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/domain"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/repository"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/validation"
)

// InvoicesPath is the list view invalidated after every invoice mutation
const InvoicesPath = "/dashboard/invoices"

// Store failure message prefixes
const (
	MsgCreateStoreError = "Database Error: Failed to create invoice: "
	MsgUpdateStoreError = "Database Error: Failed to update the invoice: "
	MsgDeleteStoreError = "Database Error: Failed to delete the invoice: "
)

// State is the form state handed back to the caller for re-rendering
type State struct {
	Errors  map[string][]string `json:"errors,omitempty"`
	Message *string             `json:"message"`
}

// ResultKind classifies a mutation outcome
type ResultKind int

const (
	// ResultDone means the write succeeded and the caller stays on its view
	ResultDone ResultKind = iota
	// ResultRedirect means the write succeeded and the caller navigates to RedirectTo
	ResultRedirect
	// ResultInvalid means the submission failed validation; nothing was written
	ResultInvalid
	// ResultStoreError means the store rejected the write
	ResultStoreError
)

// Result is the outcome of an invoice mutation. Navigation is expressed as
// data; the HTTP layer performs it.
type Result struct {
	Kind       ResultKind
	RedirectTo string
	State      State
}

// InvoiceService defines the interface for invoice form handling
type InvoiceService interface {
	CreateInvoice(ctx context.Context, prev State, form url.Values) Result
	UpdateInvoice(ctx context.Context, id string, prev State, form url.Values) Result
	DeleteInvoice(ctx context.Context, id string) Result

	GetInvoice(ctx context.Context, id string) (*domain.Invoice, error)
	ListInvoicesView(ctx context.Context, page, limit int) ([]byte, error)
}

// InvoiceServiceImpl implements the InvoiceService interface
type InvoiceServiceImpl struct {
	repository repository.InvoiceRepository
	views      cache.ViewCache
	logger     *zap.Logger
	now        func() time.Time
	newID      func() string
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(repo repository.InvoiceRepository, views cache.ViewCache, logger *zap.Logger) *InvoiceServiceImpl {
	if views == nil {
		views = cache.NoopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceServiceImpl{
		repository: repo,
		views:      views,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// CreateInvoice validates form and inserts a new invoice dated today (UTC).
// prev is accepted so forms can round-trip their state; it is not read.
func (s *InvoiceServiceImpl) CreateInvoice(ctx context.Context, prev State, form url.Values) Result {
	validated := validation.ValidateInvoice(validation.OperationCreate, form)
	if !validated.OK() {
		return invalid(validated)
	}

	invoice := &domain.Invoice{
		ID:         s.newID(),
		CustomerID: validated.Input.CustomerID,
		Amount:     domain.ToCents(validated.Input.Amount),
		Status:     validated.Input.Status,
		Date:       domain.NewDateOnly(s.now()),
	}

	if err := s.repository.CreateInvoice(ctx, invoice); err != nil {
		return storeError(MsgCreateStoreError, err)
	}

	s.revalidate(ctx, InvoicesPath)
	return Result{Kind: ResultRedirect, RedirectTo: InvoicesPath}
}

// UpdateInvoice validates form and replaces customer, amount and status of
// invoice id. An id matching no row is a silent no-op.
func (s *InvoiceServiceImpl) UpdateInvoice(ctx context.Context, id string, prev State, form url.Values) Result {
	validated := validation.ValidateInvoice(validation.OperationUpdate, form)
	if !validated.OK() {
		return invalid(validated)
	}

	invoice := &domain.Invoice{
		ID:         id,
		CustomerID: validated.Input.CustomerID,
		Amount:     domain.ToCents(validated.Input.Amount),
		Status:     validated.Input.Status,
	}

	affected, err := s.repository.UpdateInvoice(ctx, invoice)
	if err != nil {
		return storeError(MsgUpdateStoreError, err)
	}
	if affected == 0 {
		s.logger.Debug("invoice update matched no rows", zap.String("invoice_id", id))
	}

	s.revalidate(ctx, InvoicesPath)
	return Result{Kind: ResultRedirect, RedirectTo: InvoicesPath}
}

// DeleteInvoice removes invoice id and invalidates the list without navigating
func (s *InvoiceServiceImpl) DeleteInvoice(ctx context.Context, id string) Result {
	if err := s.repository.DeleteInvoice(ctx, id); err != nil {
		return storeError(MsgDeleteStoreError, err)
	}

	s.revalidate(ctx, InvoicesPath)
	return Result{Kind: ResultDone}
}

// GetInvoice retrieves an invoice for the edit form
func (s *InvoiceServiceImpl) GetInvoice(ctx context.Context, id string) (*domain.Invoice, error) {
	return s.repository.GetInvoiceByID(ctx, id)
}

// ListInvoicesView returns the JSON rendering of one page of the invoice
// list, served from the view cache until the next mutation
func (s *InvoiceServiceImpl) ListInvoicesView(ctx context.Context, page, limit int) ([]byte, error) {
	variant := "page=" + strconv.Itoa(page) + "&limit=" + strconv.Itoa(limit)

	cached, ok, err := s.views.Get(ctx, InvoicesPath, variant)
	if err != nil {
		s.logger.Warn("view cache read failed", zap.String("path", InvoicesPath), zap.Error(err))
	} else if ok {
		return cached, nil
	}

	// Taken before the query so a mutation revalidating meanwhile voids the write
	gen, genErr := s.views.Generation(ctx, InvoicesPath)
	if genErr != nil {
		s.logger.Warn("view cache generation read failed", zap.String("path", InvoicesPath), zap.Error(genErr))
	}

	invoices, err := s.repository.ListInvoices(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(invoices)
	if err != nil {
		return nil, fmt.Errorf("failed to render invoices: %w", err)
	}

	if genErr == nil {
		if err := s.views.Set(ctx, InvoicesPath, variant, gen, payload); err != nil {
			s.logger.Warn("view cache write failed", zap.String("path", InvoicesPath), zap.Error(err))
		}
	}
	return payload, nil
}

// revalidate marks path stale. The write has already committed, so a cache
// failure is logged rather than reported.
func (s *InvoiceServiceImpl) revalidate(ctx context.Context, path string) {
	if err := s.views.RevalidatePath(ctx, path); err != nil {
		s.logger.Warn("failed to revalidate view", zap.String("path", path), zap.Error(err))
	}
}

func invalid(validated validation.Result) Result {
	msg := validated.Message
	return Result{
		Kind: ResultInvalid,
		State: State{
			Errors:  validated.Errors,
			Message: &msg,
		},
	}
}

// storeError builds the failure state from the underlying store error text
func storeError(prefix string, err error) Result {
	msg := prefix + storeCause(err).Error()
	return Result{Kind: ResultStoreError, State: State{Message: &msg}}
}

// storeCause strips the repository operation wrapper, leaving the driver error
func storeCause(err error) error {
	var repoErr *repository.RepositoryError
	if errors.As(err, &repoErr) && repoErr.Err != nil {
		return repoErr.Err
	}
	return err
}
