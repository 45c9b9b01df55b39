package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ridwanfathin/invoice-dashboard-service/internal/model"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/repository"
	"github.com/ridwanfathin/invoice-dashboard-service/internal/service"
)

// InvoiceHandler handles the dashboard invoice forms
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	logger         *zap.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService service.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// RegisterRoutes registers the handler's routes with the given router
func (h *InvoiceHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/dashboard/invoices", h.ListInvoices)
	router.GET("/dashboard/invoices/:id", h.GetInvoice)
	router.POST("/dashboard/invoices", h.CreateInvoice)
	router.POST("/dashboard/invoices/:id", h.UpdateInvoice)
	router.POST("/dashboard/invoices/:id/delete", h.DeleteInvoice)
}

// CreateInvoice handles the create invoice form
// @Summary Create an invoice
// @Description Validates the submitted form and stores a new invoice dated today
// @Tags invoices
// @Accept x-www-form-urlencoded
// @Produce json
// @Param customerId formData string true "Customer ID"
// @Param amount formData number true "Amount in dollars"
// @Param status formData string true "Invoice status" Enums(paid, pending)
// @Success 303 "Redirect to the invoice list"
// @Failure 422 {object} model.FormStateResponse "Validation failed"
// @Failure 500 {object} model.FormStateResponse "Database error"
// @Router /dashboard/invoices [post]
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	if err := parseForm(c); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	result := h.invoiceService.CreateInvoice(c.Request.Context(), service.State{}, c.Request.PostForm)
	h.writeResult(c, result)
}

// UpdateInvoice handles the edit invoice form
// @Summary Update an invoice
// @Description Validates the submitted form and replaces customer, amount and status
// @Tags invoices
// @Accept x-www-form-urlencoded
// @Produce json
// @Param id path string true "Invoice ID"
// @Param customerId formData string true "Customer ID"
// @Param amount formData number true "Amount in dollars"
// @Param status formData string true "Invoice status" Enums(paid, pending)
// @Success 303 "Redirect to the invoice list"
// @Failure 422 {object} model.FormStateResponse "Validation failed"
// @Failure 500 {object} model.FormStateResponse "Database error"
// @Router /dashboard/invoices/{id} [post]
func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID, newErrorDetail("id", err.Error()))
		return
	}
	if err := parseForm(c); err != nil {
		respondBadRequest(c, ErrInvalidInput)
		return
	}

	result := h.invoiceService.UpdateInvoice(c.Request.Context(), id, service.State{}, c.Request.PostForm)
	h.writeResult(c, result)
}

// DeleteInvoice handles the delete button
// @Summary Delete an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} model.FormStateResponse "Invoice deleted"
// @Failure 500 {object} model.FormStateResponse "Database error"
// @Router /dashboard/invoices/{id}/delete [post]
func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID, newErrorDetail("id", err.Error()))
		return
	}

	result := h.invoiceService.DeleteInvoice(c.Request.Context(), id)
	h.writeResult(c, result)
}

// GetInvoice returns one invoice for the edit form
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Param id path string true "Invoice ID"
// @Success 200 {object} model.InvoiceResponse
// @Failure 404 {object} model.ErrorResponse "Invoice not found"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /dashboard/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	id, err := getPathParam(c, "id")
	if err != nil {
		respondBadRequest(c, ErrInvalidID, newErrorDetail("id", err.Error()))
		return
	}

	invoice, err := h.invoiceService.GetInvoice(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrInvoiceNotFound) {
			respondNotFound(c, ErrResourceNotFound)
			return
		}
		logError(h.logger, c, "failed to fetch invoice", err)
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	var response model.InvoiceResponse
	response.FromDomain(invoice)
	respondOK(c, response)
}

// ListInvoices returns one page of invoices, newest first
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {array} domain.Invoice
// @Failure 400 {object} model.ErrorResponse "Invalid query parameters"
// @Failure 500 {object} model.ErrorResponse "Internal server error"
// @Router /dashboard/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	page, err := getQueryInt(c, "page", 1)
	if err != nil {
		respondBadRequest(c, ErrInvalidQueryParams, newErrorDetail("page", err.Error()))
		return
	}
	limit, err := getQueryInt(c, "limit", 10)
	if err != nil {
		respondBadRequest(c, ErrInvalidQueryParams, newErrorDetail("limit", err.Error()))
		return
	}
	if err := validatePagination(page, limit); err != nil {
		respondBadRequest(c, ErrInvalidQueryParams, newErrorDetail("pagination", err.Error()))
		return
	}

	payload, err := h.invoiceService.ListInvoicesView(c.Request.Context(), page, limit)
	if err != nil {
		logError(h.logger, c, "failed to list invoices", err)
		respondInternalServerError(c, ErrInternalServer)
		return
	}

	c.Data(StatusOK, "application/json; charset=utf-8", payload)
}

// writeResult turns a mutation result into its HTTP response
func (h *InvoiceHandler) writeResult(c *gin.Context, result service.Result) {
	state := model.FormStateResponse{
		Errors:  result.State.Errors,
		Message: result.State.Message,
	}

	switch result.Kind {
	case service.ResultRedirect:
		respondSeeOther(c, result.RedirectTo)
	case service.ResultInvalid:
		c.JSON(StatusUnprocessableEntity, state)
	case service.ResultStoreError:
		if state.Message != nil {
			_ = c.Error(errors.New(*state.Message))
		}
		c.JSON(StatusInternalServerError, state)
	default:
		respondOK(c, state)
	}
}
