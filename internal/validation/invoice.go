// Package validation turns raw invoice form submissions into typed input or
// field-scoped error messages.
package validation

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/ridwanfathin/invoice-dashboard-service/internal/domain"
)

// Operation identifies which mutation a submission is validated for
type Operation int

const (
	OperationCreate Operation = iota
	OperationUpdate
)

// Form field names
const (
	FieldCustomerID = "customerId"
	FieldAmount     = "amount"
	FieldStatus     = "status"
)

// Field error messages
const (
	MsgSelectCustomer = "please select a customer"
	MsgAmountPositive = "please input amount greater than 0$"
	MsgSelectStatus   = "please select a status"
)

// Top-level failure messages
const (
	MsgCreateFailed = "Missing Fields. Failed to Create Invoice."
	MsgUpdateFailed = "Missing Fields. Failed to Update Invoice."
)

// InvoiceInput is the typed, user-supplied part of an invoice.
// Amount is still in decimal currency units.
type InvoiceInput struct {
	CustomerID string
	Amount     float64
	Status     domain.InvoiceStatus
}

// FieldErrors maps a field name to its ordered messages
type FieldErrors map[string][]string

// Add appends a message for field
func (fe FieldErrors) Add(field string, messages ...string) {
	fe[field] = append(fe[field], messages...)
}

// Result is the outcome of validating one submission.
// Exactly one of Input or Errors is meaningful, as reported by OK.
type Result struct {
	Input   InvoiceInput
	Errors  FieldErrors
	Message string
}

// OK reports whether the submission passed every rule
func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// fieldRule validates one raw field and stores the typed value on success
type fieldRule struct {
	name  string
	check func(raw string, present bool, into *InvoiceInput) []string
}

// invoiceRules is the invoice form schema. id and date are never accepted
// from the client, for either operation.
var invoiceRules = []fieldRule{
	{name: FieldCustomerID, check: checkCustomerID},
	{name: FieldAmount, check: checkAmount},
	{name: FieldStatus, check: checkStatus},
}

func checkCustomerID(raw string, present bool, into *InvoiceInput) []string {
	if !present || strings.TrimSpace(raw) == "" {
		return []string{MsgSelectCustomer}
	}
	into.CustomerID = raw
	return nil
}

func checkAmount(raw string, present bool, into *InvoiceInput) []string {
	if !present {
		return []string{MsgAmountPositive}
	}
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return []string{MsgAmountPositive}
	}
	amount, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return []string{MsgAmountPositive}
	}
	// Must survive conversion to whole cents as a positive int64
	if cents := math.Round(amount * 100); cents < 1 || cents >= math.MaxInt64 {
		return []string{MsgAmountPositive}
	}
	into.Amount = amount
	return nil
}

func checkStatus(raw string, present bool, into *InvoiceInput) []string {
	status := domain.InvoiceStatus(raw)
	if !present || !status.Valid() {
		return []string{MsgSelectStatus}
	}
	into.Status = status
	return nil
}

// ValidateInvoice runs every field rule against form and collects all failures
func ValidateInvoice(op Operation, form url.Values) Result {
	var input InvoiceInput
	errs := FieldErrors{}

	for _, rule := range invoiceRules {
		values, present := form[rule.name]
		raw := ""
		if present && len(values) > 0 {
			// a repeated key keeps its last value
			raw = values[len(values)-1]
		} else {
			present = false
		}
		if msgs := rule.check(raw, present, &input); len(msgs) > 0 {
			errs.Add(rule.name, msgs...)
		}
	}

	if len(errs) > 0 {
		return Result{Errors: errs, Message: failureMessage(op)}
	}
	return Result{Input: input}
}

func failureMessage(op Operation) string {
	if op == OperationUpdate {
		return MsgUpdateFailed
	}
	return MsgCreateFailed
}
