package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fieldops/billing-backend-go/internal/domain/automation"
	"github.com/fieldops/billing-backend-go/internal/handler/http/response"
	"github.com/fieldops/billing-backend-go/internal/pkg/validator"
	"github.com/fieldops/billing-backend-go/internal/service/billing"
)

// respondScopeError answers a body that resolves to no scope, or to more than
// one. That is a malformed request, so it gets a 400 rather than the 422 the
// field validators map to.
func respondScopeError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		response.BadRequest(w, "Invalid request format", validationErrs.ToMap())
		return
	}
	response.HandleError(w, err)
}

type AutomationHandler interface {
	ProcessInvoices(w http.ResponseWriter, r *http.Request)
	ProcessInvoicesBatch(w http.ResponseWriter, r *http.Request)
	ProcessTimesheets(w http.ResponseWriter, r *http.Request)
	ProcessTimesheetsBatch(w http.ResponseWriter, r *http.Request)
}

type AutomationHandlerImpl struct {
	billingService billing.Service
}

func NewAutomationHandler(billingService billing.Service) AutomationHandler {
	return &AutomationHandlerImpl{billingService: billingService}
}

type processInvoicesRequest struct {
	InvoiceID string `json:"invoice_id"`
}

// ProcessInvoices handles the POST form, which processes exactly one invoice.
// The full sweep lives on the GET route; a body without an invoice_id is a
// caller mistake, not a sweep request.
func (h *AutomationHandlerImpl) ProcessInvoices(w http.ResponseWriter, r *http.Request) {
	var req processInvoicesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		slog.Error("Process invoices decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	if req.InvoiceID == "" {
		response.BadRequest(w, "invoice_id is required", nil)
		return
	}

	result, err := h.billingService.ProcessSingleInvoice(r.Context(), req.InvoiceID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice processed", result)
}

func (h *AutomationHandlerImpl) ProcessInvoicesBatch(w http.ResponseWriter, r *http.Request) {
	result, err := h.billingService.ProcessAllInvoices(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice sweep finished", result)
}

// ProcessTimesheets decodes the union body into exactly one scope and
// dispatches to the matching pipeline entry point.
func (h *AutomationHandlerImpl) ProcessTimesheets(w http.ResponseWriter, r *http.Request) {
	var req automation.ProcessTimesheetsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Process timesheets decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	scope, err := req.Scope()
	if err != nil {
		respondScopeError(w, err)
		return
	}

	switch sc := scope.(type) {
	case automation.SingleRecordStatusChange:
		if err := h.billingService.ProcessTimesheetOnStatusChange(r.Context(), sc.EmployeeID, sc.RecordDate); err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, "Timesheet processed", nil)

	case automation.EmployeeMonth:
		result, err := h.billingService.ProcessEmployeeTimesheet(r.Context(), sc.EmployeeID, sc.Year, sc.Month)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, "Timesheet processed", result)

	case automation.BatchMonth:
		result, err := h.billingService.ProcessAllPendingTimesheets(r.Context(), sc.Year, sc.Month)
		if err != nil {
			response.HandleError(w, err)
			return
		}
		response.SuccessWithMessage(w, "Timesheet batch finished", result)
	}
}

// ProcessTimesheetsBatch is the GET form of the batch scope; year and month
// come from the query string.
func (h *AutomationHandlerImpl) ProcessTimesheetsBatch(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "year query parameter must be an integer", nil)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "month query parameter must be an integer", nil)
		return
	}

	req := automation.ProcessTimesheetsRequest{Year: &year, Month: &month}
	scope, scopeErr := req.Scope()
	if scopeErr != nil {
		respondScopeError(w, scopeErr)
		return
	}
	batch := scope.(automation.BatchMonth)

	result, err := h.billingService.ProcessAllPendingTimesheets(r.Context(), batch.Year, batch.Month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Timesheet batch finished", result)
}
