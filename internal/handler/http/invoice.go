package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	invoiceDomain "github.com/fieldops/billing-backend-go/internal/domain/invoice"
	"github.com/fieldops/billing-backend-go/internal/handler/http/response"
	"github.com/fieldops/billing-backend-go/internal/service/invoice"
	"github.com/go-chi/chi/v5"
)

type InvoiceHandler interface {
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
}

type InvoiceHandlerImpl struct {
	invoiceService invoice.Service
}

func NewInvoiceHandler(invoiceService invoice.Service) InvoiceHandler {
	return &InvoiceHandlerImpl{invoiceService: invoiceService}
}

func (h *InvoiceHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Invoice ID is required", nil)
		return
	}

	inv, err := h.invoiceService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, inv)
}

func (h *InvoiceHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var filter invoiceDomain.Filter

	if v := r.URL.Query().Get("employee_id"); v != "" {
		filter.EmployeeID = &v
	}
	if v := r.URL.Query().Get("status"); v != "" {
		status := invoiceDomain.Status(v)
		if !status.Valid() {
			response.HandleError(w, invoiceDomain.ErrInvalidStatus)
			return
		}
		filter.Status = &status
	}
	if v := r.URL.Query().Get("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "year query parameter must be an integer", nil)
			return
		}
		filter.PeriodYear = &year
	}
	if v := r.URL.Query().Get("month"); v != "" {
		month, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "month query parameter must be an integer", nil)
			return
		}
		filter.PeriodMonth = &month
	}

	invoices, err := h.invoiceService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, invoices)
}

func (h *InvoiceHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Invoice ID is required", nil)
		return
	}

	var req invoiceDomain.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Update invoice status decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.invoiceService.UpdateStatus(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Invoice status updated", result)
}
