package http

import (
	"net/http"
	"strconv"

	"github.com/fieldops/billing-backend-go/internal/handler/http/response"
	"github.com/fieldops/billing-backend-go/internal/service/payroll"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GetByID(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &PayrollHandlerImpl{payrollService: payrollService}
}

func (h *PayrollHandlerImpl) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Payroll ID is required", nil)
		return
	}

	record, err := h.payrollService.GetByID(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

func (h *PayrollHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	var year, month *int

	if v := r.URL.Query().Get("year"); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "year query parameter must be an integer", nil)
			return
		}
		year = &y
	}
	if v := r.URL.Query().Get("month"); v != "" {
		m, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "month query parameter must be an integer", nil)
			return
		}
		month = &m
	}

	records, err := h.payrollService.List(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
