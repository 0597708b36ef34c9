package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	workRecordDomain "github.com/fieldops/billing-backend-go/internal/domain/workrecord"
	"github.com/fieldops/billing-backend-go/internal/handler/http/response"
	"github.com/fieldops/billing-backend-go/internal/service/workrecord"
	"github.com/go-chi/chi/v5"
)

type WorkRecordHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	Decide(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type WorkRecordHandlerImpl struct {
	workRecordService workrecord.Service
}

func NewWorkRecordHandler(workRecordService workrecord.Service) WorkRecordHandler {
	return &WorkRecordHandlerImpl{workRecordService: workRecordService}
}

func (h *WorkRecordHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req workRecordDomain.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Clock-in decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.workRecordService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in successfully", record)
}

func (h *WorkRecordHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work record ID is required", nil)
		return
	}

	var req workRecordDomain.ClockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Clock-out decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	record, err := h.workRecordService.ClockOut(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out successfully", record)
}

func (h *WorkRecordHandlerImpl) Decide(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		response.BadRequest(w, "Work record ID is required", nil)
		return
	}

	var req workRecordDomain.ApprovalDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Approval decision decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.workRecordService.Decide(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if result.PipelineError != "" {
		slog.Error("billing pipeline failed after approval",
			"work_record_id", id,
			"employee_id", result.Record.EmployeeID,
			"error", result.PipelineError)
	}

	response.SuccessWithMessage(w, "Decision recorded", result)
}

func (h *WorkRecordHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	employeeID := r.URL.Query().Get("employee_id")
	if employeeID == "" {
		response.BadRequest(w, "employee_id query parameter is required", nil)
		return
	}

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

	var status *workRecordDomain.ApprovalStatus
	if s := r.URL.Query().Get("status"); s != "" {
		st := workRecordDomain.ApprovalStatus(s)
		status = &st
	}

	records, err := h.workRecordService.List(r.Context(), employeeID, year, month, status)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, records)
}
