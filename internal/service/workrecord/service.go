package workrecord

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldops/billing-backend-go/internal/domain/employee"
	"github.com/fieldops/billing-backend-go/internal/domain/workrecord"
	"github.com/fieldops/billing-backend-go/internal/pkg/validator"
	"github.com/fieldops/billing-backend-go/internal/service/billing"
	"github.com/fieldops/billing-backend-go/internal/service/timesheet"
	"github.com/shopspring/decimal"
)

// DecisionResult reports an approval decision plus the outcome of the billing
// pipeline it triggered. Pipeline failures are surfaced here, not swallowed:
// the record decision stands either way and the caller decides how to react.
type DecisionResult struct {
	Record            workrecord.WorkRecordResponse `json:"record"`
	PipelineTriggered bool                          `json:"pipeline_triggered"`
	PipelineError     string                        `json:"pipeline_error,omitempty"`
}

type Service interface {
	ClockIn(ctx context.Context, req workrecord.ClockInRequest) (workrecord.WorkRecordResponse, error)
	ClockOut(ctx context.Context, id string, req workrecord.ClockOutRequest) (workrecord.WorkRecordResponse, error)
	Decide(ctx context.Context, id string, req workrecord.ApprovalDecisionRequest) (DecisionResult, error)
	List(ctx context.Context, employeeID string, year, month int, status *workrecord.ApprovalStatus) ([]workrecord.WorkRecordResponse, error)
}

type workRecordServiceImpl struct {
	workRecordRepo workrecord.WorkRecordRepository
	employeeRepo   employee.EmployeeRepository
	billingSvc     billing.Service
	now            func() time.Time
}

func NewWorkRecordService(
	workRecordRepo workrecord.WorkRecordRepository,
	employeeRepo employee.EmployeeRepository,
	billingSvc billing.Service,
) Service {
	return &workRecordServiceImpl{
		workRecordRepo: workRecordRepo,
		employeeRepo:   employeeRepo,
		billingSvc:     billingSvc,
		now:            time.Now,
	}
}

func isWeekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// ClockIn opens a work record for the employee's current day. One record per
// employee per date; the unique key rejects doubles.
func (s *workRecordServiceImpl) ClockIn(ctx context.Context, req workrecord.ClockInRequest) (workrecord.WorkRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return workrecord.WorkRecordResponse{}, err
	}

	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		return workrecord.WorkRecordResponse{}, err
	}

	clockIn := s.now().UTC()
	if req.ClockIn != "" {
		t, _ := validator.IsValidDateTime(req.ClockIn)
		clockIn = t.UTC()
	}
	workDate := time.Date(clockIn.Year(), clockIn.Month(), clockIn.Day(), 0, 0, 0, 0, time.UTC)

	record := workrecord.WorkRecord{
		EmployeeID:     req.EmployeeID,
		SiteID:         req.SiteID,
		SiteName:       req.SiteName,
		WorkDate:       workDate,
		ClockIn:        &clockIn,
		HoursWorked:    decimal.Zero,
		IsWeekend:      isWeekend(workDate),
		ApprovalStatus: workrecord.ApprovalStatusPending,
		Notes:          req.Notes,
	}

	created, err := s.workRecordRepo.Create(ctx, record)
	if err != nil {
		return workrecord.WorkRecordResponse{}, err
	}

	return workrecord.ToResponse(created), nil
}

// ClockOut closes an open record and computes the worked hours.
func (s *workRecordServiceImpl) ClockOut(ctx context.Context, id string, req workrecord.ClockOutRequest) (workrecord.WorkRecordResponse, error) {
	if err := req.Validate(); err != nil {
		return workrecord.WorkRecordResponse{}, err
	}

	record, err := s.workRecordRepo.GetByID(ctx, id)
	if err != nil {
		return workrecord.WorkRecordResponse{}, err
	}
	if record.ClockOut != nil {
		return workrecord.WorkRecordResponse{}, workrecord.ErrAlreadyClockedOut
	}
	if record.ClockIn == nil {
		return workrecord.WorkRecordResponse{}, workrecord.ErrMissingClockIn
	}

	clockOut := s.now().UTC()
	if req.ClockOut != "" {
		t, _ := validator.IsValidDateTime(req.ClockOut)
		clockOut = t.UTC()
	}
	if !clockOut.After(*record.ClockIn) {
		return workrecord.WorkRecordResponse{}, fmt.Errorf("clock-out %s is not after clock-in %s",
			clockOut.Format(time.RFC3339), record.ClockIn.Format(time.RFC3339))
	}

	record.ClockOut = &clockOut
	record.HoursWorked = decimal.NewFromFloat(clockOut.Sub(*record.ClockIn).Hours()).Round(2)
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if err := s.workRecordRepo.Update(ctx, record); err != nil {
		return workrecord.WorkRecordResponse{}, err
	}

	return workrecord.ToResponse(record), nil
}

// Decide records an approval decision. An approval re-runs the billing
// pipeline for the record's period; the pipeline outcome rides along in the
// result instead of failing the decision.
func (s *workRecordServiceImpl) Decide(ctx context.Context, id string, req workrecord.ApprovalDecisionRequest) (DecisionResult, error) {
	if err := req.Validate(); err != nil {
		return DecisionResult{}, err
	}

	record, err := s.workRecordRepo.GetByID(ctx, id)
	if err != nil {
		return DecisionResult{}, err
	}
	if record.ApprovalStatus != workrecord.ApprovalStatusPending {
		return DecisionResult{}, workrecord.ErrAlreadyDecided
	}

	decidedAt := s.now().UTC()
	record.ApprovalStatus = workrecord.ApprovalStatus(req.Status)
	record.ApprovedBy = &req.ApprovedBy
	record.ApprovedAt = &decidedAt
	if req.Notes != nil {
		record.Notes = req.Notes
	}

	if err := s.workRecordRepo.Update(ctx, record); err != nil {
		return DecisionResult{}, err
	}

	result := DecisionResult{Record: workrecord.ToResponse(record)}

	if record.ApprovalStatus == workrecord.ApprovalStatusApproved {
		result.PipelineTriggered = true
		recordDate := record.WorkDate.Format("2006-01-02")
		if err := s.billingSvc.ProcessTimesheetOnStatusChange(ctx, record.EmployeeID, recordDate); err != nil {
			result.PipelineError = err.Error()
		}
	}

	return result, nil
}

// List returns an employee's records for one billing period.
func (s *workRecordServiceImpl) List(ctx context.Context, employeeID string, year, month int, status *workrecord.ApprovalStatus) ([]workrecord.WorkRecordResponse, error) {
	from, to := timesheet.PeriodBounds(year, month)

	records, err := s.workRecordRepo.ListByEmployeePeriod(ctx, employeeID, from, to, status)
	if err != nil {
		return nil, err
	}

	result := make([]workrecord.WorkRecordResponse, 0, len(records))
	for _, r := range records {
		result = append(result, workrecord.ToResponse(r))
	}

	return result, nil
}
