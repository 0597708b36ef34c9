package automation

import "github.com/fieldops/billing-backend-go/internal/pkg/validator"

// TimesheetScope is the decoded form of a timesheet-processing request. The
// raw body is a union of optional fields; decoding resolves it into exactly
// one named case and rejects anything ambiguous.
type TimesheetScope interface {
	isTimesheetScope()
}

// SingleRecordStatusChange re-runs the pipeline for the period containing one
// work record whose approval status just changed.
type SingleRecordStatusChange struct {
	EmployeeID string
	RecordDate string // DD.MM.YYYY or YYYY-MM-DD
}

// EmployeeMonth runs the pipeline for one employee and one billing period.
type EmployeeMonth struct {
	EmployeeID string
	Year       int
	Month      int
}

// BatchMonth runs the pipeline for every employee with approved records in
// the period.
type BatchMonth struct {
	Year  int
	Month int
}

func (SingleRecordStatusChange) isTimesheetScope() {}
func (EmployeeMonth) isTimesheetScope()            {}
func (BatchMonth) isTimesheetScope()               {}

// ProcessTimesheetsRequest is the wire form of the timesheet-processing body.
type ProcessTimesheetsRequest struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	RecordDate *string `json:"record_date,omitempty"`
	Year       *int    `json:"year,omitempty"`
	Month      *int    `json:"month,omitempty"`
}

// Scope resolves the request into exactly one TimesheetScope case.
func (r *ProcessTimesheetsRequest) Scope() (TimesheetScope, error) {
	hasEmployee := r.EmployeeID != nil && !validator.IsEmpty(*r.EmployeeID)
	hasRecordDate := r.RecordDate != nil && !validator.IsEmpty(*r.RecordDate)
	hasPeriod := r.Year != nil && r.Month != nil

	switch {
	case hasEmployee && hasRecordDate && !hasPeriod:
		return SingleRecordStatusChange{EmployeeID: *r.EmployeeID, RecordDate: *r.RecordDate}, nil

	case hasEmployee && hasPeriod && !hasRecordDate:
		if !validator.IsValidPeriod(*r.Year, *r.Month) {
			return nil, validator.ValidationErrors{{Field: "period", Message: "year/month out of range"}}
		}
		return EmployeeMonth{EmployeeID: *r.EmployeeID, Year: *r.Year, Month: *r.Month}, nil

	case hasPeriod && !hasEmployee && !hasRecordDate:
		if !validator.IsValidPeriod(*r.Year, *r.Month) {
			return nil, validator.ValidationErrors{{Field: "period", Message: "year/month out of range"}}
		}
		return BatchMonth{Year: *r.Year, Month: *r.Month}, nil
	}

	return nil, validator.ValidationErrors{{
		Field:   "body",
		Message: "must be one of {employee_id, record_date}, {employee_id, year, month} or {year, month}",
	}}
}
