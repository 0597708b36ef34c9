package workrecord

import (
	"time"

	"github.com/fieldops/billing-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ClockInRequest struct {
	EmployeeID string  `json:"employee_id"`
	ClockIn    string  `json:"clock_in"` // RFC3339; defaults to now when empty
	SiteID     *string `json:"site_id,omitempty"`
	SiteName   *string `json:"site_name,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if r.ClockIn != "" {
		if _, ok := validator.IsValidDateTime(r.ClockIn); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "must be an RFC3339 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	ClockOut string  `json:"clock_out"` // RFC3339; defaults to now when empty
	Notes    *string `json:"notes,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClockOut != "" {
		if _, ok := validator.IsValidDateTime(r.ClockOut); !ok {
			errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "must be an RFC3339 timestamp"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ApprovalDecisionRequest struct {
	Status     string  `json:"status"` // "approved" or "rejected"
	ApprovedBy string  `json:"approved_by"`
	Notes      *string `json:"notes,omitempty"`
}

func (r *ApprovalDecisionRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Status != string(ApprovalStatusApproved) && r.Status != string(ApprovalStatusRejected) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'approved' or 'rejected'"})
	}
	if validator.IsEmpty(r.ApprovedBy) {
		errs = append(errs, validator.ValidationError{Field: "approved_by", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkRecordResponse struct {
	ID             string          `json:"id"`
	EmployeeID     string          `json:"employee_id"`
	EmployeeName   *string         `json:"employee_name,omitempty"`
	SiteID         *string         `json:"site_id,omitempty"`
	SiteName       *string         `json:"site_name,omitempty"`
	WorkDate       string          `json:"work_date"`
	ClockIn        *string         `json:"clock_in,omitempty"`
	ClockOut       *string         `json:"clock_out,omitempty"`
	HoursWorked    decimal.Decimal `json:"hours_worked"`
	IsWeekend      bool            `json:"is_weekend"`
	ApprovalStatus string          `json:"approval_status"`
	ApprovedBy     *string         `json:"approved_by,omitempty"`
	ApprovedAt     *string         `json:"approved_at,omitempty"`
	Notes          *string         `json:"notes,omitempty"`
}

func ToResponse(r WorkRecord) WorkRecordResponse {
	resp := WorkRecordResponse{
		ID:             r.ID,
		EmployeeID:     r.EmployeeID,
		EmployeeName:   r.EmployeeName,
		SiteID:         r.SiteID,
		SiteName:       r.SiteName,
		WorkDate:       r.WorkDate.Format("2006-01-02"),
		HoursWorked:    r.HoursWorked,
		IsWeekend:      r.IsWeekend,
		ApprovalStatus: string(r.ApprovalStatus),
		ApprovedBy:     r.ApprovedBy,
		Notes:          r.Notes,
	}
	if r.ClockIn != nil {
		s := r.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &s
	}
	if r.ClockOut != nil {
		s := r.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &s
	}
	if r.ApprovedAt != nil {
		s := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &s
	}
	return resp
}
