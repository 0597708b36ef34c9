package employee

import (
	"github.com/fieldops/billing-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	EmployeeCode          string           `json:"employee_code"`
	FullName              string           `json:"full_name"`
	Email                 *string          `json:"email,omitempty"`
	HourlyRate            decimal.Decimal  `json:"hourly_rate"`
	WeekendPayEnabled     *bool            `json:"weekend_pay_enabled,omitempty"`
	WeekendRateMultiplier *decimal.Decimal `json:"weekend_rate_multiplier,omitempty"`
	PaymentCycleDays      *int             `json:"payment_cycle_days,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmployeeCode(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "must match NNNN-NNNN"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is not a valid email address"})
	}
	if r.HourlyRate.IsNegative() || r.HourlyRate.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be positive"})
	}
	if r.WeekendRateMultiplier != nil && r.WeekendRateMultiplier.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "weekend_rate_multiplier", Message: "must be non-negative"})
	}
	if r.PaymentCycleDays != nil && *r.PaymentCycleDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "payment_cycle_days", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	ID                    string
	FullName              *string          `json:"full_name,omitempty"`
	Email                 *string          `json:"email,omitempty"`
	HourlyRate            *decimal.Decimal `json:"hourly_rate,omitempty"`
	WeekendPayEnabled     *bool            `json:"weekend_pay_enabled,omitempty"`
	WeekendRateMultiplier *decimal.Decimal `json:"weekend_rate_multiplier,omitempty"`
	PaymentCycleDays      *int             `json:"payment_cycle_days,omitempty"`
	EmploymentStatus      *string          `json:"employment_status,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "must not be empty"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "is not a valid email address"})
	}
	if r.HourlyRate != nil && (r.HourlyRate.IsNegative() || r.HourlyRate.IsZero()) {
		errs = append(errs, validator.ValidationError{Field: "hourly_rate", Message: "must be positive"})
	}
	if r.WeekendRateMultiplier != nil && r.WeekendRateMultiplier.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "weekend_rate_multiplier", Message: "must be non-negative"})
	}
	if r.PaymentCycleDays != nil && *r.PaymentCycleDays < 0 {
		errs = append(errs, validator.ValidationError{Field: "payment_cycle_days", Message: "must be non-negative"})
	}
	if r.EmploymentStatus != nil && !validator.IsInSlice(*r.EmploymentStatus, []string{
		string(EmploymentStatusActive), string(EmploymentStatusInactive),
	}) {
		errs = append(errs, validator.ValidationError{Field: "employment_status", Message: "must be 'active' or 'inactive'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeResponse struct {
	ID                    string          `json:"id"`
	EmployeeCode          string          `json:"employee_code"`
	FullName              string          `json:"full_name"`
	Email                 *string         `json:"email,omitempty"`
	HourlyRate            decimal.Decimal `json:"hourly_rate"`
	WeekendPayEnabled     bool            `json:"weekend_pay_enabled"`
	WeekendRateMultiplier decimal.Decimal `json:"weekend_rate_multiplier"`
	PaymentCycleDays      int             `json:"payment_cycle_days"`
	EmploymentStatus      string          `json:"employment_status"`
}
