package response

import (
	"errors"
	"net/http"

	"github.com/fieldops/billing-backend-go/internal/domain/auth"
	"github.com/fieldops/billing-backend-go/internal/domain/employee"
	"github.com/fieldops/billing-backend-go/internal/domain/invoice"
	"github.com/fieldops/billing-backend-go/internal/domain/payroll"
	"github.com/fieldops/billing-backend-go/internal/domain/workrecord"
	"github.com/fieldops/billing-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, auth.ErrAdminPrivilegeRequired):
		Forbidden(w, "Admin privilege required")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrMissingPayRate):
		BadRequest(w, "Employee has no hourly rate configured", nil)

	// Work record domain errors
	case errors.Is(err, workrecord.ErrWorkRecordNotFound):
		NotFound(w, "Work record not found")
	case errors.Is(err, workrecord.ErrAlreadyClockedIn):
		Conflict(w, "Already clocked in for this date")
	case errors.Is(err, workrecord.ErrAlreadyClockedOut):
		Conflict(w, "Already clocked out")
	case errors.Is(err, workrecord.ErrMissingClockIn):
		Conflict(w, "Work record has no clock-in")
	case errors.Is(err, workrecord.ErrAlreadyDecided):
		Conflict(w, "Work record already approved or rejected")
	case errors.Is(err, workrecord.ErrInvalidDecision):
		BadRequest(w, "Decision must be 'approved' or 'rejected'", nil)

	// Invoice domain errors
	case errors.Is(err, invoice.ErrInvoiceNotFound):
		NotFound(w, "Invoice not found")
	case errors.Is(err, invoice.ErrInvoiceAlreadyExists):
		Conflict(w, "Invoice already exists for this employee and period")
	case errors.Is(err, invoice.ErrInvalidStatus):
		BadRequest(w, "Invalid invoice status", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollAlreadyExists):
		Conflict(w, "Payroll record already exists for this invoice")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
