package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payroll is derived from exactly one invoice once that invoice reaches a
// billable status. Immutable after creation; corrections happen elsewhere.
type Payroll struct {
	ID          string
	EmployeeID  string
	InvoiceID   string
	PeriodYear  int
	PeriodMonth int
	TotalHours  decimal.Decimal
	GrossAmount decimal.Decimal
	CreatedAt   time.Time

	// Joined fields
	EmployeeName *string
}
