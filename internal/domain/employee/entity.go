package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// EmploymentStatus enum
type EmploymentStatus string

const (
	EmploymentStatusActive   EmploymentStatus = "active"
	EmploymentStatusInactive EmploymentStatus = "inactive"
)

// Employee carries the pay-rate configuration the billing pipeline reads:
// hourly rate, weekend-pay rule and payment cycle length.
type Employee struct {
	ID                    string
	EmployeeCode          string
	FullName              string
	Email                 *string
	HourlyRate            decimal.Decimal
	WeekendPayEnabled     bool
	WeekendRateMultiplier decimal.Decimal
	PaymentCycleDays      int
	EmploymentStatus      EmploymentStatus
	CreatedAt             time.Time
	UpdatedAt             time.Time
	DeletedAt             *time.Time
}
