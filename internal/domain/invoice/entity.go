package invoice

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum
type Status string

const (
	StatusPending  Status = "pending"
	StatusReceived Status = "received"
	StatusOverdue  Status = "overdue"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusReceived || s == StatusOverdue
}

// Billable reports whether payroll synthesis is permitted for an invoice in
// this status.
func (s Status) Billable() bool {
	return s == StatusReceived
}

// LineItem is one billed position on an invoice, serialized to jsonb.
type LineItem struct {
	Description string          `json:"description"`
	Hours       decimal.Decimal `json:"hours"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
}

// Invoice aggregates one employee's approved hours over one billing period.
// At most one invoice exists per (employee, period); the database enforces it.
type Invoice struct {
	ID            string
	InvoiceNumber string
	EmployeeID    string
	PeriodYear    int
	PeriodMonth   int
	LineItems     []LineItem
	TotalHours    decimal.Decimal
	Subtotal      decimal.Decimal
	DueDate       time.Time
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined fields
	EmployeeName *string
}
