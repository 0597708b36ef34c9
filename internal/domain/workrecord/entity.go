package workrecord

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApprovalStatus enum
type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "pending"
	ApprovalStatusApproved ApprovalStatus = "approved"
	ApprovalStatusRejected ApprovalStatus = "rejected"
)

// WorkRecord is one clock-in/out session for an employee on a calendar day.
// Created on clock-in, completed on clock-out, and finalized by an approval
// decision. Only approved records feed invoice aggregation.
type WorkRecord struct {
	ID             string
	EmployeeID     string
	SiteID         *string
	SiteName       *string
	WorkDate       time.Time
	ClockIn        *time.Time
	ClockOut       *time.Time
	HoursWorked    decimal.Decimal
	IsWeekend      bool
	ApprovalStatus ApprovalStatus
	ApprovedBy     *string
	ApprovedAt     *time.Time
	Notes          *string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Joined fields
	EmployeeName *string
}

// Aggregation is the result of rolling up an employee's approved records over
// one billing period. A zero-valued aggregation means "nothing to bill" and is
// not an error.
type Aggregation struct {
	EmployeeID   string
	PeriodYear   int
	PeriodMonth  int
	PeriodStart  time.Time
	PeriodEnd    time.Time
	RegularHours decimal.Decimal
	WeekendHours decimal.Decimal
	TotalHours   decimal.Decimal
	RecordIDs    []string
}
