package workrecord

import (
	"context"
	"time"
)

type WorkRecordRepository interface {
	Create(ctx context.Context, record WorkRecord) (WorkRecord, error)
	GetByID(ctx context.Context, id string) (WorkRecord, error)
	GetByEmployeeDate(ctx context.Context, employeeID string, workDate time.Time) (WorkRecord, error)
	Update(ctx context.Context, record WorkRecord) error
	ListByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time, status *ApprovalStatus) ([]WorkRecord, error)
	ListApprovedByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time) ([]WorkRecord, error)
	ListEmployeeIDsWithApproved(ctx context.Context, from, to time.Time) ([]string, error)
}
