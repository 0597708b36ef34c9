package timesheet

import (
	"context"
	"testing"
	"time"

	"github.com/fieldops/billing-backend-go/internal/domain/employee"
	"github.com/fieldops/billing-backend-go/internal/domain/workrecord"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubEmployeeRepo struct {
	emp employee.Employee
}

func (s *stubEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}
func (s *stubEmployeeRepo) GetByID(_ context.Context, _ string) (employee.Employee, error) {
	return s.emp, nil
}
func (s *stubEmployeeRepo) GetByCode(_ context.Context, _ string) (employee.Employee, error) {
	return s.emp, nil
}
func (s *stubEmployeeRepo) List(_ context.Context, _ bool) ([]employee.Employee, error) {
	return nil, nil
}
func (s *stubEmployeeRepo) Update(_ context.Context, _ employee.UpdateEmployeeRequest) error {
	return nil
}
func (s *stubEmployeeRepo) SoftDelete(_ context.Context, _ string) error { return nil }

type stubWorkRecordRepo struct {
	records []workrecord.WorkRecord
}

func (s *stubWorkRecordRepo) Create(_ context.Context, r workrecord.WorkRecord) (workrecord.WorkRecord, error) {
	return r, nil
}
func (s *stubWorkRecordRepo) GetByID(_ context.Context, _ string) (workrecord.WorkRecord, error) {
	return workrecord.WorkRecord{}, workrecord.ErrWorkRecordNotFound
}
func (s *stubWorkRecordRepo) GetByEmployeeDate(_ context.Context, _ string, _ time.Time) (workrecord.WorkRecord, error) {
	return workrecord.WorkRecord{}, workrecord.ErrWorkRecordNotFound
}
func (s *stubWorkRecordRepo) Update(_ context.Context, _ workrecord.WorkRecord) error { return nil }
func (s *stubWorkRecordRepo) ListByEmployeePeriod(_ context.Context, _ string, _, _ time.Time, _ *workrecord.ApprovalStatus) ([]workrecord.WorkRecord, error) {
	return s.records, nil
}
func (s *stubWorkRecordRepo) ListApprovedByEmployeePeriod(_ context.Context, _ string, from, to time.Time) ([]workrecord.WorkRecord, error) {
	var result []workrecord.WorkRecord
	for _, r := range s.records {
		if r.ApprovalStatus != workrecord.ApprovalStatusApproved {
			continue
		}
		if r.WorkDate.Before(from) || r.WorkDate.After(to) {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}
func (s *stubWorkRecordRepo) ListEmployeeIDsWithApproved(_ context.Context, _, _ time.Time) ([]string, error) {
	return nil, nil
}

func record(day int, hours float64, weekend bool, status workrecord.ApprovalStatus) workrecord.WorkRecord {
	return workrecord.WorkRecord{
		EmployeeID:     "emp-1",
		WorkDate:       time.Date(2024, 11, day, 0, 0, 0, 0, time.UTC),
		HoursWorked:    decimal.NewFromFloat(hours),
		IsWeekend:      weekend,
		ApprovalStatus: status,
	}
}

func TestPeriodBounds(t *testing.T) {
	from, to := PeriodBounds(2024, 11)
	assert.Equal(t, time.Date(2024, 11, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 11, 30, 0, 0, 0, 0, time.UTC), to)

	from, to = PeriodBounds(2024, 2) // leap year
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), to)

	from, to = PeriodBounds(2024, 12) // year boundary
	assert.Equal(t, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC), from)
	assert.Equal(t, time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), to)
}

func TestAggregate_WeekendPayDisabledSkipsWeekendRecords(t *testing.T) {
	workRecords := &stubWorkRecordRepo{records: []workrecord.WorkRecord{
		record(4, 8, false, workrecord.ApprovalStatusApproved),
		record(5, 7.5, false, workrecord.ApprovalStatusApproved),
		record(9, 5, true, workrecord.ApprovalStatusApproved),
		record(6, 8, false, workrecord.ApprovalStatusPending),
		record(7, 8, false, workrecord.ApprovalStatusRejected),
	}}
	employees := &stubEmployeeRepo{emp: employee.Employee{ID: "emp-1", WeekendPayEnabled: false}}

	agg, err := NewAggregator(workRecords, employees).Aggregate(context.Background(), "emp-1", 2024, 11)
	require.NoError(t, err)

	assert.True(t, agg.RegularHours.Equal(decimal.NewFromFloat(15.5)), "got %s", agg.RegularHours)
	assert.True(t, agg.WeekendHours.IsZero(), "got %s", agg.WeekendHours)
	assert.True(t, agg.TotalHours.Equal(decimal.NewFromFloat(15.5)), "got %s", agg.TotalHours)
	assert.Len(t, agg.RecordIDs, 2)
}

func TestAggregate_WeekendPayEnabledSplitsBuckets(t *testing.T) {
	workRecords := &stubWorkRecordRepo{records: []workrecord.WorkRecord{
		record(4, 8, false, workrecord.ApprovalStatusApproved),
		record(9, 5, true, workrecord.ApprovalStatusApproved),
		record(10, 3, true, workrecord.ApprovalStatusApproved),
	}}
	employees := &stubEmployeeRepo{emp: employee.Employee{ID: "emp-1", WeekendPayEnabled: true}}

	agg, err := NewAggregator(workRecords, employees).Aggregate(context.Background(), "emp-1", 2024, 11)
	require.NoError(t, err)

	assert.True(t, agg.RegularHours.Equal(decimal.NewFromInt(8)))
	assert.True(t, agg.WeekendHours.Equal(decimal.NewFromInt(8)))
	assert.True(t, agg.TotalHours.Equal(decimal.NewFromInt(16)))
}

func TestAggregate_NoRecordsIsZeroNotError(t *testing.T) {
	workRecords := &stubWorkRecordRepo{}
	employees := &stubEmployeeRepo{emp: employee.Employee{ID: "emp-1"}}

	agg, err := NewAggregator(workRecords, employees).Aggregate(context.Background(), "emp-1", 2024, 11)
	require.NoError(t, err)

	assert.True(t, agg.TotalHours.IsZero())
	assert.Empty(t, agg.RecordIDs)
	assert.Equal(t, 2024, agg.PeriodYear)
	assert.Equal(t, 11, agg.PeriodMonth)
}
