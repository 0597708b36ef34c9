package timesheet

import (
	"context"
	"fmt"
	"time"

	"github.com/fieldops/billing-backend-go/internal/domain/employee"
	"github.com/fieldops/billing-backend-go/internal/domain/workrecord"
	"github.com/shopspring/decimal"
)

// Aggregator rolls up approved work records into per-period hour totals.
type Aggregator struct {
	workRecordRepo workrecord.WorkRecordRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAggregator(
	workRecordRepo workrecord.WorkRecordRepository,
	employeeRepo employee.EmployeeRepository,
) *Aggregator {
	return &Aggregator{
		workRecordRepo: workRecordRepo,
		employeeRepo:   employeeRepo,
	}
}

// PeriodBounds returns the first and last calendar day of a billing period.
func PeriodBounds(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to
}

// Aggregate sums an employee's approved hours for one billing period.
// Weekend hours count only when the employee's weekend-pay rule is enabled;
// otherwise weekend records are excluded from the totals entirely.
// No approved records is a valid outcome: the zero-valued aggregation tells
// the caller there is nothing to bill.
func (a *Aggregator) Aggregate(ctx context.Context, employeeID string, year, month int) (workrecord.Aggregation, error) {
	emp, err := a.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return workrecord.Aggregation{}, fmt.Errorf("failed to resolve employee %s: %w", employeeID, err)
	}

	from, to := PeriodBounds(year, month)

	records, err := a.workRecordRepo.ListApprovedByEmployeePeriod(ctx, employeeID, from, to)
	if err != nil {
		return workrecord.Aggregation{}, fmt.Errorf("failed to load approved records: %w", err)
	}

	agg := workrecord.Aggregation{
		EmployeeID:   employeeID,
		PeriodYear:   year,
		PeriodMonth:  month,
		PeriodStart:  from,
		PeriodEnd:    to,
		RegularHours: decimal.Zero,
		WeekendHours: decimal.Zero,
		TotalHours:   decimal.Zero,
	}

	for _, r := range records {
		if r.IsWeekend {
			if !emp.WeekendPayEnabled {
				continue
			}
			agg.WeekendHours = agg.WeekendHours.Add(r.HoursWorked)
		} else {
			agg.RegularHours = agg.RegularHours.Add(r.HoursWorked)
		}
		agg.RecordIDs = append(agg.RecordIDs, r.ID)
	}

	agg.TotalHours = agg.RegularHours.Add(agg.WeekendHours)

	return agg, nil
}
