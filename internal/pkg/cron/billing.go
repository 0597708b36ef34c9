package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fieldops/billing-backend-go/internal/service/billing"
)

type BillingJobs struct {
	billingSvc billing.Service
	now        func() time.Time
}

func NewBillingJobs(billingSvc billing.Service) *BillingJobs {
	return &BillingJobs{
		billingSvc: billingSvc,
		now:        time.Now,
	}
}

func (j *BillingJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("reconcile_invoices", 1*time.Hour, j.ReconcileInvoices)
	scheduler.AddDailyJob("process_pending_timesheets", 1, j.ProcessPendingTimesheets)
}

// ReconcileInvoices sweeps every open invoice: overdue transitions plus
// payroll synthesis for invoices that became billable. The sweep is
// idempotent, so running it every hour is safe.
func (j *BillingJobs) ReconcileInvoices(ctx context.Context) error {
	result, err := j.billingSvc.ProcessAllInvoices(ctx)
	if err != nil {
		return fmt.Errorf("invoice sweep failed: %w", err)
	}

	if len(result.Errors) > 0 {
		slog.Warn("Cron: Invoice sweep finished with unit failures",
			"invoices_processed", result.InvoicesProcessed,
			"failed", len(result.Errors))
	}

	return nil
}

// ProcessPendingTimesheets runs the previous month's batch pipeline. It is
// registered as a daily job so the scheduler fires it in the 01:00 UTC hour.
func (j *BillingJobs) ProcessPendingTimesheets(ctx context.Context) error {
	nowUTC := j.now().UTC()
	// Last day of the previous month; avoids the AddDate overflow on the 31st.
	prev := time.Date(nowUTC.Year(), nowUTC.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)
	year, month := prev.Year(), int(prev.Month())

	slog.Info("Cron: Starting timesheet batch", "period_year", year, "period_month", month)

	result, err := j.billingSvc.ProcessAllPendingTimesheets(ctx, year, month)
	if err != nil {
		return fmt.Errorf("timesheet batch failed: %w", err)
	}

	if len(result.Errors) > 0 {
		slog.Warn("Cron: Timesheet batch finished with unit failures",
			"processed", result.Processed,
			"failed", len(result.Errors))
	}

	return nil
}
