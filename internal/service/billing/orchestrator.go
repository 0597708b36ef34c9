package billing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fieldops/billing-backend-go/internal/domain/automation"
	"github.com/fieldops/billing-backend-go/internal/domain/invoice"
	"github.com/fieldops/billing-backend-go/internal/pkg/paycycle"
	"github.com/fieldops/billing-backend-go/internal/pkg/validator"
	"github.com/fieldops/billing-backend-go/internal/service/timesheet"
)

// reconcileStatus advances a pending invoice past its due date to overdue.
// Returns the possibly-updated invoice and whether a transition happened.
func (s *billingServiceImpl) reconcileStatus(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, bool, error) {
	if inv.Status != invoice.StatusPending || !s.now().After(inv.DueDate) {
		return inv, false, nil
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, inv.ID, invoice.StatusOverdue); err != nil {
		return inv, false, fmt.Errorf("failed to mark invoice overdue: %w", err)
	}
	inv.Status = invoice.StatusOverdue

	return inv, true, nil
}

// ProcessSingleInvoice reconciles one invoice's status and attempts payroll
// synthesis for it.
func (s *billingServiceImpl) ProcessSingleInvoice(ctx context.Context, invoiceID string) (automation.SingleInvoiceResult, error) {
	result := automation.SingleInvoiceResult{InvoiceID: invoiceID}

	inv, err := s.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return result, err
	}

	inv, updated, err := s.reconcileStatus(ctx, inv)
	if err != nil {
		return result, err
	}
	result.StatusUpdated = updated

	_, created, err := s.SynthesizePayroll(ctx, inv)
	if err != nil {
		return result, err
	}
	result.PayrollCreated = created

	return result, nil
}

// ProcessAllInvoices sweeps every invoice without a payroll record. A failure
// on one invoice is recorded per item and does not abort the batch; only a
// failure to list the batch at all propagates.
func (s *billingServiceImpl) ProcessAllInvoices(ctx context.Context) (automation.BatchInvoiceResult, error) {
	var result automation.BatchInvoiceResult

	invoices, err := s.invoiceRepo.ListWithoutPayroll(ctx)
	if err != nil {
		return result, fmt.Errorf("failed to list invoices: %w", err)
	}

	for _, inv := range invoices {
		result.InvoicesProcessed++

		inv, updated, err := s.reconcileStatus(ctx, inv)
		if err != nil {
			result.Errors = append(result.Errors, automation.UnitError{Unit: inv.InvoiceNumber, Message: err.Error()})
			continue
		}
		if updated {
			result.StatusesUpdated++
		}

		_, created, err := s.SynthesizePayroll(ctx, inv)
		if err != nil {
			result.Errors = append(result.Errors, automation.UnitError{Unit: inv.InvoiceNumber, Message: err.Error()})
			continue
		}
		if created {
			result.PayrollsCreated++
		}
	}

	slog.Info("invoice sweep finished",
		"invoices_processed", result.InvoicesProcessed,
		"statuses_updated", result.StatusesUpdated,
		"payrolls_created", result.PayrollsCreated,
		"errors", len(result.Errors))

	return result, nil
}

// ProcessEmployeeTimesheet runs Aggregator -> Invoice Synthesizer -> Payroll
// Synthesizer for one employee and period.
func (s *billingServiceImpl) ProcessEmployeeTimesheet(ctx context.Context, employeeID string, year, month int) (automation.EmployeeTimesheetResult, error) {
	result := automation.EmployeeTimesheetResult{
		EmployeeID:  employeeID,
		PeriodYear:  year,
		PeriodMonth: month,
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	agg, err := s.aggregator.Aggregate(ctx, employeeID, year, month)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}

	inv, invoiceCreated, err := s.SynthesizeInvoice(ctx, emp, agg)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}
	result.InvoiceCreated = invoiceCreated

	if inv == nil {
		// Nothing billable this period.
		return result, nil
	}

	_, payrollCreated, err := s.SynthesizePayroll(ctx, *inv)
	if err != nil {
		result.Error = err.Error()
		return result, err
	}
	result.PayrollCreated = payrollCreated

	return result, nil
}

// ProcessTimesheetOnStatusChange re-runs the employee/period pipeline for the
// period containing a work record whose approval status changed.
func (s *billingServiceImpl) ProcessTimesheetOnStatusChange(ctx context.Context, employeeID, recordDate string) error {
	date, ok := paycycle.ParseDDMMYYYY(recordDate)
	if !ok {
		date, ok = validator.IsValidDate(recordDate)
	}
	if !ok {
		return fmt.Errorf("unparseable record date %q", recordDate)
	}

	_, err := s.ProcessEmployeeTimesheet(ctx, employeeID, date.Year(), int(date.Month()))
	return err
}

// ProcessAllPendingTimesheets runs the per-employee pipeline for every
// employee with approved records in the period. Per-employee failures are
// captured and the batch continues.
func (s *billingServiceImpl) ProcessAllPendingTimesheets(ctx context.Context, year, month int) (automation.BatchTimesheetResult, error) {
	result := automation.BatchTimesheetResult{PeriodYear: year, PeriodMonth: month}

	from, to := timesheet.PeriodBounds(year, month)
	employeeIDs, err := s.workRecordRepo.ListEmployeeIDsWithApproved(ctx, from, to)
	if err != nil {
		return result, fmt.Errorf("failed to enumerate employees: %w", err)
	}

	for _, id := range employeeIDs {
		result.Processed++

		unit, err := s.ProcessEmployeeTimesheet(ctx, id, year, month)
		if err != nil {
			result.Errors = append(result.Errors, automation.UnitError{Unit: id, Message: err.Error()})
			continue
		}
		if unit.InvoiceCreated {
			result.InvoicesCreated++
		}
		if unit.PayrollCreated {
			result.PayrollsCreated++
		}
	}

	slog.Info("timesheet batch finished",
		"period_year", year,
		"period_month", month,
		"processed", result.Processed,
		"invoices_created", result.InvoicesCreated,
		"payrolls_created", result.PayrollsCreated,
		"errors", len(result.Errors))

	return result, nil
}
