package billing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fieldops/billing-backend-go/internal/domain/automation"
	"github.com/fieldops/billing-backend-go/internal/domain/employee"
	"github.com/fieldops/billing-backend-go/internal/domain/invoice"
	"github.com/fieldops/billing-backend-go/internal/domain/payroll"
	"github.com/fieldops/billing-backend-go/internal/domain/workrecord"
	"github.com/fieldops/billing-backend-go/internal/pkg/paycycle"
	"github.com/fieldops/billing-backend-go/internal/service/timesheet"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Service owns invoice and payroll synthesis plus the automation entry
// points that sequence them.
type Service interface {
	SynthesizeInvoice(ctx context.Context, emp employee.Employee, agg workrecord.Aggregation) (*invoice.Invoice, bool, error)
	SynthesizePayroll(ctx context.Context, inv invoice.Invoice) (*payroll.Payroll, bool, error)

	ProcessSingleInvoice(ctx context.Context, invoiceID string) (automation.SingleInvoiceResult, error)
	ProcessAllInvoices(ctx context.Context) (automation.BatchInvoiceResult, error)
	ProcessEmployeeTimesheet(ctx context.Context, employeeID string, year, month int) (automation.EmployeeTimesheetResult, error)
	ProcessTimesheetOnStatusChange(ctx context.Context, employeeID, recordDate string) error
	ProcessAllPendingTimesheets(ctx context.Context, year, month int) (automation.BatchTimesheetResult, error)
}

type billingServiceImpl struct {
	aggregator     *timesheet.Aggregator
	employeeRepo   employee.EmployeeRepository
	workRecordRepo workrecord.WorkRecordRepository
	invoiceRepo    invoice.InvoiceRepository
	payrollRepo    payroll.PayrollRepository
	now            func() time.Time
}

func NewBillingService(
	aggregator *timesheet.Aggregator,
	employeeRepo employee.EmployeeRepository,
	workRecordRepo workrecord.WorkRecordRepository,
	invoiceRepo invoice.InvoiceRepository,
	payrollRepo payroll.PayrollRepository,
) Service {
	return &billingServiceImpl{
		aggregator:     aggregator,
		employeeRepo:   employeeRepo,
		workRecordRepo: workRecordRepo,
		invoiceRepo:    invoiceRepo,
		payrollRepo:    payrollRepo,
		now:            time.Now,
	}
}

// newInvoiceNumber builds a period-prefixed, collision-free invoice number.
func newInvoiceNumber(year, month int) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("INV-%04d%02d-%s", year, month, suffix)
}

// SynthesizeInvoice converts an aggregation into a persisted invoice, at most
// once per (employee, period). The created flag reports whether this call
// persisted a new invoice.
func (s *billingServiceImpl) SynthesizeInvoice(ctx context.Context, emp employee.Employee, agg workrecord.Aggregation) (*invoice.Invoice, bool, error) {
	existing, err := s.invoiceRepo.GetByEmployeePeriod(ctx, emp.ID, agg.PeriodYear, agg.PeriodMonth)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, invoice.ErrInvoiceNotFound) {
		return nil, false, fmt.Errorf("failed to check existing invoice: %w", err)
	}

	// Absence of billable hours is not an error, there is just nothing to do.
	if !agg.TotalHours.IsPositive() {
		return nil, false, nil
	}

	if emp.HourlyRate.IsZero() {
		return nil, false, employee.ErrMissingPayRate
	}

	periodLabel := fmt.Sprintf("%04d-%02d", agg.PeriodYear, agg.PeriodMonth)
	var lineItems []invoice.LineItem
	subtotal := decimal.Zero

	if agg.RegularHours.IsPositive() {
		amount := emp.HourlyRate.Mul(agg.RegularHours)
		lineItems = append(lineItems, invoice.LineItem{
			Description: "Regular hours " + periodLabel,
			Hours:       agg.RegularHours,
			Rate:        emp.HourlyRate,
			Amount:      amount,
		})
		subtotal = subtotal.Add(amount)
	}

	if agg.WeekendHours.IsPositive() {
		weekendRate := emp.HourlyRate.Mul(emp.WeekendRateMultiplier)
		amount := weekendRate.Mul(agg.WeekendHours)
		lineItems = append(lineItems, invoice.LineItem{
			Description: "Weekend hours " + periodLabel,
			Hours:       agg.WeekendHours,
			Rate:        weekendRate,
			Amount:      amount,
		})
		subtotal = subtotal.Add(amount)
	}

	cycleDays := emp.PaymentCycleDays
	if cycleDays <= 0 {
		cycleDays = paycycle.DefaultCycleDays
	}

	newInvoice := invoice.Invoice{
		InvoiceNumber: newInvoiceNumber(agg.PeriodYear, agg.PeriodMonth),
		EmployeeID:    emp.ID,
		PeriodYear:    agg.PeriodYear,
		PeriodMonth:   agg.PeriodMonth,
		LineItems:     lineItems,
		TotalHours:    agg.TotalHours,
		Subtotal:      subtotal,
		DueDate:       paycycle.DueDateFrom(agg.PeriodEnd, cycleDays),
		Status:        invoice.StatusPending,
	}

	created, err := s.invoiceRepo.Create(ctx, newInvoice)
	if err != nil {
		// A concurrent invocation won the create; the unique key guarantees a
		// single invoice, so pick up theirs.
		if errors.Is(err, invoice.ErrInvoiceAlreadyExists) {
			winner, getErr := s.invoiceRepo.GetByEmployeePeriod(ctx, emp.ID, agg.PeriodYear, agg.PeriodMonth)
			if getErr != nil {
				return nil, false, fmt.Errorf("failed to load concurrently created invoice: %w", getErr)
			}
			return &winner, false, nil
		}
		return nil, false, fmt.Errorf("failed to create invoice: %w", err)
	}

	return &created, true, nil
}

// SynthesizePayroll derives at most one payroll record from an invoice. An
// invoice that has not reached a billable status yields no record and no
// error: payroll waits for the invoice lifecycle to advance.
func (s *billingServiceImpl) SynthesizePayroll(ctx context.Context, inv invoice.Invoice) (*payroll.Payroll, bool, error) {
	existing, err := s.payrollRepo.GetByInvoiceID(ctx, inv.ID)
	if err == nil {
		return &existing, false, nil
	}
	if !errors.Is(err, payroll.ErrPayrollNotFound) {
		return nil, false, fmt.Errorf("failed to check existing payroll: %w", err)
	}

	if !inv.Status.Billable() {
		return nil, false, nil
	}

	newPayroll := payroll.Payroll{
		EmployeeID:  inv.EmployeeID,
		InvoiceID:   inv.ID,
		PeriodYear:  inv.PeriodYear,
		PeriodMonth: inv.PeriodMonth,
		TotalHours:  inv.TotalHours,
		GrossAmount: inv.Subtotal,
	}

	created, err := s.payrollRepo.Create(ctx, newPayroll)
	if err != nil {
		if errors.Is(err, payroll.ErrPayrollAlreadyExists) {
			winner, getErr := s.payrollRepo.GetByInvoiceID(ctx, inv.ID)
			if getErr != nil {
				return nil, false, fmt.Errorf("failed to load concurrently created payroll: %w", getErr)
			}
			return &winner, false, nil
		}
		return nil, false, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return &created, true, nil
}
