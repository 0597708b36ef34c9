package billing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/fieldops/billing-backend-go/internal/domain/employee"
	"github.com/fieldops/billing-backend-go/internal/domain/invoice"
	"github.com/fieldops/billing-backend-go/internal/domain/payroll"
	"github.com/fieldops/billing-backend-go/internal/domain/workrecord"
	"github.com/fieldops/billing-backend-go/internal/service/timesheet"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- in-memory fakes ----

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.EmployeeCode == code {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ bool) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, emp := range f.employees {
		result = append(result, emp)
	}
	return result, nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, _ employee.UpdateEmployeeRequest) error {
	return nil
}

func (f *fakeEmployeeRepo) SoftDelete(_ context.Context, _ string) error {
	return nil
}

type fakeWorkRecordRepo struct {
	records []workrecord.WorkRecord
}

func (f *fakeWorkRecordRepo) Create(_ context.Context, record workrecord.WorkRecord) (workrecord.WorkRecord, error) {
	record.ID = fmt.Sprintf("wr-%d", len(f.records)+1)
	f.records = append(f.records, record)
	return record, nil
}

func (f *fakeWorkRecordRepo) GetByID(_ context.Context, id string) (workrecord.WorkRecord, error) {
	for _, r := range f.records {
		if r.ID == id {
			return r, nil
		}
	}
	return workrecord.WorkRecord{}, workrecord.ErrWorkRecordNotFound
}

func (f *fakeWorkRecordRepo) GetByEmployeeDate(_ context.Context, employeeID string, workDate time.Time) (workrecord.WorkRecord, error) {
	for _, r := range f.records {
		if r.EmployeeID == employeeID && r.WorkDate.Equal(workDate) {
			return r, nil
		}
	}
	return workrecord.WorkRecord{}, workrecord.ErrWorkRecordNotFound
}

func (f *fakeWorkRecordRepo) Update(_ context.Context, record workrecord.WorkRecord) error {
	for i, r := range f.records {
		if r.ID == record.ID {
			f.records[i] = record
			return nil
		}
	}
	return workrecord.ErrWorkRecordNotFound
}

func (f *fakeWorkRecordRepo) ListByEmployeePeriod(_ context.Context, employeeID string, from, to time.Time, status *workrecord.ApprovalStatus) ([]workrecord.WorkRecord, error) {
	var result []workrecord.WorkRecord
	for _, r := range f.records {
		if r.EmployeeID != employeeID || r.WorkDate.Before(from) || r.WorkDate.After(to) {
			continue
		}
		if status != nil && r.ApprovalStatus != *status {
			continue
		}
		result = append(result, r)
	}
	return result, nil
}

func (f *fakeWorkRecordRepo) ListApprovedByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time) ([]workrecord.WorkRecord, error) {
	approved := workrecord.ApprovalStatusApproved
	return f.ListByEmployeePeriod(ctx, employeeID, from, to, &approved)
}

func (f *fakeWorkRecordRepo) ListEmployeeIDsWithApproved(_ context.Context, from, to time.Time) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	for _, r := range f.records {
		if r.ApprovalStatus != workrecord.ApprovalStatusApproved {
			continue
		}
		if r.WorkDate.Before(from) || r.WorkDate.After(to) {
			continue
		}
		if !seen[r.EmployeeID] {
			seen[r.EmployeeID] = true
			result = append(result, r.EmployeeID)
		}
	}
	return result, nil
}

type fakeInvoiceRepo struct {
	invoices map[string]invoice.Invoice
	payrolls *fakePayrollRepo
	seq      int

	// When set, the next Create stores the invoice under a different caller
	// and reports a duplicate, simulating a lost create race.
	loseNextCreateRace bool
}

func newFakeInvoiceRepo(payrolls *fakePayrollRepo) *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[string]invoice.Invoice), payrolls: payrolls}
}

func (f *fakeInvoiceRepo) Create(_ context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	for _, existing := range f.invoices {
		if existing.EmployeeID == inv.EmployeeID &&
			existing.PeriodYear == inv.PeriodYear &&
			existing.PeriodMonth == inv.PeriodMonth {
			return invoice.Invoice{}, invoice.ErrInvoiceAlreadyExists
		}
	}
	f.seq++
	inv.ID = fmt.Sprintf("inv-%d", f.seq)
	f.invoices[inv.ID] = inv
	if f.loseNextCreateRace {
		f.loseNextCreateRace = false
		return invoice.Invoice{}, invoice.ErrInvoiceAlreadyExists
	}
	return inv, nil
}

func (f *fakeInvoiceRepo) GetByID(_ context.Context, id string) (invoice.Invoice, error) {
	inv, ok := f.invoices[id]
	if !ok {
		return invoice.Invoice{}, invoice.ErrInvoiceNotFound
	}
	return inv, nil
}

func (f *fakeInvoiceRepo) GetByEmployeePeriod(_ context.Context, employeeID string, year, month int) (invoice.Invoice, error) {
	for _, inv := range f.invoices {
		if inv.EmployeeID == employeeID && inv.PeriodYear == year && inv.PeriodMonth == month {
			return inv, nil
		}
	}
	return invoice.Invoice{}, invoice.ErrInvoiceNotFound
}

func (f *fakeInvoiceRepo) List(_ context.Context, filter invoice.Filter) ([]invoice.Invoice, error) {
	var result []invoice.Invoice
	for _, inv := range f.invoices {
		if filter.EmployeeID != nil && inv.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && inv.Status != *filter.Status {
			continue
		}
		result = append(result, inv)
	}
	return result, nil
}

func (f *fakeInvoiceRepo) UpdateStatus(_ context.Context, id string, status invoice.Status) error {
	inv, ok := f.invoices[id]
	if !ok {
		return invoice.ErrInvoiceNotFound
	}
	inv.Status = status
	f.invoices[id] = inv
	return nil
}

func (f *fakeInvoiceRepo) ListWithoutPayroll(_ context.Context) ([]invoice.Invoice, error) {
	var result []invoice.Invoice
	for _, inv := range f.invoices {
		if _, ok := f.payrolls.byInvoice[inv.ID]; !ok {
			result = append(result, inv)
		}
	}
	return result, nil
}

type fakePayrollRepo struct {
	byInvoice map[string]payroll.Payroll
	seq       int
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{byInvoice: make(map[string]payroll.Payroll)}
}

func (f *fakePayrollRepo) Create(_ context.Context, p payroll.Payroll) (payroll.Payroll, error) {
	if _, ok := f.byInvoice[p.InvoiceID]; ok {
		return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
	}
	f.seq++
	p.ID = fmt.Sprintf("pay-%d", f.seq)
	f.byInvoice[p.InvoiceID] = p
	return p, nil
}

func (f *fakePayrollRepo) GetByID(_ context.Context, id string) (payroll.Payroll, error) {
	for _, p := range f.byInvoice {
		if p.ID == id {
			return p, nil
		}
	}
	return payroll.Payroll{}, payroll.ErrPayrollNotFound
}

func (f *fakePayrollRepo) GetByInvoiceID(_ context.Context, invoiceID string) (payroll.Payroll, error) {
	p, ok := f.byInvoice[invoiceID]
	if !ok {
		return payroll.Payroll{}, payroll.ErrPayrollNotFound
	}
	return p, nil
}

func (f *fakePayrollRepo) List(_ context.Context, year, month *int) ([]payroll.Payroll, error) {
	var result []payroll.Payroll
	for _, p := range f.byInvoice {
		if year != nil && p.PeriodYear != *year {
			continue
		}
		if month != nil && p.PeriodMonth != *month {
			continue
		}
		result = append(result, p)
	}
	return result, nil
}

// ---- test environment ----

type testEnv struct {
	employees   *fakeEmployeeRepo
	workRecords *fakeWorkRecordRepo
	invoices    *fakeInvoiceRepo
	payrolls    *fakePayrollRepo
	svc         *billingServiceImpl
}

func newTestEnv(t *testing.T, now time.Time) *testEnv {
	t.Helper()

	employees := newFakeEmployeeRepo()
	workRecords := &fakeWorkRecordRepo{}
	payrolls := newFakePayrollRepo()
	invoices := newFakeInvoiceRepo(payrolls)

	aggregator := timesheet.NewAggregator(workRecords, employees)
	svc := NewBillingService(aggregator, employees, workRecords, invoices, payrolls).(*billingServiceImpl)
	svc.now = func() time.Time { return now }

	return &testEnv{
		employees:   employees,
		workRecords: workRecords,
		invoices:    invoices,
		payrolls:    payrolls,
		svc:         svc,
	}
}

func (env *testEnv) addEmployee(id string, rate float64, weekendPay bool) employee.Employee {
	emp := employee.Employee{
		ID:                    id,
		EmployeeCode:          "1000-000" + id[len(id)-1:],
		FullName:              "Employee " + id,
		HourlyRate:            decimal.NewFromFloat(rate),
		WeekendPayEnabled:     weekendPay,
		WeekendRateMultiplier: decimal.NewFromFloat(1.5),
		PaymentCycleDays:      45,
		EmploymentStatus:      employee.EmploymentStatusActive,
	}
	env.employees.employees[id] = emp
	return emp
}

func (env *testEnv) addApprovedRecord(employeeID string, workDate time.Time, hours float64, weekend bool) {
	env.workRecords.records = append(env.workRecords.records, workrecord.WorkRecord{
		ID:             fmt.Sprintf("wr-%d", len(env.workRecords.records)+1),
		EmployeeID:     employeeID,
		WorkDate:       workDate,
		HoursWorked:    decimal.NewFromFloat(hours),
		IsWeekend:      weekend,
		ApprovalStatus: workrecord.ApprovalStatusApproved,
	})
}

func day(year, month, d int) time.Time {
	return time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC)
}

// ---- tests ----

func TestProcessEmployeeTimesheet_CreatesInvoiceAndNothingTwice(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, day(2024, 12, 1))
	env.addEmployee("emp-1", 20, false)
	env.addApprovedRecord("emp-1", day(2024, 11, 4), 8, false)
	env.addApprovedRecord("emp-1", day(2024, 11, 5), 8, false)
	env.addApprovedRecord("emp-1", day(2024, 11, 9), 5, true) // weekend, pay disabled

	result, err := env.svc.ProcessEmployeeTimesheet(ctx, "emp-1", 2024, 11)
	require.NoError(t, err)
	assert.True(t, result.InvoiceCreated)
	assert.False(t, result.PayrollCreated, "pending invoice must not produce payroll")

	inv, err := env.invoices.GetByEmployeePeriod(ctx, "emp-1", 2024, 11)
	require.NoError(t, err)
	assert.Len(t, inv.LineItems, 1, "weekend hours excluded when weekend pay disabled")
	assert.True(t, inv.TotalHours.Equal(decimal.NewFromInt(16)), "got %s", inv.TotalHours)
	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(320)), "got %s", inv.Subtotal)
	assert.Equal(t, invoice.StatusPending, inv.Status)
	// Period ends 30.11.2024; 45 days later is 14.01.2025.
	assert.Equal(t, day(2025, 1, 14), inv.DueDate)

	// Second run changes nothing.
	result, err = env.svc.ProcessEmployeeTimesheet(ctx, "emp-1", 2024, 11)
	require.NoError(t, err)
	assert.False(t, result.InvoiceCreated)
	assert.False(t, result.PayrollCreated)
	assert.Len(t, env.invoices.invoices, 1)
}

func TestProcessEmployeeTimesheet_WeekendPayEnabled(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, day(2024, 12, 1))
	env.addEmployee("emp-1", 20, true)
	env.addApprovedRecord("emp-1", day(2024, 11, 4), 8, false)
	env.addApprovedRecord("emp-1", day(2024, 11, 9), 5, true)

	result, err := env.svc.ProcessEmployeeTimesheet(ctx, "emp-1", 2024, 11)
	require.NoError(t, err)
	assert.True(t, result.InvoiceCreated)

	inv, err := env.invoices.GetByEmployeePeriod(ctx, "emp-1", 2024, 11)
	require.NoError(t, err)
	require.Len(t, inv.LineItems, 2)
	assert.True(t, inv.TotalHours.Equal(decimal.NewFromInt(13)), "got %s", inv.TotalHours)
	// 8h * 20 + 5h * 30 (1.5x multiplier)
	assert.True(t, inv.Subtotal.Equal(decimal.NewFromInt(310)), "got %s", inv.Subtotal)
}

func TestProcessEmployeeTimesheet_NoApprovedHoursIsNoop(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, day(2024, 12, 1))
	env.addEmployee("emp-1", 20, false)

	result, err := env.svc.ProcessEmployeeTimesheet(ctx, "emp-1", 2024, 11)
	require.NoError(t, err)
	assert.False(t, result.InvoiceCreated)
	assert.False(t, result.PayrollCreated)
	assert.Empty(t, env.invoices.invoices)
}

func TestProcessEmployeeTimesheet_MissingRateFails(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, day(2024, 12, 1))
	env.addEmployee("emp-1", 0, false)
	env.addApprovedRecord("emp-1", day(2024, 11, 4), 8, false)

	result, err := env.svc.ProcessEmployeeTimesheet(ctx, "emp-1", 2024, 11)
	assert.ErrorIs(t, err, employee.ErrMissingPayRate)
	assert.Equal(t, employee.ErrMissingPayRate.Error(), result.Error)
	assert.Empty(t, env.invoices.invoices)
}

func TestSynthesizeInvoice_LostCreateRaceReturnsWinner(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, day(2024, 12, 1))
	emp := env.addEmployee("emp-1", 20, false)
	env.addApprovedRecord("emp-1", day(2024, 11, 4), 8, false)
	env.invoices.loseNextCreateRace = true

	agg, err := env.svc.aggregator.Aggregate(ctx, "emp-1", 2024, 11)
	require.NoError(t, err)

	inv, created, err := env.svc.SynthesizeInvoice(ctx, emp, agg)
	require.NoError(t, err)
	assert.False(t, created, "losing the race must not count as a create")
	require.NotNil(t, inv)
	assert.Len(t, env.invoices.invoices, 1)
}

func TestProcessSingleInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("received invoice produces payroll exactly once", func(t *testing.T) {
		env := newTestEnv(t, day(2024, 12, 1))
		inv, err := env.invoices.Create(ctx, invoice.Invoice{
			InvoiceNumber: "INV-202411-AAAA0001",
			EmployeeID:    "emp-1",
			PeriodYear:    2024,
			PeriodMonth:   11,
			TotalHours:    decimal.NewFromInt(16),
			Subtotal:      decimal.NewFromInt(320),
			DueDate:       day(2025, 1, 14),
			Status:        invoice.StatusReceived,
		})
		require.NoError(t, err)

		result, err := env.svc.ProcessSingleInvoice(ctx, inv.ID)
		require.NoError(t, err)
		assert.True(t, result.PayrollCreated)
		assert.False(t, result.StatusUpdated)

		p, err := env.payrolls.GetByInvoiceID(ctx, inv.ID)
		require.NoError(t, err)
		assert.True(t, p.GrossAmount.Equal(decimal.NewFromInt(320)))

		result, err = env.svc.ProcessSingleInvoice(ctx, inv.ID)
		require.NoError(t, err)
		assert.False(t, result.PayrollCreated)
		assert.Len(t, env.payrolls.byInvoice, 1)
	})

	t.Run("pending invoice past due becomes overdue without payroll", func(t *testing.T) {
		env := newTestEnv(t, day(2025, 2, 1))
		inv, err := env.invoices.Create(ctx, invoice.Invoice{
			InvoiceNumber: "INV-202411-AAAA0002",
			EmployeeID:    "emp-1",
			PeriodYear:    2024,
			PeriodMonth:   11,
			DueDate:       day(2025, 1, 14),
			Status:        invoice.StatusPending,
		})
		require.NoError(t, err)

		result, err := env.svc.ProcessSingleInvoice(ctx, inv.ID)
		require.NoError(t, err)
		assert.True(t, result.StatusUpdated)
		assert.False(t, result.PayrollCreated)

		got, err := env.invoices.GetByID(ctx, inv.ID)
		require.NoError(t, err)
		assert.Equal(t, invoice.StatusOverdue, got.Status)
	})

	t.Run("unknown invoice", func(t *testing.T) {
		env := newTestEnv(t, day(2024, 12, 1))
		_, err := env.svc.ProcessSingleInvoice(ctx, "missing")
		assert.ErrorIs(t, err, invoice.ErrInvoiceNotFound)
	})
}

func TestProcessAllInvoices(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, day(2025, 2, 1))

	received, err := env.invoices.Create(ctx, invoice.Invoice{
		InvoiceNumber: "INV-202411-RECEIVED",
		EmployeeID:    "emp-1",
		PeriodYear:    2024, PeriodMonth: 11,
		Subtotal: decimal.NewFromInt(100),
		DueDate:  day(2025, 1, 14),
		Status:   invoice.StatusReceived,
	})
	require.NoError(t, err)

	_, err = env.invoices.Create(ctx, invoice.Invoice{
		InvoiceNumber: "INV-202412-PASTDUE",
		EmployeeID:    "emp-2",
		PeriodYear:    2024, PeriodMonth: 12,
		DueDate: day(2025, 1, 20),
		Status:  invoice.StatusPending,
	})
	require.NoError(t, err)

	_, err = env.invoices.Create(ctx, invoice.Invoice{
		InvoiceNumber: "INV-202501-FRESH",
		EmployeeID:    "emp-3",
		PeriodYear:    2025, PeriodMonth: 1,
		DueDate: day(2025, 3, 17),
		Status:  invoice.StatusPending,
	})
	require.NoError(t, err)

	result, err := env.svc.ProcessAllInvoices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, result.InvoicesProcessed)
	assert.Equal(t, 1, result.StatusesUpdated)
	assert.Equal(t, 1, result.PayrollsCreated)
	assert.Empty(t, result.Errors)

	_, err = env.payrolls.GetByInvoiceID(ctx, received.ID)
	assert.NoError(t, err)

	// The processed invoice now has a payroll record, so the next sweep
	// skips it.
	result, err = env.svc.ProcessAllInvoices(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, result.InvoicesProcessed)
	assert.Equal(t, 0, result.PayrollsCreated)
}

func TestProcessAllPendingTimesheets_PartialFailure(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, day(2024, 12, 1))
	env.addEmployee("emp-1", 20, false)
	env.addEmployee("emp-2", 0, false) // no rate configured
	env.addApprovedRecord("emp-1", day(2024, 11, 4), 8, false)
	env.addApprovedRecord("emp-2", day(2024, 11, 5), 8, false)

	result, err := env.svc.ProcessAllPendingTimesheets(ctx, 2024, 11)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.InvoicesCreated)
	assert.Equal(t, 0, result.PayrollsCreated)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "emp-2", result.Errors[0].Unit)
}

func TestProcessTimesheetOnStatusChange(t *testing.T) {
	ctx := context.Background()

	t.Run("dotted date resolves the period", func(t *testing.T) {
		env := newTestEnv(t, day(2024, 12, 1))
		env.addEmployee("emp-1", 20, false)
		env.addApprovedRecord("emp-1", day(2024, 11, 4), 8, false)

		err := env.svc.ProcessTimesheetOnStatusChange(ctx, "emp-1", "20.11.2024")
		require.NoError(t, err)

		_, err = env.invoices.GetByEmployeePeriod(ctx, "emp-1", 2024, 11)
		assert.NoError(t, err)
	})

	t.Run("ISO date resolves the period", func(t *testing.T) {
		env := newTestEnv(t, day(2024, 12, 1))
		env.addEmployee("emp-1", 20, false)
		env.addApprovedRecord("emp-1", day(2024, 11, 4), 8, false)

		err := env.svc.ProcessTimesheetOnStatusChange(ctx, "emp-1", "2024-11-20")
		require.NoError(t, err)

		_, err = env.invoices.GetByEmployeePeriod(ctx, "emp-1", 2024, 11)
		assert.NoError(t, err)
	})

	t.Run("unparseable date is an error", func(t *testing.T) {
		env := newTestEnv(t, day(2024, 12, 1))
		env.addEmployee("emp-1", 20, false)

		err := env.svc.ProcessTimesheetOnStatusChange(ctx, "emp-1", "not-a-date")
		assert.Error(t, err)
	})
}
