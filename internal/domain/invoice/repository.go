package invoice

import "context"

type InvoiceRepository interface {
	// Create persists a new invoice. The unique (employee_id, period_year,
	// period_month) key turns concurrent check-then-act into create-if-absent:
	// duplicate keys surface as ErrInvoiceAlreadyExists.
	Create(ctx context.Context, inv Invoice) (Invoice, error)
	GetByID(ctx context.Context, id string) (Invoice, error)
	GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (Invoice, error)
	List(ctx context.Context, filter Filter) ([]Invoice, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	// ListWithoutPayroll returns invoices no payroll record references yet.
	ListWithoutPayroll(ctx context.Context) ([]Invoice, error)
}
