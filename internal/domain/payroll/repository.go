package payroll

import "context"

type PayrollRepository interface {
	// Create persists a new payroll record. The unique invoice_id key makes
	// re-processing an already-processed invoice surface as
	// ErrPayrollAlreadyExists instead of a duplicate row.
	Create(ctx context.Context, p Payroll) (Payroll, error)
	GetByID(ctx context.Context, id string) (Payroll, error)
	GetByInvoiceID(ctx context.Context, invoiceID string) (Payroll, error)
	List(ctx context.Context, year, month *int) ([]Payroll, error)
}
