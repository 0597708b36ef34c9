package postgresql

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fieldops/billing-backend-go/internal/domain/invoice"
	"github.com/fieldops/billing-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type invoiceRepositoryImpl struct {
	db *database.DB
}

func NewInvoiceRepository(db *database.DB) invoice.InvoiceRepository {
	return &invoiceRepositoryImpl{db: db}
}

const invoiceColumns = `i.id, i.invoice_number, i.employee_id, i.period_year, i.period_month,
	i.line_items, i.total_hours, i.subtotal, i.due_date, i.status,
	i.created_at, i.updated_at, e.full_name`

func scanInvoice(row pgx.Row) (invoice.Invoice, error) {
	var inv invoice.Invoice
	var lineItems []byte
	err := row.Scan(
		&inv.ID, &inv.InvoiceNumber, &inv.EmployeeID, &inv.PeriodYear, &inv.PeriodMonth,
		&lineItems, &inv.TotalHours, &inv.Subtotal, &inv.DueDate, &inv.Status,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.EmployeeName,
	)
	if err != nil {
		return invoice.Invoice{}, err
	}
	if len(lineItems) > 0 {
		if err := json.Unmarshal(lineItems, &inv.LineItems); err != nil {
			return invoice.Invoice{}, fmt.Errorf("failed to decode line items: %w", err)
		}
	}
	return inv, nil
}

// Create implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) Create(ctx context.Context, inv invoice.Invoice) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	lineItems, err := json.Marshal(inv.LineItems)
	if err != nil {
		return invoice.Invoice{}, fmt.Errorf("failed to encode line items: %w", err)
	}

	query := `
		WITH inserted AS (
			INSERT INTO invoices (
				invoice_number, employee_id, period_year, period_month,
				line_items, total_hours, subtotal, due_date, status
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING *
		)
		SELECT ` + invoiceColumns + `
		FROM inserted i
		JOIN employees e ON e.id = i.employee_id
	`

	created, err := scanInvoice(q.QueryRow(ctx, query,
		inv.InvoiceNumber, inv.EmployeeID, inv.PeriodYear, inv.PeriodMonth,
		lineItems, inv.TotalHours, inv.Subtotal, inv.DueDate, inv.Status,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_invoices_employee_period") {
			return invoice.Invoice{}, invoice.ErrInvoiceAlreadyExists
		}
		return invoice.Invoice{}, fmt.Errorf("failed to create invoice: %w", err)
	}

	return created, nil
}

// GetByID implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) GetByID(ctx context.Context, id string) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN employees e ON e.id = i.employee_id
		WHERE i.id = $1
	`

	inv, err := scanInvoice(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return invoice.Invoice{}, invoice.ErrInvoiceNotFound
		}
		return invoice.Invoice{}, fmt.Errorf("failed to get invoice: %w", err)
	}

	return inv, nil
}

// GetByEmployeePeriod implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) GetByEmployeePeriod(ctx context.Context, employeeID string, year, month int) (invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN employees e ON e.id = i.employee_id
		WHERE i.employee_id = $1 AND i.period_year = $2 AND i.period_month = $3
	`

	inv, err := scanInvoice(q.QueryRow(ctx, query, employeeID, year, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return invoice.Invoice{}, invoice.ErrInvoiceNotFound
		}
		return invoice.Invoice{}, fmt.Errorf("failed to get invoice by period: %w", err)
	}

	return inv, nil
}

// List implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) List(ctx context.Context, filter invoice.Filter) ([]invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN employees e ON e.id = i.employee_id
		WHERE 1=1
	`
	var args []interface{}
	argIdx := 1

	if filter.EmployeeID != nil {
		query += fmt.Sprintf(" AND i.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND i.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.PeriodYear != nil {
		query += fmt.Sprintf(" AND i.period_year = $%d", argIdx)
		args = append(args, *filter.PeriodYear)
		argIdx++
	}
	if filter.PeriodMonth != nil {
		query += fmt.Sprintf(" AND i.period_month = $%d", argIdx)
		args = append(args, *filter.PeriodMonth)
		argIdx++
	}
	query += " ORDER BY i.period_year DESC, i.period_month DESC, e.full_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []invoice.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return invoices, nil
}

// UpdateStatus implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) UpdateStatus(ctx context.Context, id string, status invoice.Status) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE invoices SET status = $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	if err := q.QueryRow(ctx, query, id, status).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return invoice.ErrInvoiceNotFound
		}
		return fmt.Errorf("failed to update invoice status: %w", err)
	}

	return nil
}

// ListWithoutPayroll implements invoice.InvoiceRepository.
func (r *invoiceRepositoryImpl) ListWithoutPayroll(ctx context.Context) ([]invoice.Invoice, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices i
		JOIN employees e ON e.id = i.employee_id
		LEFT JOIN payrolls p ON p.invoice_id = i.id
		WHERE p.id IS NULL
		ORDER BY i.period_year, i.period_month, e.full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list unprocessed invoices: %w", err)
	}
	defer rows.Close()

	var invoices []invoice.Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan invoice: %w", err)
		}
		invoices = append(invoices, inv)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return invoices, nil
}
