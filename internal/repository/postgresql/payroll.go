package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldops/billing-backend-go/internal/domain/payroll"
	"github.com/fieldops/billing-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepositoryImpl struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepositoryImpl{db: db}
}

const payrollColumns = `p.id, p.employee_id, p.invoice_id, p.period_year, p.period_month,
	p.total_hours, p.gross_amount, p.created_at, e.full_name`

func scanPayroll(row pgx.Row) (payroll.Payroll, error) {
	var p payroll.Payroll
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.InvoiceID, &p.PeriodYear, &p.PeriodMonth,
		&p.TotalHours, &p.GrossAmount, &p.CreatedAt, &p.EmployeeName,
	)
	return p, err
}

// Create implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) Create(ctx context.Context, record payroll.Payroll) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		WITH inserted AS (
			INSERT INTO payrolls (
				employee_id, invoice_id, period_year, period_month, total_hours, gross_amount
			) VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING *
		)
		SELECT ` + payrollColumns + `
		FROM inserted p
		JOIN employees e ON e.id = p.employee_id
	`

	created, err := scanPayroll(q.QueryRow(ctx, query,
		record.EmployeeID, record.InvoiceID, record.PeriodYear, record.PeriodMonth,
		record.TotalHours, record.GrossAmount,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_payrolls_invoice") {
			return payroll.Payroll{}, payroll.ErrPayrollAlreadyExists
		}
		return payroll.Payroll{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return created, nil
}

// GetByID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payrolls p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	record, err := scanPayroll(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return record, nil
}

// GetByInvoiceID implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) GetByInvoiceID(ctx context.Context, invoiceID string) (payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payrolls p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.invoice_id = $1
	`

	record, err := scanPayroll(q.QueryRow(ctx, query, invoiceID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payroll{}, payroll.ErrPayrollNotFound
		}
		return payroll.Payroll{}, fmt.Errorf("failed to get payroll by invoice: %w", err)
	}

	return record, nil
}

// List implements payroll.PayrollRepository.
func (r *payrollRepositoryImpl) List(ctx context.Context, year, month *int) ([]payroll.Payroll, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payrollColumns + `
		FROM payrolls p
		JOIN employees e ON e.id = p.employee_id
		WHERE 1=1
	`
	var args []interface{}
	argIdx := 1

	if year != nil {
		query += fmt.Sprintf(" AND p.period_year = $%d", argIdx)
		args = append(args, *year)
		argIdx++
	}
	if month != nil {
		query += fmt.Sprintf(" AND p.period_month = $%d", argIdx)
		args = append(args, *month)
		argIdx++
	}
	query += " ORDER BY p.period_year DESC, p.period_month DESC, e.full_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Payroll
	for rows.Next() {
		record, err := scanPayroll(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
