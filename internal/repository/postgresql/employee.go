package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/fieldops/billing-backend-go/internal/domain/employee"
	"github.com/fieldops/billing-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, employee_code, full_name, email, hourly_rate,
	weekend_pay_enabled, weekend_rate_multiplier, payment_cycle_days,
	employment_status, created_at, updated_at, deleted_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeCode, &emp.FullName, &emp.Email, &emp.HourlyRate,
		&emp.WeekendPayEnabled, &emp.WeekendRateMultiplier, &emp.PaymentCycleDays,
		&emp.EmploymentStatus, &emp.CreatedAt, &emp.UpdatedAt, &emp.DeletedAt,
	)
	return emp, err
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			employee_code, full_name, email, hourly_rate,
			weekend_pay_enabled, weekend_rate_multiplier, payment_cycle_days, employment_status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + employeeColumns

	created, err := scanEmployee(q.QueryRow(ctx, query,
		emp.EmployeeCode, emp.FullName, emp.Email, emp.HourlyRate,
		emp.WeekendPayEnabled, emp.WeekendRateMultiplier, emp.PaymentCycleDays, emp.EmploymentStatus,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_employees_code") {
			return employee.Employee{}, employee.ErrEmployeeCodeExists
		}
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return created, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND deleted_at IS NULL`

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return emp, nil
}

// GetByCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_code = $1 AND deleted_at IS NULL`

	emp, err := scanEmployee(q.QueryRow(ctx, query, code))
	if err != nil {
		if err == pgx.ErrNoRows {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return emp, nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE deleted_at IS NULL`
	if activeOnly {
		query += ` AND employment_status = 'active'`
	}
	query += ` ORDER BY employee_code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) error {
	q := GetQuerier(ctx, e.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	argIdx := 2

	if req.FullName != nil {
		setParts = append(setParts, fmt.Sprintf("full_name = $%d", argIdx))
		args = append(args, *req.FullName)
		argIdx++
	}
	if req.Email != nil {
		setParts = append(setParts, fmt.Sprintf("email = $%d", argIdx))
		args = append(args, *req.Email)
		argIdx++
	}
	if req.HourlyRate != nil {
		setParts = append(setParts, fmt.Sprintf("hourly_rate = $%d", argIdx))
		args = append(args, *req.HourlyRate)
		argIdx++
	}
	if req.WeekendPayEnabled != nil {
		setParts = append(setParts, fmt.Sprintf("weekend_pay_enabled = $%d", argIdx))
		args = append(args, *req.WeekendPayEnabled)
		argIdx++
	}
	if req.WeekendRateMultiplier != nil {
		setParts = append(setParts, fmt.Sprintf("weekend_rate_multiplier = $%d", argIdx))
		args = append(args, *req.WeekendRateMultiplier)
		argIdx++
	}
	if req.PaymentCycleDays != nil {
		setParts = append(setParts, fmt.Sprintf("payment_cycle_days = $%d", argIdx))
		args = append(args, *req.PaymentCycleDays)
		argIdx++
	}
	if req.EmploymentStatus != nil {
		setParts = append(setParts, fmt.Sprintf("employment_status = $%d", argIdx))
		args = append(args, *req.EmploymentStatus)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE employees SET %s
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	if err := q.QueryRow(ctx, query, args...).Scan(&updatedID); err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to update employee: %w", err)
	}

	return nil
}

// SoftDelete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING id
	`

	var deletedID string
	if err := q.QueryRow(ctx, query, id).Scan(&deletedID); err != nil {
		if err == pgx.ErrNoRows {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	return nil
}
