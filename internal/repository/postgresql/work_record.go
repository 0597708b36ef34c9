package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fieldops/billing-backend-go/internal/domain/workrecord"
	"github.com/fieldops/billing-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type workRecordRepositoryImpl struct {
	db *database.DB
}

func NewWorkRecordRepository(db *database.DB) workrecord.WorkRecordRepository {
	return &workRecordRepositoryImpl{db: db}
}

const workRecordColumns = `w.id, w.employee_id, w.site_id, w.site_name, w.work_date,
	w.clock_in, w.clock_out, w.hours_worked, w.is_weekend, w.approval_status,
	w.approved_by, w.approved_at, w.notes, w.created_at, w.updated_at, e.full_name`

func scanWorkRecord(row pgx.Row) (workrecord.WorkRecord, error) {
	var r workrecord.WorkRecord
	err := row.Scan(
		&r.ID, &r.EmployeeID, &r.SiteID, &r.SiteName, &r.WorkDate,
		&r.ClockIn, &r.ClockOut, &r.HoursWorked, &r.IsWeekend, &r.ApprovalStatus,
		&r.ApprovedBy, &r.ApprovedAt, &r.Notes, &r.CreatedAt, &r.UpdatedAt, &r.EmployeeName,
	)
	return r, err
}

// Create implements workrecord.WorkRecordRepository.
func (w *workRecordRepositoryImpl) Create(ctx context.Context, record workrecord.WorkRecord) (workrecord.WorkRecord, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		WITH inserted AS (
			INSERT INTO work_records (
				employee_id, site_id, site_name, work_date, clock_in, clock_out,
				hours_worked, is_weekend, approval_status, notes
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			RETURNING *
		)
		SELECT ` + workRecordColumns + `
		FROM inserted w
		JOIN employees e ON e.id = w.employee_id
	`

	created, err := scanWorkRecord(q.QueryRow(ctx, query,
		record.EmployeeID, record.SiteID, record.SiteName, record.WorkDate,
		record.ClockIn, record.ClockOut, record.HoursWorked, record.IsWeekend,
		record.ApprovalStatus, record.Notes,
	))
	if err != nil {
		if strings.Contains(err.Error(), "uk_work_records_employee_date") {
			return workrecord.WorkRecord{}, workrecord.ErrAlreadyClockedIn
		}
		return workrecord.WorkRecord{}, fmt.Errorf("failed to create work record: %w", err)
	}

	return created, nil
}

// GetByID implements workrecord.WorkRecordRepository.
func (w *workRecordRepositoryImpl) GetByID(ctx context.Context, id string) (workrecord.WorkRecord, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT ` + workRecordColumns + `
		FROM work_records w
		JOIN employees e ON e.id = w.employee_id
		WHERE w.id = $1
	`

	record, err := scanWorkRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return workrecord.WorkRecord{}, workrecord.ErrWorkRecordNotFound
		}
		return workrecord.WorkRecord{}, fmt.Errorf("failed to get work record: %w", err)
	}

	return record, nil
}

// GetByEmployeeDate implements workrecord.WorkRecordRepository.
func (w *workRecordRepositoryImpl) GetByEmployeeDate(ctx context.Context, employeeID string, workDate time.Time) (workrecord.WorkRecord, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT ` + workRecordColumns + `
		FROM work_records w
		JOIN employees e ON e.id = w.employee_id
		WHERE w.employee_id = $1 AND w.work_date = $2
	`

	record, err := scanWorkRecord(q.QueryRow(ctx, query, employeeID, workDate))
	if err != nil {
		if err == pgx.ErrNoRows {
			return workrecord.WorkRecord{}, workrecord.ErrWorkRecordNotFound
		}
		return workrecord.WorkRecord{}, fmt.Errorf("failed to get work record by date: %w", err)
	}

	return record, nil
}

// Update implements workrecord.WorkRecordRepository.
func (w *workRecordRepositoryImpl) Update(ctx context.Context, record workrecord.WorkRecord) error {
	q := GetQuerier(ctx, w.db)

	query := `
		UPDATE work_records
		SET clock_in = $2, clock_out = $3, hours_worked = $4, approval_status = $5,
			approved_by = $6, approved_at = $7, notes = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updatedID string
	err := q.QueryRow(ctx, query,
		record.ID, record.ClockIn, record.ClockOut, record.HoursWorked,
		record.ApprovalStatus, record.ApprovedBy, record.ApprovedAt, record.Notes,
	).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return workrecord.ErrWorkRecordNotFound
		}
		return fmt.Errorf("failed to update work record: %w", err)
	}

	return nil
}

// ListByEmployeePeriod implements workrecord.WorkRecordRepository.
func (w *workRecordRepositoryImpl) ListByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time, status *workrecord.ApprovalStatus) ([]workrecord.WorkRecord, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT ` + workRecordColumns + `
		FROM work_records w
		JOIN employees e ON e.id = w.employee_id
		WHERE w.employee_id = $1 AND w.work_date >= $2 AND w.work_date <= $3
	`
	args := []interface{}{employeeID, from, to}
	if status != nil {
		query += ` AND w.approval_status = $4`
		args = append(args, *status)
	}
	query += ` ORDER BY w.work_date`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list work records: %w", err)
	}
	defer rows.Close()

	var records []workrecord.WorkRecord
	for rows.Next() {
		record, err := scanWorkRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work record: %w", err)
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// ListApprovedByEmployeePeriod implements workrecord.WorkRecordRepository.
func (w *workRecordRepositoryImpl) ListApprovedByEmployeePeriod(ctx context.Context, employeeID string, from, to time.Time) ([]workrecord.WorkRecord, error) {
	approved := workrecord.ApprovalStatusApproved
	return w.ListByEmployeePeriod(ctx, employeeID, from, to, &approved)
}

// ListEmployeeIDsWithApproved implements workrecord.WorkRecordRepository.
func (w *workRecordRepositoryImpl) ListEmployeeIDsWithApproved(ctx context.Context, from, to time.Time) ([]string, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT DISTINCT w.employee_id
		FROM work_records w
		JOIN employees e ON e.id = w.employee_id AND e.deleted_at IS NULL
		WHERE w.approval_status = 'approved' AND w.work_date >= $1 AND w.work_date <= $2
		ORDER BY w.employee_id
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees with approved records: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan employee id: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}
