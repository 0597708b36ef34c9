package employee

import (
	"context"

	"github.com/fieldops/billing-backend-go/internal/domain/employee"
	"github.com/fieldops/billing-backend-go/internal/pkg/paycycle"
	"github.com/shopspring/decimal"
)

type Service interface {
	Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error)
	List(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error)
	Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type employeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) Service {
	return &employeeServiceImpl{employeeRepo: employeeRepo}
}

// defaultWeekendMultiplier applies when a new employee has weekend pay
// enabled without an explicit multiplier.
var defaultWeekendMultiplier = decimal.NewFromFloat(1.5)

func (s *employeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	emp := employee.Employee{
		EmployeeCode:          req.EmployeeCode,
		FullName:              req.FullName,
		Email:                 req.Email,
		HourlyRate:            req.HourlyRate,
		WeekendRateMultiplier: defaultWeekendMultiplier,
		PaymentCycleDays:      paycycle.DefaultCycleDays,
		EmploymentStatus:      employee.EmploymentStatusActive,
	}
	if req.WeekendPayEnabled != nil {
		emp.WeekendPayEnabled = *req.WeekendPayEnabled
	}
	if req.WeekendRateMultiplier != nil {
		emp.WeekendRateMultiplier = *req.WeekendRateMultiplier
	}
	if req.PaymentCycleDays != nil {
		emp.PaymentCycleDays = *req.PaymentCycleDays
	}

	created, err := s.employeeRepo.Create(ctx, emp)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapToResponse(created), nil
}

func (s *employeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	return mapToResponse(emp), nil
}

func (s *employeeServiceImpl) List(ctx context.Context, activeOnly bool) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	result := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		result = append(result, mapToResponse(emp))
	}

	return result, nil
}

func (s *employeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if err := req.Validate(); err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.employeeRepo.Update(ctx, req); err != nil {
		return employee.EmployeeResponse{}, err
	}

	return s.GetByID(ctx, req.ID)
}

func (s *employeeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.employeeRepo.SoftDelete(ctx, id)
}

func mapToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:                    emp.ID,
		EmployeeCode:          emp.EmployeeCode,
		FullName:              emp.FullName,
		Email:                 emp.Email,
		HourlyRate:            emp.HourlyRate,
		WeekendPayEnabled:     emp.WeekendPayEnabled,
		WeekendRateMultiplier: emp.WeekendRateMultiplier,
		PaymentCycleDays:      emp.PaymentCycleDays,
		EmploymentStatus:      string(emp.EmploymentStatus),
	}
}
