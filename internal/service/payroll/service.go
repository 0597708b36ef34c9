package payroll

import (
	"context"

	"github.com/fieldops/billing-backend-go/internal/domain/payroll"
)

type Service interface {
	GetByID(ctx context.Context, id string) (payroll.PayrollResponse, error)
	List(ctx context.Context, year, month *int) ([]payroll.PayrollResponse, error)
}

type payrollServiceImpl struct {
	payrollRepo payroll.PayrollRepository
}

func NewPayrollService(payrollRepo payroll.PayrollRepository) Service {
	return &payrollServiceImpl{payrollRepo: payrollRepo}
}

func (s *payrollServiceImpl) GetByID(ctx context.Context, id string) (payroll.PayrollResponse, error) {
	record, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayrollResponse{}, err
	}

	return payroll.ToResponse(record), nil
}

func (s *payrollServiceImpl) List(ctx context.Context, year, month *int) ([]payroll.PayrollResponse, error) {
	records, err := s.payrollRepo.List(ctx, year, month)
	if err != nil {
		return nil, err
	}

	return payroll.ToResponses(records), nil
}
