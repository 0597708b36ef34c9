package invoice

import (
	"context"

	"github.com/fieldops/billing-backend-go/internal/domain/automation"
	"github.com/fieldops/billing-backend-go/internal/domain/invoice"
	"github.com/fieldops/billing-backend-go/internal/pkg/database"
	"github.com/fieldops/billing-backend-go/internal/repository/postgresql"
	"github.com/fieldops/billing-backend-go/internal/service/billing"
)

// StatusChangeResult pairs the updated invoice with the outcome of the
// follow-up processing the change triggered.
type StatusChangeResult struct {
	Invoice    invoice.InvoiceResponse         `json:"invoice"`
	Automation *automation.SingleInvoiceResult `json:"automation,omitempty"`
}

type Service interface {
	GetByID(ctx context.Context, id string) (invoice.InvoiceResponse, error)
	List(ctx context.Context, filter invoice.Filter) ([]invoice.InvoiceResponse, error)
	UpdateStatus(ctx context.Context, id string, req invoice.UpdateStatusRequest) (StatusChangeResult, error)
}

type invoiceServiceImpl struct {
	db          *database.DB
	invoiceRepo invoice.InvoiceRepository
	billingSvc  billing.Service
}

func NewInvoiceService(db *database.DB, invoiceRepo invoice.InvoiceRepository, billingSvc billing.Service) Service {
	return &invoiceServiceImpl{
		db:          db,
		invoiceRepo: invoiceRepo,
		billingSvc:  billingSvc,
	}
}

func (s *invoiceServiceImpl) GetByID(ctx context.Context, id string) (invoice.InvoiceResponse, error) {
	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return invoice.InvoiceResponse{}, err
	}

	return invoice.ToResponse(inv), nil
}

func (s *invoiceServiceImpl) List(ctx context.Context, filter invoice.Filter) ([]invoice.InvoiceResponse, error) {
	invoices, err := s.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return invoice.ToResponses(invoices), nil
}

// UpdateStatus transitions an invoice and, when the new status permits
// billing, immediately runs single-invoice processing so the payroll record
// appears without waiting for the next sweep. The transition and the payroll
// it produces commit together or not at all.
func (s *invoiceServiceImpl) UpdateStatus(ctx context.Context, id string, req invoice.UpdateStatusRequest) (StatusChangeResult, error) {
	if err := req.Validate(); err != nil {
		return StatusChangeResult{}, err
	}

	inv, err := s.invoiceRepo.GetByID(ctx, id)
	if err != nil {
		return StatusChangeResult{}, err
	}

	newStatus := invoice.Status(req.Status)
	var result StatusChangeResult

	err = postgresql.WithTransaction(ctx, s.db, func(txCtx context.Context) error {
		if err := s.invoiceRepo.UpdateStatus(txCtx, id, newStatus); err != nil {
			return err
		}
		inv.Status = newStatus
		result.Invoice = invoice.ToResponse(inv)

		if newStatus.Billable() {
			unit, err := s.billingSvc.ProcessSingleInvoice(txCtx, id)
			if err != nil {
				return err
			}
			result.Automation = &unit
		}

		return nil
	})
	if err != nil {
		return StatusChangeResult{}, err
	}

	return result, nil
}
