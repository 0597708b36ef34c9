package invoice

import (
	"github.com/fieldops/billing-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type Filter struct {
	EmployeeID  *string
	Status      *Status
	PeriodYear  *int
	PeriodMonth *int
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Status(r.Status).Valid() {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be 'pending', 'received' or 'overdue'"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type InvoiceResponse struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	EmployeeID    string          `json:"employee_id"`
	EmployeeName  *string         `json:"employee_name,omitempty"`
	PeriodYear    int             `json:"period_year"`
	PeriodMonth   int             `json:"period_month"`
	LineItems     []LineItem      `json:"line_items"`
	TotalHours    decimal.Decimal `json:"total_hours"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	DueDate       string          `json:"due_date"`
	Status        string          `json:"status"`
}

func ToResponse(inv Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		EmployeeID:    inv.EmployeeID,
		EmployeeName:  inv.EmployeeName,
		PeriodYear:    inv.PeriodYear,
		PeriodMonth:   inv.PeriodMonth,
		LineItems:     inv.LineItems,
		TotalHours:    inv.TotalHours,
		Subtotal:      inv.Subtotal,
		DueDate:       inv.DueDate.Format("2006-01-02"),
		Status:        string(inv.Status),
	}
}

func ToResponses(invoices []Invoice) []InvoiceResponse {
	result := make([]InvoiceResponse, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, ToResponse(inv))
	}
	return result
}
