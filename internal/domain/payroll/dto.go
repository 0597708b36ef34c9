package payroll

import "github.com/shopspring/decimal"

type PayrollResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	InvoiceID    string          `json:"invoice_id"`
	PeriodYear   int             `json:"period_year"`
	PeriodMonth  int             `json:"period_month"`
	TotalHours   decimal.Decimal `json:"total_hours"`
	GrossAmount  decimal.Decimal `json:"gross_amount"`
	CreatedAt    string          `json:"created_at"`
}

func ToResponse(p Payroll) PayrollResponse {
	return PayrollResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		InvoiceID:    p.InvoiceID,
		PeriodYear:   p.PeriodYear,
		PeriodMonth:  p.PeriodMonth,
		TotalHours:   p.TotalHours,
		GrossAmount:  p.GrossAmount,
		CreatedAt:    p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func ToResponses(records []Payroll) []PayrollResponse {
	result := make([]PayrollResponse, 0, len(records))
	for _, p := range records {
		result = append(result, ToResponse(p))
	}
	return result
}
