package automation

// UnitError records a per-unit failure inside a batch. The batch keeps going;
// the caller decides what to do with the list.
type UnitError struct {
	Unit    string `json:"unit"`
	Message string `json:"message"`
}

type SingleInvoiceResult struct {
	InvoiceID      string `json:"invoice_id"`
	PayrollCreated bool   `json:"payroll_created"`
	StatusUpdated  bool   `json:"status_updated"`
}

type BatchInvoiceResult struct {
	InvoicesProcessed int         `json:"invoices_processed"`
	StatusesUpdated   int         `json:"statuses_updated"`
	PayrollsCreated   int         `json:"payrolls_created"`
	Errors            []UnitError `json:"errors,omitempty"`
}

type EmployeeTimesheetResult struct {
	EmployeeID     string `json:"employee_id"`
	PeriodYear     int    `json:"period_year"`
	PeriodMonth    int    `json:"period_month"`
	InvoiceCreated bool   `json:"invoice_created"`
	PayrollCreated bool   `json:"payroll_created"`
	Error          string `json:"error,omitempty"`
}

type BatchTimesheetResult struct {
	PeriodYear      int         `json:"period_year"`
	PeriodMonth     int         `json:"period_month"`
	Processed       int         `json:"processed"`
	InvoicesCreated int         `json:"invoices_created"`
	PayrollsCreated int         `json:"payrolls_created"`
	Errors          []UnitError `json:"errors,omitempty"`
}
