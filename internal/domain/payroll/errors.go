package payroll

import "errors"

var (
	ErrPayrollNotFound      = errors.New("payroll record not found")
	ErrPayrollAlreadyExists = errors.New("payroll record already exists for this invoice")
)
