package invoice

import "errors"

var (
	ErrInvoiceNotFound      = errors.New("invoice not found")
	ErrInvoiceAlreadyExists = errors.New("invoice already exists for this employee and period")
	ErrInvalidStatus        = errors.New("invalid invoice status")
)
