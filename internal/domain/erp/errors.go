package erp

import "errors"

var (
	ErrCustomerNotFound  = errors.New("erp: customer not found")
	ErrInvoiceNotFound   = errors.New("erp: sales invoice not found")
	ErrQuotationNotFound = errors.New("erp: quotation not found")
	ErrItemNotFound      = errors.New("erp: item not found")
	ErrPaymentNotFound   = errors.New("erp: payment entry not found")
	ErrAddressNotFound   = errors.New("erp: address not found")
	ErrContactNotFound   = errors.New("erp: contact not found")

	ErrInvalidDocumentName = errors.New("erp: invalid document name")
	ErrMissingCompany      = errors.New("erp: document has no company")
)
