package erp

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// SalesInvoice Entity
// ---------------------------------------------------------------------------

// SalesInvoice is the local sales invoice document.
type SalesInvoice struct {
	// ID is the unique identifier
	ID uuid.UUID
	// Name is the document name (business key)
	Name string
	// Customer is the customer document name
	Customer string
	// Company is the ERP company the invoice belongs to
	Company string
	// Currency is the billing currency code
	Currency string
	// PostingDate is the invoice date
	PostingDate time.Time
	// DueDate is the payment due date
	DueDate *time.Time
	// Items are the invoice lines
	Items []InvoiceLine
	// TotalTaxes is the aggregate tax amount
	TotalTaxes decimal.Decimal
	// GrandTotal is the invoice total including taxes
	GrandTotal decimal.Decimal
	// Status is the document workflow status
	Status string
	// Remarks carries public notes from the remote record
	Remarks string
	// NinjaID links to the Invoice Ninja invoice, empty when unsynced
	NinjaID string
	// NinjaCompanyID is the remote company the link lives in
	NinjaCompanyID string
	// SyncStatus is the per-document sync state
	SyncStatus string
	// CreatedAt is when the record was created
	CreatedAt time.Time
	// UpdatedAt is when the record was last updated
	UpdatedAt time.Time
}

// InvoiceLine is a line item on an invoice or quotation.
type InvoiceLine struct {
	ID          uuid.UUID
	ItemCode    string
	ItemName    string
	Description string
	Qty         decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
}

// ---------------------------------------------------------------------------
// Quotation Entity
// ---------------------------------------------------------------------------

// Quotation is the local quotation document. It shares the invoice line
// shape and differs in its validity window and status vocabulary.
type Quotation struct {
	ID              uuid.UUID
	Name            string
	Customer        string
	Company         string
	Currency        string
	TransactionDate time.Time
	ValidTill       *time.Time
	Items           []InvoiceLine
	TotalTaxes      decimal.Decimal
	GrandTotal      decimal.Decimal
	Status          string
	Remarks         string
	NinjaID         string
	NinjaCompanyID  string
	SyncStatus      string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ---------------------------------------------------------------------------
// PaymentEntry Entity
// ---------------------------------------------------------------------------

// PaymentEntry is the local payment document.
type PaymentEntry struct {
	ID uuid.UUID
	// Name is the document name (business key)
	Name string
	// Party is the customer document name
	Party string
	// Company is the ERP company the payment belongs to
	Company string
	// PostingDate is the payment date
	PostingDate time.Time
	// PaidAmount is the amount received
	PaidAmount decimal.Decimal
	// Currency is the payment currency code
	Currency string
	// ReferenceNo is the external transaction reference
	ReferenceNo string
	// AgainstInvoice is the settled invoice document name, if any
	AgainstInvoice string
	// NinjaID links to the Invoice Ninja payment, empty when unsynced
	NinjaID string
	// NinjaCompanyID is the remote company the link lives in
	NinjaCompanyID string
	// SyncStatus is the per-document sync state
	SyncStatus string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ---------------------------------------------------------------------------
// Document Stores
// ---------------------------------------------------------------------------

// InvoiceStore defines sales invoice persistence.
type InvoiceStore interface {
	// FindByName finds an invoice by document name
	FindByName(ctx context.Context, name string) (*SalesInvoice, error)

	// FindByNinjaID finds the invoice linked to a remote invoice
	FindByNinjaID(ctx context.Context, ninjaID string) (*SalesInvoice, error)

	// ExistsByNinjaID reports whether a remote invoice is already mirrored
	ExistsByNinjaID(ctx context.Context, ninjaID string) (bool, error)

	// Save creates or updates an invoice with its lines
	Save(ctx context.Context, invoice *SalesInvoice) error
}

// QuotationStore defines quotation persistence.
type QuotationStore interface {
	// FindByName finds a quotation by document name
	FindByName(ctx context.Context, name string) (*Quotation, error)

	// FindByNinjaID finds the quotation linked to a remote quote
	FindByNinjaID(ctx context.Context, ninjaID string) (*Quotation, error)

	// ExistsByNinjaID reports whether a remote quote is already mirrored
	ExistsByNinjaID(ctx context.Context, ninjaID string) (bool, error)

	// Save creates or updates a quotation with its lines
	Save(ctx context.Context, quotation *Quotation) error
}

// PaymentStore defines payment entry persistence.
type PaymentStore interface {
	// FindByName finds a payment by document name
	FindByName(ctx context.Context, name string) (*PaymentEntry, error)

	// FindByNinjaID finds the payment linked to a remote payment
	FindByNinjaID(ctx context.Context, ninjaID string) (*PaymentEntry, error)

	// ExistsByNinjaID reports whether a remote payment is already mirrored
	ExistsByNinjaID(ctx context.Context, ninjaID string) (bool, error)

	// Save creates or updates a payment
	Save(ctx context.Context, payment *PaymentEntry) error
}
