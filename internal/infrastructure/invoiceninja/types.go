package invoiceninja

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// Response envelopes
// ---------------------------------------------------------------------------

// listEnvelope is the collection response wrapper used by the v5 API.
type listEnvelope struct {
	Data []json.RawMessage `json:"data"`
	Meta *Meta             `json:"meta"`
}

// singleEnvelope wraps a single-record response.
type singleEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// Meta carries pagination metadata on collection responses.
type Meta struct {
	Pagination *Pagination `json:"pagination"`
}

// Pagination describes the current page of a collection response. A list is
// exhausted when Links.Next is empty.
type Pagination struct {
	Total       int64           `json:"total"`
	Count       int64           `json:"count"`
	PerPage     int             `json:"per_page"`
	CurrentPage int             `json:"current_page"`
	TotalPages  int             `json:"total_pages"`
	Links       PaginationLinks `json:"links"`
}

// PaginationLinks holds the page navigation URLs.
type PaginationLinks struct {
	Next string `json:"next"`
}

// HasMore reports whether another page exists.
func (p *Pagination) HasMore() bool {
	return p != nil && p.Links.Next != ""
}

// ---------------------------------------------------------------------------
// Client (remote customer) records
// ---------------------------------------------------------------------------

// ClientRecord is an Invoice Ninja client.
type ClientRecord struct {
	ID                 string          `json:"id,omitempty"`
	Name               string          `json:"name"`
	Number             string          `json:"number,omitempty"`
	IDNumber           string          `json:"id_number,omitempty"`
	VatNumber          string          `json:"vat_number,omitempty"`
	Website            string          `json:"website,omitempty"`
	Phone              string          `json:"phone,omitempty"`
	Classification     string          `json:"classification,omitempty"`
	Address1           string          `json:"address1,omitempty"`
	Address2           string          `json:"address2,omitempty"`
	City               string          `json:"city,omitempty"`
	State              string          `json:"state,omitempty"`
	PostalCode         string          `json:"postal_code,omitempty"`
	CountryID          string          `json:"country_id,omitempty"`
	ShippingAddress1   string          `json:"shipping_address1,omitempty"`
	ShippingAddress2   string          `json:"shipping_address2,omitempty"`
	ShippingCity       string          `json:"shipping_city,omitempty"`
	ShippingState      string          `json:"shipping_state,omitempty"`
	ShippingPostalCode string          `json:"shipping_postal_code,omitempty"`
	ShippingCountryID  string          `json:"shipping_country_id,omitempty"`
	GroupSettingsID    string          `json:"group_settings_id,omitempty"`
	Settings           *ClientSettings `json:"settings,omitempty"`
	Contacts           []ContactRecord `json:"contacts,omitempty"`
	IsDeleted          bool            `json:"is_deleted,omitempty"`
}

// ClientSettings carries the per-client settings block.
type ClientSettings struct {
	CurrencyID string `json:"currency_id,omitempty"`
}

// ContactRecord is a contact attached to a client.
type ContactRecord struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	IsPrimary bool   `json:"is_primary,omitempty"`
}

// ---------------------------------------------------------------------------
// Invoice and quote records
// ---------------------------------------------------------------------------

// InvoiceRecord is an Invoice Ninja invoice. Quotes share the same shape.
type InvoiceRecord struct {
	ID           string          `json:"id,omitempty"`
	ClientID     string          `json:"client_id"`
	Number       string          `json:"number,omitempty"`
	StatusID     string          `json:"status_id,omitempty"`
	Date         string          `json:"date,omitempty"`
	DueDate      string          `json:"due_date,omitempty"`
	PoNumber     string          `json:"po_number,omitempty"`
	PublicNotes  string          `json:"public_notes,omitempty"`
	PrivateNotes string          `json:"private_notes,omitempty"`
	LineItems    []LineItem      `json:"line_items,omitempty"`
	Amount       decimal.Decimal `json:"amount,omitempty"`
	Balance      decimal.Decimal `json:"balance,omitempty"`
	TotalTaxes   decimal.Decimal `json:"total_taxes,omitempty"`
	IsDeleted    bool            `json:"is_deleted,omitempty"`
}

// LineItem is one line on an invoice or quote.
type LineItem struct {
	ProductKey string          `json:"product_key,omitempty"`
	Notes      string          `json:"notes,omitempty"`
	Quantity   decimal.Decimal `json:"quantity"`
	Cost       decimal.Decimal `json:"cost"`
	LineTotal  decimal.Decimal `json:"line_total,omitempty"`
	TaxName1   string          `json:"tax_name1,omitempty"`
	TaxRate1   float64         `json:"tax_rate1,omitempty"`
}

// ---------------------------------------------------------------------------
// Product records
// ---------------------------------------------------------------------------

// ProductRecord is an Invoice Ninja product.
type ProductRecord struct {
	ID         string          `json:"id,omitempty"`
	ProductKey string          `json:"product_key"`
	Notes      string          `json:"notes,omitempty"`
	Price      decimal.Decimal `json:"price,omitempty"`
	Cost       decimal.Decimal `json:"cost,omitempty"`
	Quantity   decimal.Decimal `json:"quantity,omitempty"`
	IsDeleted  bool            `json:"is_deleted,omitempty"`
}

// ---------------------------------------------------------------------------
// Payment records
// ---------------------------------------------------------------------------

// PaymentRecord is an Invoice Ninja payment.
type PaymentRecord struct {
	ID                   string           `json:"id,omitempty"`
	ClientID             string           `json:"client_id"`
	Amount               decimal.Decimal  `json:"amount"`
	Date                 string           `json:"date,omitempty"`
	TransactionReference string           `json:"transaction_reference,omitempty"`
	TypeID               string           `json:"type_id,omitempty"`
	Invoices             []PaymentInvoice `json:"invoices,omitempty"`
	IsDeleted            bool             `json:"is_deleted,omitempty"`
}

// PaymentInvoice applies a payment amount against an invoice.
type PaymentInvoice struct {
	InvoiceID string          `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount,omitempty"`
}

// ---------------------------------------------------------------------------
// Company records
// ---------------------------------------------------------------------------

// CompanyRecord is an Invoice Ninja company as returned by /companies.
type CompanyRecord struct {
	ID         string          `json:"id"`
	CompanyKey string          `json:"company_key,omitempty"`
	Settings   CompanySettings `json:"settings,omitempty"`
}

// CompanySettings carries the company settings block.
type CompanySettings struct {
	Name string `json:"name,omitempty"`
}

// DisplayName returns the best available company name.
func (c *CompanyRecord) DisplayName() string {
	if c.Settings.Name != "" {
		return c.Settings.Name
	}
	return c.ID
}
