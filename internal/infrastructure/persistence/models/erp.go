package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/novizna/ninjasync/internal/domain/erp"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// CustomerModel
// ---------------------------------------------------------------------------

// CustomerModel is the persistence model for the Customer domain entity.
type CustomerModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	Name           string    `gorm:"type:varchar(140);not null;uniqueIndex"`
	CustomerName   string    `gorm:"type:varchar(200);not null"`
	CustomerType   string    `gorm:"type:varchar(20);not null;default:'Company'"`
	Company        string    `gorm:"type:varchar(140);index"`
	Currency       string    `gorm:"type:varchar(10)"`
	TaxID          string    `gorm:"type:varchar(50)"`
	Website        string    `gorm:"type:varchar(255)"`
	Phone          string    `gorm:"type:varchar(50)"`
	Email          string    `gorm:"type:varchar(255)"`
	NinjaID        string    `gorm:"type:varchar(50);index"`
	NinjaCompanyID string    `gorm:"type:varchar(50)"`
	SyncStatus     string    `gorm:"type:varchar(30);not null;default:'Not Synced'"`
	Disabled       bool      `gorm:"not null;default:false"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity.
func (m *CustomerModel) ToDomain() *erp.Customer {
	return &erp.Customer{
		ID:             m.ID,
		Name:           m.Name,
		CustomerName:   m.CustomerName,
		CustomerType:   erp.CustomerType(m.CustomerType),
		Company:        m.Company,
		Currency:       m.Currency,
		TaxID:          m.TaxID,
		Website:        m.Website,
		Phone:          m.Phone,
		Email:          m.Email,
		NinjaID:        m.NinjaID,
		NinjaCompanyID: m.NinjaCompanyID,
		SyncStatus:     m.SyncStatus,
		Disabled:       m.Disabled,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Customer entity.
func (m *CustomerModel) FromDomain(c *erp.Customer) {
	m.ID = c.ID
	m.Name = c.Name
	m.CustomerName = c.CustomerName
	m.CustomerType = string(c.CustomerType)
	m.Company = c.Company
	m.Currency = c.Currency
	m.TaxID = c.TaxID
	m.Website = c.Website
	m.Phone = c.Phone
	m.Email = c.Email
	m.NinjaID = c.NinjaID
	m.NinjaCompanyID = c.NinjaCompanyID
	m.SyncStatus = c.SyncStatus
	m.Disabled = c.Disabled
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// CustomerModelFromDomain creates a new persistence model from a domain
// Customer entity.
func CustomerModelFromDomain(c *erp.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}

// ---------------------------------------------------------------------------
// AddressModel
// ---------------------------------------------------------------------------

// AddressModel is the persistence model for the Address domain entity.
type AddressModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	AddressType  string    `gorm:"type:varchar(20);not null"`
	AddressLine1 string    `gorm:"type:varchar(255)"`
	AddressLine2 string    `gorm:"type:varchar(255)"`
	City         string    `gorm:"type:varchar(100)"`
	State        string    `gorm:"type:varchar(100)"`
	PostalCode   string    `gorm:"type:varchar(20)"`
	Country      string    `gorm:"type:varchar(100)"`
	CreatedAt    time.Time `gorm:"not null"`
	UpdatedAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (AddressModel) TableName() string {
	return "addresses"
}

// ToDomain converts the persistence model to a domain Address entity.
func (m *AddressModel) ToDomain() *erp.Address {
	return &erp.Address{
		ID:           m.ID,
		CustomerID:   m.CustomerID,
		AddressType:  erp.AddressType(m.AddressType),
		AddressLine1: m.AddressLine1,
		AddressLine2: m.AddressLine2,
		City:         m.City,
		State:        m.State,
		PostalCode:   m.PostalCode,
		Country:      m.Country,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Address entity.
func (m *AddressModel) FromDomain(a *erp.Address) {
	m.ID = a.ID
	m.CustomerID = a.CustomerID
	m.AddressType = string(a.AddressType)
	m.AddressLine1 = a.AddressLine1
	m.AddressLine2 = a.AddressLine2
	m.City = a.City
	m.State = a.State
	m.PostalCode = a.PostalCode
	m.Country = a.Country
	m.CreatedAt = a.CreatedAt
	m.UpdatedAt = a.UpdatedAt
}

// AddressModelFromDomain creates a new persistence model from a domain
// Address entity.
func AddressModelFromDomain(a *erp.Address) *AddressModel {
	m := &AddressModel{}
	m.FromDomain(a)
	return m
}

// ---------------------------------------------------------------------------
// ContactModel
// ---------------------------------------------------------------------------

// ContactModel is the persistence model for the Contact domain entity.
type ContactModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key"`
	CustomerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	FirstName      string    `gorm:"type:varchar(100)"`
	LastName       string    `gorm:"type:varchar(100)"`
	Email          string    `gorm:"type:varchar(255);index"`
	Phone          string    `gorm:"type:varchar(50)"`
	IsPrimary      bool      `gorm:"not null;default:false"`
	NinjaContactID string    `gorm:"type:varchar(50);index"`
	CreatedAt      time.Time `gorm:"not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ContactModel) TableName() string {
	return "contacts"
}

// ToDomain converts the persistence model to a domain Contact entity.
func (m *ContactModel) ToDomain() *erp.Contact {
	return &erp.Contact{
		ID:             m.ID,
		CustomerID:     m.CustomerID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		Phone:          m.Phone,
		IsPrimary:      m.IsPrimary,
		NinjaContactID: m.NinjaContactID,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Contact entity.
func (m *ContactModel) FromDomain(c *erp.Contact) {
	m.ID = c.ID
	m.CustomerID = c.CustomerID
	m.FirstName = c.FirstName
	m.LastName = c.LastName
	m.Email = c.Email
	m.Phone = c.Phone
	m.IsPrimary = c.IsPrimary
	m.NinjaContactID = c.NinjaContactID
	m.CreatedAt = c.CreatedAt
	m.UpdatedAt = c.UpdatedAt
}

// ContactModelFromDomain creates a new persistence model from a domain
// Contact entity.
func ContactModelFromDomain(c *erp.Contact) *ContactModel {
	m := &ContactModel{}
	m.FromDomain(c)
	return m
}

// ---------------------------------------------------------------------------
// ItemModel
// ---------------------------------------------------------------------------

// ItemModel is the persistence model for the Item domain entity.
type ItemModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	ItemCode       string          `gorm:"type:varchar(140);not null;uniqueIndex"`
	ItemName       string          `gorm:"type:varchar(200);not null"`
	Description    string          `gorm:"type:text"`
	StandardRate   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	StockUOM       string          `gorm:"type:varchar(50)"`
	NinjaID        string          `gorm:"type:varchar(50);index"`
	NinjaCompanyID string          `gorm:"type:varchar(50)"`
	SyncStatus     string          `gorm:"type:varchar(30);not null;default:'Not Synced'"`
	Disabled       bool            `gorm:"not null;default:false"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "items"
}

// ToDomain converts the persistence model to a domain Item entity.
func (m *ItemModel) ToDomain() *erp.Item {
	return &erp.Item{
		ID:             m.ID,
		ItemCode:       m.ItemCode,
		ItemName:       m.ItemName,
		Description:    m.Description,
		StandardRate:   m.StandardRate,
		StockUOM:       m.StockUOM,
		NinjaID:        m.NinjaID,
		NinjaCompanyID: m.NinjaCompanyID,
		SyncStatus:     m.SyncStatus,
		Disabled:       m.Disabled,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Item entity.
func (m *ItemModel) FromDomain(it *erp.Item) {
	m.ID = it.ID
	m.ItemCode = it.ItemCode
	m.ItemName = it.ItemName
	m.Description = it.Description
	m.StandardRate = it.StandardRate
	m.StockUOM = it.StockUOM
	m.NinjaID = it.NinjaID
	m.NinjaCompanyID = it.NinjaCompanyID
	m.SyncStatus = it.SyncStatus
	m.Disabled = it.Disabled
	m.CreatedAt = it.CreatedAt
	m.UpdatedAt = it.UpdatedAt
}

// ItemModelFromDomain creates a new persistence model from a domain Item entity.
func ItemModelFromDomain(it *erp.Item) *ItemModel {
	m := &ItemModel{}
	m.FromDomain(it)
	return m
}

// ---------------------------------------------------------------------------
// SalesInvoiceModel
// ---------------------------------------------------------------------------

// SalesInvoiceModel is the persistence model for the SalesInvoice domain
// entity. Lines live in their own table keyed by invoice ID.
type SalesInvoiceModel struct {
	ID             uuid.UUID          `gorm:"type:uuid;primary_key"`
	Name           string             `gorm:"type:varchar(140);not null;uniqueIndex"`
	Customer       string             `gorm:"type:varchar(140);not null;index"`
	Company        string             `gorm:"type:varchar(140);index"`
	Currency       string             `gorm:"type:varchar(10)"`
	PostingDate    time.Time          `gorm:"not null"`
	DueDate        *time.Time         `gorm:""`
	Items          []InvoiceLineModel `gorm:"foreignKey:InvoiceID;references:ID"`
	TotalTaxes     decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	GrandTotal     decimal.Decimal    `gorm:"type:decimal(18,4);not null;default:0"`
	Status         string             `gorm:"type:varchar(30);not null;default:'Draft'"`
	Remarks        string             `gorm:"type:text"`
	NinjaID        string             `gorm:"type:varchar(50);index"`
	NinjaCompanyID string             `gorm:"type:varchar(50)"`
	SyncStatus     string             `gorm:"type:varchar(30);not null;default:'Not Synced'"`
	CreatedAt      time.Time          `gorm:"not null"`
	UpdatedAt      time.Time          `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesInvoiceModel) TableName() string {
	return "sales_invoices"
}

// InvoiceLineModel is the persistence model for a sales invoice line.
type InvoiceLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemCode    string          `gorm:"type:varchar(140);not null"`
	ItemName    string          `gorm:"type:varchar(200)"`
	Description string          `gorm:"type:text"`
	Qty         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceLineModel) TableName() string {
	return "sales_invoice_items"
}

// ToDomain converts the persistence model to a domain SalesInvoice entity.
func (m *SalesInvoiceModel) ToDomain() *erp.SalesInvoice {
	inv := &erp.SalesInvoice{
		ID:             m.ID,
		Name:           m.Name,
		Customer:       m.Customer,
		Company:        m.Company,
		Currency:       m.Currency,
		PostingDate:    m.PostingDate,
		DueDate:        m.DueDate,
		Items:          make([]erp.InvoiceLine, len(m.Items)),
		TotalTaxes:     m.TotalTaxes,
		GrandTotal:     m.GrandTotal,
		Status:         m.Status,
		Remarks:        m.Remarks,
		NinjaID:        m.NinjaID,
		NinjaCompanyID: m.NinjaCompanyID,
		SyncStatus:     m.SyncStatus,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
	for i, line := range m.Items {
		inv.Items[i] = erp.InvoiceLine{
			ID:          line.ID,
			ItemCode:    line.ItemCode,
			ItemName:    line.ItemName,
			Description: line.Description,
			Qty:         line.Qty,
			Rate:        line.Rate,
			Amount:      line.Amount,
		}
	}
	return inv
}

// FromDomain populates the persistence model from a domain SalesInvoice entity.
func (m *SalesInvoiceModel) FromDomain(inv *erp.SalesInvoice) {
	m.ID = inv.ID
	m.Name = inv.Name
	m.Customer = inv.Customer
	m.Company = inv.Company
	m.Currency = inv.Currency
	m.PostingDate = inv.PostingDate
	m.DueDate = inv.DueDate
	m.TotalTaxes = inv.TotalTaxes
	m.GrandTotal = inv.GrandTotal
	m.Status = inv.Status
	m.Remarks = inv.Remarks
	m.NinjaID = inv.NinjaID
	m.NinjaCompanyID = inv.NinjaCompanyID
	m.SyncStatus = inv.SyncStatus
	m.CreatedAt = inv.CreatedAt
	m.UpdatedAt = inv.UpdatedAt

	m.Items = make([]InvoiceLineModel, len(inv.Items))
	for i, line := range inv.Items {
		id := line.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		m.Items[i] = InvoiceLineModel{
			ID:          id,
			InvoiceID:   inv.ID,
			ItemCode:    line.ItemCode,
			ItemName:    line.ItemName,
			Description: line.Description,
			Qty:         line.Qty,
			Rate:        line.Rate,
			Amount:      line.Amount,
			CreatedAt:   inv.CreatedAt,
			UpdatedAt:   inv.UpdatedAt,
		}
	}
}

// SalesInvoiceModelFromDomain creates a new persistence model from a domain
// SalesInvoice entity.
func SalesInvoiceModelFromDomain(inv *erp.SalesInvoice) *SalesInvoiceModel {
	m := &SalesInvoiceModel{}
	m.FromDomain(inv)
	return m
}

// ---------------------------------------------------------------------------
// QuotationModel
// ---------------------------------------------------------------------------

// QuotationModel is the persistence model for the Quotation domain entity.
type QuotationModel struct {
	ID              uuid.UUID            `gorm:"type:uuid;primary_key"`
	Name            string               `gorm:"type:varchar(140);not null;uniqueIndex"`
	Customer        string               `gorm:"type:varchar(140);not null;index"`
	Company         string               `gorm:"type:varchar(140);index"`
	Currency        string               `gorm:"type:varchar(10)"`
	TransactionDate time.Time            `gorm:"not null"`
	ValidTill       *time.Time           `gorm:""`
	Items           []QuotationLineModel `gorm:"foreignKey:QuotationID;references:ID"`
	TotalTaxes      decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	GrandTotal      decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Status          string               `gorm:"type:varchar(30);not null;default:'Draft'"`
	Remarks         string               `gorm:"type:text"`
	NinjaID         string               `gorm:"type:varchar(50);index"`
	NinjaCompanyID  string               `gorm:"type:varchar(50)"`
	SyncStatus      string               `gorm:"type:varchar(30);not null;default:'Not Synced'"`
	CreatedAt       time.Time            `gorm:"not null"`
	UpdatedAt       time.Time            `gorm:"not null"`
}

// TableName returns the table name for GORM
func (QuotationModel) TableName() string {
	return "quotations"
}

// QuotationLineModel is the persistence model for a quotation line.
type QuotationLineModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	QuotationID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemCode    string          `gorm:"type:varchar(140);not null"`
	ItemName    string          `gorm:"type:varchar(200)"`
	Description string          `gorm:"type:text"`
	Qty         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:1"`
	Rate        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (QuotationLineModel) TableName() string {
	return "quotation_items"
}

// ToDomain converts the persistence model to a domain Quotation entity.
func (m *QuotationModel) ToDomain() *erp.Quotation {
	q := &erp.Quotation{
		ID:              m.ID,
		Name:            m.Name,
		Customer:        m.Customer,
		Company:         m.Company,
		Currency:        m.Currency,
		TransactionDate: m.TransactionDate,
		ValidTill:       m.ValidTill,
		Items:           make([]erp.InvoiceLine, len(m.Items)),
		TotalTaxes:      m.TotalTaxes,
		GrandTotal:      m.GrandTotal,
		Status:          m.Status,
		Remarks:         m.Remarks,
		NinjaID:         m.NinjaID,
		NinjaCompanyID:  m.NinjaCompanyID,
		SyncStatus:      m.SyncStatus,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for i, line := range m.Items {
		q.Items[i] = erp.InvoiceLine{
			ID:          line.ID,
			ItemCode:    line.ItemCode,
			ItemName:    line.ItemName,
			Description: line.Description,
			Qty:         line.Qty,
			Rate:        line.Rate,
			Amount:      line.Amount,
		}
	}
	return q
}

// FromDomain populates the persistence model from a domain Quotation entity.
func (m *QuotationModel) FromDomain(q *erp.Quotation) {
	m.ID = q.ID
	m.Name = q.Name
	m.Customer = q.Customer
	m.Company = q.Company
	m.Currency = q.Currency
	m.TransactionDate = q.TransactionDate
	m.ValidTill = q.ValidTill
	m.TotalTaxes = q.TotalTaxes
	m.GrandTotal = q.GrandTotal
	m.Status = q.Status
	m.Remarks = q.Remarks
	m.NinjaID = q.NinjaID
	m.NinjaCompanyID = q.NinjaCompanyID
	m.SyncStatus = q.SyncStatus
	m.CreatedAt = q.CreatedAt
	m.UpdatedAt = q.UpdatedAt

	m.Items = make([]QuotationLineModel, len(q.Items))
	for i, line := range q.Items {
		id := line.ID
		if id == uuid.Nil {
			id = uuid.New()
		}
		m.Items[i] = QuotationLineModel{
			ID:          id,
			QuotationID: q.ID,
			ItemCode:    line.ItemCode,
			ItemName:    line.ItemName,
			Description: line.Description,
			Qty:         line.Qty,
			Rate:        line.Rate,
			Amount:      line.Amount,
			CreatedAt:   q.CreatedAt,
			UpdatedAt:   q.UpdatedAt,
		}
	}
}

// QuotationModelFromDomain creates a new persistence model from a domain
// Quotation entity.
func QuotationModelFromDomain(q *erp.Quotation) *QuotationModel {
	m := &QuotationModel{}
	m.FromDomain(q)
	return m
}

// ---------------------------------------------------------------------------
// PaymentEntryModel
// ---------------------------------------------------------------------------

// PaymentEntryModel is the persistence model for the PaymentEntry domain entity.
type PaymentEntryModel struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key"`
	Name           string          `gorm:"type:varchar(140);not null;uniqueIndex"`
	Party          string          `gorm:"type:varchar(140);not null;index"`
	Company        string          `gorm:"type:varchar(140);index"`
	PostingDate    time.Time       `gorm:"not null"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Currency       string          `gorm:"type:varchar(10)"`
	ReferenceNo    string          `gorm:"type:varchar(140)"`
	AgainstInvoice string          `gorm:"type:varchar(140);index"`
	NinjaID        string          `gorm:"type:varchar(50);index"`
	NinjaCompanyID string          `gorm:"type:varchar(50)"`
	SyncStatus     string          `gorm:"type:varchar(30);not null;default:'Not Synced'"`
	CreatedAt      time.Time       `gorm:"not null"`
	UpdatedAt      time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (PaymentEntryModel) TableName() string {
	return "payment_entries"
}

// ToDomain converts the persistence model to a domain PaymentEntry entity.
func (m *PaymentEntryModel) ToDomain() *erp.PaymentEntry {
	return &erp.PaymentEntry{
		ID:             m.ID,
		Name:           m.Name,
		Party:          m.Party,
		Company:        m.Company,
		PostingDate:    m.PostingDate,
		PaidAmount:     m.PaidAmount,
		Currency:       m.Currency,
		ReferenceNo:    m.ReferenceNo,
		AgainstInvoice: m.AgainstInvoice,
		NinjaID:        m.NinjaID,
		NinjaCompanyID: m.NinjaCompanyID,
		SyncStatus:     m.SyncStatus,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain PaymentEntry entity.
func (m *PaymentEntryModel) FromDomain(p *erp.PaymentEntry) {
	m.ID = p.ID
	m.Name = p.Name
	m.Party = p.Party
	m.Company = p.Company
	m.PostingDate = p.PostingDate
	m.PaidAmount = p.PaidAmount
	m.Currency = p.Currency
	m.ReferenceNo = p.ReferenceNo
	m.AgainstInvoice = p.AgainstInvoice
	m.NinjaID = p.NinjaID
	m.NinjaCompanyID = p.NinjaCompanyID
	m.SyncStatus = p.SyncStatus
	m.CreatedAt = p.CreatedAt
	m.UpdatedAt = p.UpdatedAt
}

// PaymentEntryModelFromDomain creates a new persistence model from a domain
// PaymentEntry entity.
func PaymentEntryModelFromDomain(p *erp.PaymentEntry) *PaymentEntryModel {
	m := &PaymentEntryModel{}
	m.FromDomain(p)
	return m
}
