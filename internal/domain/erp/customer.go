package erp

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ---------------------------------------------------------------------------
// CustomerType
// ---------------------------------------------------------------------------

// CustomerType classifies a customer as a person or an organization.
type CustomerType string

const (
	CustomerTypeIndividual CustomerType = "Individual"
	CustomerTypeCompany    CustomerType = "Company"
)

// IsValid returns true if the customer type is valid
func (t CustomerType) IsValid() bool {
	return t == CustomerTypeIndividual || t == CustomerTypeCompany
}

// ---------------------------------------------------------------------------
// Customer Entity
// ---------------------------------------------------------------------------

// Customer is the local customer master record.
type Customer struct {
	// ID is the unique identifier
	ID uuid.UUID
	// Name is the document name (business key)
	Name string
	// CustomerName is the display name
	CustomerName string
	// CustomerType classifies the customer
	CustomerType CustomerType
	// Company is the ERP company the customer belongs to
	Company string
	// Currency is the default billing currency code
	Currency string
	// TaxID is the VAT/tax number
	TaxID string
	// Website is the customer website
	Website string
	// Phone is the primary phone number
	Phone string
	// Email is the primary email address
	Email string
	// NinjaID links to the Invoice Ninja client, empty when unsynced
	NinjaID string
	// NinjaCompanyID is the remote company the link lives in
	NinjaCompanyID string
	// SyncStatus is the per-document sync state
	SyncStatus string
	// Disabled excludes the customer from sync
	Disabled bool
	// CreatedAt is when the record was created
	CreatedAt time.Time
	// UpdatedAt is when the record was last updated
	UpdatedAt time.Time
}

// ---------------------------------------------------------------------------
// Address Entity
// ---------------------------------------------------------------------------

// AddressType distinguishes billing from shipping addresses.
type AddressType string

const (
	AddressTypeBilling  AddressType = "Billing"
	AddressTypeShipping AddressType = "Shipping"
)

// Address is a postal address linked to a customer.
type Address struct {
	ID           uuid.UUID
	CustomerID   uuid.UUID
	AddressType  AddressType
	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	PostalCode   string
	Country      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ---------------------------------------------------------------------------
// Contact Entity
// ---------------------------------------------------------------------------

// Contact is a person linked to a customer. NinjaContactID holds the remote
// contact identifier once matched or created.
type Contact struct {
	ID             uuid.UUID
	CustomerID     uuid.UUID
	FirstName      string
	LastName       string
	Email          string
	Phone          string
	IsPrimary      bool
	NinjaContactID string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ---------------------------------------------------------------------------
// CustomerStore Interface
// ---------------------------------------------------------------------------

// CustomerStore defines customer persistence.
type CustomerStore interface {
	// FindByName finds a customer by document name
	FindByName(ctx context.Context, name string) (*Customer, error)

	// FindByNinjaID finds the customer linked to a remote client
	FindByNinjaID(ctx context.Context, ninjaID string) (*Customer, error)

	// FindByCompany lists customers of an ERP company
	FindByCompany(ctx context.Context, company string) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error
}

// AddressStore defines address persistence.
type AddressStore interface {
	// FindByCustomer lists a customer's addresses
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Address, error)

	// Save creates or updates an address
	Save(ctx context.Context, address *Address) error
}

// ContactStore defines contact persistence.
type ContactStore interface {
	// FindByCustomer lists a customer's contacts
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]Contact, error)

	// FindByNinjaContactID finds a contact by remote contact ID
	FindByNinjaContactID(ctx context.Context, ninjaContactID string) (*Contact, error)

	// Save creates or updates a contact
	Save(ctx context.Context, contact *Contact) error
}
