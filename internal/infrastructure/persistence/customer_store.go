package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/novizna/ninjasync/internal/domain/erp"
	"github.com/novizna/ninjasync/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// ---------------------------------------------------------------------------
// GormCustomerStore
// ---------------------------------------------------------------------------

// GormCustomerStore implements CustomerStore using GORM
type GormCustomerStore struct {
	db *gorm.DB
}

// NewGormCustomerStore creates a new GormCustomerStore
func NewGormCustomerStore(db *gorm.DB) *GormCustomerStore {
	return &GormCustomerStore{db: db}
}

// FindByName finds a customer by document name
func (s *GormCustomerStore) FindByName(ctx context.Context, name string) (*erp.Customer, error) {
	var model models.CustomerModel
	if err := s.db.WithContext(ctx).
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erp.ErrCustomerNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNinjaID finds the customer linked to a remote client
func (s *GormCustomerStore) FindByNinjaID(ctx context.Context, ninjaID string) (*erp.Customer, error) {
	var model models.CustomerModel
	if err := s.db.WithContext(ctx).
		Where("ninja_id = ?", ninjaID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erp.ErrCustomerNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCompany lists customers of an ERP company
func (s *GormCustomerStore) FindByCompany(ctx context.Context, company string) ([]erp.Customer, error) {
	var customerModels []models.CustomerModel
	if err := s.db.WithContext(ctx).
		Where("company = ?", company).
		Order("name ASC").
		Find(&customerModels).Error; err != nil {
		return nil, err
	}

	customers := make([]erp.Customer, len(customerModels))
	for i, model := range customerModels {
		customers[i] = *model.ToDomain()
	}
	return customers, nil
}

// Save creates or updates a customer
func (s *GormCustomerStore) Save(ctx context.Context, customer *erp.Customer) error {
	model := models.CustomerModelFromDomain(customer)
	return s.db.WithContext(ctx).Save(model).Error
}

// Ensure GormCustomerStore implements CustomerStore
var _ erp.CustomerStore = (*GormCustomerStore)(nil)

// ---------------------------------------------------------------------------
// GormAddressStore
// ---------------------------------------------------------------------------

// GormAddressStore implements AddressStore using GORM
type GormAddressStore struct {
	db *gorm.DB
}

// NewGormAddressStore creates a new GormAddressStore
func NewGormAddressStore(db *gorm.DB) *GormAddressStore {
	return &GormAddressStore{db: db}
}

// FindByCustomer lists a customer's addresses
func (s *GormAddressStore) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]erp.Address, error) {
	var addressModels []models.AddressModel
	if err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("address_type ASC").
		Find(&addressModels).Error; err != nil {
		return nil, err
	}

	addresses := make([]erp.Address, len(addressModels))
	for i, model := range addressModels {
		addresses[i] = *model.ToDomain()
	}
	return addresses, nil
}

// Save creates or updates an address
func (s *GormAddressStore) Save(ctx context.Context, address *erp.Address) error {
	model := models.AddressModelFromDomain(address)
	return s.db.WithContext(ctx).Save(model).Error
}

// Ensure GormAddressStore implements AddressStore
var _ erp.AddressStore = (*GormAddressStore)(nil)

// ---------------------------------------------------------------------------
// GormContactStore
// ---------------------------------------------------------------------------

// GormContactStore implements ContactStore using GORM
type GormContactStore struct {
	db *gorm.DB
}

// NewGormContactStore creates a new GormContactStore
func NewGormContactStore(db *gorm.DB) *GormContactStore {
	return &GormContactStore{db: db}
}

// FindByCustomer lists a customer's contacts, primary first
func (s *GormContactStore) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]erp.Contact, error) {
	var contactModels []models.ContactModel
	if err := s.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("is_primary DESC, created_at ASC").
		Find(&contactModels).Error; err != nil {
		return nil, err
	}

	contacts := make([]erp.Contact, len(contactModels))
	for i, model := range contactModels {
		contacts[i] = *model.ToDomain()
	}
	return contacts, nil
}

// FindByNinjaContactID finds a contact by remote contact ID
func (s *GormContactStore) FindByNinjaContactID(ctx context.Context, ninjaContactID string) (*erp.Contact, error) {
	var model models.ContactModel
	if err := s.db.WithContext(ctx).
		Where("ninja_contact_id = ?", ninjaContactID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erp.ErrContactNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates a contact
func (s *GormContactStore) Save(ctx context.Context, contact *erp.Contact) error {
	model := models.ContactModelFromDomain(contact)
	return s.db.WithContext(ctx).Save(model).Error
}

// Ensure GormContactStore implements ContactStore
var _ erp.ContactStore = (*GormContactStore)(nil)
