package persistence

import (
	"context"
	"errors"

	"github.com/novizna/ninjasync/internal/domain/erp"
	"github.com/novizna/ninjasync/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPaymentStore implements PaymentStore using GORM
type GormPaymentStore struct {
	db *gorm.DB
}

// NewGormPaymentStore creates a new GormPaymentStore
func NewGormPaymentStore(db *gorm.DB) *GormPaymentStore {
	return &GormPaymentStore{db: db}
}

// FindByName finds a payment by document name
func (s *GormPaymentStore) FindByName(ctx context.Context, name string) (*erp.PaymentEntry, error) {
	var model models.PaymentEntryModel
	if err := s.db.WithContext(ctx).
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erp.ErrPaymentNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNinjaID finds the payment linked to a remote payment
func (s *GormPaymentStore) FindByNinjaID(ctx context.Context, ninjaID string) (*erp.PaymentEntry, error) {
	var model models.PaymentEntryModel
	if err := s.db.WithContext(ctx).
		Where("ninja_id = ?", ninjaID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erp.ErrPaymentNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByNinjaID reports whether a remote payment is already mirrored
func (s *GormPaymentStore) ExistsByNinjaID(ctx context.Context, ninjaID string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.PaymentEntryModel{}).
		Where("ninja_id = ?", ninjaID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a payment
func (s *GormPaymentStore) Save(ctx context.Context, payment *erp.PaymentEntry) error {
	model := models.PaymentEntryModelFromDomain(payment)
	return s.db.WithContext(ctx).Save(model).Error
}

// Ensure GormPaymentStore implements PaymentStore
var _ erp.PaymentStore = (*GormPaymentStore)(nil)
