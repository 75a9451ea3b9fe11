package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/novizna/ninjasync/internal/domain/erp"
	"github.com/novizna/ninjasync/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInvoiceStore implements InvoiceStore using GORM
type GormInvoiceStore struct {
	db *gorm.DB
}

// NewGormInvoiceStore creates a new GormInvoiceStore
func NewGormInvoiceStore(db *gorm.DB) *GormInvoiceStore {
	return &GormInvoiceStore{db: db}
}

// FindByName finds an invoice by document name
func (s *GormInvoiceStore) FindByName(ctx context.Context, name string) (*erp.SalesInvoice, error) {
	var model models.SalesInvoiceModel
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erp.ErrInvoiceNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNinjaID finds the invoice linked to a remote invoice
func (s *GormInvoiceStore) FindByNinjaID(ctx context.Context, ninjaID string) (*erp.SalesInvoice, error) {
	var model models.SalesInvoiceModel
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Where("ninja_id = ?", ninjaID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erp.ErrInvoiceNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByNinjaID reports whether a remote invoice is already mirrored
func (s *GormInvoiceStore) ExistsByNinjaID(ctx context.Context, ninjaID string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.SalesInvoiceModel{}).
		Where("ninja_id = ?", ninjaID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an invoice with its lines. Lines removed from the
// document are deleted, the rest are upserted.
func (s *GormInvoiceStore) Save(ctx context.Context, invoice *erp.SalesInvoice) error {
	model := models.SalesInvoiceModelFromDomain(invoice)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}

		currentLineIDs := make([]uuid.UUID, len(model.Items))
		for i, line := range model.Items {
			currentLineIDs[i] = line.ID
		}

		if len(currentLineIDs) > 0 {
			if err := tx.Where("invoice_id = ? AND id NOT IN ?", model.ID, currentLineIDs).
				Delete(&models.InvoiceLineModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("invoice_id = ?", model.ID).
				Delete(&models.InvoiceLineModel{}).Error; err != nil {
				return err
			}
		}

		for i := range model.Items {
			if err := tx.Save(&model.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// Ensure GormInvoiceStore implements InvoiceStore
var _ erp.InvoiceStore = (*GormInvoiceStore)(nil)
