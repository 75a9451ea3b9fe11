package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/novizna/ninjasync/internal/domain/erp"
	"github.com/novizna/ninjasync/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormQuotationStore implements QuotationStore using GORM
type GormQuotationStore struct {
	db *gorm.DB
}

// NewGormQuotationStore creates a new GormQuotationStore
func NewGormQuotationStore(db *gorm.DB) *GormQuotationStore {
	return &GormQuotationStore{db: db}
}

// FindByName finds a quotation by document name
func (s *GormQuotationStore) FindByName(ctx context.Context, name string) (*erp.Quotation, error) {
	var model models.QuotationModel
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Where("name = ?", name).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erp.ErrQuotationNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNinjaID finds the quotation linked to a remote quote
func (s *GormQuotationStore) FindByNinjaID(ctx context.Context, ninjaID string) (*erp.Quotation, error) {
	var model models.QuotationModel
	if err := s.db.WithContext(ctx).
		Preload("Items").
		Where("ninja_id = ?", ninjaID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erp.ErrQuotationNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByNinjaID reports whether a remote quote is already mirrored
func (s *GormQuotationStore) ExistsByNinjaID(ctx context.Context, ninjaID string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.QuotationModel{}).
		Where("ninja_id = ?", ninjaID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates a quotation with its lines
func (s *GormQuotationStore) Save(ctx context.Context, quotation *erp.Quotation) error {
	model := models.QuotationModelFromDomain(quotation)
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(model).Error; err != nil {
			return err
		}

		currentLineIDs := make([]uuid.UUID, len(model.Items))
		for i, line := range model.Items {
			currentLineIDs[i] = line.ID
		}

		if len(currentLineIDs) > 0 {
			if err := tx.Where("quotation_id = ? AND id NOT IN ?", model.ID, currentLineIDs).
				Delete(&models.QuotationLineModel{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("quotation_id = ?", model.ID).
				Delete(&models.QuotationLineModel{}).Error; err != nil {
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

// Ensure GormQuotationStore implements QuotationStore
var _ erp.QuotationStore = (*GormQuotationStore)(nil)
