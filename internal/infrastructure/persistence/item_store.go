package persistence

import (
	"context"
	"errors"

	"github.com/novizna/ninjasync/internal/domain/erp"
	"github.com/novizna/ninjasync/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormItemStore implements ItemStore using GORM
type GormItemStore struct {
	db *gorm.DB
}

// NewGormItemStore creates a new GormItemStore
func NewGormItemStore(db *gorm.DB) *GormItemStore {
	return &GormItemStore{db: db}
}

// FindByCode finds an item by item code
func (s *GormItemStore) FindByCode(ctx context.Context, itemCode string) (*erp.Item, error) {
	var model models.ItemModel
	if err := s.db.WithContext(ctx).
		Where("item_code = ?", itemCode).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erp.ErrItemNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNinjaID finds the item linked to a remote product
func (s *GormItemStore) FindByNinjaID(ctx context.Context, ninjaID string) (*erp.Item, error) {
	var model models.ItemModel
	if err := s.db.WithContext(ctx).
		Where("ninja_id = ?", ninjaID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, erp.ErrItemNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByCode reports whether an item code is taken
func (s *GormItemStore) ExistsByCode(ctx context.Context, itemCode string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&models.ItemModel{}).
		Where("item_code = ?", itemCode).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save creates or updates an item
func (s *GormItemStore) Save(ctx context.Context, item *erp.Item) error {
	model := models.ItemModelFromDomain(item)
	return s.db.WithContext(ctx).Save(model).Error
}

// Ensure GormItemStore implements ItemStore
var _ erp.ItemStore = (*GormItemStore)(nil)
