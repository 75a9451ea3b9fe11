package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCompanyMappingRepository implements CompanyMappingRepository using GORM
type GormCompanyMappingRepository struct {
	db *gorm.DB
}

// NewGormCompanyMappingRepository creates a new GormCompanyMappingRepository
func NewGormCompanyMappingRepository(db *gorm.DB) *GormCompanyMappingRepository {
	return &GormCompanyMappingRepository{db: db}
}

// ---------------------------------------------------------------------------
// CompanyMappingReader implementation
// ---------------------------------------------------------------------------

// FindByID finds a mapping by its ID
func (r *GormCompanyMappingRepository) FindByID(ctx context.Context, id uuid.UUID) (*syncdomain.CompanyMapping, error) {
	var model models.CompanyMappingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, syncdomain.ErrMappingNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every mapping in creation order. Resolution walks this
// order, so ties between candidate mappings break deterministically.
func (r *GormCompanyMappingRepository) FindAll(ctx context.Context) ([]syncdomain.CompanyMapping, error) {
	var mappingModels []models.CompanyMappingModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&mappingModels).Error; err != nil {
		return nil, err
	}

	mappings := make([]syncdomain.CompanyMapping, len(mappingModels))
	for i, model := range mappingModels {
		mappings[i] = *model.ToDomain()
	}
	return mappings, nil
}

// FindEnabled returns the enabled mappings in creation order
func (r *GormCompanyMappingRepository) FindEnabled(ctx context.Context) ([]syncdomain.CompanyMapping, error) {
	var mappingModels []models.CompanyMappingModel
	if err := r.db.WithContext(ctx).
		Where("enabled = ?", true).
		Order("created_at ASC, id ASC").
		Find(&mappingModels).Error; err != nil {
		return nil, err
	}

	mappings := make([]syncdomain.CompanyMapping, len(mappingModels))
	for i, model := range mappingModels {
		mappings[i] = *model.ToDomain()
	}
	return mappings, nil
}

// ---------------------------------------------------------------------------
// CompanyMappingWriter implementation
// ---------------------------------------------------------------------------

// Save creates or updates a mapping
func (r *GormCompanyMappingRepository) Save(ctx context.Context, mapping *syncdomain.CompanyMapping) error {
	model := models.CompanyMappingModelFromDomain(mapping)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a mapping
func (r *GormCompanyMappingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CompanyMappingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return syncdomain.ErrMappingNotFound
	}
	return nil
}

// Ensure GormCompanyMappingRepository implements CompanyMappingRepository
var _ syncdomain.CompanyMappingRepository = (*GormCompanyMappingRepository)(nil)
