package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormCredentialRepository implements CredentialRepository using GORM
type GormCredentialRepository struct {
	db *gorm.DB
}

// NewGormCredentialRepository creates a new GormCredentialRepository
func NewGormCredentialRepository(db *gorm.DB) *GormCredentialRepository {
	return &GormCredentialRepository{db: db}
}

// FindByID finds a credential by its ID
func (r *GormCredentialRepository) FindByID(ctx context.Context, id uuid.UUID) (*syncdomain.Credential, error) {
	var model models.CredentialModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, syncdomain.ErrCredentialNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByNinjaCompanyID finds the credential for a remote company
func (r *GormCredentialRepository) FindByNinjaCompanyID(ctx context.Context, ninjaCompanyID string) (*syncdomain.Credential, error) {
	var model models.CredentialModel
	if err := r.db.WithContext(ctx).
		Where("ninja_company_id = ?", ninjaCompanyID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, syncdomain.ErrCredentialNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns every credential record
func (r *GormCredentialRepository) FindAll(ctx context.Context) ([]syncdomain.Credential, error) {
	var credentialModels []models.CredentialModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&credentialModels).Error; err != nil {
		return nil, err
	}

	credentials := make([]syncdomain.Credential, len(credentialModels))
	for i, model := range credentialModels {
		credentials[i] = *model.ToDomain()
	}
	return credentials, nil
}

// Save creates or updates a credential
func (r *GormCredentialRepository) Save(ctx context.Context, credential *syncdomain.Credential) error {
	model := models.CredentialModelFromDomain(credential)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a credential
func (r *GormCredentialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CredentialModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return syncdomain.ErrCredentialNotFound
	}
	return nil
}

// Ensure GormCredentialRepository implements CredentialRepository
var _ syncdomain.CredentialRepository = (*GormCredentialRepository)(nil)
