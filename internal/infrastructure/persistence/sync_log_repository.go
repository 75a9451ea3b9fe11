package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	syncdomain "github.com/novizna/ninjasync/internal/domain/sync"
	"github.com/novizna/ninjasync/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// defaultLogListLimit caps ListRecent when the filter does not set one
const defaultLogListLimit = 50

// GormSyncLogRepository implements LogRepository using GORM
type GormSyncLogRepository struct {
	db *gorm.DB
}

// NewGormSyncLogRepository creates a new GormSyncLogRepository
func NewGormSyncLogRepository(db *gorm.DB) *GormSyncLogRepository {
	return &GormSyncLogRepository{db: db}
}

// Create opens a new log entry
func (r *GormSyncLogRepository) Create(ctx context.Context, entry *syncdomain.LogEntry) error {
	model := models.SyncLogModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// Update records the final outcome of an entry
func (r *GormSyncLogRepository) Update(ctx context.Context, entry *syncdomain.LogEntry) error {
	model := models.SyncLogModelFromDomain(entry)
	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return syncdomain.ErrLogEntryNotFound
	}
	return nil
}

// FindByID finds an entry by its ID
func (r *GormSyncLogRepository) FindByID(ctx context.Context, id uuid.UUID) (*syncdomain.LogEntry, error) {
	var model models.SyncLogModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, syncdomain.ErrLogEntryNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ListRecent returns the most recent entries matching the filter, newest first
func (r *GormSyncLogRepository) ListRecent(ctx context.Context, filter syncdomain.LogFilter) ([]syncdomain.LogEntry, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = defaultLogListLimit
	}

	query := r.db.WithContext(ctx).Model(&models.SyncLogModel{})
	if filter.EntityType != nil && filter.EntityType.IsValid() {
		query = query.Where("entity_type = ?", filter.EntityType.String())
	}
	if filter.Direction != nil && filter.Direction.IsValid() {
		query = query.Where("direction = ?", filter.Direction.String())
	}
	if filter.Status != nil && filter.Status.IsValid() {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.ERPCompany != "" {
		query = query.Where("erp_company = ?", filter.ERPCompany)
	}

	var logModels []models.SyncLogModel
	if err := query.
		Order("created_at DESC").
		Limit(limit).
		Find(&logModels).Error; err != nil {
		return nil, err
	}

	entries := make([]syncdomain.LogEntry, len(logModels))
	for i, model := range logModels {
		entries[i] = *model.ToDomain()
	}
	return entries, nil
}

// Stats aggregates closed outcomes since the given time
func (r *GormSyncLogRepository) Stats(ctx context.Context, since time.Time) (*syncdomain.LogStats, error) {
	stats := &syncdomain.LogStats{
		Since:        since,
		ByEntityType: make(map[syncdomain.EntityType]int64),
	}

	type statusCount struct {
		Status string
		Count  int64
	}
	var byStatus []statusCount
	if err := r.db.WithContext(ctx).
		Model(&models.SyncLogModel{}).
		Select("status, COUNT(*) AS count").
		Where("created_at >= ? AND status <> ?", since, syncdomain.LogStatusInProgress.String()).
		Group("status").
		Scan(&byStatus).Error; err != nil {
		return nil, err
	}

	for _, row := range byStatus {
		stats.Total += row.Count
		switch syncdomain.LogStatus(row.Status) {
		case syncdomain.LogStatusSuccess:
			stats.SuccessCount = row.Count
		case syncdomain.LogStatusFailed:
			stats.FailedCount = row.Count
		case syncdomain.LogStatusSkipped:
			stats.SkippedCount = row.Count
		}
	}

	type entityCount struct {
		EntityType string
		Count      int64
	}
	var byEntity []entityCount
	if err := r.db.WithContext(ctx).
		Model(&models.SyncLogModel{}).
		Select("entity_type, COUNT(*) AS count").
		Where("created_at >= ? AND status <> ?", since, syncdomain.LogStatusInProgress.String()).
		Group("entity_type").
		Scan(&byEntity).Error; err != nil {
		return nil, err
	}

	for _, row := range byEntity {
		stats.ByEntityType[syncdomain.EntityType(row.EntityType)] = row.Count
	}

	return stats, nil
}

// PruneOlderThan deletes entries created before the cutoff and returns the
// number deleted
func (r *GormSyncLogRepository) PruneOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Delete(&models.SyncLogModel{}, "created_at < ?", cutoff)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Ensure GormSyncLogRepository implements LogRepository
var _ syncdomain.LogRepository = (*GormSyncLogRepository)(nil)
