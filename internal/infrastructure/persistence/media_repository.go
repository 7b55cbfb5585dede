package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobsight/backend/internal/domain/media"
	"github.com/jobsight/backend/internal/domain/shared"
)

// GormDocumentRepository implements DocumentRepository using GORM
type GormDocumentRepository struct {
	*ScopedRepository[media.Document]
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{
		ScopedRepository: NewScopedRepository[media.Document](db, DocumentSortFields, "created_at DESC"),
	}
}

// Search matches file name case-insensitively
func (r *GormDocumentRepository) Search(ctx context.Context, tenantID uuid.UUID, term string) ([]media.Document, error) {
	return r.FindAllForTenant(ctx, tenantID, shared.SearchFilter(term, "file_name"))
}

// FindByProject lists documents attached to one project
func (r *GormDocumentRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]media.Document, error) {
	var docs []media.Document
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND project_id = ?", tenantID, projectID).
		Order("created_at DESC").
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

var _ media.DocumentRepository = (*GormDocumentRepository)(nil)

// GormMediaItemRepository implements MediaItemRepository using GORM
type GormMediaItemRepository struct {
	*ScopedRepository[media.MediaItem]
}

// NewGormMediaItemRepository creates a new GormMediaItemRepository
func NewGormMediaItemRepository(db *gorm.DB) *GormMediaItemRepository {
	return &GormMediaItemRepository{
		ScopedRepository: NewScopedRepository[media.MediaItem](db, MediaSortFields, "captured_at DESC"),
	}
}

// FindByProject lists media attached to one project
func (r *GormMediaItemRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]media.MediaItem, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]any)
	}
	filter.Filters["project_id"] = projectID
	if filter.OrderBy == "" {
		filter.OrderBy = "captured_at"
		filter.OrderDir = "desc"
	}
	return r.FindAllForTenant(ctx, tenantID, filter)
}

// FindByDailyLog lists media attached to one daily log
func (r *GormMediaItemRepository) FindByDailyLog(ctx context.Context, tenantID, dailyLogID uuid.UUID) ([]media.MediaItem, error) {
	var items []media.MediaItem
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND daily_log_id = ?", tenantID, dailyLogID).
		Order("captured_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

var _ media.MediaItemRepository = (*GormMediaItemRepository)(nil)
