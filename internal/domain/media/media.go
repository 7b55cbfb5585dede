package media

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jobsight/backend/internal/domain/shared"
)

// DocumentKind categorizes uploaded documents
type DocumentKind string

const (
	DocumentKindContract DocumentKind = "contract"
	DocumentKindPermit   DocumentKind = "permit"
	DocumentKindPlan     DocumentKind = "plan"
	DocumentKindOther    DocumentKind = "other"
)

// Document is file metadata for a contract, permit or plan. The binary
// payload lives in external object storage; only the key is tracked here.
type Document struct {
	shared.TenantAggregateRoot
	ProjectID   *uuid.UUID   `gorm:"type:uuid;index"`
	ClientID    *uuid.UUID   `gorm:"type:uuid;index"`
	Kind        DocumentKind `gorm:"type:varchar(20);not null;default:'other'"`
	FileName    string       `gorm:"type:varchar(300);not null"`
	StorageKey  string       `gorm:"type:varchar(500);not null"`
	ContentType string       `gorm:"type:varchar(100)"`
	SizeBytes   int64        `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Document) TableName() string {
	return "documents"
}

// NewDocument registers an uploaded document
func NewDocument(tenantID uuid.UUID, kind DocumentKind, fileName, storageKey, contentType string, sizeBytes int64) (*Document, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILENAME", "File name cannot be empty")
	}
	if storageKey == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	if sizeBytes < 0 {
		return nil, shared.NewDomainError("INVALID_SIZE", "Size cannot be negative")
	}
	if kind == "" {
		kind = DocumentKindOther
	}
	return &Document{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Kind:                kind,
		FileName:            fileName,
		StorageKey:          storageKey,
		ContentType:         contentType,
		SizeBytes:           sizeBytes,
	}, nil
}

// AttachToProject links the document to a project
func (d *Document) AttachToProject(projectID uuid.UUID) error {
	if projectID == uuid.Nil {
		return shared.NewDomainError("INVALID_PROJECT", "Project ID is required")
	}
	d.ProjectID = &projectID
	d.UpdatedAt = time.Now()
	return nil
}

// MediaItem is a photo or video captured in the field, typically attached
// to a daily log or a project.
type MediaItem struct {
	shared.TenantAggregateRoot
	ProjectID   *uuid.UUID `gorm:"type:uuid;index"`
	DailyLogID  *uuid.UUID `gorm:"type:uuid;index"`
	FileName    string     `gorm:"type:varchar(300);not null"`
	StorageKey  string     `gorm:"type:varchar(500);not null"`
	ContentType string     `gorm:"type:varchar(100)"`
	SizeBytes   int64      `gorm:"not null;default:0"`
	Caption     string     `gorm:"type:varchar(500)"`
	CapturedAt  *time.Time
}

// TableName returns the table name for GORM
func (MediaItem) TableName() string {
	return "media_items"
}

// NewMediaItem registers an uploaded media file
func NewMediaItem(tenantID uuid.UUID, fileName, storageKey, contentType string, sizeBytes int64) (*MediaItem, error) {
	fileName = strings.TrimSpace(fileName)
	if fileName == "" {
		return nil, shared.NewDomainError("INVALID_FILENAME", "File name cannot be empty")
	}
	if storageKey == "" {
		return nil, shared.NewDomainError("INVALID_STORAGE_KEY", "Storage key cannot be empty")
	}
	return &MediaItem{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		FileName:            fileName,
		StorageKey:          storageKey,
		ContentType:         contentType,
		SizeBytes:           sizeBytes,
	}, nil
}

// DocumentRepository defines the interface for document persistence
type DocumentRepository interface {
	shared.TenantRepository[Document]

	// Search matches file name case-insensitively
	Search(ctx context.Context, tenantID uuid.UUID, term string) ([]Document, error)

	// FindByProject lists documents attached to one project
	FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]Document, error)
}

// MediaItemRepository defines the interface for media persistence
type MediaItemRepository interface {
	shared.TenantRepository[MediaItem]

	// FindByProject lists media attached to one project
	FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]MediaItem, error)

	// FindByDailyLog lists media attached to one daily log
	FindByDailyLog(ctx context.Context, tenantID, dailyLogID uuid.UUID) ([]MediaItem, error)
}
