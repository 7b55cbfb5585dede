package media

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/directory"
	"github.com/jobsight/backend/internal/domain/fieldlog"
	"github.com/jobsight/backend/internal/domain/media"
	"github.com/jobsight/backend/internal/domain/project"
	"github.com/jobsight/backend/internal/domain/shared"
)

// DocumentService handles document metadata operations. The binary payload
// is uploaded out of band; only the storage key is tracked.
type DocumentService struct {
	documentRepo media.DocumentRepository
	projectRepo  project.ProjectRepository
	clientRepo   directory.ClientRepository
}

// NewDocumentService creates a new DocumentService
func NewDocumentService(
	documentRepo media.DocumentRepository,
	projectRepo project.ProjectRepository,
	clientRepo directory.ClientRepository,
) *DocumentService {
	return &DocumentService{
		documentRepo: documentRepo,
		projectRepo:  projectRepo,
		clientRepo:   clientRepo,
	}
}

// Create registers an uploaded document. Attached projects and clients must
// belong to the business; a foreign ID reads as not found.
func (s *DocumentService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDocumentRequest) (*DocumentResponse, error) {
	d, err := media.NewDocument(tenantID, req.Kind, req.FileName, req.StorageKey, req.ContentType, req.SizeBytes)
	if err != nil {
		return nil, err
	}

	if req.ProjectID != nil {
		if _, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, *req.ProjectID); err != nil {
			return nil, err
		}
		if err := d.AttachToProject(*req.ProjectID); err != nil {
			return nil, err
		}
	}
	if req.ClientID != nil {
		if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, *req.ClientID); err != nil {
			return nil, err
		}
		d.ClientID = req.ClientID
	}

	if err := s.documentRepo.Create(ctx, tenantID, d); err != nil {
		return nil, err
	}

	response := ToDocumentResponse(d)
	return &response, nil
}

// GetByID retrieves a document by ID
func (s *DocumentService) GetByID(ctx context.Context, tenantID, documentID uuid.UUID) (*DocumentResponse, error) {
	d, err := s.documentRepo.FindByIDForTenant(ctx, tenantID, documentID)
	if err != nil {
		return nil, err
	}

	response := ToDocumentResponse(d)
	return &response, nil
}

// List retrieves documents with pagination and filters
func (s *DocumentService) List(ctx context.Context, tenantID uuid.UUID, filter DocumentListFilter) ([]DocumentResponse, int64, error) {
	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Filters:  make(map[string]any),
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.OrderBy == "" {
		f.OrderBy = "created_at"
		f.OrderDir = "desc"
	}
	if filter.Kind != "" {
		f.Filters["kind"] = filter.Kind
	}
	if filter.ProjectID != "" {
		if projectID, err := uuid.Parse(filter.ProjectID); err == nil {
			f.Filters["project_id"] = projectID
		}
	}
	if filter.Search != "" {
		f.Or = shared.SearchFilter(filter.Search, "file_name").Or
	}

	docs, err := s.documentRepo.FindAllForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.documentRepo.CountForTenant(ctx, tenantID, f)
	if err != nil {
		return nil, 0, err
	}

	return ToDocumentResponses(docs), total, nil
}

// ListByProject retrieves documents attached to a project
func (s *DocumentService) ListByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]DocumentResponse, error) {
	if _, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID); err != nil {
		return nil, err
	}

	docs, err := s.documentRepo.FindByProject(ctx, tenantID, projectID)
	if err != nil {
		return nil, err
	}

	return ToDocumentResponses(docs), nil
}

// Delete removes a document record. The stored object is reaped separately.
func (s *DocumentService) Delete(ctx context.Context, tenantID, documentID uuid.UUID) error {
	return s.documentRepo.DeleteForTenant(ctx, tenantID, documentID)
}

// MediaItemService handles photo and video metadata operations
type MediaItemService struct {
	mediaRepo   media.MediaItemRepository
	projectRepo project.ProjectRepository
	logRepo     fieldlog.DailyLogRepository
}

// NewMediaItemService creates a new MediaItemService
func NewMediaItemService(
	mediaRepo media.MediaItemRepository,
	projectRepo project.ProjectRepository,
	logRepo fieldlog.DailyLogRepository,
) *MediaItemService {
	return &MediaItemService{
		mediaRepo:   mediaRepo,
		projectRepo: projectRepo,
		logRepo:     logRepo,
	}
}

// Create registers an uploaded photo or video. When a daily log is given its
// project is inherited, so log media always lists under the project too.
func (s *MediaItemService) Create(ctx context.Context, tenantID uuid.UUID, req CreateMediaItemRequest) (*MediaItemResponse, error) {
	m, err := media.NewMediaItem(tenantID, req.FileName, req.StorageKey, req.ContentType, req.SizeBytes)
	if err != nil {
		return nil, err
	}
	m.Caption = req.Caption
	m.CapturedAt = req.CapturedAt

	if req.DailyLogID != nil {
		d, err := s.logRepo.FindByIDForTenant(ctx, tenantID, *req.DailyLogID)
		if err != nil {
			return nil, err
		}
		m.DailyLogID = req.DailyLogID
		projectID := d.ProjectID
		m.ProjectID = &projectID
	} else if req.ProjectID != nil {
		if _, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, *req.ProjectID); err != nil {
			return nil, err
		}
		m.ProjectID = req.ProjectID
	}

	if err := s.mediaRepo.Create(ctx, tenantID, m); err != nil {
		return nil, err
	}

	response := ToMediaItemResponse(m)
	return &response, nil
}

// GetByID retrieves a media item by ID
func (s *MediaItemService) GetByID(ctx context.Context, tenantID, mediaID uuid.UUID) (*MediaItemResponse, error) {
	m, err := s.mediaRepo.FindByIDForTenant(ctx, tenantID, mediaID)
	if err != nil {
		return nil, err
	}

	response := ToMediaItemResponse(m)
	return &response, nil
}

// ListByProject retrieves media attached to a project, newest first
func (s *MediaItemService) ListByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter MediaItemListFilter) ([]MediaItemResponse, error) {
	if _, err := s.projectRepo.FindByIDForTenant(ctx, tenantID, projectID); err != nil {
		return nil, err
	}

	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if f.OrderBy == "" {
		f.OrderBy = "created_at"
		f.OrderDir = "desc"
	}

	items, err := s.mediaRepo.FindByProject(ctx, tenantID, projectID, f)
	if err != nil {
		return nil, err
	}

	return ToMediaItemResponses(items), nil
}

// ListByDailyLog retrieves media attached to a daily log
func (s *MediaItemService) ListByDailyLog(ctx context.Context, tenantID, logID uuid.UUID) ([]MediaItemResponse, error) {
	if _, err := s.logRepo.FindByIDForTenant(ctx, tenantID, logID); err != nil {
		return nil, err
	}

	items, err := s.mediaRepo.FindByDailyLog(ctx, tenantID, logID)
	if err != nil {
		return nil, err
	}

	return ToMediaItemResponses(items), nil
}

// UpdateCaption edits the caption on a media item
func (s *MediaItemService) UpdateCaption(ctx context.Context, tenantID, mediaID uuid.UUID, req UpdateMediaItemRequest) (*MediaItemResponse, error) {
	m, err := s.mediaRepo.FindByIDForTenant(ctx, tenantID, mediaID)
	if err != nil {
		return nil, err
	}

	if req.Caption != nil {
		m.Caption = *req.Caption
		m.UpdatedAt = time.Now()
	}

	if err := s.mediaRepo.Update(ctx, tenantID, m); err != nil {
		return nil, err
	}

	response := ToMediaItemResponse(m)
	return &response, nil
}

// Delete removes a media item record
func (s *MediaItemService) Delete(ctx context.Context, tenantID, mediaID uuid.UUID) error {
	return s.mediaRepo.DeleteForTenant(ctx, tenantID, mediaID)
}
