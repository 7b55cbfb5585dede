package media

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jobsight/backend/internal/domain/directory"
	"github.com/jobsight/backend/internal/domain/fieldlog"
	"github.com/jobsight/backend/internal/domain/media"
	"github.com/jobsight/backend/internal/domain/project"
	"github.com/jobsight/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockDocumentRepository is a mock implementation of DocumentRepository
type MockDocumentRepository struct {
	mock.Mock
}

func (m *MockDocumentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*media.Document, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]media.Document, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]media.Document), args.Error(1)
}

func (m *MockDocumentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDocumentRepository) Create(ctx context.Context, tenantID uuid.UUID, entity *media.Document) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockDocumentRepository) Update(ctx context.Context, tenantID uuid.UUID, entity *media.Document) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockDocumentRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockDocumentRepository) Search(ctx context.Context, tenantID uuid.UUID, term string) ([]media.Document, error) {
	args := m.Called(ctx, tenantID, term)
	return args.Get(0).([]media.Document), args.Error(1)
}

func (m *MockDocumentRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID) ([]media.Document, error) {
	args := m.Called(ctx, tenantID, projectID)
	return args.Get(0).([]media.Document), args.Error(1)
}

// MockMediaItemRepository is a mock implementation of MediaItemRepository
type MockMediaItemRepository struct {
	mock.Mock
}

func (m *MockMediaItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*media.MediaItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*media.MediaItem), args.Error(1)
}

func (m *MockMediaItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]media.MediaItem, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]media.MediaItem), args.Error(1)
}

func (m *MockMediaItemRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMediaItemRepository) Create(ctx context.Context, tenantID uuid.UUID, entity *media.MediaItem) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockMediaItemRepository) Update(ctx context.Context, tenantID uuid.UUID, entity *media.MediaItem) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockMediaItemRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockMediaItemRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]media.MediaItem, error) {
	args := m.Called(ctx, tenantID, projectID, filter)
	return args.Get(0).([]media.MediaItem), args.Error(1)
}

func (m *MockMediaItemRepository) FindByDailyLog(ctx context.Context, tenantID, dailyLogID uuid.UUID) ([]media.MediaItem, error) {
	args := m.Called(ctx, tenantID, dailyLogID)
	return args.Get(0).([]media.MediaItem), args.Error(1)
}

// MockProjectRepository is a mock implementation of project.ProjectRepository
type MockProjectRepository struct {
	mock.Mock
}

func (m *MockProjectRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*project.Project, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]project.Project, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProjectRepository) Create(ctx context.Context, tenantID uuid.UUID, entity *project.Project) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockProjectRepository) Update(ctx context.Context, tenantID uuid.UUID, entity *project.Project) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockProjectRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockProjectRepository) Search(ctx context.Context, tenantID uuid.UUID, term string) ([]project.Project, error) {
	args := m.Called(ctx, tenantID, term)
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]project.Project, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]project.Project, error) {
	args := m.Called(ctx, tenantID, clientID, filter)
	return args.Get(0).([]project.Project), args.Error(1)
}

func (m *MockProjectRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status project.ProjectStatus, filter shared.Filter) ([]project.Project, error) {
	args := m.Called(ctx, tenantID, status, filter)
	return args.Get(0).([]project.Project), args.Error(1)
}

// MockClientRepository is a mock implementation of directory.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*directory.Client, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*directory.Client), args.Error(1)
}

func (m *MockClientRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]directory.Client, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]directory.Client), args.Error(1)
}

func (m *MockClientRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) Create(ctx context.Context, tenantID uuid.UUID, entity *directory.Client) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockClientRepository) Update(ctx context.Context, tenantID uuid.UUID, entity *directory.Client) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockClientRepository) Search(ctx context.Context, tenantID uuid.UUID, term string) ([]directory.Client, error) {
	args := m.Called(ctx, tenantID, term)
	return args.Get(0).([]directory.Client), args.Error(1)
}

func (m *MockClientRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status directory.ClientStatus, filter shared.Filter) ([]directory.Client, error) {
	args := m.Called(ctx, tenantID, status, filter)
	return args.Get(0).([]directory.Client), args.Error(1)
}

// MockDailyLogRepository is a mock implementation of fieldlog.DailyLogRepository
type MockDailyLogRepository struct {
	mock.Mock
}

func (m *MockDailyLogRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fieldlog.DailyLog, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fieldlog.DailyLog), args.Error(1)
}

func (m *MockDailyLogRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fieldlog.DailyLog, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]fieldlog.DailyLog), args.Error(1)
}

func (m *MockDailyLogRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDailyLogRepository) Create(ctx context.Context, tenantID uuid.UUID, entity *fieldlog.DailyLog) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockDailyLogRepository) Update(ctx context.Context, tenantID uuid.UUID, entity *fieldlog.DailyLog) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockDailyLogRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockDailyLogRepository) FindByProject(ctx context.Context, tenantID, projectID uuid.UUID, filter shared.Filter) ([]fieldlog.DailyLog, error) {
	args := m.Called(ctx, tenantID, projectID, filter)
	return args.Get(0).([]fieldlog.DailyLog), args.Error(1)
}

// =============================================================================
// DocumentService Tests
// =============================================================================

func TestDocumentService_Create_AttachedToProject(t *testing.T) {
	documents := new(MockDocumentRepository)
	projects := new(MockProjectRepository)
	clients := new(MockClientRepository)
	service := NewDocumentService(documents, projects, clients)

	tenantID := uuid.New()
	p, err := project.NewProject(tenantID, "Hillside Remodel")
	assert.NoError(t, err)

	projects.On("FindByIDForTenant", mock.Anything, tenantID, p.ID).Return(p, nil)
	documents.On("Create", mock.Anything, tenantID, mock.AnythingOfType("*media.Document")).Return(nil)

	resp, err := service.Create(context.Background(), tenantID, CreateDocumentRequest{
		ProjectID:   &p.ID,
		Kind:        media.DocumentKindPermit,
		FileName:    "demo-permit.pdf",
		StorageKey:  "tenants/abc/docs/demo-permit.pdf",
		ContentType: "application/pdf",
		SizeBytes:   52340,
	})

	assert.NoError(t, err)
	assert.Equal(t, media.DocumentKindPermit, resp.Kind)
	assert.NotNil(t, resp.ProjectID)
	assert.Equal(t, p.ID, *resp.ProjectID)
}

func TestDocumentService_Create_ForeignProject(t *testing.T) {
	documents := new(MockDocumentRepository)
	projects := new(MockProjectRepository)
	clients := new(MockClientRepository)
	service := NewDocumentService(documents, projects, clients)

	tenantID := uuid.New()
	projectID := uuid.New()

	projects.On("FindByIDForTenant", mock.Anything, tenantID, projectID).Return(nil, shared.ErrNotFound)

	resp, err := service.Create(context.Background(), tenantID, CreateDocumentRequest{
		ProjectID:  &projectID,
		FileName:   "demo-permit.pdf",
		StorageKey: "tenants/abc/docs/demo-permit.pdf",
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Nil(t, resp)
	documents.AssertNotCalled(t, "Create")
}

func TestDocumentService_Create_EmptyFileName(t *testing.T) {
	documents := new(MockDocumentRepository)
	service := NewDocumentService(documents, new(MockProjectRepository), new(MockClientRepository))

	resp, err := service.Create(context.Background(), uuid.New(), CreateDocumentRequest{
		FileName:   "  ",
		StorageKey: "tenants/abc/docs/x.pdf",
	})

	assert.Error(t, err)
	assert.Nil(t, resp)
	documents.AssertNotCalled(t, "Create")
}

func TestDocumentService_List_BuildsFilter(t *testing.T) {
	documents := new(MockDocumentRepository)
	service := NewDocumentService(documents, new(MockProjectRepository), new(MockClientRepository))
	tenantID := uuid.New()

	documents.On("FindAllForTenant", mock.Anything, tenantID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20 &&
			f.OrderBy == "created_at" && f.OrderDir == "desc" &&
			f.Filters["kind"] == "permit" && len(f.Or) == 1
	})).Return([]media.Document{}, nil)
	documents.On("CountForTenant", mock.Anything, tenantID, mock.Anything).Return(int64(0), nil)

	_, total, err := service.List(context.Background(), tenantID, DocumentListFilter{
		Kind:   "permit",
		Search: "permit",
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(0), total)
	documents.AssertExpectations(t)
}

// =============================================================================
// MediaItemService Tests
// =============================================================================

func TestMediaItemService_Create_InheritsProjectFromDailyLog(t *testing.T) {
	items := new(MockMediaItemRepository)
	projects := new(MockProjectRepository)
	logs := new(MockDailyLogRepository)
	service := NewMediaItemService(items, projects, logs)

	tenantID := uuid.New()
	projectID := uuid.New()
	d, err := fieldlog.NewDailyLog(tenantID, projectID, time.Now(), "Set trusses")
	assert.NoError(t, err)

	logs.On("FindByIDForTenant", mock.Anything, tenantID, d.ID).Return(d, nil)
	items.On("Create", mock.Anything, tenantID, mock.AnythingOfType("*media.MediaItem")).Return(nil)

	resp, err := service.Create(context.Background(), tenantID, CreateMediaItemRequest{
		DailyLogID:  &d.ID,
		FileName:    "trusses.jpg",
		StorageKey:  "tenants/abc/media/trusses.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   204800,
		Caption:     "Trusses set before noon",
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp.ProjectID)
	assert.Equal(t, projectID, *resp.ProjectID)
	assert.Equal(t, "Trusses set before noon", resp.Caption)
	// The project is never looked up directly when the log supplies it
	projects.AssertNotCalled(t, "FindByIDForTenant")
}

func TestMediaItemService_Create_ForeignDailyLog(t *testing.T) {
	items := new(MockMediaItemRepository)
	logs := new(MockDailyLogRepository)
	service := NewMediaItemService(items, new(MockProjectRepository), logs)

	tenantID := uuid.New()
	logID := uuid.New()

	logs.On("FindByIDForTenant", mock.Anything, tenantID, logID).Return(nil, shared.ErrNotFound)

	resp, err := service.Create(context.Background(), tenantID, CreateMediaItemRequest{
		DailyLogID: &logID,
		FileName:   "trusses.jpg",
		StorageKey: "tenants/abc/media/trusses.jpg",
	})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Nil(t, resp)
	items.AssertNotCalled(t, "Create")
}

func TestMediaItemService_UpdateCaption(t *testing.T) {
	items := new(MockMediaItemRepository)
	service := NewMediaItemService(items, new(MockProjectRepository), new(MockDailyLogRepository))

	tenantID := uuid.New()
	m, err := media.NewMediaItem(tenantID, "slab.jpg", "tenants/abc/media/slab.jpg", "image/jpeg", 1024)
	assert.NoError(t, err)

	items.On("FindByIDForTenant", mock.Anything, tenantID, m.ID).Return(m, nil)
	items.On("Update", mock.Anything, tenantID, m).Return(nil)

	caption := "Slab poured and cured"
	resp, err := service.UpdateCaption(context.Background(), tenantID, m.ID, UpdateMediaItemRequest{Caption: &caption})

	assert.NoError(t, err)
	assert.Equal(t, "Slab poured and cured", resp.Caption)
}
