package billing

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
	"go.uber.org/zap"

	"github.com/jobsight/backend/internal/domain/billing"
	"github.com/jobsight/backend/internal/domain/directory"
	"github.com/jobsight/backend/internal/domain/identity"
	"github.com/jobsight/backend/internal/domain/notification"
	"github.com/jobsight/backend/internal/domain/project"
	"github.com/jobsight/backend/internal/domain/shared"
	infrabilling "github.com/jobsight/backend/internal/infrastructure/billing"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockInvoiceRepository is a mock implementation of InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Create(ctx context.Context, tenantID uuid.UUID, entity *billing.Invoice) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Update(ctx context.Context, tenantID uuid.UUID, entity *billing.Invoice) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockInvoiceRepository) Search(ctx context.Context, tenantID uuid.UUID, term string) ([]billing.Invoice, error) {
	args := m.Called(ctx, tenantID, term)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, tenantID, clientID, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByStatus(ctx context.Context, tenantID uuid.UUID, status billing.InvoiceStatus, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, tenantID, status, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) CountForTenantAll(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).(int64), args.Error(1)
}

// MockInvoiceItemRepository is a mock implementation of InvoiceItemRepository
type MockInvoiceItemRepository struct {
	mock.Mock
}

func (m *MockInvoiceItemRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.InvoiceItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.InvoiceItem), args.Error(1)
}

func (m *MockInvoiceItemRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.InvoiceItem, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]billing.InvoiceItem), args.Error(1)
}

func (m *MockInvoiceItemRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceItemRepository) Create(ctx context.Context, tenantID uuid.UUID, entity *billing.InvoiceItem) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockInvoiceItemRepository) Update(ctx context.Context, tenantID uuid.UUID, entity *billing.InvoiceItem) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockInvoiceItemRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockInvoiceItemRepository) FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]billing.InvoiceItem, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	return args.Get(0).([]billing.InvoiceItem), args.Error(1)
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

// MockBusinessRepository is a mock implementation of identity.BusinessRepository
type MockBusinessRepository struct {
	mock.Mock
}

func (m *MockBusinessRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.Business, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Business), args.Error(1)
}

func (m *MockBusinessRepository) FindByOwner(ctx context.Context, ownerUserID uuid.UUID) (*identity.Business, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Business), args.Error(1)
}

func (m *MockBusinessRepository) FindByStripeCustomerID(ctx context.Context, customerID string) (*identity.Business, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.Business), args.Error(1)
}

func (m *MockBusinessRepository) Save(ctx context.Context, business *identity.Business) error {
	args := m.Called(ctx, business)
	return args.Error(0)
}

// MockSubscriptionRepository is a mock implementation of SubscriptionRepository
type MockSubscriptionRepository struct {
	mock.Mock
}

func (m *MockSubscriptionRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID) (*billing.Subscription, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) FindByStripeID(ctx context.Context, stripeSubID string) (*billing.Subscription, error) {
	args := m.Called(ctx, stripeSubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Save(ctx context.Context, sub *billing.Subscription) error {
	args := m.Called(ctx, sub)
	return args.Error(0)
}

// MockGateway is a mock implementation of PaymentGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateCustomer(ctx context.Context, input infrabilling.CreateCustomerInput) (*infrabilling.CreateCustomerOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infrabilling.CreateCustomerOutput), args.Error(1)
}

func (m *MockGateway) CreateCheckoutSession(ctx context.Context, input infrabilling.CreateCheckoutSessionInput) (*infrabilling.CreateCheckoutSessionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infrabilling.CreateCheckoutSessionOutput), args.Error(1)
}

func (m *MockGateway) CreatePortalSession(ctx context.Context, input infrabilling.CreatePortalSessionInput) (*infrabilling.CreatePortalSessionOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infrabilling.CreatePortalSessionOutput), args.Error(1)
}

func (m *MockGateway) CancelSubscription(ctx context.Context, input infrabilling.CancelSubscriptionInput) (*infrabilling.SubscriptionState, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*infrabilling.SubscriptionState), args.Error(1)
}

// MockVerifier is a mock implementation of WebhookVerifier
type MockVerifier struct {
	mock.Mock
}

func (m *MockVerifier) VerifyWebhook(payload []byte, signatureHeader string) (stripe.Event, error) {
	args := m.Called(payload, signatureHeader)
	return args.Get(0).(stripe.Event), args.Error(1)
}

// MockIdempotencyStore is a mock implementation of shared.IdempotencyStore
type MockIdempotencyStore struct {
	mock.Mock
}

func (m *MockIdempotencyStore) MarkProcessed(ctx context.Context, eventID string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, eventID, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) IsProcessed(ctx context.Context, eventID string) (bool, error) {
	args := m.Called(ctx, eventID)
	return args.Bool(0), args.Error(1)
}

func (m *MockIdempotencyStore) Release(ctx context.Context, eventID string) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}

func (m *MockIdempotencyStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockNotifier is a mock implementation of InvoiceNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) DispatchToOwner(ctx context.Context, tenantID uuid.UUID, kind notification.Kind, title, body string) error {
	args := m.Called(ctx, tenantID, kind, title, body)
	return args.Error(0)
}

func newClient(t *testing.T, tenantID uuid.UUID) *directory.Client {
	t.Helper()
	c, err := directory.NewClient(tenantID, "Hillside Homes")
	require.NoError(t, err)
	return c
}

// =============================================================================
// InvoiceService Tests
// =============================================================================

func TestInvoiceService_Create_AssignsSequentialNumber(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	items := new(MockInvoiceItemRepository)
	clients := new(MockClientRepository)
	service := NewInvoiceService(invoices, items, clients, new(MockProjectRepository), nil)

	tenantID := uuid.New()
	c := newClient(t, tenantID)

	clients.On("FindByIDForTenant", mock.Anything, tenantID, c.ID).Return(c, nil)
	invoices.On("CountForTenantAll", mock.Anything, tenantID).Return(int64(41), nil)
	invoices.On("Create", mock.Anything, tenantID, mock.AnythingOfType("*billing.Invoice")).Return(nil)
	items.On("Create", mock.Anything, tenantID, mock.AnythingOfType("*billing.InvoiceItem")).Return(nil)

	resp, err := service.Create(context.Background(), tenantID, CreateInvoiceRequest{
		ClientID: c.ID,
		Items: []InvoiceItemRequest{
			{Description: "Framing labor", Quantity: decimal.NewFromInt(40), UnitPrice: decimal.NewFromFloat(85)},
			{Description: "Lumber package", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromFloat(12500.50)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "INV-000042", resp.Number)
	assert.Equal(t, billing.InvoiceStatusDraft, resp.Status)
	assert.True(t, resp.Total.Equal(decimal.NewFromFloat(15900.50)))
	assert.Len(t, resp.Items, 2)
}

func TestInvoiceService_Create_ForeignClient(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	clients := new(MockClientRepository)
	service := NewInvoiceService(invoices, new(MockInvoiceItemRepository), clients, new(MockProjectRepository), nil)

	tenantID := uuid.New()
	clientID := uuid.New()

	clients.On("FindByIDForTenant", mock.Anything, tenantID, clientID).Return(nil, shared.ErrNotFound)

	resp, err := service.Create(context.Background(), tenantID, CreateInvoiceRequest{ClientID: clientID})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Nil(t, resp)
	invoices.AssertNotCalled(t, "Create")
}

func TestInvoiceService_Send_NotifiesOwner(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	items := new(MockInvoiceItemRepository)
	notifier := new(MockNotifier)
	service := NewInvoiceService(invoices, items, new(MockClientRepository), new(MockProjectRepository), notifier)

	tenantID := uuid.New()
	inv, err := billing.NewInvoice(tenantID, uuid.New(), "INV-000007")
	require.NoError(t, err)
	_, err = inv.AddItem("Framing labor", decimal.NewFromInt(10), decimal.NewFromInt(85))
	require.NoError(t, err)

	invoices.On("FindByIDForTenant", mock.Anything, tenantID, inv.ID).Return(inv, nil)
	items.On("FindByInvoice", mock.Anything, tenantID, inv.ID).Return(inv.Items, nil)
	invoices.On("Update", mock.Anything, tenantID, inv).Return(nil)
	notifier.On("DispatchToOwner", mock.Anything, tenantID, notification.KindInvoiceSent,
		"Invoice INV-000007 sent", "Total 850.00").Return(nil)

	resp, err := service.Send(context.Background(), tenantID, inv.ID, SendInvoiceRequest{DueInDays: 30})

	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusSent, resp.Status)
	assert.NotNil(t, resp.DueAt)
	notifier.AssertExpectations(t)
}

func TestInvoiceService_Send_NotificationFailureIsIgnored(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	items := new(MockInvoiceItemRepository)
	notifier := new(MockNotifier)
	service := NewInvoiceService(invoices, items, new(MockClientRepository), new(MockProjectRepository), notifier)

	tenantID := uuid.New()
	inv, err := billing.NewInvoice(tenantID, uuid.New(), "INV-000008")
	require.NoError(t, err)

	invoices.On("FindByIDForTenant", mock.Anything, tenantID, inv.ID).Return(inv, nil)
	items.On("FindByInvoice", mock.Anything, tenantID, inv.ID).Return([]billing.InvoiceItem{}, nil)
	invoices.On("Update", mock.Anything, tenantID, inv).Return(nil)
	notifier.On("DispatchToOwner", mock.Anything, tenantID, notification.KindInvoiceSent,
		mock.Anything, mock.Anything).Return(assert.AnError)

	resp, err := service.Send(context.Background(), tenantID, inv.ID, SendInvoiceRequest{})

	require.NoError(t, err)
	assert.Equal(t, billing.InvoiceStatusSent, resp.Status)
}

func TestInvoiceService_AddItem_SentInvoiceIsImmutable(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	items := new(MockInvoiceItemRepository)
	service := NewInvoiceService(invoices, items, new(MockClientRepository), new(MockProjectRepository), nil)

	tenantID := uuid.New()
	inv, err := billing.NewInvoice(tenantID, uuid.New(), "INV-000009")
	require.NoError(t, err)
	require.NoError(t, inv.Send(14))

	invoices.On("FindByIDForTenant", mock.Anything, tenantID, inv.ID).Return(inv, nil)
	items.On("FindByInvoice", mock.Anything, tenantID, inv.ID).Return([]billing.InvoiceItem{}, nil)

	resp, err := service.AddItem(context.Background(), tenantID, inv.ID, InvoiceItemRequest{
		Description: "Change order",
		Quantity:    decimal.NewFromInt(1),
		UnitPrice:   decimal.NewFromInt(500),
	})

	assert.ErrorIs(t, err, shared.ErrInvalidState)
	assert.Nil(t, resp)
	items.AssertNotCalled(t, "Create")
}

func TestInvoiceService_Delete_SentInvoiceRefused(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	items := new(MockInvoiceItemRepository)
	service := NewInvoiceService(invoices, items, new(MockClientRepository), new(MockProjectRepository), nil)

	tenantID := uuid.New()
	inv, err := billing.NewInvoice(tenantID, uuid.New(), "INV-000010")
	require.NoError(t, err)
	require.NoError(t, inv.Send(14))

	invoices.On("FindByIDForTenant", mock.Anything, tenantID, inv.ID).Return(inv, nil)

	err = service.Delete(context.Background(), tenantID, inv.ID)

	assert.ErrorIs(t, err, shared.ErrInvalidState)
	invoices.AssertNotCalled(t, "DeleteForTenant")
}

func TestInvoiceService_List_SearchMatchesNumberOrNotes(t *testing.T) {
	invoices := new(MockInvoiceRepository)
	items := new(MockInvoiceItemRepository)
	service := NewInvoiceService(invoices, items, new(MockClientRepository), new(MockProjectRepository), nil)
	tenantID := uuid.New()

	invoices.On("FindAllForTenant", mock.Anything, tenantID, mock.MatchedBy(func(f shared.Filter) bool {
		if len(f.Or) != 2 {
			return false
		}
		return f.Or[0].Column == "number" && f.Or[1].Column == "notes" &&
			f.Or[0].Op == shared.FilterOpILike && f.Or[0].Value == "%retainage%"
	})).Return([]billing.Invoice{}, nil)
	invoices.On("CountForTenant", mock.Anything, tenantID, mock.Anything).Return(int64(0), nil)

	_, total, err := service.List(context.Background(), tenantID, InvoiceListFilter{Search: "retainage"})

	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	invoices.AssertExpectations(t)
}

// =============================================================================
// SubscriptionService Tests
// =============================================================================

func TestSubscriptionService_StartCheckout_CreatesCustomerLazily(t *testing.T) {
	businesses := new(MockBusinessRepository)
	subs := new(MockSubscriptionRepository)
	gateway := new(MockGateway)
	service := NewSubscriptionService(businesses, subs, gateway, 14, zap.NewNop())

	b, err := identity.NewBusiness(uuid.New(), "Hillside Construction", 14)
	require.NoError(t, err)

	businesses.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	gateway.On("CreateCustomer", mock.Anything, mock.MatchedBy(func(in infrabilling.CreateCustomerInput) bool {
		return in.TenantID == b.ID && in.Name == "Hillside Construction"
	})).Return(&infrabilling.CreateCustomerOutput{CustomerID: "cus_test_123"}, nil)
	businesses.On("Save", mock.Anything, b).Return(nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.MatchedBy(func(in infrabilling.CreateCheckoutSessionInput) bool {
		return in.CustomerID == "cus_test_123" && in.Plan == "pro" && in.TrialDays == 14
	})).Return(&infrabilling.CreateCheckoutSessionOutput{SessionID: "cs_test_123", URL: "https://checkout.test/cs_test_123"}, nil)

	resp, err := service.StartCheckout(context.Background(), b.ID, StartCheckoutRequest{Plan: "pro"})

	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", resp.SessionID)
	assert.Equal(t, "cus_test_123", b.StripeCustomerID)
}

func TestSubscriptionService_StartCheckout_ReusesExistingCustomer(t *testing.T) {
	businesses := new(MockBusinessRepository)
	gateway := new(MockGateway)
	service := NewSubscriptionService(businesses, new(MockSubscriptionRepository), gateway, 0, zap.NewNop())

	b, err := identity.NewBusiness(uuid.New(), "Hillside Construction", 0)
	require.NoError(t, err)
	b.SetStripeCustomerID("cus_existing")

	businesses.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	gateway.On("CreateCheckoutSession", mock.Anything, mock.Anything).
		Return(&infrabilling.CreateCheckoutSessionOutput{SessionID: "cs_test_456", URL: "https://checkout.test/cs_test_456"}, nil)

	_, err = service.StartCheckout(context.Background(), b.ID, StartCheckoutRequest{Plan: "starter"})

	require.NoError(t, err)
	gateway.AssertNotCalled(t, "CreateCustomer")
	businesses.AssertNotCalled(t, "Save")
}

func TestSubscriptionService_PortalSession_NoCustomer(t *testing.T) {
	businesses := new(MockBusinessRepository)
	gateway := new(MockGateway)
	service := NewSubscriptionService(businesses, new(MockSubscriptionRepository), gateway, 0, zap.NewNop())

	b, err := identity.NewBusiness(uuid.New(), "Hillside Construction", 0)
	require.NoError(t, err)

	businesses.On("FindByID", mock.Anything, b.ID).Return(b, nil)

	resp, err := service.PortalSession(context.Background(), b.ID)

	require.Error(t, err)
	assert.Nil(t, resp)
	gateway.AssertNotCalled(t, "CreatePortalSession")
}

func TestSubscriptionService_Cancel_SyncsMirror(t *testing.T) {
	subs := new(MockSubscriptionRepository)
	gateway := new(MockGateway)
	service := NewSubscriptionService(new(MockBusinessRepository), subs, gateway, 0, zap.NewNop())

	tenantID := uuid.New()
	sub, err := billing.NewSubscription(tenantID, "sub_test_123", "pro", billing.SubscriptionStatusActive)
	require.NoError(t, err)

	subs.On("FindForTenant", mock.Anything, tenantID).Return(sub, nil)
	gateway.On("CancelSubscription", mock.Anything, mock.MatchedBy(func(in infrabilling.CancelSubscriptionInput) bool {
		return in.SubscriptionID == "sub_test_123" && in.AtPeriodEnd
	})).Return(&infrabilling.SubscriptionState{
		SubscriptionID:    "sub_test_123",
		Status:            billing.SubscriptionStatusActive,
		CancelAtPeriodEnd: true,
	}, nil)
	subs.On("Save", mock.Anything, sub).Return(nil)

	resp, err := service.Cancel(context.Background(), tenantID, CancelSubscriptionRequest{AtPeriodEnd: true})

	require.NoError(t, err)
	assert.True(t, resp.CancelAtPeriodEnd)
	assert.Equal(t, billing.SubscriptionStatusActive, resp.Status)
}

// =============================================================================
// WebhookService Tests
// =============================================================================

func subscriptionEvent(t *testing.T, eventType string, tenantID uuid.UUID, status string) stripe.Event {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"id":                   "sub_test_123",
		"status":               status,
		"cancel_at_period_end": false,
		"customer":             map[string]any{"id": "cus_test_123"},
		"metadata":             map[string]string{"tenant_id": tenantID.String(), "plan": "pro"},
	})
	require.NoError(t, err)
	return stripe.Event{
		ID:   "evt_test_123",
		Type: stripe.EventType(eventType),
		Data: &stripe.EventData{Raw: raw},
	}
}

func TestWebhookService_Process_SyncsMirrorAndPlan(t *testing.T) {
	verifier := new(MockVerifier)
	store := new(MockIdempotencyStore)
	subs := new(MockSubscriptionRepository)
	businesses := new(MockBusinessRepository)
	service := NewWebhookService(verifier, store, subs, businesses, zap.NewNop())

	b, err := identity.NewBusiness(uuid.New(), "Hillside Construction", 14)
	require.NoError(t, err)
	event := subscriptionEvent(t, "customer.subscription.updated", b.ID, "active")

	payload := []byte(`{}`)
	verifier.On("VerifyWebhook", payload, "sig").Return(event, nil)
	store.On("MarkProcessed", mock.Anything, "evt_test_123", webhookDedupTTL).Return(true, nil)
	businesses.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	subs.On("FindByStripeID", mock.Anything, "sub_test_123").Return(nil, shared.ErrNotFound)
	subs.On("Save", mock.Anything, mock.MatchedBy(func(sub *billing.Subscription) bool {
		return sub.StripeSubscriptionID == "sub_test_123" &&
			sub.Status == billing.SubscriptionStatusActive &&
			sub.TenantID == b.ID
	})).Return(nil)
	businesses.On("Save", mock.Anything, b).Return(nil)

	err = service.Process(context.Background(), payload, "sig")

	require.NoError(t, err)
	assert.Equal(t, identity.BusinessPlanPro, b.Plan)
	assert.Equal(t, identity.BusinessStatusActive, b.Status)
}

func TestWebhookService_Process_ReplayIsIgnored(t *testing.T) {
	verifier := new(MockVerifier)
	store := new(MockIdempotencyStore)
	subs := new(MockSubscriptionRepository)
	service := NewWebhookService(verifier, store, subs, new(MockBusinessRepository), zap.NewNop())

	event := subscriptionEvent(t, "customer.subscription.updated", uuid.New(), "active")
	payload := []byte(`{}`)
	verifier.On("VerifyWebhook", payload, "sig").Return(event, nil)
	store.On("MarkProcessed", mock.Anything, "evt_test_123", webhookDedupTTL).Return(false, nil)

	err := service.Process(context.Background(), payload, "sig")

	require.NoError(t, err)
	subs.AssertNotCalled(t, "FindByStripeID")
	subs.AssertNotCalled(t, "Save")
}

func TestWebhookService_Process_BadSignature(t *testing.T) {
	verifier := new(MockVerifier)
	store := new(MockIdempotencyStore)
	service := NewWebhookService(verifier, store, new(MockSubscriptionRepository), new(MockBusinessRepository), zap.NewNop())

	payload := []byte(`{}`)
	verifier.On("VerifyWebhook", payload, "bad").Return(stripe.Event{}, assert.AnError)

	err := service.Process(context.Background(), payload, "bad")

	require.Error(t, err)
	store.AssertNotCalled(t, "MarkProcessed")
}

func TestWebhookService_Process_DeletedDowngradesToFree(t *testing.T) {
	verifier := new(MockVerifier)
	store := new(MockIdempotencyStore)
	subs := new(MockSubscriptionRepository)
	businesses := new(MockBusinessRepository)
	service := NewWebhookService(verifier, store, subs, businesses, zap.NewNop())

	b, err := identity.NewBusiness(uuid.New(), "Hillside Construction", 0)
	require.NoError(t, err)
	require.NoError(t, b.ChangePlan(identity.BusinessPlanPro))

	sub, err := billing.NewSubscription(b.ID, "sub_test_123", "pro", billing.SubscriptionStatusActive)
	require.NoError(t, err)

	event := subscriptionEvent(t, "customer.subscription.deleted", b.ID, "canceled")
	payload := []byte(`{}`)
	verifier.On("VerifyWebhook", payload, "sig").Return(event, nil)
	store.On("MarkProcessed", mock.Anything, "evt_test_123", webhookDedupTTL).Return(true, nil)
	businesses.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	subs.On("FindByStripeID", mock.Anything, "sub_test_123").Return(sub, nil)
	subs.On("Save", mock.Anything, sub).Return(nil)
	businesses.On("Save", mock.Anything, b).Return(nil)

	err = service.Process(context.Background(), payload, "sig")

	require.NoError(t, err)
	assert.Equal(t, billing.SubscriptionStatusCanceled, sub.Status)
	assert.Equal(t, identity.BusinessPlanFree, b.Plan)
}

func TestWebhookService_Process_FailureReleasesDedupKey(t *testing.T) {
	verifier := new(MockVerifier)
	store := new(MockIdempotencyStore)
	subs := new(MockSubscriptionRepository)
	businesses := new(MockBusinessRepository)
	service := NewWebhookService(verifier, store, subs, businesses, zap.NewNop())

	b, err := identity.NewBusiness(uuid.New(), "Hillside Construction", 14)
	require.NoError(t, err)
	event := subscriptionEvent(t, "customer.subscription.updated", b.ID, "active")
	payload := []byte(`{}`)

	verifier.On("VerifyWebhook", payload, "sig").Return(event, nil)
	store.On("MarkProcessed", mock.Anything, "evt_test_123", webhookDedupTTL).Return(true, nil)
	businesses.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	subs.On("FindByStripeID", mock.Anything, "sub_test_123").Return(nil, shared.ErrNotFound)
	subs.On("Save", mock.Anything, mock.AnythingOfType("*billing.Subscription")).Return(assert.AnError).Once()
	store.On("Release", mock.Anything, "evt_test_123").Return(nil)

	err = service.Process(context.Background(), payload, "sig")
	require.Error(t, err)
	store.AssertCalled(t, "Release", mock.Anything, "evt_test_123")

	// The retried delivery claims the key again and lands in the repository
	subs.On("Save", mock.Anything, mock.AnythingOfType("*billing.Subscription")).Return(nil).Once()
	businesses.On("Save", mock.Anything, b).Return(nil)

	require.NoError(t, service.Process(context.Background(), payload, "sig"))
	subs.AssertNumberOfCalls(t, "Save", 2)
}

func TestWebhookService_Process_UnattributableIsAcknowledged(t *testing.T) {
	verifier := new(MockVerifier)
	store := new(MockIdempotencyStore)
	subs := new(MockSubscriptionRepository)
	businesses := new(MockBusinessRepository)
	service := NewWebhookService(verifier, store, subs, businesses, zap.NewNop())

	tenantID := uuid.New()
	event := subscriptionEvent(t, "customer.subscription.updated", tenantID, "active")
	payload := []byte(`{}`)
	verifier.On("VerifyWebhook", payload, "sig").Return(event, nil)
	store.On("MarkProcessed", mock.Anything, "evt_test_123", webhookDedupTTL).Return(true, nil)
	businesses.On("FindByID", mock.Anything, tenantID).Return(nil, shared.ErrNotFound)
	businesses.On("FindByStripeCustomerID", mock.Anything, "cus_test_123").Return(nil, shared.ErrNotFound)

	err := service.Process(context.Background(), payload, "sig")

	require.NoError(t, err)
	subs.AssertNotCalled(t, "Save")
}
