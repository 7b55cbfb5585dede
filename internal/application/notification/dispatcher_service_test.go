package notification

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobsight/backend/internal/domain/identity"
	"github.com/jobsight/backend/internal/domain/notification"
	"github.com/jobsight/backend/internal/domain/shared"
	infranotification "github.com/jobsight/backend/internal/infrastructure/notification"
)

// =============================================================================
// Mock Repositories and Senders
// =============================================================================

// MockNotificationRepository is a mock implementation of NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*notification.Notification, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]notification.Notification, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Create(ctx context.Context, tenantID uuid.UUID, entity *notification.Notification) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockNotificationRepository) Update(ctx context.Context, tenantID uuid.UUID, entity *notification.Notification) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockNotificationRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockNotificationRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID, filter shared.Filter) ([]notification.Notification, error) {
	args := m.Called(ctx, tenantID, userID, filter)
	return args.Get(0).([]notification.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, tenantID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockPreferenceRepository is a mock implementation of PreferenceRepository
type MockPreferenceRepository struct {
	mock.Mock
}

func (m *MockPreferenceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*notification.Preference, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Preference), args.Error(1)
}

func (m *MockPreferenceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]notification.Preference, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]notification.Preference), args.Error(1)
}

func (m *MockPreferenceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPreferenceRepository) Create(ctx context.Context, tenantID uuid.UUID, entity *notification.Preference) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockPreferenceRepository) Update(ctx context.Context, tenantID uuid.UUID, entity *notification.Preference) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockPreferenceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockPreferenceRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]notification.Preference, error) {
	args := m.Called(ctx, tenantID, userID)
	return args.Get(0).([]notification.Preference), args.Error(1)
}

func (m *MockPreferenceRepository) FindByUserAndKind(ctx context.Context, tenantID, userID uuid.UUID, kind notification.Kind) (*notification.Preference, error) {
	args := m.Called(ctx, tenantID, userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.Preference), args.Error(1)
}

// MockPushSubscriptionRepository is a mock implementation of PushSubscriptionRepository
type MockPushSubscriptionRepository struct {
	mock.Mock
}

func (m *MockPushSubscriptionRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*notification.PushSubscription, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*notification.PushSubscription), args.Error(1)
}

func (m *MockPushSubscriptionRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]notification.PushSubscription, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]notification.PushSubscription), args.Error(1)
}

func (m *MockPushSubscriptionRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockPushSubscriptionRepository) Create(ctx context.Context, tenantID uuid.UUID, entity *notification.PushSubscription) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockPushSubscriptionRepository) Update(ctx context.Context, tenantID uuid.UUID, entity *notification.PushSubscription) error {
	args := m.Called(ctx, tenantID, entity)
	return args.Error(0)
}

func (m *MockPushSubscriptionRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockPushSubscriptionRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]notification.PushSubscription, error) {
	args := m.Called(ctx, tenantID, userID)
	return args.Get(0).([]notification.PushSubscription), args.Error(1)
}

// MockUserRepository is a mock implementation of identity.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*identity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*identity.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) Save(ctx context.Context, user *identity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
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

// MockEmailSender is a mock implementation of EmailSender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) Send(ctx context.Context, to, subject, body string) error {
	args := m.Called(ctx, to, subject, body)
	return args.Error(0)
}

// MockPushSender is a mock implementation of PushSender
type MockPushSender struct {
	mock.Mock
}

func (m *MockPushSender) Enabled() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockPushSender) Send(ctx context.Context, endpoint string, payload infranotification.PushPayload) error {
	args := m.Called(ctx, endpoint, payload)
	return args.Error(0)
}

type dispatcherFixture struct {
	service       *DispatcherService
	notifications *MockNotificationRepository
	preferences   *MockPreferenceRepository
	pushSubs      *MockPushSubscriptionRepository
	users         *MockUserRepository
	businesses    *MockBusinessRepository
	email         *MockEmailSender
	push          *MockPushSender
}

func newDispatcher() *dispatcherFixture {
	f := &dispatcherFixture{
		notifications: new(MockNotificationRepository),
		preferences:   new(MockPreferenceRepository),
		pushSubs:      new(MockPushSubscriptionRepository),
		users:         new(MockUserRepository),
		businesses:    new(MockBusinessRepository),
		email:         new(MockEmailSender),
		push:          new(MockPushSender),
	}
	f.service = NewDispatcherService(
		f.notifications, f.preferences, f.pushSubs,
		f.users, f.businesses, f.email, f.push, zap.NewNop())
	return f
}

// =============================================================================
// DispatcherService Tests
// =============================================================================

func TestDispatcher_Dispatch_AllChannels(t *testing.T) {
	f := newDispatcher()
	tenantID := uuid.New()

	u, err := identity.NewUser("owner@hillside.test", "sup3rsecret", "Dana Ortiz")
	require.NoError(t, err)

	sub, err := notification.NewPushSubscription(tenantID, u.ID, "https://push.test/ep1", "", "")
	require.NoError(t, err)

	f.notifications.On("Create", mock.Anything, tenantID, mock.AnythingOfType("*notification.Notification")).Return(nil)
	f.preferences.On("FindByUserAndKind", mock.Anything, tenantID, u.ID, notification.KindIssueOpened).
		Return(nil, shared.ErrNotFound)
	f.users.On("FindByID", mock.Anything, u.ID).Return(u, nil)
	f.email.On("Send", mock.Anything, "owner@hillside.test", "Issue opened", "Roof leak").Return(nil)
	f.push.On("Enabled").Return(true)
	f.pushSubs.On("FindByUser", mock.Anything, tenantID, u.ID).Return([]notification.PushSubscription{*sub}, nil)
	f.push.On("Send", mock.Anything, "https://push.test/ep1", infranotification.PushPayload{
		Title: "Issue opened", Body: "Roof leak", Kind: "issue_opened",
	}).Return(nil)
	f.notifications.On("Update", mock.Anything, tenantID, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.EmailedAt != nil && n.PushedAt != nil
	})).Return(nil)

	err = f.service.Dispatch(context.Background(), tenantID, u.ID, notification.KindIssueOpened, "Issue opened", "Roof leak")

	require.NoError(t, err)
	f.notifications.AssertExpectations(t)
}

func TestDispatcher_Dispatch_PreferenceDisablesEmail(t *testing.T) {
	f := newDispatcher()
	tenantID := uuid.New()
	userID := uuid.New()

	pref, err := notification.NewPreference(tenantID, userID, notification.KindInvoiceSent, false, false)
	require.NoError(t, err)

	f.notifications.On("Create", mock.Anything, tenantID, mock.Anything).Return(nil)
	f.preferences.On("FindByUserAndKind", mock.Anything, tenantID, userID, notification.KindInvoiceSent).
		Return(pref, nil)

	err = f.service.Dispatch(context.Background(), tenantID, userID, notification.KindInvoiceSent, "Invoice sent", "")

	require.NoError(t, err)
	f.email.AssertNotCalled(t, "Send")
	f.push.AssertNotCalled(t, "Send")
	// Nothing delivered, nothing to record
	f.notifications.AssertNotCalled(t, "Update")
}

func TestDispatcher_Dispatch_GoneEndpointIsPruned(t *testing.T) {
	f := newDispatcher()
	tenantID := uuid.New()
	userID := uuid.New()

	gone, err := notification.NewPushSubscription(tenantID, userID, "https://push.test/gone", "", "")
	require.NoError(t, err)
	alive, err := notification.NewPushSubscription(tenantID, userID, "https://push.test/alive", "", "")
	require.NoError(t, err)

	pref, err := notification.NewPreference(tenantID, userID, notification.KindEquipmentAlert, false, true)
	require.NoError(t, err)

	f.notifications.On("Create", mock.Anything, tenantID, mock.Anything).Return(nil)
	f.preferences.On("FindByUserAndKind", mock.Anything, tenantID, userID, notification.KindEquipmentAlert).
		Return(pref, nil)
	f.push.On("Enabled").Return(true)
	f.pushSubs.On("FindByUser", mock.Anything, tenantID, userID).
		Return([]notification.PushSubscription{*gone, *alive}, nil)
	f.push.On("Send", mock.Anything, "https://push.test/gone", mock.Anything).Return(infranotification.ErrEndpointGone)
	f.push.On("Send", mock.Anything, "https://push.test/alive", mock.Anything).Return(nil)
	f.pushSubs.On("DeleteForTenant", mock.Anything, tenantID, gone.ID).Return(nil)
	f.notifications.On("Update", mock.Anything, tenantID, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.PushedAt != nil && n.EmailedAt == nil
	})).Return(nil)

	err = f.service.Dispatch(context.Background(), tenantID, userID, notification.KindEquipmentAlert, "Excavator due for service", "")

	require.NoError(t, err)
	f.pushSubs.AssertCalled(t, "DeleteForTenant", mock.Anything, tenantID, gone.ID)
}

func TestDispatcher_Dispatch_DeliveryFailureDoesNotFail(t *testing.T) {
	f := newDispatcher()
	tenantID := uuid.New()
	userID := uuid.New()

	f.notifications.On("Create", mock.Anything, tenantID, mock.Anything).Return(nil)
	f.preferences.On("FindByUserAndKind", mock.Anything, tenantID, userID, notification.KindBilling).
		Return(nil, shared.ErrNotFound)
	f.users.On("FindByID", mock.Anything, userID).Return(nil, shared.ErrNotFound)
	f.push.On("Enabled").Return(false)

	err := f.service.Dispatch(context.Background(), tenantID, userID, notification.KindBilling, "Payment failed", "")

	require.NoError(t, err)
	f.notifications.AssertNotCalled(t, "Update")
}

func TestDispatcher_DispatchToOwner(t *testing.T) {
	f := newDispatcher()

	b, err := identity.NewBusiness(uuid.New(), "Hillside Construction", 0)
	require.NoError(t, err)

	f.businesses.On("FindByID", mock.Anything, b.ID).Return(b, nil)
	f.notifications.On("Create", mock.Anything, b.ID, mock.MatchedBy(func(n *notification.Notification) bool {
		return n.UserID == b.OwnerUserID
	})).Return(nil)
	f.preferences.On("FindByUserAndKind", mock.Anything, b.ID, b.OwnerUserID, notification.KindInvoiceSent).
		Return(nil, shared.ErrNotFound)
	f.users.On("FindByID", mock.Anything, b.OwnerUserID).Return(nil, shared.ErrNotFound)
	f.push.On("Enabled").Return(false)

	err = f.service.DispatchToOwner(context.Background(), b.ID, notification.KindInvoiceSent, "Invoice INV-000001 sent", "")

	require.NoError(t, err)
	f.notifications.AssertExpectations(t)
}

// =============================================================================
// NotificationService Tests
// =============================================================================

func TestNotificationService_MarkRead(t *testing.T) {
	notifications := new(MockNotificationRepository)
	service := NewNotificationService(notifications)

	tenantID := uuid.New()
	userID := uuid.New()
	n, err := notification.NewNotification(tenantID, userID, notification.KindIssueOpened, "Issue opened", "")
	require.NoError(t, err)

	notifications.On("FindByIDForTenant", mock.Anything, tenantID, n.ID).Return(n, nil)
	notifications.On("Update", mock.Anything, tenantID, n).Return(nil)

	resp, err := service.MarkRead(context.Background(), tenantID, userID, n.ID)

	require.NoError(t, err)
	assert.NotNil(t, resp.ReadAt)
}

func TestNotificationService_MarkRead_ForeignUser(t *testing.T) {
	notifications := new(MockNotificationRepository)
	service := NewNotificationService(notifications)

	tenantID := uuid.New()
	n, err := notification.NewNotification(tenantID, uuid.New(), notification.KindIssueOpened, "Issue opened", "")
	require.NoError(t, err)

	notifications.On("FindByIDForTenant", mock.Anything, tenantID, n.ID).Return(n, nil)

	resp, err := service.MarkRead(context.Background(), tenantID, uuid.New(), n.ID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Nil(t, resp)
	notifications.AssertNotCalled(t, "Update")
}

func TestNotificationService_MarkRead_IsIdempotent(t *testing.T) {
	notifications := new(MockNotificationRepository)
	service := NewNotificationService(notifications)

	tenantID := uuid.New()
	userID := uuid.New()
	n, err := notification.NewNotification(tenantID, userID, notification.KindIssueOpened, "Issue opened", "")
	require.NoError(t, err)
	n.MarkRead()
	firstRead := *n.ReadAt

	notifications.On("FindByIDForTenant", mock.Anything, tenantID, n.ID).Return(n, nil)
	notifications.On("Update", mock.Anything, tenantID, n).Return(nil)

	time.Sleep(time.Millisecond)
	resp, err := service.MarkRead(context.Background(), tenantID, userID, n.ID)

	require.NoError(t, err)
	assert.Equal(t, firstRead, *resp.ReadAt)
}

// =============================================================================
// PreferenceService Tests
// =============================================================================

func TestPreferenceService_Upsert_CreatesWhenAbsent(t *testing.T) {
	preferences := new(MockPreferenceRepository)
	service := NewPreferenceService(preferences, new(MockPushSubscriptionRepository))

	tenantID := uuid.New()
	userID := uuid.New()

	preferences.On("FindByUserAndKind", mock.Anything, tenantID, userID, notification.KindMilestoneDue).
		Return(nil, shared.ErrNotFound)
	preferences.On("Create", mock.Anything, tenantID, mock.MatchedBy(func(p *notification.Preference) bool {
		return p.Kind == notification.KindMilestoneDue && !p.EmailEnabled && p.PushEnabled
	})).Return(nil)

	resp, err := service.Upsert(context.Background(), tenantID, userID, UpdatePreferenceRequest{
		Kind:        notification.KindMilestoneDue,
		PushEnabled: true,
	})

	require.NoError(t, err)
	assert.False(t, resp.EmailEnabled)
	assert.True(t, resp.PushEnabled)
}

func TestPreferenceService_Upsert_UpdatesExisting(t *testing.T) {
	preferences := new(MockPreferenceRepository)
	service := NewPreferenceService(preferences, new(MockPushSubscriptionRepository))

	tenantID := uuid.New()
	userID := uuid.New()
	pref, err := notification.NewPreference(tenantID, userID, notification.KindBilling, true, true)
	require.NoError(t, err)

	preferences.On("FindByUserAndKind", mock.Anything, tenantID, userID, notification.KindBilling).
		Return(pref, nil)
	preferences.On("Update", mock.Anything, tenantID, pref).Return(nil)

	resp, err := service.Upsert(context.Background(), tenantID, userID, UpdatePreferenceRequest{
		Kind: notification.KindBilling,
	})

	require.NoError(t, err)
	assert.False(t, resp.EmailEnabled)
	assert.False(t, resp.PushEnabled)
	preferences.AssertNotCalled(t, "Create")
}

func TestPreferenceService_RegisterPush_DedupesEndpoint(t *testing.T) {
	pushSubs := new(MockPushSubscriptionRepository)
	service := NewPreferenceService(new(MockPreferenceRepository), pushSubs)

	tenantID := uuid.New()
	userID := uuid.New()
	existing, err := notification.NewPushSubscription(tenantID, userID, "https://push.test/ep1", "", "")
	require.NoError(t, err)

	pushSubs.On("FindByUser", mock.Anything, tenantID, userID).
		Return([]notification.PushSubscription{*existing}, nil)

	resp, err := service.RegisterPush(context.Background(), tenantID, userID, RegisterPushRequest{
		Endpoint: "https://push.test/ep1",
	})

	require.NoError(t, err)
	assert.Equal(t, existing.ID, resp.ID)
	pushSubs.AssertNotCalled(t, "Create")
}

func TestPreferenceService_RegisterPush_RejectsPlainHTTP(t *testing.T) {
	pushSubs := new(MockPushSubscriptionRepository)
	service := NewPreferenceService(new(MockPreferenceRepository), pushSubs)

	tenantID := uuid.New()
	userID := uuid.New()

	pushSubs.On("FindByUser", mock.Anything, tenantID, userID).
		Return([]notification.PushSubscription{}, nil)

	resp, err := service.RegisterPush(context.Background(), tenantID, userID, RegisterPushRequest{
		Endpoint: "http://push.test/ep1",
	})

	require.Error(t, err)
	assert.Nil(t, resp)
	pushSubs.AssertNotCalled(t, "Create")
}

func TestPreferenceService_UnregisterPush_ForeignUser(t *testing.T) {
	pushSubs := new(MockPushSubscriptionRepository)
	service := NewPreferenceService(new(MockPreferenceRepository), pushSubs)

	tenantID := uuid.New()
	sub, err := notification.NewPushSubscription(tenantID, uuid.New(), "https://push.test/ep1", "", "")
	require.NoError(t, err)

	pushSubs.On("FindByIDForTenant", mock.Anything, tenantID, sub.ID).Return(sub, nil)

	err = service.UnregisterPush(context.Background(), tenantID, uuid.New(), sub.ID)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	pushSubs.AssertNotCalled(t, "DeleteForTenant")
}
