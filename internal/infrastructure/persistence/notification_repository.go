package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jobsight/backend/internal/domain/notification"
	"github.com/jobsight/backend/internal/domain/shared"
)

// GormNotificationRepository implements NotificationRepository using GORM
type GormNotificationRepository struct {
	*ScopedRepository[notification.Notification]
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{
		ScopedRepository: NewScopedRepository[notification.Notification](db, NotificationSortFields, "created_at DESC"),
	}
}

// FindByUser lists a user's notifications, newest first
func (r *GormNotificationRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID, filter shared.Filter) ([]notification.Notification, error) {
	if filter.Filters == nil {
		filter.Filters = make(map[string]any)
	}
	filter.Filters["user_id"] = userID
	return r.FindAllForTenant(ctx, tenantID, filter)
}

// CountUnread counts unread notifications for a user
func (r *GormNotificationRepository) CountUnread(ctx context.Context, tenantID, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.DB().WithContext(ctx).
		Model(&notification.Notification{}).
		Where("tenant_id = ? AND user_id = ? AND read_at IS NULL", tenantID, userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ notification.NotificationRepository = (*GormNotificationRepository)(nil)

// GormPreferenceRepository implements PreferenceRepository using GORM
type GormPreferenceRepository struct {
	*ScopedRepository[notification.Preference]
}

// NewGormPreferenceRepository creates a new GormPreferenceRepository
func NewGormPreferenceRepository(db *gorm.DB) *GormPreferenceRepository {
	return &GormPreferenceRepository{
		ScopedRepository: NewScopedRepository[notification.Preference](db,
			map[string]bool{"user_id": true, "kind": true},
			"kind ASC"),
	}
}

// FindByUser lists all preferences of a user
func (r *GormPreferenceRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]notification.Preference, error) {
	var prefs []notification.Preference
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("kind ASC").
		Find(&prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}

// FindByUserAndKind returns the preference row for one kind
func (r *GormPreferenceRepository) FindByUserAndKind(ctx context.Context, tenantID, userID uuid.UUID, kind notification.Kind) (*notification.Preference, error) {
	var pref notification.Preference
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND user_id = ? AND kind = ?", tenantID, userID, kind).
		First(&pref).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &pref, nil
}

var _ notification.PreferenceRepository = (*GormPreferenceRepository)(nil)

// GormPushSubscriptionRepository implements PushSubscriptionRepository using GORM
type GormPushSubscriptionRepository struct {
	*ScopedRepository[notification.PushSubscription]
}

// NewGormPushSubscriptionRepository creates a new GormPushSubscriptionRepository
func NewGormPushSubscriptionRepository(db *gorm.DB) *GormPushSubscriptionRepository {
	return &GormPushSubscriptionRepository{
		ScopedRepository: NewScopedRepository[notification.PushSubscription](db,
			map[string]bool{"user_id": true, "endpoint": true},
			"created_at DESC"),
	}
}

// FindByUser lists push endpoints registered by a user
func (r *GormPushSubscriptionRepository) FindByUser(ctx context.Context, tenantID, userID uuid.UUID) ([]notification.PushSubscription, error) {
	var subs []notification.PushSubscription
	if err := r.DB().WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID).
		Order("created_at DESC").
		Find(&subs).Error; err != nil {
		return nil, err
	}
	return subs, nil
}

var _ notification.PushSubscriptionRepository = (*GormPushSubscriptionRepository)(nil)
