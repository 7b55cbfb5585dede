package notification

import (
	"context"

	"github.com/google/uuid"

	"github.com/jobsight/backend/internal/domain/notification"
	"github.com/jobsight/backend/internal/domain/shared"
)

// NotificationService handles a user's notification inbox
type NotificationService struct {
	notificationRepo notification.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo notification.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// ListByUser retrieves a user's notifications, newest first
func (s *NotificationService) ListByUser(ctx context.Context, tenantID, userID uuid.UUID, filter NotificationListFilter) ([]NotificationResponse, error) {
	f := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]any),
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = 20
	}
	if filter.Unread {
		f.Filters["read_at"] = nil
	}

	rows, err := s.notificationRepo.FindByUser(ctx, tenantID, userID, f)
	if err != nil {
		return nil, err
	}

	return ToNotificationResponses(rows), nil
}

// UnreadCount counts a user's unread notifications
func (s *NotificationService) UnreadCount(ctx context.Context, tenantID, userID uuid.UUID) (int64, error) {
	return s.notificationRepo.CountUnread(ctx, tenantID, userID)
}

// MarkRead stamps one of the user's notifications read. Another user's
// notification reads as not found.
func (s *NotificationService) MarkRead(ctx context.Context, tenantID, userID, notificationID uuid.UUID) (*NotificationResponse, error) {
	n, err := s.notificationRepo.FindByIDForTenant(ctx, tenantID, notificationID)
	if err != nil {
		return nil, err
	}
	if n.UserID != userID {
		return nil, shared.ErrNotFound
	}

	n.MarkRead()
	if err := s.notificationRepo.Update(ctx, tenantID, n); err != nil {
		return nil, err
	}

	response := ToNotificationResponse(n)
	return &response, nil
}

// Delete removes one of the user's notifications
func (s *NotificationService) Delete(ctx context.Context, tenantID, userID, notificationID uuid.UUID) error {
	n, err := s.notificationRepo.FindByIDForTenant(ctx, tenantID, notificationID)
	if err != nil {
		return err
	}
	if n.UserID != userID {
		return shared.ErrNotFound
	}
	return s.notificationRepo.DeleteForTenant(ctx, tenantID, notificationID)
}
