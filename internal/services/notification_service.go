package services

import (
	"context"
	"log"

	"guvi-backend/internal/models"
	"guvi-backend/internal/timeutil"
)

// NotificationRepository is the persistence surface the notification
// service needs.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error
	ListUnread(ctx context.Context, userID int, role string) ([]models.Notification, error)
	MarkRead(ctx context.Context, id, userID int, role string) error
	MarkAllRead(ctx context.Context, userID int, role string) error
}

type NotificationService struct {
	repo NotificationRepository
}

func NewNotificationService(repo NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Notify appends a notification for a user. Best effort: failures are
// logged and never propagate into the workflow that triggered them.
func (s *NotificationService) Notify(ctx context.Context, recipientID int, role, message, notifType string) {
	n := &models.Notification{
		RecipientID:   recipientID,
		RecipientRole: role,
		Message:       message,
		Type:          notifType,
		CreatedAt:     timeutil.Now(),
	}
	if err := s.repo.Create(ctx, n); err != nil {
		log.Printf("[Notification] failed to create %s notification for %s/%d: %v", notifType, role, recipientID, err)
	}
}

// NotifyAdmin appends a notification addressed to the admin role as a
// whole rather than a specific user.
func (s *NotificationService) NotifyAdmin(ctx context.Context, message, notifType string) {
	s.Notify(ctx, 0, models.RoleAdmin, message, notifType)
}

// ListUnread returns the caller's unread notifications, newest first.
func (s *NotificationService) ListUnread(ctx context.Context, userID int, role string) ([]models.Notification, error) {
	return s.repo.ListUnread(ctx, userID, role)
}

// MarkRead marks one of the caller's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID int, role string) error {
	return s.repo.MarkRead(ctx, id, userID, role)
}

// MarkAllRead clears the caller's unread set.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID int, role string) error {
	return s.repo.MarkAllRead(ctx, userID, role)
}
