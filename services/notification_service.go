package services

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dediosardie/dns-maynilad-vmms/models"
)

// NotificationService writes in-app notifications for fleet staff.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify creates a notification for one user.
func (ns *NotificationService) Notify(userID string, notifType models.NotificationType, title, message, entityID string) error {
	notification := models.Notification{
		ID:           uuid.New().String(),
		Type:         notifType,
		TargetUserID: userID,
		Title:        title,
		Message:      message,
		EntityID:     entityID,
	}
	return ns.db.Create(&notification).Error
}

// NotifyRole fans a notification out to every user holding one of the given
// roles. Used for approval requests and expiry alerts that have no single
// addressee.
func (ns *NotificationService) NotifyRole(notifType models.NotificationType, title, message, entityID string, roles ...models.UserRole) error {
	var users []models.User
	if err := ns.db.Where("role IN ?", roles).Find(&users).Error; err != nil {
		return fmt.Errorf("failed to resolve notification recipients: %w", err)
	}

	for _, user := range users {
		if err := ns.Notify(user.ID, notifType, title, message, entityID); err != nil {
			return err
		}
	}
	return nil
}

// ListForUser returns the user's notifications, newest first.
func (ns *NotificationService) ListForUser(userID string, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var notifications []models.Notification
	err := ns.db.Where("target_user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// Stats returns unread/total counters for the user's notification badge.
func (ns *NotificationService) Stats(userID string) (*models.NotificationStats, error) {
	var total int64
	if err := ns.db.Model(&models.Notification{}).Where("target_user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, err
	}
	var unread int64
	if err := ns.db.Model(&models.Notification{}).Where("target_user_id = ? AND is_read = ?", userID, false).Count(&unread).Error; err != nil {
		return nil, err
	}
	return &models.NotificationStats{
		UnreadCount: int(unread),
		TotalCount:  total,
	}, nil
}

// MarkRead marks one notification read for the user.
func (ns *NotificationService) MarkRead(userID, notificationID string) error {
	return ns.db.Model(&models.Notification{}).
		Where("id = ? AND target_user_id = ?", notificationID, userID).
		Update("is_read", true).Error
}

// MarkAllRead marks every unread notification read for the user.
func (ns *NotificationService) MarkAllRead(userID string) error {
	return ns.db.Model(&models.Notification{}).
		Where("target_user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
