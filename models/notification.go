package models

import (
	"time"
)

type NotificationType string

const (
	NotificationDocumentExpiring NotificationType = "document_expiring"
	NotificationLicenseExpiring  NotificationType = "license_expiring"
	NotificationMaintenanceDue   NotificationType = "maintenance_due"
	NotificationIncidentReported NotificationType = "incident_reported"
	NotificationApprovalRequired NotificationType = "approval_required"
	NotificationAuctionClosed    NotificationType = "auction_closed"
)

type Notification struct {
	ID           string           `json:"id" gorm:"primaryKey;size:191"`
	Type         NotificationType `json:"type" gorm:"not null;size:50"`
	TargetUserID string           `json:"target_user_id" gorm:"not null;size:191;index"`
	Title        string           `json:"title" gorm:"not null;size:255"`
	Message      string           `json:"message" gorm:"not null;size:1000"`
	EntityID     string           `json:"entity_id" gorm:"size:191"` // related vehicle/document/auction
	IsRead       bool             `json:"is_read" gorm:"default:false"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// NotificationStats represents per-user notification counters.
type NotificationStats struct {
	UnreadCount int   `json:"unread_count"`
	TotalCount  int64 `json:"total_count"`
}
