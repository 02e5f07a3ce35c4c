package models

import (
	"time"
)

type NotificationType string

const (
	NotificationActionCreated    NotificationType = "action_created"
	NotificationActionApproved   NotificationType = "action_approved"
	NotificationActionRejected   NotificationType = "action_rejected"
	NotificationActionJoined     NotificationType = "action_joined"
	NotificationResourceCreated  NotificationType = "resource_created"
	NotificationResourceApproved NotificationType = "resource_approved"
	NotificationResourceRejected NotificationType = "resource_rejected"
	NotificationStoryCreated     NotificationType = "story_created"
	NotificationStoryApproved    NotificationType = "story_approved"
	NotificationStoryRejected    NotificationType = "story_rejected"
	NotificationCommentAdded     NotificationType = "comment_added"
	NotificationStoryComment     NotificationType = "story_comment_added"
	NotificationReminder         NotificationType = "reminder"
	NotificationReportCreated    NotificationType = "report_created"
	NotificationReportUpdated    NotificationType = "report_status_changed"
	NotificationAccountBanned    NotificationType = "account_banned"
	NotificationContentRemoved   NotificationType = "content_removed"
)

// Notification is an in-app message to one recipient. Rows are written
// only by the notification service; RelatedID points at the table the
// Type implies.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"` // Recipient
	User      User             `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Type      NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Message   string           `gorm:"type:text;not null" json:"message"`
	RelatedID *uint            `gorm:"index" json:"related_id"`
	IsRead    bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
