package services

import (
	"fmt"
	"time"

	"commonground/internal/db"
	"commonground/internal/models"

	"gorm.io/gorm"
)

// NotificationService is the only writer of notification rows. Every
// domain event goes through one of the typed constructors below, which
// persist the in-app notification first and then hand the message to
// the mail service. The email leg is fire-and-forget: a dead SMTP
// server never fails the triggering operation.
type NotificationService struct {
	mail *MailService
}

func NewNotificationService() *NotificationService {
	return &NotificationService{
		mail: NewMailService(),
	}
}

// subjectFor maps a notification type to its email subject line.
func subjectFor(t models.NotificationType) string {
	switch t {
	case models.NotificationActionApproved, models.NotificationResourceApproved, models.NotificationStoryApproved:
		return "Your submission was approved"
	case models.NotificationActionRejected, models.NotificationResourceRejected, models.NotificationStoryRejected:
		return "Your submission was not approved"
	case models.NotificationCommentAdded, models.NotificationStoryComment:
		return "New comment on your post"
	case models.NotificationActionJoined:
		return "Someone joined your action"
	case models.NotificationReminder:
		return "Reminder: an action you joined starts soon"
	case models.NotificationReportCreated:
		return "New report awaiting review"
	case models.NotificationReportUpdated:
		return "Update on your report"
	case models.NotificationAccountBanned:
		return "Your account has been suspended"
	case models.NotificationContentRemoved:
		return "Your content was removed"
	default:
		return "New activity on CommonGround"
	}
}

// Create persists one notification row. All typed constructors funnel
// through here.
func (s *NotificationService) Create(userID uint, ntype models.NotificationType, message string, relatedID *uint) error {
	notification := models.Notification{
		UserID:    userID,
		Type:      ntype,
		Message:   message,
		RelatedID: relatedID,
	}
	return db.DB.Create(&notification).Error
}

// notify persists the row and then emails the recipient when they have
// a usable address. The email never blocks or fails the write.
func (s *NotificationService) notify(user *models.User, ntype models.NotificationType, message string, relatedID *uint) error {
	if err := s.Create(user.ID, ntype, message, relatedID); err != nil {
		return err
	}
	s.mail.SendNotificationEmail(user.Email, user.Username, subjectFor(ntype), message)
	return nil
}

// Item lifecycle notifications (sent to the creator).

func (s *NotificationService) CreateActionCreatedNotification(user *models.User, actionID uint, title string) error {
	msg := fmt.Sprintf("Your action %q has been submitted and is awaiting approval.", title)
	return s.notify(user, models.NotificationActionCreated, msg, &actionID)
}

func (s *NotificationService) CreateActionApprovedNotification(user *models.User, actionID uint, title string) error {
	msg := fmt.Sprintf("Your action %q has been approved and is now visible to the community.", title)
	return s.notify(user, models.NotificationActionApproved, msg, &actionID)
}

func (s *NotificationService) CreateActionRejectedNotification(user *models.User, actionID uint, title string) error {
	msg := fmt.Sprintf("Your action %q was not approved.", title)
	return s.notify(user, models.NotificationActionRejected, msg, &actionID)
}

func (s *NotificationService) CreateResourceCreatedNotification(user *models.User, resourceID uint, title string) error {
	msg := fmt.Sprintf("Your resource %q has been submitted and is awaiting approval.", title)
	return s.notify(user, models.NotificationResourceCreated, msg, &resourceID)
}

func (s *NotificationService) CreateResourceApprovedNotification(user *models.User, resourceID uint, title string) error {
	msg := fmt.Sprintf("Your resource %q has been approved and is now visible to the community.", title)
	return s.notify(user, models.NotificationResourceApproved, msg, &resourceID)
}

func (s *NotificationService) CreateResourceRejectedNotification(user *models.User, resourceID uint, title string) error {
	msg := fmt.Sprintf("Your resource %q was not approved.", title)
	return s.notify(user, models.NotificationResourceRejected, msg, &resourceID)
}

func (s *NotificationService) CreateStoryCreatedNotification(user *models.User, storyID uint, title string) error {
	msg := fmt.Sprintf("Your story %q has been submitted and is awaiting approval.", title)
	return s.notify(user, models.NotificationStoryCreated, msg, &storyID)
}

func (s *NotificationService) CreateStoryApprovedNotification(user *models.User, storyID uint, title string) error {
	msg := fmt.Sprintf("Your story %q has been approved and published.", title)
	return s.notify(user, models.NotificationStoryApproved, msg, &storyID)
}

func (s *NotificationService) CreateStoryRejectedNotification(user *models.User, storyID uint, title string) error {
	msg := fmt.Sprintf("Your story %q was not approved.", title)
	return s.notify(user, models.NotificationStoryRejected, msg, &storyID)
}

// CreateCommentAddedNotification tells an item's creator that someone
// commented. Story comments carry their own type tag.
func (s *NotificationService) CreateCommentAddedNotification(creator *models.User, commenterName string, itemType models.ItemType, itemID uint, title string) error {
	ntype := models.NotificationCommentAdded
	if itemType == models.ItemTypeStory {
		ntype = models.NotificationStoryComment
	}
	msg := fmt.Sprintf("%s commented on your %s %q.", commenterName, itemType, title)
	return s.notify(creator, ntype, msg, &itemID)
}

// CreateActionJoinedNotification tells the action creator about a new
// participant.
func (s *NotificationService) CreateActionJoinedNotification(creator *models.User, joinerName string, actionID uint, title string) error {
	msg := fmt.Sprintf("%s joined your action %q.", joinerName, title)
	return s.notify(creator, models.NotificationActionJoined, msg, &actionID)
}

// CreateActionJoinedOtherParticipantsNotification broadcasts a join to
// every other current participant of the action. At-least-once, no
// deduplication beyond excluding the joining user.
func (s *NotificationService) CreateActionJoinedOtherParticipantsNotification(actionID uint, title string, joiner *models.User) error {
	var participants []models.ActionParticipant
	if err := db.DB.Preload("User").
		Where("action_id = ? AND user_id != ?", actionID, joiner.ID).
		Find(&participants).Error; err != nil {
		return err
	}

	msg := fmt.Sprintf("%s also joined the action %q.", joiner.Username, title)
	for i := range participants {
		if err := s.notify(&participants[i].User, models.NotificationActionJoined, msg, &actionID); err != nil {
			return err
		}
	}
	return nil
}

// CreateReminderNotification fires when a reminder comes due.
func (s *NotificationService) CreateReminderNotification(user *models.User, actionID uint, title string, startsAt time.Time) error {
	msg := fmt.Sprintf("Reminder: the action %q starts at %s.", title, startsAt.Format("Mon, 02 Jan 2006 15:04"))
	return s.notify(user, models.NotificationReminder, msg, &actionID)
}

// CreateReportCreatedNotifications fans a new report out to every admin
// user, one notification plus one email each.
func (s *NotificationService) CreateReportCreatedNotifications(report *models.Report, reporterName string) error {
	var admins []models.User
	if err := db.DB.Where("role = ?", models.RoleAdmin).Find(&admins).Error; err != nil {
		return err
	}

	msg := fmt.Sprintf("%s reported a %s (category: %s). Reason: %s",
		reporterName, report.ReportedItemType, report.Category, report.Reason)
	for i := range admins {
		if err := s.notify(&admins[i], models.NotificationReportCreated, msg, &report.ID); err != nil {
			return err
		}
	}
	return nil
}

// CreateReportStatusChangedNotification tells the original reporter
// their report moved to a new status.
func (s *NotificationService) CreateReportStatusChangedNotification(reporter *models.User, reportID uint, status models.ReportStatus) error {
	msg := fmt.Sprintf("Your report #%d has been updated to %q.", reportID, status)
	return s.notify(reporter, models.NotificationReportUpdated, msg, &reportID)
}

// CreateAccountBannedNotification tells a user they were banned.
func (s *NotificationService) CreateAccountBannedNotification(user *models.User, reason string) error {
	msg := "Your account has been suspended by a moderator."
	if reason != "" {
		msg = fmt.Sprintf("Your account has been suspended by a moderator. Reason: %s", reason)
	}
	return s.notify(user, models.NotificationAccountBanned, msg, nil)
}

// CreateContentRemovedNotification tells a creator their item was
// removed by moderation.
func (s *NotificationService) CreateContentRemovedNotification(user *models.User, itemType models.ItemType, title string) error {
	msg := fmt.Sprintf("Your %s %q was removed by a moderator for violating community guidelines.", itemType, title)
	return s.notify(user, models.NotificationContentRemoved, msg, nil)
}

// Read-side operations.

// GetByUser returns the newest notifications for a recipient. Reading
// never flips is_read.
func (s *NotificationService) GetByUser(userID uint, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var notifications []models.Notification
	err := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkAsRead flips one notification to read. Idempotent: marking an
// already-read notification succeeds. The owner check keeps users out
// of each other's inboxes.
func (s *NotificationService) MarkAsRead(id, userID uint) error {
	var notification models.Notification
	if err := db.DB.Where("id = ? AND user_id = ?", id, userID).First(&notification).Error; err != nil {
		return err
	}
	if notification.IsRead {
		return nil
	}
	return db.DB.Model(&notification).Update("is_read", true).Error
}

func (s *NotificationService) MarkAllAsRead(userID uint) error {
	return db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}

func (s *NotificationService) Delete(id, userID uint) error {
	res := db.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&models.Notification{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
