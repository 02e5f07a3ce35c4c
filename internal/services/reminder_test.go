package services

import (
	"testing"
	"time"

	"commonground/internal/db"
	"commonground/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestReminder(t *testing.T, userID, actionID uint, remindAt time.Time) *models.Reminder {
	t.Helper()
	reminder := models.Reminder{
		UserID:   userID,
		ActionID: actionID,
		RemindAt: remindAt,
	}
	require.NoError(t, db.DB.Create(&reminder).Error)
	return &reminder
}

func TestProcessDueReminders(t *testing.T) {
	setupTestDB(t)
	creator := createTestUser(t, "creator", models.RoleUser)
	participant := createTestUser(t, "participant", models.RoleUser)
	action := createTestAction(t, creator.ID, "Beach Cleanup")

	due := createTestReminder(t, participant.ID, action.ID, time.Now().Add(-time.Minute))
	future := createTestReminder(t, participant.ID, action.ID, time.Now().Add(time.Hour))

	svc := GetReminderService()

	processed, err := svc.ProcessDueReminders()
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	var loaded models.Reminder
	require.NoError(t, db.DB.First(&loaded, due.ID).Error)
	assert.True(t, loaded.Sent)

	require.NoError(t, db.DB.First(&loaded, future.ID).Error)
	assert.False(t, loaded.Sent)

	var notifications []models.Notification
	require.NoError(t, db.DB.
		Where("user_id = ? AND type = ?", participant.ID, models.NotificationReminder).
		Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Contains(t, notifications[0].Message, "Beach Cleanup")
	require.NotNil(t, notifications[0].RelatedID)
	assert.Equal(t, action.ID, *notifications[0].RelatedID)
}

func TestProcessDueRemindersIsOneShot(t *testing.T) {
	setupTestDB(t)
	creator := createTestUser(t, "creator", models.RoleUser)
	action := createTestAction(t, creator.ID, "Tree Planting")
	createTestReminder(t, creator.ID, action.ID, time.Now().Add(-time.Minute))

	svc := GetReminderService()

	processed, err := svc.ProcessDueReminders()
	require.NoError(t, err)
	assert.Equal(t, 1, processed)

	// A second scan finds nothing left to deliver
	processed, err = svc.ProcessDueReminders()
	require.NoError(t, err)
	assert.Equal(t, 0, processed)

	var count int64
	db.DB.Model(&models.Notification{}).
		Where("type = ?", models.NotificationReminder).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestProcessDueRemindersEmptyScan(t *testing.T) {
	setupTestDB(t)

	processed, err := GetReminderService().ProcessDueReminders()
	require.NoError(t, err)
	assert.Equal(t, 0, processed)
}
