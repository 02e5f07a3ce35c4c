package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"commonground/internal/db"
	"commonground/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateActionStartsPending(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "organizer", models.RoleUser)

	r := newTestRouter(user)
	body := requireStatus(t, doJSON(t, r, "POST", "/api/actions", gin.H{
		"title":     "Park Cleanup",
		"starts_at": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"ends_at":   time.Now().Add(50 * time.Hour).Format(time.RFC3339),
	}), http.StatusOK)
	assert.Equal(t, true, body["success"])

	var action models.Action
	require.NoError(t, db.DB.First(&action).Error)
	assert.Equal(t, models.StatusPending, action.Status)

	// Creator gets a submission receipt
	var count int64
	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", user.ID, models.NotificationActionCreated).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateActionRejectsInvertedWindow(t *testing.T) {
	setupTestDB(t)
	user := createTestUser(t, "organizer", models.RoleUser)

	r := newTestRouter(user)
	requireStatus(t, doJSON(t, r, "POST", "/api/actions", gin.H{
		"title":     "Backwards Event",
		"starts_at": time.Now().Add(50 * time.Hour).Format(time.RFC3339),
		"ends_at":   time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}), http.StatusBadRequest)

	var count int64
	db.DB.Model(&models.Action{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestListActionsHidesPendingFromPublic(t *testing.T) {
	setupTestDB(t)
	creator := createTestUser(t, "creator", models.RoleUser)
	createTestAction(t, creator.ID, "Visible Event")
	pending := models.Action{
		CreatorID: creator.ID,
		Title:     "Hidden Event",
		StartsAt:  time.Now().Add(24 * time.Hour),
		EndsAt:    time.Now().Add(26 * time.Hour),
		Status:    models.StatusPending,
	}
	require.NoError(t, db.DB.Create(&pending).Error)

	r := newTestRouter(nil)
	body := requireStatus(t, doJSON(t, r, "GET", "/api/actions", nil), http.StatusOK)
	actions := body["actions"].([]interface{})
	require.Len(t, actions, 1)
	assert.Equal(t, "Visible Event", actions[0].(map[string]interface{})["title"])

	// Detail view of the pending action 404s for anonymous callers
	requireStatus(t, doJSON(t, r, "GET", fmt.Sprintf("/api/actions/%d", pending.ID), nil), http.StatusNotFound)

	// But not for its creator
	creatorRouter := newTestRouter(creator)
	requireStatus(t, doJSON(t, creatorRouter, "GET", fmt.Sprintf("/api/actions/%d", pending.ID), nil), http.StatusOK)

	// The creator sees both with mine=1
	body = requireStatus(t, doJSON(t, creatorRouter, "GET", "/api/actions?mine=1", nil), http.StatusOK)
	assert.Len(t, body["actions"].([]interface{}), 2)
}

func TestJoinAction(t *testing.T) {
	setupTestDB(t)
	creator := createTestUser(t, "creator", models.RoleUser)
	first := createTestUser(t, "first", models.RoleUser)
	second := createTestUser(t, "second", models.RoleUser)
	action := createTestAction(t, creator.ID, "Food Drive")

	path := fmt.Sprintf("/api/actions/%d/join", action.ID)

	requireStatus(t, doJSON(t, newTestRouter(first), "POST", path, nil), http.StatusOK)

	// Creator is told about the new participant
	var count int64
	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", creator.ID, models.NotificationActionJoined).Count(&count)
	assert.EqualValues(t, 1, count)

	// A second joiner also pings the first participant
	requireStatus(t, doJSON(t, newTestRouter(second), "POST", path, nil), http.StatusOK)
	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", first.ID, models.NotificationActionJoined).Count(&count)
	assert.EqualValues(t, 1, count)

	// Joining twice is a soft failure with no duplicate row
	body := requireStatus(t, doJSON(t, newTestRouter(first), "POST", path, nil), http.StatusOK)
	assert.Equal(t, false, body["success"])

	db.DB.Model(&models.ActionParticipant{}).Where("action_id = ?", action.ID).Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestLeaveAction(t *testing.T) {
	setupTestDB(t)
	creator := createTestUser(t, "creator", models.RoleUser)
	joiner := createTestUser(t, "joiner", models.RoleUser)
	action := createTestAction(t, creator.ID, "Food Drive")

	r := newTestRouter(joiner)
	requireStatus(t, doJSON(t, r, "POST", fmt.Sprintf("/api/actions/%d/join", action.ID), nil), http.StatusOK)
	requireStatus(t, doJSON(t, r, "POST", fmt.Sprintf("/api/actions/%d/leave", action.ID), nil), http.StatusOK)

	// Leaving again has nothing to remove
	requireStatus(t, doJSON(t, r, "POST", fmt.Sprintf("/api/actions/%d/leave", action.ID), nil), http.StatusNotFound)
}
