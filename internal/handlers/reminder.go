package handlers

import (
	"net/http"
	"time"

	"commonground/internal/db"
	"commonground/internal/models"
	"commonground/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReminderHandler struct{}

func NewReminderHandler() *ReminderHandler {
	return &ReminderHandler{}
}

type CreateReminderRequest struct {
	ActionID uint       `json:"action_id" binding:"required"`
	RemindAt *time.Time `json:"remind_at"`
}

// Create registers a reminder for an action. Without an explicit time
// it defaults to one hour before the action starts.
func (h *ReminderHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "action_id is required")
		return
	}

	var action models.Action
	if err := db.DB.First(&action, req.ActionID).Error; err != nil || action.Status != models.StatusApproved {
		Fail(c, http.StatusNotFound, "Action not found")
		return
	}

	remindAt := action.StartsAt.Add(-time.Hour)
	if req.RemindAt != nil {
		remindAt = *req.RemindAt
	}

	reminder := models.Reminder{
		UserID:   user.ID,
		ActionID: action.ID,
		RemindAt: remindAt,
	}
	if err := db.DB.Create(&reminder).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to create reminder", err)
		return
	}

	OK(c, "Reminder set", gin.H{"reminder": reminder})
}

func (h *ReminderHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	var reminders []models.Reminder
	if err := db.DB.Preload("Action").
		Where("user_id = ?", user.ID).
		Order("remind_at ASC").
		Find(&reminders).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to load reminders", err)
		return
	}
	OK(c, "", gin.H{"reminders": reminders})
}

func (h *ReminderHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	res := db.DB.Where("id = ? AND user_id = ?", id, user.ID).Delete(&models.Reminder{})
	if res.Error != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to delete reminder", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		Fail(c, http.StatusNotFound, "Reminder not found")
		return
	}
	OK(c, "Reminder deleted", nil)
}
