package handlers

import (
	"net/http"
	"time"

	"commonground/internal/db"
	"commonground/internal/models"
	"commonground/internal/services"
	"commonground/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ActionHandler struct {
	notifications *services.NotificationService
}

func NewActionHandler() *ActionHandler {
	return &ActionHandler{
		notifications: services.NewNotificationService(),
	}
}

type CreateActionRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
}

func (h *ActionHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req CreateActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Title, starts_at and ends_at are required")
		return
	}
	if !req.EndsAt.After(req.StartsAt) {
		Fail(c, http.StatusBadRequest, "ends_at must be after starts_at")
		return
	}

	action := models.Action{
		CreatorID:   user.ID,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
		Status:      models.StatusPending,
	}
	if err := db.DB.Create(&action).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to create action", err)
		return
	}

	_ = h.notifications.CreateActionCreatedNotification(user, action.ID, action.Title)

	OK(c, "Action submitted for approval", gin.H{"action": action})
}

// List returns approved actions by default. mine=1 lists the caller's
// own submissions in any state; admins may filter by status directly.
func (h *ActionHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	query := db.DB.Model(&models.Action{}).Preload("Creator")

	switch {
	case c.Query("mine") == "1" && user != nil:
		query = query.Where("creator_id = ?", user.ID)
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
	case user != nil && user.IsAdmin() && c.Query("status") != "":
		query = query.Where("status = ?", c.Query("status"))
	default:
		query = query.Where("status = ?", models.StatusApproved)
	}

	if c.Query("upcoming") == "1" {
		query = query.Where("starts_at >= ?", time.Now())
	}

	var actions []models.Action
	if err := query.Order("starts_at ASC").Limit(100).Find(&actions).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to load actions", err)
		return
	}
	fillActionCounts(actions)

	OK(c, "", gin.H{"actions": actions})
}

func (h *ActionHandler) Get(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var action models.Action
	if err := db.DB.Preload("Creator").First(&action, id).Error; err != nil {
		Fail(c, http.StatusNotFound, "Action not found")
		return
	}

	// Pending and rejected items stay private to the creator and admins
	if action.Status != models.StatusApproved {
		if user == nil || (user.ID != action.CreatorID && !user.IsAdmin()) {
			Fail(c, http.StatusNotFound, "Action not found")
			return
		}
	}

	actions := []models.Action{action}
	fillActionCounts(actions)

	OK(c, "", gin.H{"action": actions[0]})
}

type UpdateActionRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Latitude    *float64  `json:"latitude"`
	Longitude   *float64  `json:"longitude"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
}

// Update rewrites an action's fields. Edits send it back through
// approval.
func (h *ActionHandler) Update(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var action models.Action
	if err := db.DB.First(&action, id).Error; err != nil {
		Fail(c, http.StatusNotFound, "Action not found")
		return
	}
	if action.CreatorID != user.ID && !user.IsAdmin() {
		Fail(c, http.StatusForbidden, "You can only edit your own actions")
		return
	}

	var req UpdateActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Title, starts_at and ends_at are required")
		return
	}
	if !req.EndsAt.After(req.StartsAt) {
		Fail(c, http.StatusBadRequest, "ends_at must be after starts_at")
		return
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"location":    req.Location,
		"latitude":    req.Latitude,
		"longitude":   req.Longitude,
		"starts_at":   req.StartsAt,
		"ends_at":     req.EndsAt,
		"status":      models.StatusPending,
	}
	if err := db.DB.Model(&action).Updates(updates).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to update action", err)
		return
	}

	OK(c, "Action updated and resubmitted for approval", gin.H{"action": action})
}

func (h *ActionHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var action models.Action
	if err := db.DB.First(&action, id).Error; err != nil {
		Fail(c, http.StatusNotFound, "Action not found")
		return
	}
	if action.CreatorID != user.ID && !user.IsAdmin() {
		Fail(c, http.StatusForbidden, "You can only delete your own actions")
		return
	}

	if err := db.DB.Delete(&action).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to delete action", err)
		return
	}
	OK(c, "Action deleted", nil)
}

// Join adds the caller as a participant and notifies the creator plus
// every other participant.
func (h *ActionHandler) Join(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var action models.Action
	if err := db.DB.Preload("Creator").First(&action, id).Error; err != nil {
		Fail(c, http.StatusNotFound, "Action not found")
		return
	}
	if action.Status != models.StatusApproved {
		Fail(c, http.StatusBadRequest, "This action is not open for participation")
		return
	}

	// Already joined?
	var existing models.ActionParticipant
	err := db.DB.Where("action_id = ? AND user_id = ?", action.ID, user.ID).First(&existing).Error
	if err == nil {
		FailSoft(c, "You have already joined this action")
		return
	}
	if err != gorm.ErrRecordNotFound {
		FailWithError(c, http.StatusInternalServerError, "Failed to join action", err)
		return
	}

	participant := models.ActionParticipant{
		ActionID: action.ID,
		UserID:   user.ID,
	}
	if err := db.DB.Create(&participant).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to join action", err)
		return
	}

	if action.CreatorID != user.ID {
		_ = h.notifications.CreateActionJoinedNotification(&action.Creator, user.Username, action.ID, action.Title)
	}
	_ = h.notifications.CreateActionJoinedOtherParticipantsNotification(action.ID, action.Title, user)

	OK(c, "You joined the action", nil)
}

func (h *ActionHandler) Leave(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	res := db.DB.Where("action_id = ? AND user_id = ?", id, user.ID).
		Delete(&models.ActionParticipant{})
	if res.Error != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to leave action", res.Error)
		return
	}
	if res.RowsAffected == 0 {
		Fail(c, http.StatusNotFound, "You have not joined this action")
		return
	}
	OK(c, "You left the action", nil)
}

func (h *ActionHandler) Participants(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var participants []models.ActionParticipant
	if err := db.DB.Preload("User").
		Where("action_id = ?", id).
		Order("created_at ASC").
		Find(&participants).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to load participants", err)
		return
	}
	OK(c, "", gin.H{"participants": participants})
}

// fillActionCounts populates the derived participant and comment
// counts for a page of actions.
func fillActionCounts(actions []models.Action) {
	for i := range actions {
		var participants, comments int64
		db.DB.Model(&models.ActionParticipant{}).Where("action_id = ?", actions[i].ID).Count(&participants)
		db.DB.Model(&models.Comment{}).
			Where("item_type = ? AND item_id = ?", models.ItemTypeAction, actions[i].ID).
			Count(&comments)
		actions[i].ParticipantCount = int(participants)
		actions[i].CommentCount = int(comments)
	}
}
