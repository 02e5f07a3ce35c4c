package handlers

import (
	"net/http"

	"commonground/internal/db"
	"commonground/internal/models"
	"commonground/internal/services"
	"commonground/internal/utils"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	notifications *services.NotificationService
}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{
		notifications: services.NewNotificationService(),
	}
}

type CreateCommentRequest struct {
	ItemType models.ItemType `json:"item_type" binding:"required"`
	ItemID   uint            `json:"item_id" binding:"required"`
	Content  string          `json:"content" binding:"required"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "item_type, item_id and content are required")
		return
	}
	if !models.ValidCommentItemType(req.ItemType) {
		Fail(c, http.StatusBadRequest, "item_type must be one of action, resource, story")
		return
	}

	ownerID, title, found := lookupItem(req.ItemType, req.ItemID)
	if !found {
		Fail(c, http.StatusNotFound, "The item you are commenting on does not exist")
		return
	}

	comment := models.Comment{
		UserID:   user.ID,
		ItemType: req.ItemType,
		ItemID:   req.ItemID,
		Content:  utils.SanitizeText(req.Content),
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to create comment", err)
		return
	}

	if ownerID != user.ID {
		var owner models.User
		if err := db.DB.First(&owner, ownerID).Error; err == nil {
			_ = h.notifications.CreateCommentAddedNotification(&owner, user.Username, req.ItemType, req.ItemID, title)
		}
	}

	OK(c, "Comment added", gin.H{"comment": comment})
}

func (h *CommentHandler) List(c *gin.Context) {
	itemType := models.ItemType(c.Query("item_type"))
	itemID := utils.StringToUint(c.Query("item_id"))

	if !models.ValidCommentItemType(itemType) || itemID == 0 {
		Fail(c, http.StatusBadRequest, "item_type and item_id query parameters are required")
		return
	}

	var comments []models.Comment
	if err := db.DB.Preload("User").
		Where("item_type = ? AND item_id = ?", itemType, itemID).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to load comments", err)
		return
	}
	OK(c, "", gin.H{"comments": comments})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		Fail(c, http.StatusNotFound, "Comment not found")
		return
	}
	if comment.UserID != user.ID && !user.IsAdmin() {
		Fail(c, http.StatusForbidden, "You can only delete your own comments")
		return
	}

	if err := db.DB.Delete(&comment).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to delete comment", err)
		return
	}
	OK(c, "Comment deleted", nil)
}

// Flag marks a comment for moderation review. Idempotent.
func (h *CommentHandler) Flag(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		Fail(c, http.StatusNotFound, "Comment not found")
		return
	}

	if !comment.Flagged {
		if err := db.DB.Model(&comment).Update("flagged", true).Error; err != nil {
			FailWithError(c, http.StatusInternalServerError, "Failed to flag comment", err)
			return
		}
	}
	OK(c, "Comment flagged for review", nil)
}
