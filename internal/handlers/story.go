package handlers

import (
	"net/http"

	"commonground/internal/db"
	"commonground/internal/models"
	"commonground/internal/services"
	"commonground/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type StoryHandler struct {
	notifications *services.NotificationService
}

func NewStoryHandler() *StoryHandler {
	return &StoryHandler{
		notifications: services.NewNotificationService(),
	}
}

type CreateStoryRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

func (h *StoryHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Title and content are required")
		return
	}

	story := models.Story{
		AuthorID:    user.ID,
		Title:       req.Title,
		Content:     req.Content,
		ContentHTML: utils.RenderMarkdown(req.Content),
		Status:      models.StatusPending,
	}
	if err := db.DB.Create(&story).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to create story", err)
		return
	}

	_ = h.notifications.CreateStoryCreatedNotification(user, story.ID, story.Title)

	OK(c, "Story submitted for approval", gin.H{"story": story})
}

func (h *StoryHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	query := db.DB.Model(&models.Story{}).Preload("Author")

	switch {
	case c.Query("mine") == "1" && user != nil:
		query = query.Where("author_id = ?", user.ID)
		if status := c.Query("status"); status != "" {
			query = query.Where("status = ?", status)
		}
	case user != nil && user.IsAdmin() && c.Query("status") != "":
		query = query.Where("status = ?", c.Query("status"))
	default:
		query = query.Where("status = ?", models.StatusApproved)
	}

	var stories []models.Story
	if err := query.Order("created_at DESC").Limit(50).Find(&stories).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to load stories", err)
		return
	}
	fillStoryCounts(stories)

	OK(c, "", gin.H{"stories": stories})
}

func (h *StoryHandler) Get(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var story models.Story
	if err := db.DB.Preload("Author").First(&story, id).Error; err != nil {
		Fail(c, http.StatusNotFound, "Story not found")
		return
	}

	if story.Status != models.StatusApproved {
		if user == nil || (user.ID != story.AuthorID && !user.IsAdmin()) {
			Fail(c, http.StatusNotFound, "Story not found")
			return
		}
	}

	stories := []models.Story{story}
	fillStoryCounts(stories)

	OK(c, "", gin.H{"story": stories[0]})
}

func (h *StoryHandler) Update(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var story models.Story
	if err := db.DB.First(&story, id).Error; err != nil {
		Fail(c, http.StatusNotFound, "Story not found")
		return
	}
	if story.AuthorID != user.ID && !user.IsAdmin() {
		Fail(c, http.StatusForbidden, "You can only edit your own stories")
		return
	}

	var req CreateStoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Title and content are required")
		return
	}

	updates := map[string]interface{}{
		"title":        req.Title,
		"content":      req.Content,
		"content_html": utils.RenderMarkdown(req.Content),
		"status":       models.StatusPending,
	}
	if err := db.DB.Model(&story).Updates(updates).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to update story", err)
		return
	}

	OK(c, "Story updated and resubmitted for approval", gin.H{"story": story})
}

func (h *StoryHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var story models.Story
	if err := db.DB.First(&story, id).Error; err != nil {
		Fail(c, http.StatusNotFound, "Story not found")
		return
	}
	if story.AuthorID != user.ID && !user.IsAdmin() {
		Fail(c, http.StatusForbidden, "You can only delete your own stories")
		return
	}

	if err := db.DB.Delete(&story).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to delete story", err)
		return
	}
	OK(c, "Story deleted", nil)
}

type ReactRequest struct {
	Reaction string `json:"reaction" binding:"required"`
}

// React toggles the caller's reaction on a story: same reaction again
// removes it, a different one replaces it.
func (h *StoryHandler) React(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var req ReactRequest
	if err := c.ShouldBindJSON(&req); err != nil || !models.ValidReaction(req.Reaction) {
		Fail(c, http.StatusBadRequest, "reaction must be one of heart, clap, inspire")
		return
	}

	var story models.Story
	if err := db.DB.First(&story, id).Error; err != nil || story.Status != models.StatusApproved {
		Fail(c, http.StatusNotFound, "Story not found")
		return
	}

	var existing models.StoryReaction
	err := db.DB.Where("story_id = ? AND user_id = ?", story.ID, user.ID).First(&existing).Error
	switch {
	case err == nil && existing.Reaction == req.Reaction:
		if err := db.DB.Delete(&existing).Error; err != nil {
			FailWithError(c, http.StatusInternalServerError, "Failed to update reaction", err)
			return
		}
		OK(c, "Reaction removed", nil)
		return
	case err == nil:
		if err := db.DB.Model(&existing).Update("reaction", req.Reaction).Error; err != nil {
			FailWithError(c, http.StatusInternalServerError, "Failed to update reaction", err)
			return
		}
		OK(c, "Reaction updated", nil)
		return
	case err != gorm.ErrRecordNotFound:
		FailWithError(c, http.StatusInternalServerError, "Failed to update reaction", err)
		return
	}

	reaction := models.StoryReaction{
		StoryID:  story.ID,
		UserID:   user.ID,
		Reaction: req.Reaction,
	}
	if err := db.DB.Create(&reaction).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to save reaction", err)
		return
	}
	OK(c, "Reaction saved", nil)
}

func fillStoryCounts(stories []models.Story) {
	for i := range stories {
		var reactions, comments int64
		db.DB.Model(&models.StoryReaction{}).Where("story_id = ?", stories[i].ID).Count(&reactions)
		db.DB.Model(&models.Comment{}).
			Where("item_type = ? AND item_id = ?", models.ItemTypeStory, stories[i].ID).
			Count(&comments)
		stories[i].ReactionCount = int(reactions)
		stories[i].CommentCount = int(comments)
	}
}
