package handlers

import (
	"net/http"

	"commonground/internal/db"
	"commonground/internal/models"
	"commonground/internal/services"
	"commonground/internal/utils"

	"github.com/gin-gonic/gin"
)

type ResourceHandler struct {
	notifications *services.NotificationService
}

func NewResourceHandler() *ResourceHandler {
	return &ResourceHandler{
		notifications: services.NewNotificationService(),
	}
}

type CreateResourceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Kind        string `json:"kind" binding:"required"`
	Contact     string `json:"contact"`
}

func (h *ResourceHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Title and kind are required")
		return
	}
	if req.Kind != models.ResourceKindOffer && req.Kind != models.ResourceKindRequest {
		Fail(c, http.StatusBadRequest, "kind must be offer or request")
		return
	}

	resource := models.Resource{
		CreatorID:   user.ID,
		Title:       req.Title,
		Description: req.Description,
		Kind:        req.Kind,
		Contact:     req.Contact,
		Status:      models.StatusPending,
	}
	if err := db.DB.Create(&resource).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to create resource", err)
		return
	}

	_ = h.notifications.CreateResourceCreatedNotification(user, resource.ID, resource.Title)

	OK(c, "Resource submitted for approval", gin.H{"resource": resource})
}

func (h *ResourceHandler) List(c *gin.Context) {
	user := CurrentUser(c)

	query := db.DB.Model(&models.Resource{}).Preload("Creator")

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

	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var resources []models.Resource
	if err := query.Order("created_at DESC").Limit(100).Find(&resources).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to load resources", err)
		return
	}
	fillResourceCounts(resources)

	OK(c, "", gin.H{"resources": resources})
}

func (h *ResourceHandler) Get(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var resource models.Resource
	if err := db.DB.Preload("Creator").First(&resource, id).Error; err != nil {
		Fail(c, http.StatusNotFound, "Resource not found")
		return
	}

	if resource.Status != models.StatusApproved {
		if user == nil || (user.ID != resource.CreatorID && !user.IsAdmin()) {
			Fail(c, http.StatusNotFound, "Resource not found")
			return
		}
	}

	resources := []models.Resource{resource}
	fillResourceCounts(resources)

	OK(c, "", gin.H{"resource": resources[0]})
}

func (h *ResourceHandler) Update(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var resource models.Resource
	if err := db.DB.First(&resource, id).Error; err != nil {
		Fail(c, http.StatusNotFound, "Resource not found")
		return
	}
	if resource.CreatorID != user.ID && !user.IsAdmin() {
		Fail(c, http.StatusForbidden, "You can only edit your own resources")
		return
	}

	var req CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "Title and kind are required")
		return
	}
	if req.Kind != models.ResourceKindOffer && req.Kind != models.ResourceKindRequest {
		Fail(c, http.StatusBadRequest, "kind must be offer or request")
		return
	}

	updates := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
		"kind":        req.Kind,
		"contact":     req.Contact,
		"status":      models.StatusPending,
	}
	if err := db.DB.Model(&resource).Updates(updates).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to update resource", err)
		return
	}

	OK(c, "Resource updated and resubmitted for approval", gin.H{"resource": resource})
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	var resource models.Resource
	if err := db.DB.First(&resource, id).Error; err != nil {
		Fail(c, http.StatusNotFound, "Resource not found")
		return
	}
	if resource.CreatorID != user.ID && !user.IsAdmin() {
		Fail(c, http.StatusForbidden, "You can only delete your own resources")
		return
	}

	if err := db.DB.Delete(&resource).Error; err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to delete resource", err)
		return
	}
	OK(c, "Resource deleted", nil)
}

func fillResourceCounts(resources []models.Resource) {
	for i := range resources {
		var comments int64
		db.DB.Model(&models.Comment{}).
			Where("item_type = ? AND item_id = ?", models.ItemTypeResource, resources[i].ID).
			Count(&comments)
		resources[i].CommentCount = int(comments)
	}
}
