package handlers

import (
	"net/http"

	"commonground/internal/services"
	"commonground/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{
		notifications: services.NewNotificationService(),
	}
}

func (h *NotificationHandler) List(c *gin.Context) {
	user := CurrentUser(c)
	limit := utils.StringToInt(c.DefaultQuery("limit", "50"))

	notifications, err := h.notifications.GetByUser(user.ID, limit)
	if err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to load notifications", err)
		return
	}
	OK(c, "", gin.H{"notifications": notifications})
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	user := CurrentUser(c)

	count, err := h.notifications.UnreadCount(user.ID)
	if err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to count notifications", err)
		return
	}
	OK(c, "", gin.H{"unread_count": count})
}

func (h *NotificationHandler) Read(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	if err := h.notifications.MarkAsRead(id, user.ID); err != nil {
		Fail(c, http.StatusNotFound, "Notification not found")
		return
	}
	OK(c, "Notification marked as read", nil)
}

func (h *NotificationHandler) ReadAll(c *gin.Context) {
	user := CurrentUser(c)

	if err := h.notifications.MarkAllAsRead(user.ID); err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to mark notifications as read", err)
		return
	}
	OK(c, "All notifications marked as read", nil)
}

func (h *NotificationHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	id := utils.StringToUint(c.Param("id"))

	if err := h.notifications.Delete(id, user.ID); err != nil {
		Fail(c, http.StatusNotFound, "Notification not found")
		return
	}
	OK(c, "Notification deleted", nil)
}
