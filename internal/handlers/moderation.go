package handlers

import (
	"errors"
	"net/http"
	"time"

	"commonground/internal/db"
	"commonground/internal/models"
	"commonground/internal/services"
	"commonground/internal/utils"

	"github.com/gin-gonic/gin"
)

const dashboardCacheKey = "moderation:dashboard"
const dashboardCacheTTL = 30 * time.Second

// ModerationHandler is the admin-only surface: the report queue, the
// closed take-action set, ban management and submission review. Route
// registration puts AdminRequired in front of every method here.
type ModerationHandler struct {
	reports       *services.ReportService
	notifications *services.NotificationService
}

func NewModerationHandler() *ModerationHandler {
	return &ModerationHandler{
		reports:       services.NewReportService(),
		notifications: services.NewNotificationService(),
	}
}

type reportedItemRow struct {
	ItemType    models.ItemType `json:"item_type"`
	ItemID      uint            `json:"item_id"`
	ReportCount int64           `json:"report_count"`
}

// Dashboard aggregates the moderation overview. Every metric is its
// own query, so the numbers can be momentarily inconsistent with each
// other under concurrent writes; the whole payload is cached briefly.
func (h *ModerationHandler) Dashboard(c *gin.Context) {
	if cached := utils.GetCache().Get(dashboardCacheKey); cached != nil {
		c.JSON(http.StatusOK, cached.(gin.H))
		return
	}

	stats, err := h.reports.Statistics()
	if err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to load dashboard", err)
		return
	}

	var pendingReports, flaggedComments, bannedUsers int64
	db.DB.Model(&models.Report{}).Where("status = ?", models.ReportPending).Count(&pendingReports)
	db.DB.Model(&models.Comment{}).Where("flagged = ?", true).Count(&flaggedComments)
	db.DB.Model(&models.User{}).Where("is_banned = ?", true).Count(&bannedUsers)

	// Top reported items by raw count; ties keep query order
	var mostReported []reportedItemRow
	db.DB.Model(&models.Report{}).
		Select("reported_item_type AS item_type, reported_item_id AS item_id, COUNT(*) AS report_count").
		Group("reported_item_type, reported_item_id").
		Order("report_count DESC").
		Limit(5).
		Scan(&mostReported)

	var storyTotal, storyPending, storyApproved int64
	db.DB.Model(&models.Story{}).Count(&storyTotal)
	db.DB.Model(&models.Story{}).Where("status = ?", models.StatusPending).Count(&storyPending)
	db.DB.Model(&models.Story{}).Where("status = ?", models.StatusApproved).Count(&storyApproved)

	body := gin.H{
		"success":           true,
		"message":           "",
		"report_statistics": stats,
		"pending_reports":   pendingReports,
		"flagged_comments":  flaggedComments,
		"most_reported":     mostReported,
		"banned_users":      bannedUsers,
		"stories": gin.H{
			"total":    storyTotal,
			"pending":  storyPending,
			"approved": storyApproved,
		},
	}
	utils.GetCache().Set(dashboardCacheKey, body, dashboardCacheTTL)
	c.JSON(http.StatusOK, body)
}

func (h *ModerationHandler) ListReports(c *gin.Context) {
	filter := services.ReportFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Limit:    utils.StringToInt(c.Query("limit")),
	}

	reports, err := h.reports.List(filter)
	if err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to load reports", err)
		return
	}
	OK(c, "", gin.H{"reports": reports})
}

// ReportDetails returns the report plus the full row of whatever it
// points at. A dangling or unknown reference yields a null item, not
// an error.
func (h *ModerationHandler) ReportDetails(c *gin.Context) {
	id := utils.StringToUint(c.Param("id"))

	report, err := h.reports.GetByID(id)
	if err != nil {
		Fail(c, http.StatusNotFound, "Report not found")
		return
	}

	OK(c, "", gin.H{
		"report": report,
		"item":   fetchItemDetail(report.ReportedItemType, report.ReportedItemID),
	})
}

type TakeActionRequest struct {
	Action     string `json:"action" binding:"required"`
	StoryID    *uint  `json:"story_id"`
	UserID     *uint  `json:"user_id"`
	BanReason  string `json:"ban_reason"`
	AdminNotes string `json:"admin_notes"`
}

// TakeAction executes one of the closed moderation actions against a
// report and closes it with the admin's note. The delete/ban/close
// steps run as independent writes in that order; a crash mid-sequence
// leaves the report open with the earlier steps already applied.
func (h *ModerationHandler) TakeAction(c *gin.Context) {
	admin := CurrentUser(c)
	reportID := utils.StringToUint(c.Param("id"))

	var req TakeActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "action is required")
		return
	}

	report, err := h.reports.GetByID(reportID)
	if err != nil {
		Fail(c, http.StatusNotFound, "Report not found")
		return
	}

	var finalStatus models.ReportStatus

	switch req.Action {
	case "dismiss":
		finalStatus = models.ReportDismissed

	case "reviewed":
		finalStatus = models.ReportReviewed

	case "delete_story":
		if req.StoryID == nil {
			Fail(c, http.StatusBadRequest, "delete_story requires story_id")
			return
		}
		var story models.Story
		if err := db.DB.Preload("Author").First(&story, *req.StoryID).Error; err != nil {
			Fail(c, http.StatusNotFound, "Story not found")
			return
		}
		_ = h.notifications.CreateContentRemovedNotification(&story.Author, models.ItemTypeStory, story.Title)
		if err := db.DB.Delete(&story).Error; err != nil {
			FailWithError(c, http.StatusInternalServerError, "Failed to delete story", err)
			return
		}
		finalStatus = models.ReportActionTaken

	case "ban_user":
		if req.UserID == nil {
			Fail(c, http.StatusBadRequest, "ban_user requires user_id")
			return
		}
		if err := h.reports.BanUser(*req.UserID, admin.ID, req.BanReason); err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				Fail(c, http.StatusNotFound, "User not found")
				return
			}
			FailWithError(c, http.StatusInternalServerError, "Failed to ban user", err)
			return
		}
		finalStatus = models.ReportActionTaken

	case "delete_and_ban":
		if req.UserID == nil {
			Fail(c, http.StatusBadRequest, "delete_and_ban requires user_id")
			return
		}
		if err := h.deleteReportedItem(report); err != nil {
			FailWithError(c, http.StatusInternalServerError, "Failed to delete reported item", err)
			return
		}
		if err := h.reports.BanUser(*req.UserID, admin.ID, req.BanReason); err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				Fail(c, http.StatusNotFound, "User not found")
				return
			}
			FailWithError(c, http.StatusInternalServerError, "Failed to ban user", err)
			return
		}
		finalStatus = models.ReportActionTaken

	default:
		Fail(c, http.StatusBadRequest, "Unknown action")
		return
	}

	notes := req.AdminNotes
	if err := h.reports.UpdateStatus(report.ID, &finalStatus, &notes); err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to close report", err)
		return
	}

	OK(c, "Action applied", gin.H{"status": finalStatus})
}

// deleteReportedItem removes whatever content a report points at and
// notifies its creator. A user target is handled by the ban step, not
// here; a row that is already gone is not an error.
func (h *ModerationHandler) deleteReportedItem(report *models.Report) error {
	ownerID, title, found := lookupItem(report.ReportedItemType, report.ReportedItemID)
	if !found || report.ReportedItemType == models.ItemTypeUser {
		return nil
	}

	var err error
	switch report.ReportedItemType {
	case models.ItemTypeAction:
		err = db.DB.Delete(&models.Action{}, report.ReportedItemID).Error
	case models.ItemTypeResource:
		err = db.DB.Delete(&models.Resource{}, report.ReportedItemID).Error
	case models.ItemTypeStory:
		err = db.DB.Delete(&models.Story{}, report.ReportedItemID).Error
	case models.ItemTypeComment:
		err = db.DB.Delete(&models.Comment{}, report.ReportedItemID).Error
	}
	if err != nil {
		return err
	}

	var owner models.User
	if dbErr := db.DB.First(&owner, ownerID).Error; dbErr == nil {
		_ = h.notifications.CreateContentRemovedNotification(&owner, report.ReportedItemType, title)
	}
	return nil
}

func (h *ModerationHandler) BannedUsers(c *gin.Context) {
	users, err := h.reports.BannedUsers()
	if err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to load banned users", err)
		return
	}
	OK(c, "", gin.H{"banned_users": users})
}

func (h *ModerationHandler) UnbanUser(c *gin.Context) {
	admin := CurrentUser(c)
	userID := utils.StringToUint(c.Param("id"))

	if err := h.reports.UnbanUser(userID, admin.ID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			Fail(c, http.StatusNotFound, "User not found")
			return
		}
		FailWithError(c, http.StatusInternalServerError, "Failed to unban user", err)
		return
	}
	OK(c, "User unbanned", nil)
}

type ReviewRequest struct {
	ItemType models.ItemType `json:"item_type" binding:"required"`
	ItemID   uint            `json:"item_id" binding:"required"`
	Decision string          `json:"decision" binding:"required"`
}

// Review approves or rejects a pending submission and notifies its
// creator.
func (h *ModerationHandler) Review(c *gin.Context) {
	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "item_type, item_id and decision are required")
		return
	}

	var status models.ApprovalStatus
	switch req.Decision {
	case "approved":
		status = models.StatusApproved
	case "rejected":
		status = models.StatusRejected
	default:
		Fail(c, http.StatusBadRequest, "decision must be approved or rejected")
		return
	}

	switch req.ItemType {
	case models.ItemTypeAction:
		var action models.Action
		if err := db.DB.Preload("Creator").First(&action, req.ItemID).Error; err != nil {
			Fail(c, http.StatusNotFound, "Action not found")
			return
		}
		if err := db.DB.Model(&action).Update("status", status).Error; err != nil {
			FailWithError(c, http.StatusInternalServerError, "Failed to update action", err)
			return
		}
		if status == models.StatusApproved {
			_ = h.notifications.CreateActionApprovedNotification(&action.Creator, action.ID, action.Title)
		} else {
			_ = h.notifications.CreateActionRejectedNotification(&action.Creator, action.ID, action.Title)
		}

	case models.ItemTypeResource:
		var resource models.Resource
		if err := db.DB.Preload("Creator").First(&resource, req.ItemID).Error; err != nil {
			Fail(c, http.StatusNotFound, "Resource not found")
			return
		}
		if err := db.DB.Model(&resource).Update("status", status).Error; err != nil {
			FailWithError(c, http.StatusInternalServerError, "Failed to update resource", err)
			return
		}
		if status == models.StatusApproved {
			_ = h.notifications.CreateResourceApprovedNotification(&resource.Creator, resource.ID, resource.Title)
		} else {
			_ = h.notifications.CreateResourceRejectedNotification(&resource.Creator, resource.ID, resource.Title)
		}

	case models.ItemTypeStory:
		var story models.Story
		if err := db.DB.Preload("Author").First(&story, req.ItemID).Error; err != nil {
			Fail(c, http.StatusNotFound, "Story not found")
			return
		}
		if err := db.DB.Model(&story).Update("status", status).Error; err != nil {
			FailWithError(c, http.StatusInternalServerError, "Failed to update story", err)
			return
		}
		if status == models.StatusApproved {
			_ = h.notifications.CreateStoryApprovedNotification(&story.Author, story.ID, story.Title)
		} else {
			_ = h.notifications.CreateStoryRejectedNotification(&story.Author, story.ID, story.Title)
		}

	default:
		Fail(c, http.StatusBadRequest, "item_type must be one of action, resource, story")
		return
	}

	OK(c, "Review recorded", gin.H{"status": status})
}

// ProcessReminders triggers a due-reminder scan for external cron
// setups that prefer an HTTP hook over the built-in scheduler.
func (h *ModerationHandler) ProcessReminders(c *gin.Context) {
	n, err := services.GetReminderService().ProcessDueReminders()
	if err != nil {
		FailWithError(c, http.StatusInternalServerError, "Reminder scan failed", err)
		return
	}
	OK(c, "Reminder scan complete", gin.H{"processed": n})
}
