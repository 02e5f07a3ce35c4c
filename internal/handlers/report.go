package handlers

import (
	"errors"
	"net/http"

	"commonground/internal/models"
	"commonground/internal/services"
	"commonground/internal/utils"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler() *ReportHandler {
	return &ReportHandler{
		reports: services.NewReportService(),
	}
}

type CreateReportRequest struct {
	ReportedItemID   uint                  `json:"reported_item_id" binding:"required"`
	ReportedItemType models.ItemType       `json:"reported_item_type" binding:"required"`
	Category         models.ReportCategory `json:"report_category" binding:"required"`
	Reason           string                `json:"report_reason" binding:"required"`
}

// Create files a report. Category and item type come from closed
// enumerations; anything else is rejected before any write.
func (h *ReportHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, http.StatusBadRequest, "reported_item_id, reported_item_type, report_category and report_reason are required")
		return
	}
	if !models.ValidItemType(req.ReportedItemType) {
		Fail(c, http.StatusBadRequest, "reported_item_type must be one of action, resource, story, comment, user")
		return
	}
	if !models.ValidReportCategory(req.Category) {
		Fail(c, http.StatusBadRequest, "report_category must be one of scam, spam, inappropriate, fake, other")
		return
	}

	if _, _, found := lookupItem(req.ReportedItemType, req.ReportedItemID); !found {
		Fail(c, http.StatusNotFound, "The reported item does not exist")
		return
	}

	report, err := h.reports.Create(user.ID, req.ReportedItemID, req.ReportedItemType, req.Category, utils.SanitizeText(req.Reason))
	if err != nil {
		if errors.Is(err, services.ErrDuplicateReport) {
			FailSoft(c, "You have already reported this item")
			return
		}
		FailWithError(c, http.StatusInternalServerError, "Failed to submit report", err)
		return
	}

	OK(c, "Report submitted. Our moderators will review it shortly.", gin.H{"report": report})
}

func (h *ReportHandler) Mine(c *gin.Context) {
	user := CurrentUser(c)

	reports, err := h.reports.ByReporter(user.ID)
	if err != nil {
		FailWithError(c, http.StatusInternalServerError, "Failed to load reports", err)
		return
	}
	OK(c, "", gin.H{"reports": reports})
}
