package handlers

import (
	"net/http"
	"testing"

	"commonground/internal/db"
	"commonground/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateReportEndpoint(t *testing.T) {
	setupTestDB(t)
	creator := createTestUser(t, "creator", models.RoleUser)
	reporter := createTestUser(t, "reporter", models.RoleUser)
	action := createTestAction(t, creator.ID, "Suspicious Event")

	r := newTestRouter(reporter)

	w := doJSON(t, r, "POST", "/api/reports", gin.H{
		"reported_item_id":   action.ID,
		"reported_item_type": "action",
		"report_category":    "scam",
		"report_reason":      "asks participants to wire money",
	})
	body := requireStatus(t, w, http.StatusOK)
	assert.Equal(t, true, body["success"])

	var report models.Report
	require.NoError(t, db.DB.First(&report).Error)
	assert.Equal(t, reporter.ID, report.ReporterID)
	assert.Equal(t, models.CategoryScam, report.Category)
	assert.Equal(t, models.ReportPending, report.Status)
}

func TestCreateReportRejectsBadEnums(t *testing.T) {
	setupTestDB(t)
	creator := createTestUser(t, "creator", models.RoleUser)
	reporter := createTestUser(t, "reporter", models.RoleUser)
	action := createTestAction(t, creator.ID, "Fine Event")

	r := newTestRouter(reporter)

	w := doJSON(t, r, "POST", "/api/reports", gin.H{
		"reported_item_id":   action.ID,
		"reported_item_type": "banana",
		"report_category":    "scam",
		"report_reason":      "x",
	})
	body := requireStatus(t, w, http.StatusBadRequest)
	assert.Equal(t, false, body["success"])

	w = doJSON(t, r, "POST", "/api/reports", gin.H{
		"reported_item_id":   action.ID,
		"reported_item_type": "action",
		"report_category":    "dislike",
		"report_reason":      "x",
	})
	requireStatus(t, w, http.StatusBadRequest)

	// Nothing was written
	var count int64
	db.DB.Model(&models.Report{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestCreateReportMissingItem(t *testing.T) {
	setupTestDB(t)
	reporter := createTestUser(t, "reporter", models.RoleUser)

	r := newTestRouter(reporter)

	w := doJSON(t, r, "POST", "/api/reports", gin.H{
		"reported_item_id":   9999,
		"reported_item_type": "story",
		"report_category":    "spam",
		"report_reason":      "x",
	})
	requireStatus(t, w, http.StatusNotFound)
}

func TestCreateReportDuplicateSoftFails(t *testing.T) {
	setupTestDB(t)
	creator := createTestUser(t, "creator", models.RoleUser)
	reporter := createTestUser(t, "reporter", models.RoleUser)
	action := createTestAction(t, creator.ID, "Spammy Event")

	r := newTestRouter(reporter)

	payload := gin.H{
		"reported_item_id":   action.ID,
		"reported_item_type": "action",
		"report_category":    "spam",
		"report_reason":      "spam",
	}
	requireStatus(t, doJSON(t, r, "POST", "/api/reports", payload), http.StatusOK)

	// Duplicate comes back HTTP 200 with success=false
	body := requireStatus(t, doJSON(t, r, "POST", "/api/reports", payload), http.StatusOK)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["message"], "already reported")

	var count int64
	db.DB.Model(&models.Report{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestMyReports(t *testing.T) {
	setupTestDB(t)
	creator := createTestUser(t, "creator", models.RoleUser)
	reporter := createTestUser(t, "reporter", models.RoleUser)
	other := createTestUser(t, "other", models.RoleUser)
	action := createTestAction(t, creator.ID, "Event")

	r := newTestRouter(reporter)
	requireStatus(t, doJSON(t, r, "POST", "/api/reports", gin.H{
		"reported_item_id":   action.ID,
		"reported_item_type": "action",
		"report_category":    "other",
		"report_reason":      "odd",
	}), http.StatusOK)

	otherRouter := newTestRouter(other)
	requireStatus(t, doJSON(t, otherRouter, "POST", "/api/reports", gin.H{
		"reported_item_id":   action.ID,
		"reported_item_type": "action",
		"report_category":    "spam",
		"report_reason":      "spam",
	}), http.StatusOK)

	body := requireStatus(t, doJSON(t, r, "GET", "/api/reports/mine", nil), http.StatusOK)
	reports := body["reports"].([]interface{})
	require.Len(t, reports, 1)
}

func TestReportsRequireAuth(t *testing.T) {
	setupTestDB(t)
	r := newTestRouter(nil)

	w := doJSON(t, r, "POST", "/api/reports", gin.H{})
	requireStatus(t, w, http.StatusUnauthorized)
}
