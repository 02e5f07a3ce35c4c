package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"commonground/internal/db"
	"commonground/internal/middleware"
	"commonground/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB swaps the shared handle for an in-memory SQLite database.
func setupTestDB(t *testing.T) {
	t.Helper()
	database, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))
	db.DB = database
}

// newTestRouter builds an engine with the moderation and report routes
// registered behind the real auth middleware. The session lookup is
// replaced with a middleware that injects user directly.
func newTestRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if user != nil {
			c.Set(middleware.CheckUserKey, user)
		}
		c.Next()
	})

	actionHandler := NewActionHandler()
	storyHandler := NewStoryHandler()
	commentHandler := NewCommentHandler()
	reportHandler := NewReportHandler()
	moderationHandler := NewModerationHandler()

	api := r.Group("/api")

	api.GET("/actions", actionHandler.List)
	api.GET("/actions/:id", actionHandler.Get)
	api.GET("/stories/:id", storyHandler.Get)
	api.GET("/comments", commentHandler.List)

	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/actions", actionHandler.Create)
		authorized.POST("/actions/:id/join", actionHandler.Join)
		authorized.POST("/actions/:id/leave", actionHandler.Leave)
		authorized.POST("/stories/:id/react", storyHandler.React)
		authorized.POST("/comments", commentHandler.Create)
		authorized.POST("/comments/:id/flag", commentHandler.Flag)
		authorized.POST("/reports", reportHandler.Create)
		authorized.GET("/reports/mine", reportHandler.Mine)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/dashboard", moderationHandler.Dashboard)
		admin.GET("/reports", moderationHandler.ListReports)
		admin.GET("/reports/:id", moderationHandler.ReportDetails)
		admin.POST("/reports/:id/action", moderationHandler.TakeAction)
		admin.GET("/banned_users", moderationHandler.BannedUsers)
		admin.POST("/users/:id/unban", moderationHandler.UnbanUser)
		admin.POST("/review", moderationHandler.Review)
		admin.POST("/reminders/process", moderationHandler.ProcessReminders)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func createTestUser(t *testing.T, username, role string) *models.User {
	t.Helper()
	user := models.User{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "hashed",
		Role:     role,
	}
	require.NoError(t, db.DB.Create(&user).Error)
	return &user
}

func createTestAction(t *testing.T, creatorID uint, title string) *models.Action {
	t.Helper()
	action := models.Action{
		CreatorID: creatorID,
		Title:     title,
		StartsAt:  time.Now().Add(24 * time.Hour),
		EndsAt:    time.Now().Add(26 * time.Hour),
		Status:    models.StatusApproved,
	}
	require.NoError(t, db.DB.Create(&action).Error)
	return &action
}

func createTestStory(t *testing.T, authorID uint, title string, status models.ApprovalStatus) *models.Story {
	t.Helper()
	story := models.Story{
		AuthorID: authorID,
		Title:    title,
		Content:  "Once upon a time.",
		Status:   status,
	}
	require.NoError(t, db.DB.Create(&story).Error)
	return &story
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, code int) map[string]interface{} {
	t.Helper()
	require.Equal(t, code, w.Code, "body: %s", w.Body.String())
	return decodeBody(t, w)
}
