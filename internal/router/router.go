package router

import (
	"commonground/internal/handlers"
	"commonground/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	authHandler := handlers.NewAuthHandler()
	actionHandler := handlers.NewActionHandler()
	resourceHandler := handlers.NewResourceHandler()
	storyHandler := handlers.NewStoryHandler()
	commentHandler := handlers.NewCommentHandler()
	notificationHandler := handlers.NewNotificationHandler()
	reportHandler := handlers.NewReportHandler()
	reminderHandler := handlers.NewReminderHandler()
	moderationHandler := handlers.NewModerationHandler()

	api := r.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", authHandler.Me)

	api.GET("/actions", actionHandler.List)
	api.GET("/actions/:id", actionHandler.Get)
	api.GET("/actions/:id/participants", actionHandler.Participants)
	api.GET("/resources", resourceHandler.List)
	api.GET("/resources/:id", resourceHandler.Get)
	api.GET("/stories", storyHandler.List)
	api.GET("/stories/:id", storyHandler.Get)
	api.GET("/comments", commentHandler.List)

	// Authenticated routes
	authorized := api.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/actions", actionHandler.Create)
		authorized.PUT("/actions/:id", actionHandler.Update)
		authorized.DELETE("/actions/:id", actionHandler.Delete)
		authorized.POST("/actions/:id/join", actionHandler.Join)
		authorized.POST("/actions/:id/leave", actionHandler.Leave)

		authorized.POST("/resources", resourceHandler.Create)
		authorized.PUT("/resources/:id", resourceHandler.Update)
		authorized.DELETE("/resources/:id", resourceHandler.Delete)

		authorized.POST("/stories", storyHandler.Create)
		authorized.PUT("/stories/:id", storyHandler.Update)
		authorized.DELETE("/stories/:id", storyHandler.Delete)
		authorized.POST("/stories/:id/react", storyHandler.React)

		authorized.POST("/comments", commentHandler.Create)
		authorized.DELETE("/comments/:id", commentHandler.Delete)
		authorized.POST("/comments/:id/flag", commentHandler.Flag)

		authorized.GET("/notifications", notificationHandler.List)
		authorized.GET("/notifications/unread_count", notificationHandler.UnreadCount)
		authorized.POST("/notifications/:id/read", notificationHandler.Read)
		authorized.POST("/notifications/read_all", notificationHandler.ReadAll)
		authorized.DELETE("/notifications/:id", notificationHandler.Delete)

		authorized.POST("/reports", reportHandler.Create)
		authorized.GET("/reports/mine", reportHandler.Mine)

		authorized.POST("/reminders", reminderHandler.Create)
		authorized.GET("/reminders", reminderHandler.List)
		authorized.DELETE("/reminders/:id", reminderHandler.Delete)
	}

	// Admin routes
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
}
