package handlers

import (
	"net/http"

	"commonground/internal/middleware"
	"commonground/internal/models"

	"github.com/gin-gonic/gin"
)

// OK writes the success envelope, merging any extra payload fields.
func OK(c *gin.Context, message string, extra gin.H) {
	body := gin.H{"success": true, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(http.StatusOK, body)
}

// Fail writes the failure envelope with the given HTTP status.
func Fail(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"success": false, "message": message})
}

// FailSoft writes a failure envelope with HTTP 200. A handful of
// endpoints report soft failures this way and clients handle both
// conventions.
func FailSoft(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"success": false, "message": message})
}

// FailWithError appends the underlying error text to the message.
func FailWithError(c *gin.Context, code int, message string, err error) {
	if err != nil {
		message = message + ": " + err.Error()
	}
	c.JSON(code, gin.H{"success": false, "message": message})
}

// CurrentUser returns the authenticated principal loaded by the
// middleware, or nil on public routes with no session.
func CurrentUser(c *gin.Context) *models.User {
	if user, exists := c.Get(middleware.CheckUserKey); exists {
		return user.(*models.User)
	}
	return nil
}
