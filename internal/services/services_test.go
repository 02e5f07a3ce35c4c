package services

import (
	"fmt"
	"testing"
	"time"

	"commonground/internal/db"
	"commonground/internal/models"

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
