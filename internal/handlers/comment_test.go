package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"commonground/internal/db"
	"commonground/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCommentNotifiesOwner(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author", models.RoleUser)
	visitor := createTestUser(t, "visitor", models.RoleUser)
	story := createTestStory(t, author.ID, "A Story", models.StatusApproved)

	r := newTestRouter(visitor)
	requireStatus(t, doJSON(t, r, "POST", "/api/comments", gin.H{
		"item_type": "story",
		"item_id":   story.ID,
		"content":   "Lovely read.",
	}), http.StatusOK)

	var count int64
	db.DB.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", author.ID, models.NotificationStoryComment).Count(&count)
	assert.EqualValues(t, 1, count)

	// Commenting on your own item stays quiet
	authorRouter := newTestRouter(author)
	requireStatus(t, doJSON(t, authorRouter, "POST", "/api/comments", gin.H{
		"item_type": "story",
		"item_id":   story.ID,
		"content":   "Thanks everyone.",
	}), http.StatusOK)

	db.DB.Model(&models.Notification{}).Where("user_id = ?", author.ID).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestCreateCommentValidation(t *testing.T) {
	setupTestDB(t)
	visitor := createTestUser(t, "visitor", models.RoleUser)

	r := newTestRouter(visitor)

	// Comments cannot target users or other comments
	requireStatus(t, doJSON(t, r, "POST", "/api/comments", gin.H{
		"item_type": "user",
		"item_id":   visitor.ID,
		"content":   "hi",
	}), http.StatusBadRequest)

	// Missing target 404s before any write
	requireStatus(t, doJSON(t, r, "POST", "/api/comments", gin.H{
		"item_type": "story",
		"item_id":   9999,
		"content":   "hello?",
	}), http.StatusNotFound)

	var count int64
	db.DB.Model(&models.Comment{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestListComments(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author", models.RoleUser)
	visitor := createTestUser(t, "visitor", models.RoleUser)
	story := createTestStory(t, author.ID, "A Story", models.StatusApproved)

	r := newTestRouter(visitor)
	for _, text := range []string{"first", "second"} {
		requireStatus(t, doJSON(t, r, "POST", "/api/comments", gin.H{
			"item_type": "story",
			"item_id":   story.ID,
			"content":   text,
		}), http.StatusOK)
	}

	public := newTestRouter(nil)
	body := requireStatus(t, doJSON(t, public, "GET",
		fmt.Sprintf("/api/comments?item_type=story&item_id=%d", story.ID), nil), http.StatusOK)
	comments := body["comments"].([]interface{})
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].(map[string]interface{})["content"])

	requireStatus(t, doJSON(t, public, "GET", "/api/comments?item_type=story", nil), http.StatusBadRequest)
}

func TestFlagCommentIsIdempotent(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author", models.RoleUser)
	visitor := createTestUser(t, "visitor", models.RoleUser)
	story := createTestStory(t, author.ID, "A Story", models.StatusApproved)

	comment := models.Comment{
		UserID:   author.ID,
		ItemType: models.ItemTypeStory,
		ItemID:   story.ID,
		Content:  "rude remark",
	}
	require.NoError(t, db.DB.Create(&comment).Error)

	r := newTestRouter(visitor)
	path := fmt.Sprintf("/api/comments/%d/flag", comment.ID)
	requireStatus(t, doJSON(t, r, "POST", path, nil), http.StatusOK)
	requireStatus(t, doJSON(t, r, "POST", path, nil), http.StatusOK)

	var loaded models.Comment
	require.NoError(t, db.DB.First(&loaded, comment.ID).Error)
	assert.True(t, loaded.Flagged)
}

func TestStoryReactionToggle(t *testing.T) {
	setupTestDB(t)
	author := createTestUser(t, "author", models.RoleUser)
	reader := createTestUser(t, "reader", models.RoleUser)
	story := createTestStory(t, author.ID, "A Story", models.StatusApproved)

	r := newTestRouter(reader)
	path := fmt.Sprintf("/api/stories/%d/react", story.ID)

	requireStatus(t, doJSON(t, r, "POST", path, gin.H{"reaction": "heart"}), http.StatusOK)

	var count int64
	db.DB.Model(&models.StoryReaction{}).Where("story_id = ?", story.ID).Count(&count)
	assert.EqualValues(t, 1, count)

	// A different reaction replaces, not duplicates
	requireStatus(t, doJSON(t, r, "POST", path, gin.H{"reaction": "clap"}), http.StatusOK)
	var reaction models.StoryReaction
	require.NoError(t, db.DB.Where("story_id = ? AND user_id = ?", story.ID, reader.ID).First(&reaction).Error)
	assert.Equal(t, "clap", reaction.Reaction)

	// The same reaction again removes it
	requireStatus(t, doJSON(t, r, "POST", path, gin.H{"reaction": "clap"}), http.StatusOK)
	db.DB.Model(&models.StoryReaction{}).Where("story_id = ?", story.ID).Count(&count)
	assert.EqualValues(t, 0, count)

	requireStatus(t, doJSON(t, r, "POST", path, gin.H{"reaction": "meh"}), http.StatusBadRequest)
}
