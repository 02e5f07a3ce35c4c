package handlers

import (
	"commonground/internal/db"
	"commonground/internal/models"
	"commonground/internal/utils"
)

// lookupItem resolves a polymorphic (item type, item id) reference to
// its owner and a display title. found is false when the row is gone.
func lookupItem(itemType models.ItemType, itemID uint) (ownerID uint, title string, found bool) {
	switch itemType {
	case models.ItemTypeAction:
		var action models.Action
		if err := db.DB.First(&action, itemID).Error; err != nil {
			return 0, "", false
		}
		return action.CreatorID, action.Title, true
	case models.ItemTypeResource:
		var resource models.Resource
		if err := db.DB.First(&resource, itemID).Error; err != nil {
			return 0, "", false
		}
		return resource.CreatorID, resource.Title, true
	case models.ItemTypeStory:
		var story models.Story
		if err := db.DB.First(&story, itemID).Error; err != nil {
			return 0, "", false
		}
		return story.AuthorID, story.Title, true
	case models.ItemTypeComment:
		var comment models.Comment
		if err := db.DB.First(&comment, itemID).Error; err != nil {
			return 0, "", false
		}
		return comment.UserID, utils.Excerpt(utils.ExtractText(comment.Content), 60), true
	case models.ItemTypeUser:
		var user models.User
		if err := db.DB.First(&user, itemID).Error; err != nil {
			return 0, "", false
		}
		return user.ID, user.Username, true
	}
	return 0, "", false
}

// fetchItemDetail loads the full row behind a polymorphic reference
// for the moderation detail view. An unknown type or a missing row
// yields nil, not an error.
func fetchItemDetail(itemType models.ItemType, itemID uint) interface{} {
	switch itemType {
	case models.ItemTypeAction:
		var action models.Action
		if err := db.DB.Preload("Creator").First(&action, itemID).Error; err != nil {
			return nil
		}
		return action
	case models.ItemTypeResource:
		var resource models.Resource
		if err := db.DB.Preload("Creator").First(&resource, itemID).Error; err != nil {
			return nil
		}
		return resource
	case models.ItemTypeStory:
		var story models.Story
		if err := db.DB.Preload("Author").First(&story, itemID).Error; err != nil {
			return nil
		}
		return story
	case models.ItemTypeComment:
		var comment models.Comment
		if err := db.DB.Preload("User").First(&comment, itemID).Error; err != nil {
			return nil
		}
		return comment
	case models.ItemTypeUser:
		var user models.User
		if err := db.DB.First(&user, itemID).Error; err != nil {
			return nil
		}
		return user
	}
	return nil
}
