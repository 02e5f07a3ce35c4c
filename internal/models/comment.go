package models

import (
	"time"
)

// Comment attaches to an action, resource or story through the same
// (item type, item id) pair the report table uses.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	ItemType  ItemType  `gorm:"size:20;not null;index:idx_comment_item" json:"item_type"`
	ItemID    uint      `gorm:"not null;index:idx_comment_item" json:"item_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Flagged   bool      `gorm:"default:false;index" json:"flagged"`
	CreatedAt time.Time `json:"created_at"`
}

// ValidCommentItemType reports whether t names something a comment can
// attach to. Users and comments themselves are reportable but not
// commentable.
func ValidCommentItemType(t ItemType) bool {
	switch t {
	case ItemTypeAction, ItemTypeResource, ItemTypeStory:
		return true
	}
	return false
}
