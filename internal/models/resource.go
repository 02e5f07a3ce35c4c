package models

import (
	"time"
)

const (
	ResourceKindOffer   = "offer"
	ResourceKindRequest = "request"
)

// Resource is a non-time-boxed offer or request submitted by a user.
type Resource struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatorID   uint           `gorm:"not null;index" json:"creator_id"`
	Creator     User           `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"creator"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Kind        string         `gorm:"size:20;not null;index" json:"kind"` // offer, request
	Contact     string         `gorm:"size:255" json:"contact"`
	Status      ApprovalStatus `gorm:"size:20;default:'pending';not null;index" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	CommentCount int `gorm:"-" json:"comment_count"`
}
