package models

import (
	"time"
)

// Story is long-form narrative content. Content is stored as the raw
// markdown the author submitted; ContentHTML is the rendered and
// sanitized version served to clients.
type Story struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	Author      User           `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Title       string         `gorm:"not null" json:"title"`
	Content     string         `gorm:"type:text;not null" json:"content"`
	ContentHTML string         `gorm:"type:text" json:"content_html"`
	Status      ApprovalStatus `gorm:"size:20;default:'pending';not null;index" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	ReactionCount int `gorm:"-" json:"reaction_count"`
	CommentCount  int `gorm:"-" json:"comment_count"`
}
