package models

import (
	"time"
)

// ApprovalStatus is shared by every user-submitted item that passes
// through admin review.
type ApprovalStatus string

const (
	StatusPending  ApprovalStatus = "pending"
	StatusApproved ApprovalStatus = "approved"
	StatusRejected ApprovalStatus = "rejected"
)

// Action is a user-submitted real-world event with a time window and
// location, visible to the community once approved.
type Action struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	CreatorID   uint           `gorm:"not null;index" json:"creator_id"`
	Creator     User           `gorm:"foreignKey:CreatorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"creator"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Location    string         `gorm:"size:255" json:"location"`
	Latitude    *float64       `json:"latitude"`
	Longitude   *float64       `json:"longitude"`
	StartsAt    time.Time      `gorm:"not null;index" json:"starts_at"`
	EndsAt      time.Time      `gorm:"not null" json:"ends_at"`
	Status      ApprovalStatus `gorm:"size:20;default:'pending';not null;index" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`

	// Filled on queries, not stored
	ParticipantCount int `gorm:"-" json:"participant_count"`
	CommentCount     int `gorm:"-" json:"comment_count"`
}
