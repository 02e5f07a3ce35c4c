package models

import (
	"time"
)

// ActionParticipant records one user having joined one action.
type ActionParticipant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ActionID  uint      `gorm:"not null;index" json:"action_id"`
	Action    Action    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"user"`
	CreatedAt time.Time `json:"created_at"`
}
