package models

import (
	"time"
)

// Reminder asks for a notification when RemindAt passes. The background
// scanner flips Sent exactly once per row.
type Reminder struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ActionID  uint      `gorm:"not null;index" json:"action_id"`
	Action    Action    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"action"`
	RemindAt  time.Time `gorm:"not null;index" json:"remind_at"`
	Sent      bool      `gorm:"default:false;index" json:"sent"`
	CreatedAt time.Time `json:"created_at"`
}
