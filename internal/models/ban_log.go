package models

import (
	"time"
)

const (
	BanActionBan   = "ban"
	BanActionUnban = "unban"
)

// BanLog is an append-only audit trail of moderation ban toggles.
type BanLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AdminID   uint      `gorm:"not null;index" json:"admin_id"`
	Admin     User      `gorm:"foreignKey:AdminID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Action    string    `gorm:"size:10;not null" json:"action"` // ban, unban
	Reason    string    `gorm:"size:200" json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
