package models

import (
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"not null" json:"username"`
	Email     string     `gorm:"uniqueIndex;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"` // Hash
	Avatar    string     `gorm:"size:255" json:"avatar"`
	Bio       string     `gorm:"size:200" json:"bio"`
	Role      string     `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	IsBanned  bool       `gorm:"default:false;index" json:"is_banned"`
	BanReason string     `gorm:"size:200" json:"ban_reason,omitempty"`
	BannedBy  *uint      `json:"banned_by,omitempty"` // admin who issued the ban
	BannedAt  *time.Time `json:"banned_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	// No DeletedAt for hard delete
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
