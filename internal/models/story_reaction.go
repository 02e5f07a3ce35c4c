package models

import (
	"time"
)

const (
	ReactionHeart   = "heart"
	ReactionClap    = "clap"
	ReactionInspire = "inspire"
)

// StoryReaction holds one user's reaction to one story. A second
// reaction from the same user replaces or removes the first.
type StoryReaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StoryID   uint      `gorm:"not null;index" json:"story_id"`
	Story     Story     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Reaction  string    `gorm:"size:20;not null" json:"reaction"` // heart, clap, inspire
	CreatedAt time.Time `json:"created_at"`
}

func ValidReaction(r string) bool {
	switch r {
	case ReactionHeart, ReactionClap, ReactionInspire:
		return true
	}
	return false
}
