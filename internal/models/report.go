package models

import (
	"time"
)

// ItemType tags the polymorphic (item type, item id) reference used by
// reports and comments instead of typed foreign keys.
type ItemType string

const (
	ItemTypeAction   ItemType = "action"
	ItemTypeResource ItemType = "resource"
	ItemTypeStory    ItemType = "story"
	ItemTypeComment  ItemType = "comment"
	ItemTypeUser     ItemType = "user"
)

func ValidItemType(t ItemType) bool {
	switch t {
	case ItemTypeAction, ItemTypeResource, ItemTypeStory, ItemTypeComment, ItemTypeUser:
		return true
	}
	return false
}

type ReportCategory string

const (
	CategoryScam          ReportCategory = "scam"
	CategorySpam          ReportCategory = "spam"
	CategoryInappropriate ReportCategory = "inappropriate"
	CategoryFake          ReportCategory = "fake"
	CategoryOther         ReportCategory = "other"
)

func ValidReportCategory(c ReportCategory) bool {
	switch c {
	case CategoryScam, CategorySpam, CategoryInappropriate, CategoryFake, CategoryOther:
		return true
	}
	return false
}

type ReportStatus string

const (
	ReportPending     ReportStatus = "pending"
	ReportReviewed    ReportStatus = "reviewed"
	ReportDismissed   ReportStatus = "dismissed"
	ReportActionTaken ReportStatus = "action_taken"
)

func ValidReportStatus(s ReportStatus) bool {
	switch s {
	case ReportPending, ReportReviewed, ReportDismissed, ReportActionTaken:
		return true
	}
	return false
}

// Report is a user complaint against a content item or another user.
// At most one report per (reporter, item, type) tuple; the check is
// read-then-write, not a unique index.
type Report struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	ReporterID       uint           `gorm:"not null;index" json:"reporter_id"`
	Reporter         User           `gorm:"foreignKey:ReporterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"reporter"`
	ReportedItemID   uint           `gorm:"not null;index:idx_report_item" json:"reported_item_id"`
	ReportedItemType ItemType       `gorm:"size:20;not null;index:idx_report_item" json:"reported_item_type"`
	Category         ReportCategory `gorm:"size:20;not null" json:"report_category"`
	Reason           string         `gorm:"size:500;not null" json:"report_reason"`
	Status           ReportStatus   `gorm:"size:20;default:'pending';not null;index" json:"status"`
	AdminNotes       string         `gorm:"size:500" json:"admin_notes"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}
