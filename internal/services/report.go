package services

import (
	"errors"
	"time"

	"commonground/internal/db"
	"commonground/internal/models"

	"gorm.io/gorm"
)

var (
	ErrDuplicateReport = errors.New("you have already reported this item")
	ErrReportNotFound  = errors.New("report not found")
	ErrUserNotFound    = errors.New("user not found")
)

// ReportService owns the report lifecycle: intake with duplicate
// rejection and admin fan-out, admin status transitions, and the ban
// toggles the moderation workflow uses.
type ReportService struct {
	notifications *NotificationService
}

func NewReportService() *ReportService {
	return &ReportService{
		notifications: NewNotificationService(),
	}
}

// Create inserts a pending report and notifies every admin. Duplicate
// detection is a read-then-write check on the (reporter, item, type)
// tuple; two concurrent identical submissions can race past it.
func (s *ReportService) Create(reporterID, itemID uint, itemType models.ItemType, category models.ReportCategory, reason string) (*models.Report, error) {
	var existing models.Report
	err := db.DB.Where("reporter_id = ? AND reported_item_id = ? AND reported_item_type = ?",
		reporterID, itemID, itemType).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateReport
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	report := models.Report{
		ReporterID:       reporterID,
		ReportedItemID:   itemID,
		ReportedItemType: itemType,
		Category:         category,
		Reason:           reason,
		Status:           models.ReportPending,
	}
	if err := db.DB.Create(&report).Error; err != nil {
		return nil, err
	}

	var reporter models.User
	if err := db.DB.First(&reporter, reporterID).Error; err == nil {
		_ = s.notifications.CreateReportCreatedNotifications(&report, reporter.Username)
	}

	return &report, nil
}

// ReportFilter narrows admin report listings. Zero values mean "any".
type ReportFilter struct {
	Status   string
	Category string
	Search   string
	Limit    int
}

// List returns reports with the reporter preloaded, newest first.
// Search matches reporter name, category and reason as substrings.
func (s *ReportService) List(f ReportFilter) ([]models.Report, error) {
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := db.DB.Model(&models.Report{}).Preload("Reporter").
		Joins("JOIN users ON users.id = reports.reporter_id")

	if f.Status != "" {
		query = query.Where("reports.status = ?", f.Status)
	}
	if f.Category != "" {
		query = query.Where("reports.category = ?", f.Category)
	}
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		query = query.Where(
			"users.username LIKE ? OR reports.category LIKE ? OR reports.reason LIKE ?",
			pattern, pattern, pattern)
	}

	var reports []models.Report
	err := query.Order("reports.created_at DESC").Limit(limit).Find(&reports).Error
	return reports, err
}

func (s *ReportService) GetByID(id uint) (*models.Report, error) {
	var report models.Report
	if err := db.DB.Preload("Reporter").First(&report, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (s *ReportService) ByReporter(reporterID uint) ([]models.Report, error) {
	var reports []models.Report
	err := db.DB.Preload("Reporter").
		Where("reporter_id = ?", reporterID).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

func (s *ReportService) ByItem(itemID uint, itemType models.ItemType) ([]models.Report, error) {
	var reports []models.Report
	err := db.DB.Preload("Reporter").
		Where("reported_item_id = ? AND reported_item_type = ?", itemID, itemType).
		Order("created_at DESC").
		Find(&reports).Error
	return reports, err
}

// UpdateStatus applies whichever of status/adminNotes is non-nil. When
// the status actually changes, the original reporter is notified.
func (s *ReportService) UpdateStatus(id uint, status *models.ReportStatus, adminNotes *string) error {
	report, err := s.GetByID(id)
	if err != nil {
		return err
	}

	updates := make(map[string]interface{})
	statusChanged := false
	if status != nil && *status != report.Status {
		if !models.ValidReportStatus(*status) {
			return errors.New("invalid report status")
		}
		updates["status"] = *status
		statusChanged = true
	}
	if adminNotes != nil {
		updates["admin_notes"] = *adminNotes
	}
	if len(updates) == 0 {
		return nil
	}

	if err := db.DB.Model(report).Updates(updates).Error; err != nil {
		return err
	}

	if statusChanged {
		_ = s.notifications.CreateReportStatusChangedNotification(&report.Reporter, report.ID, *status)
	}
	return nil
}

func (s *ReportService) Delete(id uint) error {
	res := db.DB.Delete(&models.Report{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrReportNotFound
	}
	return nil
}

// BanUser flags a user as banned with admin attribution and appends a
// ban log entry. Banning an already-banned user re-records the reason
// without erroring.
func (s *ReportService) BanUser(userID, adminID uint, reason string) error {
	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	now := time.Now()
	if err := db.DB.Model(&user).Updates(map[string]interface{}{
		"is_banned":  true,
		"ban_reason": reason,
		"banned_by":  adminID,
		"banned_at":  &now,
	}).Error; err != nil {
		return err
	}

	banLog := models.BanLog{
		UserID:  userID,
		AdminID: adminID,
		Action:  models.BanActionBan,
		Reason:  reason,
	}
	if err := db.DB.Create(&banLog).Error; err != nil {
		return err
	}

	_ = s.notifications.CreateAccountBannedNotification(&user, reason)
	return nil
}

// UnbanUser clears the ban state. Unbanning a non-banned user is a
// successful no-op write.
func (s *ReportService) UnbanUser(userID, adminID uint) error {
	var user models.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := db.DB.Model(&user).Updates(map[string]interface{}{
		"is_banned":  false,
		"ban_reason": "",
		"banned_by":  nil,
		"banned_at":  nil,
	}).Error; err != nil {
		return err
	}

	banLog := models.BanLog{
		UserID:  userID,
		AdminID: adminID,
		Action:  models.BanActionUnban,
	}
	return db.DB.Create(&banLog).Error
}

func (s *ReportService) BannedUsers() ([]models.User, error) {
	var users []models.User
	err := db.DB.Where("is_banned = ?", true).Order("banned_at DESC").Find(&users).Error
	return users, err
}

// ReportStatistics aggregates counts for the moderation dashboard.
type ReportStatistics struct {
	ByCategory map[string]int64 `json:"by_category"`
	ByStatus   map[string]int64 `json:"by_status"`
	Total      int64            `json:"total"`
}

type statBucket struct {
	Name  string
	Total int64
}

// Statistics groups report counts by category and by status. Each
// metric is an independent query; counts can drift apart under
// concurrent writes.
func (s *ReportService) Statistics() (*ReportStatistics, error) {
	stats := &ReportStatistics{
		ByCategory: make(map[string]int64),
		ByStatus:   make(map[string]int64),
	}

	var buckets []statBucket
	if err := db.DB.Model(&models.Report{}).
		Select("category AS name, COUNT(*) AS total").
		Group("category").Scan(&buckets).Error; err != nil {
		return nil, err
	}
	for _, b := range buckets {
		stats.ByCategory[b.Name] = b.Total
	}

	buckets = buckets[:0]
	if err := db.DB.Model(&models.Report{}).
		Select("status AS name, COUNT(*) AS total").
		Group("status").Scan(&buckets).Error; err != nil {
		return nil, err
	}
	for _, b := range buckets {
		stats.ByStatus[b.Name] = b.Total
	}

	if err := db.DB.Model(&models.Report{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	return stats, nil
}
