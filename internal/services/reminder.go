package services

import (
	"log"
	"sync"
	"time"

	"commonground/internal/db"
	"commonground/internal/models"
)

// ReminderService scans for due reminders and turns each one into a
// notification. The scan runs on a background ticker and can also be
// triggered by the admin endpoint for external cron setups.
type ReminderService struct {
	notifications *NotificationService
	stop          chan struct{}
}

var (
	reminderService *ReminderService
	reminderOnce    sync.Once
)

// GetReminderService returns the singleton reminder service.
func GetReminderService() *ReminderService {
	reminderOnce.Do(func() {
		reminderService = &ReminderService{
			notifications: NewNotificationService(),
			stop:          make(chan struct{}),
		}
	})
	return reminderService
}

// ProcessDueReminders delivers every unsent reminder whose time has
// passed and marks it sent. Returns the number processed. A reminder
// whose notification write fails stays unsent and is retried on the
// next scan.
func (s *ReminderService) ProcessDueReminders() (int, error) {
	var due []models.Reminder
	if err := db.DB.Preload("User").Preload("Action").
		Where("sent = ? AND remind_at <= ?", false, time.Now()).
		Find(&due).Error; err != nil {
		return 0, err
	}

	processed := 0
	for i := range due {
		r := &due[i]
		if err := s.notifications.CreateReminderNotification(&r.User, r.ActionID, r.Action.Title, r.Action.StartsAt); err != nil {
			log.Printf("Failed to deliver reminder %d: %v", r.ID, err)
			continue
		}
		if err := db.DB.Model(r).Update("sent", true).Error; err != nil {
			log.Printf("Failed to mark reminder %d sent: %v", r.ID, err)
			continue
		}
		processed++
	}
	return processed, nil
}

// StartScheduler launches the background scan loop.
func (s *ReminderService) StartScheduler(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				n, err := s.ProcessDueReminders()
				if err != nil {
					log.Printf("Reminder scan failed: %v", err)
				} else if n > 0 {
					log.Printf("Delivered %d due reminders", n)
				}
			case <-s.stop:
				return
			}
		}
	}()
}

// StopScheduler halts the background loop.
func (s *ReminderService) StopScheduler() {
	close(s.stop)
}
