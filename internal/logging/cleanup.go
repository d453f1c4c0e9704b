package logging

import (
	"log/slog"
	"time"

	"github.com/ahmetcoskunkizilkaya/assessment-backend/internal/models"
	"gorm.io/gorm"
)

const LogRetention = 30 * 24 * time.Hour

// StartCleanup runs a daily goroutine that deletes system_logs older than
// LogRetention until done is closed.
func StartCleanup(db *gorm.DB, done chan struct{}) {
	go func() {
		ticker := time.NewTicker(24 * time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				deleted, err := PurgeBefore(db, time.Now().Add(-LogRetention))
				if err != nil {
					slog.Error("log cleanup failed", "action", "logs.cleanup", "error", err.Error())
				} else if deleted > 0 {
					slog.Info("log cleanup completed", "deleted", deleted)
				}
			case <-done:
				return
			}
		}
	}()
}

// PurgeBefore deletes system logs older than cutoff.
func PurgeBefore(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Where("timestamp < ?", cutoff).Delete(&models.SystemLog{})
	return result.RowsAffected, result.Error
}
