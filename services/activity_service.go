package services

import (
	"encoding/json"
	"log"
	"time"

	"submeet-api/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActivityService appends human-readable action records. Logging is
// best-effort: a failed insert is logged and never fails the request.
type ActivityService struct {
	db *gorm.DB
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{db: db}
}

// Log appends one activity entry with a free-form metadata payload.
func (s *ActivityService) Log(userID int, action string, metadata map[string]interface{}) {
	var payload datatypes.JSON
	if metadata != nil {
		raw, err := json.Marshal(metadata)
		if err != nil {
			log.Printf("activity: failed to encode metadata for %s: %v", action, err)
		} else {
			payload = datatypes.JSON(raw)
		}
	}

	entry := models.ActivityLog{
		UserID:   userID,
		Action:   action,
		Metadata: payload,
		CreateAt: time.Now(),
	}
	if err := s.db.Create(&entry).Error; err != nil {
		log.Printf("activity: failed to record %s for user %d: %v", action, userID, err)
	}
}

// Recent returns the newest entries for a user.
func (s *ActivityService) Recent(userID, limit int) ([]models.ActivityLog, error) {
	if limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	var entries []models.ActivityLog
	err := s.db.Where("user_id = ?", userID).
		Order("create_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}
