package models

import (
	"time"

	"gorm.io/datatypes"
)

// ActivityLog is an append-only record of user actions. Metadata is a
// free-form JSON payload used only to render human-readable descriptions.
type ActivityLog struct {
	ActivityID int            `gorm:"primaryKey;column:activity_id" json:"activity_id"`
	UserID     int            `gorm:"column:user_id" json:"user_id"`
	Action     string         `gorm:"column:action" json:"action"`
	Metadata   datatypes.JSON `gorm:"column:metadata;type:json" json:"metadata,omitempty"`
	CreateAt   time.Time      `gorm:"column:create_at" json:"created_at"`
}

// Activity action names.
const (
	ActivitySubmissionCreated   = "submission_created"
	ActivitySubmissionWithdrawn = "submission_withdrawn"
	ActivityStatusChanged       = "status_changed"
	ActivityFileUploaded        = "file_uploaded"
	ActivityReviewCompleted     = "review_completed"
	ActivityDecisionRecorded    = "decision_recorded"
	ActivityJournalBookmarked   = "journal_bookmarked"
)

func (ActivityLog) TableName() string { return "activity_logs" }
