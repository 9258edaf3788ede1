package services

import (
	"fmt"
	"log"
	"time"

	"submeet-api/config"
	"submeet-api/models"

	"gorm.io/gorm"
)

// NotificationService records in-app notifications and mirrors them to email
// on a best-effort basis. Email failures are logged and never surface to the
// caller.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) notify(userID int, title, message, notifType string, submissionID *int) {
	record := models.Notification{
		UserID:              userID,
		Title:               title,
		Message:             message,
		Type:                notifType,
		RelatedSubmissionID: submissionID,
		CreateAt:            time.Now(),
	}
	if err := s.db.Create(&record).Error; err != nil {
		log.Printf("notification: failed to record %q for user %d: %v", title, userID, err)
		return
	}

	var user models.User
	if err := s.db.Select("email").Where("user_id = ? AND delete_at IS NULL", userID).First(&user).Error; err != nil {
		return
	}
	body := fmt.Sprintf("<p>%s</p>", message)
	if err := config.SendMail([]string{user.Email}, title, body); err != nil {
		log.Printf("notification: email to %s skipped: %v", user.Email, err)
	}
}

// SubmissionReceived confirms a new submission to the writer.
func (s *NotificationService) SubmissionReceived(submission *models.Submission, publicationName string) {
	id := submission.SubmissionID
	s.notify(submission.UserID,
		"Submission received",
		fmt.Sprintf("Your submission %q to %s has been received and is pending review.", submission.Title, publicationName),
		"success", &id)
}

// SubmissionWithdrawn confirms a withdrawal to the writer.
func (s *NotificationService) SubmissionWithdrawn(submission *models.Submission) {
	id := submission.SubmissionID
	s.notify(submission.UserID,
		"Submission withdrawn",
		fmt.Sprintf("Your submission %q has been withdrawn.", submission.Title),
		"info", &id)
}

// ReviewAssigned tells a reader about a new assignment.
func (s *NotificationService) ReviewAssigned(readerID int, submission *models.Submission) {
	id := submission.SubmissionID
	s.notify(readerID,
		"New review assignment",
		fmt.Sprintf("You have been assigned to review %q.", submission.Title),
		"info", &id)
}

// DecisionRecorded tells the writer a decision was made on their work.
func (s *NotificationService) DecisionRecorded(submission *models.Submission) {
	id := submission.SubmissionID
	s.notify(submission.UserID,
		"Submission update",
		fmt.Sprintf("There is an update on your submission %q.", submission.Title),
		"info", &id)
}
