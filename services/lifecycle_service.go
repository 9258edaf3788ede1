package services

import (
	"errors"
	"time"

	"submeet-api/models"
	"submeet-api/utils"

	"gorm.io/gorm"
)

// LifecycleService guards every submission state change: creation against the
// form's reading window and cap, withdrawal against ownership and current
// status, and editorial transitions against the lifecycle graph.
type LifecycleService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewLifecycleService(db *gorm.DB) *LifecycleService {
	return &LifecycleService{db: db, now: time.Now}
}

// DefaultWithdrawalReason is stored when the writer supplies none.
const DefaultWithdrawalReason = "Writer requested withdrawal"

// CreateSubmissionInput carries the writer-supplied submission fields.
type CreateSubmissionInput struct {
	FormID           int
	UserID           int
	Title            string
	Subtitle         *string
	Genre            *string
	WordCount        *int
	Language         string
	IsTranslation    bool
	OriginalLanguage *string
	TranslatorName   *string
	CoverLetter      *string
	AuthorBio        *string
}

// CheckCreateEligibility applies the creation preconditions to a loaded form.
// It is pure so the guard rules are testable without a database.
func CheckCreateEligibility(form *models.Form, now time.Time) error {
	if !form.IsActive {
		return &StateError{Reason: "Form is not accepting submissions"}
	}
	if form.ReadingPeriodStart != nil && now.Before(*form.ReadingPeriodStart) {
		return &StateError{Reason: "Reading period has not started"}
	}
	if form.ReadingPeriodEnd != nil && now.After(*form.ReadingPeriodEnd) {
		return &StateError{Reason: "Reading period has ended"}
	}
	if form.IsFull() {
		return &StateError{Reason: "Submission cap reached"}
	}
	return nil
}

// Create persists a new pending submission. The cap check and counter
// increment run as a single conditional UPDATE inside the transaction, so
// concurrent creations against a nearly-full form cannot both pass.
func (s *LifecycleService) Create(input CreateSubmissionInput) (*models.Submission, error) {
	if input.Title == "" || input.FormID == 0 {
		return nil, &ValidationError{Reason: "Missing required fields"}
	}

	var form models.Form
	if err := s.db.Where("form_id = ? AND delete_at IS NULL", input.FormID).First(&form).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	now := s.now()
	if err := CheckCreateEligibility(&form, now); err != nil {
		return nil, err
	}

	language := input.Language
	if language == "" {
		language = "English"
	}

	submission := models.Submission{
		FormID:           input.FormID,
		UserID:           input.UserID,
		Title:            input.Title,
		Subtitle:         input.Subtitle,
		Genre:            input.Genre,
		WordCount:        input.WordCount,
		Language:         language,
		IsTranslation:    input.IsTranslation,
		OriginalLanguage: input.OriginalLanguage,
		TranslatorName:   input.TranslatorName,
		CoverLetter:      input.CoverLetter,
		AuthorBio:        input.AuthorBio,
		Status:           utils.StatusPending,
		SubmittedAt:      now,
		CreateAt:         &now,
		UpdateAt:         &now,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Conditional compare-and-increment: zero rows means the form
		// filled (or closed) between the read and the write.
		result := tx.Exec(
			"UPDATE forms SET current_submission_count = current_submission_count + 1, update_at = ? "+
				"WHERE form_id = ? AND delete_at IS NULL AND is_active = ? "+
				"AND (submission_cap IS NULL OR current_submission_count < submission_cap)",
			now, input.FormID, true,
		)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return &StateError{Reason: "Submission cap reached"}
		}

		return tx.Create(&submission).Error
	})
	if err != nil {
		return nil, err
	}

	return &submission, nil
}

// Withdraw moves an owned pending/under-review submission to withdrawn,
// recording the reason and timestamp. Nothing is mutated on failure.
func (s *LifecycleService) Withdraw(submissionID, userID int, reason string) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.Where("submission_id = ? AND delete_at IS NULL", submissionID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if submission.UserID != userID {
		return nil, ErrNotOwner
	}
	if !utils.IsWithdrawable(submission.Status) {
		return nil, &StateError{Reason: "Cannot withdraw a submission that has already been decided"}
	}

	if reason == "" {
		reason = DefaultWithdrawalReason
	}

	now := s.now()
	updates := map[string]interface{}{
		"status":            utils.StatusWithdrawn,
		"withdrawal_reason": reason,
		"withdrawn_at":      now,
		"update_at":         now,
	}
	if err := s.db.Model(&models.Submission{}).
		Where("submission_id = ?", submissionID).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	submission.Status = utils.StatusWithdrawn
	submission.WithdrawalReason = &reason
	submission.WithdrawnAt = &now
	submission.UpdateAt = &now
	return &submission, nil
}

// ChangeStatus applies an editorial transition. Admin override skips the
// transition table but still refuses to touch withdrawn submissions.
func (s *LifecycleService) ChangeStatus(submissionID int, to string, override bool) (*models.Submission, error) {
	status, err := utils.NormalizeStatus(to)
	if err != nil {
		return nil, &ValidationError{Reason: err.Error()}
	}

	var submission models.Submission
	if err := s.db.Where("submission_id = ? AND delete_at IS NULL", submissionID).First(&submission).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if submission.Status == utils.StatusWithdrawn {
		return nil, &StateError{Reason: "Submission has been withdrawn"}
	}
	if !override && !utils.CanTransition(submission.Status, status) {
		return nil, &StateError{Reason: "Invalid status transition from " + submission.Status + " to " + status}
	}

	now := s.now()
	if err := s.db.Model(&models.Submission{}).
		Where("submission_id = ?", submissionID).
		Updates(map[string]interface{}{"status": status, "update_at": now}).Error; err != nil {
		return nil, err
	}

	submission.Status = status
	submission.UpdateAt = &now
	return &submission, nil
}
