package services

import (
	"math"
	"time"

	"submeet-api/models"
	"submeet-api/utils"

	"gorm.io/gorm"
)

// WriterStats is the writer dashboard summary, recomputed from the full
// submission collection on every request.
type WriterStats struct {
	ActiveSubmissions  int `json:"active_submissions"`
	TotalSubmissions   int `json:"total_submissions"`
	Accepted           int `json:"accepted"`
	AcceptanceRate     int `json:"acceptance_rate"`
	SubmittedThisMonth int `json:"submitted_this_month"`
	TotalWordCount     int `json:"total_word_count"`
}

// ComputeWriterStats scans a writer's submissions once. Acceptance rate is
// round(accepted/total*100) and defined as 0 for an empty collection.
func ComputeWriterStats(submissions []models.Submission, now time.Time) WriterStats {
	stats := WriterStats{TotalSubmissions: len(submissions)}

	for _, submission := range submissions {
		if utils.IsActiveStatus(submission.Status) {
			stats.ActiveSubmissions++
		}
		if submission.Status == utils.StatusAccepted {
			stats.Accepted++
		}
		if submission.SubmittedAt.Year() == now.Year() && submission.SubmittedAt.Month() == now.Month() {
			stats.SubmittedThisMonth++
		}
		if submission.WordCount != nil {
			stats.TotalWordCount += *submission.WordCount
		}
	}

	if stats.TotalSubmissions > 0 {
		rate := float64(stats.Accepted) / float64(stats.TotalSubmissions) * 100
		stats.AcceptanceRate = int(math.Round(rate))
	}
	return stats
}

// EditorStats summarizes one publication's queue for the editor dashboard.
type EditorStats struct {
	TotalSubmissions int64 `json:"total_submissions"`
	PendingReviews   int64 `json:"pending_reviews"`
	ActiveReaders    int64 `json:"active_readers"`
	RecentDecisions  int64 `json:"recent_decisions"`
}

type DashboardService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db, now: time.Now}
}

// EditorStats counts a publication's submissions, open review assignments,
// readers with open assignments, and decisions from the last 30 days.
func (s *DashboardService) EditorStats(publicationID int) (EditorStats, error) {
	var stats EditorStats

	if err := s.db.Table("submissions").
		Joins("JOIN forms ON forms.form_id = submissions.form_id").
		Where("forms.publication_id = ? AND submissions.delete_at IS NULL", publicationID).
		Count(&stats.TotalSubmissions).Error; err != nil {
		return stats, err
	}

	if err := s.db.Table("reviews").
		Where("publication_id = ? AND is_complete = ?", publicationID, false).
		Count(&stats.PendingReviews).Error; err != nil {
		return stats, err
	}

	if err := s.db.Table("reviews").
		Where("publication_id = ? AND is_complete = ?", publicationID, false).
		Distinct("user_id").
		Count(&stats.ActiveReaders).Error; err != nil {
		return stats, err
	}

	cutoff := s.now().AddDate(0, 0, -30)
	if err := s.db.Table("decisions").
		Joins("JOIN submissions ON submissions.submission_id = decisions.submission_id").
		Joins("JOIN forms ON forms.form_id = submissions.form_id").
		Where("forms.publication_id = ? AND decisions.create_at >= ?", publicationID, cutoff).
		Count(&stats.RecentDecisions).Error; err != nil {
		return stats, err
	}

	return stats, nil
}
