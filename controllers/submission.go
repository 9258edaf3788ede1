// controllers/submission.go
package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"submeet-api/config"
	"submeet-api/models"
	"submeet-api/services"
	"submeet-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ===================== SUBMISSION MANAGEMENT =====================

type CreateSubmissionRequest struct {
	FormID           int     `json:"form_id" binding:"required"`
	Title            string  `json:"title" binding:"required"`
	Subtitle         *string `json:"subtitle"`
	Genre            *string `json:"genre"`
	WordCount        *int    `json:"word_count"`
	Language         string  `json:"language"`
	IsTranslation    bool    `json:"is_translation"`
	OriginalLanguage *string `json:"original_language"`
	TranslatorName   *string `json:"translator_name"`
	CoverLetter      *string `json:"cover_letter"`
	AuthorBio        *string `json:"author_bio"`
}

// CreateSubmission creates a new pending submission against a form
func CreateSubmission(c *gin.Context) {
	userID := currentUserID(c)

	var req CreateSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	lifecycle := services.NewLifecycleService(config.DB)
	submission, err := lifecycle.Create(services.CreateSubmissionInput{
		FormID:           req.FormID,
		UserID:           userID,
		Title:            utils.SanitizeInput(req.Title),
		Subtitle:         req.Subtitle,
		Genre:            req.Genre,
		WordCount:        req.WordCount,
		Language:         req.Language,
		IsTranslation:    req.IsTranslation,
		OriginalLanguage: req.OriginalLanguage,
		TranslatorName:   req.TranslatorName,
		CoverLetter:      req.CoverLetter,
		AuthorBio:        req.AuthorBio,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	publicationName := ""
	var form models.Form
	if err := config.DB.Preload("Publication").
		Where("form_id = ?", submission.FormID).
		First(&form).Error; err == nil && form.Publication != nil {
		publicationName = form.Publication.Name
	}

	services.NewActivityService(config.DB).Log(userID, models.ActivitySubmissionCreated, map[string]interface{}{
		"submission_id": submission.SubmissionID,
		"title":         submission.Title,
		"publication":   publicationName,
	})
	services.NewNotificationService(config.DB).SubmissionReceived(submission, publicationName)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"submission": gin.H{
			"id":           submission.SubmissionID,
			"title":        submission.Title,
			"status":       submission.Status,
			"submitted_at": submission.SubmittedAt,
			"publication":  publicationName,
		},
	})
}

// GetSubmissions returns the caller's submissions filtered and sorted by the
// query parameters
func GetSubmissions(c *gin.Context) {
	userID := currentUserID(c)

	var submissions []models.Submission
	if err := config.DB.Preload("User").
		Preload("Form.Publication").
		Where("user_id = ? AND delete_at IS NULL", userID).
		Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	query, filterCfg, sortCfg, err := parseListParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	views := buildSubmissionViews(submissions)
	views = utils.FilterSubmissions(views, query, filterCfg)
	views = utils.SortSubmissions(views, sortCfg)

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"submissions": views,
		"total":       len(views),
		"sort":        gin.H{"key": sortCfg.Key, "direction": sortCfg.Direction},
	})
}

// GetSubmission returns one owned submission with files, reviews and decision
func GetSubmission(c *gin.Context) {
	userID := currentUserID(c)
	submissionID := c.Param("id")

	var submission models.Submission
	err := config.DB.
		Preload("Form.Publication.Organization").
		Preload("Files", func(db *gorm.DB) *gorm.DB {
			return db.Order("uploaded_at DESC")
		}).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_complete = ?", true).Order("completed_at DESC")
		}).
		Preload("Reviews.User", func(db *gorm.DB) *gorm.DB {
			return db.Select("user_id", "name")
		}).
		Preload("Decision").
		Where("submission_id = ? AND user_id = ? AND delete_at IS NULL", submissionID, userID).
		First(&submission).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"submission": submission,
	})
}

type WithdrawRequest struct {
	Reason string `json:"reason"`
}

// WithdrawSubmission withdraws an owned pending/under-review submission
func WithdrawSubmission(c *gin.Context) {
	userID := currentUserID(c)
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	var req WithdrawRequest
	_ = c.ShouldBindJSON(&req) // body is optional

	lifecycle := services.NewLifecycleService(config.DB)
	submission, err := lifecycle.Withdraw(submissionID, userID, utils.SanitizeInput(req.Reason))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.NewActivityService(config.DB).Log(userID, models.ActivitySubmissionWithdrawn, map[string]interface{}{
		"submission_id": submission.SubmissionID,
		"title":         submission.Title,
		"reason":        submission.WithdrawalReason,
	})
	services.NewNotificationService(config.DB).SubmissionWithdrawn(submission)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"submission": gin.H{
			"id":                submission.SubmissionID,
			"status":            submission.Status,
			"withdrawn_at":      submission.WithdrawnAt,
			"withdrawal_reason": submission.WithdrawalReason,
		},
	})
}

// buildSubmissionViews flattens loaded submissions into filter/sort records.
func buildSubmissionViews(submissions []models.Submission) []utils.SubmissionView {
	views := make([]utils.SubmissionView, 0, len(submissions))
	for i := range submissions {
		submission := &submissions[i]
		view := utils.SubmissionView{
			SubmissionID: submission.SubmissionID,
			Title:        submission.Title,
			Status:       submission.Status,
			Language:     submission.Language,
			SubmittedAt:  submission.SubmittedAt,
		}
		if submission.Genre != nil {
			view.Genre = *submission.Genre
		}
		if submission.WordCount != nil {
			view.WordCount = *submission.WordCount
		}
		if submission.User != nil {
			view.Author = submission.User.Name
		}
		if submission.Form != nil && submission.Form.Publication != nil {
			view.PublicationID = submission.Form.Publication.PublicationID
			view.Publication = submission.Form.Publication.Name
		}
		views = append(views, view)
	}
	return views
}

// parseListParams reads the shared filter/sort query parameters.
func parseListParams(c *gin.Context) (string, utils.FilterConfig, utils.SortConfig, error) {
	var cfg utils.FilterConfig

	for _, raw := range splitCSV(c.Query("status")) {
		status, err := utils.NormalizeStatus(raw)
		if err != nil {
			return "", cfg, utils.SortConfig{}, err
		}
		cfg.Statuses = append(cfg.Statuses, status)
	}
	cfg.Genres = splitCSV(c.Query("genre"))
	for _, raw := range splitCSV(c.Query("publication")) {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return "", cfg, utils.SortConfig{}, err
		}
		cfg.Publications = append(cfg.Publications, id)
	}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return "", cfg, utils.SortConfig{}, err
		}
		cfg.DateFrom = &from
	}
	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return "", cfg, utils.SortConfig{}, err
		}
		// Inclusive end of day.
		to = to.Add(24*time.Hour - time.Nanosecond)
		cfg.DateTo = &to
	}
	if raw := c.Query("min_words"); raw != "" {
		min, err := strconv.Atoi(raw)
		if err != nil {
			return "", cfg, utils.SortConfig{}, err
		}
		cfg.MinWords = &min
	}
	if raw := c.Query("max_words"); raw != "" {
		max, err := strconv.Atoi(raw)
		if err != nil {
			return "", cfg, utils.SortConfig{}, err
		}
		cfg.MaxWords = &max
	}

	sortCfg := utils.DefaultSort
	if key := c.Query("sort"); key != "" {
		if !utils.ValidSortKey(key) {
			return "", cfg, utils.SortConfig{}, &services.ValidationError{Reason: "Invalid sort key"}
		}
		sortCfg.Key = key
		sortCfg.Direction = utils.SortAsc
	}
	if direction := c.Query("direction"); direction != "" {
		if direction != utils.SortAsc && direction != utils.SortDesc {
			return "", cfg, utils.SortConfig{}, &services.ValidationError{Reason: "Invalid sort direction"}
		}
		sortCfg.Direction = direction
	}

	return c.Query("q"), cfg, sortCfg, nil
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
