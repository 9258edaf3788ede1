package controllers

import (
	"net/http"
	"strconv"
	"time"

	"submeet-api/config"
	"submeet-api/models"
	"submeet-api/services"
	"submeet-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ===================== EDITORIAL TRIAGE =====================

// GetPublicationSubmissions returns a publication's submissions for triage,
// honoring the same filter/sort query parameters as the writer listing.
func GetPublicationSubmissions(c *gin.Context) {
	publicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication id"})
		return
	}
	if !requireCapability(c, publicationID, utils.CapChangeStatus) {
		return
	}

	var submissions []models.Submission
	err = config.DB.Preload("User").
		Preload("Form.Publication").
		Joins("JOIN forms ON forms.form_id = submissions.form_id").
		Where("forms.publication_id = ? AND submissions.delete_at IS NULL", publicationID).
		Find(&submissions).Error
	if err != nil {
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

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateSubmissionStatus applies an editorial lifecycle transition. Global
// admins may override the transition table.
func UpdateSubmissionStatus(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	publicationID, err := submissionPublicationID(submissionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if !requireCapability(c, publicationID, utils.CapChangeStatus) {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	override := currentRoleID(c) == models.RoleAdmin
	lifecycle := services.NewLifecycleService(config.DB)
	submission, err := lifecycle.ChangeStatus(submissionID, req.Status, override)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.NewActivityService(config.DB).Log(currentUserID(c), models.ActivityStatusChanged, map[string]interface{}{
		"submission_id": submission.SubmissionID,
		"status":        submission.Status,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"submission": gin.H{
			"id":     submission.SubmissionID,
			"status": submission.Status,
		},
	})
}

type AssignReaderRequest struct {
	UserID int `json:"user_id" binding:"required"`
}

// AssignReader creates a review assignment for a publication member and
// moves a pending submission under review.
func AssignReader(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	publicationID, err := submissionPublicationID(submissionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if !requireCapability(c, publicationID, utils.CapAssignReader) {
		return
	}

	var req AssignReaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var submission models.Submission
	if err := config.DB.Where("submission_id = ? AND delete_at IS NULL", submissionID).
		First(&submission).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if !utils.IsActiveStatus(submission.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Submission is no longer under consideration"})
		return
	}

	var member models.PublicationMember
	if err := config.DB.Where("publication_id = ? AND user_id = ? AND delete_at IS NULL",
		publicationID, req.UserID).First(&member).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User is not a member of this publication"})
		return
	}
	if !utils.RoleCan(member.Role, utils.CapReview) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User cannot review for this publication"})
		return
	}

	var existing int64
	config.DB.Model(&models.Review{}).
		Where("submission_id = ? AND user_id = ? AND is_complete = ?", submissionID, req.UserID, false).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Reader is already assigned to this submission"})
		return
	}

	now := time.Now()
	review := models.Review{
		SubmissionID:  submissionID,
		UserID:        req.UserID,
		PublicationID: publicationID,
		AssignedAt:    now,
	}

	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&review).Error; err != nil {
			return err
		}
		// Advisory workload counter, never a hard cap.
		return tx.Model(&models.PublicationMember{}).
			Where("member_id = ?", member.MemberID).
			Updates(map[string]interface{}{
				"current_assignments": gorm.Expr("current_assignments + 1"),
				"update_at":           now,
			}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign reader"})
		return
	}

	if submission.Status == utils.StatusPending {
		lifecycle := services.NewLifecycleService(config.DB)
		if updated, err := lifecycle.ChangeStatus(submissionID, utils.StatusUnderReview, false); err == nil {
			submission = *updated
		}
	}

	services.NewNotificationService(config.DB).ReviewAssigned(req.UserID, &submission)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"review":  review,
		"status":  submission.Status,
	})
}

type DecisionRequest struct {
	DecisionType string  `json:"decision_type" binding:"required"`
	DecisionText *string `json:"decision_text"`
}

// RecordDecision stores the editorial verdict and moves the submission to
// the matching terminal status.
func RecordDecision(c *gin.Context) {
	submissionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid submission id"})
		return
	}

	publicationID, err := submissionPublicationID(submissionID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Submission not found"})
		return
	}
	if !requireCapability(c, publicationID, utils.CapDecide) {
		return
	}

	var req DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	targetStatus, err := utils.StatusForDecision(req.DecisionType)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing int64
	config.DB.Model(&models.Decision{}).
		Where("submission_id = ?", submissionID).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A decision has already been recorded for this submission"})
		return
	}

	lifecycle := services.NewLifecycleService(config.DB)
	submission, err := lifecycle.ChangeStatus(submissionID, targetStatus, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	now := time.Now()
	decision := models.Decision{
		SubmissionID: submissionID,
		DecidedBy:    currentUserID(c),
		DecisionType: req.DecisionType,
		DecisionText: req.DecisionText,
		SentAt:       &now,
		CreateAt:     &now,
	}
	if err := config.DB.Create(&decision).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record decision"})
		return
	}

	services.NewActivityService(config.DB).Log(currentUserID(c), models.ActivityDecisionRecorded, map[string]interface{}{
		"submission_id": submissionID,
		"decision_type": req.DecisionType,
	})
	services.NewNotificationService(config.DB).DecisionRecorded(submission)

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"decision": decision,
		"status":   submission.Status,
	})
}
