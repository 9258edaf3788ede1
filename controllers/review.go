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

// ===================== READER REVIEWS =====================

// GetAssignedReviews returns the caller's review assignments
func GetAssignedReviews(c *gin.Context) {
	userID := currentUserID(c)

	query := config.DB.
		Preload("Submission", func(db *gorm.DB) *gorm.DB {
			return db.Select("submission_id", "title", "genre", "word_count", "cover_letter", "author_bio", "status", "submitted_at")
		}).
		Where("user_id = ?", userID)

	if c.Query("completed") == "true" {
		query = query.Where("is_complete = ?", true)
	} else {
		query = query.Where("is_complete = ?", false)
	}

	var reviews []models.Review
	if err := query.Order("assigned_at DESC").Find(&reviews).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reviews"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": reviews,
		"total":   len(reviews),
	})
}

type CompleteReviewRequest struct {
	Rating         int     `json:"rating" binding:"required"`
	Recommendation string  `json:"recommendation" binding:"required"`
	Comments       *string `json:"comments"`
}

// CompleteReview records the reader's rating and recommendation
func CompleteReview(c *gin.Context) {
	userID := currentUserID(c)
	reviewID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review id"})
		return
	}

	var req CompleteReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !utils.ValidateRating(req.Rating) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Rating must be between 1 and 5"})
		return
	}
	if !utils.ValidateRecommendation(req.Recommendation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Recommendation must be pass, maybe or yes"})
		return
	}

	// Assignment lookup is scoped to the caller; another reader's review is
	// indistinguishable from a missing one.
	var review models.Review
	if err := config.DB.Where("review_id = ? AND user_id = ?", reviewID, userID).
		First(&review).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		return
	}
	if review.IsComplete {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Review has already been completed"})
		return
	}

	now := time.Now()
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"rating":         req.Rating,
			"recommendation": req.Recommendation,
			"comments":       req.Comments,
			"is_complete":    true,
			"completed_at":   now,
		}
		if err := tx.Model(&models.Review{}).Where("review_id = ?", reviewID).Updates(updates).Error; err != nil {
			return err
		}

		// Release the advisory workload slot.
		return tx.Model(&models.PublicationMember{}).
			Where("publication_id = ? AND user_id = ? AND current_assignments > 0", review.PublicationID, userID).
			Updates(map[string]interface{}{
				"current_assignments": gorm.Expr("current_assignments - 1"),
				"update_at":           now,
			}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete review"})
		return
	}

	services.NewActivityService(config.DB).Log(userID, models.ActivityReviewCompleted, map[string]interface{}{
		"review_id":      reviewID,
		"submission_id":  review.SubmissionID,
		"recommendation": req.Recommendation,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"review": gin.H{
			"id":             reviewID,
			"rating":         req.Rating,
			"recommendation": req.Recommendation,
			"completed_at":   now,
		},
	})
}
