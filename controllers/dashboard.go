package controllers

import (
	"net/http"
	"time"

	"submeet-api/config"
	"submeet-api/models"
	"submeet-api/services"

	"github.com/gin-gonic/gin"
)

// GetDashboardStats returns dashboard statistics for the caller: the writer
// aggregate always, plus per-publication editor stats for any publication
// the caller edits.
func GetDashboardStats(c *gin.Context) {
	userID := currentUserID(c)

	var submissions []models.Submission
	if err := config.DB.
		Where("user_id = ? AND delete_at IS NULL", userID).
		Find(&submissions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch submissions"})
		return
	}

	stats := gin.H{
		"writer": services.ComputeWriterStats(submissions, time.Now()),
	}

	var bookmarks int64
	if err := config.DB.Model(&models.Bookmark{}).
		Where("user_id = ?", userID).
		Count(&bookmarks).Error; err == nil {
		stats["bookmarked_journals"] = bookmarks
	}

	// Editor view: one stats block per publication the caller can triage.
	var memberships []models.PublicationMember
	if err := config.DB.Preload("Publication").
		Where("user_id = ? AND role IN ? AND delete_at IS NULL",
			userID, []string{"editor", "admin"}).
		Find(&memberships).Error; err == nil && len(memberships) > 0 {
		dashboards := make([]gin.H, 0, len(memberships))
		svc := services.NewDashboardService(config.DB)
		for _, membership := range memberships {
			editorStats, err := svc.EditorStats(membership.PublicationID)
			if err != nil {
				continue
			}
			entry := gin.H{
				"publication_id": membership.PublicationID,
				"stats":          editorStats,
			}
			if membership.Publication != nil {
				entry["publication"] = membership.Publication.Name
			}
			dashboards = append(dashboards, entry)
		}
		stats["editor"] = dashboards
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"stats":   stats,
	})
}
