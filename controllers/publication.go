package controllers

import (
	"net/http"
	"strconv"
	"time"

	"submeet-api/config"
	"submeet-api/models"
	"submeet-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetPublications returns the journal directory: active publications with
// their currently open forms.
func GetPublications(c *gin.Context) {
	var publications []models.Publication
	query := config.DB.Preload("Organization").
		Preload("Forms", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ? AND delete_at IS NULL", true)
		}).
		Where("is_active = ? AND delete_at IS NULL", true)

	if c.Query("featured") == "true" {
		query = query.Where("is_featured = ?", true)
	}

	if err := query.Order("name ASC").Find(&publications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch publications"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"publications": publications,
		"total":        len(publications),
	})
}

// GetPublication returns one publication with its open forms and fields
func GetPublication(c *gin.Context) {
	publicationID := c.Param("id")

	var publication models.Publication
	err := config.DB.Preload("Organization").
		Preload("Forms", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ? AND delete_at IS NULL", true)
		}).
		Preload("Forms.Fields", func(db *gorm.DB) *gorm.DB {
			return db.Where("delete_at IS NULL").Order("display_order ASC")
		}).
		Where("publication_id = ? AND is_active = ? AND delete_at IS NULL", publicationID, true).
		First(&publication).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Publication not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"publication": publication,
	})
}

// BookmarkPublication adds a publication to the caller's bookmarks
func BookmarkPublication(c *gin.Context) {
	userID := currentUserID(c)
	publicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication id"})
		return
	}

	var publication models.Publication
	if err := config.DB.Where("publication_id = ? AND delete_at IS NULL", publicationID).
		First(&publication).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Publication not found"})
		return
	}

	var existing int64
	config.DB.Model(&models.Bookmark{}).
		Where("user_id = ? AND publication_id = ?", userID, publicationID).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Already bookmarked"})
		return
	}

	now := time.Now()
	bookmark := models.Bookmark{
		UserID:        userID,
		PublicationID: publicationID,
		CreateAt:      &now,
	}
	if err := config.DB.Create(&bookmark).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to bookmark publication"})
		return
	}

	services.NewActivityService(config.DB).Log(userID, models.ActivityJournalBookmarked, map[string]interface{}{
		"publication_id": publicationID,
		"publication":    publication.Name,
	})

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"bookmark": bookmark,
	})
}

// RemoveBookmark removes a publication from the caller's bookmarks
func RemoveBookmark(c *gin.Context) {
	userID := currentUserID(c)
	publicationID := c.Param("id")

	result := config.DB.Where("user_id = ? AND publication_id = ?", userID, publicationID).
		Delete(&models.Bookmark{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove bookmark"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Bookmark not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
