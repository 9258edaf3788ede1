package controllers

import (
	"net/http"
	"strconv"

	"submeet-api/config"
	"submeet-api/services"

	"github.com/gin-gonic/gin"
)

// GetActivity returns the caller's recent activity entries
func GetActivity(c *gin.Context) {
	userID := currentUserID(c)

	limit, _ := strconv.Atoi(c.Query("limit"))
	entries, err := services.NewActivityService(config.DB).Recent(userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch activity"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"activity": entries,
		"total":    len(entries),
	})
}
