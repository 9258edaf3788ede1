package controllers

import (
	"net/http"
	"strconv"

	"submeet-api/config"
	"submeet-api/models"
	"submeet-api/services"

	"github.com/gin-gonic/gin"
)

func newFileService() *services.FileService {
	store := services.NewMinioStore(config.Storage, config.StorageBucket())
	return services.NewFileService(config.DB, store, config.StorageURLExpiry())
}

// UploadFile accepts a multipart manuscript upload for an owned submission
func UploadFile(c *gin.Context) {
	userID := currentUserID(c)

	submissionID, err := strconv.Atoi(c.PostForm("submission_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid submission_id"})
		return
	}
	fieldID := c.PostForm("field_id")
	if fieldID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing field_id"})
		return
	}
	fileRole := c.PostForm("file_type")

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file uploaded"})
		return
	}

	blob, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unable to read uploaded file"})
		return
	}
	defer blob.Close()

	record, downloadURL, err := newFileService().Upload(c.Request.Context(), services.UploadInput{
		SubmissionID: submissionID,
		UserID:       userID,
		FieldID:      fieldID,
		FileRole:     fileRole,
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		Content:      blob,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	services.NewActivityService(config.DB).Log(userID, models.ActivityFileUploaded, map[string]interface{}{
		"submission_id": submissionID,
		"file_id":       record.FileID,
		"original_name": record.OriginalName,
	})

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"file": gin.H{
			"id":              record.FileID,
			"file_name":       record.FileName,
			"original_name":   record.OriginalName,
			"file_size_bytes": record.FileSizeBytes,
			"mime_type":       record.MimeType,
			"file_type":       record.FileType,
			"uploaded_at":     record.UploadedAt,
		},
		"download_url": downloadURL,
	})
}

// GetFileDownloadURL re-derives a fresh time-limited download URL
func GetFileDownloadURL(c *gin.Context) {
	userID := currentUserID(c)

	fileID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file id"})
		return
	}
	submissionID, err := strconv.Atoi(c.Query("submission_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid submission_id"})
		return
	}

	file, downloadURL, err := newFileService().DownloadURL(c.Request.Context(), fileID, submissionID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"download_url": downloadURL,
		"file": gin.H{
			"id":              file.FileID,
			"original_name":   file.OriginalName,
			"file_size_bytes": file.FileSizeBytes,
			"mime_type":       file.MimeType,
		},
	})
}
