package controllers

import (
	"net/http"
	"strconv"
	"time"

	"submeet-api/config"
	"submeet-api/models"
	"submeet-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ===================== FORM BUILDER =====================

type FormFieldRequest struct {
	FieldType          string         `json:"field_type" binding:"required"`
	Label              string         `json:"label" binding:"required"`
	Required           bool           `json:"required"`
	Options            datatypes.JSON `json:"options"`
	AcceptedExtensions datatypes.JSON `json:"accepted_extensions"`
	MaxLength          *int           `json:"max_length"`
}

type FormRequest struct {
	Title              string             `json:"title" binding:"required"`
	Description        *string            `json:"description"`
	IsActive           bool               `json:"is_active"`
	ReadingPeriodStart *time.Time         `json:"reading_period_start"`
	ReadingPeriodEnd   *time.Time         `json:"reading_period_end"`
	SubmissionCap      *int               `json:"submission_cap"`
	Fields             []FormFieldRequest `json:"fields"`
}

var allowedFieldTypes = map[string]bool{
	"text":     true,
	"textarea": true,
	"select":   true,
	"file":     true,
	"number":   true,
}

func validateFormRequest(req *FormRequest) string {
	if req.ReadingPeriodStart != nil && req.ReadingPeriodEnd != nil &&
		req.ReadingPeriodEnd.Before(*req.ReadingPeriodStart) {
		return "Reading period end must be after its start"
	}
	if req.SubmissionCap != nil && *req.SubmissionCap <= 0 {
		return "Submission cap must be positive"
	}
	for _, field := range req.Fields {
		if !allowedFieldTypes[field.FieldType] {
			return "Unknown field type: " + field.FieldType
		}
	}
	return ""
}

// CreateForm creates a submission form for a publication
func CreateForm(c *gin.Context) {
	publicationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid publication id"})
		return
	}
	if !requireCapability(c, publicationID, utils.CapManageForms) {
		return
	}

	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if reason := validateFormRequest(&req); reason != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": reason})
		return
	}

	now := time.Now()
	form := models.Form{
		PublicationID:      publicationID,
		Title:              utils.SanitizeInput(req.Title),
		Description:        req.Description,
		IsActive:           req.IsActive,
		ReadingPeriodStart: req.ReadingPeriodStart,
		ReadingPeriodEnd:   req.ReadingPeriodEnd,
		SubmissionCap:      req.SubmissionCap,
		CreateAt:           &now,
		UpdateAt:           &now,
	}
	for order, field := range req.Fields {
		form.Fields = append(form.Fields, models.FormField{
			FieldType:          field.FieldType,
			Label:              field.Label,
			Required:           field.Required,
			Options:            field.Options,
			AcceptedExtensions: field.AcceptedExtensions,
			MaxLength:          field.MaxLength,
			DisplayOrder:       order + 1,
			CreateAt:           &now,
			UpdateAt:           &now,
		})
	}

	if err := config.DB.Create(&form).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create form"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"form":    form,
	})
}

// GetForm returns one form with its ordered fields
func GetForm(c *gin.Context) {
	formID := c.Param("id")

	var form models.Form
	err := config.DB.Preload("Publication").
		Preload("Fields", func(db *gorm.DB) *gorm.DB {
			return db.Where("delete_at IS NULL").Order("display_order ASC")
		}).
		Where("form_id = ? AND delete_at IS NULL", formID).
		First(&form).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"form":    form,
	})
}

// UpdateForm replaces a form's settings and field sequence
func UpdateForm(c *gin.Context) {
	formID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form id"})
		return
	}

	var form models.Form
	if err := config.DB.Where("form_id = ? AND delete_at IS NULL", formID).First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		return
	}
	if !requireCapability(c, form.PublicationID, utils.CapManageForms) {
		return
	}

	var req FormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if reason := validateFormRequest(&req); reason != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": reason})
		return
	}

	now := time.Now()
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"title":                utils.SanitizeInput(req.Title),
			"description":          req.Description,
			"is_active":            req.IsActive,
			"reading_period_start": req.ReadingPeriodStart,
			"reading_period_end":   req.ReadingPeriodEnd,
			"submission_cap":       req.SubmissionCap,
			"update_at":            now,
		}
		if err := tx.Model(&models.Form{}).Where("form_id = ?", formID).Updates(updates).Error; err != nil {
			return err
		}

		// The builder sends the full field sequence; replace it wholesale.
		if err := tx.Where("form_id = ?", formID).Delete(&models.FormField{}).Error; err != nil {
			return err
		}
		for order, field := range req.Fields {
			record := models.FormField{
				FormID:             formID,
				FieldType:          field.FieldType,
				Label:              field.Label,
				Required:           field.Required,
				Options:            field.Options,
				AcceptedExtensions: field.AcceptedExtensions,
				MaxLength:          field.MaxLength,
				DisplayOrder:       order + 1,
				CreateAt:           &now,
				UpdateAt:           &now,
			}
			if err := tx.Create(&record).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update form"})
		return
	}

	GetForm(c)
}

// DeleteForm soft-deletes a form so existing submissions keep their link
func DeleteForm(c *gin.Context) {
	formID := c.Param("id")

	var form models.Form
	if err := config.DB.Where("form_id = ? AND delete_at IS NULL", formID).First(&form).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Form not found"})
		return
	}
	if !requireCapability(c, form.PublicationID, utils.CapManageForms) {
		return
	}

	now := time.Now()
	if err := config.DB.Model(&models.Form{}).
		Where("form_id = ?", formID).
		Updates(map[string]interface{}{"delete_at": now, "is_active": false}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete form"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
