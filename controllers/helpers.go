package controllers

import (
	"errors"
	"net/http"

	"submeet-api/config"
	"submeet-api/models"
	"submeet-api/services"
	"submeet-api/utils"

	"github.com/gin-gonic/gin"
)

// currentUserID pulls the authenticated user id out of the gin context.
func currentUserID(c *gin.Context) int {
	userID, _ := c.Get("userID")
	id, _ := userID.(int)
	return id
}

func currentRoleID(c *gin.Context) int {
	roleID, _ := c.Get("roleID")
	id, _ := roleID.(int)
	return id
}

// respondServiceError maps service errors onto the HTTP error taxonomy.
// Upstream failures surface as a generic 500 with no detail.
func respondServiceError(c *gin.Context, err error) {
	var validationErr *services.ValidationError
	var stateErr *services.StateError

	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, services.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have access to this resource"})
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Reason})
	case errors.As(err, &stateErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": stateErr.Reason})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// publicationRole returns the caller's membership role for a publication, or
// "" when they are not a member. Global admins act as publication admins.
func publicationRole(c *gin.Context, publicationID int) string {
	if currentRoleID(c) == models.RoleAdmin {
		return utils.MemberRoleAdmin
	}

	var member models.PublicationMember
	err := config.DB.
		Where("publication_id = ? AND user_id = ? AND delete_at IS NULL", publicationID, currentUserID(c)).
		First(&member).Error
	if err != nil {
		return ""
	}
	return member.Role
}

// requireCapability checks the caller's publication role against the
// capability table and writes the 403 itself when the check fails.
func requireCapability(c *gin.Context, publicationID int, capability utils.Capability) bool {
	role := publicationRole(c, publicationID)
	if role == "" || !utils.RoleCan(role, capability) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
		return false
	}
	return true
}

// submissionPublicationID resolves the publication a submission belongs to
// through its form.
func submissionPublicationID(submissionID int) (int, error) {
	var form models.Form
	err := config.DB.
		Joins("JOIN submissions ON submissions.form_id = forms.form_id").
		Where("submissions.submission_id = ? AND submissions.delete_at IS NULL", submissionID).
		First(&form).Error
	if err != nil {
		return 0, err
	}
	return form.PublicationID, nil
}
