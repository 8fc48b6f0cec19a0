package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/model"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

// handleServiceError maps service sentinels onto HTTP statuses. Anything
// unrecognized is logged and reported as a 500.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Unauthorized(c, err.Error())
	case errors.Is(err, util.ErrEmailRegistered),
		errors.Is(err, util.ErrAlreadySubmitted),
		errors.Is(err, util.ErrAssessmentLocked):
		util.Conflict(c, err.Error())
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrSchoolNotFound),
		errors.Is(err, util.ErrAssessmentNotFound),
		errors.Is(err, util.ErrSubmissionNotFound),
		errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrDocumentNotFound):
		util.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, util.ErrPermissionDenied):
		util.Forbidden(c, err.Error())
	case errors.Is(err, util.ErrInvalidQuestions),
		errors.Is(err, util.ErrInvalidSchoolCode),
		errors.Is(err, util.ErrInvitationNotUsable),
		errors.Is(err, util.ErrInvitationEmail),
		errors.Is(err, util.ErrAssessmentUnpublished),
		errors.Is(err, util.ErrIncompleteSubmission),
		errors.Is(err, util.ErrPastDue),
		errors.Is(err, util.ErrNoActiveAPIKey),
		errors.Is(err, util.ErrNoOpenStudySession):
		util.BadRequest(c, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}

func currentUserID(c *gin.Context) uint {
	v, _ := c.Get("userID")
	id, _ := v.(uint)
	return id
}

func currentSchoolID(c *gin.Context) uint {
	v, _ := c.Get("schoolID")
	id, _ := v.(uint)
	return id
}

func currentRole(c *gin.Context) model.UserRole {
	v, _ := c.Get("userRole")
	role, _ := v.(model.UserRole)
	return role
}

// pagination reads page/limit query params with sane bounds.
func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
