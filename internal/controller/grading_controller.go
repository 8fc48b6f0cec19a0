package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/service"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

type GradingController struct {
	gradingService *service.GradingService
}

func NewGradingController(gradingService *service.GradingService) *GradingController {
	return &GradingController{gradingService: gradingService}
}

// ListSubmissions godoc
// @Summary Submissions for an assessment
// @Description Grading queue with each submission's derived state and manual-grading backlog
// @Tags grading
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=[]service.SubmissionOverview}
// @Router /api/teacher/assessments/{id}/submissions [get]
func (ctrl *GradingController) ListSubmissions(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	overviews, err := ctrl.gradingService.ListSubmissions(id, currentSchoolID(c), currentUserID(c), currentRole(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, overviews)
}

func (ctrl *GradingController) GetSubmission(c *gin.Context) {
	assessmentID := util.MustParseUint(c.Param("id"))
	submissionID := util.MustParseUint(c.Param("subId"))
	if assessmentID == 0 || submissionID == 0 {
		util.BadRequest(c, "invalid id")
		return
	}

	assessment, sub, err := ctrl.gradingService.GetSubmission(assessmentID, submissionID, currentSchoolID(c), currentUserID(c), currentRole(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, gin.H{"assessment": assessment, "submission": sub})
}

// Grade godoc
// @Summary Grade short-answer responses
// @Description Awards points per question (clamped to the question's maximum) and recomputes the normalized score
// @Tags grading
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param subId path int true "Submission ID"
// @Param request body service.GradeSubmissionRequest true "Points per question and optional feedback"
// @Success 200 {object} util.Response{data=service.SubmissionOverview}
// @Router /api/teacher/assessments/{id}/submissions/{subId}/grade [post]
func (ctrl *GradingController) Grade(c *gin.Context) {
	assessmentID := util.MustParseUint(c.Param("id"))
	submissionID := util.MustParseUint(c.Param("subId"))
	if assessmentID == 0 || submissionID == 0 {
		util.BadRequest(c, "invalid id")
		return
	}

	var req service.GradeSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	overview, err := ctrl.gradingService.GradeSubmission(assessmentID, submissionID, currentSchoolID(c), currentUserID(c), currentRole(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, overview)
}
