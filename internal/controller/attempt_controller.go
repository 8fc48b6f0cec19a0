package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/alaadin007/learnable-connect-hub-sub002/internal/service"
	"github.com/alaadin007/learnable-connect-hub-sub002/internal/util"
)

type AttemptController struct {
	attemptService *service.AttemptService
}

func NewAttemptController(attemptService *service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: attemptService}
}

// Start godoc
// @Summary Start an attempt
// @Description Marks the attempt in progress. Restarting keeps the original start time.
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=service.AttemptStatus}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/student/assessments/{id}/start [post]
func (ctrl *AttemptController) Start(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	status, err := ctrl.attemptService.StartAttempt(c.Request.Context(), id, currentSchoolID(c), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, status)
}

// Submit godoc
// @Summary Submit an attempt
// @Description Every question must be answered. Objective questions are graded immediately; short answers await teacher review.
// @Tags attempts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Param request body service.SubmitAttemptRequest true "Answers"
// @Success 201 {object} util.Response{data=service.SubmitResult}
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/student/assessments/{id}/submit [post]
func (ctrl *AttemptController) Submit(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	var req service.SubmitAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctrl.attemptService.SubmitAttempt(c.Request.Context(), id, currentSchoolID(c), currentUserID(c), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Created(c, result)
}

// Status godoc
// @Summary Attempt lifecycle state
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=service.AttemptStatus}
// @Router /api/student/assessments/{id}/status [get]
func (ctrl *AttemptController) Status(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	status, err := ctrl.attemptService.GetStatus(c.Request.Context(), id, currentSchoolID(c), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, status)
}

// Results godoc
// @Summary Attempt results
// @Description The answer key is only revealed once grading is final
// @Tags attempts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Assessment ID"
// @Success 200 {object} util.Response{data=service.AttemptResult}
// @Router /api/student/assessments/{id}/results [get]
func (ctrl *AttemptController) Results(c *gin.Context) {
	id := util.MustParseUint(c.Param("id"))
	if id == 0 {
		util.BadRequest(c, "invalid assessment id")
		return
	}

	result, err := ctrl.attemptService.GetResults(id, currentSchoolID(c), currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, result)
}

func (ctrl *AttemptController) MySubmissions(c *gin.Context) {
	subs, err := ctrl.attemptService.ListStudentSubmissions(currentUserID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	util.Success(c, subs)
}
